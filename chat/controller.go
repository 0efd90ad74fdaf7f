package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"law4you/analyzer"
	"law4you/internal/logger"
	"law4you/models"
	"law4you/session"
)

const (
	maxNameRunes = 35

	MsgAnalysisComplete = "Analysis complete. See the dashboard for your detailed report."
	msgAnalysisFailed   = "An error occurred during analysis: %s"
)

// Analyzer is the model client used by the controller.
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) models.AnalysisResult
	AnalyzeImage(ctx context.Context, img analyzer.Image) models.AnalysisResult
}

// Extractor turns PDF bytes into text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// TurnResult describes what a turn did to the session.
type TurnResult struct {
	SessionID string
	Analysis  models.AnalysisResult
	Reply     models.Message
	// Duplicate is set when the upload was already processed; nothing changed.
	Duplicate bool
}

type Controller struct {
	analyzer  Analyzer
	extractor Extractor
	now       func() time.Time
}

func NewController(a Analyzer, e Extractor) *Controller {
	return &Controller{analyzer: a, extractor: e, now: time.Now}
}

// HandleTurn runs one user turn against the store's current session.
// Input errors are returned before the session is touched; analysis failures
// are absorbed into the stored AnalysisResult.
func (c *Controller) HandleTurn(ctx context.Context, store *session.Store, in Input) (*TurnResult, error) {
	sessionID := store.CurrentID()
	if sessionID == "" {
		return nil, ErrNoActiveSession
	}

	if in.UploadID != "" && !store.MarkUpload(in.UploadID) {
		logger.Log.Debugf("upload %s already processed, skipping", in.UploadID)
		return &TurnResult{SessionID: sessionID, Duplicate: true}, nil
	}

	content, prompt, err := c.prepare(in)
	if err != nil {
		logger.Log.Warnf("turn aborted for session %s: %v", sessionID, err)
		return nil, err
	}

	err = store.Update(sessionID, func(sess *models.ChatSession) {
		if len(sess.History) == 0 {
			sess.Name = DisplayName(prompt)
		}
		sess.History = append(sess.History, models.Message{Role: models.RoleUser, Content: prompt, CreatedAt: c.now()})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoActiveSession, err)
	}

	var result models.AnalysisResult
	if in.Kind == KindImage {
		result = c.analyzer.AnalyzeImage(ctx, analyzer.Image{Name: in.FileName, Data: in.Data})
	} else {
		result = c.analyzer.AnalyzeText(ctx, content)
	}

	reply := models.Message{Role: models.RoleAssistant, Content: ReplyFor(result), CreatedAt: c.now()}
	err = store.Update(sessionID, func(sess *models.ChatSession) {
		stored := result.Clone()
		sess.Analysis = &stored
		sess.History = append(sess.History, reply)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoActiveSession, err)
	}

	logger.InfoWithFields("chat turn completed", logger.Fields{
		"session_id": sessionID,
		"input_kind": string(in.Kind),
		"failed":     result.IsError(),
		"risk_score": result.RiskScore,
	})
	return &TurnResult{SessionID: sessionID, Analysis: result, Reply: reply}, nil
}

// prepare returns the content to analyze and the transcript label.
func (c *Controller) prepare(in Input) (content string, prompt string, err error) {
	switch in.Kind {
	case KindText:
		if in.Text == "" {
			return "", "", fmt.Errorf("%w: empty message", ErrUnprocessableInput)
		}
		return in.Text, in.Text, nil
	case KindPDF:
		text, err := c.extractor.Extract(in.Data)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrUnprocessableInput, err)
		}
		if strings.TrimSpace(text) == "" {
			return "", "", fmt.Errorf("%w: pdf %s has no text", ErrUnprocessableInput, in.FileName)
		}
		return text, "📄 Analyzed PDF: " + in.FileName, nil
	case KindImage:
		if len(in.Data) == 0 {
			return "", "", fmt.Errorf("%w: empty image", ErrUnprocessableInput)
		}
		return "", "🖼️ Analyzed Image: " + in.FileName, nil
	default:
		return "", "", fmt.Errorf("%w: kind %q", ErrUnsupportedUpload, in.Kind)
	}
}

// DisplayName derives the sidebar label from the first user message.
func DisplayName(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > maxNameRunes {
		return string(runes[:maxNameRunes]) + "..."
	}
	return prompt
}

// ReplyFor is the assistant's transcript message for a result.
func ReplyFor(result models.AnalysisResult) string {
	if result.IsError() {
		return fmt.Sprintf(msgAnalysisFailed, result.Error)
	}
	return MsgAnalysisComplete
}
