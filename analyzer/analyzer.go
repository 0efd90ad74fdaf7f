package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"law4you/internal/logger"
	"law4you/models"
)

// User-facing messages. Causes are logged, never shown.
const (
	MsgEmptyText    = "Input text cannot be empty."
	MsgEmptyImage   = "Image file cannot be empty."
	MsgClauseFailed = "Failed to analyze the clause. The AI response may not be valid JSON."
	MsgImageFailed  = "Failed to analyze the image. It may be corrupt or in an unsupported format."
)

const (
	KindText  = "text"
	KindImage = "image"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

// Image is an uploaded picture of a legal document.
type Image struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Generation is the raw reply of one remote call.
type Generation struct {
	Text         string
	ModelName    string
	ModelVersion string
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// Generator is the remote text / multimodal generation capability.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (*Generation, error)
	GenerateWithImage(ctx context.Context, instruction string, img Image) (*Generation, error)
}

// Recorder receives one AILog per remote call. Failures to record are logged
// and otherwise ignored.
type Recorder interface {
	Insert(ctx context.Context, log models.AILog) error
}

type Analyzer struct {
	gen      Generator
	recorder Recorder
}

type Option func(*Analyzer)

func WithRecorder(r Recorder) Option {
	return func(a *Analyzer) { a.recorder = r }
}

func New(gen Generator, opts ...Option) *Analyzer {
	a := &Analyzer{gen: gen}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeText sends a clause to the text model. It never returns an error:
// every failure becomes the error variant of AnalysisResult.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) models.AnalysisResult {
	if strings.TrimSpace(text) == "" {
		return models.NewAnalysisError(MsgEmptyText)
	}

	prompt := BuildClausePrompt(text)
	start := time.Now()
	gen, err := a.gen.GenerateText(ctx, prompt)
	a.record(ctx, KindText, prompt, gen, err, start)
	if err != nil {
		logger.Log.Errorf("clause analysis call failed: %v", err)
		return models.NewAnalysisError(MsgClauseFailed)
	}

	result, err := DecodeAnalysis(CleanResponse(gen.Text))
	if err != nil {
		logger.Log.Errorf("clause analysis reply could not be parsed: %v", err)
		return models.NewAnalysisError(MsgClauseFailed)
	}
	return result
}

// AnalyzeImage asks the vision model to transcribe and analyze an image in one pass.
func (a *Analyzer) AnalyzeImage(ctx context.Context, img Image) models.AnalysisResult {
	if len(img.Data) == 0 {
		return models.NewAnalysisError(MsgEmptyImage)
	}

	mimeType, err := DecodeImage(img.Data)
	if err != nil {
		logger.Log.Errorf("image %q could not be decoded: %v", img.Name, err)
		return models.NewAnalysisError(MsgImageFailed)
	}
	img.MIMEType = mimeType

	start := time.Now()
	gen, err := a.gen.GenerateWithImage(ctx, IMAGE_INSTRUCTION, img)
	a.record(ctx, KindImage, IMAGE_INSTRUCTION, gen, err, start)
	if err != nil {
		logger.Log.Errorf("image analysis call failed for %q: %v", img.Name, err)
		return models.NewAnalysisError(MsgImageFailed)
	}

	result, err := DecodeAnalysis(CleanResponse(gen.Text))
	if err != nil {
		logger.Log.Errorf("image analysis reply could not be parsed for %q: %v", img.Name, err)
		return models.NewAnalysisError(MsgImageFailed)
	}
	return result
}

// DecodeImage verifies that data is a PNG or JPEG picture and returns its MIME type.
func DecodeImage(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	if !mt.Is("image/png") && !mt.Is("image/jpeg") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	return mt.String(), nil
}

func (a *Analyzer) record(ctx context.Context, kind, prompt string, gen *Generation, callErr error, start time.Time) {
	if a.recorder == nil {
		return
	}

	entry := models.AILog{
		Kind:        kind,
		DurationMs:  time.Since(start).Milliseconds(),
		InputPrompt: prompt,
		RequestedAt: start,
		CompletedAt: time.Now(),
	}
	if gen != nil {
		entry.ModelName = gen.ModelName
		entry.ModelVersion = gen.ModelVersion
		entry.InputTokens = gen.InputTokens
		entry.OutputTokens = gen.OutputTokens
		entry.TotalTokens = gen.TotalTokens
		entry.OutputResponse = gen.Text
	}
	if callErr != nil {
		msg := callErr.Error()
		entry.ErrorMessage = &msg
	}

	// 응답 취소와 무관하게 로그는 남긴다.
	if err := a.recorder.Insert(context.WithoutCancel(ctx), entry); err != nil {
		logger.Log.Warnf("failed to record ai log: %v", err)
	}
}
