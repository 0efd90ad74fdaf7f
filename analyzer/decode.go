package analyzer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"law4you/models"
)

const (
	MinRiskScore = 0
	MaxRiskScore = 10

	missingField = "N/A"
)

var ErrInvalidJSON = errors.New("model reply is not a JSON object")

// DecodeAnalysis maps the model's JSON reply onto AnalysisResult.
// Only a non-object payload is an error; absent or mistyped fields fall back
// to empty values, risk_score is clamped to [0,10].
func DecodeAnalysis(payload string) (models.AnalysisResult, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if raw == nil {
		return models.AnalysisResult{}, ErrInvalidJSON
	}

	if msg := decodeString(raw["error"]); strings.TrimSpace(msg) != "" {
		return models.NewAnalysisError(msg), nil
	}

	return models.AnalysisResult{
		SimplifiedText:     decodeString(raw["simplified_text"]),
		JargonDefinitions:  decodeJargon(raw["jargon_definitions"]),
		RiskScore:          decodeRiskScore(raw["risk_score"]),
		QuestionsForLawyer: decodeQuestions(raw["questions_for_lawyer"]),
	}, nil
}

func decodeString(v json.RawMessage) string {
	if len(v) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}

func decodeJargon(v json.RawMessage) []models.JargonDefinition {
	var items []json.RawMessage
	if len(v) == 0 || json.Unmarshal(v, &items) != nil {
		return nil
	}

	out := make([]models.JargonDefinition, 0, len(items))
	for _, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			continue
		}
		term := strings.TrimSpace(decodeString(obj["term"]))
		def := strings.TrimSpace(decodeString(obj["definition"]))
		if term == "" && def == "" {
			continue
		}
		if term == "" {
			term = missingField
		}
		if def == "" {
			def = missingField
		}
		out = append(out, models.JargonDefinition{Term: term, Definition: def})
	}
	return out
}

func decodeRiskScore(v json.RawMessage) int {
	if len(v) == 0 {
		return MinRiskScore
	}

	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return MinRiskScore
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return MinRiskScore
		}
		f = parsed
	}
	switch {
	case math.IsNaN(f), f < MinRiskScore:
		return MinRiskScore
	case f > MaxRiskScore:
		return MaxRiskScore
	}
	return int(math.Round(f))
}

// ClampRiskScore limits a score to the 0..10 range.
func ClampRiskScore(score int) int {
	if score < MinRiskScore {
		return MinRiskScore
	}
	if score > MaxRiskScore {
		return MaxRiskScore
	}
	return score
}

func decodeQuestions(v json.RawMessage) []string {
	var items []json.RawMessage
	if len(v) == 0 || json.Unmarshal(v, &items) != nil {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if q := strings.TrimSpace(decodeString(item)); q != "" {
			out = append(out, q)
		}
	}
	return out
}
