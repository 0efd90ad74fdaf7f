package models

import "encoding/json"

// JargonDefinition is a legal term with a plain-language definition.
type JargonDefinition struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// AnalysisResult is the model's breakdown of a clause.
// Exactly one of Error or the analysis fields is meaningful: when Error is
// non-empty the result is the error variant.
type AnalysisResult struct {
	Error              string             `json:"error,omitempty"`
	SimplifiedText     string             `json:"simplified_text"`
	JargonDefinitions  []JargonDefinition `json:"jargon_definitions"`
	RiskScore          int                `json:"risk_score"`
	QuestionsForLawyer []string           `json:"questions_for_lawyer"`
}

type analysisErrorJSON struct {
	Error string `json:"error"`
}

type analysisJSON struct {
	SimplifiedText     string             `json:"simplified_text"`
	JargonDefinitions  []JargonDefinition `json:"jargon_definitions"`
	RiskScore          int                `json:"risk_score"`
	QuestionsForLawyer []string           `json:"questions_for_lawyer"`
}

// MarshalJSON writes only the active variant. The success variant always
// carries every field, with empty lists instead of null.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	if r.IsError() {
		return json.Marshal(analysisErrorJSON{Error: r.Error})
	}

	out := analysisJSON{
		SimplifiedText:     r.SimplifiedText,
		JargonDefinitions:  r.JargonDefinitions,
		RiskScore:          r.RiskScore,
		QuestionsForLawyer: r.QuestionsForLawyer,
	}
	if out.JargonDefinitions == nil {
		out.JargonDefinitions = []JargonDefinition{}
	}
	if out.QuestionsForLawyer == nil {
		out.QuestionsForLawyer = []string{}
	}
	return json.Marshal(out)
}

// NewAnalysisError builds the error variant.
func NewAnalysisError(msg string) AnalysisResult {
	return AnalysisResult{Error: msg}
}

func (r AnalysisResult) IsError() bool {
	return r.Error != ""
}

// Clone returns a copy that shares no slices with r.
func (r AnalysisResult) Clone() AnalysisResult {
	out := r
	if r.JargonDefinitions != nil {
		out.JargonDefinitions = append([]JargonDefinition(nil), r.JargonDefinitions...)
	}
	if r.QuestionsForLawyer != nil {
		out.QuestionsForLawyer = append([]string(nil), r.QuestionsForLawyer...)
	}
	return out
}
