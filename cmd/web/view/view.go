package view

import (
	"law4you/analyzer"
	"law4you/models"
	"law4you/session"
)

const (
	PlaceholderSummary   = "Not available."
	PlaceholderQuestions = "No specific questions were generated."
	PlaceholderTerm      = "N/A"
)

// RiskBand is a colour range of the risk gauge.
type RiskBand struct {
	Name  string
	Color string
}

var (
	BandLow    = RiskBand{Name: "low", Color: "#63B76C"}
	BandMedium = RiskBand{Name: "medium", Color: "#FFC107"}
	BandHigh   = RiskBand{Name: "high", Color: "#D9534F"}
)

// RiskBandFor: 0-4 green, 5-7 amber, 8-10 red.
func RiskBandFor(score int) RiskBand {
	switch {
	case score <= 4:
		return BandLow
	case score <= 7:
		return BandMedium
	default:
		return BandHigh
	}
}

type RiskGauge struct {
	Score   int
	Percent int
	Band    RiskBand
}

func NewRiskGauge(score int) RiskGauge {
	score = analyzer.ClampRiskScore(score)
	return RiskGauge{
		Score:   score,
		Percent: score * 100 / analyzer.MaxRiskScore,
		Band:    RiskBandFor(score),
	}
}

type MessageView struct {
	Role    string
	Avatar  string
	Content string
}

// Dashboard is the three-panel analysis area.
type Dashboard struct {
	HasAnalysis bool
	Failed      bool
	Error       string
	Summary     string
	Glossary    []models.JargonDefinition
	Risk        RiskGauge
	Questions   []string
	NoQuestions string
}

// Page is everything the index template renders.
type Page struct {
	Title      string
	Sessions   []session.Summary
	CurrentID  string
	Notice     string
	Transcript []MessageView
	UploadID   string
	Dashboard  Dashboard
}

// Build assembles the page from a session snapshot.
func Build(sess models.ChatSession, sessions []session.Summary, notice, uploadID string) Page {
	p := Page{
		Title:     "Law4You - AI Legal Assistant",
		Sessions:  sessions,
		CurrentID: sess.ID,
		Notice:    notice,
		UploadID:  uploadID,
		Dashboard: BuildDashboard(sess.Analysis),
	}
	for _, m := range sess.History {
		p.Transcript = append(p.Transcript, MessageView{
			Role:    string(m.Role),
			Avatar:  avatarFor(m.Role),
			Content: m.Content,
		})
	}
	return p
}

// BuildDashboard fills placeholders for fields the model left out.
func BuildDashboard(a *models.AnalysisResult) Dashboard {
	if a == nil {
		return Dashboard{}
	}
	if a.IsError() {
		return Dashboard{HasAnalysis: true, Failed: true, Error: a.Error}
	}

	d := Dashboard{
		HasAnalysis: true,
		Summary:     a.SimplifiedText,
		Risk:        NewRiskGauge(a.RiskScore),
		Questions:   a.QuestionsForLawyer,
	}
	if d.Summary == "" {
		d.Summary = PlaceholderSummary
	}
	for _, j := range a.JargonDefinitions {
		if j.Term == "" {
			j.Term = PlaceholderTerm
		}
		if j.Definition == "" {
			j.Definition = PlaceholderTerm
		}
		d.Glossary = append(d.Glossary, j)
	}
	if len(d.Questions) == 0 {
		d.NoQuestions = PlaceholderQuestions
	}
	return d
}

func avatarFor(role models.Role) string {
	if role == models.RoleUser {
		return "🧑‍⚖️"
	}
	return "🤖"
}
