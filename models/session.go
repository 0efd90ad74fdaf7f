package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const DefaultSessionName = "New Chat"

// Message is a single chat transcript entry. It is never modified after it
// is appended to a session.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatSession is one conversation thread with its latest analysis.
type ChatSession struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	History   []Message       `json:"history"`
	Analysis  *AnalysisResult `json:"analysis,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Clone returns a deep copy safe to hand out of a locked store.
func (s ChatSession) Clone() ChatSession {
	out := s
	out.History = append([]Message(nil), s.History...)
	if s.Analysis != nil {
		a := s.Analysis.Clone()
		out.Analysis = &a
	}
	return out
}
