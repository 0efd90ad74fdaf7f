package dto

import (
	"time"

	"law4you/models"
)

type ChatRequestDTO struct {
	Message string `json:"message" example:"The tenant shall vacate within 30 days."`
}

// TurnResponseDTO 는 한 번의 분석 요청 결과이다.
type TurnResponseDTO struct {
	SessionID string                 `json:"session_id"`
	Reply     string                 `json:"reply"`
	Analysis  *models.AnalysisResult `json:"analysis,omitempty"`
	Duplicate bool                   `json:"duplicate,omitempty"`
}

type SessionSummaryDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Current bool   `json:"current"`
}

type ListSessionsResponseDTO struct {
	Items []SessionSummaryDTO `json:"items"`
}

type MessageDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionDTO struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Messages  []MessageDTO           `json:"messages"`
	Analysis  *models.AnalysisResult `json:"analysis"`
	CreatedAt time.Time              `json:"created_at"`
}

// ErrorResponseDTO 는 공통 에러 응답 형식이다.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"Could not process input. Please try again."`
}

func NewSessionDTO(s models.ChatSession) SessionDTO {
	out := SessionDTO{
		ID:        s.ID,
		Name:      s.Name,
		Messages:  make([]MessageDTO, 0, len(s.History)),
		Analysis:  s.Analysis,
		CreatedAt: s.CreatedAt,
	}
	for _, m := range s.History {
		out.Messages = append(out.Messages, MessageDTO{Role: string(m.Role), Content: m.Content, CreatedAt: m.CreatedAt})
	}
	return out
}
