package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"law4you/chat"
	"law4you/cmd/web/dto"
	"law4you/session"
)

// @Summary List chat sessions
// @Description List the visitor's chat sessions, newest first
// @Tags sessions
// @Produce json
// @Success 200 {object} dto.ListSessionsResponseDTO
// @Router /api/v1/sessions [get]
func ListSessionsHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries := storeFor(c, reg).List()
		items := make([]dto.SessionSummaryDTO, 0, len(summaries))
		for _, s := range summaries {
			items = append(items, dto.SessionSummaryDTO{ID: s.ID, Name: s.Name, Current: s.Current})
		}
		c.JSON(http.StatusOK, dto.ListSessionsResponseDTO{Items: items})
	}
}

// @Summary Create a chat session
// @Description Create a new empty session and make it current
// @Tags sessions
// @Produce json
// @Success 201 {object} dto.SessionDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Router /api/v1/sessions [post]
func CreateSessionHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFor(c, reg)
		sess, err := store.Get(store.Create())
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusCreated, dto.NewSessionDTO(sess))
	}
}

// @Summary Switch the current session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionDTO
// @Failure 404 {object} dto.ErrorResponseDTO
// @Router /api/v1/sessions/{id}/switch [post]
func SwitchSessionAPIHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFor(c, reg)
		id := c.Param("id")
		if err := store.Switch(id); err != nil {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		sess, err := store.Get(id)
		if err != nil {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.NewSessionDTO(sess))
	}
}

// @Summary Get the current session
// @Description Transcript and latest analysis of the current session
// @Tags sessions
// @Produce json
// @Success 200 {object} dto.SessionDTO
// @Failure 404 {object} dto.ErrorResponseDTO
// @Router /api/v1/sessions/current [get]
func CurrentSessionHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := storeFor(c, reg).Current()
		if !ok {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: chat.WarnNoActiveSession})
			return
		}
		c.JSON(http.StatusOK, dto.NewSessionDTO(sess))
	}
}

// @Summary Analyze a clause
// @Description Analyze legal text in the current session
// @Tags chat
// @Accept json
// @Produce json
// @Param body body dto.ChatRequestDTO true "Clause"
// @Success 200 {object} dto.TurnResponseDTO
// @Failure 400 {object} dto.ErrorResponseDTO
// @Failure 409 {object} dto.ErrorResponseDTO
// @Router /api/v1/chat [post]
func ChatHandler(reg *session.Registry, runner TurnRunner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ChatRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		runTurn(c, storeFor(c, reg), runner, chat.NewText(req.Message))
	}
}

// @Summary Analyze an uploaded document
// @Description Analyze a PDF or PNG/JPG upload in the current session
// @Tags chat
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF, PNG or JPG"
// @Param upload_id formData string false "Idempotency key"
// @Success 200 {object} dto.TurnResponseDTO
// @Failure 400 {object} dto.ErrorResponseDTO
// @Failure 413 {object} dto.ErrorResponseDTO
// @Failure 415 {object} dto.ErrorResponseDTO
// @Router /api/v1/upload [post]
func UploadAPIHandler(reg *session.Registry, runner TurnRunner, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, err := readUpload(c, maxBytes)
		if err != nil {
			writeInputError(c, err)
			return
		}
		runTurn(c, storeFor(c, reg), runner, in)
	}
}

func runTurn(c *gin.Context, store *session.Store, runner TurnRunner, in chat.Input) {
	res, err := runner.HandleTurn(c.Request.Context(), store, in)
	if err != nil {
		writeInputError(c, err)
		return
	}

	out := dto.TurnResponseDTO{SessionID: res.SessionID, Duplicate: res.Duplicate}
	if !res.Duplicate {
		analysis := res.Analysis
		out.Reply = res.Reply.Content
		out.Analysis = &analysis
	}
	c.JSON(http.StatusOK, out)
}

func writeInputError(c *gin.Context, err error) {
	msg := chat.WarningFor(err)
	if errors.Is(err, errUploadTooLarge) {
		msg = err.Error()
	}
	c.JSON(statusFor(err), dto.ErrorResponseDTO{Error: msg})
}
