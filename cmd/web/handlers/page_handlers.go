package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"law4you/chat"
	"law4you/cmd/web/view"
	"law4you/internal/logger"
	"law4you/session"
)

const homePath = "/"

// IndexHandler 는 현재 세션 기준으로 전체 화면을 렌더링한다.
// 모든 POST 핸들러는 처리 후 이 화면으로 redirect 한다.
func IndexHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFor(c, reg)
		notice := store.TakeNotice()

		sess, ok := store.Current()
		if !ok {
			notice = chat.WarnNoActiveSession
		}

		page := view.Build(sess, store.List(), notice, newUploadID())
		c.HTML(http.StatusOK, view.IndexTemplate, page)
	}
}

// SendMessageHandler 는 텍스트 입력 폼(prompt)을 처리한다.
func SendMessageHandler(reg *session.Registry, runner TurnRunner) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFor(c, reg)
		in := chat.NewText(c.PostForm("prompt"))

		if _, err := runner.HandleTurn(c.Request.Context(), store, in); err != nil {
			store.SetNotice(chat.WarningFor(err))
		}
		c.Redirect(http.StatusSeeOther, homePath)
	}
}

// UploadHandler 는 PDF / 이미지 업로드 폼을 처리한다.
func UploadHandler(reg *session.Registry, runner TurnRunner, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFor(c, reg)

		in, err := readUpload(c, maxBytes)
		if err != nil {
			logger.Log.Warnf("upload rejected: %v", err)
			store.SetNotice(chat.WarningFor(err))
			c.Redirect(http.StatusSeeOther, homePath)
			return
		}

		if _, err := runner.HandleTurn(c.Request.Context(), store, in); err != nil {
			store.SetNotice(chat.WarningFor(err))
		}
		c.Redirect(http.StatusSeeOther, homePath)
	}
}

func NewSessionHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeFor(c, reg).Create()
		c.Redirect(http.StatusSeeOther, homePath)
	}
}

// SwitchSessionHandler 는 사이드바에서 선택한 세션으로 전환한다.
// 없는 세션이면 현재 세션을 유지한다.
func SwitchSessionHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFor(c, reg)
		if err := store.Switch(c.Param("id")); err != nil {
			logger.Log.Warnf("switch session failed: %v", err)
		}
		c.Redirect(http.StatusSeeOther, homePath)
	}
}
