package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"law4you/chat"
	"law4you/cmd/web/middleware"
	"law4you/session"
)

var errUploadTooLarge = errors.New("upload exceeds size limit")

// TurnRunner 는 채팅 컨트롤러의 한 턴 실행부이다.
type TurnRunner interface {
	HandleTurn(ctx context.Context, store *session.Store, in chat.Input) (*chat.TurnResult, error)
}

func storeFor(c *gin.Context, reg *session.Registry) *session.Store {
	return reg.StoreFor(middleware.VisitorID(c))
}

func newUploadID() string {
	return uuid.NewString()
}

// readUpload 는 multipart "file" 필드를 읽어 chat.Input 으로 변환한다.
func readUpload(c *gin.Context, maxBytes int64) (chat.Input, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return chat.Input{}, fmt.Errorf("%w: %v", chat.ErrUnprocessableInput, err)
	}
	if fh.Size > maxBytes {
		return chat.Input{}, fmt.Errorf("%w: %w: %s", chat.ErrUnprocessableInput, errUploadTooLarge, fh.Filename)
	}

	f, err := fh.Open()
	if err != nil {
		return chat.Input{}, fmt.Errorf("%w: %v", chat.ErrUnprocessableInput, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return chat.Input{}, fmt.Errorf("%w: %v", chat.ErrUnprocessableInput, err)
	}
	if int64(len(data)) > maxBytes {
		return chat.Input{}, fmt.Errorf("%w: %w: %s", chat.ErrUnprocessableInput, errUploadTooLarge, fh.Filename)
	}
	if len(data) == 0 {
		return chat.Input{}, fmt.Errorf("%w: empty file %s", chat.ErrUnprocessableInput, fh.Filename)
	}

	return chat.NewUpload(c.PostForm("upload_id"), fh.Filename, data)
}

// statusFor 는 입력 에러를 HTTP 상태 코드로 변환한다.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, chat.ErrUnsupportedUpload):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, chat.ErrNoActiveSession):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
