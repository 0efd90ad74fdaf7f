package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"law4you/internal/logger"
	"law4you/internal/trace"
)

// RequestTrace 는 모든 inbound 요청에 Request ID 를 보장하고 컨텍스트/헤더에 저장한 뒤,
// 응답이 끝나면 요청 로그를 남긴다. 업로드 바디는 파일일 수 있어 기록하지 않는다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(trace.HeaderRequestID)
		if requestID == "" {
			requestID = trace.GenerateID()
		}

		c.Request = req.WithContext(trace.WithRequestID(req.Context(), requestID))
		c.Writer.Header().Set(trace.HeaderRequestID, requestID)

		c.Next()

		fields := logger.Fields{
			"method":     req.Method,
			"path":       req.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": requestID,
			"span_id":    trace.CurrentSpanID(c.Request.Context()),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		logger.InfoWithFields("completed request", fields)
	}
}
