package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	VisitorCookie = "law4you_visitor"
	visitorKey    = "visitor_id"

	visitorCookieMaxAge = 30 * 24 * 60 * 60
)

// Visitor 는 브라우저마다 세션 저장소를 분리하기 위한 visitor 쿠키를 보장한다.
// 인증 수단이 아니며, 유효한 UUID 가 아니면 새로 발급한다.
func Visitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(VisitorCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookie, id, visitorCookieMaxAge, "/", "", false, true)
		}
		c.Set(visitorKey, id)
		c.Next()
	}
}

// VisitorID 는 Visitor 미들웨어가 저장한 visitor id 를 반환한다.
func VisitorID(c *gin.Context) string {
	return c.GetString(visitorKey)
}
