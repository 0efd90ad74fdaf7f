package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"law4you/cmd/web/handlers"
	"law4you/cmd/web/middleware"
	"law4you/cmd/web/view"
	"law4you/internal/trace"
	"law4you/session"
)

type Deps struct {
	Registry       *session.Registry
	Runner         handlers.TurnRunner
	MaxUploadBytes int64
}

// New 는 HTML 화면과 /api/v1 JSON API 를 같은 엔진에 등록한다.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace())
	r.MaxMultipartMemory = d.MaxUploadBytes
	r.SetHTMLTemplate(view.Templates())

	r.GET("/health", handlers.HealthHandler(d.Registry))

	web := r.Group("/", middleware.Visitor())
	{
		web.GET("/", handlers.IndexHandler(d.Registry))
		web.POST("/chat", handlers.SendMessageHandler(d.Registry, d.Runner))
		web.POST("/upload", handlers.UploadHandler(d.Registry, d.Runner, d.MaxUploadBytes))
		web.POST("/sessions", handlers.NewSessionHandler(d.Registry))
		web.POST("/sessions/:id/switch", handlers.SwitchSessionHandler(d.Registry))
	}

	// v1 routes
	api := r.Group("/api/v1", middleware.Visitor())
	{
		api.GET("/sessions", handlers.ListSessionsHandler(d.Registry))
		api.POST("/sessions", handlers.CreateSessionHandler(d.Registry))
		api.GET("/sessions/current", handlers.CurrentSessionHandler(d.Registry))
		api.POST("/sessions/:id/switch", handlers.SwitchSessionAPIHandler(d.Registry))
		api.POST("/chat", handlers.ChatHandler(d.Registry, d.Runner))
		api.POST("/upload", handlers.UploadAPIHandler(d.Registry, d.Runner, d.MaxUploadBytes))
	}

	return r
}

// WithCORS 는 설정된 origin 에서 visitor 쿠키와 함께 API 를 호출할 수 있게 한다.
// origin 목록이 비어 있으면 엔진을 그대로 반환한다.
func WithCORS(h http.Handler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		return h
	}
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type", trace.HeaderRequestID},
		ExposedHeaders:   []string{trace.HeaderRequestID},
		AllowCredentials: true,
	}).Handler(h)
}
