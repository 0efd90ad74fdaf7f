package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"law4you/analyzer"
	"law4you/chat"
	"law4you/cmd/web/router"
	"law4you/config"
	"law4you/db"
	"law4you/internal/httpclient"
	"law4you/internal/logger"
	"law4you/pdftext"
	"law4you/repositories"
	"law4you/session"
)

const shutdownTimeout = 10 * time.Second

// @title           Law4You API
// @version         1.0
// @description     AI legal assistant: clause simplification, glossary and risk scoring
// @BasePath        /api/v1
func main() {
	cfg, err := config.Load(config.GetBasePath())
	if err != nil {
		logger.Log.Errorf("failed to load config: %v", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging.Level)

	// API 키가 없으면 서버를 띄우지 않는다.
	if err := cfg.Validate(); err != nil {
		logger.Log.Errorf("configuration error: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gen, err := analyzer.NewGeminiGenerator(ctx, analyzer.GeminiConfig{
		APIKey:      cfg.APIKey(),
		TextModel:   cfg.LLM.TextModel,
		VisionModel: cfg.LLM.VisionModel,
		HTTPClient:  httpclient.NewDefault(),
	})
	if err != nil {
		logger.Log.Errorf("failed to create gemini client: %v", err)
		os.Exit(1)
	}

	var opts []analyzer.Option
	mongoClient, database, err := db.Connect(ctx, cfg.Mongo)
	switch {
	case errors.Is(err, db.ErrMongoDisabled):
		logger.Log.Info("mongo uri not set, ai_logs disabled")
	case err != nil:
		// 로그 저장은 부가 기능이므로 연결 실패 시에도 분석은 계속한다.
		logger.Log.Warnf("failed to connect mongo, ai_logs disabled: %v", err)
	default:
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()
		opts = append(opts, analyzer.WithRecorder(repositories.NewAILogRepository(database)))
	}

	an := analyzer.New(gen, opts...)
	controller := chat.NewController(an, pdftext.Extractor{})

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(router.Deps{
		Registry:       session.NewRegistry(),
		Runner:         controller,
		MaxUploadBytes: cfg.Upload.MaxBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.WithCORS(engine, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoWithFields("starting web server", logger.Fields{
			"addr":         cfg.Server.Addr,
			"text_model":   cfg.LLM.TextModel,
			"vision_model": cfg.LLM.VisionModel,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("web server error: %v", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown 설정
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down web server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("web server shutdown error: %v", err)
	}
	cancel()

	logger.Log.Info("web server stopped")
}
