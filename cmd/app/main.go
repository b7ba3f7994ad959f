package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"examgen/internal/config"
	"examgen/internal/exam"
	"examgen/internal/gemini"
	"examgen/internal/httpserver"
	"examgen/internal/transport"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := transport.NewHTTPClient(cfg.Gemini.Timeout)
	client, err := newGeminiClient(ctx, cfg.Gemini, httpClient, logger)
	if err != nil {
		log.Fatalf("failed to init gemini client: %v", err)
	}
	if client == nil {
		logger.Warn("GEMINI_API_KEY is not set; generation requests will fail with a configuration error")
	}

	service := exam.NewService(exam.SettingsFromConfig(cfg.Gemini), client, logger)
	handler := exam.NewHandler(exam.HandlerDeps{
		Service:      service,
		Logger:       logger,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Logger:           logger,
		CORSOrigins:      cfg.CORSOrigins,
		ExamHandler:      handler.GenerateExam,
		AnswerKeyHandler: handler.GenerateAnswerKey,
	})

	// WriteTimeout leaves room for a full provider call plus encoding.
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Gemini.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr()),
			slog.String("model", cfg.Gemini.Model),
			slog.String("backend", cfg.Gemini.Backend),
		)
		logEndpoints(logger, cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// newGeminiClient returns nil without an API key so the service can answer
// with a configuration error instead of refusing to start.
func newGeminiClient(ctx context.Context, cfg config.GeminiConfig, httpClient *http.Client, logger *slog.Logger) (gemini.Client, error) {
	if !cfg.HasAPIKey() {
		return nil, nil
	}
	if cfg.Backend == config.BackendSDK {
		client, err := gemini.NewSDKClient(ctx, cfg, httpClient, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	client, err := gemini.NewRESTClient(cfg, httpClient, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func logEndpoints(logger *slog.Logger, port int) {
	base := fmt.Sprintf("http://localhost:%d", port)
	logger.Info("endpoints",
		slog.String("health", "GET "+base+"/health"),
		slog.String("exam", "POST "+base+"/api/exams/generate"),
		slog.String("answer_key", "POST "+base+"/api/exams/answer-key"),
	)
}

func newLogger(level string) *slog.Logger {
	slogLevel := slog.LevelInfo
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
}
