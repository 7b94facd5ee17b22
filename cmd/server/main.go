package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do"
	"github.com/shouni/gemini-image-studio/internal/config"
	"github.com/shouni/gemini-image-studio/internal/inject"
	"github.com/shouni/gemini-image-studio/internal/log"
	"github.com/shouni/gemini-image-studio/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("shutting down due to error", "error", err)
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func run() error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(log.New(os.Stderr, settings.LogLevel))

	if settings.APIKey == "" {
		slog.Warn("API_KEY が設定されていません。画像生成はエラーになります")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	injector := inject.Setup(ctx, settings, nil)
	defer func() { _ = injector.Shutdown() }()

	srv, err := do.Invoke[*server.HTTPServer](injector)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	return srv.ListenAndServe(ctx, settings.ListenAddr)
}
