package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"ot-grc/internal/assessment"
	"ot-grc/internal/config"
	"ot-grc/internal/handlers"
	"ot-grc/internal/importer"
)

const (
	shutdownTimeout = 10 * time.Second

	importRetries    = 5
	importRetryDelay = 200 * time.Millisecond
)

// Run поднимает HTTP и (если задано) папку автоимпорта, блокируется до отмены ctx.
// Оценка при остановке не сохраняется: сохранение только по явному Save.
func Run(ctx context.Context, cfg *config.Config, api *handlers.API, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watchDone := make(chan struct{})
	if cfg.ImportWatchDir != "" {
		w := &importer.Watcher{
			Dir:    cfg.ImportWatchDir,
			Logger: logger,
			Handle: func(ctx context.Context, path string) error {
				return importDropped(ctx, api.Engine, path, logger)
			},
		}
		go func() {
			defer close(watchDone)
			if err := w.Run(ctx); err != nil {
				logger.Error("import watcher stopped", "dir", cfg.ImportWatchDir, "error", err)
			}
		}()
	} else {
		close(watchDone)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: NewRouter(cfg, api),
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		runErr = fmt.Errorf("server error: %w", err)
	}
	log.Println("shutting down")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	<-watchDone
	return runErr
}

// importDropped: параллельный импорт через HTTP не должен терять файл из папки
func importDropped(ctx context.Context, engine *assessment.Engine, path string, logger *slog.Logger) error {
	for attempt := 1; ; attempt++ {
		assets, err := engine.ImportFile(ctx, path)
		if err == nil {
			logger.Info("watched import done", "path", path, "assets", len(assets))
			return nil
		}
		if !errors.Is(err, assessment.ErrImportInProgress) || attempt == importRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(importRetryDelay):
		}
	}
}
