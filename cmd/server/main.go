package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ot-grc/internal/assessment"
	"ot-grc/internal/config"
	"ot-grc/internal/handlers"
	"ot-grc/internal/metrics"
	"ot-grc/internal/server"
)

func main() {
	cfg := config.Load()

	st, closeStore, err := server.OpenStore(cfg)
	if err != nil {
		log.Fatalf("store error: %v", err)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	reg := metrics.DefaultRegistry()

	engine := assessment.New(ctx, st, nil, assessment.Options{
		Logger:  logger,
		Metrics: reg,
	})

	if err := server.Run(ctx, cfg, handlers.NewAPI(engine, st, reg), logger); err != nil {
		log.Printf("%v", err)
		closeStore()
		os.Exit(1)
	}
}
