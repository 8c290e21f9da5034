package server

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ot-grc/internal/assessment"
	"ot-grc/internal/config"
	"ot-grc/internal/handlers"
	"ot-grc/internal/importer"
	"ot-grc/internal/metrics"
	"ot-grc/internal/models"
	"ot-grc/internal/store"
)

func TestRunMergesDropsAndDoesNotSaveOnShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	kv := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := metrics.NewRegistry()
	engine := assessment.New(context.Background(), kv, nil, assessment.Options{Logger: logger, Metrics: reg})

	_, err := engine.AddAsset(models.Asset{Name: "Unsaved PLC"})
	require.NoError(t, err)

	cfg := &config.Config{
		ServerPort:     "0",
		SessionSecret:  "test-secret",
		StoreBackend:   config.BackendMemory,
		ImportWatchDir: dir,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg, handlers.NewAPI(engine, kv, reg), logger) }()

	// даём наблюдателю подписаться на папку
	time.Sleep(200 * time.Millisecond)

	// два файла в одном окне ожидания: оба должны попасть в оценку
	require.NoError(t, os.WriteFile(filepath.Join(dir, "line-a.csv"), []byte("name\nPLC-A\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "line-b.csv"), []byte("name\nPLC-B\n"), 0o644))

	assert.Eventually(t, func() bool {
		return len(engine.Snapshot().Assets) == 3
	}, 5*time.Second, 50*time.Millisecond)

	assert.Eventually(t, func() bool {
		_, errA := os.Stat(filepath.Join(dir, importer.ProcessedDir, "line-a.csv"))
		_, errB := os.Stat(filepath.Join(dir, importer.ProcessedDir, "line-b.csv"))
		return errA == nil && errB == nil
	}, 2*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}

	// без явного Save оценка в хранилище не появляется
	_, err = kv.Get(context.Background(), store.KeyAssessment)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
