package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	DefaultSettle = 500 * time.Millisecond

	ProcessedDir = "processed"
	FailedDir    = "failed"
)

// Watcher следит за папкой и отдаёт новые/изменённые файлы инвентаризации.
// Create и следующие за ним Write склеиваются: файл отдаётся после паузы Settle.
// Handle вызывается строго по одному файлу за раз; после обработки файл
// переносится в processed/ или failed/, чтобы не импортироваться повторно.
type Watcher struct {
	Dir    string
	Settle time.Duration
	Logger *slog.Logger
	Handle func(ctx context.Context, path string) error
}

// Run блокируется до отмены ctx
func (w *Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	settle := w.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.Dir, err)
	}
	logger.Info("watching import folder", "dir", w.Dir)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ready := make(chan string, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.work(ctx, ready, logger)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	var mu sync.Mutex
	pending := map[string]*time.Timer{}
	defer func() {
		mu.Lock()
		for _, t := range pending {
			t.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if _, err := DetectFormat(event.Name); err != nil {
				continue
			}
			path := event.Name
			mu.Lock()
			if t, ok := pending[path]; ok {
				t.Reset(settle)
			} else {
				pending[path] = time.AfterFunc(settle, func() {
					mu.Lock()
					delete(pending, path)
					mu.Unlock()
					select {
					case ready <- path:
					case <-ctx.Done():
					}
				})
			}
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("import watcher error", "error", err)
		}
	}
}

// work — единственный обработчик очереди
func (w *Watcher) work(ctx context.Context, ready <-chan string, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case path := <-ready:
			if _, err := os.Stat(path); err != nil {
				// файл уже унесли
				continue
			}
			target := ProcessedDir
			if err := w.Handle(ctx, path); err != nil {
				logger.Warn("import of dropped file failed", "path", path, "error", err)
				target = FailedDir
			}
			moved, err := moveInto(filepath.Join(w.Dir, target), path)
			if err != nil {
				logger.Error("failed to move handled file", "path", path, "error", err)
				continue
			}
			logger.Info("dropped file handled", "path", path, "moved", moved)
		}
	}
}

// moveInto переносит файл в dir, не затирая уже лежащий там файл с тем же именем
func moveInto(dir, path string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	base := filepath.Base(path)
	target := filepath.Join(dir, base)
	if _, err := os.Stat(target); err == nil {
		ext := filepath.Ext(base)
		stem := base[:len(base)-len(ext)]
		target = filepath.Join(dir, stem+"-"+strconv.FormatInt(time.Now().UnixNano(), 10)+ext)
	}
	if err := os.Rename(path, target); err != nil {
		return "", err
	}
	return target, nil
}
