package assessment

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ot-grc/internal/importer"
	"ot-grc/internal/models"
)

// Import разбирает файл инвентаризации и добавляет активы в конец списка.
// Либо добавляются все строки, либо ничего. Параллельный импорт отклоняется.
func (e *Engine) Import(ctx context.Context, filename string, r io.Reader) ([]models.Asset, error) {
	if !e.importing.CompareAndSwap(false, true) {
		return nil, ErrImportInProgress
	}
	defer e.importing.Store(false)

	format, err := importer.DetectFormat(filename)
	if err != nil {
		e.metrics.RecordImport("unsupported", 0, err)
		return nil, err
	}

	assets, err := e.parse(ctx, filename, r)
	e.metrics.RecordImport(string(format), len(assets), err)
	if err != nil {
		e.logger.Warn("asset import failed", "file", filepath.Base(filename), "error", err)
		return nil, err
	}

	err = e.update(func(a *models.Assessment) error {
		a.Assets = append(a.Assets, assets...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("assets imported", "file", filepath.Base(filename), "format", format, "count", len(assets))
	return assets, nil
}

func (e *Engine) parse(ctx context.Context, filename string, r io.Reader) ([]models.Asset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(filename), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := importer.Parse(filename, data)
	if err != nil {
		return nil, err
	}
	return importer.ToAssets(rows, e.newID)
}

// ImportFile — импорт с диска (папка импорта, CLI)
func (e *Engine) ImportFile(ctx context.Context, path string) ([]models.Asset, error) {
	if _, err := importer.DetectFormat(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return e.Import(ctx, path, f)
}
