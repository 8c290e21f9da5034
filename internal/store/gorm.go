package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ot-grc/internal/models"
)

// Gorm хранит блобы в таблице kv_entries (postgres в проде, sqlite локально)
type Gorm struct {
	db     *gorm.DB
	prefix string
}

func NewGorm(db *gorm.DB, namespace string) (*Gorm, error) {
	if err := db.AutoMigrate(&models.KVEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return &Gorm{db: db, prefix: prefixOf(namespace)}, nil
}

func (g *Gorm) Get(ctx context.Context, key string) ([]byte, error) {
	var e models.KVEntry
	err := g.db.WithContext(ctx).Where("kv_key = ?", g.prefix+key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return e.Value, nil
}

func (g *Gorm) Set(ctx context.Context, key string, value []byte) error {
	e := models.KVEntry{Key: g.prefix + key, Value: value}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (g *Gorm) Delete(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Where("kv_key = ?", g.prefix+key).Delete(&models.KVEntry{}).Error
}

func prefixOf(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + ":"
}
