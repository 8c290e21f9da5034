package server

import (
	"fmt"
	"log"

	"ot-grc/internal/config"
	"ot-grc/internal/database"
	"ot-grc/internal/store"

	"gorm.io/gorm"
)

// OpenStore поднимает БД пользователей/аудита и хранилище оценки по STORE_BACKEND.
// Пользователи всегда живут в SQL: postgres, если задан DB_DSN, иначе sqlite-файл.
func OpenStore(cfg *config.Config) (store.Store, func(), error) {
	var db *gorm.DB
	switch {
	case cfg.StoreBackend == config.BackendSQLite:
		db = database.InitSQLite(cfg.SQLitePath)
	case cfg.DBDSN != "":
		db = database.Init(cfg.DBDSN)
	default:
		db = database.InitSQLite(cfg.SQLitePath)
	}

	noop := func() {}

	switch cfg.StoreBackend {
	case config.BackendPostgres, config.BackendSQLite:
		st, err := store.NewGorm(db, cfg.StoreNamespace)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to init kv table: %w", err)
		}
		log.Printf("assessment store: %s (namespace=%s)", cfg.StoreBackend, cfg.StoreNamespace)
		return st, noop, nil

	case config.BackendRedis:
		st, err := store.NewRedis(store.RedisOptions{URL: cfg.RedisURL, Namespace: cfg.StoreNamespace})
		if err != nil {
			return nil, noop, err
		}
		log.Printf("assessment store: redis %s (namespace=%s)", cfg.RedisURL, cfg.StoreNamespace)
		return st, func() { _ = st.Close() }, nil

	case config.BackendMemory:
		log.Println("assessment store: memory, nothing survives a restart")
		return store.NewMemory(), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown STORE_BACKEND: %s", cfg.StoreBackend)
}
