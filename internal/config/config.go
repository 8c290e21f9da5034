package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Config struct {
	ServerPort    string
	SessionSecret string

	StoreBackend   string
	DBDSN          string
	SQLitePath     string
	RedisURL       string
	StoreNamespace string

	ImportWatchDir string
}

// Load читает окружение (+ .env, если есть). Без обязательных переменных — выходим.
func Load() *Config {
	cfg := FromEnv()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}

	return cfg
}

// FromEnv — то же без проверок, для CLI
func FromEnv() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:     os.Getenv("SERVER_PORT"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		StoreBackend:   strings.ToLower(os.Getenv("STORE_BACKEND")),
		DBDSN:          os.Getenv("DB_DSN"),
		SQLitePath:     os.Getenv("SQLITE_PATH"),
		RedisURL:       os.Getenv("REDIS_URL"),
		StoreNamespace: os.Getenv("STORE_NAMESPACE"),
		ImportWatchDir: os.Getenv("IMPORT_WATCH_DIR"),
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = BackendPostgres
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "ot-grc.db"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379"
	}
	if cfg.StoreNamespace == "" {
		cfg.StoreNamespace = "ot-grc"
	}

	return cfg
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendPostgres:
		if c.DBDSN == "" {
			return errors.New("DB_DSN is not set")
		}
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return errors.New("unknown STORE_BACKEND: " + c.StoreBackend)
	}
	return nil
}
