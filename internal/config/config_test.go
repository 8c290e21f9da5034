package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "STORE_BACKEND", "DB_DSN", "SQLITE_PATH", "REDIS_URL", "STORE_NAMESPACE"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, "ot-grc.db", cfg.SQLitePath)
	assert.Equal(t, "ot-grc", cfg.StoreNamespace)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, "DB_DSN is not set", err.Error())
}

func TestValidateBackends(t *testing.T) {
	t.Setenv("STORE_BACKEND", "SQLite")
	cfg := FromEnv()
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.NoError(t, cfg.Validate())

	cfg.StoreBackend = "etcd"
	assert.Error(t, cfg.Validate())
}
