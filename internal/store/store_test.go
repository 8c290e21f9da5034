package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, KeyAssessment)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, KeyAssessment, []byte(`{"a":1}`)))
	got, err := s.Get(ctx, KeyAssessment)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	// last write wins
	require.NoError(t, s.Set(ctx, KeyAssessment, []byte(`{"a":2}`)))
	got, err = s.Get(ctx, KeyAssessment)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got))

	require.NoError(t, s.Delete(ctx, KeyAssessment))
	_, err = s.Get(ctx, KeyAssessment)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemory())
}

func TestGormStoreSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "kv.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s, err := NewGorm(db, "test")
	require.NoError(t, err)
	testStoreContract(t, s)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedis(RedisOptions{URL: fmt.Sprintf("redis://%s", mr.Addr()), Namespace: "ot-grc"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	testStoreContract(t, s)

	require.NoError(t, s.Set(context.Background(), KeyProgress, []byte("{}")))
	assert.True(t, mr.Exists("ot-grc:"+KeyProgress))
}

func TestRedisStoreBadURL(t *testing.T) {
	_, err := NewRedis(RedisOptions{URL: "invalid://url"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}

func TestStoreUsers(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	p := StoreUsers{Store: s}

	uc := p.CurrentUser(ctx)
	assert.Nil(t, uc.UserTitle)
	assert.Nil(t, uc.UserRole)

	require.NoError(t, s.Set(ctx, KeyCurrentUser, []byte("{not json")))
	uc = p.CurrentUser(ctx)
	assert.Nil(t, uc.UserTitle)

	require.NoError(t, SetCurrentUser(ctx, s, "OT Security Lead", ""))
	uc = p.CurrentUser(ctx)
	require.NotNil(t, uc.UserTitle)
	assert.Equal(t, "OT Security Lead", *uc.UserTitle)
	assert.Nil(t, uc.UserRole)
}
