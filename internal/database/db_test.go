package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ot-grc/internal/models"
)

func TestInitSQLiteSeedsUsers(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "root@plant.local")
	t.Setenv("ADMIN_PASSWORD", "S3cret!pass")

	db := InitSQLite(filepath.Join(t.TempDir(), "ot-grc.db"))
	t.Cleanup(func() { DB = nil })

	var admin models.User
	require.NoError(t, db.Where("role = ?", models.RoleAdmin).First(&admin).Error)
	assert.Equal(t, "root@plant.local", admin.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("S3cret!pass")))

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(3), count)

	// повторный запуск не плодит пользователей
	setup()
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(3), count)

	CreateAuditLog(admin.ID, "assessment", "", "save", "saved")
	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "save", logs[0].Action)
}
