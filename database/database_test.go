// database_test.go - Tests for connection setup and migrations

package database

import (
	"path/filepath"
	"testing"
	"time"

	"go-commands-backend/config"
	"go-commands-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		DBDriver:          "sqlite",
		DBPath:            filepath.Join(t.TempDir(), "test.db"),
		DBMaxOpenConns:    1,
		DBMaxIdleConns:    1,
		DBConnMaxLifetime: time.Minute,
		LogLevel:          "silent",
	}
}

func TestConnectMigratesTables(t *testing.T) {
	db, err := Connect(testConfig(t))
	require.NoError(t, err)
	defer Close(db)

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Command{}))
	assert.NoError(t, Ping(db))
}

func TestUniqueUsernameIsTranslated(t *testing.T) {
	db, err := Connect(testConfig(t))
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, db.Create(&models.User{Username: "alice", Password: "x"}).Error)
	err = db.Create(&models.User{Username: "alice", Password: "y"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestDeletingUserCascadesToCommands(t *testing.T) {
	db, err := Connect(testConfig(t))
	require.NoError(t, err)
	defer Close(db)

	user := models.User{Username: "bob", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	cmd := models.Command{Title: "ls", Technology: models.TechnologyBash, Content: "ls -la", UserID: user.ID, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&cmd).Error)

	require.NoError(t, db.Delete(&user).Error)

	var count int64
	require.NoError(t, db.Model(&models.Command{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}
