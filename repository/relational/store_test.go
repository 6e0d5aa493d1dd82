package relational

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/RigelNana/arkstudy/services/admin-service/config"
	"github.com/RigelNana/arkstudy/services/admin-service/database"
	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"github.com/RigelNana/arkstudy/services/admin-service/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openSQLite 每个测试使用独立的内存数据库
func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := database.Open("sqlite", config.DatabaseConfig{SQLitePath: dsn}, nil)
	require.NoError(t, err)
	return db
}

func TestStoreAutoMigrate(t *testing.T) {
	repotest.RunStorageTests(t, "SQLiteAutoMigrate", func(t *testing.T) repository.Storage {
		db := openSQLite(t)
		require.NoError(t, AutoMigrate(db))
		return New(db)
	})
}

func TestStoreGooseSchema(t *testing.T) {
	repotest.RunStorageTests(t, "SQLiteGoose", func(t *testing.T) repository.Storage {
		db := openSQLite(t)
		require.NoError(t, database.Migrate(context.Background(), db, "sqlite", "up"))
		return New(db)
	})
}

func TestUpdateWithEmptyPatch(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, AutoMigrate(db))
	s := New(db)
	defer s.Close()

	ctx := context.Background()
	b, err := s.CreateBoard(ctx, models.InsertBoard{Name: "NEET", Type: models.BoardTypeCompetitive})
	require.NoError(t, err)

	got, err := s.UpdateBoard(ctx, b.ID, models.BoardPatch{})
	require.NoError(t, err)
	assert.Equal(t, "NEET", got.Name)
	assert.True(t, got.IsActive)

	_, err = s.UpdateBoard(ctx, b.ID+1, models.BoardPatch{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestInactiveBoardIsPersisted(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, AutoMigrate(db))
	s := New(db)
	defer s.Close()

	inactive := false
	b, err := s.CreateBoard(context.Background(), models.InsertBoard{Name: "Old", Type: models.BoardTypeProfessional, IsActive: &inactive})
	require.NoError(t, err)

	got, err := s.GetBoard(context.Background(), b.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestMigrateUnknownCommand(t *testing.T) {
	db := openSQLite(t)
	err := database.Migrate(context.Background(), db, "sqlite", "sideways")
	assert.ErrorContains(t, err, "unknown migrate command")

	err = database.Migrate(context.Background(), db, "mysql", "up")
	assert.Error(t, err)
}
