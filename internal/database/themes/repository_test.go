package themes

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/livraria-app/livraria/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	t.Helper()
	dbPath := "./test_themes_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Theme{},
		&entities.Book{},
		&entities.BookTheme{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func TestRepository_FindByValue(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	created := entities.Theme{Value: "Mystery"}
	require.NoError(t, db.Create(&created).Error)

	found, err := repo.FindByValue("Mystery")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindByValue("mystery")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_Create(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	theme := &entities.Theme{Value: "Politics"}
	require.NoError(t, repo.Create(theme))
	assert.NotZero(t, theme.ID)
}

func TestRepository_DeleteOrphans(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	linked := entities.Theme{Value: "Desert"}
	require.NoError(t, db.Create(&linked).Error)
	book := entities.Book{Title: "Dune"}
	require.NoError(t, db.Omit("Authors", "Themes").Create(&book).Error)
	require.NoError(t, db.Omit("Book", "Theme").Create(&entities.BookTheme{BookID: book.ID, ThemeID: linked.ID}).Error)

	require.NoError(t, db.Create(&entities.Theme{Value: "Unused"}).Error)

	deleted, err := repo.DeleteOrphans()
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining []entities.Theme
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Desert", remaining[0].Value)
}
