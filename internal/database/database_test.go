package database

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livraria-app/livraria/internal/entities"
)

func setupTestDB(t *testing.T) (*Database, string, func()) {
	t.Helper()
	dbPath := "./test_database_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, dbPath, cleanup
}

func TestNewDatabase(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	for _, table := range []string{"books", "people", "themes", "book_authors", "book_themes", "users"} {
		assert.True(t, db.DB.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestNewDatabase_SeedsAdminPerson(t *testing.T) {
	db, dbPath, cleanup := setupTestDB(t)
	defer cleanup()

	person, err := db.AdminPerson()
	require.NoError(t, err)
	assert.Equal(t, AdminPersonName, person.Name)

	// Reopening the same file does not duplicate the seed
	require.NoError(t, db.Close())
	reopened, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	var count int64
	reopened.DB.Model(&entities.Person{}).Where("name = ?", AdminPersonName).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDatabase_CascadeDeletesLinks(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	author := entities.Person{Name: "Frank Herbert"}
	require.NoError(t, db.DB.Create(&author).Error)
	book := entities.Book{Title: "Dune"}
	require.NoError(t, db.DB.Omit("Authors", "Themes").Create(&book).Error)
	require.NoError(t, db.DB.Omit("Book", "Author").Create(&entities.BookAuthor{BookID: book.ID, AuthorID: author.ID}).Error)

	require.NoError(t, db.DB.Delete(&entities.Book{}, book.ID).Error)

	var links int64
	db.DB.Model(&entities.BookAuthor{}).Count(&links)
	assert.Zero(t, links)
}
