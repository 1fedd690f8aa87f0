package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livraria-app/livraria/internal/catalog"
	"github.com/livraria-app/livraria/internal/database"
	"github.com/livraria-app/livraria/internal/database/books"
)

func setupBooksTest(t *testing.T) (*BooksController, *database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_books_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	controller := NewBooksController(books.NewRepository(db.DB), catalog.NewEngine(db.DB))

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return controller, db, cleanup
}

func newBooksRouter(controller *BooksController) *gin.Engine {
	router := gin.New()
	router.GET("/api/books/:take/:skip", controller.List)
	router.PUT("/api/books", controller.Upsert)
	return router
}

func putBook(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/books", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestBooksController_List(t *testing.T) {
	t.Run("returns empty list when no books exist", func(t *testing.T) {
		controller, _, cleanup := setupBooksTest(t)
		defer cleanup()
		router := newBooksRouter(controller)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/10/0", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})

	t.Run("returns books ordered by title with associations", func(t *testing.T) {
		controller, _, cleanup := setupBooksTest(t)
		defer cleanup()
		router := newBooksRouter(controller)

		putBook(t, router, `{"id":0,"title":"Moby Dick","sector":"Fiction","authors":["Herman Melville"],"themes":["Sea"]}`)
		putBook(t, router, `{"id":0,"title":"Dune","sector":"SciFi","authors":["Frank Herbert"],"themes":["Desert"]}`)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/10/0", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var page []BookModel
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		require.Len(t, page, 2)
		assert.Equal(t, "Dune", page[0].Title)
		assert.Equal(t, []string{"Frank Herbert"}, page[0].Authors)
		assert.Equal(t, []string{"Desert"}, page[0].Themes)
		assert.Equal(t, "Moby Dick", page[1].Title)
	})

	t.Run("filters by busca and tema", func(t *testing.T) {
		controller, _, cleanup := setupBooksTest(t)
		defer cleanup()
		router := newBooksRouter(controller)

		putBook(t, router, `{"id":0,"title":"Dune","sector":"SciFi","authors":["Frank Herbert"],"themes":["Desert"]}`)
		putBook(t, router, `{"id":0,"title":"Moby Dick","sector":"Fiction","authors":["Herman Melville"],"themes":["Sea"]}`)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/10/0?busca=Herbert&tema=Desert", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var page []BookModel
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		require.Len(t, page, 1)
		assert.Equal(t, "Dune", page[0].Title)
	})

	t.Run("rejects malformed pagination params", func(t *testing.T) {
		controller, _, cleanup := setupBooksTest(t)
		defer cleanup()
		router := newBooksRouter(controller)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/ten/0", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_Upsert(t *testing.T) {
	t.Run("creates a book with fresh associations", func(t *testing.T) {
		controller, _, cleanup := setupBooksTest(t)
		defer cleanup()
		router := newBooksRouter(controller)

		w := putBook(t, router, `{"id":0,"title":"New Book","sector":"Fiction","authors":["Jane Doe"],"themes":["Mystery"]}`)

		assert.Equal(t, http.StatusOK, w.Code)

		var model BookModel
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &model))
		assert.NotZero(t, model.ID)
		assert.Equal(t, "New Book", model.Title)
		assert.Equal(t, []string{"Jane Doe"}, model.Authors)
		assert.Equal(t, []string{"Mystery"}, model.Themes)
	})

	t.Run("rejects duplicate title with conflict message", func(t *testing.T) {
		controller, _, cleanup := setupBooksTest(t)
		defer cleanup()
		router := newBooksRouter(controller)

		w := putBook(t, router, `{"id":0,"title":"Dune","sector":"SciFi","authors":[],"themes":[]}`)
		require.Equal(t, http.StatusOK, w.Code)
		var first BookModel
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

		w = putBook(t, router, `{"id":0,"title":"Dune","sector":"Fantasy","authors":[],"themes":[]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), TitleConflictMessage)
	})

	t.Run("updates an existing book", func(t *testing.T) {
		controller, _, cleanup := setupBooksTest(t)
		defer cleanup()
		router := newBooksRouter(controller)

		w := putBook(t, router, `{"id":0,"title":"Dune","sector":"SciFi","authors":["Frank Herbert"],"themes":[]}`)
		require.Equal(t, http.StatusOK, w.Code)
		var created BookModel
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		body, _ := json.Marshal(BookModel{
			ID: created.ID, Title: "Dune (Revised)", Sector: "Science Fiction",
			Authors: []string{"Frank Herbert"}, Themes: []string{"Desert"},
		})
		w = putBook(t, router, string(body))

		assert.Equal(t, http.StatusOK, w.Code)
		var updated BookModel
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Dune (Revised)", updated.Title)
		assert.Equal(t, []string{"Desert"}, updated.Themes)
	})

	t.Run("rejects malformed payload", func(t *testing.T) {
		controller, _, cleanup := setupBooksTest(t)
		defer cleanup()
		router := newBooksRouter(controller)

		w := putBook(t, router, `{"title": 42}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
