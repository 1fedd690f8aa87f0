package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/livraria-app/livraria/internal/catalog"
	"github.com/livraria-app/livraria/internal/entities"
)

// TitleConflictMessage is the response body text for a duplicate-title
// upsert, kept verbatim from the original API.
const TitleConflictMessage = "Livro ja cadastrado."

// BookLister provides paged, filtered access to the catalog.
type BookLister interface {
	List(take, skip int, busca, tema string) ([]entities.Book, error)
}

// BookReconciler persists a desired book state.
type BookReconciler interface {
	Reconcile(desired catalog.DesiredBook) (*entities.Book, error)
}

// BookModel is the wire representation of a book: plain author names and
// theme values instead of ids.
type BookModel struct {
	ID      uint     `json:"id"`
	Title   string   `json:"title"`
	Sector  string   `json:"sector"`
	Authors []string `json:"authors"`
	Themes  []string `json:"themes"`
}

func toBookModel(book *entities.Book) BookModel {
	return BookModel{
		ID:      book.ID,
		Title:   book.Title,
		Sector:  book.Sector,
		Authors: book.AuthorNames(),
		Themes:  book.ThemeValues(),
	}
}

func toDesiredBook(model BookModel) catalog.DesiredBook {
	return catalog.DesiredBook{
		ID:      model.ID,
		Title:   model.Title,
		Sector:  model.Sector,
		Authors: model.Authors,
		Themes:  model.Themes,
	}
}

// BooksController serves the catalog listing and upsert endpoints.
type BooksController struct {
	lister     BookLister
	reconciler BookReconciler
}

// NewBooksController creates a new books controller.
func NewBooksController(lister BookLister, reconciler BookReconciler) *BooksController {
	return &BooksController{lister: lister, reconciler: reconciler}
}

// List returns a page of books ordered by title.
// GET /api/books/:take/:skip?busca=&tema=
func (bc *BooksController) List(c *gin.Context) {
	take, ok := parseIntParam(c, "take")
	if !ok {
		return
	}
	skip, ok := parseIntParam(c, "skip")
	if !ok {
		return
	}

	page, err := bc.lister.List(take, skip, c.Query("busca"), c.Query("tema"))
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	models := make([]BookModel, 0, len(page))
	for i := range page {
		models = append(models, toBookModel(&page[i]))
	}
	c.JSON(http.StatusOK, models)
}

// Upsert creates or updates a book along with its author and theme links.
// PUT /api/books
func (bc *BooksController) Upsert(c *gin.Context) {
	var model BookModel
	if err := c.ShouldBindJSON(&model); err != nil {
		respondBadRequest(c, "invalid book payload")
		return
	}

	book, err := bc.reconciler.Reconcile(toDesiredBook(model))
	if err != nil {
		if errors.Is(err, catalog.ErrTitleTaken) {
			respondBadRequest(c, TitleConflictMessage)
			return
		}
		respondInternalError(c, err, "upsert book")
		return
	}

	c.JSON(http.StatusOK, toBookModel(book))
}
