// Package catalog implements the book reconciliation engine: matching
// submitted author names and theme values to existing rows (creating them
// lazily) and ensuring the right join rows exist for the book.
package catalog

import (
	"errors"

	"gorm.io/gorm"

	"github.com/livraria-app/livraria/internal/database/books"
	"github.com/livraria-app/livraria/internal/database/people"
	"github.com/livraria-app/livraria/internal/database/themes"
	"github.com/livraria-app/livraria/internal/entities"
)

// ErrTitleTaken is returned when another book already carries the
// submitted title.
var ErrTitleTaken = errors.New("book title already registered")

// DesiredBook is the submitted representation of a book: plain author names
// and theme values instead of ids, so callers never resolve ids client-side.
// Lists keep their submitted order and may contain duplicates.
type DesiredBook struct {
	ID      uint
	Title   string
	Sector  string
	Authors []string
	Themes  []string
}

// BookStore provides the book and join-row operations the engine needs.
type BookStore interface {
	FindByTitleExcluding(title string, excludeID uint) (*entities.Book, error)
	Create(book *entities.Book) error
	Update(book *entities.Book) error
	FindAuthorLink(bookID, authorID uint) (*entities.BookAuthor, error)
	CreateAuthorLink(link *entities.BookAuthor) error
	FindThemeLink(bookID, themeID uint) (*entities.BookTheme, error)
	CreateThemeLink(link *entities.BookTheme) error
}

// PersonStore provides person lookup and creation by natural key.
type PersonStore interface {
	FindByName(name string) (*entities.Person, error)
	Create(person *entities.Person) error
}

// ThemeStore provides theme lookup and creation by natural key.
type ThemeStore interface {
	FindByValue(value string) (*entities.Theme, error)
	Create(theme *entities.Theme) error
}

// Stores bundles the per-entity repositories the engine works against.
type Stores struct {
	Books  BookStore
	People PersonStore
	Themes ThemeStore
}

// StoreFactory builds transaction-scoped stores. Every Reconcile call runs
// inside one transaction, so the factory receives the transaction handle.
type StoreFactory func(tx *gorm.DB) Stores

// Engine persists desired book states against the catalog.
type Engine struct {
	db     *gorm.DB
	stores StoreFactory
}

// NewEngine creates a reconciliation engine backed by the default
// repositories.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db, stores: defaultStores}
}

// NewEngineWithStores creates an engine with a custom store factory.
// Used by tests to observe or fail individual store operations.
func NewEngineWithStores(db *gorm.DB, factory StoreFactory) *Engine {
	return &Engine{db: db, stores: factory}
}

func defaultStores(tx *gorm.DB) Stores {
	return Stores{
		Books:  books.NewRepository(tx),
		People: people.NewRepository(tx),
		Themes: themes.NewRepository(tx),
	}
}

// Reconcile persists the desired book state and returns the resulting book
// with the reconciled associations attached.
//
// The whole operation (duplicate-title guard, book upsert, author and theme
// reconciliation) runs in a single transaction: a failure partway through
// leaves no partial state behind.
func (e *Engine) Reconcile(desired DesiredBook) (*entities.Book, error) {
	var result *entities.Book

	err := e.db.Transaction(func(tx *gorm.DB) error {
		stores := e.stores(tx)

		// Guard before any mutation: the title must not belong to a
		// different book.
		_, err := stores.Books.FindByTitleExcluding(desired.Title, desired.ID)
		if err == nil {
			return ErrTitleTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		book := &entities.Book{
			ID:     desired.ID,
			Title:  desired.Title,
			Sector: desired.Sector,
		}
		if desired.ID > 0 {
			err = stores.Books.Update(book)
		} else {
			err = stores.Books.Create(book)
		}
		if err != nil {
			return err
		}

		if err := reconcileAuthors(stores, book, desired.Authors); err != nil {
			return err
		}
		if err := reconcileThemes(stores, book, desired.Themes); err != nil {
			return err
		}

		result = book
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// reconcileAuthors matches each submitted name to a person (creating one on
// a miss) and ensures exactly one author link per (book, person) pair.
// Duplicate names within one submission collapse to a single link.
func reconcileAuthors(stores Stores, book *entities.Book, names []string) error {
	seen := make(map[uint]bool)
	for _, name := range names {
		author, err := stores.People.FindByName(name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			author = &entities.Person{Name: name}
			if err := stores.People.Create(author); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if seen[author.ID] {
			continue
		}
		seen[author.ID] = true

		link, err := stores.Books.FindAuthorLink(book.ID, author.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			link = &entities.BookAuthor{BookID: book.ID, AuthorID: author.ID}
			if err := stores.Books.CreateAuthorLink(link); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		link.Author = *author
		book.Authors = append(book.Authors, *link)
	}
	return nil
}

// reconcileThemes is the author algorithm with themes substituted,
// matching by exact value equality.
func reconcileThemes(stores Stores, book *entities.Book, values []string) error {
	seen := make(map[uint]bool)
	for _, value := range values {
		theme, err := stores.Themes.FindByValue(value)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			theme = &entities.Theme{Value: value}
			if err := stores.Themes.Create(theme); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if seen[theme.ID] {
			continue
		}
		seen[theme.ID] = true

		link, err := stores.Books.FindThemeLink(book.ID, theme.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			link = &entities.BookTheme{BookID: book.ID, ThemeID: theme.ID}
			if err := stores.Books.CreateThemeLink(link); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		link.Theme = *theme
		book.Themes = append(book.Themes, *link)
	}
	return nil
}
