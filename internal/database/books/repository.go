// Package books provides database operations for catalog books and their
// author/theme links.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	page, err := repo.List(20, 0, "Herbert", "")
package books

import (
	"gorm.io/gorm"

	"github.com/livraria-app/livraria/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns a page of books ordered by title ascending, fully populated
// with author and theme links.
//
// busca, when non-empty, matches books whose title contains the substring or
// having at least one author whose name contains it (store-default case
// sensitivity). tema, when non-empty, restricts to books linked to a theme
// with that exact value. The theme filter is applied to the already-paginated
// window, matching the behavior of the original controller.
func (r *Repository) List(take, skip int, busca, tema string) ([]entities.Book, error) {
	query := r.db.
		Preload("Authors.Author").
		Preload("Themes.Theme")

	if busca != "" {
		pattern := "%" + busca + "%"
		query = query.Where(
			`title LIKE ? OR id IN (
				SELECT book_id FROM book_authors
				JOIN people ON people.id = book_authors.author_id
				WHERE people.name LIKE ?
			)`, pattern, pattern)
	}

	var page []entities.Book
	err := query.
		Order("title ASC").
		Limit(take).
		Offset(skip).
		Find(&page).Error
	if err != nil {
		return nil, err
	}

	if tema == "" {
		return page, nil
	}

	filtered := make([]entities.Book, 0, len(page))
	for _, book := range page {
		for _, link := range book.Themes {
			if link.Theme.Value == tema {
				filtered = append(filtered, book)
				break
			}
		}
	}
	return filtered, nil
}

// GetByID retrieves a book with all its author and theme links.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.
		Preload("Authors.Author").
		Preload("Themes.Theme").
		First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByTitleExcluding retrieves a book carrying the given title whose id
// differs from excludeID. Used for the duplicate-title guard.
func (r *Repository) FindByTitleExcluding(title string, excludeID uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("title = ? AND id <> ?", title, excludeID).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Create inserts a new book row.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Omit("Authors", "Themes").Create(book).Error
}

// Update rewrites the title and sector of an existing book row.
func (r *Repository) Update(book *entities.Book) error {
	return r.db.Model(&entities.Book{ID: book.ID}).
		Select("title", "sector").
		Updates(map[string]any{"title": book.Title, "sector": book.Sector}).Error
}

// FindAuthorLink retrieves the author link for the (book, person) pair.
func (r *Repository) FindAuthorLink(bookID, authorID uint) (*entities.BookAuthor, error) {
	var link entities.BookAuthor
	err := r.db.Where("book_id = ? AND author_id = ?", bookID, authorID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// CreateAuthorLink inserts a new author link row.
func (r *Repository) CreateAuthorLink(link *entities.BookAuthor) error {
	return r.db.Omit("Book", "Author").Create(link).Error
}

// FindThemeLink retrieves the theme link for the (book, theme) pair.
func (r *Repository) FindThemeLink(bookID, themeID uint) (*entities.BookTheme, error) {
	var link entities.BookTheme
	err := r.db.Where("book_id = ? AND theme_id = ?", bookID, themeID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// CreateThemeLink inserts a new theme link row.
func (r *Repository) CreateThemeLink(link *entities.BookTheme) error {
	return r.db.Omit("Book", "Theme").Create(link).Error
}
