// Package themes provides database operations for theme tags.
package themes

import (
	"gorm.io/gorm"

	"github.com/livraria-app/livraria/internal/entities"
)

// Repository handles all theme database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new themes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByValue retrieves a theme by exact value match (case-sensitive).
func (r *Repository) FindByValue(value string) (*entities.Theme, error) {
	var theme entities.Theme
	err := r.db.Where("value = ?", value).First(&theme).Error
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

// GetByID retrieves a theme by ID.
func (r *Repository) GetByID(id uint) (*entities.Theme, error) {
	var theme entities.Theme
	err := r.db.First(&theme, id).Error
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

// Create persists a new theme.
func (r *Repository) Create(theme *entities.Theme) error {
	return r.db.Create(theme).Error
}

// DeleteOrphans removes themes no book links to any more.
// Returns the number of rows deleted.
func (r *Repository) DeleteOrphans() (int64, error) {
	result := r.db.Exec(`
		DELETE FROM themes
		WHERE id NOT IN (SELECT theme_id FROM book_themes)
	`)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
