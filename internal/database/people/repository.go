// Package people provides database operations for author identities.
package people

import (
	"gorm.io/gorm"

	"github.com/livraria-app/livraria/internal/entities"
)

// Repository handles all person database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new people repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByName retrieves a person by exact name match. Matching is
// case-sensitive; "jane doe" and "Jane Doe" are different people.
func (r *Repository) FindByName(name string) (*entities.Person, error) {
	var person entities.Person
	err := r.db.Where("name = ?", name).First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

// GetByID retrieves a person by ID.
func (r *Repository) GetByID(id uint) (*entities.Person, error) {
	var person entities.Person
	err := r.db.First(&person, id).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

// Create persists a new person.
func (r *Repository) Create(person *entities.Person) error {
	return r.db.Create(person).Error
}

// DeleteOrphans removes people referenced by no author link and no user
// account. Returns the number of rows deleted.
func (r *Repository) DeleteOrphans() (int64, error) {
	result := r.db.Exec(`
		DELETE FROM people
		WHERE id NOT IN (SELECT author_id FROM book_authors)
		AND id NOT IN (SELECT person_id FROM users)
	`)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
