package auth

import (
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"github.com/livraria-app/livraria/internal/config"
	"github.com/livraria-app/livraria/internal/entities"
)

var (
	loginPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrAuthRequired     = errors.New("authentication required")
	ErrLoginRequired    = errors.New("login is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrLoginInvalid     = errors.New("login must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrEmailInvalid     = errors.New("invalid email format")
)

// Service handles authentication and user management.
type Service struct {
	db     *gorm.DB
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// IsAuthEnabled reports whether local authentication is configured.
func (s *Service) IsAuthEnabled() bool {
	return s.config.Mode == config.AuthModeLocal
}

// CreateUser creates a user account linked to a person identity. An existing
// person with the given name is reused; otherwise one is created.
func (s *Service) CreateUser(login, email, password, personName string, permission int) (*entities.User, error) {
	if login == "" {
		return nil, ErrLoginRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if !loginPattern.MatchString(login) {
		return nil, ErrLoginInvalid
	}
	// RFC 5321 limit is 254
	if email != "" && (len(email) > 254 || !emailPattern.MatchString(email)) {
		return nil, ErrEmailInvalid
	}
	if personName == "" {
		personName = login
	}

	var existing entities.User
	err := s.db.Where("login = ?", login).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Email:        email,
		Login:        login,
		PasswordHash: passwordHash,
		Permission:   permission,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var person entities.Person
		err := tx.Where("name = ?", personName).First(&person).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			person = entities.Person{Name: personName}
			if err := tx.Create(&person).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		user.PersonID = person.ID
		return tx.Omit("Person").Create(user).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate validates credentials and returns the user.
func (s *Service) Authenticate(login, password string) (*entities.User, error) {
	var user entities.User
	err := s.db.Where("login = ? OR email = ?", login, login).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByID retrieves a user account.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := s.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// HasUsers reports whether any user account exists.
func (s *Service) HasUsers() (bool, error) {
	var count int64
	if err := s.db.Model(&entities.User{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
