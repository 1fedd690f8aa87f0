package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/livraria-app/livraria/internal/entities"
)

// AdminPersonName is the identity seeded for the administrator account,
// matching the initial migration of the original schema.
const AdminPersonName = "Administrador"

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	// Foreign keys are off by default in SQLite; the join tables rely on
	// cascade deletes.
	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Person{},
		&entities.Theme{},
		&entities.Book{},
		&entities.BookAuthor{},
		&entities.BookTheme{},
		&entities.User{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedAdminPerson(); err != nil {
		return nil, fmt.Errorf("failed to seed admin person: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// seedAdminPerson creates the administrator identity if it does not exist.
// The admin user account itself is created via the create-user command.
func (d *Database) seedAdminPerson() error {
	var existing entities.Person
	result := d.DB.Where("name = ?", AdminPersonName).First(&existing)
	if result.Error == gorm.ErrRecordNotFound {
		if err := d.DB.Create(&entities.Person{Name: AdminPersonName}).Error; err != nil {
			return err
		}
		log.Printf("Created person: %s", AdminPersonName)
	} else if result.Error != nil {
		return result.Error
	}
	return nil
}

// AdminPerson returns the seeded administrator identity.
func (d *Database) AdminPerson() (*entities.Person, error) {
	var person entities.Person
	err := d.DB.Where("name = ?", AdminPersonName).First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}
