// Package cli implements the administrative commands exposed by the binary
// alongside the HTTP server.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/livraria-app/livraria/internal/auth"
	"github.com/livraria-app/livraria/internal/config"
	"github.com/livraria-app/livraria/internal/database"
	"github.com/livraria-app/livraria/internal/entities"
)

// CreateUserCommand creates a user account linked to a person identity.
type CreateUserCommand struct {
	Login        string
	Email        string
	Password     string
	PersonName   string
	Permission   int
	DatabasePath string
}

// NewCreateUserCommand creates a new CreateUserCommand.
func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

// ParseFlags parses command line flags.
func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Login, "login", "", "Login for the new account (required)")
	fs.StringVar(&cmd.Email, "email", "", "Email for the new account")
	fs.StringVar(&cmd.Password, "password", "", "Password for the new account (required)")
	fs.StringVar(&cmd.PersonName, "person", "", "Person name to link the account to (defaults to login; an existing person with this name is reused)")
	fs.IntVar(&cmd.Permission, "permission", entities.PermissionAdmin, "Permission level for the new account")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account for the local authentication mode.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -login admin -password 'changeme1' -person Administrador\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the command.
func (cmd *CreateUserCommand) Run() error {
	if cmd.Login == "" || cmd.Password == "" {
		return fmt.Errorf("-login and -password are required")
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	cfg := config.NewConfig()
	service := auth.NewService(db.DB, cfg.Auth)

	user, err := service.CreateUser(cmd.Login, cmd.Email, cmd.Password, cmd.PersonName, cmd.Permission)
	if err != nil {
		return err
	}

	fmt.Printf("Created user %q (id %d, person %d, permission %d)\n",
		user.Login, user.ID, user.PersonID, user.Permission)
	return nil
}
