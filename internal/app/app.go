package app

import (
	"fmt"
	"syscall"

	"github.com/andy/billcraft/internal/config"
	"github.com/andy/billcraft/internal/crypto"
	"github.com/andy/billcraft/internal/db"
	"github.com/andy/billcraft/internal/editor"
	"github.com/andy/billcraft/internal/log"
	"github.com/andy/billcraft/internal/render"
	"github.com/andy/billcraft/internal/store"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB
	Log    *logrus.Logger

	// Draft persistence and the editing state machine
	Drafts *store.DraftStore
	Editor *editor.Editor
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Getting encryption key from keyring
// 3. Opening the store
// 4. Running migrations
// 5. Creating the draft store and editor
func New() (*App, error) {
	// Load config from default path
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(cfg *config.Config) (*App, error) {
	// Ensure all necessary directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	// Get keyring for secure password storage
	keyring := crypto.NewKeyring()

	// Try to get existing encryption key
	password, err := keyring.GetKey()
	if err != nil {
		// No key exists, prompt user to set one
		fmt.Println("Setting up store encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		// Store the key in keyring
		if err := keyring.SetKey(password); err != nil {
			return nil, fmt.Errorf("failed to store encryption key: %w", err)
		}
	}

	// Open the store with encryption
	database, err := db.Open(cfg.Storage.Path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// Run migrations to ensure schema is up to date
	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger := log.New(cfg.Log.Path)

	// Create the draft store over the key-value table
	kv := store.NewSQLiteKV(database)
	drafts := store.NewDraftStore(kv, store.NewNotifier(), logger)

	// Create the editor with invoice defaults
	ed := editor.New(drafts, logger, editor.Config{
		NumberPrefix:   cfg.Invoice.NumberPrefix,
		DueDays:        cfg.Invoice.DefaultDueDays,
		DefaultTaxRate: cfg.Invoice.DefaultTaxRate,
	})

	return &App{
		Config: cfg,
		DB:     database,
		Log:    logger,
		Drafts: drafts,
		Editor: ed,
	}, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// Business returns the configured issuing party for rendered invoices.
func (a *App) Business() render.Business {
	return render.Business{
		Name:    a.Config.Business.Name,
		Email:   a.Config.Business.Email,
		Address: a.Config.Business.Address,
		Phone:   a.Config.Business.Phone,
	}
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}

// promptForPassword prompts user for a new store password (first run)
// This should be called when keyring has no stored key
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your invoice drafts will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for store encryption: ")

	// Read password securely (no echo)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	// Confirm password
	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after confirmation
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	// Check if passwords match
	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Store encryption configured successfully")
	fmt.Println()

	return string(password), nil
}
