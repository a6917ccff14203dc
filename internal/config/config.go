package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Storage settings
	Storage StorageConfig `yaml:"storage"`

	// Invoice defaults
	Invoice InvoiceConfig `yaml:"invoice"`

	// Business identity shown on rendered invoices
	Business BusinessConfig `yaml:"business"`

	// Logging settings
	Log LogConfig `yaml:"log"`
}

type StorageConfig struct {
	Path string `yaml:"path"` // Path to the encrypted SQLite store
}

type InvoiceConfig struct {
	DefaultDueDays int     `yaml:"default_due_days"` // Days until invoice due
	DefaultTaxRate float64 `yaml:"default_tax_rate"` // Tax rate as percent (8.25 = 8.25%)
	NumberPrefix   string  `yaml:"number_prefix"`    // Invoice number prefix (e.g., "INV")
	OutputDir      string  `yaml:"output_dir"`       // Directory for exported invoices
}

type BusinessConfig struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
}

type LogConfig struct {
	Path string `yaml:"path"` // Log file; the TUI owns the terminal
}

// DefaultConfigPath returns ~/.config/billcraft/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "billcraft", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "billcraft", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	base := filepath.Join(homeDir, ".config", "billcraft")

	return &Config{
		Storage: StorageConfig{
			Path: filepath.Join(base, "billcraft.db"),
		},
		Invoice: InvoiceConfig{
			DefaultDueDays: 30,
			DefaultTaxRate: 0.0,
			NumberPrefix:   "INV",
			OutputDir:      filepath.Join(base, "invoices"),
		},
		Business: BusinessConfig{
			Name:    "",
			Email:   "",
			Address: "",
			Phone:   "",
		},
		Log: LogConfig{
			Path: filepath.Join(base, "billcraft.log"),
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (for storage, exports, etc.)
func (c *Config) EnsureDirectories() error {
	// Create storage directory
	dbDir := filepath.Dir(c.Storage.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}

	// Create export output directory
	if err := os.MkdirAll(c.Invoice.OutputDir, 0755); err != nil {
		return err
	}

	return nil
}
