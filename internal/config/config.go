package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/justyntemme/folio/internal/storage"
)

const (
	DefaultSwipeThreshold = 60
	DefaultImageEndpoint  = "https://generativelanguage.googleapis.com/v1beta"
	DefaultImageModel     = "imagen-4.0-generate-001"
	DefaultImageDelay     = 2 * time.Second
	DefaultImageOutputDir = "assets/images"

	configFileName = "config.json"
	configDirName  = "folio"
	MaxRecentBooks = 10 // Maximum number of recently opened books to track
)

// RecentBook represents a recently opened book
type RecentBook struct {
	Path     string    `json:"path"`
	Title    string    `json:"title"`
	OpenedAt time.Time `json:"opened_at"`
}

// StorageConfig selects where preferences are persisted
type StorageConfig struct {
	Backend string `json:"backend"`        // memory, file or sqlite
	Path    string `json:"path,omitempty"` // defaults to a file next to config.json
}

// LoggingConfig controls the file log. The TUI owns the terminal, so there is
// no console logger while reading.
type LoggingConfig struct {
	Level       string `json:"level"` // none, normal or debug
	Destination string `json:"destination,omitempty"`
}

// IllustrateConfig configures the illustration batch
type IllustrateConfig struct {
	Endpoint  string `json:"endpoint"`
	Model     string `json:"model"`
	OutputDir string `json:"output_dir"`
	DelayMS   int    `json:"delay_ms"`
}

// Delay returns the pause between two generation requests
func (c IllustrateConfig) Delay() time.Duration {
	if c.DelayMS < 0 {
		return 0
	}
	return time.Duration(c.DelayMS) * time.Millisecond
}

// Config holds the application configuration
type Config struct {
	Storage        StorageConfig    `json:"storage"`
	Logging        LoggingConfig    `json:"logging"`
	Illustrate     IllustrateConfig `json:"illustrate"`
	SwipeThreshold float64          `json:"swipe_threshold"`
	ShowImages     bool             `json:"show_images"`
	RecentBooks    []RecentBook     `json:"recent_books,omitempty"`

	// Path to config file (not persisted)
	path string `json:"-"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Backend: storage.BackendFile},
		Logging: LoggingConfig{Level: "none"},
		Illustrate: IllustrateConfig{
			Endpoint:  DefaultImageEndpoint,
			Model:     DefaultImageModel,
			OutputDir: DefaultImageOutputDir,
			DelayMS:   int(DefaultImageDelay / time.Millisecond),
		},
		SwipeThreshold: DefaultSwipeThreshold,
		ShowImages:     true,
	}
}

// Load loads configuration from the default config file
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads configuration from path. A missing file yields the defaults.
func LoadFrom(configPath string) (*Config, error) {
	cfg := Default()
	cfg.path = configPath

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		// Config doesn't exist, return defaults
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", configPath, err)
	}

	cfg.path = configPath
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case storage.BackendMemory, storage.BackendFile, storage.BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Logging.Level {
	case "none", "normal", "debug":
	default:
		return fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}
	if c.SwipeThreshold <= 0 {
		c.SwipeThreshold = DefaultSwipeThreshold
	}
	return nil
}

// Path returns the config file location
func (c *Config) Path() string {
	return c.path
}

// Dir returns the directory holding the config file
func (c *Config) Dir() string {
	return filepath.Dir(c.path)
}

// StoragePath returns where the preferences backend keeps its data
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	switch c.Storage.Backend {
	case storage.BackendSQLite:
		return filepath.Join(c.Dir(), "prefs.db")
	case storage.BackendFile:
		return filepath.Join(c.Dir(), "prefs.json")
	default:
		return ""
	}
}

// LogPath returns the file log destination
func (c *Config) LogPath() string {
	if c.Logging.Destination != "" {
		return c.Logging.Destination
	}
	return filepath.Join(c.Dir(), configDirName+".log")
}

// Save persists the configuration to disk
func (c *Config) Save() error {
	// Ensure directory exists
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.path, data, 0600)
}

// AddRecentBook moves a book to the front of the recently opened list and saves
func (c *Config) AddRecentBook(path, title string) error {
	// Remove existing entry for this book if present
	newList := make([]RecentBook, 0, MaxRecentBooks)
	for _, entry := range c.RecentBooks {
		if entry.Path != path {
			newList = append(newList, entry)
		}
	}

	// Add new entry at the front
	entry := RecentBook{
		Path:     path,
		Title:    title,
		OpenedAt: time.Now(),
	}
	c.RecentBooks = append([]RecentBook{entry}, newList...)

	// Trim to max size
	if len(c.RecentBooks) > MaxRecentBooks {
		c.RecentBooks = c.RecentBooks[:MaxRecentBooks]
	}

	return c.Save()
}

// LastBook returns the most recently opened book path, or ""
func (c *Config) LastBook() string {
	if len(c.RecentBooks) == 0 {
		return ""
	}
	return c.RecentBooks[0].Path
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}

	return filepath.Join(configDir, configDirName, configFileName), nil
}
