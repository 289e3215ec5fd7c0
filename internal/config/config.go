// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/stickui/internal/model"
)

// Default configuration values.
const (
	DefaultNotesFile   = "sticky_notes.json"
	DefaultNoteWidth   = 300
	DefaultNoteHeight  = 300
	DefaultSpawnX      = 100
	DefaultSpawnY      = 100
	DefaultCascade     = 24
	DefaultThemeName   = "default"
	DefaultLayers      = 8
	DefaultLayerAlpha  = 0.035
	DefaultRadius      = 20.0
	DefaultMargin      = 20.0
	DefaultShortcutNew = "<Control>n"
	DefaultShortcutSav = "<Control>s"
	DefaultShortcutLd  = "<Control>o"
	DefaultLogLevel    = "info"
)

// DecorationMode selects how note shadows are drawn.
type DecorationMode string

const (
	DecorationAuto   DecorationMode = "auto"
	DecorationNative DecorationMode = "native"
	DecorationManual DecorationMode = "manual"
)

// ValidDecorationModes returns all valid decoration modes.
func ValidDecorationModes() []DecorationMode {
	return []DecorationMode{DecorationAuto, DecorationNative, DecorationManual}
}

// Config represents the stickui configuration.
// Loaded from ~/.config/stickui/config.toml, then overridden from STICKUI_* variables.
type Config struct {
	Notes      NotesConfig      `toml:"notes"`
	Spawn      SpawnConfig      `toml:"spawn"`
	Theme      ThemeConfig      `toml:"theme"`
	Decoration DecorationConfig `toml:"decoration"`
	Shortcuts  ShortcutsConfig  `toml:"shortcuts"`
	Log        LogConfig        `toml:"log"`
}

// NotesConfig holds note storage and sizing.
type NotesConfig struct {
	File        string `toml:"file" env:"STICKUI_NOTES_FILE"` // Empty = XDG data dir
	Placeholder string `toml:"placeholder"`                   // Initial text of a new note
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	Monitor     int    `toml:"monitor"` // 1-based monitor for note windows; 0 = compositor default
}

// SpawnConfig sets where new notes appear.
type SpawnConfig struct {
	X       int `toml:"x"`
	Y       int `toml:"y"`
	Cascade int `toml:"cascade"` // Diagonal step between consecutive notes
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name string `toml:"name" env:"STICKUI_THEME"` // default, dark, none or auto
	CSS  string `toml:"css"`                      // CSS theme name without .css extension; empty follows Name
}

// DecorationConfig controls the note drop shadow.
type DecorationConfig struct {
	Mode   string  `toml:"mode" env:"STICKUI_DECORATION"` // auto, native, manual
	Layers int     `toml:"layers"`
	Alpha  float64 `toml:"alpha"`
	Radius float64 `toml:"radius"`
	Margin float64 `toml:"margin"`
}

// ShortcutsConfig holds GTK accelerator strings for the control window.
type ShortcutsConfig struct {
	New  string `toml:"new"`
	Save string `toml:"save"`
	Load string `toml:"load"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" env:"STICKUI_LOG_LEVEL"` // debug, info, warn, error
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Notes: NotesConfig{
			File:        "",
			Placeholder: model.PlaceholderText,
			Width:       DefaultNoteWidth,
			Height:      DefaultNoteHeight,
		},
		Spawn: SpawnConfig{
			X:       DefaultSpawnX,
			Y:       DefaultSpawnY,
			Cascade: DefaultCascade,
		},
		Theme: ThemeConfig{
			Name: DefaultThemeName,
		},
		Decoration: DecorationConfig{
			Mode:   string(DecorationAuto),
			Layers: DefaultLayers,
			Alpha:  DefaultLayerAlpha,
			Radius: DefaultRadius,
			Margin: DefaultMargin,
		},
		Shortcuts: ShortcutsConfig{
			New:  DefaultShortcutNew,
			Save: DefaultShortcutSav,
			Load: DefaultShortcutLd,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "stickui", "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "stickui")
}

// NotesPath returns the notes file path: the configured file, or the default
// file in the data directory. A leading ~/ is expanded.
func (c *Config) NotesPath() string {
	if c.Notes.File != "" {
		return expandPath(c.Notes.File)
	}
	return filepath.Join(DataPath(), DefaultNotesFile)
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist. Environment overrides apply either way.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No config file, use defaults
	case err != nil:
		return nil, err
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(ValidDecorationModes(), DecorationMode(c.Decoration.Mode)) {
		return fmt.Errorf("invalid decoration mode %q, must be one of: %v", c.Decoration.Mode, ValidDecorationModes())
	}

	if c.Notes.Width < 100 || c.Notes.Width > 2000 {
		return fmt.Errorf("note width must be between 100 and 2000, got %d", c.Notes.Width)
	}
	if c.Notes.Height < 100 || c.Notes.Height > 2000 {
		return fmt.Errorf("note height must be between 100 and 2000, got %d", c.Notes.Height)
	}

	if c.Notes.Monitor < 0 {
		return fmt.Errorf("notes monitor must not be negative, got %d", c.Notes.Monitor)
	}

	if c.Decoration.Layers < 0 || c.Decoration.Layers > 64 {
		return fmt.Errorf("decoration layers must be between 0 and 64, got %d", c.Decoration.Layers)
	}
	if c.Decoration.Alpha < 0 || c.Decoration.Alpha > 1 {
		return fmt.Errorf("decoration alpha must be between 0 and 1, got %g", c.Decoration.Alpha)
	}
	if c.Decoration.Radius < 0 || c.Decoration.Margin < 0 {
		return errors.New("decoration radius and margin must not be negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	return nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	path := DataPath()
	if path == "" {
		return errors.New("unable to determine data directory")
	}
	return os.MkdirAll(path, 0755)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
