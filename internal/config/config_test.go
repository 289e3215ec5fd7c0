package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/stickui/internal/model"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.Notes.File)
	assert.Equal(t, model.PlaceholderText, cfg.Notes.Placeholder)
	assert.Equal(t, 300, cfg.Notes.Width)
	assert.Equal(t, 300, cfg.Notes.Height)
	assert.Equal(t, 100, cfg.Spawn.X)
	assert.Equal(t, 24, cfg.Spawn.Cascade)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.Equal(t, "auto", cfg.Decoration.Mode)
	assert.Equal(t, 8, cfg.Decoration.Layers)
	assert.InDelta(t, 0.035, cfg.Decoration.Alpha, 1e-9)
	assert.Equal(t, "<Control>n", cfg.Shortcuts.New)
	assert.Equal(t, "<Control>s", cfg.Shortcuts.Save)
	assert.Equal(t, "<Control>o", cfg.Shortcuts.Load)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[notes]
file = "/tmp/notes.json"
width = 400

[spawn]
x = 10
y = 20
cascade = 0

[theme]
name = "dark"

[decoration]
mode = "manual"
layers = 4

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/notes.json", cfg.Notes.File)
	assert.Equal(t, 400, cfg.Notes.Width)
	assert.Equal(t, 300, cfg.Notes.Height, "unset keys keep defaults")
	assert.Equal(t, 10, cfg.Spawn.X)
	assert.Equal(t, 20, cfg.Spawn.Y)
	assert.Equal(t, 0, cfg.Spawn.Cascade)
	assert.Equal(t, "dark", cfg.Theme.Name)
	assert.Equal(t, "manual", cfg.Decoration.Mode)
	assert.Equal(t, 4, cfg.Decoration.Layers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "<Control>n", cfg.Shortcuts.New)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[notes\nwidth = "), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[theme]\nname = \"default\"\n"), 0644))

	t.Setenv("STICKUI_THEME", "dark")
	t.Setenv("STICKUI_NOTES_FILE", "/srv/notes.json")
	t.Setenv("STICKUI_LOG_LEVEL", "warn")
	t.Setenv("STICKUI_DECORATION", "native")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.Theme.Name)
	assert.Equal(t, "/srv/notes.json", cfg.Notes.File)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "native", cfg.Decoration.Mode)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[decoration]\nmode = \"fancy\"\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoration mode")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"width too small", func(c *Config) { c.Notes.Width = 10 }, false},
		{"height too large", func(c *Config) { c.Notes.Height = 5000 }, false},
		{"negative monitor", func(c *Config) { c.Notes.Monitor = -1 }, false},
		{"second monitor", func(c *Config) { c.Notes.Monitor = 2 }, true},
		{"negative layers", func(c *Config) { c.Decoration.Layers = -1 }, false},
		{"zero layers", func(c *Config) { c.Decoration.Layers = 0 }, true},
		{"alpha above one", func(c *Config) { c.Decoration.Alpha = 1.5 }, false},
		{"negative radius", func(c *Config) { c.Decoration.Radius = -2 }, false},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"uppercase log level", func(c *Config) { c.Log.Level = "DEBUG" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	assert.Equal(t, "/custom/config/stickui/config.toml", ConfigPath())
}

func TestDataPath_XDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")

	assert.Equal(t, "/custom/data/stickui", DataPath())
}

func TestNotesPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")

	cfg := DefaultConfig()
	assert.Equal(t, "/custom/data/stickui/sticky_notes.json", cfg.NotesPath())

	cfg.Notes.File = "/elsewhere/notes.json"
	assert.Equal(t, "/elsewhere/notes.json", cfg.NotesPath())

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	cfg.Notes.File = "~/notes.json"
	assert.Equal(t, filepath.Join(home, "notes.json"), cfg.NotesPath())
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Theme.Name = "none"
	cfg.Spawn.Y = 333
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "none", loaded.Theme.Name)
	assert.Equal(t, 333, loaded.Spawn.Y)
}

func TestEnsureDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	require.NoError(t, EnsureDataDir())

	info, err := os.Stat(filepath.Join(dir, "stickui"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
