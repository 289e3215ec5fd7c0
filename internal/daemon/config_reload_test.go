package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/stickui/internal/config"
)

// touch rewrites path with data and moves its mtime forward by d.
func touch(t *testing.T, path, data string, d time.Duration) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	future := time.Now().Add(d)
	require.NoError(t, os.Chtimes(path, future, future))
}

func TestConfigReloader_CheckReloadsValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[theme]\nname = \"default\"\n"), 0o644))

	initial, err := config.LoadConfig(path)
	require.NoError(t, err)

	var reloaded *config.Config
	w := &ConfigReloader{
		Path:     path,
		Interval: time.Hour,
		OnReload: func(c *config.Config) { reloaded = c },
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx, initial)
	defer w.Stop()

	assert.False(t, w.Check(), "unchanged file must not reload")

	touch(t, path, "[theme]\nname = \"dark\"\n", 2*time.Second)
	assert.True(t, w.Check())
	require.NotNil(t, reloaded)
	assert.Equal(t, "dark", reloaded.Theme.Name)
	assert.Same(t, reloaded, w.Current())

	assert.False(t, w.Check(), "same mtime must not reload twice")
}

func TestConfigReloader_InvalidConfigKeepsCurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	var gotErr error
	initial := config.DefaultConfig()
	w := &ConfigReloader{
		Path:     path,
		Interval: time.Hour,
		OnError:  func(err error) { gotErr = err },
		OnReload: func(*config.Config) { t.Fatal("invalid config must not be installed") },
	}
	w.Start(context.Background(), initial)
	defer w.Stop()

	touch(t, path, "[decoration]\nmode = \"sparkly\"\n", 2*time.Second)
	assert.False(t, w.Check())
	assert.Error(t, gotErr)
	assert.Same(t, initial, w.Current())
}

func TestConfigReloader_MissingFile(t *testing.T) {
	w := &ConfigReloader{Path: filepath.Join(t.TempDir(), "absent.toml")}
	assert.False(t, w.Check())
	assert.Nil(t, w.Current())
}

func TestConfigReloader_StopIsIdempotent(t *testing.T) {
	w := &ConfigReloader{Path: filepath.Join(t.TempDir(), "config.toml"), Interval: 10 * time.Millisecond}
	w.Stop()
	w.Start(context.Background(), config.DefaultConfig())
	w.Stop()
	w.Stop()
}

func TestConfigReloader_PollsInBackground(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	reloaded := make(chan *config.Config, 1)
	w := &ConfigReloader{
		Path:     path,
		Interval: 10 * time.Millisecond,
		OnReload: func(c *config.Config) { reloaded <- c },
	}
	w.Start(context.Background(), config.DefaultConfig())
	defer w.Stop()

	touch(t, path, "[log]\nlevel = \"debug\"\n", 2*time.Second)

	select {
	case c := <-reloaded:
		assert.Equal(t, "debug", c.Log.Level)
	case <-time.After(2 * time.Second):
		t.Fatal("config was not reloaded")
	}
}

func TestDiff(t *testing.T) {
	prev := config.DefaultConfig()

	next := config.DefaultConfig()
	assert.Equal(t, Changes{}, Diff(prev, next))

	next.Theme.Name = "dark"
	next.Log.Level = "debug"
	next.Decoration.Layers = 4
	next.Shortcuts.New = "<Control>t"

	c := Diff(prev, next)
	assert.True(t, c.Theme)
	assert.True(t, c.LogLevel)
	assert.Equal(t, []string{"decoration", "shortcuts"}, c.Restart)
}
