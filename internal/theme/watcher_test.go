package theme

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTheme(t *testing.T, dir, css string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, "mine.css")
	require.NoError(t, os.WriteFile(path, []byte(css), 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestWatcher_CheckReportsChanges(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	path := writeTheme(t, dir, ".sticky-note { color: red; }", base)

	th, err := LoadFile("mine", path)
	require.NoError(t, err)

	var got string
	w := NewWatcher(th, func(css string) { got = css }, nil)

	assert.False(t, w.Check(), "unchanged file")

	writeTheme(t, dir, ".sticky-note { color: blue; }", base.Add(time.Minute))
	assert.True(t, w.Check())
	assert.Contains(t, got, "blue")

	// Touched without a content change.
	writeTheme(t, dir, ".sticky-note { color: blue; }", base.Add(2*time.Minute))
	assert.False(t, w.Check())
}

func TestWatcher_CheckMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "a {}", time.Now())
	th, err := LoadFile("mine", path)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	w := NewWatcher(th, func(string) { t.Fatal("callback on missing file") }, nil)
	assert.False(t, w.Check())
}

func TestWatcher_EmbeddedThemeNotWatched(t *testing.T) {
	th, ok := Bundled(DefaultThemeName)
	require.True(t, ok)
	w := NewWatcher(th, nil, nil)
	assert.False(t, w.Start(context.Background()))
	assert.False(t, w.Running())
	assert.False(t, w.Check())
	w.Stop()
}

func TestWatcher_StartStop(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	path := writeTheme(t, dir, "a {}", base)
	th, err := LoadFile("mine", path)
	require.NoError(t, err)

	var calls atomic.Int32
	w := NewWatcher(th, func(string) { calls.Add(1) }, nil)

	require.True(t, w.Start(context.Background()))
	assert.True(t, w.Running())
	assert.True(t, w.Start(context.Background()), "second start is a no-op")

	writeTheme(t, dir, "b {}", base.Add(time.Minute))
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	w.Stop()
	assert.False(t, w.Running())
	w.Stop()
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	th, err := LoadFile("mine", writeTheme(t, dir, "a {}", time.Now()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher(th, nil, nil)
	require.True(t, w.Start(ctx))

	cancel()
	// Stop still returns once the loop has exited on its own.
	w.Stop()
	assert.False(t, w.Running())
}

func TestWatcher_ReloadsOnPartialChange(t *testing.T) {
	dir := t.TempDir()
	partial := filepath.Join(dir, "_colours.css")
	require.NoError(t, os.WriteFile(partial, []byte(".note-text { color: red; }"), 0644))
	path := writeTheme(t, dir, `@import "_colours.css";`, time.Now().Add(-time.Hour))

	th, err := LoadFile("mine", path)
	require.NoError(t, err)
	require.Contains(t, th.CSS, "red")

	got := make(chan string, 4)
	w := NewWatcher(th, func(css string) { got <- css }, nil)
	require.True(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(partial, []byte(".note-text { color: green; }"), 0644))

	select {
	case css := <-got:
		assert.Contains(t, css, "green")
	case <-time.After(2 * time.Second):
		t.Fatal("theme was not reloaded after partial changed")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	th := &Theme{Name: "gone", Path: filepath.Join(t.TempDir(), "absent", "gone.css")}
	w := NewWatcher(th, nil, nil)
	assert.False(t, w.Start(context.Background()))
	assert.False(t, w.Running())
}
