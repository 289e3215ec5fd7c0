package theme

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"
)

// bundled holds one CSS theme per palette plus the _base.css partial they import.
//
//go:embed themes/*.css
var bundled embed.FS

// DefaultThemeName is the CSS theme used when nothing else matches.
const DefaultThemeName = PaletteDefault

// ErrThemeNotFound reports a CSS theme name with no user or bundled file.
var ErrThemeNotFound = errors.New("theme not found")

// Theme is a loaded CSS theme with its imports inlined.
type Theme struct {
	Name    string
	Path    string // Empty for bundled themes
	CSS     string
	ModTime time.Time
}

// Bundled reports whether t came from the binary rather than a user file.
func (t *Theme) Bundled() bool {
	return t.Path == ""
}

// ThemesDir returns the user CSS theme directory, ~/.config/stickui/themes.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "stickui", "themes"), nil
}

// CSSName returns the CSS theme to load: the configured name if set,
// otherwise the one matching the resolved palette.
func CSSName(configured, palette string) string {
	if configured != "" {
		return configured
	}
	if palette == "" || palette == PaletteAuto {
		return DefaultThemeName
	}
	return palette
}

// Load resolves a CSS theme by name. A file in ThemesDir wins over the
// bundled theme of the same name. When nothing matches, the default theme
// is returned together with ErrThemeNotFound.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}

	var userErr error
	if dir, err := ThemesDir(); err == nil {
		file := filepath.Join(dir, name+".css")
		if _, err := os.Stat(file); err == nil {
			th, err := LoadFile(name, file)
			if err == nil {
				return th, nil
			}
			userErr = err
		}
	}

	if th, ok := Bundled(name); ok {
		return th, userErr
	}

	th, _ := Bundled(DefaultThemeName)
	return th, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
}

// LoadFile reads the CSS theme at file, inlining its imports.
func LoadFile(name, file string) (*Theme, error) {
	th := &Theme{Name: name, Path: file}
	if _, err := th.Reload(); err != nil {
		return nil, err
	}
	return th, nil
}

// Bundled returns the bundled theme called name.
func Bundled(name string) (*Theme, bool) {
	if strings.HasPrefix(name, "_") {
		return nil, false
	}
	data, err := bundled.ReadFile("themes/" + name + ".css")
	if err != nil {
		return nil, false
	}
	return &Theme{Name: name, CSS: InlineImports(string(data), "")}, true
}

// Reload rereads a user theme if its file changed since the last read and
// reports whether the CSS differs. Bundled themes never change.
func (t *Theme) Reload() (bool, error) {
	return t.reread(false)
}

// Refresh rereads a user theme whatever its mtime, picking up edits to the
// files it imports.
func (t *Theme) Refresh() (bool, error) {
	return t.reread(true)
}

func (t *Theme) reread(force bool) (bool, error) {
	if t.Bundled() {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !force && !t.ModTime.IsZero() && !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	data, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}

	in := inliner{seen: map[string]bool{t.Path: true}}
	css := in.inline(string(data), filepath.Dir(t.Path))
	changed := css != t.CSS
	t.CSS = css
	t.ModTime = info.ModTime()
	return changed, nil
}

// importPattern matches @import "x.css"; @import 'x.css'; and @import url("x.css");
var importPattern = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// InlineImports replaces every @import in css with the imported file.
// Relative imports resolve against dir first, then against the bundled
// themes, so a user theme can import "_base.css" or "dark.css".
// Unresolvable and repeated imports become CSS comments.
func InlineImports(css, dir string) string {
	in := inliner{seen: make(map[string]bool)}
	return in.inline(css, dir)
}

type inliner struct {
	seen map[string]bool
}

func (in *inliner) inline(css, dir string) string {
	return importPattern.ReplaceAllStringFunc(css, func(stmt string) string {
		ref := importPattern.FindStringSubmatch(stmt)[1]

		key, content, nextDir, err := in.resolve(ref, dir)
		if err != nil {
			return "/* @import " + ref + " failed: " + err.Error() + " */"
		}
		if in.seen[key] {
			return "/* @import " + ref + " skipped: already imported */"
		}
		in.seen[key] = true

		return "/* @import " + ref + " */\n" + in.inline(content, nextDir)
	})
}

// resolve finds the CSS for ref. key identifies the source for cycle checks;
// nextDir is where the imported file's own imports resolve ("" = bundled).
func (in *inliner) resolve(ref, dir string) (key, content, nextDir string, err error) {
	file := ref
	if !filepath.IsAbs(file) && dir != "" {
		file = filepath.Join(dir, ref)
	}
	if filepath.IsAbs(file) {
		data, readErr := os.ReadFile(file)
		if readErr == nil {
			return file, string(data), filepath.Dir(file), nil
		}
		err = readErr
	}

	name := path.Base(filepath.ToSlash(ref))
	data, bundledErr := fs.ReadFile(bundled, "themes/"+name)
	if bundledErr == nil {
		return "bundled:" + name, string(data), "", nil
	}
	if err == nil {
		err = bundledErr
	}
	return "", "", "", err
}

// Info describes a CSS theme available to Load.
type Info struct {
	Name    string
	Path    string // User file; empty when only bundled
	Bundled bool   // A bundled theme of this name exists
}

// List returns the bundled themes followed by user-only themes, sorted by
// name within each group. A user file overriding a bundled theme is reported
// on the bundled entry's Path.
func List() ([]Info, error) {
	var themes []Info
	index := make(map[string]int)
	for _, name := range bundledNames() {
		index[name] = len(themes)
		themes = append(themes, Info{Name: name, Bundled: true})
	}

	dir, err := ThemesDir()
	if err != nil {
		return themes, nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return themes, nil
	}
	if err != nil {
		return themes, err
	}

	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".css")
		if entry.IsDir() || !ok || strings.HasPrefix(name, "_") {
			continue
		}
		file := filepath.Join(dir, entry.Name())
		if i, ok := index[name]; ok {
			themes[i].Path = file
			continue
		}
		themes = append(themes, Info{Name: name, Path: file})
	}
	return themes, nil
}

// bundledNames lists the bundled themes, skipping _partials.
func bundledNames() []string {
	entries, _ := fs.ReadDir(bundled, "themes")
	var names []string
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".css")
		if ok && !strings.HasPrefix(name, "_") {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
