package output

import (
	"strings"
	"text/template"

	"github.com/jmylchreest/stickui/internal/model"
)

// templateData is the dot of a per-note template.
type templateData struct {
	Index int
	Note  *model.Note
}

var templateFuncs = template.FuncMap{
	"truncate": ellipsize,
	"oneline":  func(s string) string { return sanitizeText(s, 0, false) },
}

// parseTemplate compiles src, returning nil for an empty source.
func parseTemplate(name, src string) (*template.Template, error) {
	if src == "" {
		return nil, nil
	}
	return template.New(name).Funcs(templateFuncs).Parse(src)
}

// sanitizeText collapses runs of whitespace to single spaces, keeping line
// breaks when includeNewline is set, then shortens to maxLen runes.
func sanitizeText(text string, maxLen int, includeNewline bool) string {
	if includeNewline {
		lines := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
		for i, line := range lines {
			lines[i] = strings.Join(strings.Fields(line), " ")
		}
		text = strings.TrimSpace(strings.Join(lines, "\n"))
	} else {
		text = strings.Join(strings.Fields(text), " ")
	}
	return ellipsize(text, maxLen)
}

// ellipsize cuts s to maxLen runes, the last three being "..." when there
// is room for them. maxLen <= 0 keeps s whole.
func ellipsize(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
