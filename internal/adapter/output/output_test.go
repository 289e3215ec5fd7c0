package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/stickui/internal/model"
)

func testNotes() []model.Note {
	return []model.Note{
		{ID: 100001, Text: "buy milk", X: 50, Y: 75},
		{ID: 100002, Text: "call mum\nabout sunday", X: 124, Y: 124},
		{ID: 100003, Text: "", X: 0, Y: 0},
	}
}

func mustFormatter(t *testing.T, format FormatType, opts FormatterOptions) Formatter {
	t.Helper()
	f, err := NewFormatter(format, opts)
	require.NoError(t, err)
	return f
}

func TestPlainFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	formatter, err := NewPlainFormatter(DefaultFormatterOptions())
	require.NoError(t, err)
	require.NoError(t, formatter.Format(&buf, testNotes()))

	output := buf.String()
	assert.Contains(t, output, "[1] #100001 (50,75)\n    buy milk\n")
	assert.Contains(t, output, "[2] #100002 (124,124)\n    call mum about sunday\n")
	assert.Contains(t, output, "[3] #100003 (0,0)\n    "+model.PlaceholderText+"\n")
}

func TestPlainFormatter_KeepsNewlines(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.ShowIndex = false
	opts.ShowPosition = false
	opts.IncludeNewline = true
	require.NoError(t, mustFormatter(t, FormatPlain, opts).Format(&buf, testNotes()[1:2]))

	assert.Equal(t, "#100002\n    call mum\n    about sunday\n", buf.String())
}

func TestPlainFormatter_CustomTemplate(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.Template = "{{.Index}}: {{.Note.ID}} {{oneline .Note.Text | printf \"%q\"}}"
	require.NoError(t, mustFormatter(t, FormatPlain, opts).Format(&buf, testNotes()[:2]))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, `1: 100001 "buy milk"`, lines[0])
	assert.Equal(t, `2: 100002 "call mum about sunday"`, lines[1])
}

func TestDmenuFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, mustFormatter(t, FormatDmenu, DefaultFormatterOptions()).Format(&buf, testNotes()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "100001 | 50,75 | buy milk", lines[0])
	assert.Equal(t, "100002 | 124,124 | call mum about sunday", lines[1])
}

func TestDmenuFormatter_TruncateText(t *testing.T) {
	notes := []model.Note{{ID: 1, Text: "This is a very long note that should be truncated when the max length is set"}}
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.ShowPosition = false
	opts.TextMaxLen = 20
	require.NoError(t, mustFormatter(t, FormatDmenu, opts).Format(&buf, notes))

	output := buf.String()
	assert.Contains(t, output, "...")
	assert.NotContains(t, output, "truncated when the max length is set")
}

func TestDmenuFormatter_CustomTemplate(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.Template = `{{.Note.ID}} {{truncate .Note.Text 5}}`
	require.NoError(t, mustFormatter(t, FormatDmenu, opts).Format(&buf, testNotes()[:1]))

	assert.Equal(t, "100001 bu...\n", buf.String())
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewJSONFormatter().Format(&buf, testNotes()))

	// Output is a valid notes file
	decoded, err := model.DecodeNotes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, testNotes(), decoded)
}

func TestJSONFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewJSONFormatter().Format(&buf, nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestJSONFormatter_FormatSingle(t *testing.T) {
	var buf bytes.Buffer
	n := testNotes()[0]

	require.NoError(t, NewJSONFormatter().FormatSingle(&buf, &n))

	var result model.Note
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, n, result)
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewYAMLFormatter().Format(&buf, testNotes()[:1]))

	// yaml.v3 quotes y since YAML 1.1 reads it as a boolean.
	assert.Equal(t, "- id: 100001\n  text: buy milk\n  x: 50\n  \"y\": 75\n", buf.String())

	var result []model.Note
	buf.Reset()
	require.NoError(t, NewYAMLFormatter().Format(&buf, testNotes()))
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, testNotes(), result)
}

func TestYAMLFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewYAMLFormatter().Format(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestIDsFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewIDsFormatter().Format(&buf, testNotes()))
	assert.Equal(t, "100001\n100002\n100003\n", buf.String())
}

func TestFormatField(t *testing.T) {
	n := &model.Note{ID: 100001, Text: "line one\nline two", X: 5, Y: 6}

	tests := []struct {
		field    string
		expected string
	}{
		{"id", "100001"},
		{"text", "line one\nline two"},
		{"body", "line one\nline two"},
		{"x", "5"},
		{"y", "6"},
		{"position", "5,6"},
		{"title", "line one"},
		{"all", "100001 5,6\nline one\nline two"},
		{"unknown", "line one\nline two"}, // defaults to text
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatField(n, tt.field))
		})
	}
}

func TestNewFormatter(t *testing.T) {
	opts := DefaultFormatterOptions()

	tests := []struct {
		format FormatType
		check  func(Formatter) bool
	}{
		{FormatPlain, func(f Formatter) bool { _, ok := f.(*PlainFormatter); return ok }},
		{FormatJSON, func(f Formatter) bool { _, ok := f.(*JSONFormatter); return ok }},
		{FormatYAML, func(f Formatter) bool { _, ok := f.(*YAMLFormatter); return ok }},
		{FormatIDs, func(f Formatter) bool { _, ok := f.(*IDsFormatter); return ok }},
		{FormatDmenu, func(f Formatter) bool { _, ok := f.(*DmenuFormatter); return ok }},
		{"unknown", func(f Formatter) bool { _, ok := f.(*PlainFormatter); return ok }},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.True(t, tt.check(mustFormatter(t, tt.format, opts)))
		})
	}
}

func TestNewFormatter_BadTemplate(t *testing.T) {
	opts := DefaultFormatterOptions()
	opts.Template = "{{.Note.ID"

	for _, format := range []FormatType{FormatPlain, FormatDmenu} {
		_, err := NewFormatter(format, opts)
		assert.Error(t, err, format)
	}

	_, err := NewFormatter(FormatJSON, opts)
	assert.NoError(t, err, "template only applies to line formats")
}

func TestDmenuFormatter_TemplateExecError(t *testing.T) {
	opts := DefaultFormatterOptions()
	opts.Template = "{{.Note.Missing}}"
	err := mustFormatter(t, FormatDmenu, opts).Format(&bytes.Buffer{}, testNotes())
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		maxLen         int
		includeNewline bool
		expected       string
	}{
		{"simple", "hello world", 0, false, "hello world"},
		{"with newlines", "hello\nworld", 0, false, "hello world"},
		{"preserve newlines", "hello\nworld", 0, true, "hello\nworld"},
		{"truncate", "hello world", 8, false, "hello..."},
		{"multiple spaces", "hello   world", 0, false, "hello world"},
		{"tabs and crlf", "a\tb\r\nc", 0, false, "a b c"},
		{"newline kept, spaces collapsed", "a   b\r\n  c ", 0, true, "a b\nc"},
		{"truncate runes", "héllo wörld", 6, false, "hél..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeText(tt.text, tt.maxLen, tt.includeNewline))
		})
	}
}
