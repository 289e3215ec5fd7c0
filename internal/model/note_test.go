package model

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNote_Validate(t *testing.T) {
	n := Note{ID: 100001, Text: "hello"}
	assert.NoError(t, n.Validate())

	n.ID = 0
	assert.ErrorIs(t, n.Validate(), ErrInvalidID)

	n.ID = -4
	assert.ErrorIs(t, n.Validate(), ErrInvalidID)
}

func TestNote_DisplayText(t *testing.T) {
	n := Note{ID: 1}
	assert.Equal(t, PlaceholderText, n.DisplayText())

	n.Text = "buy milk"
	assert.Equal(t, "buy milk", n.DisplayText())
}

func TestNote_Title(t *testing.T) {
	n := Note{ID: 1, Text: "\n  \nshopping\n- eggs"}
	assert.Equal(t, "shopping", n.Title())

	empty := Note{ID: 2}
	assert.Equal(t, PlaceholderText, empty.Title())
}

func TestNote_TextTruncated(t *testing.T) {
	n := Note{ID: 1, Text: "one\ntwo   three"}
	assert.Equal(t, "one two three", n.TextTruncated(50))
	assert.Equal(t, "one t...", n.TextTruncated(8))
	assert.Equal(t, "one", n.TextTruncated(3))
	assert.Equal(t, "", n.TextTruncated(0))
}

func TestNote_TextTruncatedMultiByte(t *testing.T) {
	n := Note{ID: 1, Text: "買い物リスト 🥛🍞🧀 牛乳"}

	got := n.TextTruncated(8)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "買い物リス...", got)

	short := n.TextTruncated(2)
	assert.True(t, utf8.ValidString(short))
	assert.Equal(t, "買い", short)

	emoji := Note{ID: 1, Text: "🥛🍞🧀🥚"}
	assert.Equal(t, "🥛🍞🧀🥚", emoji.TextTruncated(4))
	assert.Equal(t, "🥛", emoji.TextTruncated(1))
}

func TestDecodeNotes(t *testing.T) {
	data := []byte(`[
		{"id": 123456, "text": "buy milk", "x": 50, "y": 75},
		{"id": 654321, "text": "", "x": -10, "y": 0, "colour": "ignored"}
	]`)

	notes, err := DecodeNotes(data)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, Note{ID: 123456, Text: "buy milk", X: 50, Y: 75}, notes[0])
	assert.Equal(t, Note{ID: 654321, Text: "", X: -10, Y: 0}, notes[1])
}

func TestDecodeNotes_EmptyArray(t *testing.T) {
	notes, err := DecodeNotes([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestDecodeNotes_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		index int
		field string
	}{
		{"not json", `{{{`, -1, ""},
		{"object instead of array", `{"id": 1}`, -1, ""},
		{"null document", `null`, -1, ""},
		{"string element", `["note"]`, 0, ""},
		{"null element", `[null]`, 0, ""},
		{"missing id", `[{"text": "a", "x": 1, "y": 2}]`, 0, "id"},
		{"missing y", `[{"id": 1, "text": "a", "x": 1}]`, 0, "y"},
		{"null text", `[{"id": 1, "text": null, "x": 1, "y": 2}]`, 0, "text"},
		{"string x", `[{"id": 1, "text": "a", "x": "1", "y": 2}]`, 0, "x"},
		{"fractional y", `[{"id": 1, "text": "a", "x": 1, "y": 2.5}]`, 0, "y"},
		{"numeric text", `[{"id": 1, "text": 7, "x": 1, "y": 2}]`, 0, "text"},
		{"zero id", `[{"id": 0, "text": "a", "x": 1, "y": 2}]`, 0, "id"},
		{"second record bad", `[{"id": 1, "text": "a", "x": 1, "y": 2}, {"id": 2}]`, 1, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, err := DecodeNotes([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, notes)
			assert.ErrorIs(t, err, ErrMalformed)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.index, perr.Index)
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestEncodeNotes(t *testing.T) {
	data, err := EncodeNotes(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	in := []Note{{ID: 7, Text: "a \"quoted\" line\nand more", X: 3, Y: 4}}
	data, err = EncodeNotes(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": 7`)

	out, err := DecodeNotes(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseError_Message(t *testing.T) {
	assert.Equal(t, "malformed notes file: boom", (&ParseError{Index: -1, Reason: "boom"}).Error())
	assert.Equal(t, "malformed note at index 2: expected a JSON object", (&ParseError{Index: 2, Reason: "expected a JSON object"}).Error())
	assert.Equal(t, `malformed note at index 0: field "x": missing`, (&ParseError{Index: 0, Field: "x", Reason: "missing"}).Error())
}
