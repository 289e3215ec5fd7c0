package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/stickui/internal/model"
)

// LookupByID finds a note by its id.
// Returns nil if not found.
func LookupByID(notes []model.Note, id int) *model.Note {
	if i := indexOfID(notes, id); i >= 0 {
		return &notes[i]
	}
	return nil
}

func indexOfID(notes []model.Note, id int) int {
	for i := range notes {
		if notes[i].ID == id {
			return i
		}
	}
	return -1
}

// LookupByIndex finds a note by its index (1-based for user-friendliness).
// Returns nil if index is out of bounds.
func LookupByIndex(notes []model.Note, index int) *model.Note {
	idx := index - 1
	if idx < 0 || idx >= len(notes) {
		return nil
	}
	return &notes[idx]
}

// Resolve finds a note from a user reference: "@N" is a 1-based index,
// anything else is an id.
func Resolve(notes []model.Note, ref string) (*model.Note, error) {
	i, err := ResolveIndex(notes, ref)
	if err != nil {
		return nil, err
	}
	return &notes[i], nil
}

// ResolveIndex is Resolve returning the position of the note in notes.
// An id shared by several notes resolves to the first of them; "@N" always
// picks the Nth.
func ResolveIndex(notes []model.Note, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if rest, ok := strings.CutPrefix(ref, "@"); ok {
		index, err := strconv.Atoi(rest)
		if err != nil {
			return -1, fmt.Errorf("invalid index: %s", ref)
		}
		if index < 1 || index > len(notes) {
			return -1, fmt.Errorf("no note at index %d", index)
		}
		return index - 1, nil
	}

	id, err := strconv.Atoi(strings.TrimPrefix(ref, "#"))
	if err != nil {
		return -1, fmt.Errorf("invalid note id: %s", ref)
	}
	if i := indexOfID(notes, id); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("no note with id %d", id)
}

// Search finds notes whose text contains term.
// Case-insensitive substring match.
func Search(notes []model.Note, term string) []model.Note {
	if term == "" {
		return notes
	}

	term = strings.ToLower(term)
	var result []model.Note

	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Text), term) {
			result = append(result, n)
		}
	}

	return result
}
