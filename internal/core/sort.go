package core

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/jmylchreest/stickui/internal/model"
)

// SortField represents a field to sort by.
type SortField string

const (
	// SortByFile keeps the notes file order.
	SortByFile SortField = "file"
	SortByID   SortField = "id"
	SortByText SortField = "text"
	// SortByPosition orders top to bottom, then left to right.
	SortByPosition SortField = "position"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField // Field to sort by
	Order SortOrder // Sort order (asc/desc)
}

// DefaultSortOptions returns default sort options (file order).
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByFile,
		Order: SortAsc,
	}
}

// Sort orders notes in place. File order descending reverses the slice;
// the other fields sort stably, so ties keep file order.
func Sort(notes []model.Note, opts SortOptions) {
	if opts.Field == SortByFile || opts.Field == "" {
		if opts.Order == SortDesc {
			slices.Reverse(notes)
		}
		return
	}

	compare := compareBy(opts.Field)
	if opts.Order == SortDesc {
		asc := compare
		compare = func(a, b model.Note) int { return asc(b, a) }
	}
	slices.SortStableFunc(notes, compare)
}

func compareBy(field SortField) func(a, b model.Note) int {
	switch field {
	case SortByText:
		return func(a, b model.Note) int {
			return strings.Compare(strings.ToLower(a.Text), strings.ToLower(b.Text))
		}
	case SortByPosition:
		return func(a, b model.Note) int {
			return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
		}
	default:
		return func(a, b model.Note) int { return cmp.Compare(a.ID, b.ID) }
	}
}

// ParseSortField parses a sort field string.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "file", "f":
		return SortByFile, nil
	case "id", "i":
		return SortByID, nil
	case "text", "t":
		return SortByText, nil
	case "position", "pos", "p":
		return SortByPosition, nil
	default:
		return SortByFile, fmt.Errorf("invalid sort field: %s (use file, id, text or position)", s)
	}
}

// ParseSortOrder parses a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending", "a":
		return SortAsc, nil
	case "desc", "descending", "d":
		return SortDesc, nil
	default:
		return SortAsc, fmt.Errorf("invalid sort order: %s (use asc or desc)", s)
	}
}
