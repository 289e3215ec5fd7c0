// Package core provides filtering, sorting, and lookup logic.
package core

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmylchreest/stickui/internal/model"
)

// FilterOp is a comparison operator in a filter expression.
type FilterOp string

const (
	FilterOpEqual     FilterOp = "="
	FilterOpNotEqual  FilterOp = "!="
	FilterOpContains  FilterOp = "~" // Case-insensitive substring
	FilterOpRegex     FilterOp = "~="
	FilterOpGreater   FilterOp = ">"
	FilterOpLess      FilterOp = "<"
	FilterOpGreaterEq FilterOp = ">="
	FilterOpLessEq    FilterOp = "<="
)

// field describes one filterable note attribute. Exactly one of str and num
// is set.
type field struct {
	str func(model.Note) string
	num func(model.Note) int
}

var fields = map[string]field{
	"id":    {num: func(n model.Note) int { return n.ID }},
	"x":     {num: func(n model.Note) int { return n.X }},
	"y":     {num: func(n model.Note) int { return n.Y }},
	"text":  {str: func(n model.Note) string { return n.Text }},
	"title": {str: func(n model.Note) string { return n.Title() }},
}

// aliases maps alternative field names to their canonical name.
var aliases = map[string]string{
	"body": "text",
}

func lookupField(name string) (string, field, bool) {
	name = strings.ToLower(name)
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	f, ok := fields[name]
	return name, f, ok
}

// FilterCondition is one field/operator/value test.
type FilterCondition struct {
	Field    string // Canonical field name: id, text, title, x, y
	Operator FilterOp
	Value    string

	get   field
	num   int
	regex *regexp.Regexp
}

// FilterExpr is a conjunction of conditions.
type FilterExpr struct {
	Conditions []FilterCondition
}

// FilterOptions specifies simple criteria for filtering notes.
type FilterOptions struct {
	Search string // Case-insensitive substring of the text
	Limit  int    // Maximum results (0=unlimited)
}

// Filter applies a text search and a limit.
func Filter(notes []model.Note, opts FilterOptions) []model.Note {
	result := Search(notes, opts.Search)
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result
}

// ParseFilter parses comma-separated conditions, all of which must hold.
//
// Fields are id, x, y (numeric) and text (alias body), title (string).
// Numeric fields take = != > < >= <=; string fields take = != ~ ~=.
//
// Examples:
//   - "text~milk" - text contains "milk"
//   - "id=100042" - a single note
//   - "x>1000,y<200" - notes near the top right
//   - "title~=(?i)^todo" - first line starts with "todo"
func ParseFilter(expr string) (*FilterExpr, error) {
	f := &FilterExpr{}
	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := parseCondition(part)
		if err != nil {
			return nil, err
		}
		f.Conditions = append(f.Conditions, c)
	}
	return f, nil
}

// splitCondition splits s at its leftmost operator, taking the two-character
// form when one starts there. The field part must be non-empty.
func splitCondition(s string) (name string, op FilterOp, value string, ok bool) {
	i := strings.IndexAny(s, "=!~<>")
	if i <= 0 {
		return "", "", "", false
	}
	op = FilterOp(s[i : i+1])
	if i+1 < len(s) && s[i+1] == '=' && s[i] != '=' {
		op = FilterOp(s[i : i+2])
	}
	if op == "!" {
		return "", "", "", false
	}
	return strings.TrimSpace(s[:i]), op, strings.TrimSpace(s[i+len(op):]), true
}

func parseCondition(s string) (FilterCondition, error) {
	name, op, value, ok := splitCondition(s)
	if !ok {
		return FilterCondition{}, fmt.Errorf("invalid filter condition: %s (missing operator)", s)
	}
	canonical, f, ok := lookupField(name)
	if !ok {
		return FilterCondition{}, fmt.Errorf("unknown filter field: %s", name)
	}

	c := FilterCondition{Field: canonical, Operator: op, Value: value, get: f}
	if f.num != nil {
		switch op {
		case FilterOpContains, FilterOpRegex:
			return FilterCondition{}, fmt.Errorf("operator %s not supported for numeric field %s", op, canonical)
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return FilterCondition{}, fmt.Errorf("invalid %s value: %s", canonical, value)
		}
		c.num = v
		return c, nil
	}

	switch op {
	case FilterOpGreater, FilterOpLess, FilterOpGreaterEq, FilterOpLessEq:
		return FilterCondition{}, fmt.Errorf("operator %s not supported for text field %s", op, canonical)
	case FilterOpRegex:
		re, err := regexp.Compile(value)
		if err != nil {
			return FilterCondition{}, fmt.Errorf("invalid regex: %w", err)
		}
		c.regex = re
	}
	return c, nil
}

// IsFilterExpression reports whether query reads as a filter expression
// rather than search text: every comma-separated part must start with a
// known field followed by an operator.
func IsFilterExpression(query string) bool {
	if strings.TrimSpace(query) == "" {
		return false
	}
	for part := range strings.SplitSeq(query, ",") {
		name, _, _, ok := splitCondition(strings.TrimSpace(part))
		if !ok {
			return false
		}
		if _, _, known := lookupField(name); !known {
			return false
		}
	}
	return true
}

// Match reports whether n satisfies every condition.
func (f *FilterExpr) Match(n model.Note) bool {
	for i := range f.Conditions {
		if !f.Conditions[i].Match(n) {
			return false
		}
	}
	return true
}

// Match reports whether n satisfies c.
func (c *FilterCondition) Match(n model.Note) bool {
	if c.get.num != nil {
		return c.compare(cmp.Compare(c.get.num(n), c.num))
	}
	if c.get.str == nil {
		return false
	}

	s := c.get.str(n)
	switch c.Operator {
	case FilterOpContains:
		return strings.Contains(strings.ToLower(s), strings.ToLower(c.Value))
	case FilterOpRegex:
		return c.regex != nil && c.regex.MatchString(s)
	default:
		return c.compare(strings.Compare(s, c.Value))
	}
}

// compare maps a three-way comparison result onto the operator.
func (c *FilterCondition) compare(r int) bool {
	switch c.Operator {
	case FilterOpEqual:
		return r == 0
	case FilterOpNotEqual:
		return r != 0
	case FilterOpGreater:
		return r > 0
	case FilterOpLess:
		return r < 0
	case FilterOpGreaterEq:
		return r >= 0
	case FilterOpLessEq:
		return r <= 0
	default:
		return false
	}
}

// FilterWithExpr returns the notes matching expr. A nil or empty expression
// keeps every note.
func FilterWithExpr(notes []model.Note, expr *FilterExpr) []model.Note {
	if expr == nil || len(expr.Conditions) == 0 {
		return notes
	}
	result := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if expr.Match(n) {
			result = append(result, n)
		}
	}
	return result
}
