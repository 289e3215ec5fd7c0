package core

import (
	"testing"

	"github.com/jmylchreest/stickui/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNotes() []model.Note {
	return []model.Note{
		{ID: 100000, Text: "buy milk\nand eggs", X: 100, Y: 100},
		{ID: 100001, Text: "TODO: ring Sam", X: 1200, Y: 40},
		{ID: 100002, Text: "", X: 124, Y: 124},
		{ID: 100003, Text: "milk float", X: 600, Y: 700},
	}
}

func ids(notes []model.Note) []int {
	out := make([]int, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestFilter_Empty(t *testing.T) {
	result := Filter(nil, FilterOptions{})
	assert.Len(t, result, 0)
}

func TestFilter_Search(t *testing.T) {
	result := Filter(sampleNotes(), FilterOptions{Search: "MILK"})
	assert.Equal(t, []int{100000, 100003}, ids(result))
}

func TestFilter_Limit(t *testing.T) {
	result := Filter(sampleNotes(), FilterOptions{Limit: 2})
	assert.Equal(t, []int{100000, 100001}, ids(result))
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		conds   int
		field   string
		op      FilterOp
		wantErr bool
	}{
		{name: "empty", expr: "", conds: 0},
		{name: "contains", expr: "text~milk", conds: 1, field: "text", op: FilterOpContains},
		{name: "body alias", expr: "body~milk", conds: 1, field: "text", op: FilterOpContains},
		{name: "not equal before equal", expr: "id!=5", conds: 1, field: "id", op: FilterOpNotEqual},
		{name: "greater equal", expr: "x>=10", conds: 1, field: "x", op: FilterOpGreaterEq},
		{name: "regex", expr: "title~=^buy", conds: 1, field: "title", op: FilterOpRegex},
		{name: "compound", expr: "x>10, y<20", conds: 2, field: "x", op: FilterOpGreater},
		{name: "uppercase field", expr: "ID=1", conds: 1, field: "id", op: FilterOpEqual},
		{name: "missing operator", expr: "milk", wantErr: true},
		{name: "unknown field", expr: "colour=red", wantErr: true},
		{name: "non numeric id", expr: "id=abc", wantErr: true},
		{name: "contains on numeric", expr: "x~1", wantErr: true},
		{name: "bad regex", expr: "text~=(", wantErr: true},
		{name: "leftmost operator wins", expr: "text~a=b", conds: 1, field: "text", op: FilterOpContains},
		{name: "ordering on text", expr: "text>a", wantErr: true},
		{name: "bare bang", expr: "id!5", wantErr: true},
		{name: "missing field", expr: "=5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFilter(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, f.Conditions, tt.conds)
			if tt.conds > 0 {
				assert.Equal(t, tt.field, f.Conditions[0].Field)
				assert.Equal(t, tt.op, f.Conditions[0].Operator)
			}
		})
	}
}

func TestFilterWithExpr(t *testing.T) {
	tests := []struct {
		expr string
		want []int
	}{
		{expr: "", want: []int{100000, 100001, 100002, 100003}},
		{expr: "text~milk", want: []int{100000, 100003}},
		{expr: "id=100001", want: []int{100001}},
		{expr: "id>=100002", want: []int{100002, 100003}},
		{expr: "x>500,y<100", want: []int{100001}},
		{expr: "y<=100", want: []int{100000, 100001}},
		{expr: "title=buy milk", want: []int{100000}},
		{expr: "title~=^TODO", want: []int{100001}},
		{expr: "text=", want: []int{100002}},
		{expr: "text!=", want: []int{100000, 100001, 100003}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := ParseFilter(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(FilterWithExpr(sampleNotes(), f)))
		})
	}
}

func TestFilterWithExpr_Nil(t *testing.T) {
	notes := sampleNotes()
	assert.Len(t, FilterWithExpr(notes, nil), len(notes))
}

func TestFilter_EmptyTextTitleIsPlaceholder(t *testing.T) {
	f, err := ParseFilter("title~type your note")
	require.NoError(t, err)
	assert.Equal(t, []int{100002}, ids(FilterWithExpr(sampleNotes(), f)))
}

func TestFilter_ContainsValueWithOperator(t *testing.T) {
	f, err := ParseFilter("text~a=b")
	require.NoError(t, err)
	assert.Equal(t, "a=b", f.Conditions[0].Value)
	assert.True(t, f.Match(model.Note{Text: "set A=B now"}))
}

func TestIsFilterExpression_Fields(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"", false},
		{"   ", false},
		{"milk", false},
		{"text~milk", true},
		{"X>10, y<=20", true},
		{"body~eggs", true},
		{"colour=red", false},
		{"x>10,milk", false},
		{"id=abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFilterExpression(tt.query))
		})
	}
}
