package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterExtractor(t *testing.T) {
	e := NewFilterExtractor()

	tests := []struct {
		name  string
		input string
		want  []FilterClause
	}{
		{
			name:  "symbolic equality",
			input: "search objectives where priority = high",
			want:  []FilterClause{{Name: "priority", Operator: "=", Value: "high"}},
		},
		{
			name:  "worded operator",
			input: "show initiatives where priority greater than low",
			want:  []FilterClause{{Name: "priority", Operator: "greater than", Value: "low"}},
		},
		{
			name:  "juxtaposed name and value implies equality",
			input: "list key results due today",
			want:  []FilterClause{{Name: "due", Operator: "=", Value: "today"}},
		},
		{
			name:  "quarter shorthand",
			input: "show objectives for q1",
			want:  []FilterClause{{Name: "q", Operator: "=", Value: "1"}},
		},
		{
			name:  "quarter with keyword",
			input: "show objectives for quarter q1",
			want:  []FilterClause{{Name: "quarter", Operator: "=", Value: "q1"}},
		},
		{
			name:  "multiple clauses",
			input: "search objectives where priority = high, status is pending",
			want: []FilterClause{
				{Name: "priority", Operator: "=", Value: "high"},
				{Name: "status", Operator: "is", Value: "pending"},
			},
		},
		{
			name:  "no clause",
			input: "i want to create an objective",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterExtractor_NoDuplicateTriples(t *testing.T) {
	e := NewFilterExtractor()

	// the generic equality rule and the where rule both match here; the
	// clause must come out once
	got := e.Extract("search objectives where priority = high")
	require.Len(t, got, 1)
	assert.Equal(t, FilterClause{Name: "priority", Operator: "=", Value: "high"}, got[0])
}

func TestFilterExtractor_ScopesToWhereClause(t *testing.T) {
	e := NewFilterExtractor()

	// "due tomorrow" before the where keyword is out of scope
	got := e.Extract("modify the objective due tomorrow where status = pending")
	require.Len(t, got, 1)
	assert.Equal(t, "status", got[0].Name)
}
