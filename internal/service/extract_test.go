package service

import (
	"testing"

	"clarity/internal/lexicon"
)

func newTestLexicon(t *testing.T) *lexicon.Store {
	t.Helper()
	store, err := lexicon.NewStore()
	if err != nil {
		t.Fatalf("failed to build lexicon: %v", err)
	}
	return store
}

func TestIntentText(t *testing.T) {
	e := NewSlotTextExtractor(newTestLexicon(t))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "text before the action verb",
			input: "i want to create an objective",
			want:  "i want to",
		},
		{
			name:  "no verb falls back to first four tokens",
			input: "something about quarterly planning maybe later",
			want:  "something about quarterly planning",
		},
		{
			name:  "verb at position zero keeps the token window",
			input: "create an objective",
			want:  "create an objective",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.IntentText(tt.input); got != tt.want {
				t.Errorf("IntentText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestProcessText(t *testing.T) {
	e := NewSlotTextExtractor(newTestLexicon(t))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single token after verb with article stripped",
			input: "i want to create an objective",
			want:  "objective",
		},
		{
			name:  "truncates at filter keyword",
			input: "i want to search objectives where priority = high",
			want:  "objectives",
		},
		{
			name:  "multi word process term kept whole",
			input: "i want to update key result checkin",
			want:  "key result checkin",
		},
		{
			name:  "filter keyword must be a whole word",
			input: "i want to find performance metric",
			want:  "performance",
		},
		{
			name:  "no verb yields nothing",
			input: "hello there",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.ProcessText(tt.input); got != tt.want {
				t.Errorf("ProcessText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestActionText(t *testing.T) {
	e := NewSlotTextExtractor(newTestLexicon(t))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "earliest verb wins",
			input: "i want to create and delete objectives",
			want:  "create",
		},
		{
			name:  "token after intent lead-in when no verb",
			input: "i want to organize my goals",
			want:  "organize",
		},
		{
			name:  "nothing recognizable",
			input: "completely unrelated words",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.ActionText(tt.input); got != tt.want {
				t.Errorf("ActionText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIndexOfWord(t *testing.T) {
	tests := []struct {
		s    string
		word string
		want int
	}{
		{"search objectives where priority = high", "where", 18},
		{"track performance metric", "for", -1},
		{"for quarter q1", "for", 0},
		{"plan for q1", "for", 5},
	}

	for _, tt := range tests {
		if got := indexOfWord(tt.s, tt.word); got != tt.want {
			t.Errorf("indexOfWord(%q, %q) = %d, want %d", tt.s, tt.word, got, tt.want)
		}
	}
}
