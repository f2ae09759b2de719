package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/internal/lexicon"
	"clarity/internal/model"
)

func TestDictionaryResolver(t *testing.T) {
	r := NewDictionaryResolver(newTestLexicon(t))
	ctx := context.Background()

	tests := []struct {
		name     string
		input    string
		category lexicon.Category
		wantOK   bool
		want     string
	}{
		{
			name:     "intent lead-in",
			input:    "i want to create an objective",
			category: lexicon.CategoryIntent,
			wantOK:   true,
			want:     "menu",
		},
		{
			name:     "synonym resolves to standard value",
			input:    "please revise the goal",
			category: lexicon.CategoryAction,
			wantOK:   true,
			want:     "modify",
		},
		{
			name:     "filter value resolves to the surface term",
			input:    "high",
			category: lexicon.CategoryFilterValue,
			wantOK:   true,
			want:     "high",
		},
		{
			name:     "no match",
			input:    "zzzz xxxx",
			category: lexicon.CategoryAction,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, ok := r.Resolve(ctx, SlotQuery{Utterance: tt.input}, tt.category)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, model.StatusClear, out.Status)
				assert.Equal(t, tt.want, out.Value)
			}
		})
	}
}

func TestPhraseResolver(t *testing.T) {
	r := NewPhraseResolver(newTestLexicon(t))
	ctx := context.Background()

	out, ok := r.Resolve(ctx, SlotQuery{Utterance: "i'm looking to make an entry"}, lexicon.CategoryIntent)
	require.True(t, ok)
	assert.Equal(t, model.StatusAdequate, out.Status)
	assert.Equal(t, "menu", out.Value)

	out, ok = r.Resolve(ctx, SlotQuery{Utterance: "i'm looking to make an entry"}, lexicon.CategoryAction)
	require.True(t, ok)
	assert.Equal(t, model.StatusAdequate, out.Status)
	assert.Equal(t, "create", out.Value)

	_, ok = r.Resolve(ctx, SlotQuery{Utterance: "zzzz xxxx"}, lexicon.CategoryAction)
	assert.False(t, ok)
}

func TestCascade_FirstHitWins(t *testing.T) {
	lex := newTestLexicon(t)
	// a searcher that would accept anything, behind dictionary and phrase
	sim := &fakeSearcher{match: &model.PhraseMatch{Value: "delete", Phrase: "delete", Score: 0.99}}
	validator := NewCircleValidator(sim, lex, testValidationConfig())
	trace := NewTrace()

	cascade := NewCascade(
		NewDictionaryResolver(lex),
		NewPhraseResolver(lex),
		&circleResolver{validator: validator, trace: trace},
	)

	q := SlotQuery{Utterance: "i want to create an objective", Extracted: "create"}
	out, ok := cascade.Resolve(context.Background(), q, lexicon.CategoryAction)
	require.True(t, ok)
	assert.Equal(t, model.StatusClear, out.Status)
	assert.Equal(t, "create", out.Value)
	assert.Zero(t, sim.searchCalls, "dictionary hit must not reach the similarity service")
	assert.Empty(t, trace.Entries())
}

func TestCircleResolver_SkipsEmptyExtraction(t *testing.T) {
	sim := &fakeSearcher{match: &model.PhraseMatch{Value: "create", Phrase: "create", Score: 0.99}}
	validator := NewCircleValidator(sim, newTestLexicon(t), testValidationConfig())
	trace := NewTrace()
	r := &circleResolver{validator: validator, trace: trace}

	_, ok := r.Resolve(context.Background(), SlotQuery{Utterance: "zzzz", Extracted: "  "}, lexicon.CategoryAction)
	assert.False(t, ok)
	assert.Zero(t, sim.searchCalls)
	assert.Empty(t, trace.Entries())
}
