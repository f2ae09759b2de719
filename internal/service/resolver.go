package service

import (
	"context"
	"strings"

	"clarity/internal/lexicon"
	"clarity/internal/model"
)

// SlotQuery carries the two views of the sentence a resolver may need:
// the full utterance for literal matching and the slot-scoped substring
// for semantic validation.
type SlotQuery struct {
	Utterance string
	Extracted string
}

// SlotResolver is one stage of the per-slot cascade. A false second
// return means no opinion; the cascade falls through to the next stage.
type SlotResolver interface {
	Resolve(ctx context.Context, q SlotQuery, category lexicon.Category) (model.SlotOutcome, bool)
}

// Cascade folds an ordered list of resolvers, stopping at the first hit
type Cascade struct {
	resolvers []SlotResolver
}

// NewCascade creates a resolver cascade
func NewCascade(resolvers ...SlotResolver) *Cascade {
	return &Cascade{resolvers: resolvers}
}

// Resolve runs the cascade for one slot
func (c *Cascade) Resolve(ctx context.Context, q SlotQuery, category lexicon.Category) (model.SlotOutcome, bool) {
	for _, r := range c.resolvers {
		if out, ok := r.Resolve(ctx, q, category); ok {
			return out, true
		}
	}
	return model.SlotOutcome{}, false
}

// DictionaryResolver matches the utterance against primary and synonym
// terms. A hit is the highest-confidence outcome.
type DictionaryResolver struct {
	lex *lexicon.Store
}

// NewDictionaryResolver creates a dictionary resolver
func NewDictionaryResolver(lex *lexicon.Store) *DictionaryResolver {
	return &DictionaryResolver{lex: lex}
}

// Resolve checks primary terms before synonyms within each entry,
// first match in declaration order wins
func (r *DictionaryResolver) Resolve(_ context.Context, q SlotQuery, category lexicon.Category) (model.SlotOutcome, bool) {
	input := q.Utterance
	for _, entry := range r.lex.Entries(category) {
		for _, term := range append(append([]string{}, entry.Primary...), entry.Synonyms...) {
			if !strings.Contains(input, strings.ToLower(term)) {
				continue
			}
			value := entry.StandardValue
			if category == lexicon.CategoryFilterValue {
				// value groups resolve to the matched surface term
				value = strings.ToLower(term)
			}
			return model.SlotOutcome{Status: model.StatusClear, Value: value}, true
		}
	}
	return model.SlotOutcome{}, false
}

// PhraseResolver matches the utterance against loose paraphrases. A hit
// yields medium confidence, never Clear.
type PhraseResolver struct {
	lex *lexicon.Store
}

// NewPhraseResolver creates a phrase resolver
func NewPhraseResolver(lex *lexicon.Store) *PhraseResolver {
	return &PhraseResolver{lex: lex}
}

func (r *PhraseResolver) Resolve(_ context.Context, q SlotQuery, category lexicon.Category) (model.SlotOutcome, bool) {
	input := q.Utterance
	for _, entry := range r.lex.Phrases(category) {
		for _, phrase := range entry.Phrases {
			if !strings.Contains(input, strings.ToLower(phrase)) {
				continue
			}
			value := entry.StandardValue
			if category == lexicon.CategoryFilterValue {
				value = strings.ToLower(phrase)
			}
			return model.SlotOutcome{Status: model.StatusAdequate, Value: value}, true
		}
	}
	return model.SlotOutcome{}, false
}

// circleResolver adapts the circle validator to the cascade contract,
// binding it to the per-request trace. An empty extraction skips
// validation entirely.
type circleResolver struct {
	validator *CircleValidator
	trace     *Trace
}

func (r *circleResolver) Resolve(ctx context.Context, q SlotQuery, category lexicon.Category) (model.SlotOutcome, bool) {
	if strings.TrimSpace(q.Extracted) == "" {
		return model.SlotOutcome{}, false
	}
	return r.validator.Validate(ctx, q.Extracted, category, r.trace)
}
