package service

import (
	"context"
	"database/sql/driver"
	"errors"
	"log"
	"net"
	"time"

	"clarity/internal/config"
	"clarity/internal/lexicon"
	"clarity/internal/model"
)

// Trace collects the validation record of one analysis request.
// Entries are append-only.
type Trace struct {
	entries []model.ValidationTraceEntry
}

// NewTrace creates an empty per-request trace
func NewTrace() *Trace {
	return &Trace{entries: []model.ValidationTraceEntry{}}
}

func (t *Trace) add(entry model.ValidationTraceEntry) {
	t.entries = append(t.entries, entry)
}

// Entries returns the recorded entries in append order
func (t *Trace) Entries() []model.ValidationTraceEntry {
	return t.entries
}

const (
	retryAttempts = 2
	retryDelay    = 200 * time.Millisecond
)

// CircleValidator decides whether a fuzzy semantic match should be
// accepted as a slot value. The top category match must clear a safety
// floor, then pass one of three distance checks tried in strict order:
// distance to the gold phrase, then to each of its two reference
// phrasings. Corroborating a noisy top-1 neighbor against reference
// points with known gold-to-reference distances keeps spurious matches
// out while tolerating paraphrase drift.
type CircleValidator struct {
	sim SimilaritySearcher
	lex *lexicon.Store
	cfg config.ValidationConfig
}

// NewCircleValidator creates a circle validator
func NewCircleValidator(sim SimilaritySearcher, lex *lexicon.Store, cfg config.ValidationConfig) *CircleValidator {
	return &CircleValidator{sim: sim, lex: lex, cfg: cfg}
}

// Validate runs circle validation for one (text, category) pair. Every
// invocation appends exactly one trace entry. Similarity-service
// failures count as rejection, never as errors to the caller.
func (v *CircleValidator) Validate(ctx context.Context, text string, category lexicon.Category, trace *Trace) (model.SlotOutcome, bool) {
	entry := model.ValidationTraceEntry{
		Component:      string(category),
		SearchText:     text,
		DistanceToGold: 1.0,
		ValidationPath: model.PathNone,
	}

	match, err := v.searchWithRetry(ctx, text, category)
	if err != nil {
		log.Printf("circle validation: search failed for %s %q: %v", category, text, err)
		trace.add(entry)
		return model.SlotOutcome{}, false
	}
	if match == nil {
		trace.add(entry)
		return model.SlotOutcome{}, false
	}

	entry.GoldStandard = match.Value
	entry.Score = match.Score
	entry.DistanceToGold = 1.0 - match.Score

	// Safety floor: obviously unrelated input is rejected before any
	// further similarity queries are spent
	if match.Score < v.cfg.SafetyFloor {
		trace.add(entry)
		return model.SlotOutcome{}, false
	}

	refs, ok := v.lex.References(category, match.Value)
	if !ok {
		// intent reference pairs are keyed by the surface phrase
		refs, ok = v.lex.References(category, match.Phrase)
	}
	if !ok {
		log.Printf("circle validation: no reference pair for %s gold %q", category, match.Value)
		trace.add(entry)
		return model.SlotOutcome{}, false
	}

	accepted := false
	if entry.DistanceToGold < v.cfg.MaxDistanceToGold {
		entry.ValidationPath = model.PathGold
		accepted = true
	}

	if !accepted {
		if newToRef1, err := v.compareWithRetry(ctx, text, refs.Ref1Phrase); err != nil {
			log.Printf("circle validation: ref1 comparison failed for %q: %v", refs.Ref1Phrase, err)
		} else {
			d := abs(newToRef1 - refs.GoldToRef1)
			entry.DistanceToRef1 = &d
			if d < v.cfg.MaxDistanceToRef1 {
				entry.ValidationPath = model.PathRef1
				accepted = true
			}
		}
	}

	if !accepted {
		if newToRef2, err := v.compareWithRetry(ctx, text, refs.Ref2Phrase); err != nil {
			log.Printf("circle validation: ref2 comparison failed for %q: %v", refs.Ref2Phrase, err)
		} else {
			d := abs(newToRef2 - refs.GoldToRef2)
			entry.DistanceToRef2 = &d
			if d < v.cfg.MaxDistanceToRef2 {
				entry.ValidationPath = model.PathRef2
				accepted = true
			}
		}
	}

	entry.Accepted = accepted
	trace.add(entry)

	if !accepted {
		return model.SlotOutcome{}, false
	}

	value := match.Value
	if category == lexicon.CategoryIntent {
		value = v.lex.IntentCategoryFor(match.Value)
	}
	return model.SlotOutcome{Status: model.StatusAdequate, Value: value}, true
}

func (v *CircleValidator) searchWithRetry(ctx context.Context, text string, category lexicon.Category) (*model.PhraseMatch, error) {
	var match *model.PhraseMatch
	err := withRetry(ctx, func() error {
		var err error
		match, err = v.sim.Search(ctx, text, category)
		return err
	})
	return match, err
}

func (v *CircleValidator) compareWithRetry(ctx context.Context, text, phrase string) (float64, error) {
	var score float64
	err := withRetry(ctx, func() error {
		var err error
		score, err = v.sim.Compare(ctx, text, phrase)
		return err
	})
	return score, err
}

// withRetry runs fn up to retryAttempts times with a fixed delay,
// retrying only transient failures
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		err = fn()
		if err == nil || !isTransient(err) {
			return err
		}
		if attempt < retryAttempts {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
