package lexicon

import (
	"fmt"
	"strings"
)

// Category identifies one slot vocabulary
type Category string

const (
	CategoryIntent         Category = "intent"
	CategoryProcess        Category = "process"
	CategoryAction         Category = "action"
	CategoryFilterName     Category = "filter_name"
	CategoryFilterOperator Category = "filter_operator"
	CategoryFilterValue    Category = "filter_value"
)

// Categories lists every slot vocabulary in resolution order
var Categories = []Category{
	CategoryIntent,
	CategoryProcess,
	CategoryAction,
	CategoryFilterName,
	CategoryFilterOperator,
	CategoryFilterValue,
}

// ParseCategory validates a category name from an external caller
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == strings.ToLower(strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// Entry maps one canonical slot value to its exact-match surface terms.
// Primary terms are checked before synonyms.
type Entry struct {
	StandardValue string
	Primary       []string
	Synonyms      []string
}

// PhraseEntry maps one canonical slot value to looser paraphrases,
// consulted only after dictionary matching fails
type PhraseEntry struct {
	StandardValue string
	Phrases       []string
}

// ReferencePair holds the two corroborating phrasings of a gold standard
// and the offline-computed gold-to-reference similarity scores
type ReferencePair struct {
	Ref1Phrase string
	Ref2Phrase string
	GoldToRef1 float64
	GoldToRef2 float64
}

// Suggestion is the rephrasing guidance returned when analysis fails
type Suggestion struct {
	Action  string
	Example string
}

// IndexPoint is one phrase to load into the similarity index
type IndexPoint struct {
	Category      Category
	StandardValue string
	Phrase        string
	IsPrimary     bool
}

// Store holds every category-scoped table. Entries keep declaration
// order so first-match-wins resolution is deterministic.
type Store struct {
	entries    map[Category][]Entry
	phrases    map[Category][]PhraseEntry
	references map[Category]map[string]ReferencePair

	intentCategories map[string]string
	helpDocuments    map[string]string
	suggestions      map[string]Suggestion

	actionVerbs    []string
	filterKeywords []string
}

// NewStore builds the static lexicon and checks its invariants
func NewStore() (*Store, error) {
	s := &Store{
		entries: map[Category][]Entry{
			CategoryIntent:         intentEntries,
			CategoryProcess:        processEntries,
			CategoryAction:         actionEntries,
			CategoryFilterName:     filterNameEntries,
			CategoryFilterOperator: filterOperatorEntries,
			CategoryFilterValue:    filterValueEntries,
		},
		phrases: map[Category][]PhraseEntry{
			CategoryIntent:         intentPhrases,
			CategoryProcess:        processPhrases,
			CategoryAction:         actionPhrases,
			CategoryFilterName:     filterNamePhrases,
			CategoryFilterOperator: filterOperatorPhrases,
			CategoryFilterValue:    filterValuePhrases,
		},
		references:       referencePairs,
		intentCategories: intentPhraseCategories,
		helpDocuments:    helpDocuments,
		suggestions:      suggestions,
		actionVerbs:      actionVerbs,
		filterKeywords:   filterKeywords,
	}

	for cat, entries := range s.entries {
		seen := make(map[string]struct{}, len(entries))
		for _, e := range entries {
			if _, dup := seen[e.StandardValue]; dup {
				return nil, fmt.Errorf("lexicon: duplicate standard value %q in category %s", e.StandardValue, cat)
			}
			seen[e.StandardValue] = struct{}{}
		}
	}
	return s, nil
}

// Entries returns the dictionary entries for a category in declaration order
func (s *Store) Entries(cat Category) []Entry {
	return s.entries[cat]
}

// Phrases returns the paraphrase entries for a category in declaration order
func (s *Store) Phrases(cat Category) []PhraseEntry {
	return s.phrases[cat]
}

// References looks up the reference pair for a gold standard within a category
func (s *Store) References(cat Category, gold string) (ReferencePair, bool) {
	pairs, ok := s.references[cat]
	if !ok {
		return ReferencePair{}, false
	}
	pair, ok := pairs[strings.ToLower(gold)]
	return pair, ok
}

// IntentCategoryFor maps an intent gold phrase to its intent category.
// Values that already are categories pass through; everything else
// defaults to the menu category.
func (s *Store) IntentCategoryFor(gold string) string {
	gold = strings.ToLower(gold)
	if gold == "menu" || gold == "help" {
		return gold
	}
	if cat, ok := s.intentCategories[gold]; ok {
		return cat
	}
	return "menu"
}

// HelpDocument returns the documentation URL for a process
func (s *Store) HelpDocument(process string) (string, bool) {
	url, ok := s.helpDocuments[strings.ToLower(process)]
	return url, ok
}

// SuggestionFor returns rephrasing guidance keyed by the detected intent
// category, falling back to the generic entry
func (s *Store) SuggestionFor(intent string) Suggestion {
	if sug, ok := s.suggestions[strings.ToLower(intent)]; ok {
		return sug
	}
	return s.suggestions["unknown"]
}

// ActionVerbs returns the surface verbs used for slot text extraction
func (s *Store) ActionVerbs() []string {
	return s.actionVerbs
}

// FilterKeywords returns the words that introduce filter clauses
func (s *Store) FilterKeywords() []string {
	return s.filterKeywords
}

// ContainsKnownTerm reports whether the input mentions any dictionary term
// from any category. It separates "keywords present but unresolved" from
// "no relevant signal at all".
func (s *Store) ContainsKnownTerm(input string) bool {
	input = strings.ToLower(input)
	for _, cat := range Categories {
		for _, e := range s.entries[cat] {
			for _, term := range e.Primary {
				if termOccurs(input, term) {
					return true
				}
			}
			for _, term := range e.Synonyms {
				if termOccurs(input, term) {
					return true
				}
			}
		}
	}
	return false
}

// termOccurs checks substring containment, except single-character terms
// like "q" or "=" which must stand alone to count as a signal
func termOccurs(input, term string) bool {
	term = strings.ToLower(term)
	if len(term) > 1 {
		return strings.Contains(input, term)
	}
	for _, tok := range strings.Fields(input) {
		if tok == term {
			return true
		}
	}
	return false
}

// HasMultiWordPrefix reports whether any multi-word term in the category
// starts with the given prefix
func (s *Store) HasMultiWordPrefix(cat Category, prefix string) bool {
	prefix = strings.ToLower(prefix)
	for _, e := range s.entries[cat] {
		for _, term := range append(append([]string{}, e.Primary...), e.Synonyms...) {
			term = strings.ToLower(term)
			if strings.Contains(term, " ") && strings.HasPrefix(term, prefix) {
				return true
			}
		}
	}
	return false
}

// IntentLeadIns returns every intent surface phrase, dictionary then
// paraphrase, used to locate the token that follows a lead-in
func (s *Store) IntentLeadIns() []string {
	var out []string
	for _, e := range s.entries[CategoryIntent] {
		out = append(out, e.Primary...)
		out = append(out, e.Synonyms...)
	}
	for _, p := range s.phrases[CategoryIntent] {
		out = append(out, p.Phrases...)
	}
	return out
}

// IndexPoints flattens every dictionary and phrase table into the rows
// the similarity index is bulk-loaded with. Filter values index the
// surface term itself as the standard value so a semantic match yields
// the term directly.
func (s *Store) IndexPoints() []IndexPoint {
	var points []IndexPoint
	for _, cat := range Categories {
		surface := cat == CategoryFilterValue
		for _, e := range s.entries[cat] {
			for _, term := range e.Primary {
				points = append(points, indexPoint(cat, e.StandardValue, term, true, surface))
			}
			for _, term := range e.Synonyms {
				points = append(points, indexPoint(cat, e.StandardValue, term, false, surface))
			}
		}
		for _, p := range s.phrases[cat] {
			for _, phrase := range p.Phrases {
				points = append(points, indexPoint(cat, p.StandardValue, phrase, false, surface))
			}
		}
	}
	return points
}

func indexPoint(cat Category, value, phrase string, primary, surface bool) IndexPoint {
	if surface {
		value = phrase
	}
	return IndexPoint{
		Category:      cat,
		StandardValue: strings.ToLower(value),
		Phrase:        strings.ToLower(phrase),
		IsPrimary:     primary,
	}
}
