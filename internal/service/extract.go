package service

import (
	"strings"

	"clarity/internal/lexicon"
)

// SlotTextExtractor derives the substring of an utterance relevant to a
// slot. All methods are pure functions over the lowercased, trimmed input.
type SlotTextExtractor struct {
	lex *lexicon.Store
}

// NewSlotTextExtractor creates a slot text extractor
func NewSlotTextExtractor(lex *lexicon.Store) *SlotTextExtractor {
	return &SlotTextExtractor{lex: lex}
}

var leadingArticles = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "my": {}, "new": {},
}

// indexOfWord finds word as a whole whitespace-delimited token, so "for"
// never truncates inside "performance"
func indexOfWord(s, word string) int {
	offset := 0
	for {
		idx := strings.Index(s[offset:], word)
		if idx < 0 {
			return -1
		}
		idx += offset
		startOK := idx == 0 || s[idx-1] == ' '
		end := idx + len(word)
		endOK := end == len(s) || s[end] == ' '
		if startOK && endOK {
			return idx
		}
		offset = idx + 1
	}
}

// earliestVerb finds the action verb with the lowest position in the input.
// Returns position -1 when no verb occurs.
func (e *SlotTextExtractor) earliestVerb(input string) (string, int) {
	best := ""
	bestPos := -1
	for _, verb := range e.lex.ActionVerbs() {
		pos := strings.Index(input, verb)
		if pos < 0 {
			continue
		}
		if bestPos < 0 || pos < bestPos || (pos == bestPos && len(verb) > len(best)) {
			best = verb
			bestPos = pos
		}
	}
	return best, bestPos
}

// IntentText returns the substring before the earliest action verb, or the
// first four tokens when no verb follows other text
func (e *SlotTextExtractor) IntentText(input string) string {
	if _, pos := e.earliestVerb(input); pos > 0 {
		return strings.TrimSpace(input[:pos])
	}
	tokens := strings.Fields(input)
	if len(tokens) > 4 {
		tokens = tokens[:4]
	}
	return strings.Join(tokens, " ")
}

// ProcessText returns the text after the earliest action verb, truncated at
// the first filter keyword, with leading articles stripped. A two-token
// prefix is checked against known multi-word process terms before falling
// back to a single token.
func (e *SlotTextExtractor) ProcessText(input string) string {
	verb, pos := e.earliestVerb(input)
	if pos < 0 {
		return ""
	}

	after := strings.TrimSpace(input[pos+len(verb):])
	for _, keyword := range e.lex.FilterKeywords() {
		if idx := indexOfWord(after, keyword); idx >= 0 {
			after = strings.TrimSpace(after[:idx])
			break
		}
	}

	tokens := strings.Fields(after)
	for len(tokens) > 0 {
		if _, article := leadingArticles[tokens[0]]; !article {
			break
		}
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) >= 2 {
		prefix := tokens[0] + " " + tokens[1]
		if e.lex.HasMultiWordPrefix(lexicon.CategoryProcess, prefix) {
			return strings.Join(tokens, " ")
		}
	}
	return tokens[0]
}

// ActionText returns the earliest action verb, or the first token after a
// recognized intent lead-in when no verb occurs
func (e *SlotTextExtractor) ActionText(input string) string {
	if verb, pos := e.earliestVerb(input); pos >= 0 {
		return verb
	}

	for _, leadIn := range e.lex.IntentLeadIns() {
		idx := strings.Index(input, strings.ToLower(leadIn))
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(input[idx+len(leadIn):])
		tokens := strings.Fields(rest)
		if len(tokens) > 0 {
			return tokens[0]
		}
	}
	return ""
}
