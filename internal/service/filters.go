package service

import (
	"regexp"
	"strings"
)

// FilterClause is one raw name/operator/value triple detected in the
// sentence, before its components are resolved
type FilterClause struct {
	Name     string
	Operator string
	Value    string
}

// filterRule is one detection pattern with the capture-group positions of
// the triple components. An operator index of 0 means the rule implies
// equality.
type filterRule struct {
	re       *regexp.Regexp
	name     int
	operator int
	value    int
}

// FilterExtractor detects filter clauses with an ordered set of pattern
// rules and deduplicates them by exact triple
type FilterExtractor struct {
	rules []filterRule
}

// NewFilterExtractor creates a filter extractor with the built-in rules
func NewFilterExtractor() *FilterExtractor {
	return &FilterExtractor{
		rules: []filterRule{
			{re: regexp.MustCompile(`(?i)(\w+)\s*(=|\bequal to\b|\bequals\b|\bis\b)\s*([^\s,=<>]+)`), name: 1, operator: 2, value: 3},
			{re: regexp.MustCompile(`(?i)(\w+)\s*(>|\bgreater than\b|\bmore than\b|\babove\b)\s*([^\s,=<>]+)`), name: 1, operator: 2, value: 3},
			{re: regexp.MustCompile(`(?i)(\w+)\s*(<|\bless than\b|\bbelow\b|\bunder\b)\s*([^\s,=<>]+)`), name: 1, operator: 2, value: 3},
			{re: regexp.MustCompile(`(?i)\b(due|priority|status|assigned)\s+([^\s,=<>]+)`), name: 1, value: 2},
			{re: regexp.MustCompile(`(?i)\bwhere\s+(\w+)\s*(=|>|<|\bequals\b|\bis\b)\s*([^\s,=<>]+)`), name: 1, operator: 2, value: 3},
			{re: regexp.MustCompile(`(?i)\b(quarter|q)\s*(=|\bequal to\b|\bequals\b|\bis\b)\s*(q?[1-4])\b`), name: 1, operator: 2, value: 3},
			{re: regexp.MustCompile(`(?i)\bfor\s+(quarter|q)\s*(q?[1-4])\b`), name: 1, value: 2},
		},
	}
}

// Extract returns the deduplicated filter clauses of a sentence. When a
// where keyword is present, only the clause after it is scanned.
func (e *FilterExtractor) Extract(input string) []FilterClause {
	scope := input
	if idx := indexOfWord(input, "where"); idx >= 0 {
		scope = input[idx:]
	}

	var clauses []FilterClause
	seen := make(map[string]struct{})
	claimed := make(map[string]struct{})

	for _, rule := range e.rules {
		for _, m := range rule.re.FindAllStringSubmatch(scope, -1) {
			clause := FilterClause{
				Name:     normalizeComponent(m[rule.name]),
				Operator: "=",
				Value:    normalizeComponent(m[rule.value]),
			}
			if rule.operator > 0 {
				clause.Operator = normalizeComponent(m[rule.operator])
			}
			if clause.Name == "" || clause.Value == "" {
				continue
			}
			// implied-equality rules yield to an explicit operator on the
			// same name, so "priority greater than low" is one clause
			if rule.operator == 0 {
				if _, taken := claimed[clause.Name]; taken {
					continue
				}
			} else {
				claimed[clause.Name] = struct{}{}
			}
			key := clause.Name + "|" + clause.Operator + "|" + clause.Value
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			clauses = append(clauses, clause)
		}
	}
	return clauses
}

func normalizeComponent(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
