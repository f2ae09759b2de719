package model

import "time"

// Clarity status values for a resolved slot
const (
	StatusClear         = "Clear"
	StatusAdequate      = "Adequate Clarity"
	StatusNotClear      = "Not Clear"
	StatusNotFound      = "Not Found"
	StatusNotApplicable = "Not Applicable"
)

// Validation paths recorded by the circle validator
const (
	PathGold = "GOLD"
	PathRef1 = "REF1"
	PathRef2 = "REF2"
	PathNone = "NONE"
)

// SlotOutcome is the resolution result for a single slot
type SlotOutcome struct {
	Status string `json:"status"`
	Value  string `json:"value"`
	Reply  string `json:"reply"`
}

// Resolved reports whether the slot carries a usable value
func (o SlotOutcome) Resolved() bool {
	return o.Status == StatusClear || o.Status == StatusAdequate
}

// Filter is one name/operator/value clause extracted from the sentence,
// each component carrying its own clarity status
type Filter struct {
	Name           string `json:"name"`
	Operator       string `json:"operator"`
	Value          string `json:"value"`
	NameStatus     string `json:"name_status"`
	OperatorStatus string `json:"operator_status"`
	ValueStatus    string `json:"value_status"`
}

// ValidationTraceEntry records one circle validation invocation.
// Entries are append-only and scoped to a single analysis request.
type ValidationTraceEntry struct {
	Component      string   `json:"component_type"`
	SearchText     string   `json:"new_value"`
	GoldStandard   string   `json:"gold_standard"`
	Score          float64  `json:"score"`
	DistanceToGold float64  `json:"distance_to_gold"`
	DistanceToRef1 *float64 `json:"distance_to_ref1"`
	DistanceToRef2 *float64 `json:"distance_to_ref2"`
	ValidationPath string   `json:"validation_path"`
	Accepted       bool     `json:"accepted"`
}

// AnalysisResult aggregates all slot outcomes for one sentence.
// Created fresh per request, never shared.
type AnalysisResult struct {
	Sentence        string                 `json:"sentence"`
	Intent          SlotOutcome            `json:"intent"`
	Process         SlotOutcome            `json:"process"`
	Action          SlotOutcome            `json:"action"`
	FilterSummary   SlotOutcome            `json:"filter_summary"`
	Filters         []Filter               `json:"filters"`
	FinalAnalysis   string                 `json:"final_analysis"`
	ProceedButton   bool                   `json:"proceed_button"`
	RedirectFlag    bool                   `json:"redirect_flag"`
	RedirectURL     string                 `json:"redirect_url,omitempty"`
	SuggestedAction string                 `json:"suggested_action,omitempty"`
	ExampleQuery    string                 `json:"example_query,omitempty"`
	ValidationLogs  []ValidationTraceEntry `json:"validation_logs"`
}

// AnalyzeRequest is the request body for POST /api/v1/analyze
type AnalyzeRequest struct {
	Sentence string `json:"sentence" binding:"required"`
}

// AnalysisLog is one persisted conversation-log record
type AnalysisLog struct {
	ID              string    `json:"id" db:"id"`
	Sentence        string    `json:"sentence" db:"sentence"`
	FinalAnalysis   string    `json:"final_analysis" db:"final_analysis"`
	SuggestedAction string    `json:"suggested_action" db:"suggested_action"`
	Proceed         bool      `json:"proceed" db:"proceed"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
