package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"clarity/internal/config"
	"clarity/internal/lexicon"
	"clarity/internal/model"
)

// Input guard errors, mapped to user-facing rejections at the boundary
var (
	ErrEmptySentence   = errors.New("sentence is empty")
	ErrSentenceTooLong = errors.New("sentence exceeds the maximum length")
)

// AnalysisLogStore persists a bounded record of completed analyses
type AnalysisLogStore interface {
	InsertAnalysisLog(ctx context.Context, rec *model.AnalysisLog) error
}

// Analyzer resolves a sentence into a structured command verdict. Each
// request gets a fresh result and trace; the analyzer itself holds no
// mutable per-request state.
type Analyzer struct {
	lex       *lexicon.Store
	extractor *SlotTextExtractor
	filters   *FilterExtractor
	dict      *DictionaryResolver
	phrase    *PhraseResolver
	validator *CircleValidator
	logs      AnalysisLogStore
	cfg       config.AnalysisConfig
}

// NewAnalyzer creates an analyzer. logs may be nil to disable persistence.
func NewAnalyzer(lex *lexicon.Store, validator *CircleValidator, logs AnalysisLogStore, cfg config.AnalysisConfig) *Analyzer {
	return &Analyzer{
		lex:       lex,
		extractor: NewSlotTextExtractor(lex),
		filters:   NewFilterExtractor(),
		dict:      NewDictionaryResolver(lex),
		phrase:    NewPhraseResolver(lex),
		validator: validator,
		logs:      logs,
		cfg:       cfg,
	}
}

// Analyze runs the full slot-resolution pipeline for one sentence
func (a *Analyzer) Analyze(ctx context.Context, sentence string) (*model.AnalysisResult, error) {
	trimmed := strings.TrimSpace(sentence)
	if trimmed == "" {
		return nil, ErrEmptySentence
	}
	if len(trimmed) > a.cfg.MaxSentenceLength {
		return nil, ErrSentenceTooLong
	}

	log.Printf("🔍 Analyzing sentence (%d chars)", len(trimmed))

	input := strings.ToLower(trimmed)
	trace := NewTrace()
	cascade := NewCascade(a.dict, a.phrase, &circleResolver{validator: a.validator, trace: trace})

	res := &model.AnalysisResult{
		Sentence: sentence,
		Filters:  []model.Filter{},
	}

	a.resolveIntent(ctx, input, cascade, res)
	a.resolveProcess(ctx, input, cascade, res)

	// Help requests redirect to documentation; action and filter slots
	// are never evaluated on this path.
	if res.Intent.Value == "help" && res.Intent.Resolved() && res.Process.Resolved() {
		a.redirectToHelp(res)
		res.ValidationLogs = trace.Entries()
		a.persist(res)
		return res, nil
	}

	a.resolveAction(ctx, input, cascade, res)
	a.resolveFilters(ctx, input, cascade, res)
	a.aggregate(res)

	res.ValidationLogs = trace.Entries()
	a.persist(res)

	log.Printf("✅ Analysis complete: proceed=%t intent=%s process=%s action=%s",
		res.ProceedButton, res.Intent.Status, res.Process.Status, res.Action.Status)
	return res, nil
}

func (a *Analyzer) resolveIntent(ctx context.Context, input string, cascade *Cascade, res *model.AnalysisResult) {
	q := SlotQuery{Utterance: input, Extracted: a.extractor.IntentText(input)}
	out, ok := cascade.Resolve(ctx, q, lexicon.CategoryIntent)
	if !ok {
		// A bare imperative ("search objectives where ...") carries no
		// lead-in phrase but still signals a menu command.
		if _, pos := a.extractor.earliestVerb(input); pos >= 0 {
			out = model.SlotOutcome{Status: model.StatusAdequate, Value: "menu"}
			ok = true
		}
	}
	if !ok {
		res.Intent = a.unresolved(input, "No intent detected.", "Unable to determine your intent.")
		return
	}

	switch out.Status {
	case model.StatusClear:
		out.Reply = "Your intent is clear."
	default:
		out.Reply = "Your intent seems somewhat clear."
	}
	res.Intent = out
}

func (a *Analyzer) resolveProcess(ctx context.Context, input string, cascade *Cascade, res *model.AnalysisResult) {
	q := SlotQuery{Utterance: input, Extracted: a.extractor.ProcessText(input)}
	out, ok := cascade.Resolve(ctx, q, lexicon.CategoryProcess)
	if !ok {
		res.Process = a.unresolved(input, "No process detected.", "Unable to determine the process.")
		return
	}

	switch out.Status {
	case model.StatusClear:
		out.Reply = fmt.Sprintf("Detected process is clear: %s", out.Value)
	default:
		out.Reply = fmt.Sprintf("Detected process is somewhat clear: %s", out.Value)
	}
	res.Process = out
}

func (a *Analyzer) resolveAction(ctx context.Context, input string, cascade *Cascade, res *model.AnalysisResult) {
	q := SlotQuery{Utterance: input, Extracted: a.extractor.ActionText(input)}
	out, ok := cascade.Resolve(ctx, q, lexicon.CategoryAction)
	if !ok {
		res.Action = a.unresolved(input, "No action detected.", "Unable to determine the action.")
		return
	}

	switch out.Status {
	case model.StatusClear:
		out.Reply = fmt.Sprintf("Detected action is clear: %s", out.Value)
	default:
		out.Reply = fmt.Sprintf("Detected action is somewhat clear: %s", out.Value)
	}
	res.Action = out
}

// resolveFilters runs only for menu requests that modify or search; every
// detected clause has its three components resolved independently
func (a *Analyzer) resolveFilters(ctx context.Context, input string, cascade *Cascade, res *model.AnalysisResult) {
	applicable := res.Intent.Value == "menu" &&
		(res.Action.Value == "modify" || res.Action.Value == "search")
	if !applicable {
		res.FilterSummary = model.SlotOutcome{
			Status: model.StatusNotApplicable,
			Reply:  "No filters required for this request.",
		}
		return
	}

	clauses := a.filters.Extract(input)
	if len(clauses) == 0 {
		res.FilterSummary = model.SlotOutcome{
			Status: model.StatusNotFound,
			Reply:  "No filters detected.",
		}
		return
	}

	allClear := true
	allResolved := true
	for _, clause := range clauses {
		f := model.Filter{Name: clause.Name, Operator: clause.Operator, Value: clause.Value}

		name, nameOK := cascade.Resolve(ctx, componentQuery(clause.Name), lexicon.CategoryFilterName)
		op, opOK := cascade.Resolve(ctx, componentQuery(clause.Operator), lexicon.CategoryFilterOperator)
		value, valueOK := cascade.Resolve(ctx, componentQuery(clause.Value), lexicon.CategoryFilterValue)

		f.NameStatus = componentStatus(name, nameOK)
		f.OperatorStatus = componentStatus(op, opOK)
		f.ValueStatus = componentStatus(value, valueOK)
		if nameOK {
			f.Name = name.Value
		}
		if opOK {
			f.Operator = op.Value
		}
		if valueOK {
			f.Value = value.Value
		}

		clear := name.Status == model.StatusClear && op.Status == model.StatusClear && value.Status == model.StatusClear
		resolved := nameOK && opOK && valueOK
		allClear = allClear && clear
		allResolved = allResolved && resolved

		res.Filters = append(res.Filters, f)
	}

	switch {
	case allClear:
		res.FilterSummary = model.SlotOutcome{Status: model.StatusClear, Reply: "Detected filters are clear."}
	case allResolved:
		res.FilterSummary = model.SlotOutcome{Status: model.StatusAdequate, Reply: "Detected filters are somewhat clear."}
	default:
		res.FilterSummary = model.SlotOutcome{Status: model.StatusNotClear, Reply: "Unable to determine one or more filters."}
	}
}

func (a *Analyzer) redirectToHelp(res *model.AnalysisResult) {
	url, ok := a.lex.HelpDocument(res.Process.Value)
	if !ok {
		log.Printf("no help document registered for process %q", res.Process.Value)
	}
	res.RedirectFlag = true
	res.RedirectURL = url
	res.Action = model.SlotOutcome{Status: model.StatusNotApplicable, Reply: "Not needed for help requests."}
	res.FilterSummary = model.SlotOutcome{Status: model.StatusNotApplicable, Reply: "Not needed for help requests."}
	res.FinalAnalysis = fmt.Sprintf("Redirecting you to the help page for %s.", res.Process.Value)
	res.ProceedButton = false
}

// aggregate composes the final verdict from the four slot outcomes
func (a *Analyzer) aggregate(res *model.AnalysisResult) {
	filtersOK := res.FilterSummary.Status == model.StatusClear ||
		res.FilterSummary.Status == model.StatusAdequate ||
		res.FilterSummary.Status == model.StatusNotApplicable ||
		res.FilterSummary.Status == model.StatusNotFound

	allValid := res.Intent.Resolved() && res.Process.Resolved() && res.Action.Resolved() && filtersOK
	if allValid {
		res.FinalAnalysis = a.composeFinalText(res)
		res.ProceedButton = true
		return
	}

	var failed []string
	if !res.Intent.Resolved() {
		failed = append(failed, "your intent")
	}
	if !res.Process.Resolved() {
		failed = append(failed, "the process")
	}
	if !res.Action.Resolved() {
		failed = append(failed, "the action")
	}
	if !filtersOK {
		failed = append(failed, "the filters")
	}

	res.FinalAnalysis = fmt.Sprintf("Unable to determine %s.", strings.Join(failed, ", "))
	res.ProceedButton = false

	suggestion := a.lex.SuggestionFor(res.Intent.Value)
	res.SuggestedAction = suggestion.Action
	res.ExampleQuery = suggestion.Example
}

func (a *Analyzer) composeFinalText(res *model.AnalysisResult) string {
	text := fmt.Sprintf("Your intent is clear to %s on %s", res.Action.Value, res.Process.Value)
	if len(res.Filters) > 0 {
		parts := make([]string, len(res.Filters))
		for i, f := range res.Filters {
			parts[i] = fmt.Sprintf("%s %s %s", f.Name, f.Operator, f.Value)
		}
		text += " with " + strings.Join(parts, ", ")
	}
	return text + "."
}

// unresolved distinguishes "keywords present but unresolved" from
// "no relevant signal at all"
func (a *Analyzer) unresolved(input, notFoundReply, notClearReply string) model.SlotOutcome {
	if a.lex.ContainsKnownTerm(input) {
		return model.SlotOutcome{Status: model.StatusNotClear, Reply: notClearReply}
	}
	return model.SlotOutcome{Status: model.StatusNotFound, Reply: notFoundReply}
}

// persist writes the analysis log without blocking the response
func (a *Analyzer) persist(res *model.AnalysisResult) {
	if a.logs == nil {
		return
	}
	rec := &model.AnalysisLog{
		ID:              uuid.NewString(),
		Sentence:        res.Sentence,
		FinalAnalysis:   res.FinalAnalysis,
		SuggestedAction: res.SuggestedAction,
		Proceed:         res.ProceedButton,
		CreatedAt:       time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.logs.InsertAnalysisLog(ctx, rec); err != nil {
			log.Printf("failed to persist analysis log: %v", err)
		}
	}()
}

func componentQuery(text string) SlotQuery {
	return SlotQuery{Utterance: text, Extracted: text}
}

func componentStatus(out model.SlotOutcome, ok bool) string {
	if ok {
		return out.Status
	}
	return model.StatusNotClear
}
