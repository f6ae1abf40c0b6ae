// Package pipeline orchestrates the claim pipeline: extraction, the
// verdict stages and the follow-up stage, with every derived result
// memoized write-once in the RunState.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/scicheck/internal/extract"
	"github.com/ppiankov/scicheck/internal/logger"
	"github.com/ppiankov/scicheck/internal/model"
	"github.com/ppiankov/scicheck/internal/prompt"
)

const maxQuestionsPerClaim = 3

// Completer is the completion seam the stages need from the LLM client.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteAt(ctx context.Context, prompt string, temperature float32) (string, error)
}

// EvidenceGatherer collects scholarly evidence for a query, best-effort.
type EvidenceGatherer interface {
	Gather(ctx context.Context, query string) []model.EvidenceItem
}

// Options enumerates the pipeline toggles for one analysis pass.
type Options struct {
	Focus         model.Focus
	WithEvidence  bool
	WithQuestions bool
	WithReports   bool
}

// Analyzer runs the claim pipeline. Stages execute sequentially on the
// calling goroutine; there is no per-claim fan-out.
type Analyzer struct {
	llm     Completer
	scholar EvidenceGatherer
	opts    Options
}

// NewAnalyzer creates an analyzer. scholar may be nil when evidence
// augmentation is off.
func NewAnalyzer(llm Completer, scholar EvidenceGatherer, opts Options) *Analyzer {
	return &Analyzer{
		llm:     llm,
		scholar: scholar,
		opts:    opts,
	}
}

// Run executes a full analysis pass and returns a fresh RunState.
// Extraction completes before any per-claim work; the sentinel
// short-circuits everything downstream. A prior RunState is never
// touched; re-running replaces, not merges.
func (a *Analyzer) Run(ctx context.Context, src model.Source) (*model.RunState, error) {
	run := model.NewRunState(src)

	claims, err := extract.Claims(ctx, a.llm, src.Text, a.opts.Focus)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}
	run.Claims = claims

	if extract.IsSentinel(claims) {
		logger.Log.Debug("no explicit claims found, skipping per-claim stages")
		return run, nil
	}

	for i := range run.Claims {
		if _, err := a.VerdictFor(ctx, run, i); err != nil {
			return nil, fmt.Errorf("claim %d: verdict: %w", i, err)
		}

		if a.opts.WithEvidence {
			a.GatherEvidenceFor(ctx, run, i)
			if _, err := a.EvidenceVerdictFor(ctx, run, i); err != nil {
				return nil, fmt.Errorf("claim %d: evidence verdict: %w", i, err)
			}
		}

		if a.opts.WithQuestions {
			questions, err := a.QuestionsFor(ctx, run, i)
			if err != nil {
				return nil, fmt.Errorf("claim %d: questions: %w", i, err)
			}
			if a.opts.WithReports {
				for q := range questions {
					if _, err := a.ReportFor(ctx, run, i, q); err != nil {
						return nil, fmt.Errorf("claim %d question %d: report: %w", i, q, err)
					}
				}
			}
		}
	}

	return run, nil
}

// VerdictFor computes the model-only verdict for a claim index,
// memoized write-once in the RunState.
func (a *Analyzer) VerdictFor(ctx context.Context, run *model.RunState, i int) (string, error) {
	if v, ok := run.Verdict(i); ok {
		return v, nil
	}

	p, err := prompt.Verification(a.opts.Focus, run.Claims[i])
	if err != nil {
		return "", err
	}

	verdict, err := a.llm.Complete(ctx, p)
	if err != nil {
		return "", err
	}

	run.SetVerdict(i, verdict)
	return verdict, nil
}

// GatherEvidenceFor collects scholarly evidence for a claim using its
// raw text as the query, memoized write-once. Gathering never fails.
func (a *Analyzer) GatherEvidenceFor(ctx context.Context, run *model.RunState, i int) []model.EvidenceItem {
	if items, ok := run.EvidenceFor(i); ok {
		return items
	}

	var items []model.EvidenceItem
	if a.scholar != nil {
		items = a.scholar.Gather(ctx, run.Claims[i])
	}
	run.SetEvidence(i, items)
	return items
}

// EvidenceVerdictFor computes the evidence-augmented verdict for a
// claim index. The gathered abstracts are folded into the reassessment
// prompt; empty evidence is not special-cased.
func (a *Analyzer) EvidenceVerdictFor(ctx context.Context, run *model.RunState, i int) (string, error) {
	if v, ok := run.EvidenceVerdict(i); ok {
		return v, nil
	}

	items := a.GatherEvidenceFor(ctx, run, i)
	abstracts := make([]string, 0, len(items))
	for _, item := range items {
		abstracts = append(abstracts, item.Title+": "+item.Abstract)
	}

	p := prompt.Reassessment(run.Source.Text, run.Claims[i], abstracts)
	verdict, err := a.llm.Complete(ctx, p)
	if err != nil {
		return "", err
	}

	run.SetEvidenceVerdict(i, verdict)
	return verdict, nil
}

// QuestionsFor generates up to three research questions for a claim,
// memoized write-once.
func (a *Analyzer) QuestionsFor(ctx context.Context, run *model.RunState, i int) ([]string, error) {
	if qs, ok := run.QuestionsFor(i); ok {
		return qs, nil
	}

	raw, err := a.llm.Complete(ctx, prompt.Questions(run.Claims[i]))
	if err != nil {
		return nil, err
	}

	questions := ParseQuestions(raw)
	run.SetQuestions(i, questions)
	return questions, nil
}

// ReportFor generates the research report for a (claim, question)
// pair, lazily and memoized write-once.
func (a *Analyzer) ReportFor(ctx context.Context, run *model.RunState, i, q int) (string, error) {
	if rep, ok := run.Report(i, q); ok {
		return rep, nil
	}

	questions, ok := run.QuestionsFor(i)
	if !ok || q < 0 || q >= len(questions) {
		return "", fmt.Errorf("no question %d for claim %d", q, i)
	}

	report, err := a.llm.Complete(ctx, prompt.Report(run.Claims[i], questions[q], run.Source.Text))
	if err != nil {
		return "", err
	}

	run.SetReport(i, q, report)
	return report, nil
}

// ParseQuestions keeps the first three non-blank lines of the raw
// response, with leading bullet markers and whitespace stripped,
// preserving response order.
func ParseQuestions(raw string) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		cleaned := strings.TrimSpace(strings.TrimLeft(line, "-•* \t"))
		if cleaned == "" {
			continue
		}
		questions = append(questions, cleaned)
		if len(questions) == maxQuestionsPerClaim {
			break
		}
	}
	return questions
}
