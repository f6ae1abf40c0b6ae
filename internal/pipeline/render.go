package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/scicheck/internal/extract"
	"github.com/ppiankov/scicheck/internal/model"
)

// Renderer writes a RunState as JSON, Markdown or a terminal summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the RunState as indented JSON to path.
func (r *Renderer) RenderJSON(run *model.RunState, path string) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes the RunState as a Markdown report to path.
func (r *Renderer) RenderMarkdown(run *model.RunState, path string) error {
	var b strings.Builder

	b.WriteString("# SciCheck Report\n\n")
	fmt.Fprintf(&b, "**Source:** %s\n\n", run.Source.Origin)

	if extract.IsSentinel(run.Claims) {
		b.WriteString(run.Claims[0] + "\n")
		return os.WriteFile(path, []byte(b.String()), 0644)
	}

	for i, claim := range run.Claims {
		fmt.Fprintf(&b, "## Claim %d: %s\n\n", i+1, claim)

		if verdict, ok := run.Verdict(i); ok {
			b.WriteString("### Model Verdict\n\n")
			b.WriteString(verdict + "\n\n")
		}

		if verdict, ok := run.EvidenceVerdict(i); ok {
			b.WriteString("### Evidence-Augmented Verdict\n\n")
			b.WriteString(verdict + "\n\n")
			if items, ok := run.EvidenceFor(i); ok && len(items) > 0 {
				b.WriteString("#### Evidence\n\n")
				for _, item := range items {
					if item.URL != "" {
						fmt.Fprintf(&b, "- [%s](%s)\n", item.Title, item.URL)
					} else {
						fmt.Fprintf(&b, "- %s\n", item.Title)
					}
				}
				b.WriteString("\n")
			}
		}

		if questions, ok := run.QuestionsFor(i); ok && len(questions) > 0 {
			b.WriteString("### Research Questions\n\n")
			for q, question := range questions {
				fmt.Fprintf(&b, "%d. %s\n", q+1, question)
				if report, ok := run.Report(i, q); ok {
					b.WriteString("\n" + report + "\n")
				}
			}
			b.WriteString("\n")
		}
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by SciCheck. Verdicts are model output, not ground truth.\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0644)
}

// RenderSummary prints a terminal summary with per-tag verdict counts.
func (r *Renderer) RenderSummary(run *model.RunState, w io.Writer) {
	fmt.Fprintf(w, "\nSource: %s\n", run.Source.Origin)

	if extract.IsSentinel(run.Claims) {
		fmt.Fprintf(w, "%s\n", run.Claims[0])
		return
	}

	fmt.Fprintf(w, "Claims: %d\n\n", len(run.Claims))

	counts := make(map[model.VerdictTag]int)
	for i, claim := range run.Claims {
		tag := model.TagUnknown
		// The evidence-augmented verdict, when present, supersedes the
		// model-only one in the summary line.
		if verdict, ok := run.EvidenceVerdict(i); ok {
			tag = ParseVerdict(verdict).Tag
		} else if verdict, ok := run.Verdict(i); ok {
			tag = ParseVerdict(verdict).Tag
		}
		counts[tag]++
		fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, tag, claim)
	}

	fmt.Fprintln(w)
	for _, tag := range []model.VerdictTag{
		model.TagVerified,
		model.TagPartiallySupported,
		model.TagInconclusive,
		model.TagContradicted,
		model.TagUnknown,
	} {
		if counts[tag] > 0 {
			fmt.Fprintf(w, "  %-20s %d\n", tag, counts[tag])
		}
	}
}

// SourceURLs collects the deduplicated source URLs cited across all
// parsed verdicts of a run, in first-seen order.
func SourceURLs(run *model.RunState) []string {
	var urls []string
	seen := make(map[string]bool)

	collect := func(verdicts map[int]string) {
		for i := 0; i < len(run.Claims); i++ {
			verdict, ok := verdicts[i]
			if !ok {
				continue
			}
			for _, url := range ParseVerdict(verdict).Sources {
				if !seen[url] {
					seen[url] = true
					urls = append(urls, url)
				}
			}
		}
	}

	collect(run.Verdicts)
	collect(run.EvidenceVerdicts)
	return urls
}
