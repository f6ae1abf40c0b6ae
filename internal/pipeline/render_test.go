package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/scicheck/internal/model"
	"github.com/ppiankov/scicheck/internal/prompt"
)

func sampleRun() *model.RunState {
	run := model.NewRunState(model.Source{Text: "article text", Origin: "https://example.com/article"})
	run.Claims = []string{"1. Water boils at 100C.", "2. The Earth is round."}
	run.SetVerdict(0, "**Verdict:** VERIFIED\n**Justification:** Established.")
	run.SetVerdict(1, "**Verdict:** INCONCLUSIVE\n**Justification:** Depends on framing.")
	run.SetEvidence(0, []model.EvidenceItem{{Title: "Paper", Abstract: "Abstract", URL: "https://example.com/p"}})
	run.SetEvidenceVerdict(0, "**Verdict:** VERIFIED\n**Justification:** Abstracts agree.")
	run.SetQuestions(0, []string{"At what pressure?"})
	run.SetReport(0, 0, "A short report.")
	return run
}

func TestRenderJSON_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	renderer := NewRenderer(true)

	if err := renderer.RenderJSON(sampleRun(), path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Read output: %v", err)
	}

	var decoded model.RunState
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(decoded.Claims) != 2 {
		t.Errorf("Expected 2 claims in output, got %d", len(decoded.Claims))
	}
	if decoded.Reports[0][0] != "A short report." {
		t.Errorf("Report missing from JSON output: %+v", decoded.Reports)
	}
}

func TestRenderMarkdown_Sections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.md")
	renderer := NewRenderer(true)

	if err := renderer.RenderMarkdown(sampleRun(), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Read output: %v", err)
	}
	md := string(data)

	for _, want := range []string{
		"## Claim 1: 1. Water boils at 100C.",
		"### Model Verdict",
		"### Evidence-Augmented Verdict",
		"[Paper](https://example.com/p)",
		"### Research Questions",
		"A short report.",
		"Generated by SciCheck",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}
}

func TestRenderMarkdown_NoFooter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.md")
	renderer := NewRenderer(false)

	if err := renderer.RenderMarkdown(sampleRun(), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "Generated by SciCheck") {
		t.Error("Footer present despite being disabled")
	}
}

func TestRenderSummary_SentinelAndCounts(t *testing.T) {
	renderer := NewRenderer(true)

	var sb strings.Builder
	renderer.RenderSummary(sampleRun(), &sb)
	out := sb.String()
	if !strings.Contains(out, "Claims: 2") {
		t.Errorf("Summary missing claim count:\n%s", out)
	}
	if !strings.Contains(out, "VERIFIED") || !strings.Contains(out, "INCONCLUSIVE") {
		t.Errorf("Summary missing verdict tags:\n%s", out)
	}

	sentinel := model.NewRunState(model.Source{Origin: model.OriginUserInput})
	sentinel.Claims = []string{prompt.Sentinel}
	sb.Reset()
	renderer.RenderSummary(sentinel, &sb)
	if !strings.Contains(sb.String(), prompt.Sentinel) {
		t.Errorf("Sentinel summary missing sentinel line:\n%s", sb.String())
	}
}
