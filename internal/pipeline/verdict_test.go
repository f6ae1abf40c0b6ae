package pipeline

import (
	"reflect"
	"testing"

	"github.com/ppiankov/scicheck/internal/model"
)

func TestParseVerdict_FullBlock(t *testing.T) {
	raw := `**Verdict:** PARTIALLY SUPPORTED
**Justification:** The claim holds under standard pressure only.
**Sources:**
- https://example.com/paper1
- https://example.com/paper2`

	parsed := ParseVerdict(raw)

	if parsed.Tag != model.TagPartiallySupported {
		t.Errorf("Expected PARTIALLY SUPPORTED, got %s", parsed.Tag)
	}
	if parsed.Justification != "The claim holds under standard pressure only." {
		t.Errorf("Unexpected justification: %q", parsed.Justification)
	}
	want := []string{"https://example.com/paper1", "https://example.com/paper2"}
	if !reflect.DeepEqual(parsed.Sources, want) {
		t.Errorf("Expected sources %v, got %v", want, parsed.Sources)
	}
	if parsed.Raw != raw {
		t.Error("Raw text not preserved")
	}
}

func TestParseVerdict_Tags(t *testing.T) {
	tests := []struct {
		raw  string
		want model.VerdictTag
	}{
		{"**Verdict:** VERIFIED", model.TagVerified},
		{"Verdict: CONTRADICTED", model.TagContradicted},
		{"**Verdict:** INCONCLUSIVE\nMore text.", model.TagInconclusive},
		{"The model rambled without a verdict block.", model.TagUnknown},
		{"", model.TagUnknown},
	}

	for _, tt := range tests {
		if got := ParseVerdict(tt.raw).Tag; got != tt.want {
			t.Errorf("ParseVerdict(%q).Tag = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestParseVerdict_DeduplicatesAndTrimsURLs(t *testing.T) {
	raw := "See https://example.com/a. Also https://example.com/a and https://example.com/b,"

	parsed := ParseVerdict(raw)

	want := []string{"https://example.com/a", "https://example.com/b"}
	if !reflect.DeepEqual(parsed.Sources, want) {
		t.Errorf("Expected %v, got %v", want, parsed.Sources)
	}
}

func TestSourceURLs_CollectsAcrossVerdicts(t *testing.T) {
	run := model.NewRunState(model.Source{Text: "article"})
	run.Claims = []string{"1. A.", "2. B."}
	run.SetVerdict(0, "**Verdict:** VERIFIED\n**Sources:**\n- https://example.com/x")
	run.SetVerdict(1, "**Verdict:** VERIFIED\n**Sources:**\n- https://example.com/y")
	run.SetEvidenceVerdict(0, "**Verdict:** VERIFIED\n**Sources:**\n- https://example.com/x\n- https://example.com/z")

	got := SourceURLs(run)
	want := []string{"https://example.com/x", "https://example.com/y", "https://example.com/z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
