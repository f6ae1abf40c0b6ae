package extract

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ppiankov/scicheck/internal/model"
	"github.com/ppiankov/scicheck/internal/prompt"
)

func TestParseClaims(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "numbered list with preamble",
			raw:  "1. Water boils at 100C.\nSome preamble\n2. The Earth is round.",
			want: []string{"1. Water boils at 100C.", "2. The Earth is round."},
		},
		{
			name: "no numbered lines",
			raw:  "The text contains no explicit claims.\nSorry.",
			want: []string{prompt.Sentinel},
		},
		{
			name: "empty response",
			raw:  "",
			want: []string{prompt.Sentinel},
		},
		{
			name: "trims whitespace on kept lines",
			raw:  "1. Claim one.   \n2. Claim two.\t",
			want: []string{"1. Claim one.", "2. Claim two."},
		},
		{
			name: "leading whitespace disqualifies the line",
			raw:  "  1. Indented line.\n2. Kept line.",
			want: []string{"2. Kept line."},
		},
		{
			name: "stray numbered line passes the filter",
			raw:  "3 reasons this article is great\n1. An actual claim.",
			want: []string{"3 reasons this article is great", "1. An actual claim."},
		},
		{
			name: "blank lines are skipped",
			raw:  "\n\n1. Only claim.\n\n",
			want: []string{"1. Only claim."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseClaims(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseClaims(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsSentinel(t *testing.T) {
	if !IsSentinel([]string{prompt.Sentinel}) {
		t.Error("Expected sentinel list to be recognized")
	}
	if IsSentinel([]string{"1. A claim."}) {
		t.Error("Expected claim list not to be sentinel")
	}
	if IsSentinel([]string{prompt.Sentinel, "1. A claim."}) {
		t.Error("Sentinel mixed with claims is not the terminal state")
	}
}

type fakeCompleter struct {
	response    string
	err         error
	gotPrompt   string
	gotTemp     float32
	invocations int
}

func (f *fakeCompleter) CompleteAt(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.invocations++
	f.gotPrompt = prompt
	f.gotTemp = temperature
	return f.response, f.err
}

func TestClaims_UsesTemperatureZero(t *testing.T) {
	fake := &fakeCompleter{response: "1. Water boils at 100C."}

	claims, err := Claims(context.Background(), fake, "Water boils at 100C.", model.FocusGeneral)
	if err != nil {
		t.Fatalf("Claims failed: %v", err)
	}
	if fake.gotTemp != 0 {
		t.Errorf("Expected extraction at temperature 0, got %v", fake.gotTemp)
	}
	if len(claims) != 1 || claims[0] != "1. Water boils at 100C." {
		t.Errorf("Unexpected claims: %v", claims)
	}
}

func TestClaims_UnknownFocusIsFatal(t *testing.T) {
	fake := &fakeCompleter{response: "1. Claim."}

	_, err := Claims(context.Background(), fake, "text", model.Focus("bogus"))
	if err == nil {
		t.Fatal("Expected error for unknown focus, got nil")
	}
	if !errors.Is(err, prompt.ErrUnknownFocus) {
		t.Errorf("Expected ErrUnknownFocus, got %v", err)
	}
	if fake.invocations != 0 {
		t.Errorf("Expected no completion call on bad focus, got %d", fake.invocations)
	}
}

func TestClaims_CompletionErrorPropagates(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("boom")}

	_, err := Claims(context.Background(), fake, "text", model.FocusGeneral)
	if err == nil {
		t.Fatal("Expected completion error to propagate, got nil")
	}
}
