// Package extract turns a model response into the ordered claim list.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/scicheck/internal/model"
	"github.com/ppiankov/scicheck/internal/prompt"
)

// Completer is the completion seam the stage needs from the LLM client.
type Completer interface {
	CompleteAt(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Claims renders the extraction prompt for the focus, completes it at
// temperature 0 and parses the numbered list out of the response.
func Claims(ctx context.Context, llm Completer, text string, focus model.Focus) ([]string, error) {
	p, err := prompt.Extraction(focus, text)
	if err != nil {
		return nil, fmt.Errorf("render extraction prompt: %w", err)
	}

	raw, err := llm.CompleteAt(ctx, p, 0)
	if err != nil {
		return nil, fmt.Errorf("extraction completion: %w", err)
	}

	return ParseClaims(raw), nil
}

// ParseClaims keeps the trimmed form of every non-blank line whose raw
// first byte is a decimal digit, in response order. The filter assumes
// the model emits a numbered list and strips nothing else, so a stray
// numbered line passes through. When nothing matches, the result is
// exactly the sentinel in a single-element list.
func ParseClaims(raw string) []string {
	var claims []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if line[0] >= '0' && line[0] <= '9' {
			claims = append(claims, trimmed)
		}
	}
	if len(claims) == 0 {
		return []string{prompt.Sentinel}
	}
	return claims
}

// IsSentinel reports whether the claim list is the no-claims terminal
// state, for which no verdicts, evidence or questions are computed.
func IsSentinel(claims []string) bool {
	return len(claims) == 1 && claims[0] == prompt.Sentinel
}
