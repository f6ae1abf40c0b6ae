package pipeline

import (
	"regexp"
	"strings"

	"github.com/ppiankov/scicheck/internal/model"
)

// urlPattern matches http(s) URLs inside verdict text.
var urlPattern = regexp.MustCompile(`https?://[^\s\)>\]]+`)

// verdictTags in match order; PARTIALLY SUPPORTED before VERIFIED would
// not matter, but CONTRADICTED must not shadow INCONCLUSIVE and so on,
// so each tag is matched as its full phrase.
var verdictTags = []model.VerdictTag{
	model.TagVerified,
	model.TagPartiallySupported,
	model.TagInconclusive,
	model.TagContradicted,
}

// ParseVerdict extracts the structured view from a free-text verdict.
// The model output is a formatting convention, not a contract, so
// parsing is tolerant: anything unrecognized degrades to TagUnknown or
// empty fields while the raw text is preserved.
func ParseVerdict(raw string) model.ParsedVerdict {
	parsed := model.ParsedVerdict{
		Tag: model.TagUnknown,
		Raw: raw,
	}

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case containsMarker(trimmed, "Verdict:"):
			upper := strings.ToUpper(trimmed)
			for _, tag := range verdictTags {
				if strings.Contains(upper, string(tag)) {
					parsed.Tag = tag
					break
				}
			}
		case containsMarker(trimmed, "Justification:"):
			parsed.Justification = afterMarker(trimmed, "Justification:")
		}
	}

	for _, url := range urlPattern.FindAllString(raw, -1) {
		url = strings.TrimRight(url, ".,;:!?")
		if !contains(parsed.Sources, url) {
			parsed.Sources = append(parsed.Sources, url)
		}
	}

	return parsed
}

// containsMarker matches the marker with or without bold markup.
func containsMarker(line, marker string) bool {
	return strings.Contains(line, "**"+marker+"**") || strings.HasPrefix(line, marker)
}

// afterMarker returns the text following the marker, markup stripped.
func afterMarker(line, marker string) string {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return ""
	}
	rest := line[idx+len(marker):]
	rest = strings.TrimPrefix(rest, "**")
	return strings.TrimSpace(rest)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
