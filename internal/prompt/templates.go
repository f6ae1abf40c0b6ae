// Package prompt is the fixed template store for the claim pipeline.
// Pure string substitution; the only failure mode is an unrecognized
// focus, which signals a configuration error.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/scicheck/internal/model"
)

// Sentinel is the exact string the extraction prompt demands when no
// explicit claims qualify. Downstream stages treat it as terminal.
const Sentinel = "No explicit claims found."

// ErrUnknownFocus signals a focus outside the closed set. The CLI only
// offers known focuses, so reaching this is a configuration error.
var ErrUnknownFocus = errors.New("unknown analysis focus")

const extractionTemplate = `You will be given a text. Extract a **numbered list** of explicit, %s.

**Strict rules:**
- ONLY include claims that appear EXACTLY and VERBATIM in the text.
- Each claim must be explicitly stated.
- If no relevant testable claims exist, output exactly: "` + Sentinel + `"
- DO NOT infer, paraphrase, generalize, or use external knowledge.
- Output ONLY the claims formatted as a numbered list, or "` + Sentinel + `"

TEXT:
%s

OUTPUT:
`

const verificationTemplate = `Assess the %s of the following claim. Provide:

1. A verdict: VERIFIED, PARTIALLY SUPPORTED, INCONCLUSIVE, or CONTRADICTED.
2. A concise justification (max 1000 characters).
3. Relevant source links, formatted as full URLs.

Claim: "%s"

Output format:
**Verdict:** <VERDICT>
**Justification:** <Short explanation>
**Sources:**
- <URL>
- <URL>
`

// extractionSubjects parameterizes the extraction template per focus.
var extractionSubjects = map[model.Focus]string{
	model.FocusGeneral:    "scientifically testable claims",
	model.FocusScientific: "scientifically testable claims related to science",
	model.FocusTechnology: "testable claims related to technology or innovation",
}

// verificationSubjects parameterizes the verification template per focus.
var verificationSubjects = map[model.Focus]string{
	model.FocusGeneral:    "accuracy",
	model.FocusScientific: "scientific accuracy",
	model.FocusTechnology: "technical accuracy",
}

// Extraction renders the claim extraction prompt for the given focus.
func Extraction(focus model.Focus, text string) (string, error) {
	subject, ok := extractionSubjects[focus]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFocus, focus)
	}
	return fmt.Sprintf(extractionTemplate, subject, text), nil
}

// Verification renders the model-only verdict prompt for the given focus.
func Verification(focus model.Focus, claim string) (string, error) {
	subject, ok := verificationSubjects[focus]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFocus, focus)
	}
	return fmt.Sprintf(verificationTemplate, subject, claim), nil
}

// Reassessment renders the evidence-augmented verdict prompt. Abstracts
// are folded in joined by blank lines; an empty list is not special-cased,
// the model is still asked for a verdict.
func Reassessment(article, claim string, abstracts []string) string {
	return fmt.Sprintf(`Given the following article and claim:

Article: %s
Claim: %s

And based on these supplemental research abstracts:
%s

Reassess the claim, weighing the provided abstracts against the article.
Respond in this format:
**Verdict:** <VERDICT>
**Justification:** <Short explanation>
**Sources:**
- <URL>
- <URL>
`, article, claim, strings.Join(abstracts, "\n\n"))
}

// Questions renders the follow-up research question prompt.
func Questions(claim string) string {
	return fmt.Sprintf(`Given the following claim, propose up to 3 short research questions
that would help verify or refute it.

Claim: "%s"

Output ONLY the questions, one per line. No numbering, no commentary.
`, claim)
}

// Report renders the per-question research report prompt.
func Report(claim, question, article string) string {
	return fmt.Sprintf(`Write a short research report (300-500 words) addressing the question
below, in the context of the claim and the article it was extracted from.

Claim: "%s"
Question: "%s"

Article:
%s

End the report with a list of up to 3 relevant source links, formatted as
full URLs, one per line prefixed with "- ".
`, claim, question, article)
}
