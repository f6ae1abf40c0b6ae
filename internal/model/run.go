package model

// Focus selects which extraction/verification template pair is active.
// The set is closed; an unrecognized focus is a configuration error.
type Focus string

const (
	FocusGeneral    Focus = "general"
	FocusScientific Focus = "scientific"
	FocusTechnology Focus = "technology"
)

// AllFocuses lists the supported analysis focuses in display order.
var AllFocuses = []Focus{FocusGeneral, FocusScientific, FocusTechnology}

// Description returns a short human-readable label for the focus.
func (f Focus) Description() string {
	switch f {
	case FocusGeneral:
		return "General analysis of testable claims"
	case FocusScientific:
		return "Specific focus on scientific claims"
	case FocusTechnology:
		return "Technology or innovation claims"
	default:
		return "Unknown"
	}
}

// OriginUserInput is the origin tag for pasted or file-sourced text.
const OriginUserInput = "User input"

// Source is the text under analysis plus where it came from.
// Read-only after creation.
type Source struct {
	Text   string `json:"text"`
	Origin string `json:"origin"` // URL on fetch, OriginUserInput otherwise
}

// EvidenceItem is a normalized scholarly-search result.
// Title and Abstract carry placeholder strings when the upstream record
// omits them; URL may be empty.
type EvidenceItem struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	URL      string `json:"url,omitempty"`
}

// VerdictTag is the classification the model is asked to embed in its
// verdict block.
type VerdictTag string

const (
	TagVerified           VerdictTag = "VERIFIED"
	TagPartiallySupported VerdictTag = "PARTIALLY SUPPORTED"
	TagInconclusive       VerdictTag = "INCONCLUSIVE"
	TagContradicted       VerdictTag = "CONTRADICTED"
	TagUnknown            VerdictTag = "UNKNOWN"
)

// ParsedVerdict is the structured view over a free-text verdict.
// The raw text remains authoritative; parsing is tolerant and never fails.
type ParsedVerdict struct {
	Tag           VerdictTag `json:"tag"`
	Justification string     `json:"justification,omitempty"`
	Sources       []string   `json:"sources,omitempty"`
	Raw           string     `json:"raw"`
}

// RunState holds everything derived from one triggered analysis pass:
// the source, the ordered claim list, and the memoized per-claim results.
// Every keyed result is write-once: the first store wins, later stores are
// no-ops. A new analysis pass gets a fresh RunState; nothing is merged.
type RunState struct {
	Source Source   `json:"source"`
	Claims []string `json:"claims"`

	Verdicts         map[int]string         `json:"verdicts,omitempty"`
	EvidenceVerdicts map[int]string         `json:"evidence_verdicts,omitempty"`
	Evidence         map[int][]EvidenceItem `json:"evidence,omitempty"`
	Questions        map[int][]string       `json:"questions,omitempty"`
	Reports          map[int]map[int]string `json:"reports,omitempty"` // claim index -> question index -> report
}

// NewRunState creates an empty RunState for the given source.
func NewRunState(src Source) *RunState {
	return &RunState{
		Source:           src,
		Verdicts:         make(map[int]string),
		EvidenceVerdicts: make(map[int]string),
		Evidence:         make(map[int][]EvidenceItem),
		Questions:        make(map[int][]string),
		Reports:          make(map[int]map[int]string),
	}
}

// SetVerdict stores the model-only verdict for a claim index.
// Returns false if a verdict was already stored for that index.
func (r *RunState) SetVerdict(i int, verdict string) bool {
	if _, ok := r.Verdicts[i]; ok {
		return false
	}
	r.Verdicts[i] = verdict
	return true
}

// Verdict returns the memoized model-only verdict for a claim index.
func (r *RunState) Verdict(i int) (string, bool) {
	v, ok := r.Verdicts[i]
	return v, ok
}

// SetEvidenceVerdict stores the evidence-augmented verdict for a claim index.
func (r *RunState) SetEvidenceVerdict(i int, verdict string) bool {
	if _, ok := r.EvidenceVerdicts[i]; ok {
		return false
	}
	r.EvidenceVerdicts[i] = verdict
	return true
}

// EvidenceVerdict returns the memoized evidence-augmented verdict.
func (r *RunState) EvidenceVerdict(i int) (string, bool) {
	v, ok := r.EvidenceVerdicts[i]
	return v, ok
}

// SetEvidence stores the gathered evidence list for a claim index.
func (r *RunState) SetEvidence(i int, items []EvidenceItem) bool {
	if _, ok := r.Evidence[i]; ok {
		return false
	}
	r.Evidence[i] = items
	return true
}

// EvidenceFor returns the memoized evidence list for a claim index.
func (r *RunState) EvidenceFor(i int) ([]EvidenceItem, bool) {
	items, ok := r.Evidence[i]
	return items, ok
}

// SetQuestions stores the research question list for a claim index.
func (r *RunState) SetQuestions(i int, questions []string) bool {
	if _, ok := r.Questions[i]; ok {
		return false
	}
	r.Questions[i] = questions
	return true
}

// QuestionsFor returns the memoized question list for a claim index.
func (r *RunState) QuestionsFor(i int) ([]string, bool) {
	qs, ok := r.Questions[i]
	return qs, ok
}

// SetReport stores the research report for a (claim, question) pair.
func (r *RunState) SetReport(claim, question int, report string) bool {
	if _, ok := r.Reports[claim][question]; ok {
		return false
	}
	if r.Reports[claim] == nil {
		r.Reports[claim] = make(map[int]string)
	}
	r.Reports[claim][question] = report
	return true
}

// Report returns the memoized report for a (claim, question) pair.
func (r *RunState) Report(claim, question int) (string, bool) {
	rep, ok := r.Reports[claim][question]
	return rep, ok
}
