package linkcheck

import (
	"net/url"
	"strings"
)

// Tier classifies the authority of a cited source host.
type Tier int

const (
	TierUnknown   Tier = 0
	TierPrimary   Tier = 1 // journals, DOIs, government, academic
	TierSecondary Tier = 2 // encyclopedias, major publishers
	TierTertiary  Tier = 3 // everything else
)

func (t Tier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// primaryHosts are scholarly and official hosts cited verdicts commonly
// point at.
var primaryHosts = []string{
	"doi.org",
	"pubmed.ncbi.nlm.nih.gov",
	"ncbi.nlm.nih.gov",
	"nature.com",
	"science.org",
	"sciencedirect.com",
	"springer.com",
	"arxiv.org",
	"core.ac.uk",
	"who.int",
	"nasa.gov",
}

var secondaryHosts = []string{
	"wikipedia.org",
	"britannica.com",
	"scientificamerican.com",
	"newscientist.com",
}

// Classify assigns an authority tier to a cited URL by host heuristics.
func Classify(rawURL string) Tier {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return TierTertiary
	}

	host := parsed.Hostname()
	if host == "" {
		return TierTertiary
	}

	matches := func(candidates []string) bool {
		for _, candidate := range candidates {
			if host == candidate || strings.HasSuffix(host, "."+candidate) {
				return true
			}
		}
		return false
	}

	if matches(primaryHosts) {
		return TierPrimary
	}
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") || strings.HasSuffix(host, ".ac.uk") {
		return TierPrimary
	}
	if matches(secondaryHosts) {
		return TierSecondary
	}

	return TierTertiary
}
