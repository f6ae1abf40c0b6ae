// Package scholar holds the best-effort scholarly-search clients that
// feed abstracts into the evidence-augmented verdict. Their failures
// never abort a verdict: a broken client just contributes nothing.
package scholar

import (
	"context"

	"github.com/ppiankov/scicheck/internal/logger"
	"github.com/ppiankov/scicheck/internal/model"
)

// Placeholders substituted when an upstream record omits a field.
const (
	PlaceholderTitle    = "No title"
	PlaceholderAbstract = "No abstract available"
)

// Searcher is a single scholarly-search API. Search returns at most the
// configured row cap of normalized items; a non-2xx upstream status
// yields an empty list, not an error. Errors are reserved for transport
// failures and are absorbed by the aggregator.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string) ([]model.EvidenceItem, error)
}

// Aggregator queries its clients in order and concatenates the results.
type Aggregator struct {
	clients []Searcher
}

// NewAggregator creates an aggregator over the given clients.
func NewAggregator(clients ...Searcher) *Aggregator {
	return &Aggregator{clients: clients}
}

// Gather collects evidence from every client. It never fails: a client
// error is logged at warn level and that client contributes nothing.
func (a *Aggregator) Gather(ctx context.Context, query string) []model.EvidenceItem {
	var items []model.EvidenceItem
	for _, client := range a.clients {
		found, err := client.Search(ctx, query)
		if err != nil {
			logger.Log.WithError(err).Warnf("%s search failed, continuing without its results", client.Name())
			continue
		}
		items = append(items, found...)
	}
	return items
}
