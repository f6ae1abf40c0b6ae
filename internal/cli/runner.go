package cli

import (
	"context"
	"fmt"

	"github.com/ppiankov/scicheck/internal/article"
	"github.com/ppiankov/scicheck/internal/cache"
	"github.com/ppiankov/scicheck/internal/llm"
	"github.com/ppiankov/scicheck/internal/model"
	"github.com/ppiankov/scicheck/internal/pipeline"
	"github.com/ppiankov/scicheck/internal/scholar"
)

// urlRunner wires the fetch-extract-analyze path for one configuration.
// It satisfies worker.Runner so batch processing can reuse it.
type urlRunner struct {
	extractor *article.Extractor
	analyzer  *pipeline.Analyzer
}

// newURLRunner builds the pipeline components from the configuration.
func newURLRunner(cfg *model.Config) (*urlRunner, error) {
	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("create LLM client: %w", err)
	}

	var gatherer pipeline.EvidenceGatherer
	if cfg.Analysis.WithEvidence {
		gatherer = scholar.NewAggregator(
			scholar.NewCrossrefClient(cfg.Scholar, cfg.HTTP.Timeout),
			scholar.NewCOREClient(cfg.Scholar, cfg.HTTP.Timeout),
		)
	}

	analyzer := pipeline.NewAnalyzer(client, gatherer, pipeline.Options{
		Focus:         model.Focus(cfg.Analysis.Focus),
		WithEvidence:  cfg.Analysis.WithEvidence,
		WithQuestions: cfg.Analysis.WithQuestions,
		WithReports:   cfg.Analysis.WithReports,
	})

	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
	}

	return &urlRunner{
		extractor: article.NewExtractor(cfg.HTTP, cfg.Cache, c),
		analyzer:  analyzer,
	}, nil
}

// AnalyzeURL fetches one URL and runs the claim pipeline over its text.
func (r *urlRunner) AnalyzeURL(ctx context.Context, url string) (*model.RunState, error) {
	text, label := r.extractor.FetchExtract(ctx, url)
	if label == article.InvalidArticleLabel {
		return nil, fmt.Errorf("could not extract an article from %s", url)
	}
	return r.analyzer.Run(ctx, model.Source{Text: text, Origin: url})
}
