package cover

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/tunefetch/internal/logging"
	"github.com/handiism/tunefetch/internal/model"
)

// MaxCandidates is the upper bound on merged candidates.
const MaxCandidates = 5

// Resolver merges cover candidates from several sources.
type Resolver struct {
	sources []Source
	limit   int
	logger  *slog.Logger
}

// NewResolver creates a Resolver over sources, in merge order.
//
// limit is clamped to 1..MaxCandidates. Nil sources are ignored, so
// disabled sources can be passed as nil.
func NewResolver(limit int, logger *slog.Logger, sources ...Source) *Resolver {
	if limit <= 0 || limit > MaxCandidates {
		limit = MaxCandidates
	}
	var enabled []Source
	for _, s := range sources {
		if s != nil {
			enabled = append(enabled, s)
		}
	}
	return &Resolver{
		sources: enabled,
		limit:   limit,
		logger:  logging.OrDiscard(logger),
	}
}

// Resolve queries every source and returns the merged candidates.
//
// Sources run concurrently but Resolve blocks until all have finished.
// Each source writes into its own slot, so the merge order depends only
// on the source order. Resolve never fails: a failing source is logged
// and contributes nothing, and an empty result is a valid answer.
func (r *Resolver) Resolve(ctx context.Context, q model.SearchQuery) []model.ImageCandidate {
	results := make([][]string, len(r.sources))

	var g errgroup.Group
	for i, src := range r.sources {
		g.Go(func() error {
			urls, err := src.Search(ctx, q)
			if err != nil {
				r.logger.Warn("cover source unavailable", "source", src.Name(), "err", err)
				return nil
			}
			r.logger.Debug("cover source answered", "source", src.Name(), "count", len(urls))
			results[i] = urls
			return nil
		})
	}
	_ = g.Wait()

	return Merge(r.limit, results...)
}
