// Package retrieval implements the core of the assistant: nearest-neighbor
// search per domain followed by in-process filtering, boosting and shaping of
// the candidate set handed to synthesis.
package retrieval

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/courtlab/assist/internal/domain"
	domdoc "github.com/courtlab/assist/internal/domain/document"
	"github.com/courtlab/assist/internal/metrics"
)

// searcher bundles the shared dependencies of all retrieval services.
type searcher struct {
	repo   Repository
	colls  CollectionReader
	embed  Embedder
	logger *zap.Logger
}

// knn embeds the query text and runs a KNN search against one collection.
// Store failures are wrapped with domain.ErrRetrievalFailed; they must reach
// the caller, an empty result here is indistinguishable from "nothing matched"
// and would let synthesis answer without grounding.
func (s *searcher) knn(
	ctx context.Context, collectionName, queryText string,
	predicates map[string]string, limit int,
) ([]domdoc.Candidate, error) {
	col, err := s.colls.Get(collectionName)
	if err != nil {
		return nil, fmt.Errorf("resolve collection: %w", err)
	}

	embResult, err := s.embed.Embed(ctx, queryText)
	if err != nil {
		metrics.RetrievalRequestsTotal.WithLabelValues(collectionName, "error").Inc()
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	candidates, err := s.repo.SearchKNN(ctx, col, embResult.Embedding, predicates, limit)
	if err != nil {
		metrics.RetrievalRequestsTotal.WithLabelValues(collectionName, "error").Inc()
		return nil, fmt.Errorf("search %s: %w: %w", collectionName, domain.ErrRetrievalFailed, err)
	}

	metrics.RetrievalRequestsTotal.WithLabelValues(collectionName, "success").Inc()
	metrics.RetrievalCandidates.WithLabelValues(collectionName).Observe(float64(len(candidates)))

	s.logger.Debug("knn search",
		zap.String("collection", collectionName),
		zap.Int("limit", limit),
		zap.Int("candidates", len(candidates)),
	)

	return candidates, nil
}
