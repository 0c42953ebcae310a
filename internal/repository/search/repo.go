package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/courtlab/assist/internal/db"
	domdoc "github.com/courtlab/assist/internal/domain/document"
	"github.com/courtlab/assist/internal/repository/collection"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo runs KNN searches and maps hash entries back into candidates.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// SearchKNN returns up to topK candidates ranked by vector similarity.
// Predicates are pushed down to the store as tag equality pre-filters, so
// filtered-out documents never occupy a result slot.
func (r *Repo) SearchKNN(
	ctx context.Context, col collection.Collection,
	vector []float32, predicates map[string]string, topK int,
) ([]domdoc.Candidate, error) {
	q := &db.KNNQuery{
		IndexName:    col.IndexName(),
		Vector:       vector,
		K:            topK,
		Predicates:   predicates,
		ReturnFields: col.ReturnFields(),
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", col.Name, err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	prefix := col.Prefix()
	candidates := make([]domdoc.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		candidates = append(candidates, entryToCandidate(entry, prefix))
	}
	return candidates, nil
}

func entryToCandidate(entry db.SearchEntry, prefix string) domdoc.Candidate {
	id := strings.TrimPrefix(entry.Key, prefix)

	content := entry.Fields["__content"]
	metadata := make(map[string]string, len(entry.Fields))
	for k, v := range entry.Fields {
		if k == "__content" || k == "vector" {
			continue
		}
		metadata[k] = v
	}

	return domdoc.New(id, content, metadata)
}
