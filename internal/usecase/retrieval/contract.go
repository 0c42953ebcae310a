package retrieval

import (
	"context"

	"github.com/courtlab/assist/internal/domain"
	domdoc "github.com/courtlab/assist/internal/domain/document"
	"github.com/courtlab/assist/internal/repository/collection"
)

// Repository defines the storage contract for retrieval operations.
type Repository interface {
	SearchKNN(
		ctx context.Context, col collection.Collection,
		vector []float32, predicates map[string]string, topK int,
	) ([]domdoc.Candidate, error)
}

// CollectionReader resolves collection schemas by name.
type CollectionReader interface {
	Get(name string) (collection.Collection, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
