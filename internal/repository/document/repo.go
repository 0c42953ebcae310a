package document

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/courtlab/assist/internal/db"
	"github.com/courtlab/assist/internal/domain"
	domdoc "github.com/courtlab/assist/internal/domain/document"
	"github.com/courtlab/assist/internal/repository/collection"
)

// store is the consumer interface for documents (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	SearchCount(ctx context.Context, index string) (int, error)
}

// Repo writes and reads corpus documents as flat hashes. Each hash carries
// the vector blob, the document text under __content and the metadata fields.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// AddBatch stores documents with their embeddings. All four slices must have
// the same length, otherwise nothing is written.
func (r *Repo) AddBatch(
	ctx context.Context, col collection.Collection,
	ids, contents []string, vectors [][]float32, metadatas []map[string]string,
) error {
	n := len(ids)
	if len(contents) != n || len(vectors) != n || len(metadatas) != n {
		return fmt.Errorf(
			"ids=%d contents=%d vectors=%d metadatas=%d: %w",
			n, len(contents), len(vectors), len(metadatas), domain.ErrBatchSizeMismatch,
		)
	}
	if n == 0 {
		return nil
	}

	items := make([]db.HashSetItem, 0, n)
	for i := range ids {
		fields := make(map[string]string, len(metadatas[i])+2)
		for k, v := range metadatas[i] {
			fields[k] = v
		}
		fields["__content"] = contents[i]
		fields["vector"] = vectorToBytes(vectors[i])

		items = append(items, db.HashSetItem{Key: col.DocKey(ids[i]), Fields: fields})
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset batch %s: %w", col.Name, err)
	}
	return nil
}

// Get returns a single document by ID.
func (r *Repo) Get(ctx context.Context, col collection.Collection, id string) (domdoc.Candidate, error) {
	fields, err := r.store.HGetAll(ctx, col.DocKey(id))
	if err != nil {
		return domdoc.Candidate{}, fmt.Errorf("hgetall %s: %w", col.DocKey(id), err)
	}
	if len(fields) == 0 {
		return domdoc.Candidate{}, fmt.Errorf("document %s/%s: %w", col.Name, id, domain.ErrNotFound)
	}

	content := fields["__content"]
	delete(fields, "__content")
	delete(fields, "vector")

	return domdoc.New(id, content, fields), nil
}

// Count returns the number of documents in a collection.
func (r *Repo) Count(ctx context.Context, col collection.Collection) (int, error) {
	n, err := r.store.SearchCount(ctx, col.IndexName())
	if err != nil {
		return 0, fmt.Errorf("search count %s: %w", col.Name, err)
	}
	return n, nil
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
