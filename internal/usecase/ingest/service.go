// Package ingest loads catalog files, embeds their documents and writes them
// into the vector store, collection by collection.
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courtlab/assist/internal/domain"
	"github.com/courtlab/assist/internal/repository/collection"
)

// DocumentWriter persists embedded documents.
type DocumentWriter interface {
	AddBatch(ctx context.Context, col collection.Collection,
		ids, contents []string, vectors [][]float32, metadatas []map[string]string) error
}

// CollectionReader resolves collection schemas by name.
type CollectionReader interface {
	Get(name string) (collection.Collection, error)
}

// Embedder vectorizes document batches.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}

// record is one catalog entry prepared for indexing.
type record struct {
	id       string
	content  string
	metadata map[string]string
}

// Report summarizes one ingestion run.
type Report struct {
	Documents   map[string]int
	TotalTokens int
}

// Service embeds and indexes catalog records in bounded batches.
type Service struct {
	docs      DocumentWriter
	colls     CollectionReader
	embed     Embedder
	batchSize int
	logger    *zap.Logger
}

// New creates the ingestion service. batchSize bounds how many documents go
// into a single embedding call and store write.
func New(docs DocumentWriter, colls CollectionReader, embed Embedder, batchSize int, logger *zap.Logger) *Service {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Service{docs: docs, colls: colls, embed: embed, batchSize: batchSize, logger: logger}
}

// Run loads every catalog file named in sources and indexes its records.
// Datasets with an empty path are skipped so partial corpora stay usable.
func (s *Service) Run(ctx context.Context, sources Sources) (Report, error) {
	report := Report{Documents: make(map[string]int)}

	datasets := []struct {
		collection string
		path       string
		load       func(path string) ([]record, error)
	}{
		{collection.Shoes, sources.ShoesPath, loadShoes},
		{collection.Players, sources.PlayersPath, loadPlayers},
		{collection.Drills, sources.DrillsPath, loadDrills},
		{collection.Rules, sources.RulesPath, loadRules},
		{collection.Glossary, sources.GlossaryPath, loadGlossary},
	}

	for _, ds := range datasets {
		if ds.path == "" {
			s.logger.Info("skipping dataset without source path", zap.String("collection", ds.collection))
			continue
		}
		records, err := ds.load(ds.path)
		if err != nil {
			return report, fmt.Errorf("load %s: %w", ds.collection, err)
		}
		tokens, err := s.ingestCollection(ctx, ds.collection, records)
		if err != nil {
			return report, err
		}
		report.Documents[ds.collection] = len(records)
		report.TotalTokens += tokens

		s.logger.Info("dataset indexed",
			zap.String("collection", ds.collection),
			zap.Int("documents", len(records)),
			zap.Int("tokens", tokens),
		)
	}

	return report, nil
}

// ingestCollection embeds and writes records in batchSize chunks. A failing
// chunk aborts the collection; earlier chunks stay written, rerunning the
// ingest overwrites them in place.
func (s *Service) ingestCollection(ctx context.Context, name string, records []record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	col, err := s.colls.Get(name)
	if err != nil {
		return 0, fmt.Errorf("resolve collection %s: %w", name, err)
	}

	tokens := 0
	for start := 0; start < len(records); start += s.batchSize {
		end := start + s.batchSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]

		ids := make([]string, len(chunk))
		contents := make([]string, len(chunk))
		metadatas := make([]map[string]string, len(chunk))
		for i, r := range chunk {
			ids[i] = r.id
			if ids[i] == "" {
				ids[i] = uuid.NewString()
			}
			contents[i] = r.content
			metadatas[i] = r.metadata
		}

		res, err := s.embed.BatchEmbed(ctx, contents)
		if err != nil {
			return tokens, fmt.Errorf("embed %s batch [%d:%d]: %w", name, start, end, err)
		}
		tokens += res.TotalTokens

		if err := s.docs.AddBatch(ctx, col, ids, contents, res.Embeddings, metadatas); err != nil {
			return tokens, fmt.Errorf("write %s batch [%d:%d]: %w", name, start, end, err)
		}
	}

	return tokens, nil
}
