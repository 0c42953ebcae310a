// Package collection holds the fixed corpus registry. Unlike a general vector
// store the assistant serves a closed set of collections, so their schemas are
// declared here instead of being managed at runtime.
package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/courtlab/assist/internal/db"
	"github.com/courtlab/assist/internal/domain"
	"github.com/courtlab/assist/internal/domain/catalog"
	"github.com/courtlab/assist/internal/domain/document"
)

// Collection names.
const (
	Shoes    = "shoes"
	Players  = "players"
	Drills   = "drills"
	Rules    = "rules"
	Glossary = "glossary"
)

// Collection describes one indexed corpus: its document type and the metadata
// fields that go into the index schema.
type Collection struct {
	Name          string
	DocType       document.Type
	TagFields     []string
	NumericFields []string
}

// IndexName returns the FT index name, e.g. assist:shoes:idx.
func (c Collection) IndexName() string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, c.Name)
}

// Prefix returns the key prefix for documents, e.g. assist:shoes:.
func (c Collection) Prefix() string {
	return fmt.Sprintf("%s%s:", domain.KeyPrefix, c.Name)
}

// DocKey returns the hash key of a document.
func (c Collection) DocKey(id string) string {
	return c.Prefix() + id
}

// ReturnFields lists the fields a search should fetch back: content, the
// score alias, and every metadata field of the schema.
func (c Collection) ReturnFields() []string {
	fields := make([]string, 0, len(c.TagFields)+len(c.NumericFields)+2)
	fields = append(fields, "__content", "__vector_score")
	fields = append(fields, c.TagFields...)
	fields = append(fields, c.NumericFields...)
	return fields
}

// HNSWConfig HNSW index parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// store is the consumer interface for index management (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Registry knows every corpus the assistant serves.
type Registry struct {
	byName    map[string]Collection
	ordered   []Collection
	vectorDim int
	hnsw      HNSWConfig
}

// NewRegistry builds the registry for the five fixed corpora.
func NewRegistry(vectorDim int, hnsw HNSWConfig) *Registry {
	if hnsw.M <= 0 {
		hnsw.M = 32
	}
	if hnsw.EFConstruct <= 0 {
		hnsw.EFConstruct = 400
	}

	all := []Collection{
		{
			Name:    Shoes,
			DocType: document.TypeShoe,
			TagFields: []string{
				document.MetaDocType, catalog.MetaShoeID, catalog.MetaBrand,
				catalog.MetaModelName, catalog.MetaSensoryTags, catalog.MetaTags,
			},
			NumericFields: []string{catalog.MetaPriceKRW},
		},
		{
			Name:    Players,
			DocType: document.TypePlayer,
			TagFields: []string{
				document.MetaDocType, catalog.MetaName, catalog.MetaPosition,
				catalog.MetaPlayStyle, catalog.MetaSignatureShoes,
			},
		},
		{
			Name:    Drills,
			DocType: document.TypeDrill,
			TagFields: []string{
				document.MetaDocType, catalog.MetaCategory, catalog.MetaDifficulty,
				catalog.MetaPhase, catalog.MetaEquipment,
			},
			NumericFields: []string{catalog.MetaDurationMin},
		},
		{
			Name:    Rules,
			DocType: document.TypeRule,
			TagFields: []string{
				document.MetaDocType, catalog.MetaRuleType, catalog.MetaArticle,
			},
			NumericFields: []string{catalog.MetaPageNumber},
		},
		{
			Name:      Glossary,
			DocType:   document.TypeGlossary,
			TagFields: []string{document.MetaDocType, catalog.MetaTerm, catalog.MetaCategory},
		},
	}

	byName := make(map[string]Collection, len(all))
	for _, c := range all {
		byName[c.Name] = c
	}

	return &Registry{byName: byName, ordered: all, vectorDim: vectorDim, hnsw: hnsw}
}

// Get returns a collection by name.
func (r *Registry) Get(name string) (Collection, error) {
	c, ok := r.byName[name]
	if !ok {
		return Collection{}, fmt.Errorf("collection %q: %w", name, domain.ErrCollectionNotFound)
	}
	return c, nil
}

// All returns collections in declaration order.
func (r *Registry) All() []Collection {
	return r.ordered
}

// EnsureIndexes creates any missing FT index. Existing indexes are left alone
// so the call is safe to repeat on every startup.
func (r *Registry) EnsureIndexes(ctx context.Context, s store) error {
	for _, c := range r.ordered {
		exists, err := s.IndexExists(ctx, c.IndexName())
		if err != nil {
			return fmt.Errorf("check index %s: %w", c.IndexName(), err)
		}
		if exists {
			continue
		}

		def, err := r.buildIndex(c)
		if err != nil {
			return err
		}
		if err := s.CreateIndex(ctx, def); err != nil {
			if errors.Is(err, db.ErrIndexExists) {
				continue
			}
			return fmt.Errorf("create index %s: %w", c.IndexName(), err)
		}
	}
	return nil
}

func (r *Registry) buildIndex(c Collection) (*db.IndexDefinition, error) {
	b := db.NewIndex(c.IndexName()).Prefix(c.Prefix())
	for _, f := range c.TagFields {
		b = b.Tag(f)
	}
	for _, f := range c.NumericFields {
		b = b.Numeric(f)
	}
	b = b.VectorHNSW("vector", r.vectorDim, r.hnsw.M, r.hnsw.EFConstruct)

	def, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build index %s: %w", c.IndexName(), err)
	}
	return def, nil
}
