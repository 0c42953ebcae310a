package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/courtlab/assist/internal/db"
	"github.com/courtlab/assist/internal/domain"
)

type fakeIndexStore struct {
	existing map[string]bool
	created  []string
	failOn   string
}

func (f *fakeIndexStore) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	if f.failOn == def.Name {
		return errors.New("boom")
	}
	f.created = append(f.created, def.Name)
	return nil
}

func (f *fakeIndexStore) IndexExists(_ context.Context, name string) (bool, error) {
	return f.existing[name], nil
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry(4, HNSWConfig{})

	c, err := r.Get(Shoes)
	if err != nil {
		t.Fatalf("Get(shoes): %v", err)
	}
	if c.IndexName() != "assist:shoes:idx" {
		t.Errorf("IndexName = %q", c.IndexName())
	}
	if c.Prefix() != "assist:shoes:" {
		t.Errorf("Prefix = %q", c.Prefix())
	}
	if c.DocKey("abc") != "assist:shoes:abc" {
		t.Errorf("DocKey = %q", c.DocKey("abc"))
	}

	if _, err := r.Get("unknown"); !errors.Is(err, domain.ErrCollectionNotFound) {
		t.Errorf("err = %v, want ErrCollectionNotFound", err)
	}
}

func TestRegistry_ReturnFieldsIncludeContentAndScore(t *testing.T) {
	r := NewRegistry(4, HNSWConfig{})
	c, _ := r.Get(Rules)

	fields := c.ReturnFields()
	want := map[string]bool{"__content": false, "__vector_score": false, "rule_type": false}
	for _, f := range fields {
		if _, ok := want[f]; ok {
			want[f] = true
		}
	}
	for f, seen := range want {
		if !seen {
			t.Errorf("ReturnFields missing %q: %v", f, fields)
		}
	}
}

func TestRegistry_EnsureIndexes_CreatesMissing(t *testing.T) {
	r := NewRegistry(4, HNSWConfig{})
	s := &fakeIndexStore{existing: map[string]bool{"assist:shoes:idx": true}}

	if err := r.EnsureIndexes(context.Background(), s); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	if len(s.created) != len(r.All())-1 {
		t.Fatalf("created %d indexes, want %d", len(s.created), len(r.All())-1)
	}
	for _, name := range s.created {
		if name == "assist:shoes:idx" {
			t.Error("recreated an existing index")
		}
	}
}

func TestRegistry_EnsureIndexes_PropagatesFailure(t *testing.T) {
	r := NewRegistry(4, HNSWConfig{})
	s := &fakeIndexStore{failOn: "assist:players:idx"}

	if err := r.EnsureIndexes(context.Background(), s); err == nil {
		t.Fatal("expected error")
	}
}
