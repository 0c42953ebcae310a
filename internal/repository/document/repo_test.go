package document

import (
	"context"
	"errors"
	"testing"

	"github.com/courtlab/assist/internal/db"
	"github.com/courtlab/assist/internal/domain"
	"github.com/courtlab/assist/internal/repository/collection"
)

type fakeStore struct {
	items  []db.HashSetItem
	hashes map[string]map[string]string
	count  int
	err    error
}

func (f *fakeStore) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	if f.err != nil {
		return f.err
	}
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]string, len(f.hashes[key]))
	for k, v := range f.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) SearchCount(_ context.Context, _ string) (int, error) {
	return f.count, f.err
}

func shoesCol(t *testing.T) collection.Collection {
	t.Helper()
	col, err := collection.NewRegistry(2, collection.HNSWConfig{}).Get(collection.Shoes)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return col
}

func TestAddBatch_WritesHashFields(t *testing.T) {
	s := &fakeStore{}
	repo := New(s)

	err := repo.AddBatch(context.Background(), shoesCol(t),
		[]string{"s1"},
		[]string{"Brand: Nike"},
		[][]float32{{1, 0}},
		[]map[string]string{{"brand": "Nike", "doc_type": "shoe"}},
	)
	if err != nil {
		t.Fatalf("AddBatch: %v", err)
	}

	if len(s.items) != 1 {
		t.Fatalf("items = %d, want 1", len(s.items))
	}
	item := s.items[0]
	if item.Key != "assist:shoes:s1" {
		t.Errorf("key = %q", item.Key)
	}
	if item.Fields["__content"] != "Brand: Nike" {
		t.Errorf("__content = %q", item.Fields["__content"])
	}
	if item.Fields["brand"] != "Nike" {
		t.Errorf("brand = %q", item.Fields["brand"])
	}
	if len(item.Fields["vector"]) != 8 {
		t.Errorf("vector blob len = %d, want 8", len(item.Fields["vector"]))
	}
}

func TestAddBatch_LengthMismatch(t *testing.T) {
	s := &fakeStore{}
	repo := New(s)

	err := repo.AddBatch(context.Background(), shoesCol(t),
		[]string{"s1", "s2"},
		[]string{"only one"},
		[][]float32{{1, 0}, {0, 1}},
		[]map[string]string{{}, {}},
	)
	if !errors.Is(err, domain.ErrBatchSizeMismatch) {
		t.Fatalf("err = %v, want ErrBatchSizeMismatch", err)
	}
	if len(s.items) != 0 {
		t.Error("nothing should be written on mismatch")
	}
}

func TestAddBatch_Empty(t *testing.T) {
	s := &fakeStore{}
	repo := New(s)

	if err := repo.AddBatch(context.Background(), shoesCol(t), nil, nil, nil, nil); err != nil {
		t.Fatalf("AddBatch(empty): %v", err)
	}
	if len(s.items) != 0 {
		t.Error("empty batch must not write")
	}
}

func TestGet_StripsInternalFields(t *testing.T) {
	s := &fakeStore{hashes: map[string]map[string]string{
		"assist:shoes:s1": {
			"__content": "text", "vector": "blob",
			"brand": "Nike", "doc_type": "shoe",
		},
	}}
	repo := New(s)

	cand, err := repo.Get(context.Background(), shoesCol(t), "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cand.Content() != "text" {
		t.Errorf("content = %q", cand.Content())
	}
	if cand.Meta("vector") != "" || cand.Meta("__content") != "" {
		t.Error("internal fields leaked into metadata")
	}
	if cand.Meta("brand") != "Nike" {
		t.Errorf("brand = %q", cand.Meta("brand"))
	}
}

func TestGet_NotFound(t *testing.T) {
	s := &fakeStore{hashes: map[string]map[string]string{}}
	repo := New(s)

	_, err := repo.Get(context.Background(), shoesCol(t), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCount(t *testing.T) {
	s := &fakeStore{count: 42}
	repo := New(s)

	n, err := repo.Count(context.Background(), shoesCol(t))
	if err != nil || n != 42 {
		t.Fatalf("Count = %d, %v; want 42", n, err)
	}
}
