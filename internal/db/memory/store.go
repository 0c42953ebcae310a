// Package memory implements db.Store in process memory with brute-force
// cosine search. It backs tests and local runs that have no Redis at hand.
package memory

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/courtlab/assist/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store is an in-memory db.Store. All access is mutex-guarded; reads share an
// RLock so concurrent searches do not serialize.
type Store struct {
	mu      sync.RWMutex
	hashes  map[string]map[string]string
	kv      map[string][]byte
	indexes map[string]*db.IndexDefinition
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		hashes:  make(map[string]map[string]string),
		kv:      make(map[string][]byte),
		indexes: make(map[string]*db.IndexDefinition),
	}
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(_ context.Context, _ time.Duration) error { return nil }

// HSet sets hash fields.
func (s *Store) HSet(_ context.Context, key string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setHash(key, fields)
	return nil
}

// HSetMulti stores multiple hashes.
func (s *Store) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.setHash(item.Key, item.Fields)
	}
	return nil
}

func (s *Store) setHash(key string, fields map[string]string) {
	h, ok := s.hashes[key]
	if !ok {
		h = make(map[string]string, len(fields))
		s.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
}

// HGetAll returns a copy of all fields of a hash (empty map if absent, per
// Redis semantics).
func (s *Store) HGetAll(_ context.Context, key string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.hashes[key]))
	for k, v := range s.hashes[key] {
		out[k] = v
	}
	return out, nil
}

// Del deletes a key from both hash and kv spaces.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hashes, key)
	delete(s.kv, key)
	return nil
}

// Exists checks key presence.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.hashes[key]; ok {
		return true, nil
	}
	_, ok := s.kv[key]
	return ok, nil
}

// Get retrieves a kv value.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return data, nil
}

// Set stores a kv value.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv[key] = value
	return nil
}

// SetWithTTL stores a kv value; the TTL is ignored in memory.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, _ time.Duration) error {
	return s.Set(ctx, key, value)
}

// CreateIndex registers an index definition.
func (s *Store) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.indexes[def.Name]; ok {
		return db.ErrIndexExists
	}
	s.indexes[def.Name] = def
	return nil
}

// IndexExists reports whether an index is registered.
func (s *Store) IndexExists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.indexes[name]
	return ok, nil
}

// SearchKNN scans all hashes under the index prefixes, applies equality
// predicates, and ranks by cosine similarity (descending, key-stable ties).
func (s *Store) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if q.K <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.indexes[q.IndexName]
	if !ok {
		return nil, db.ErrIndexNotFound
	}

	type hit struct {
		key   string
		score float64
	}
	var hits []hit

	for key, fields := range s.hashes {
		if !matchesPrefix(key, idx.Prefixes) || !matchesPredicates(fields, q.Predicates) {
			continue
		}
		vec, err := bytesToVector(fields["vector"])
		if err != nil {
			continue
		}
		hits = append(hits, hit{key: key, score: cosine(q.Vector, vec)})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].key < hits[j].key
	})

	if len(hits) > q.K {
		hits = hits[:q.K]
	}

	entries := make([]db.SearchEntry, 0, len(hits))
	for _, h := range hits {
		entries = append(entries, db.SearchEntry{
			Key:    h.key,
			Score:  h.score,
			Fields: selectFields(s.hashes[h.key], q.ReturnFields),
		})
	}

	return &db.SearchResult{Total: len(entries), Entries: entries}, nil
}

// SearchCount counts hashes under the index prefixes.
func (s *Store) SearchCount(_ context.Context, index string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.indexes[index]
	if !ok {
		return 0, db.ErrIndexNotFound
	}

	count := 0
	for key := range s.hashes {
		if matchesPrefix(key, idx.Prefixes) {
			count++
		}
	}
	return count, nil
}

func matchesPrefix(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return len(prefixes) == 0
}

func matchesPredicates(fields, predicates map[string]string) bool {
	for k, v := range predicates {
		if fields[k] != v {
			return false
		}
	}
	return true
}

func selectFields(fields map[string]string, returnFields []string) map[string]string {
	out := make(map[string]string)
	if len(returnFields) == 0 {
		for k, v := range fields {
			out[k] = v
		}
		return out
	}
	for _, k := range returnFields {
		if v, ok := fields[k]; ok {
			out[k] = v
		}
	}
	return out
}

func cosine(a, b []float32) float64 {
	n := min(len(a), len(b))
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func bytesToVector(blob string) ([]float32, error) {
	if blob == "" || len(blob)%4 != 0 {
		return nil, fmt.Errorf("invalid vector blob length %d", len(blob))
	}
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		bits := binary.LittleEndian.Uint32([]byte(blob[i*4 : i*4+4]))
		vec[i] = math.Float32frombits(bits)
	}
	return vec, nil
}
