package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/courtlab/assist/internal/domain"
	"github.com/courtlab/assist/internal/repository/collection"
)

var testRegistry = collection.NewRegistry(2, collection.HNSWConfig{})

type addBatchCall struct {
	collection string
	ids        []string
	contents   []string
	metadatas  []map[string]string
}

type fakeWriter struct {
	calls []addBatchCall
	err   error
}

func (f *fakeWriter) AddBatch(
	_ context.Context, col collection.Collection,
	ids, contents []string, vectors [][]float32, metadatas []map[string]string,
) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, addBatchCall{
		collection: col.Name, ids: ids, contents: contents, metadatas: metadatas,
	})
	return nil
}

type fakeEmbedder struct {
	batches [][]string
	err     error
}

func (f *fakeEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if f.err != nil {
		return domain.BatchEmbeddingResult{}, f.err
	}
	f.batches = append(f.batches, texts)
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{0.1, 0.2}
	}
	return domain.BatchEmbeddingResult{Embeddings: vectors, TotalTokens: len(texts) * 7}, nil
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

const shoesFixture = `[
	{"id": "shoe-001", "brand": "Nike", "model_name": "GT Cut 3", "price_krw": 189000,
	 "sensory_tags": ["쫀득한 접지"], "tags": ["가드"], "description": "low profile"},
	{"id": "shoe-002", "brand": "Under Armour", "model_name": "Curry 11", "price_krw": 169000,
	 "sensory_tags": ["가벼운 무게"], "tags": ["가드"], "description": "light"}
]`

func TestRun_IndexesShoes(t *testing.T) {
	writer := &fakeWriter{}
	embed := &fakeEmbedder{}
	svc := New(writer, testRegistry, embed, 100, zap.NewNop())

	report, err := svc.Run(context.Background(), Sources{
		ShoesPath: writeFixture(t, "shoes.json", shoesFixture),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Documents[collection.Shoes] != 2 {
		t.Errorf("shoes = %d, want 2", report.Documents[collection.Shoes])
	}
	if report.TotalTokens != 14 {
		t.Errorf("tokens = %d, want 14", report.TotalTokens)
	}

	if len(writer.calls) != 1 {
		t.Fatalf("AddBatch calls = %d, want 1", len(writer.calls))
	}
	call := writer.calls[0]
	if call.collection != collection.Shoes {
		t.Errorf("collection = %q", call.collection)
	}
	if call.ids[0] != "shoe-001" || call.ids[1] != "shoe-002" {
		t.Errorf("ids = %v", call.ids)
	}
	if call.metadatas[0]["doc_type"] != "shoe" || call.metadatas[0]["price_krw"] != "189000" {
		t.Errorf("metadata = %v", call.metadatas[0])
	}
}

func TestRun_ChunksByBatchSize(t *testing.T) {
	fixture := `[
		{"id": "r1", "rule_type": "FIBA", "article": "24", "content": "a"},
		{"id": "r2", "rule_type": "FIBA", "article": "25", "content": "b"},
		{"id": "r3", "rule_type": "NBA", "article": "10", "content": "c"},
		{"id": "r4", "rule_type": "NBA", "article": "12", "content": "d"},
		{"id": "r5", "rule_type": "FIBA", "article": "30", "content": "e"}
	]`
	writer := &fakeWriter{}
	embed := &fakeEmbedder{}
	svc := New(writer, testRegistry, embed, 2, zap.NewNop())

	_, err := svc.Run(context.Background(), Sources{
		RulesPath: writeFixture(t, "rules.json", fixture),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(embed.batches) != 3 {
		t.Fatalf("embed batches = %d, want 3", len(embed.batches))
	}
	sizes := []int{len(embed.batches[0]), len(embed.batches[1]), len(embed.batches[2])}
	if sizes[0] != 2 || sizes[1] != 2 || sizes[2] != 1 {
		t.Errorf("batch sizes = %v, want [2 2 1]", sizes)
	}
	if len(writer.calls) != 3 {
		t.Errorf("AddBatch calls = %d, want 3", len(writer.calls))
	}
}

func TestRun_GeneratesIDsForIDLessRecords(t *testing.T) {
	fixture := `[{"rule_type": "FIBA", "article": "24", "content": "no id here"}]`
	writer := &fakeWriter{}
	svc := New(writer, testRegistry, &fakeEmbedder{}, 100, zap.NewNop())

	_, err := svc.Run(context.Background(), Sources{
		RulesPath: writeFixture(t, "rules.json", fixture),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writer.calls) != 1 || len(writer.calls[0].ids) != 1 {
		t.Fatalf("calls = %+v", writer.calls)
	}
	if writer.calls[0].ids[0] == "" {
		t.Error("an id-less record must get a generated id")
	}
}

func TestRun_SkipsEmptyPaths(t *testing.T) {
	writer := &fakeWriter{}
	svc := New(writer, testRegistry, &fakeEmbedder{}, 100, zap.NewNop())

	report, err := svc.Run(context.Background(), Sources{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Documents) != 0 || len(writer.calls) != 0 {
		t.Errorf("nothing should be ingested: report=%+v calls=%d", report, len(writer.calls))
	}
}

func TestRun_EmbedFailureAborts(t *testing.T) {
	embedErr := errors.New("quota exceeded")
	svc := New(&fakeWriter{}, testRegistry, &fakeEmbedder{err: embedErr}, 100, zap.NewNop())

	_, err := svc.Run(context.Background(), Sources{
		ShoesPath: writeFixture(t, "shoes.json", shoesFixture),
	})
	if !errors.Is(err, embedErr) {
		t.Fatalf("err = %v, want embed error", err)
	}
}

func TestRun_MalformedCatalog(t *testing.T) {
	svc := New(&fakeWriter{}, testRegistry, &fakeEmbedder{}, 100, zap.NewNop())

	_, err := svc.Run(context.Background(), Sources{
		ShoesPath: writeFixture(t, "shoes.json", `{"not": "an array"}`),
	})
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestRun_WriteFailureAborts(t *testing.T) {
	writeErr := errors.New("connection reset")
	svc := New(&fakeWriter{err: writeErr}, testRegistry, &fakeEmbedder{}, 100, zap.NewNop())

	_, err := svc.Run(context.Background(), Sources{
		ShoesPath: writeFixture(t, "shoes.json", shoesFixture),
	})
	if !errors.Is(err, writeErr) {
		t.Fatalf("err = %v, want write error", err)
	}
}
