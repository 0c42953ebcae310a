package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/courtlab/assist/internal/domain/catalog"
)

// Sources names the catalog files for one ingestion run. Empty paths skip
// their dataset.
type Sources struct {
	ShoesPath    string
	PlayersPath  string
	DrillsPath   string
	RulesPath    string
	GlossaryPath string
}

func readJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return items, nil
}

func loadShoes(path string) ([]record, error) {
	shoes, err := readJSON[catalog.Shoe](path)
	if err != nil {
		return nil, err
	}
	records := make([]record, len(shoes))
	for i, s := range shoes {
		records[i] = record{id: s.ID, content: s.Document(), metadata: s.Metadata()}
	}
	return records, nil
}

func loadPlayers(path string) ([]record, error) {
	players, err := readJSON[catalog.Player](path)
	if err != nil {
		return nil, err
	}
	records := make([]record, len(players))
	for i, p := range players {
		records[i] = record{id: p.Name, content: p.Document(), metadata: p.Metadata()}
	}
	return records, nil
}

func loadDrills(path string) ([]record, error) {
	drills, err := readJSON[catalog.Drill](path)
	if err != nil {
		return nil, err
	}
	records := make([]record, len(drills))
	for i, d := range drills {
		records[i] = record{id: d.ID, content: d.Document(), metadata: d.Metadata()}
	}
	return records, nil
}

func loadRules(path string) ([]record, error) {
	chunks, err := readJSON[catalog.RuleChunk](path)
	if err != nil {
		return nil, err
	}
	records := make([]record, len(chunks))
	for i, c := range chunks {
		records[i] = record{id: c.ID, content: c.Document(), metadata: c.Metadata()}
	}
	return records, nil
}

func loadGlossary(path string) ([]record, error) {
	terms, err := readJSON[catalog.GlossaryTerm](path)
	if err != nil {
		return nil, err
	}
	records := make([]record, len(terms))
	for i, g := range terms {
		records[i] = record{id: g.Term, content: g.Document(), metadata: g.Metadata()}
	}
	return records, nil
}
