package retrieval

import (
	"context"
	"reflect"
	"testing"

	domdoc "github.com/courtlab/assist/internal/domain/document"
	"github.com/courtlab/assist/internal/domain/query"
	"github.com/courtlab/assist/internal/repository/collection"
)

func newSkill(t *testing.T, level, area string, timeMin int, equipment []string) *query.Skill {
	t.Helper()
	s, err := query.NewSkill(level, area, timeMin, equipment)
	if err != nil {
		t.Fatalf("NewSkill: %v", err)
	}
	return &s
}

func TestSearchDrills_PushesCategoryAndDifficulty(t *testing.T) {
	repo := &fakeRepo{}
	svc := newDrillService(repo, &fakeEmbedder{})

	_, err := svc.SearchDrills(context.Background(),
		newSkill(t, "intermediate", "shooting", 60, nil), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(repo.calls))
	}
	call := repo.calls[0]
	if call.collection != collection.Drills {
		t.Errorf("collection = %s", call.collection)
	}
	if call.predicates["category"] != "shooting" || call.predicates["difficulty"] != "intermediate" {
		t.Errorf("predicates = %v", call.predicates)
	}
	if call.topK != 5*oversampleFactor {
		t.Errorf("topK = %d, want %d", call.topK, 5*oversampleFactor)
	}
}

func TestSearchDrills_EquipmentPostFilter(t *testing.T) {
	drills := []domdoc.Candidate{
		drill("bare"),
		drill("ball-only", "ball"),
		drill("cone-work", "ball", "cones"),
		drill("resistance", "band"),
	}

	tests := []struct {
		name      string
		available []string
		wantIDs   []string
	}{
		{"no equipment listed passes all", nil, []string{"bare", "ball-only", "cone-work", "resistance"}},
		{"ball only", []string{"ball"}, []string{"bare", "ball-only"}},
		{"ball and cones", []string{"ball", "cones"}, []string{"bare", "ball-only", "cone-work"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{results: map[string][]domdoc.Candidate{collection.Drills: drills}}
			svc := newDrillService(repo, &fakeEmbedder{})

			got, err := svc.SearchDrills(context.Background(),
				newSkill(t, "beginner", "dribble", 30, tt.available), 10)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(ids(got), tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids(got), tt.wantIDs)
			}
		})
	}
}

func TestSearchDrills_TruncatesToLimit(t *testing.T) {
	var drills []domdoc.Candidate
	for _, id := range []string{"d1", "d2", "d3", "d4", "d5", "d6"} {
		drills = append(drills, drill(id))
	}
	repo := &fakeRepo{results: map[string][]domdoc.Candidate{collection.Drills: drills}}
	svc := newDrillService(repo, &fakeEmbedder{})

	got, err := svc.SearchDrills(context.Background(),
		newSkill(t, "advanced", "defense", 45, nil), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("drills = %d, want 4", len(got))
	}
}
