package retrieval

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/courtlab/assist/internal/domain/catalog"
	domdoc "github.com/courtlab/assist/internal/domain/document"
	"github.com/courtlab/assist/internal/domain/query"
	"github.com/courtlab/assist/internal/repository/collection"
)

// DrillService retrieves training drills for routine synthesis.
type DrillService struct {
	searcher
}

// NewDrillService creates the drill retrieval service.
func NewDrillService(repo Repository, colls CollectionReader, embed Embedder, logger *zap.Logger) *DrillService {
	return &DrillService{searcher{repo: repo, colls: colls, embed: embed, logger: logger}}
}

// SearchDrills returns up to limit drills for the focus area and skill level.
// Category and difficulty are exact enumerations known at index time, so both
// are pushed down as store predicates; the equipment constraint depends on
// the decoded requirement list and stays an in-process post-filter.
func (s *DrillService) SearchDrills(
	ctx context.Context, q *query.Skill, limit int,
) ([]domdoc.Candidate, error) {
	if limit <= 0 {
		limit = query.DefaultDrillLimit
	}

	queryText := strings.TrimSpace(q.FocusArea() + " " + q.SkillLevel() + " drill")
	predicates := map[string]string{
		catalog.MetaCategory:   q.FocusArea(),
		catalog.MetaDifficulty: q.SkillLevel(),
	}

	// Oversample so the equipment post-filter does not starve the routine
	candidates, err := s.knn(ctx, collection.Drills, queryText, predicates, limit*oversampleFactor)
	if err != nil {
		return nil, err
	}

	candidates = filterByEquipment(candidates, q.Equipment())
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}
