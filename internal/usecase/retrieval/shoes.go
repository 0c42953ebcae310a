package retrieval

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/courtlab/assist/internal/domain/catalog"
	domdoc "github.com/courtlab/assist/internal/domain/document"
	"github.com/courtlab/assist/internal/domain/query"
	"github.com/courtlab/assist/internal/repository/collection"
)

// oversampleFactor widens the internal candidate pool before budget and
// position filters remove entries, so truncation still has real choices.
const oversampleFactor = 3

// ShoeService retrieves shoe candidates by sensory preference and player
// archetype.
type ShoeService struct {
	searcher
}

// NewShoeService creates the shoe retrieval service.
func NewShoeService(repo Repository, colls CollectionReader, embed Embedder, logger *zap.Logger) *ShoeService {
	return &ShoeService{searcher{repo: repo, colls: colls, embed: embed, logger: logger}}
}

// SearchBySensoryPreferences returns up to limit shoes matching the sensory
// keywords, budget-filtered and position-filtered. Empty or whitespace-only
// keywords yield an empty result without touching the store.
func (s *ShoeService) SearchBySensoryPreferences(
	ctx context.Context, keywords []string, budgetMaxKRW int, position string, limit int,
) ([]domdoc.Candidate, error) {
	queryText := strings.TrimSpace(strings.Join(keywords, " "))
	if queryText == "" {
		return nil, nil
	}

	candidates, err := s.knn(ctx, collection.Shoes, queryText, nil, limit)
	if err != nil {
		return nil, err
	}

	candidates = filterByBudget(candidates, budgetMaxKRW)
	candidates = filterByPosition(candidates, position)
	return candidates, nil
}

// SearchByPlayerArchetype returns up to limit player records matching the
// given name. Empty or whitespace-only names yield an empty result without a
// store call.
func (s *ShoeService) SearchByPlayerArchetype(
	ctx context.Context, name string, limit int,
) ([]domdoc.Candidate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	return s.knn(ctx, collection.Players, name, nil, limit)
}

// CrossAnalysisSearch runs the combined shoe + player retrieval: oversampled
// sensory search, optional signature-model boost from the matched player, then
// truncation to nShoes. Boosting happens before truncation and only reorders
// the already-fetched pool.
func (s *ShoeService) CrossAnalysisSearch(
	ctx context.Context, q *query.Gear, nShoes int,
) (CrossAnalysisResult, error) {
	if nShoes <= 0 {
		nShoes = query.DefaultShoeLimit
	}
	pool := nShoes * oversampleFactor

	shoes, err := s.SearchBySensoryPreferences(
		ctx, q.SensoryKeywords(), q.BudgetMaxKRW(), q.Position(), pool,
	)
	if err != nil {
		return CrossAnalysisResult{}, fmt.Errorf("sensory search: %w", err)
	}

	var players []domdoc.Candidate
	if q.PlayerArchetype() != "" {
		players, err = s.SearchByPlayerArchetype(ctx, q.PlayerArchetype(), query.DefaultPlayerLimit)
		if err != nil {
			return CrossAnalysisResult{}, fmt.Errorf("player search: %w", err)
		}
		if len(players) > 0 {
			signatureModels := players[0].MetaList(catalog.MetaSignatureShoes)
			shoes = boostSignatureShoes(shoes, signatureModels)
		}
	}

	if len(shoes) > nShoes {
		shoes = shoes[:nShoes]
	}

	return CrossAnalysisResult{Shoes: shoes, Players: players}, nil
}
