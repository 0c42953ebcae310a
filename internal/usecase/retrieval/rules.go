package retrieval

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/courtlab/assist/internal/domain/catalog"
	domdoc "github.com/courtlab/assist/internal/domain/document"
	"github.com/courtlab/assist/internal/repository/collection"
)

// RuleService retrieves rule excerpts and glossary definitions for judgment
// synthesis.
type RuleService struct {
	searcher
}

// NewRuleService creates the rule retrieval service.
func NewRuleService(repo Repository, colls CollectionReader, embed Embedder, logger *zap.Logger) *RuleService {
	return &RuleService{searcher{repo: repo, colls: colls, embed: embed, logger: logger}}
}

// SearchBySituation returns up to limit rule excerpts relevant to the
// situation. When ruleType is given it is upper-cased and pushed down to the
// store as an equality predicate, not post-filtered here. A blank situation
// yields an empty result without a store call.
func (s *RuleService) SearchBySituation(
	ctx context.Context, situation, ruleType string, limit int,
) ([]domdoc.Candidate, error) {
	if strings.TrimSpace(situation) == "" {
		return nil, nil
	}

	var predicates map[string]string
	if ruleType != "" {
		predicates = map[string]string{catalog.MetaRuleType: strings.ToUpper(ruleType)}
	}

	return s.knn(ctx, collection.Rules, situation, predicates, limit)
}

// SearchGlossaryTerms returns up to limit glossary definitions matching the
// query. The category predicate, when given, is pushed down as-is. A blank
// query yields an empty result without a store call.
func (s *RuleService) SearchGlossaryTerms(
	ctx context.Context, queryText, category string, limit int,
) ([]domdoc.Candidate, error) {
	if strings.TrimSpace(queryText) == "" {
		return nil, nil
	}

	var predicates map[string]string
	if category != "" {
		predicates = map[string]string{catalog.MetaCategory: category}
	}

	return s.knn(ctx, collection.Glossary, queryText, predicates, limit)
}

// HybridSearch runs the situation search and the glossary search with the
// same situation text, surfacing the terminology the situation itself uses.
// If either sub-search fails the whole call fails: partial context is too
// risky to hand to the judgment synthesizer.
func (s *RuleService) HybridSearch(
	ctx context.Context, situation, ruleType string, nRules, nGlossary int,
) (HybridSearchResult, error) {
	if strings.TrimSpace(situation) == "" {
		return HybridSearchResult{}, nil
	}

	rules, err := s.SearchBySituation(ctx, situation, ruleType, nRules)
	if err != nil {
		return HybridSearchResult{}, fmt.Errorf("situation search: %w", err)
	}

	glossary, err := s.SearchGlossaryTerms(ctx, situation, "", nGlossary)
	if err != nil {
		return HybridSearchResult{}, fmt.Errorf("glossary search: %w", err)
	}

	return HybridSearchResult{Rules: rules, Glossary: glossary}, nil
}
