// Package advisor synthesizes shoe recommendations from retrieved candidates.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/courtlab/assist/internal/domain"
	domdoc "github.com/courtlab/assist/internal/domain/document"
	"github.com/courtlab/assist/internal/domain/query"
	"github.com/courtlab/assist/internal/metrics"
	"github.com/courtlab/assist/internal/usecase/retrieval"
)

// Retriever runs the combined shoe + player search.
type Retriever interface {
	CrossAnalysisSearch(ctx context.Context, q *query.Gear, nShoes int) (retrieval.CrossAnalysisResult, error)
}

// Completer produces a JSON completion for a system + user prompt pair.
type Completer interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// ShoeAdvice is one recommended shoe in the synthesized answer.
type ShoeAdvice struct {
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	PriceKRW   int    `json:"price_krw"`
	MatchScore int    `json:"match_score"`
	Reason     string `json:"reason"`
}

// Recommendation is the validated synthesis output.
type Recommendation struct {
	Shoes   []ShoeAdvice `json:"recommendations"`
	Summary string       `json:"summary"`
}

const systemPrompt = `You are a basketball gear advisor. Using ONLY the shoe and player context provided, recommend shoes matching the user's sensory preferences. Respond in JSON: {"recommendations": [{"brand", "model", "price_krw", "match_score" (0-100), "reason"}], "summary"}. Recommend between 1 and 5 shoes from the context, never invent models.`

// Service runs retrieval and synthesis for the gear endpoint.
type Service struct {
	retriever Retriever
	chat      Completer
	logger    *zap.Logger
}

// New creates the advisor service.
func New(retriever Retriever, chat Completer, logger *zap.Logger) *Service {
	return &Service{retriever: retriever, chat: chat, logger: logger}
}

// Recommend retrieves candidates and synthesizes a recommendation. Retrieval
// failures propagate as-is so the transport can map them; synthesis failures
// wrap domain.ErrSynthesisFailed; malformed model output wraps
// domain.ErrInvalidResponse.
func (s *Service) Recommend(ctx context.Context, q *query.Gear, nShoes int) (Recommendation, error) {
	res, err := s.retriever.CrossAnalysisSearch(ctx, q, nShoes)
	if err != nil {
		return Recommendation{}, fmt.Errorf("retrieve candidates: %w", err)
	}
	if len(res.Shoes) == 0 {
		return Recommendation{}, fmt.Errorf("no shoe candidates matched: %w", domain.ErrNotFound)
	}

	raw, err := s.chat.CompleteJSON(ctx, systemPrompt, buildUserPrompt(q, res))
	if err != nil {
		metrics.SynthesisRequestsTotal.WithLabelValues("advisor", "error").Inc()
		return Recommendation{}, fmt.Errorf("%w: %w", domain.ErrSynthesisFailed, err)
	}

	rec, err := decodeRecommendation(raw)
	if err != nil {
		metrics.SynthesisRequestsTotal.WithLabelValues("advisor", "invalid").Inc()
		return Recommendation{}, err
	}

	metrics.SynthesisRequestsTotal.WithLabelValues("advisor", "success").Inc()
	return rec, nil
}

func buildUserPrompt(q *query.Gear, res retrieval.CrossAnalysisResult) string {
	var b strings.Builder

	b.WriteString("## User preferences\n")
	fmt.Fprintf(&b, "Sensory keywords: %s\n", strings.Join(q.SensoryKeywords(), ", "))
	if q.PlayerArchetype() != "" {
		fmt.Fprintf(&b, "Preferred player archetype: %s\n", q.PlayerArchetype())
	}
	if q.Position() != "" {
		fmt.Fprintf(&b, "Position: %s\n", q.Position())
	}
	if q.BudgetMaxKRW() > 0 {
		fmt.Fprintf(&b, "Budget ceiling: %d KRW\n", q.BudgetMaxKRW())
	}

	b.WriteString("\n## Shoe candidates\n")
	writeCandidates(&b, res.Shoes)

	if len(res.Players) > 0 {
		b.WriteString("\n## Player archetypes\n")
		writeCandidates(&b, res.Players)
	}

	return b.String()
}

func writeCandidates(b *strings.Builder, cands []domdoc.Candidate) {
	for i := range cands {
		fmt.Fprintf(b, "---\n%s\n", cands[i].Content())
	}
}

// decodeRecommendation parses and validates the model output strictly: any
// schema violation is an invalid response, never partially accepted.
func decodeRecommendation(raw string) (Recommendation, error) {
	var rec Recommendation
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Recommendation{}, fmt.Errorf("%w: parse recommendation: %w", domain.ErrInvalidResponse, err)
	}

	if len(rec.Shoes) < 1 || len(rec.Shoes) > 5 {
		return Recommendation{}, fmt.Errorf(
			"%w: expected 1-5 recommendations, got %d", domain.ErrInvalidResponse, len(rec.Shoes))
	}
	for i, shoe := range rec.Shoes {
		if shoe.Brand == "" || shoe.Model == "" {
			return Recommendation{}, fmt.Errorf(
				"%w: recommendation %d missing brand or model", domain.ErrInvalidResponse, i)
		}
		if shoe.MatchScore < 0 || shoe.MatchScore > 100 {
			return Recommendation{}, fmt.Errorf(
				"%w: recommendation %d match_score %d out of range", domain.ErrInvalidResponse, i, shoe.MatchScore)
		}
	}

	return rec, nil
}
