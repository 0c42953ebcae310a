// Package judge synthesizes rule judgments from retrieved rule excerpts and
// glossary definitions.
package judge

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

// Retriever runs the combined rule + glossary search.
type Retriever interface {
	HybridSearch(ctx context.Context, situation, ruleType string, nRules, nGlossary int) (retrieval.HybridSearchResult, error)
}

// Completer produces a JSON completion for a system + user prompt pair.
type Completer interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// Decisions the judgment schema accepts.
const (
	DecisionViolation = "violation"
	DecisionFoul      = "foul"
	DecisionLegal     = "legal"
	DecisionOther     = "other"
)

// RuleReference points at a rulebook passage backing the decision.
type RuleReference struct {
	RuleType string `json:"rule_type"`
	Article  string `json:"article"`
	Excerpt  string `json:"excerpt"`
}

// Judgment is the validated synthesis output.
type Judgment struct {
	Decision       string          `json:"decision"`
	Explanation    string          `json:"explanation"`
	RuleReferences []RuleReference `json:"rule_references"`
}

const systemPrompt = `You are a basketball referee. Judge the described game situation using ONLY the rule excerpts and glossary definitions provided. Respond in JSON: {"decision": one of "violation"|"foul"|"legal"|"other", "explanation", "rule_references": [{"rule_type", "article", "excerpt"}]}. Cite at least one rule reference from the context.`

// Service runs retrieval and synthesis for the whistle endpoint.
type Service struct {
	retriever Retriever
	chat      Completer
	logger    *zap.Logger
}

// New creates the judge service.
func New(retriever Retriever, chat Completer, logger *zap.Logger) *Service {
	return &Service{retriever: retriever, chat: chat, logger: logger}
}

// Judge sanitizes the situation, retrieves rule and glossary context, and
// synthesizes a judgment. A situation that is empty after sanitizing is an
// invalid query, not an empty judgment.
func (s *Service) Judge(ctx context.Context, q *query.Rule) (Judgment, error) {
	situation := sanitizeSituation(q.Situation())
	if situation == "" {
		return Judgment{}, fmt.Errorf("situation is empty: %w", domain.ErrInvalidQuery)
	}

	res, err := s.retriever.HybridSearch(
		ctx, situation, q.RuleType(), query.DefaultRuleLimit, query.DefaultGlossaryLimit,
	)
	if err != nil {
		return Judgment{}, fmt.Errorf("retrieve rule context: %w", err)
	}
	if len(res.Rules) == 0 {
		return Judgment{}, fmt.Errorf("no rule excerpts matched: %w", domain.ErrNotFound)
	}

	raw, err := s.chat.CompleteJSON(ctx, systemPrompt, buildUserPrompt(situation, q.RuleType(), res))
	if err != nil {
		metrics.SynthesisRequestsTotal.WithLabelValues("judge", "error").Inc()
		return Judgment{}, fmt.Errorf("%w: %w", domain.ErrSynthesisFailed, err)
	}

	judgment, err := decodeJudgment(raw)
	if err != nil {
		metrics.SynthesisRequestsTotal.WithLabelValues("judge", "invalid").Inc()
		return Judgment{}, err
	}

	metrics.SynthesisRequestsTotal.WithLabelValues("judge", "success").Inc()
	return judgment, nil
}

func buildUserPrompt(situation, ruleType string, res retrieval.HybridSearchResult) string {
	var b strings.Builder

	b.WriteString("## Situation\n")
	b.WriteString(situation)
	b.WriteString("\n")
	if ruleType != "" {
		fmt.Fprintf(&b, "Rule set: %s\n", ruleType)
	}

	b.WriteString("\n## Rule excerpts\n")
	writeCandidates(&b, res.Rules)

	if len(res.Glossary) > 0 {
		b.WriteString("\n## Glossary\n")
		writeCandidates(&b, res.Glossary)
	}

	return b.String()
}

func writeCandidates(b *strings.Builder, cands []domdoc.Candidate) {
	for i := range cands {
		fmt.Fprintf(b, "---\n%s\n", cands[i].Content())
	}
}

var validDecisions = map[string]bool{
	DecisionViolation: true,
	DecisionFoul:      true,
	DecisionLegal:     true,
	DecisionOther:     true,
}

// decodeJudgment parses and validates the model output: decision must be one
// of the four verdicts and at least one rule reference must be cited.
func decodeJudgment(raw string) (Judgment, error) {
	var j Judgment
	if err := json.Unmarshal([]byte(raw), &j); err != nil {
		return Judgment{}, fmt.Errorf("%w: parse judgment: %w", domain.ErrInvalidResponse, err)
	}

	if !validDecisions[j.Decision] {
		return Judgment{}, fmt.Errorf("%w: unknown decision %q", domain.ErrInvalidResponse, j.Decision)
	}
	if len(j.RuleReferences) == 0 {
		return Judgment{}, fmt.Errorf("%w: judgment cites no rule references", domain.ErrInvalidResponse)
	}

	return j, nil
}
