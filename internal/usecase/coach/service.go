// Package coach synthesizes training routines from retrieved drills.
package coach

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
)

// Retriever runs the drill search.
type Retriever interface {
	SearchDrills(ctx context.Context, q *query.Skill, limit int) ([]domdoc.Candidate, error)
}

// Completer produces a JSON completion for a system + user prompt pair.
type Completer interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// Phase names the routine schema accepts, in training order.
const (
	PhaseWarmup   = "warmup"
	PhaseMain     = "main"
	PhaseCooldown = "cooldown"
)

// RoutineDrill is one drill slot inside a phase.
type RoutineDrill struct {
	Name        string `json:"name"`
	DurationMin int    `json:"duration_min"`
	Description string `json:"description"`
}

// Phase is one block of the routine.
type Phase struct {
	Name   string         `json:"name"`
	Drills []RoutineDrill `json:"drills"`
}

// Routine is the validated synthesis output.
type Routine struct {
	Phases        []Phase `json:"phases"`
	TotalTimeMin  int     `json:"total_time_min"`
	CoachingNotes string  `json:"coaching_notes"`
}

const systemPrompt = `You are a basketball skills coach. Build a training routine using ONLY the drills provided. Respond in JSON: {"phases": [{"name": one of "warmup"|"main"|"cooldown", "drills": [{"name", "duration_min", "description"}]}], "total_time_min", "coaching_notes"}. Keep the total duration within the athlete's available time and never invent drills.`

// Service runs retrieval and synthesis for the skill endpoint.
type Service struct {
	retriever Retriever
	chat      Completer
	logger    *zap.Logger
}

// New creates the coach service.
func New(retriever Retriever, chat Completer, logger *zap.Logger) *Service {
	return &Service{retriever: retriever, chat: chat, logger: logger}
}

// BuildRoutine retrieves matching drills and synthesizes a phased routine.
// The routine is rejected when it names an unknown phase or overruns the
// athlete's available time.
func (s *Service) BuildRoutine(ctx context.Context, q *query.Skill) (Routine, error) {
	drills, err := s.retriever.SearchDrills(ctx, q, query.DefaultDrillLimit)
	if err != nil {
		return Routine{}, fmt.Errorf("retrieve drills: %w", err)
	}
	if len(drills) == 0 {
		return Routine{}, fmt.Errorf("no drills matched: %w", domain.ErrNotFound)
	}

	raw, err := s.chat.CompleteJSON(ctx, systemPrompt, buildUserPrompt(q, drills))
	if err != nil {
		metrics.SynthesisRequestsTotal.WithLabelValues("coach", "error").Inc()
		return Routine{}, fmt.Errorf("%w: %w", domain.ErrSynthesisFailed, err)
	}

	routine, err := decodeRoutine(raw, q.AvailableTimeMin())
	if err != nil {
		metrics.SynthesisRequestsTotal.WithLabelValues("coach", "invalid").Inc()
		return Routine{}, err
	}

	metrics.SynthesisRequestsTotal.WithLabelValues("coach", "success").Inc()
	return routine, nil
}

func buildUserPrompt(q *query.Skill, drills []domdoc.Candidate) string {
	var b strings.Builder

	b.WriteString("## Athlete\n")
	fmt.Fprintf(&b, "Skill level: %s\n", q.SkillLevel())
	fmt.Fprintf(&b, "Focus area: %s\n", q.FocusArea())
	fmt.Fprintf(&b, "Available time: %d minutes\n", q.AvailableTimeMin())
	if len(q.Equipment()) > 0 {
		fmt.Fprintf(&b, "Equipment on hand: %s\n", strings.Join(q.Equipment(), ", "))
	}

	b.WriteString("\n## Drills\n")
	for i := range drills {
		fmt.Fprintf(&b, "---\n%s\n", drills[i].Content())
	}

	return b.String()
}

var validPhases = map[string]bool{
	PhaseWarmup:   true,
	PhaseMain:     true,
	PhaseCooldown: true,
}

// decodeRoutine parses and validates the model output. The summed drill
// durations are authoritative: total_time_min is recomputed rather than
// trusted.
func decodeRoutine(raw string, availableMin int) (Routine, error) {
	var r Routine
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return Routine{}, fmt.Errorf("%w: parse routine: %w", domain.ErrInvalidResponse, err)
	}

	if len(r.Phases) == 0 {
		return Routine{}, fmt.Errorf("%w: routine has no phases", domain.ErrInvalidResponse)
	}

	total := 0
	for _, phase := range r.Phases {
		if !validPhases[phase.Name] {
			return Routine{}, fmt.Errorf("%w: unknown phase %q", domain.ErrInvalidResponse, phase.Name)
		}
		for _, d := range phase.Drills {
			if d.Name == "" {
				return Routine{}, fmt.Errorf("%w: phase %s has an unnamed drill", domain.ErrInvalidResponse, phase.Name)
			}
			if d.DurationMin <= 0 {
				return Routine{}, fmt.Errorf(
					"%w: drill %q duration %d is not positive", domain.ErrInvalidResponse, d.Name, d.DurationMin)
			}
			total += d.DurationMin
		}
	}
	if total > availableMin {
		return Routine{}, fmt.Errorf(
			"%w: routine runs %d min, athlete has %d", domain.ErrInvalidResponse, total, availableMin)
	}
	r.TotalTimeMin = total

	return r, nil
}
