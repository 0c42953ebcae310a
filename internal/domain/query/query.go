// Package query defines the validated, immutable search parameter sets built
// once per incoming request.
package query

import (
	"fmt"
	"strings"
)

// Parameter limits.
const (
	MaxKeywords          = 16
	MaxKeywordLength     = 128
	MaxSituationLength   = 2048
	MaxPlayerNameLength  = 128
	DefaultShoeLimit     = 5
	DefaultRuleLimit     = 5
	DefaultGlossaryLimit = 3
	DefaultPlayerLimit   = 3
	DefaultDrillLimit    = 5
	DefaultCandidatePool = 10
)

// Rule set identifiers accepted by rule retrieval.
const (
	RuleTypeFIBA = "FIBA"
	RuleTypeNBA  = "NBA"
)

// Gear is the preference set for shoe recommendation.
type Gear struct {
	sensoryKeywords []string
	playerArchetype string
	position        string
	budgetMaxKRW    int
}

// NewGear validates and normalizes gear search parameters. Keywords may be
// empty: retrieval treats that as a designed empty result, not an error.
// budgetMaxKRW == 0 means no ceiling.
func NewGear(sensoryKeywords []string, playerArchetype, position string, budgetMaxKRW int) (Gear, error) {
	if len(sensoryKeywords) > MaxKeywords {
		return Gear{}, fmt.Errorf("too many sensory keywords (max %d)", MaxKeywords)
	}
	for _, k := range sensoryKeywords {
		if len(k) > MaxKeywordLength {
			return Gear{}, fmt.Errorf("sensory keyword too long (max %d chars)", MaxKeywordLength)
		}
	}
	if budgetMaxKRW < 0 {
		return Gear{}, fmt.Errorf("budget_max_krw must be positive, got %d", budgetMaxKRW)
	}
	if len(playerArchetype) > MaxPlayerNameLength {
		return Gear{}, fmt.Errorf("player archetype too long (max %d chars)", MaxPlayerNameLength)
	}
	return Gear{
		sensoryKeywords: sensoryKeywords,
		playerArchetype: strings.TrimSpace(playerArchetype),
		position:        strings.ToLower(strings.TrimSpace(position)),
		budgetMaxKRW:    budgetMaxKRW,
	}, nil
}

// SensoryKeywords returns the ordered sensory descriptors.
func (g *Gear) SensoryKeywords() []string { return g.sensoryKeywords }

// PlayerArchetype returns the preferred player name ("" if unset).
func (g *Gear) PlayerArchetype() string { return g.playerArchetype }

// Position returns the lower-cased playing position ("" if unset).
func (g *Gear) Position() string { return g.position }

// BudgetMaxKRW returns the budget ceiling (0 = no ceiling).
func (g *Gear) BudgetMaxKRW() int { return g.budgetMaxKRW }

// Rule is the parameter set for rule judgment retrieval.
type Rule struct {
	situation string
	ruleType  string
}

// NewRule validates rule search parameters. The situation may be blank,
// retrieval short-circuits to an empty result. ruleType, when given, must be
// FIBA or NBA (any case) and is normalized to upper case for the store
// predicate.
func NewRule(situation, ruleType string) (Rule, error) {
	if len(situation) > MaxSituationLength {
		return Rule{}, fmt.Errorf("situation too long (max %d chars)", MaxSituationLength)
	}
	rt := strings.ToUpper(strings.TrimSpace(ruleType))
	if rt != "" && rt != RuleTypeFIBA && rt != RuleTypeNBA {
		return Rule{}, fmt.Errorf("rule_type must be FIBA or NBA, got %q", ruleType)
	}
	return Rule{situation: situation, ruleType: rt}, nil
}

// Situation returns the free-text situation description.
func (r *Rule) Situation() string { return r.situation }

// RuleType returns the normalized rule set filter ("" = both).
func (r *Rule) RuleType() string { return r.ruleType }

// Skill levels and focus areas accepted by training retrieval.
var (
	skillLevels = map[string]bool{"beginner": true, "intermediate": true, "advanced": true}
	focusAreas  = map[string]bool{"dribble": true, "shooting": true, "defense": true, "conditioning": true}
)

// Skill is the parameter set for training routine retrieval.
type Skill struct {
	skillLevel       string
	focusArea        string
	availableTimeMin int
	equipment        []string
}

// NewSkill validates training routine parameters.
func NewSkill(skillLevel, focusArea string, availableTimeMin int, equipment []string) (Skill, error) {
	level := strings.ToLower(strings.TrimSpace(skillLevel))
	if !skillLevels[level] {
		return Skill{}, fmt.Errorf("skill_level must be beginner, intermediate or advanced, got %q", skillLevel)
	}
	area := strings.ToLower(strings.TrimSpace(focusArea))
	if !focusAreas[area] {
		return Skill{}, fmt.Errorf("focus_area must be dribble, shooting, defense or conditioning, got %q", focusArea)
	}
	if availableTimeMin <= 0 {
		return Skill{}, fmt.Errorf("available_time_min must be positive, got %d", availableTimeMin)
	}
	return Skill{
		skillLevel:       level,
		focusArea:        area,
		availableTimeMin: availableTimeMin,
		equipment:        equipment,
	}, nil
}

// SkillLevel returns the normalized skill level.
func (s *Skill) SkillLevel() string { return s.skillLevel }

// FocusArea returns the normalized focus area.
func (s *Skill) FocusArea() string { return s.focusArea }

// AvailableTimeMin returns the training time budget in minutes.
func (s *Skill) AvailableTimeMin() int { return s.availableTimeMin }

// Equipment returns the available equipment list.
func (s *Skill) Equipment() []string { return s.equipment }
