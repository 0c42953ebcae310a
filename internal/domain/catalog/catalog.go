// Package catalog defines the source records the assistant indexes and the
// canonical document text built from them for embedding. Formatting is part of
// the contract: stored documents and query-time context share one shape.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/courtlab/assist/internal/domain/document"
)

// Metadata keys shared between ingestion and retrieval.
const (
	MetaShoeID         = "shoe_id"
	MetaBrand          = "brand"
	MetaModelName      = "model_name"
	MetaPriceKRW       = "price_krw"
	MetaSensoryTags    = "sensory_tags"
	MetaTags           = "tags"
	MetaName           = "name"
	MetaPosition       = "position"
	MetaPlayStyle      = "play_style"
	MetaSignatureShoes = "signature_shoes"
	MetaCategory       = "category"
	MetaDifficulty     = "difficulty"
	MetaPhase          = "phase"
	MetaEquipment      = "required_equipment"
	MetaDurationMin    = "duration_min"
	MetaRuleType       = "rule_type"
	MetaArticle        = "article"
	MetaPageNumber     = "page_number"
	MetaTerm           = "term"
)

// Shoe is a basketball shoe catalog record.
type Shoe struct {
	ID              string   `json:"id"`
	Brand           string   `json:"brand"`
	ModelName       string   `json:"model_name"`
	PriceKRW        int      `json:"price_krw"`
	SensoryTags     []string `json:"sensory_tags"`
	Tags            []string `json:"tags"`
	PlayerSignature string   `json:"player_signature"`
	Description     string   `json:"description"`
}

// Document renders the embedding text, emphasizing sensory tags for semantic
// matching.
func (s Shoe) Document() string {
	sig := s.PlayerSignature
	if sig == "" {
		sig = "N/A"
	}
	return fmt.Sprintf(
		"Brand: %s\nModel: %s\nSensory Tags: %s\nPlayer Signature: %s\nDescription: %s",
		s.Brand, s.ModelName, strings.Join(s.SensoryTags, ", "), sig, s.Description,
	)
}

// Metadata returns the flat store metadata for the shoe.
func (s Shoe) Metadata() map[string]string {
	return map[string]string{
		document.MetaDocType: string(document.TypeShoe),
		MetaShoeID:           s.ID,
		MetaBrand:            s.Brand,
		MetaModelName:        s.ModelName,
		MetaPriceKRW:         strconv.Itoa(s.PriceKRW),
		MetaSensoryTags:      document.EncodeList(s.SensoryTags),
		MetaTags:             document.EncodeList(s.Tags),
	}
}

// Player is a professional player archetype record.
type Player struct {
	Name           string   `json:"name"`
	Position       string   `json:"position"`
	PlayStyle      []string `json:"play_style"`
	SignatureShoes []string `json:"signature_shoes"`
	Description    string   `json:"description"`
}

// Document renders the embedding text, emphasizing play style.
func (p Player) Document() string {
	return fmt.Sprintf(
		"Player: %s\nPosition: %s\nPlay Style: %s\nDescription: %s",
		p.Name, p.Position, strings.Join(p.PlayStyle, ", "), p.Description,
	)
}

// Metadata returns the flat store metadata for the player.
func (p Player) Metadata() map[string]string {
	return map[string]string{
		document.MetaDocType: string(document.TypePlayer),
		MetaName:             p.Name,
		MetaPosition:         p.Position,
		MetaPlayStyle:        document.EncodeList(p.PlayStyle),
		MetaSignatureShoes:   document.EncodeList(p.SignatureShoes),
	}
}

// Drill is a training drill record.
type Drill struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Difficulty        string   `json:"difficulty"`
	Phase             string   `json:"phase"`
	DurationMin       int      `json:"duration_min"`
	RequiredEquipment []string `json:"required_equipment"`
	Description       string   `json:"description"`
}

// Document renders the embedding text for a drill.
func (d Drill) Document() string {
	return fmt.Sprintf("Drill: %s\nDescription: %s", d.Name, d.Description)
}

// Metadata returns the flat store metadata for the drill.
func (d Drill) Metadata() map[string]string {
	return map[string]string{
		document.MetaDocType: string(document.TypeDrill),
		MetaName:             d.Name,
		MetaCategory:         d.Category,
		MetaDifficulty:       d.Difficulty,
		MetaPhase:            d.Phase,
		MetaDurationMin:      strconv.Itoa(d.DurationMin),
		MetaEquipment:        document.EncodeList(d.RequiredEquipment),
	}
}

// RuleChunk is one pre-chunked excerpt of an official rulebook.
type RuleChunk struct {
	ID         string `json:"id"`
	RuleType   string `json:"rule_type"` // FIBA or NBA
	Article    string `json:"article"`
	PageNumber int    `json:"page_number"`
	Content    string `json:"content"`
}

// Document renders the embedding text, keeping rule type and article for
// context.
func (r RuleChunk) Document() string {
	article := r.Article
	if article == "" {
		article = "N/A"
	}
	return fmt.Sprintf("Rule Type: %s\nArticle: %s\nContent: %s", r.RuleType, article, r.Content)
}

// Metadata returns the flat store metadata for the rule chunk. The rule type
// is upper-cased at index time so query-time equality predicates match.
func (r RuleChunk) Metadata() map[string]string {
	return map[string]string{
		document.MetaDocType: string(document.TypeRule),
		MetaRuleType:         strings.ToUpper(r.RuleType),
		MetaArticle:          r.Article,
		MetaPageNumber:       strconv.Itoa(r.PageNumber),
	}
}

// GlossaryTerm is a basketball term definition.
type GlossaryTerm struct {
	Term                string   `json:"term"`
	Category            string   `json:"category"` // violation, foul, technique, position
	Definition          string   `json:"definition"`
	DetailedExplanation string   `json:"detailed_explanation"`
	Examples            []string `json:"examples"`
}

// Document renders the embedding text combining term, definition and
// explanation.
func (g GlossaryTerm) Document() string {
	return fmt.Sprintf(
		"Term: %s\nCategory: %s\nDefinition: %s\nExplanation: %s\nExamples: %s",
		g.Term, g.Category, g.Definition, g.DetailedExplanation, strings.Join(g.Examples, ", "),
	)
}

// Metadata returns the flat store metadata for the glossary term.
func (g GlossaryTerm) Metadata() map[string]string {
	return map[string]string{
		document.MetaDocType: string(document.TypeGlossary),
		MetaTerm:             g.Term,
		MetaCategory:         g.Category,
	}
}
