package query

import "testing"

func TestNewGear(t *testing.T) {
	tests := []struct {
		name      string
		keywords  []string
		archetype string
		position  string
		budget    int
		wantErr   bool
	}{
		{"full", []string{"쫀득한 접지", "가벼운 무게"}, "Stephen Curry", "Guard", 250000, false},
		{"empty keywords allowed", nil, "", "", 0, false},
		{"negative budget", []string{"접지"}, "", "", -1, true},
		{"too many keywords", make([]string, MaxKeywords+1), "", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGear(tt.keywords, tt.archetype, tt.position, tt.budget)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.position != "" && g.Position() != "guard" {
				t.Errorf("position not lower-cased: %q", g.Position())
			}
		})
	}
}

func TestNewRule_NormalizesRuleType(t *testing.T) {
	r, err := NewRule("공을 들고 세 발자국 걸었다", "fiba")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.RuleType() != RuleTypeFIBA {
		t.Errorf("rule_type = %q, want FIBA", r.RuleType())
	}
}

func TestNewRule_RejectsUnknownRuleType(t *testing.T) {
	if _, err := NewRule("trip", "NCAA"); err == nil {
		t.Fatal("expected error for unknown rule_type")
	}
}

func TestNewRule_BlankSituationAllowed(t *testing.T) {
	if _, err := NewRule("", ""); err != nil {
		t.Fatalf("blank situation should construct: %v", err)
	}
}

func TestNewSkill(t *testing.T) {
	if _, err := NewSkill("Intermediate", "dribble", 30, []string{"ball"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewSkill("pro", "dribble", 30, nil); err == nil {
		t.Error("expected error for unknown skill level")
	}
	if _, err := NewSkill("beginner", "dunking", 30, nil); err == nil {
		t.Error("expected error for unknown focus area")
	}
	if _, err := NewSkill("beginner", "defense", 0, nil); err == nil {
		t.Error("expected error for zero time")
	}
}
