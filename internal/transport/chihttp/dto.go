package chihttp

import (
	"encoding/json"
	"net/http"
)

// envelope is the uniform response wrapper for every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// gearRequest is the body of POST /api/v1/gear/recommend.
type gearRequest struct {
	SensoryKeywords []string `json:"sensory_keywords"`
	PlayerArchetype string   `json:"player_archetype"`
	Position        string   `json:"position"`
	BudgetMaxKRW    int      `json:"budget_max_krw"`
	Limit           int      `json:"limit"`
}

// judgeRequest is the body of POST /api/v1/whistle/judge.
type judgeRequest struct {
	Situation string `json:"situation"`
	RuleType  string `json:"rule_type"`
}

// routineRequest is the body of POST /api/v1/skill/routine.
type routineRequest struct {
	SkillLevel       string   `json:"skill_level"`
	FocusArea        string   `json:"focus_area"`
	AvailableTimeMin int      `json:"available_time_min"`
	Equipment        []string `json:"equipment"`
}

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}
