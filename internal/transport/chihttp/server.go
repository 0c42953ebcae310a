// Package chihttp exposes the assistant over a chi router: one POST endpoint
// per agent plus health and metrics.
package chihttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/courtlab/assist/internal/domain"
	"github.com/courtlab/assist/internal/domain/query"
	"github.com/courtlab/assist/internal/usecase/advisor"
	"github.com/courtlab/assist/internal/usecase/coach"
	healthuc "github.com/courtlab/assist/internal/usecase/health"
	"github.com/courtlab/assist/internal/usecase/judge"
)

// GearAdvisor synthesizes shoe recommendations.
type GearAdvisor interface {
	Recommend(ctx context.Context, q *query.Gear, nShoes int) (advisor.Recommendation, error)
}

// RuleJudge synthesizes rule judgments.
type RuleJudge interface {
	Judge(ctx context.Context, q *query.Rule) (judge.Judgment, error)
}

// SkillCoach synthesizes training routines.
type SkillCoach interface {
	BuildRoutine(ctx context.Context, q *query.Skill) (coach.Routine, error)
}

// HealthChecker reports dependency health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements the HTTP API.
type Server struct {
	advisor       GearAdvisor
	judge         RuleJudge
	coach         SkillCoach
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	gearAdvisor GearAdvisor,
	ruleJudge RuleJudge,
	skillCoach SkillCoach,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		advisor: gearAdvisor,
		judge:   ruleJudge,
		coach:   skillCoach,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway),
		sentinelHandler(domain.ErrSynthesisFailed, http.StatusBadGateway),
		sentinelHandler(domain.ErrInvalidResponse, http.StatusBadGateway),
		sentinelHandler(domain.ErrRetrievalFailed, http.StatusInternalServerError),
	}
	return s
}

// Routes mounts all endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/gear/recommend", s.RecommendGear)
		r.Post("/whistle/judge", s.JudgeSituation)
		r.Post("/skill/routine", s.BuildRoutine)
	})
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// RecommendGear handles POST /api/v1/gear/recommend.
func (s *Server) RecommendGear(w http.ResponseWriter, r *http.Request) {
	var req gearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	q, err := query.NewGear(req.SensoryKeywords, req.PlayerArchetype, req.Position, req.BudgetMaxKRW)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = query.DefaultShoeLimit
	}

	rec, err := s.advisor.Recommend(r.Context(), &q, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeSuccess(w, "recommendation generated", rec)
}

// JudgeSituation handles POST /api/v1/whistle/judge.
func (s *Server) JudgeSituation(w http.ResponseWriter, r *http.Request) {
	var req judgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	q, err := query.NewRule(req.Situation, req.RuleType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	judgment, err := s.judge.Judge(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeSuccess(w, "judgment generated", judgment)
}

// BuildRoutine handles POST /api/v1/skill/routine.
func (s *Server) BuildRoutine(w http.ResponseWriter, r *http.Request) {
	var req routineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	q, err := query.NewSkill(req.SkillLevel, req.FocusArea, req.AvailableTimeMin, req.Equipment)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	routine, err := s.coach.BuildRoutine(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeSuccess(w, "routine generated", routine)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrNotFound,
		domain.ErrEmbeddingProviderError,
		domain.ErrSynthesisFailed,
		domain.ErrInvalidResponse,
		domain.ErrRetrievalFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
