package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pokedex/internal/domain"
	"github.com/kailas-cloud/pokedex/internal/domain/roster/criteria"
	logpkg "github.com/kailas-cloud/pokedex/internal/logger"
	healthuc "github.com/kailas-cloud/pokedex/internal/usecase/health"
	rosteruc "github.com/kailas-cloud/pokedex/internal/usecase/roster"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the roster HTTP API.
type Server struct {
	roster        *rosteruc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(roster *rosteruc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		roster: roster,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrInvalidCriteria, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrNetwork, http.StatusBadGateway, CodeSourceUnavailable),
		sentinelHandler(domain.ErrData, http.StatusBadGateway, CodeSourceInvalid),
	}
	return s
}

// Routes mounts the API endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/pokemon", s.ListPokemon)
	r.Get("/pokemon/{id}", s.GetPokemon)
	r.Get("/facets", s.GetFacets)
	r.Get("/dashboard", s.GetDashboard)
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
}

// listParams mirrors the query string of GET /pokemon.
type listParams struct {
	Name     *string
	Type     *string
	Weakness *string
	Height   *string
	Weight   *string
	From     *int
	To       *int
	Sort     *string
	Page     *int
	PageSize *int
}

func bindListParams(r *http.Request) (listParams, error) {
	var p listParams
	q := r.URL.Query()
	binds := []struct {
		name string
		dest any
	}{
		{"name", &p.Name},
		{"type", &p.Type},
		{"weakness", &p.Weakness},
		{"height", &p.Height},
		{"weight", &p.Weight},
		{"from", &p.From},
		{"to", &p.To},
		{"sort", &p.Sort},
		{"page", &p.Page},
		{"page_size", &p.PageSize},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return listParams{}, err //nolint:wrapcheck // reported to the client as-is
		}
	}
	return p, nil
}

func (p listParams) criteria() criteria.Params {
	return criteria.Params{
		Name:      deref(p.Name),
		Type:      deref(p.Type),
		Weakness:  deref(p.Weakness),
		Height:    deref(p.Height),
		Weight:    deref(p.Weight),
		From:      p.From,
		To:        p.To,
		Direction: criteria.Direction(deref(p.Sort)),
		Page:      deref(p.Page),
		PageSize:  deref(p.PageSize),
	}
}

// ListPokemon handles GET /pokemon.
func (s *Server) ListPokemon(w http.ResponseWriter, r *http.Request) {
	params, err := bindListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid query parameter: "+err.Error())
		return
	}

	listing, err := s.roster.List(r.Context(), params.criteria())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listingToResponse(listing))
}

// GetPokemon handles GET /pokemon/{id}.
func (s *Server) GetPokemon(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	r = r.WithContext(logpkg.With(r.Context(), zap.String("pokemon_id", id)))

	detail, err := s.roster.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, detailToResponse(detail))
}

// GetFacets handles GET /facets.
func (s *Server) GetFacets(w http.ResponseWriter, r *http.Request) {
	facets, err := s.roster.Facets(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, facetsToResponse(facets))
}

// GetDashboard handles GET /dashboard?index=N.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	var index *int
	if err := runtime.BindQueryParameter("form", true, false, "index", r.URL.Query(), &index); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid query parameter: "+err.Error())
		return
	}

	dash, err := s.roster.Dashboard(r.Context(), deref(index))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardToResponse(dash))
}

// HealthCheck handles GET /health.
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

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message without exposing internals.
// Criteria errors are built from user input only and are returned in full.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidCriteria) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrNetwork,
		domain.ErrData,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger, ok := logpkg.Lookup(r.Context())
	if !ok {
		logger = s.logger.With(zap.String("request_id", chiMiddleware.GetReqID(r.Context())))
	}
	logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
