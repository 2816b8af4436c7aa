// Package server wires the service into a small JSON API. This layer is
// thin plumbing: it parses inputs, invokes the service, and serializes
// the result; all extraction logic lives below.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vidproxy/vidproxy/internal/config"
	"github.com/vidproxy/vidproxy/internal/monitoring"
	"github.com/vidproxy/vidproxy/internal/service"
	"github.com/vidproxy/vidproxy/internal/utils"
)

// Server serves the search and details endpoints.
type Server struct {
	svc     *service.Service
	logger  utils.Logger
	metrics *monitoring.Metrics
	http    *http.Server
}

// New builds the server and its router.
func New(cfg *config.Config, svc *service.Service, logger utils.Logger, metrics *monitoring.Metrics) *Server {
	if logger == nil {
		logger = utils.NopLogger()
	}
	s := &Server{
		svc:     svc,
		logger:  logger,
		metrics: metrics,
	}
	s.http = &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      s.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.corsMiddleware, s.loggingMiddleware)
	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/videos/{slug}", s.handleDetails).Methods(http.MethodGet, http.MethodOptions)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

// ListenAndServe runs the server until the listener fails or Shutdown is
// called.
func (s *Server) ListenAndServe() error {
	s.logger.WithField("address", s.http.Addr).Info("listening")
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// handleSearch serves GET /api/search?q=<query>&page=<n>.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := r.URL.Query().Get("q")
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, "search", start, utils.NewErrorf(utils.ErrCodeInvalidInput, "page must be a positive integer, got %q", raw))
			return
		}
		page = n
	}

	result, err := s.svc.Search(r.Context(), query, page)
	if err != nil {
		s.writeError(w, "search", start, err)
		return
	}
	s.writeJSON(w, "search", start, http.StatusOK, result)
}

// handleDetails serves GET /api/videos/{slug}.
func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	slug := mux.Vars(r)["slug"]

	result, err := s.svc.Details(r.Context(), "videos/"+slug)
	if err != nil {
		s.writeError(w, "details", start, err)
		return
	}
	s.writeJSON(w, "details", start, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string          `json:"error"`
	Code  utils.ErrorCode `json:"code"`
}

// statusFor maps the service error taxonomy onto HTTP statuses.
func statusFor(code utils.ErrorCode) int {
	switch code {
	case utils.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case utils.ErrCodeNotFound, utils.ErrCodeUpstreamNotFound:
		return http.StatusNotFound
	case utils.ErrCodeFetchFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, endpoint string, start time.Time, err error) {
	code := utils.CodeOf(err)
	status := statusFor(code)
	if status >= 500 {
		s.logger.WithField("endpoint", endpoint).Error(err.Error())
	} else {
		s.logger.WithField("endpoint", endpoint).Debug(err.Error())
	}
	s.writeJSON(w, endpoint, start, status, errorBody{Error: err.Error(), Code: code})
}

func (s *Server) writeJSON(w http.ResponseWriter, endpoint string, start time.Time, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithField("endpoint", endpoint).Warnf("response encoding failed: %v", err)
	}
	s.metrics.ObserveRequest(endpoint, status, time.Since(start))
}
