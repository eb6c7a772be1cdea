// Package chi exposes the search, recommendation, and listing
// operations over HTTP using the chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bom70489/YDP/internal/domain"
	domlisting "github.com/bom70489/YDP/internal/domain/listing"
	"github.com/bom70489/YDP/internal/domain/query"
	healthuc "github.com/bom70489/YDP/internal/usecase/health"
)

// errorCode is the machine-readable code in error responses.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeValidationFailed errorCode = "validation_failed"
	codeListingNotFound  errorCode = "listing_not_found"
	codeEmbeddingError   errorCode = "embedding_provider_error"
	codeInternalError    errorCode = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for all exposed operations.
type Server struct {
	search        Searcher
	recommend     Recommender
	listings      ListingGetter
	history       HistoryWriter
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search Searcher,
	recommend Recommender,
	listings ListingGetter,
	history HistoryWriter,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		recommend: recommend,
		listings:  listings,
		history:   history,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidListingID, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrListingNotFound, http.StatusNotFound, codeListingNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingError),
	}
	return s
}

// Routes registers every handler on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/hybrid_search", s.HybridSearch)
	r.Post("/recommendations", s.Recommendations)
	r.Get("/property/{id}", s.GetProperty)
	r.Post("/search/save", s.SaveSearch)
	r.Post("/search/guest", s.SaveGuestSearch)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type searchResponse struct {
	Query   string              `json:"query"`
	Results []domlisting.Result `json:"results"`
}

type recommendationsRequest struct {
	SearchHistory []string `json:"searchHistory"`
	Favorites     []string `json:"favorites"`
}

type recommendationsResponse struct {
	Count   int                 `json:"count"`
	Results []domlisting.Result `json:"results"`
}

type noHistoryResponse struct {
	Message string              `json:"message"`
	Results []domlisting.Result `json:"results"`
}

type saveSearchRequest struct {
	UserID string `json:"userId"`
	Query  string `json:"query"`
}

type saveSearchResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HybridSearch handles GET /hybrid_search.
func (s *Server) HybridSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	text := strings.TrimSpace(params.Get("query"))
	if text == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query parameter is required")
		return
	}

	topK, err := optionalInt(params.Get("top_k"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "top_k must be a positive integer")
		return
	}

	q := query.New(text, topK)
	if q.MinPrice, err = optionalFloat(params.Get("min_price")); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "min_price must be a number")
		return
	}
	if q.MaxPrice, err = optionalFloat(params.Get("max_price")); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "max_price must be a number")
		return
	}
	if q.MinArea, err = optionalFloat(params.Get("min_area")); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "min_area must be a number")
		return
	}
	if q.MaxArea, err = optionalFloat(params.Get("max_area")); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "max_area must be a number")
		return
	}

	results, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Query: text, Results: results})
}

// Recommendations handles POST /recommendations.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	limit, err := optionalInt(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be a positive integer")
		return
	}

	var req recommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	results, err := s.recommend.Recommend(r.Context(), req.SearchHistory, req.Favorites, limit)
	if err != nil {
		if errors.Is(err, domain.ErrNoPersona) {
			writeJSON(w, http.StatusOK, noHistoryResponse{
				Message: "no history",
				Results: []domlisting.Result{},
			})
			return
		}
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recommendationsResponse{Count: len(results), Results: results})
}

// GetProperty handles GET /property/{id}.
func (s *Server) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := s.listings.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// SaveSearch handles POST /search/save.
func (s *Server) SaveSearch(w http.ResponseWriter, r *http.Request) {
	var req saveSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "userId is required")
		return
	}

	if err := s.history.SaveUser(r.Context(), req.UserID, req.Query); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saveSearchResponse{Success: true})
}

// SaveGuestSearch handles POST /search/guest.
func (s *Server) SaveGuestSearch(w http.ResponseWriter, r *http.Request) {
	var req saveSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.history.SaveGuest(r.Context(), req.Query); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saveSearchResponse{Success: true})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// optionalInt parses a positive integer query parameter, empty meaning unset.
func optionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("must be a positive integer")
	}
	return n, nil
}

// optionalFloat parses a numeric query parameter, empty meaning unset.
func optionalFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New("must be a number")
	}
	return &f, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidListingID,
		domain.ErrListingNotFound,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
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
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
