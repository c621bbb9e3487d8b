package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// NavigateRequest is the body for POST /api/v1/catalog/navigate.
type NavigateRequest struct {
	Direction string `json:"direction"`
	Step      int    `json:"step"`
}

// ActiveRequest is the body for PUT /api/v1/catalog/active.
type ActiveRequest struct {
	Index int `json:"index"`
}

// ActiveResponse is the response for GET /api/v1/catalog/active.
type ActiveResponse struct {
	ActiveIndex int `json:"active_index"`
}

// Handler serves the catalog API consumed by presentation adapters.
type Handler struct {
	controller *Controller
	logger     *zap.Logger
}

// NewHandler creates a new catalog API handler.
func NewHandler(controller *Controller, logger *zap.Logger) *Handler {
	return &Handler{controller: controller, logger: logger}
}

// RegisterRoutes implements server.RouteRegistrar.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/catalog/services", h.handleServices)
	mux.HandleFunc("POST /api/v1/catalog/navigate", h.handleNavigate)
	mux.HandleFunc("GET /api/v1/catalog/active", h.handleGetActive)
	mux.HandleFunc("PUT /api/v1/catalog/active", h.handleSetActive)
}

// handleServices refreshes the catalog with the filters given in the
// query string and returns the resulting snapshot. Unrecognized filter
// values are treated as unconstrained rather than rejected; ?refresh=true
// bypasses the cache.
func (h *Handler) handleServices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	spec := FilterSpec{
		Category:   q.Get("category"),
		Frequency:  q.Get("frequency"),
		Difficulty: q.Get("difficulty"),
		SearchText: q.Get("q"),
	}
	if v := q.Get("min_reviews"); v != "" {
		// Malformed filter values never reject the request.
		if n, err := strconv.Atoi(v); err == nil {
			spec.MinimumReviews = n
		}
	}

	var snap Snapshot
	if q.Get("refresh") == "true" {
		snap = h.controller.ForceRefresh(r.Context(), spec)
	} else {
		snap = h.controller.Refresh(r.Context(), spec)
	}

	writeJSON(w, http.StatusOK, snap)
}

// handleNavigate moves the active selection relative to its position.
func (h *Handler) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	dir := Direction(req.Direction)
	if dir != DirectionPrev && dir != DirectionNext {
		writeError(w, http.StatusBadRequest, `direction must be "prev" or "next"`)
		return
	}

	writeJSON(w, http.StatusOK, h.controller.Navigate(r.Context(), dir, req.Step))
}

func (h *Handler) handleGetActive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ActiveResponse{ActiveIndex: h.controller.ActiveIndex()})
}

// handleSetActive sets the active index directly (list entry clicked).
// Out-of-range indexes are clamped, not rejected.
func (h *Handler) handleSetActive(w http.ResponseWriter, r *http.Request) {
	var req ActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	writeJSON(w, http.StatusOK, h.controller.SetActiveIndex(req.Index))
}

// -- helpers --

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	slug := strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "-")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://lustraclean.fr/problems/" + slug,
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}
