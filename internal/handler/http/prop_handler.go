package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/prop-probability-service/internal/models"
	"github.com/cypherlabdev/prop-probability-service/internal/service"
)

const (
	maxBodyBytes  = 1 << 20
	maxParlayLegs = 20

	// statusClientClosedRequest is the nginx convention for a client that
	// went away before the response was written
	statusClientClosedRequest = 499
)

// parlayLegsRule bounds the legs of one parlay
var parlayLegsRule = "required,min=1,max=" + strconv.Itoa(maxParlayLegs)

// PropHandler serves leg, parlay and player endpoints
type PropHandler struct {
	legs     service.LegScorer
	parlays  service.ParlayScorer
	players  service.TrendReader
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewPropHandler creates a new prop HTTP handler
func NewPropHandler(
	legs service.LegScorer,
	parlays service.ParlayScorer,
	players service.TrendReader,
	logger zerolog.Logger,
) *PropHandler {
	return &PropHandler{
		legs:     legs,
		parlays:  parlays,
		players:  players,
		validate: validator.New(),
		logger:   logger.With().Str("component", "prop_handler").Logger(),
	}
}

// ParlayRequest is the body of POST /api/v1/parlays/evaluate
type ParlayRequest struct {
	Legs []models.LegRequest `json:"legs"`
}

// CompareRequest is the body of POST /api/v1/parlays/compare
type CompareRequest struct {
	ParlayA []models.LegRequest `json:"parlay_a"`
	ParlayB []models.LegRequest `json:"parlay_b"`
}

// RegisterRoutes registers HTTP routes with the provided router
func (h *PropHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/legs/evaluate", h.handleEvaluateLeg)
		r.Post("/parlays/evaluate", h.handleEvaluateParlay)
		r.Post("/parlays/compare", h.handleCompareParlays)
		r.Get("/players/{player}/summary", h.handlePlayerSummary)
		r.Get("/players/{player}/trend", h.handlePlayerTrend)
	})
}

// handleEvaluateLeg handles POST /api/v1/legs/evaluate
func (h *PropHandler) handleEvaluateLeg(w http.ResponseWriter, r *http.Request) {
	var req models.LegRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.legs.EvaluateLeg(r.Context(), req)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, result)
}

// handleEvaluateParlay handles POST /api/v1/parlays/evaluate
func (h *PropHandler) handleEvaluateParlay(w http.ResponseWriter, r *http.Request) {
	var req ParlayRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.checkLegs(req.Legs); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "legs: between 1 and "+strconv.Itoa(maxParlayLegs)+" legs required")
		return
	}

	result, err := h.parlays.ComposeParlay(r.Context(), req.Legs)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, result)
}

// handleCompareParlays handles POST /api/v1/parlays/compare
func (h *PropHandler) handleCompareParlays(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.checkLegs(req.ParlayA, req.ParlayB); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "parlay_a and parlay_b: between 1 and "+strconv.Itoa(maxParlayLegs)+" legs required")
		return
	}

	result, err := h.parlays.CompareParlays(r.Context(), req.ParlayA, req.ParlayB)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, result)
}

// handlePlayerSummary handles GET /api/v1/players/{player}/summary?stat=&last_n=
func (h *PropHandler) handlePlayerSummary(w http.ResponseWriter, r *http.Request) {
	player, stat, lastN, ok := h.playerQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.players.Summarize(r.Context(), player, stat, models.LastGames(lastN))
	if err != nil {
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, summary)
}

// handlePlayerTrend handles GET /api/v1/players/{player}/trend?stat=&last_n=
func (h *PropHandler) handlePlayerTrend(w http.ResponseWriter, r *http.Request) {
	player, stat, lastN, ok := h.playerQuery(w, r)
	if !ok {
		return
	}

	trend, err := h.players.CompareRecent(r.Context(), player, stat, lastN)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, trend)
}

// playerQuery parses the player path parameter and the stat/last_n query.
// stat defaults to points, last_n to 0 (full history).
func (h *PropHandler) playerQuery(w http.ResponseWriter, r *http.Request) (string, models.StatType, int, bool) {
	player := chi.URLParam(r, "player")
	if player == "" {
		h.errorResponse(w, http.StatusBadRequest, "player is required")
		return "", "", 0, false
	}

	rawStat := r.URL.Query().Get("stat")
	if rawStat == "" {
		rawStat = string(models.StatPoints)
	}
	stat, err := models.ParseStatType(rawStat)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return "", "", 0, false
	}

	lastN := 0
	if raw := r.URL.Query().Get("last_n"); raw != "" {
		lastN, err = strconv.Atoi(raw)
		if err != nil || lastN < 0 {
			h.errorResponse(w, http.StatusBadRequest, "last_n must be a non-negative integer")
			return "", "", 0, false
		}
	}

	return player, stat, lastN, true
}

// checkLegs validates each parlay against parlayLegsRule
func (h *PropHandler) checkLegs(parlays ...[]models.LegRequest) error {
	for _, legs := range parlays {
		if err := h.validate.Var(legs, parlayLegsRule); err != nil {
			return err
		}
	}
	return nil
}

// decode reads a JSON body into dst, writing a 400 on failure
func (h *PropHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// serviceError maps engine errors onto HTTP statuses
func (h *PropHandler) serviceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("request failed")
		h.errorResponse(w, status, "internal error")
		return
	}
	h.logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	h.errorResponse(w, status, err.Error())
}

func statusFor(err error) int {
	var parlayErr *models.ParlayError
	switch {
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.As(err, &parlayErr):
		if parlayErr.AllNotFound() {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	case errors.Is(err, models.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidRequest),
		errors.Is(err, models.ErrInvalidStatType),
		errors.Is(err, models.ErrInvalidWindow):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// jsonResponse writes a JSON response
func (h *PropHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *PropHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
