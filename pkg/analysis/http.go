package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lumina-health/platform/pkg/common/logger"
	"github.com/lumina-health/platform/pkg/common/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/sessions", h.handleStartAnalysis).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}", h.handleGetResults).Methods(http.MethodGet)
	r.HandleFunc("/users/{subjectId}/sessions", h.handleListSessions).Methods(http.MethodGet)
}

func (h *Handler) handleStartAnalysis(w http.ResponseWriter, r *http.Request) {
	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	sessionID, err := h.service.StartAnalysis(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Log.WithError(err).Error("failed to start analysis")
		http.Error(w, "failed to start analysis", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id": sessionID,
		"status":     models.StatusProcessing,
	})
}

func (h *Handler) handleGetResults(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	results, err := h.service.GetResults(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to load analysis results")
		http.Error(w, "failed to load analysis results", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	subjectID := mux.Vars(r)["subjectId"]
	limit := parseLimit(r, 20)

	sessions, err := h.service.ListSessions(r.Context(), subjectID, limit)
	if err != nil {
		logger.Log.WithError(err).Error("failed to list analysis sessions")
		http.Error(w, "failed to list analysis sessions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"items": sessions})
}

func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	if v, err := strconv.Atoi(raw); err == nil && v > 0 {
		return v
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
