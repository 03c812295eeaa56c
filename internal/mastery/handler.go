package mastery

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mathprep/backend/internal/catalog"
	"github.com/mathprep/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// RegisterRoutes registers mastery endpoints on the protected subrouter.
func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/attempts", h.RecordAttempt).Methods("POST")
	protected.HandleFunc("/mastery", h.GetProbabilities).Methods("GET")
	protected.HandleFunc("/mastery/stats", h.GetStats).Methods("GET")
	protected.HandleFunc("/mastery/score", h.GetExpectedScore).Methods("GET")
	protected.HandleFunc("/mastery/plan", h.GetPlan).Methods("GET")
	protected.HandleFunc("/mastery/snapshot", h.GetSnapshot).Methods("GET")
	protected.HandleFunc("/mastery/narrative", h.GetNarrative).Methods("GET")
	protected.HandleFunc("/admin/mastery/sweep", h.RunSweep).Methods("POST")
}

// courseID validates the course_id query parameter.
func courseID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("course_id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "course_id is required"})
		return "", false
	}
	if _, err := catalog.Load(id); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "unknown course_id"})
		return "", false
	}
	return id, true
}

func (h *Handler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.RecordAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.CourseID == "" || req.QuestionID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "course_id and question_id are required"})
		return
	}
	if _, err := catalog.Load(req.CourseID); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "unknown course_id"})
		return
	}
	if req.DurationSeconds < 0 {
		req.DurationSeconds = 0
	}

	ev, err := h.service.RecordAttempt(userID, req)
	if err != nil {
		log.Printf("[handler] RecordAttempt error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record attempt"})
		return
	}

	writeJSON(w, http.StatusCreated, ev)
}

func (h *Handler) GetProbabilities(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	course, ok := courseID(w, r)
	if !ok {
		return
	}

	probs, err := h.service.CurrentProbabilities(r.Context(), userID, course)
	if err != nil {
		log.Printf("[handler] GetProbabilities error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get mastery"})
		return
	}
	if probs == nil {
		probs = []models.ProbabilityEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"raw_data": probs})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	course, ok := courseID(w, r)
	if !ok {
		return
	}

	stats, err := h.service.ActivityStats(userID, course)
	if err != nil {
		log.Printf("[handler] GetStats error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get stats"})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetExpectedScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	course, ok := courseID(w, r)
	if !ok {
		return
	}

	score, err := h.service.CurrentExpectedScore(r.Context(), userID, course)
	if err != nil {
		log.Printf("[handler] GetExpectedScore error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to estimate score"})
		return
	}

	// score stays null when there is no FIPI-task data yet
	writeJSON(w, http.StatusOK, map[string]interface{}{"expected_score": score})
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	course, ok := courseID(w, r)
	if !ok {
		return
	}

	plan, err := h.service.CurrentPlan(r.Context(), userID, course)
	if err != nil {
		log.Printf("[handler] GetPlan error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build plan"})
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	course, ok := courseID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.LatestSnapshotWithDiff(userID, course)
	if err != nil {
		log.Printf("[handler] GetSnapshot error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get snapshot"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetNarrative(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	course, ok := courseID(w, r)
	if !ok {
		return
	}

	n, err := h.service.LatestNarrative(userID, course)
	if err != nil {
		log.Printf("[handler] GetNarrative error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get narrative"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"narrative": n})
}

func (h *Handler) RunSweep(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserID(r); !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SweepRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req) // optional body
	}

	result, err := h.service.RunSweep(r.Context(), req)
	if err != nil {
		log.Printf("[handler] RunSweep error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Sweep failed"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
