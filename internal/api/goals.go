package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harborworks/foresight/internal/store"
)

type GoalsHandler struct {
	store store.Store
}

func NewGoalsHandler(s store.Store) *GoalsHandler {
	return &GoalsHandler{store: s}
}

type CreateGoalRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"due_date"`
}

func (h *GoalsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Title == "" || req.DueDate.IsZero() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title and due_date required"})
		return
	}

	goal := &store.Goal{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if err := h.store.CreateGoal(r.Context(), goal); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalsHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.store.ListGoals(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if goals == nil {
		goals = []*store.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid goal id"})
		return
	}

	goal, err := h.store.GetGoal(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if goal == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "goal not found"})
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid goal id"})
		return
	}

	goal, err := h.store.GetGoal(r.Context(), id)
	if err != nil || goal == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "goal not found"})
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if v, ok := patch["title"].(string); ok && v != "" {
		goal.Title = v
	}
	if v, ok := patch["description"].(string); ok {
		goal.Description = v
	}
	if v, ok := patch["progress"].(float64); ok {
		p := int(v)
		if p < 0 || p > 100 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "progress must be 0-100"})
			return
		}
		goal.Progress = p
	}
	if v, ok := patch["due_date"].(string); ok {
		due, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid due_date"})
			return
		}
		goal.DueDate = due
	}

	if err := h.store.UpdateGoal(r.Context(), goal); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, goal)
}
