package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harborworks/foresight/internal/insight"
	"github.com/harborworks/foresight/internal/store"
)

type InsightsHandler struct {
	store store.Store
}

func NewInsightsHandler(s store.Store) *InsightsHandler {
	return &InsightsHandler{store: s}
}

// Risks scores every active task and returns those at or above the risk
// threshold, highest score first.
// GET /api/v1/insights/risks
func (h *InsightsHandler) Risks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.GetActiveTasks(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	risks := insight.DetectRisks(tasks, time.Now())
	if risks == nil {
		risks = []insight.RiskEntry{}
	}
	insightRequests.WithLabelValues("risks").Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"risks":         risks,
		"tasks_scanned": len(tasks),
	})
}

// Prediction classifies how a goal is tracking against its planning interval.
// GET /api/v1/insights/goals/{id}/prediction
func (h *InsightsHandler) Prediction(w http.ResponseWriter, r *http.Request) {
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

	prediction, err := insight.PredictCompletion(goal, time.Now())
	if err != nil {
		if errors.Is(err, insight.ErrInvalidInterval) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	insightRequests.WithLabelValues("prediction").Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"goal_id":    goal.ID,
		"title":      goal.Title,
		"prediction": prediction,
	})
}

// Assignee ranks team members for an unassigned (or reassignable) task.
// GET /api/v1/insights/tasks/{id}/assignee
func (h *InsightsHandler) Assignee(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid task id"})
		return
	}

	task, err := h.store.GetTask(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if task == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}

	members, err := h.store.ListMembers(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	existing, err := h.store.GetActiveTasks(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	now := time.Now()
	suggested, err := insight.SuggestAssignee(task, members, existing, now)
	if err != nil {
		if errors.Is(err, insight.ErrNoMembers) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	insightRequests.WithLabelValues("assignee").Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"task_id":    task.ID,
		"suggested":  suggested,
		"candidates": insight.RankAssignees(task, members, existing, now),
	})
}

// Workload reports the per-member active task spread and whether it is
// uneven enough to act on.
// GET /api/v1/insights/workload
func (h *InsightsHandler) Workload(w http.ResponseWriter, r *http.Request) {
	members, err := h.store.ListMembers(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	tasks, err := h.store.GetActiveTasks(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	suggestion, err := insight.SuggestRebalancing(members, tasks)
	if err != nil {
		if errors.Is(err, insight.ErrNoMembers) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	insightRequests.WithLabelValues("workload").Inc()
	writeJSON(w, http.StatusOK, suggestion)
}
