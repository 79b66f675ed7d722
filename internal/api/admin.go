package api

import (
	"net/http"
	"time"

	"github.com/harborworks/foresight/internal/notify"
	"github.com/harborworks/foresight/internal/store"
)

type AdminHandler struct {
	store   store.Store
	sweeper *notify.Sweeper
}

func NewAdminHandler(s store.Store, sweeper *notify.Sweeper) *AdminHandler {
	return &AdminHandler{store: s, sweeper: sweeper}
}

type StatsResponse struct {
	ActiveTasks  int `json:"active_tasks"`
	OverdueTasks int `json:"overdue_tasks"`
	Goals        int `json:"goals"`
	Members      int `json:"members"`
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	active, err := h.store.GetActiveTasks(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	overdue, err := h.store.GetOverdueTasks(r.Context(), now)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	goals, err := h.store.ListGoals(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	members, err := h.store.ListMembers(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		ActiveTasks:  len(active),
		OverdueTasks: len(overdue),
		Goals:        len(goals),
		Members:      len(members),
	})
}

// Sweep triggers a due-date sweep outside the cron schedule.
// POST /api/v1/admin/sweep
func (h *AdminHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	if h.sweeper == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "sweeper not running"})
		return
	}
	result, err := h.sweeper.Sweep(r.Context(), time.Now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}
