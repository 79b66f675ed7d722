package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harborworks/foresight/internal/store"
)

type NotificationsHandler struct {
	store store.Store
}

func NewNotificationsHandler(s store.Store) *NotificationsHandler {
	return &NotificationsHandler{store: s}
}

// List returns the calling member's notifications, newest first.
// GET /api/v1/notifications?unread=true
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(r.Header.Get("X-User-ID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "X-User-ID must be a member id"})
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications, err := h.store.ListNotifications(r.Context(), memberID, unreadOnly)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if notifications == nil {
		notifications = []*store.Notification{}
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid notification id"})
		return
	}

	if err := h.store.MarkNotificationRead(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
