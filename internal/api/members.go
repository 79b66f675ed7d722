package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harborworks/foresight/internal/store"
)

type MembersHandler struct {
	store store.Store
}

func NewMembersHandler(s store.Store) *MembersHandler {
	return &MembersHandler{store: s}
}

type CreateMemberRequest struct {
	Name   string   `json:"name"`
	Email  string   `json:"email,omitempty"`
	Skills []string `json:"skills,omitempty"`
}

func (h *MembersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required"})
		return
	}

	member := &store.Member{
		Name:   req.Name,
		Email:  req.Email,
		Skills: req.Skills,
	}
	if err := h.store.CreateMember(r.Context(), member); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (h *MembersHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.store.ListMembers(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if members == nil {
		members = []*store.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *MembersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid member id"})
		return
	}

	member, err := h.store.GetMember(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if member == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "member not found"})
		return
	}
	writeJSON(w, http.StatusOK, member)
}
