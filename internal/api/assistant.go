package api

import (
	"encoding/json"
	"net/http"

	"github.com/harborworks/foresight/internal/assistant"
)

type AssistantHandler struct {
	assistant *assistant.Assistant
}

func NewAssistantHandler(a *assistant.Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: a}
}

type AskRequest struct {
	Question string `json:"question"`
}

// Ask forwards a question about the workspace to the language model.
// POST /api/v1/assistant/ask
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	if h.assistant == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "assistant not configured"})
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question required"})
		return
	}

	answer, err := h.assistant.Ask(r.Context(), req.Question)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, answer)
}
