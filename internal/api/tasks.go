package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harborworks/foresight/internal/events"
	"github.com/harborworks/foresight/internal/store"
)

type TasksHandler struct {
	store  store.Store
	events events.Client
}

func NewTasksHandler(s store.Store, ev events.Client) *TasksHandler {
	return &TasksHandler{store: s, events: ev}
}

type CreateTaskRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Priority       string     `json:"priority,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	AssignedTo     string     `json:"assigned_to,omitempty"`
	DependsOn      []string   `json:"depends_on,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	GoalID         string     `json:"goal_id,omitempty"`
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title required"})
		return
	}

	task := &store.Task{
		Title:          req.Title,
		Description:    req.Description,
		Status:         store.StatusPending,
		Priority:       store.Priority(req.Priority),
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		Tags:           req.Tags,
	}
	if task.Priority == "" {
		task.Priority = store.PriorityMedium
	}
	if !validPriority(task.Priority) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid priority"})
		return
	}
	if req.AssignedTo != "" {
		mid, err := uuid.Parse(req.AssignedTo)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid assigned_to"})
			return
		}
		task.AssignedTo = &mid
	}
	if req.GoalID != "" {
		gid, err := uuid.Parse(req.GoalID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid goal_id"})
			return
		}
		task.GoalID = &gid
	}
	for _, dep := range req.DependsOn {
		did, err := uuid.Parse(dep)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid depends_on id"})
			return
		}
		task.DependsOn = append(task.DependsOn, did)
	}

	if err := h.store.CreateTask(r.Context(), task); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		dueDate := ""
		if task.DueDate != nil {
			dueDate = task.DueDate.Format(time.RFC3339)
		}
		_ = h.events.Publish(events.SubjectTaskCreated(task.ID.String()), events.TaskCreatedEvent{
			TaskID:   task.ID.String(),
			Title:    task.Title,
			Priority: string(task.Priority),
			DueDate:  dueDate,
		})
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter store.TaskFilter
	if s := r.URL.Query().Get("status"); s != "" {
		status := store.TaskStatus(s)
		filter.Status = &status
	}
	if a := r.URL.Query().Get("assigned_to"); a != "" {
		mid, err := uuid.Parse(a)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid assigned_to"})
			return
		}
		filter.AssignedTo = &mid
	}
	if g := r.URL.Query().Get("goal_id"); g != "" {
		gid, err := uuid.Parse(g)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid goal_id"})
			return
		}
		filter.GoalID = &gid
	}

	tasks, err := h.store.ListTasks(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if tasks == nil {
		tasks = []*store.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, task)
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid task id"})
		return
	}

	task, err := h.store.GetTask(r.Context(), id)
	if err != nil || task == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if v, ok := patch["title"].(string); ok && v != "" {
		task.Title = v
	}
	if v, ok := patch["description"].(string); ok {
		task.Description = v
	}
	if v, ok := patch["priority"].(string); ok {
		p := store.Priority(v)
		if !validPriority(p) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid priority"})
			return
		}
		task.Priority = p
	}
	if v, ok := patch["status"].(string); ok {
		status := store.TaskStatus(v)
		switch status {
		case store.StatusPending, store.StatusInProgress:
			task.Status = status
			task.CompletedAt = nil
		case store.StatusCancelled:
			task.Status = status
			now := time.Now()
			task.CompletedAt = &now
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status transition"})
			return
		}
	}
	if v, ok := patch["due_date"].(string); ok {
		due, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid due_date"})
			return
		}
		task.DueDate = &due
	}
	if v, ok := patch["assigned_to"].(string); ok {
		if v == "" {
			task.AssignedTo = nil
		} else {
			mid, err := uuid.Parse(v)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid assigned_to"})
				return
			}
			task.AssignedTo = &mid
		}
	}

	if err := h.store.UpdateTask(r.Context(), task); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectTaskUpdated(task.ID.String()), map[string]interface{}{
			"task_id": task.ID.String(),
			"status":  string(task.Status),
		})
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid task id"})
		return
	}

	if err := h.store.DeleteTask(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *TasksHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid task id"})
		return
	}

	task, err := h.store.GetTask(r.Context(), id)
	if err != nil || task == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}

	now := time.Now()
	full := 100
	task.Status = store.StatusCompleted
	task.Progress = &full
	task.CompletedAt = &now

	if err := h.store.UpdateTask(r.Context(), task); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectTaskCompleted(task.ID.String()), events.TaskCompletedEvent{
			TaskID:      task.ID.String(),
			CompletedAt: now,
		})
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TasksHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid task id"})
		return
	}

	task, err := h.store.GetTask(r.Context(), id)
	if err != nil || task == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}

	var body struct {
		Progress *int `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Progress == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "progress required"})
		return
	}
	if *body.Progress < 0 || *body.Progress > 100 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "progress must be 0-100"})
		return
	}

	task.Progress = body.Progress
	if task.Status == store.StatusPending && *body.Progress > 0 {
		task.Status = store.StatusInProgress
	}

	if err := h.store.UpdateTask(r.Context(), task); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectTaskUpdated(task.ID.String()), map[string]interface{}{
			"task_id":  task.ID.String(),
			"progress": *body.Progress,
		})
	}
	writeJSON(w, http.StatusOK, task)
}

func validPriority(p store.Priority) bool {
	switch p {
	case store.PriorityLow, store.PriorityMedium, store.PriorityHigh:
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
