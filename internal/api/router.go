package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harborworks/foresight/internal/assistant"
	"github.com/harborworks/foresight/internal/events"
	"github.com/harborworks/foresight/internal/notify"
	"github.com/harborworks/foresight/internal/store"
)

func NewRouter(s store.Store, ev events.Client, asst *assistant.Assistant, sweeper *notify.Sweeper, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	tasks := NewTasksHandler(s, ev)
	goals := NewGoalsHandler(s)
	members := NewMembersHandler(s)
	notifications := NewNotificationsHandler(s)
	insights := NewInsightsHandler(s)
	ask := NewAssistantHandler(asst)
	admin := NewAdminHandler(s, sweeper)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(UserIDMiddleware)

		r.Post("/tasks", tasks.Create)
		r.Get("/tasks", tasks.List)
		r.Get("/tasks/{id}", tasks.Get)
		r.Patch("/tasks/{id}", tasks.Update)
		r.Delete("/tasks/{id}", tasks.Delete)
		r.Post("/tasks/{id}/complete", tasks.Complete)
		r.Post("/tasks/{id}/progress", tasks.Progress)

		r.Post("/goals", goals.Create)
		r.Get("/goals", goals.List)
		r.Get("/goals/{id}", goals.Get)
		r.Patch("/goals/{id}", goals.Update)

		r.Post("/members", members.Create)
		r.Get("/members", members.List)
		r.Get("/members/{id}", members.Get)

		r.Get("/notifications", notifications.List)
		r.Post("/notifications/{id}/read", notifications.MarkRead)

		r.Get("/insights/risks", insights.Risks)
		r.Get("/insights/goals/{id}/prediction", insights.Prediction)
		r.Get("/insights/tasks/{id}/assignee", insights.Assignee)
		r.Get("/insights/workload", insights.Workload)

		r.Post("/assistant/ask", ask.Ask)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/admin/stats", admin.Stats)
			r.Post("/admin/sweep", admin.Sweep)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
