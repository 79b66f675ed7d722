package notify

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/harborworks/foresight/internal/config"
	"github.com/harborworks/foresight/internal/events"
	"github.com/harborworks/foresight/internal/store"
)

// Sweeper periodically scans for overdue and due-soon tasks and writes a
// notification row for each assignee, deduplicated within the configured
// window.
type Sweeper struct {
	store    store.Store
	events   events.Client
	cfg      *config.Config
	logger   *slog.Logger
	schedule cron.Schedule

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(s store.Store, ev events.Client, cfg *config.Config, logger *slog.Logger) (*Sweeper, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cfg.Notify.Schedule)
	if err != nil {
		return nil, fmt.Errorf("parse notify schedule: %w", err)
	}
	return &Sweeper{
		store:    s,
		events:   ev,
		cfg:      cfg,
		logger:   logger,
		schedule: schedule,
		stopCh:   make(chan struct{}),
	}, nil
}

func (s *Sweeper) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.loop(ctx)
}

func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *Sweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	for {
		now := time.Now()
		next := s.schedule.Next(now)
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-s.stopCh:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			result, err := s.Sweep(ctx, time.Now())
			if err != nil {
				s.logger.Error("notification sweep failed", "error", err)
				continue
			}
			s.logger.Info("notification sweep complete",
				"overdue", result.Overdue, "due_soon", result.DueSoon,
				"notified", result.Notified, "skipped", result.Skipped)
		}
	}
}

// SweepResult summarizes one pass over the due-date horizon.
type SweepResult struct {
	Overdue  int `json:"overdue"`
	DueSoon  int `json:"due_soon"`
	Notified int `json:"notified"`
	Skipped  int `json:"skipped"`
}

// Sweep runs a single scan at the given reference time. Per-task failures
// are logged and counted as skipped so one bad row cannot abort the pass.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (SweepResult, error) {
	var result SweepResult

	overdue, err := s.store.GetOverdueTasks(ctx, now)
	if err != nil {
		return result, fmt.Errorf("scan overdue tasks: %w", err)
	}
	result.Overdue = len(overdue)

	dueSoon, err := s.store.GetTasksDueBetween(ctx, now, now.Add(s.cfg.DueSoonWindow()))
	if err != nil {
		return result, fmt.Errorf("scan due-soon tasks: %w", err)
	}
	result.DueSoon = len(dueSoon)

	for _, task := range overdue {
		s.notifyTask(ctx, task, store.NotifyTaskOverdue, now, &result)
	}
	for _, task := range dueSoon {
		s.notifyTask(ctx, task, store.NotifyTaskDueSoon, now, &result)
	}

	sweepsTotal.Inc()
	if s.events != nil {
		_ = s.events.Publish(events.SubjectRiskSweep, events.RiskSweepEvent{
			SweptAt:      now,
			OverdueCount: result.Overdue,
			DueSoonCount: result.DueSoon,
			Notified:     result.Notified,
		})
	}
	return result, nil
}

func (s *Sweeper) notifyTask(ctx context.Context, task *store.Task, kind store.NotificationKind, now time.Time, result *SweepResult) {
	if task.AssignedTo == nil {
		result.Skipped++
		return
	}

	recent, err := s.store.HasRecentNotification(ctx, task.ID, kind, now.Add(-s.cfg.DedupeWindow()))
	if err != nil {
		s.logger.Warn("dedupe lookup failed", "task_id", task.ID, "error", err)
		result.Skipped++
		return
	}
	if recent {
		result.Skipped++
		return
	}

	n := &store.Notification{
		MemberID: *task.AssignedTo,
		TaskID:   task.ID,
		Kind:     kind,
		Message:  Message(task, kind, now),
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		s.logger.Warn("failed to create notification", "task_id", task.ID, "error", err)
		result.Skipped++
		return
	}
	result.Notified++
	notificationsCreated.WithLabelValues(string(kind)).Inc()

	if s.events != nil {
		_ = s.events.Publish(events.SubjectNotificationCreated(n.ID.String()), events.NotificationCreatedEvent{
			NotificationID: n.ID.String(),
			MemberID:       n.MemberID.String(),
			TaskID:         n.TaskID.String(),
			Kind:           string(kind),
			Message:        n.Message,
		})
		subject := events.SubjectTaskOverdue(task.ID.String())
		if kind == store.NotifyTaskDueSoon {
			subject = events.SubjectTaskDueSoon(task.ID.String())
		}
		_ = s.events.Publish(subject, map[string]interface{}{
			"task_id": task.ID.String(),
			"title":   task.Title,
		})
	}
}

// Message renders the notification text for a task and kind.
func Message(task *store.Task, kind store.NotificationKind, now time.Time) string {
	if kind == store.NotifyTaskOverdue && task.DueDate != nil {
		days := int(math.Ceil(now.Sub(*task.DueDate).Hours() / 24))
		return fmt.Sprintf("Task %q is overdue by %d day(s)", task.Title, days)
	}
	if task.DueDate != nil {
		return fmt.Sprintf("Task %q is due on %s", task.Title, task.DueDate.Format("Mon Jan 2"))
	}
	return fmt.Sprintf("Task %q needs attention", task.Title)
}
