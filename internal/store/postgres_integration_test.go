//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		// Truncate in dependency order
		_, _ = s.pool.Exec(ctx, "TRUNCATE notifications CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE plan_tasks CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE plan_goals CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE team_members CASCADE")
		s.Close()
	})

	return s
}

func TestCreateAndGetTask(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	due := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	progress := 40
	hours := 12.0
	task := &Task{
		Title:          "Integration Test Task",
		Description:    "Verify create and get round-trip",
		Status:         StatusPending,
		Priority:       PriorityHigh,
		DueDate:        &due,
		Progress:       &progress,
		EstimatedHours: &hours,
		Tags:           []string{"backend", "sql"},
	}
	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.ID == uuid.Nil {
		t.Fatal("expected task ID to be set")
	}

	got, err := s.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected task, got nil")
	}
	if got.Title != task.Title {
		t.Errorf("title mismatch: %s vs %s", got.Title, task.Title)
	}
	if got.Progress == nil || *got.Progress != 40 {
		t.Errorf("progress mismatch: %v", got.Progress)
	}
	if len(got.Tags) != 2 {
		t.Errorf("expected 2 tags, got %d", len(got.Tags))
	}
}

func TestGetOverdueTasks(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	overdue := &Task{Title: "Overdue", Status: StatusPending, Priority: PriorityMedium, DueDate: &past}
	onTime := &Task{Title: "On time", Status: StatusPending, Priority: PriorityMedium, DueDate: &future}
	done := &Task{Title: "Done late", Status: StatusCompleted, Priority: PriorityMedium, DueDate: &past}
	for _, task := range []*Task{overdue, onTime, done} {
		if err := s.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	got, err := s.GetOverdueTasks(ctx, now)
	if err != nil {
		t.Fatalf("GetOverdueTasks failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 overdue task, got %d", len(got))
	}
	if got[0].Title != "Overdue" {
		t.Errorf("expected overdue task, got %s", got[0].Title)
	}
}

func TestNotificationDedupe(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	member := &Member{Name: "Avery", Skills: []string{"go"}}
	if err := s.CreateMember(ctx, member); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}
	task := &Task{Title: "Sweep target", Status: StatusPending, Priority: PriorityLow, AssignedTo: &member.ID}
	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	n := &Notification{
		MemberID: member.ID,
		TaskID:   task.ID,
		Kind:     NotifyTaskOverdue,
		Message:  "Task \"Sweep target\" is overdue",
	}
	if err := s.CreateNotification(ctx, n); err != nil {
		t.Fatalf("CreateNotification failed: %v", err)
	}

	recent, err := s.HasRecentNotification(ctx, task.ID, NotifyTaskOverdue, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("HasRecentNotification failed: %v", err)
	}
	if !recent {
		t.Error("expected recent notification to be found")
	}

	recent, err = s.HasRecentNotification(ctx, task.ID, NotifyTaskDueSoon, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("HasRecentNotification failed: %v", err)
	}
	if recent {
		t.Error("expected no due-soon notification")
	}

	list, err := s.ListNotifications(ctx, member.ID, true)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 unread notification, got %d", len(list))
	}

	if err := s.MarkNotificationRead(ctx, list[0].ID); err != nil {
		t.Fatalf("MarkNotificationRead failed: %v", err)
	}
	list, err = s.ListNotifications(ctx, member.ID, true)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected 0 unread after mark-read, got %d", len(list))
	}
}
