package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is one weekly task in the quarterly→monthly→weekly hierarchy.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`

	// Optional planning fields. Nil means "not set", never a silent zero.
	DueDate        *time.Time `json:"due_date,omitempty"`
	Progress       *int       `json:"progress,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	AssignedTo     *uuid.UUID `json:"assigned_to,omitempty"`

	DependsOn []uuid.UUID `json:"depends_on,omitempty"`
	Tags      []string    `json:"tags,omitempty"`
	GoalID    *uuid.UUID  `json:"goal_id,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Active reports whether the task still counts toward workload.
func (t *Task) Active() bool {
	return t.Status == StatusPending || t.Status == StatusInProgress
}

// ProgressValue returns the progress percentage, defaulting to 0 only when
// the field is absent.
func (t *Task) ProgressValue() int {
	if t.Progress == nil {
		return 0
	}
	return *t.Progress
}

// Goal is a quarterly goal (or monthly plan) with a fixed planning interval.
type Goal struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Progress    int       `json:"progress"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Member is a team member who can be assigned tasks.
type Member struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Skills    []string  `json:"skills,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationKind string

const (
	NotifyTaskOverdue NotificationKind = "task_overdue"
	NotifyTaskDueSoon NotificationKind = "task_due_soon"
)

// Notification is one row written by the due-date sweep.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	MemberID  uuid.UUID        `json:"member_id"`
	TaskID    uuid.UUID        `json:"task_id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type TaskFilter struct {
	Status     *TaskStatus
	AssignedTo *uuid.UUID
	GoalID     *uuid.UUID
	Limit      int
	Offset     int
}

type Store interface {
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id uuid.UUID) error

	GetActiveTasks(ctx context.Context) ([]*Task, error)
	GetActiveTasksForMember(ctx context.Context, memberID uuid.UUID) ([]*Task, error)
	GetOverdueTasks(ctx context.Context, now time.Time) ([]*Task, error)
	GetTasksDueBetween(ctx context.Context, from, until time.Time) ([]*Task, error)

	CreateGoal(ctx context.Context, goal *Goal) error
	GetGoal(ctx context.Context, id uuid.UUID) (*Goal, error)
	ListGoals(ctx context.Context) ([]*Goal, error)
	UpdateGoal(ctx context.Context, goal *Goal) error

	CreateMember(ctx context.Context, member *Member) error
	GetMember(ctx context.Context, id uuid.UUID) (*Member, error)
	ListMembers(ctx context.Context) ([]*Member, error)

	CreateNotification(ctx context.Context, n *Notification) error
	ListNotifications(ctx context.Context, memberID uuid.UUID, unreadOnly bool) ([]*Notification, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
	HasRecentNotification(ctx context.Context, taskID uuid.UUID, kind NotificationKind, since time.Time) (bool, error)

	Close() error
}
