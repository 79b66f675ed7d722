package events

import "time"

type TaskCreatedEvent struct {
	TaskID   string `json:"task_id"`
	Title    string `json:"title"`
	Priority string `json:"priority"`
	DueDate  string `json:"due_date,omitempty"`
}

type TaskCompletedEvent struct {
	TaskID      string    `json:"task_id"`
	CompletedAt time.Time `json:"completed_at"`
}

type NotificationCreatedEvent struct {
	NotificationID string `json:"notification_id"`
	MemberID       string `json:"member_id"`
	TaskID         string `json:"task_id"`
	Kind           string `json:"kind"`
	Message        string `json:"message"`
}

type RiskSweepEvent struct {
	SweptAt      time.Time `json:"swept_at"`
	OverdueCount int       `json:"overdue_count"`
	DueSoonCount int       `json:"due_soon_count"`
	Notified     int       `json:"notified"`
}
