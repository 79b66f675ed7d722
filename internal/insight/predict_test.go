package insight

import (
	"errors"
	"testing"
	"time"

	"github.com/harborworks/foresight/internal/store"
)

func TestPredictAheadOfSchedule(t *testing.T) {
	goal := &store.Goal{
		Title:     "Q1 launch",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Progress:  80,
	}
	now := time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC)

	p, err := PredictCompletion(goal, now)
	if err != nil {
		t.Fatalf("PredictCompletion failed: %v", err)
	}
	if p.Status != ScheduleAhead {
		t.Errorf("expected ahead_of_schedule, got %s", p.Status)
	}
	if p.Confidence != 90 {
		t.Errorf("expected confidence 90, got %d", p.Confidence)
	}
	if p.Metrics.ExpectedProgress != 50 {
		t.Errorf("expected expected_progress 50, got %d", p.Metrics.ExpectedProgress)
	}
	if p.Metrics.ProgressDelta != 30 {
		t.Errorf("expected delta 30, got %d", p.Metrics.ProgressDelta)
	}
	if p.Metrics.DaysRemaining != 15 {
		t.Errorf("expected 15 days remaining, got %d", p.Metrics.DaysRemaining)
	}
}

func TestPredictClassifications(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	due := created.AddDate(0, 0, 100) // 100-day interval, 1 day = 1%
	now := created.AddDate(0, 0, 50)  // expected progress 50

	tests := []struct {
		name       string
		progress   int
		want       ScheduleStatus
		confidence int
	}{
		{"well ahead", 70, ScheduleAhead, 90},
		{"exactly on pace", 50, ScheduleOnTrack, 80},
		{"slightly behind", 45, ScheduleOnTrack, 80},
		{"at risk", 30, ScheduleAtRisk, 70},
		{"far behind", 10, ScheduleBehind, 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := &store.Goal{CreatedAt: created, DueDate: due, Progress: tt.progress}
			p, err := PredictCompletion(goal, now)
			if err != nil {
				t.Fatalf("PredictCompletion failed: %v", err)
			}
			if p.Status != tt.want {
				t.Errorf("expected %s, got %s (delta=%d)", tt.want, p.Status, p.Metrics.ProgressDelta)
			}
			if p.Confidence != tt.confidence {
				t.Errorf("expected confidence %d, got %d", tt.confidence, p.Confidence)
			}
		})
	}
}

func TestPredictOverdueWinsFirst(t *testing.T) {
	goal := &store.Goal{
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Progress:  95, // would be ahead if not past due
	}
	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	p, err := PredictCompletion(goal, now)
	if err != nil {
		t.Fatalf("PredictCompletion failed: %v", err)
	}
	if p.Status != ScheduleOverdue {
		t.Errorf("expected overdue, got %s", p.Status)
	}
	if p.Confidence != 100 {
		t.Errorf("expected confidence 100, got %d", p.Confidence)
	}
	if p.Metrics.DaysRemaining >= 0 {
		t.Errorf("expected negative days remaining, got %d", p.Metrics.DaysRemaining)
	}
}

func TestPredictZeroDurationInterval(t *testing.T) {
	moment := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	goal := &store.Goal{CreatedAt: moment, DueDate: moment, Progress: 0}

	p, err := PredictCompletion(goal, moment)
	if err != nil {
		t.Fatalf("zero-duration interval should not error: %v", err)
	}
	if p.Metrics.ExpectedProgress != 100 {
		t.Errorf("zero-duration interval should expect 100%%, got %d", p.Metrics.ExpectedProgress)
	}
	if p.Status != ScheduleBehind {
		t.Errorf("expected behind_schedule for untouched zero-duration goal, got %s", p.Status)
	}
}

func TestPredictInvalidInterval(t *testing.T) {
	goal := &store.Goal{
		CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := PredictCompletion(goal, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestPredictConfidenceValues(t *testing.T) {
	valid := map[int]bool{100: true, 90: true, 80: true, 70: true, 85: true}
	statuses := map[ScheduleStatus]bool{
		ScheduleOverdue: true, ScheduleAhead: true, ScheduleOnTrack: true,
		ScheduleAtRisk: true, ScheduleBehind: true,
	}

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for days := 1; days <= 60; days += 7 {
		for progress := 0; progress <= 100; progress += 10 {
			goal := &store.Goal{CreatedAt: created, DueDate: created.AddDate(0, 0, 30), Progress: progress}
			p, err := PredictCompletion(goal, created.AddDate(0, 0, days))
			if err != nil {
				t.Fatalf("PredictCompletion failed: %v", err)
			}
			if !valid[p.Confidence] {
				t.Errorf("unexpected confidence %d (days=%d progress=%d)", p.Confidence, days, progress)
			}
			if !statuses[p.Status] {
				t.Errorf("unexpected status %s", p.Status)
			}
		}
	}
}
