package insight

import (
	"math"
	"time"

	"github.com/harborworks/foresight/internal/store"
)

type ScheduleStatus string

const (
	ScheduleOverdue ScheduleStatus = "overdue"
	ScheduleAhead   ScheduleStatus = "ahead_of_schedule"
	ScheduleOnTrack ScheduleStatus = "on_track"
	ScheduleAtRisk  ScheduleStatus = "at_risk"
	ScheduleBehind  ScheduleStatus = "behind_schedule"
)

// Prediction classifies how a goal is tracking against its planning interval.
type Prediction struct {
	Status         ScheduleStatus    `json:"status"`
	Confidence     int               `json:"confidence"`
	Recommendation string            `json:"recommendation"`
	Metrics        PredictionMetrics `json:"metrics"`
}

type PredictionMetrics struct {
	ExpectedProgress int `json:"expected_progress"`
	ActualProgress   int `json:"actual_progress"`
	ProgressDelta    int `json:"progress_delta"`
	DaysRemaining    int `json:"days_remaining"`
}

// PredictCompletion compares actual progress against the progress expected
// from elapsed time. A goal whose due date precedes its creation date is
// rejected with ErrInvalidInterval; a zero-duration interval is treated as
// fully elapsed (expected progress 100) instead of dividing by zero.
func PredictCompletion(goal *store.Goal, now time.Time) (Prediction, error) {
	if goal.DueDate.Before(goal.CreatedAt) {
		return Prediction{}, ErrInvalidInterval
	}

	totalDays := ceilDays(goal.DueDate.Sub(goal.CreatedAt))
	daysElapsed := ceilDays(now.Sub(goal.CreatedAt))
	daysRemaining := ceilDays(goal.DueDate.Sub(now))

	expected := 100.0
	if totalDays > 0 {
		expected = float64(daysElapsed) / float64(totalDays) * 100
	}
	actual := float64(goal.Progress)
	delta := actual - expected

	var status ScheduleStatus
	var confidence int
	var recommendation string
	switch {
	case daysRemaining < 0:
		status, confidence, recommendation = ScheduleOverdue, 100, "Immediate action required"
	case delta >= 10:
		status, confidence, recommendation = ScheduleAhead, 90, "On track, maintain momentum"
	case delta >= -10:
		status, confidence, recommendation = ScheduleOnTrack, 80, "Progressing well"
	case delta >= -25:
		status, confidence, recommendation = ScheduleAtRisk, 70, "May need additional resources"
	default:
		status, confidence, recommendation = ScheduleBehind, 85, "Requires immediate attention"
	}

	return Prediction{
		Status:         status,
		Confidence:     confidence,
		Recommendation: recommendation,
		Metrics: PredictionMetrics{
			ExpectedProgress: int(math.Round(expected)),
			ActualProgress:   int(math.Round(actual)),
			ProgressDelta:    int(math.Round(delta)),
			DaysRemaining:    daysRemaining,
		},
	}, nil
}
