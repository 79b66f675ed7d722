// Package insight implements the rule-based scoring engine behind the
// planning API: deadline risk scoring, schedule-adherence prediction,
// assignee recommendation, and workload balancing.
//
// Every function is pure and takes the reference time explicitly, so results
// are deterministic and the engine is safe to call concurrently.
package insight

import (
	"errors"
	"math"
	"time"
)

var (
	// ErrNoMembers is returned when an operation needs at least one team member.
	ErrNoMembers = errors.New("no members provided")

	// ErrInvalidInterval is returned when a goal's due date precedes its creation.
	ErrInvalidInterval = errors.New("due date precedes creation date")
)

// daysUntil returns the number of days from now until t, rounded up.
// Negative when t is in the past.
func daysUntil(t, now time.Time) int {
	return ceilDays(t.Sub(now))
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
