package insight

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/harborworks/foresight/internal/store"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// RiskEntry is one at-risk task with its score and the reasons it qualified.
type RiskEntry struct {
	TaskID   uuid.UUID `json:"task_id"`
	Title    string    `json:"title"`
	Score    int       `json:"risk_score"`
	Severity Severity  `json:"severity"`
	Reasons  []string  `json:"reasons"`
}

// Bonus values for the additive risk score. The productive-hours divisor
// assumes 6 focused hours per working day.
const (
	bonusOverdue      = 5
	bonusDueTomorrow  = 4
	bonusDueThisWeek  = 3
	bonusHighPriority = 2
	bonusDependencies = 1
	bonusInfeasible   = 2

	productiveHoursPerDay = 6.0

	maxRiskScore  = 10
	riskThreshold = 4
)

// RiskScore computes the 0–10 deadline risk score for a single task.
// Bonuses are additive and the sum is clamped to [0, 10].
func RiskScore(task *store.Task, now time.Time) int {
	score := 0
	progress := task.ProgressValue()

	if task.DueDate != nil {
		days := daysUntil(*task.DueDate, now)
		switch {
		case task.DueDate.Before(now):
			score += bonusOverdue
		case days <= 1 && progress < 80:
			score += bonusDueTomorrow
		case days <= 3 && progress < 50:
			score += bonusDueThisWeek
		}

		// Not enough productive hours left before the deadline.
		if task.EstimatedHours != nil && days > 0 && *task.EstimatedHours/productiveHoursPerDay > float64(days) {
			score += bonusInfeasible
		}
	}

	if task.Priority == store.PriorityHigh && progress < 30 {
		score += bonusHighPriority
	}
	if len(task.DependsOn) > 0 {
		score += bonusDependencies
	}

	return clampInt(score, 0, maxRiskScore)
}

// DetectRisks scores every active task and returns those at or above the
// risk threshold, sorted descending by score (stable on ties).
func DetectRisks(tasks []*store.Task, now time.Time) []RiskEntry {
	var entries []RiskEntry
	for _, task := range tasks {
		if task == nil || !task.Active() {
			continue
		}
		score := RiskScore(task, now)
		if score < riskThreshold {
			continue
		}
		entries = append(entries, RiskEntry{
			TaskID:   task.ID,
			Title:    task.Title,
			Score:    score,
			Severity: severityFor(score),
			Reasons:  riskReasons(task, now),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

func severityFor(score int) Severity {
	if score >= 7 {
		return SeverityHigh
	}
	return SeverityMedium
}

// riskReasons builds the human-readable explanation list. Clause order is
// fixed: deadline, progress, priority, dependencies.
func riskReasons(task *store.Task, now time.Time) []string {
	var reasons []string
	progress := task.ProgressValue()

	if task.DueDate != nil {
		days := daysUntil(*task.DueDate, now)
		if days < 0 {
			reasons = append(reasons, fmt.Sprintf("Overdue by %d day(s)", -days))
		} else if days <= 1 {
			reasons = append(reasons, fmt.Sprintf("Due in %d day(s)", days))
		}
		if progress < 50 && days <= 3 {
			reasons = append(reasons, fmt.Sprintf("Only %d%% complete", progress))
		}
	}
	if task.Priority == store.PriorityHigh {
		reasons = append(reasons, "High priority")
	}
	if len(task.DependsOn) > 0 {
		reasons = append(reasons, "Has dependencies")
	}
	return reasons
}
