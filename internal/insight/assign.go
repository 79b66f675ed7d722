package insight

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harborworks/foresight/internal/store"
)

// Candidate is one ranked assignee option for a task.
type Candidate struct {
	Member       *store.Member `json:"member"`
	Score        int           `json:"score"`
	ActiveTasks  int           `json:"active_tasks"`
	OverdueCount int           `json:"overdue_count"`
	Reasoning    string        `json:"reasoning"`
}

// Per-member score starts at a full budget and loses points for load,
// gaining them back for skill overlap. Floored at 0, no upper clamp.
const (
	assigneeBaseScore       = 100
	activeTaskPenalty       = 15
	overdueTaskPenalty      = 25
	matchingSkillBonus      = 20
	upcomingDeadlinePenalty = 10

	bestFitThreshold = 80
	goodFitThreshold = 50
)

// RankAssignees scores every member for the task and returns the full list
// sorted descending by score, stable so ties keep the input member order.
func RankAssignees(task *store.Task, members []*store.Member, existing []*store.Task, now time.Time) []Candidate {
	candidates := make([]Candidate, 0, len(members))
	for _, m := range members {
		candidates = append(candidates, scoreCandidate(task, m, existing, now))
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// SuggestAssignee returns the top-ranked candidate for the task.
func SuggestAssignee(task *store.Task, members []*store.Member, existing []*store.Task, now time.Time) (Candidate, error) {
	if len(members) == 0 {
		return Candidate{}, ErrNoMembers
	}
	return RankAssignees(task, members, existing, now)[0], nil
}

func scoreCandidate(task *store.Task, member *store.Member, existing []*store.Task, now time.Time) Candidate {
	var memberTasks []*store.Task
	for _, t := range existing {
		if t == nil || t.AssignedTo == nil || *t.AssignedTo != member.ID || !t.Active() {
			continue
		}
		memberTasks = append(memberTasks, t)
	}

	score := assigneeBaseScore
	score -= activeTaskPenalty * len(memberTasks)

	overdue := 0
	upcoming := 0
	for _, t := range memberTasks {
		if t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(now) {
			overdue++
		}
		if daysUntil(*t.DueDate, now) <= 3 {
			upcoming++
		}
	}
	score -= overdueTaskPenalty * overdue
	score -= upcomingDeadlinePenalty * upcoming

	if len(task.Tags) > 0 && len(member.Skills) > 0 {
		score += matchingSkillBonus * matchingSkills(task.Tags, member.Skills)
	}

	if score < 0 {
		score = 0
	}

	return Candidate{
		Member:       member,
		Score:        score,
		ActiveTasks:  len(memberTasks),
		OverdueCount: overdue,
		Reasoning:    reasoningFor(member.Name, score, len(memberTasks), overdue),
	}
}

func matchingSkills(tags, skills []string) int {
	count := 0
	for _, tag := range tags {
		for _, skill := range skills {
			if strings.EqualFold(tag, skill) {
				count++
				break
			}
		}
	}
	return count
}

func reasoningFor(name string, score, active, overdue int) string {
	var clause string
	switch {
	case active == 0:
		clause = "no active tasks"
	case active <= 2:
		clause = fmt.Sprintf("only %d active task(s)", active)
	default:
		clause = fmt.Sprintf("%d active tasks", active)
	}
	if overdue > 0 {
		clause += fmt.Sprintf(", %d overdue", overdue)
	}

	tier := "Available but busy"
	switch {
	case score >= bestFitThreshold:
		tier = "Best fit"
	case score >= goodFitThreshold:
		tier = "Good fit"
	}

	return fmt.Sprintf("%s - %s: %s", name, tier, clause)
}
