package insight

import (
	"fmt"
	"sort"

	"github.com/harborworks/foresight/internal/store"
)

// MemberLoad pairs a member with their active task count.
type MemberLoad struct {
	Member      *store.Member `json:"member"`
	ActiveTasks int           `json:"active_tasks"`
}

// BalanceSuggestion describes whether and how to rebalance team workload.
type BalanceSuggestion struct {
	NeedsBalancing bool        `json:"needs_balancing"`
	Overloaded     *MemberLoad `json:"overloaded,omitempty"`
	Underutilized  *MemberLoad `json:"underutilized,omitempty"`
	Message        string      `json:"message"`
}

// A spread of this many active tasks between the busiest and least busy
// member triggers a rebalancing suggestion.
const balanceSpreadThreshold = 3

// SuggestRebalancing compares active task counts across the team and, when
// the spread is large enough, proposes moving work from the busiest member
// to the least busy one. Stable sort keeps input order on equal counts.
func SuggestRebalancing(members []*store.Member, tasks []*store.Task) (BalanceSuggestion, error) {
	if len(members) == 0 {
		return BalanceSuggestion{}, ErrNoMembers
	}

	counts := make(map[string]int, len(members))
	for _, t := range tasks {
		if t == nil || t.AssignedTo == nil || !t.Active() {
			continue
		}
		counts[t.AssignedTo.String()]++
	}

	loads := make([]MemberLoad, 0, len(members))
	for _, m := range members {
		loads = append(loads, MemberLoad{Member: m, ActiveTasks: counts[m.ID.String()]})
	}
	sort.SliceStable(loads, func(i, j int) bool {
		return loads[i].ActiveTasks > loads[j].ActiveTasks
	})

	busiest := loads[0]
	idlest := loads[len(loads)-1]

	if busiest.ActiveTasks-idlest.ActiveTasks < balanceSpreadThreshold {
		return BalanceSuggestion{
			NeedsBalancing: false,
			Message:        "Workload is balanced across team",
		}, nil
	}

	return BalanceSuggestion{
		NeedsBalancing: true,
		Overloaded:     &busiest,
		Underutilized:  &idlest,
		Message: fmt.Sprintf("Consider reassigning tasks from %s (%d tasks) to %s (%d tasks)",
			busiest.Member.Name, busiest.ActiveTasks, idlest.Member.Name, idlest.ActiveTasks),
	}, nil
}
