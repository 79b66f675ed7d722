package insight

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/harborworks/foresight/internal/store"
)

func teamWithLoads(counts []int) ([]*store.Member, []*store.Task) {
	names := []string{"Mara", "Nico", "Omar", "Pia", "Quinn"}
	var members []*store.Member
	var tasks []*store.Task
	for i, count := range counts {
		m := &store.Member{ID: uuid.New(), Name: names[i]}
		members = append(members, m)
		for j := 0; j < count; j++ {
			tasks = append(tasks, &store.Task{Status: store.StatusPending, AssignedTo: idPtr(m.ID)})
		}
	}
	return members, tasks
}

func TestSuggestRebalancingTriggered(t *testing.T) {
	members, tasks := teamWithLoads([]int{5, 4, 4, 2})

	s, err := SuggestRebalancing(members, tasks)
	if err != nil {
		t.Fatalf("SuggestRebalancing failed: %v", err)
	}
	if !s.NeedsBalancing {
		t.Fatal("spread of 3 should trigger rebalancing")
	}
	if s.Overloaded.Member.Name != "Mara" || s.Overloaded.ActiveTasks != 5 {
		t.Errorf("expected overloaded Mara(5), got %s(%d)", s.Overloaded.Member.Name, s.Overloaded.ActiveTasks)
	}
	if s.Underutilized.Member.Name != "Pia" || s.Underutilized.ActiveTasks != 2 {
		t.Errorf("expected underutilized Pia(2), got %s(%d)", s.Underutilized.Member.Name, s.Underutilized.ActiveTasks)
	}
	want := "Consider reassigning tasks from Mara (5 tasks) to Pia (2 tasks)"
	if s.Message != want {
		t.Errorf("expected %q, got %q", want, s.Message)
	}
}

func TestSuggestRebalancingBalanced(t *testing.T) {
	members, tasks := teamWithLoads([]int{3, 2, 1})

	s, err := SuggestRebalancing(members, tasks)
	if err != nil {
		t.Fatalf("SuggestRebalancing failed: %v", err)
	}
	if s.NeedsBalancing {
		t.Error("spread of 2 should not trigger rebalancing")
	}
	if s.Message != "Workload is balanced across team" {
		t.Errorf("unexpected message: %q", s.Message)
	}
	if s.Overloaded != nil || s.Underutilized != nil {
		t.Error("balanced result should not name members")
	}
}

func TestSuggestRebalancingIgnoresInactiveAndUnassigned(t *testing.T) {
	members, tasks := teamWithLoads([]int{4, 1})
	// Noise that must not count toward anyone's load.
	tasks = append(tasks,
		&store.Task{Status: store.StatusCompleted, AssignedTo: idPtr(members[1].ID)},
		&store.Task{Status: store.StatusCancelled, AssignedTo: idPtr(members[1].ID)},
		&store.Task{Status: store.StatusPending},
		nil,
	)

	s, err := SuggestRebalancing(members, tasks)
	if err != nil {
		t.Fatalf("SuggestRebalancing failed: %v", err)
	}
	if !s.NeedsBalancing {
		t.Error("expected rebalancing with spread 3")
	}
	if s.Underutilized.ActiveTasks != 1 {
		t.Errorf("completed/cancelled tasks leaked into count: %d", s.Underutilized.ActiveTasks)
	}
}

func TestSuggestRebalancingNoMembers(t *testing.T) {
	_, err := SuggestRebalancing(nil, nil)
	if !errors.Is(err, ErrNoMembers) {
		t.Errorf("expected ErrNoMembers, got %v", err)
	}
}

func TestSuggestRebalancingSingleMember(t *testing.T) {
	members, tasks := teamWithLoads([]int{6})
	s, err := SuggestRebalancing(members, tasks)
	if err != nil {
		t.Fatalf("SuggestRebalancing failed: %v", err)
	}
	if s.NeedsBalancing {
		t.Error("one member cannot be rebalanced against themselves")
	}
}
