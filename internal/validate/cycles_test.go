package validate

import (
	"strings"
	"testing"

	"planguard/internal/plan"
)

func TestFindTaskCyclesNone(t *testing.T) {
	tasks := []plan.Task{
		{ID: "a"},
		{ID: "b", DependsOn: []string{"a"}},
		{ID: "c", DependsOn: []string{"a", "b"}},
	}
	if cycles := findTaskCycles(tasks); len(cycles) != 0 {
		t.Errorf("expected no cycles, got %v", cycles)
	}
}

func TestFindTaskCyclesSelfLoop(t *testing.T) {
	tasks := []plan.Task{{ID: "a", DependsOn: []string{"a"}}}

	cycles := findTaskCycles(tasks)
	if len(cycles) != 1 {
		t.Fatalf("expected one cycle, got %v", cycles)
	}
	if got := strings.Join(cycles[0], " -> "); got != "a -> a" {
		t.Errorf("cycle = %q", got)
	}
}

func TestFindTaskCyclesCanonicalRotation(t *testing.T) {
	// The same cycle must render identically whatever the task order.
	mk := func(ids ...string) []plan.Task {
		deps := map[string]string{"a": "b", "b": "c", "c": "a"}
		tasks := make([]plan.Task, len(ids))
		for i, id := range ids {
			tasks[i] = plan.Task{ID: id, DependsOn: []string{deps[id]}}
		}
		return tasks
	}

	want := "a -> b -> c -> a"
	for _, order := range [][]string{{"a", "b", "c"}, {"c", "b", "a"}, {"b", "a", "c"}} {
		cycles := findTaskCycles(mk(order...))
		if len(cycles) != 1 {
			t.Fatalf("order %v: expected one cycle, got %v", order, cycles)
		}
		if got := strings.Join(cycles[0], " -> "); got != want {
			t.Errorf("order %v: cycle = %q, want %q", order, got, want)
		}
	}
}

func TestFindTaskCyclesTwoDisjoint(t *testing.T) {
	tasks := []plan.Task{
		{ID: "a", DependsOn: []string{"b"}},
		{ID: "b", DependsOn: []string{"a"}},
		{ID: "x", DependsOn: []string{"y"}},
		{ID: "y", DependsOn: []string{"x"}},
	}

	cycles := findTaskCycles(tasks)
	if len(cycles) != 2 {
		t.Fatalf("expected two cycles, got %v", cycles)
	}
}

func TestFindTaskCyclesIgnoresDanglingRefs(t *testing.T) {
	tasks := []plan.Task{{ID: "a", DependsOn: []string{"missing"}}}
	if cycles := findTaskCycles(tasks); len(cycles) != 0 {
		t.Errorf("dangling refs are not cycles: %v", cycles)
	}
}
