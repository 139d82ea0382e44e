package validate

import (
	"sort"
	"strings"

	"planguard/internal/plan"
)

// findTaskCycles detects cycles in the task depends_on relation.
//
// Classic DFS with two sets: a global visited set and a per-path
// in-progress set. Revisiting an in-progress node signals a cycle; the
// cycle slice is cut out of the current path. Each distinct cycle is
// reported once, rotated so the lexicographically smallest task id leads,
// so the report is stable regardless of which task the walk starts from.
// The returned paths are closed: the leading id repeats at the end.
func findTaskCycles(tasks []plan.Task) [][]string {
	adj := make(map[string][]string, len(tasks))
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		if _, ok := adj[task.ID]; !ok {
			ids = append(ids, task.ID)
		}
		adj[task.ID] = append(adj[task.ID], task.DependsOn...)
	}
	sort.Strings(ids)

	visited := make(map[string]bool, len(tasks))
	inProgress := make(map[string]bool, len(tasks))
	var path []string

	var cycles [][]string
	seen := make(map[string]bool)

	var walk func(id string)
	walk = func(id string) {
		visited[id] = true
		inProgress[id] = true
		path = append(path, id)

		for _, dep := range adj[id] {
			if _, known := adj[dep]; !known {
				continue // dangling refs are completeness findings, not cycles
			}
			if inProgress[dep] {
				cycle := extractCycle(path, dep)
				key := cycleKey(cycle)
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, closeCycle(cycle))
				}
				continue
			}
			if !visited[dep] {
				walk(dep)
			}
		}

		path = path[:len(path)-1]
		inProgress[id] = false
	}

	for _, id := range ids {
		if !visited[id] {
			walk(id)
		}
	}

	return cycles
}

// extractCycle cuts the cycle members out of the current DFS path and
// rotates them so the smallest id leads.
func extractCycle(path []string, start string) []string {
	from := 0
	for i, id := range path {
		if id == start {
			from = i
			break
		}
	}
	cycle := append([]string(nil), path[from:]...)

	min := 0
	for i, id := range cycle {
		if id < cycle[min] {
			min = i
		}
	}
	rotated := make([]string, 0, len(cycle))
	rotated = append(rotated, cycle[min:]...)
	rotated = append(rotated, cycle[:min]...)
	return rotated
}

// closeCycle appends the leading id so the rendered path reads as a loop.
func closeCycle(cycle []string) []string {
	return append(append([]string(nil), cycle...), cycle[0])
}

// cycleKey builds a membership key for deduplication.
func cycleKey(cycle []string) string {
	members := append([]string(nil), cycle...)
	sort.Strings(members)
	return strings.Join(members, "\x00")
}
