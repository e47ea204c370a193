package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coursegraph/coursegraph/pkg/errors"
)

// CycleError is returned by [Graph.TopologicalOrder] when the graph is not a
// DAG. Cycle is one concrete witness, closed on its first element:
// [A, B, A] means A requires B and B requires A.
type CycleError struct {
	Cycle []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: prerequisite cycle: %s", errors.ErrCodeCycleDetected, strings.Join(e.Cycle, " → "))
}

// Code returns the error code for this error type.
func (e *CycleError) Code() errors.Code {
	return errors.ErrCodeCycleDetected
}

// TopologicalOrder returns a linear ordering of every course such that each
// course's prerequisites appear before it.
//
// The algorithm is an iterative Kahn's reduction: courses whose prerequisites
// are all placed become ready; the lexicographically smallest ready course is
// appended next. The tie-break is part of the contract — repeated calls on
// the same graph always produce the identical ordering.
//
// If no complete ordering exists the graph contains a cycle and a
// [*CycleError] naming one witness is returned; a partial ordering is never
// produced.
func (g *Graph) TopologicalOrder() ([]string, error) {
	unresolved := make(map[string]int, len(g.courses))
	var ready []string
	for _, id := range g.IDs() {
		n := len(g.prereqs[id])
		unresolved[id] = n
		if n == 0 {
			ready = append(ready, id) // IDs() is sorted, so ready stays sorted
		}
	}

	order := make([]string, 0, len(g.courses))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		for _, dep := range g.dependents[id] {
			unresolved[dep]--
			if unresolved[dep] == 0 {
				at := sort.SearchStrings(ready, dep)
				ready = append(ready, "")
				copy(ready[at+1:], ready[at:])
				ready[at] = dep
			}
		}
	}

	if len(order) != len(g.courses) {
		return nil, &CycleError{Cycle: g.witnessCycle(unresolved)}
	}
	return order, nil
}

// witnessCycle extracts one concrete cycle from the courses left with
// unresolved prerequisites. Every remaining course has at least one remaining
// prerequisite, so repeatedly following the smallest remaining prerequisite
// must revisit a course; the walk is deterministic for a given graph.
func (g *Graph) witnessCycle(unresolved map[string]int) []string {
	remaining := make(map[string]bool, len(unresolved))
	start := ""
	for _, id := range g.IDs() {
		if unresolved[id] > 0 {
			remaining[id] = true
			if start == "" {
				start = id
			}
		}
	}

	var path []string
	index := make(map[string]int)
	for cur := start; ; {
		if at, seen := index[cur]; seen {
			return append(path[at:], cur)
		}
		index[cur] = len(path)
		path = append(path, cur)

		next := ""
		for _, p := range g.prereqs[cur] {
			if remaining[p] && (next == "" || p < next) {
				next = p
			}
		}
		cur = next
	}
}
