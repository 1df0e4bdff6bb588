// Package graph validates and queries the prerequisite relationships
// between tasks and subtasks.
//
// The dependency relation, viewed as a directed graph over task and
// subtask references, is kept acyclic at all times: every insertion
// runs a reachability check before the edge is written, so an accepted
// sequence of AddDependency calls can never produce a cycle. Validate
// and Fix exist as audit and repair entrypoints for documents mutated
// outside the engine.
package graph

import (
	"github.com/Iron-Ham/taskmill/internal/errors"
	"github.com/Iron-Ham/taskmill/internal/store"
	"github.com/Iron-Ham/taskmill/internal/task"
)

// AddDependency inserts the edge from -> to, meaning "to must be done
// before from is eligible". The edge is rejected if either endpoint is
// missing, if it already exists, if it is a self-dependency, or if from
// is reachable from to over existing edges (the edge would close a
// cycle). The graph is unchanged on any rejection.
func AddDependency(s *store.Store, from, to task.Ref) error {
	if from == to {
		return errors.NewValidationError("a task cannot depend on itself").WithField("dependencies")
	}
	if !s.Exists(from) {
		return errors.NewNotFoundError(kind(from), from.String())
	}
	if !s.Exists(to) {
		return errors.NewNotFoundError(kind(to), to.String())
	}

	deps, err := s.Deps(from)
	if err != nil {
		return err
	}
	for _, d := range deps {
		if d == to {
			return errors.NewDuplicateError("dependency", from.String()+" -> "+to.String())
		}
	}

	// If from is reachable from to, adding from -> to closes a cycle.
	if path := findPath(s, to, from); path != nil {
		cycle := make([]string, 0, len(path)+1)
		cycle = append(cycle, from.String())
		for _, r := range path {
			cycle = append(cycle, r.String())
		}
		return errors.NewCycleError(cycle)
	}

	return s.SetDeps(from, append(deps, to))
}

// RemoveDependency deletes the edge from -> to.
func RemoveDependency(s *store.Store, from, to task.Ref) error {
	if !s.Exists(from) {
		return errors.NewNotFoundError(kind(from), from.String())
	}

	deps, err := s.Deps(from)
	if err != nil {
		return err
	}
	kept := make([]task.Ref, 0, len(deps))
	found := false
	for _, d := range deps {
		if d == to {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return errors.NewNotFoundError("dependency", from.String()+" -> "+to.String())
	}
	return s.SetDeps(from, kept)
}

// DependsOn reports whether target is reachable from r over dependency
// edges, directly or transitively.
func DependsOn(s *store.Store, r, target task.Ref) bool {
	return findPath(s, r, target) != nil
}

// findPath returns the refs along a dependency path from start to goal
// (inclusive of both), or nil if goal is unreachable. Missing targets
// are skipped rather than failing: reachability over a graph with
// dangling edges is still well-defined.
func findPath(s *store.Store, start, goal task.Ref) []task.Ref {
	visited := make(map[task.Ref]bool)

	var dfs func(r task.Ref) []task.Ref
	dfs = func(r task.Ref) []task.Ref {
		if r == goal {
			return []task.Ref{r}
		}
		if visited[r] {
			return nil
		}
		visited[r] = true

		deps, err := s.Deps(r)
		if err != nil {
			return nil
		}
		for _, d := range deps {
			if path := dfs(d); path != nil {
				return append([]task.Ref{r}, path...)
			}
		}
		return nil
	}

	return dfs(start)
}

func kind(r task.Ref) string {
	if r.IsSubtask() {
		return "subtask"
	}
	return "task"
}
