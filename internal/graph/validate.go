package graph

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/taskmill/internal/store"
	"github.com/Iron-Ham/taskmill/internal/task"
)

// ViolationKind classifies graph audit findings.
type ViolationKind string

const (
	// ViolationSelf is an edge from a node to itself.
	ViolationSelf ViolationKind = "self-dependency"

	// ViolationDangling is an edge whose target does not exist.
	ViolationDangling ViolationKind = "dangling"

	// ViolationCycle is a set of edges forming a dependency cycle.
	ViolationCycle ViolationKind = "cycle"
)

// Violation is a single graph audit finding.
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`

	// Ref is the node the finding relates to. Empty for cycles, which
	// relate to every node in Refs.
	Ref string `json:"ref,omitempty"`

	// Refs lists related nodes: the missing target for dangling edges,
	// or the nodes along a cycle.
	Refs []string `json:"refs,omitempty"`
}

// Repair records a removed edge and why it was removed.
type Repair struct {
	Edge   store.Edge `json:"edge"`
	Reason string     `json:"reason"`
}

// Validate scans the whole graph for self-references, dangling targets,
// and cycles. A clean graph produces an empty result. Used as the
// audit entrypoint for documents that may have been edited by hand.
func Validate(s *store.Store) []Violation {
	var out []Violation

	for _, r := range s.Refs() {
		deps, _ := s.Deps(r)
		for _, d := range deps {
			if d == r {
				out = append(out, Violation{
					Kind:    ViolationSelf,
					Message: fmt.Sprintf("%s depends on itself", r),
					Ref:     r.String(),
				})
				continue
			}
			if !s.Exists(d) {
				out = append(out, Violation{
					Kind:    ViolationDangling,
					Message: fmt.Sprintf("%s depends on unknown %s %s", r, kind(d), d),
					Ref:     r.String(),
					Refs:    []string{d.String()},
				})
			}
		}
	}

	for _, cycle := range findCycles(s) {
		names := make([]string, len(cycle))
		for i, r := range cycle {
			names[i] = r.String()
		}
		out = append(out, Violation{
			Kind:    ViolationCycle,
			Message: "dependency cycle: " + strings.Join(names, " -> "),
			Refs:    names,
		})
	}

	return out
}

// Fix removes dangling and self-referential edges and reports what was
// removed. Cycles are never auto-broken: removing an arbitrary edge
// could discard intended ordering, so they are left for Validate to
// surface and the caller to resolve manually.
func Fix(s *store.Store) ([]Repair, error) {
	var repairs []Repair

	for _, r := range s.Refs() {
		deps, err := s.Deps(r)
		if err != nil {
			return repairs, err
		}

		kept := make([]task.Ref, 0, len(deps))
		for _, d := range deps {
			switch {
			case d == r:
				repairs = append(repairs, Repair{
					Edge:   store.Edge{From: r, To: d},
					Reason: "self-dependency",
				})
			case !s.Exists(d):
				repairs = append(repairs, Repair{
					Edge:   store.Edge{From: r, To: d},
					Reason: "target does not exist",
				})
			default:
				kept = append(kept, d)
			}
		}

		if len(kept) != len(deps) {
			if err := s.SetDeps(r, kept); err != nil {
				return repairs, err
			}
		}
	}

	return repairs, nil
}

// findCycles runs a DFS over every node, reconstructing each cycle it
// encounters from the parent chain. Each cycle is reported once.
func findCycles(s *store.Store) [][]task.Ref {
	visited := make(map[task.Ref]bool)
	recStack := make(map[task.Ref]bool)
	parent := make(map[task.Ref]task.Ref)

	var cycles [][]task.Ref

	var dfs func(r task.Ref)
	dfs = func(r task.Ref) {
		visited[r] = true
		recStack[r] = true

		deps, _ := s.Deps(r)
		for _, d := range deps {
			if !s.Exists(d) || d == r {
				continue // reported separately
			}
			if !visited[d] {
				parent[d] = r
				dfs(d)
			} else if recStack[d] {
				// Found a cycle: walk the parent chain back to d.
				cycle := []task.Ref{d}
				for cur := r; cur != d; cur = parent[cur] {
					cycle = append([]task.Ref{cur}, cycle...)
				}
				cycle = append([]task.Ref{d}, cycle...)
				cycles = append(cycles, cycle)
			}
		}

		recStack[r] = false
	}

	for _, r := range s.Refs() {
		if !visited[r] {
			dfs(r)
		}
	}

	return cycles
}
