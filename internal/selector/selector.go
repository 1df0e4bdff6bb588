// Package selector computes the ranked set of actionable tasks from the
// current store and graph state.
//
// Selection is a pure function of the snapshot: no memory is kept
// between calls, so repeated calls without an intervening mutation
// return the identical result.
package selector

import (
	"fmt"
	"sort"

	"github.com/Iron-Ham/taskmill/internal/store"
	"github.com/Iron-Ham/taskmill/internal/task"
)

// Candidate is an actionable task or subtask: pending, with every
// dependency done.
type Candidate struct {
	Ref      task.Ref      `json:"ref"`
	Title    string        `json:"title"`
	Priority task.Priority `json:"priority"`

	// DepCount is the number of direct dependencies; fewer resolved
	// blockers rank first among equal priorities.
	DepCount int `json:"dep_count"`

	// Note carries informational context, such as a parent task whose
	// subtasks are not yet complete. It never blocks selection.
	Note string `json:"note,omitempty"`
}

// Candidates returns every actionable task and subtask, ranked by
// priority descending, then direct dependency count ascending, then id
// ascending as the deterministic final tie-break.
func Candidates(s *store.Store) []Candidate {
	var out []Candidate

	for _, t := range s.List(store.Filter{}) {
		if c, ok := candidate(s, t.Ref(), t.Status, t.Title, t.Priority, t.Dependencies); ok {
			if n := len(t.Subtasks); n > 0 && t.SubtasksDone() < n {
				c.Note = fmt.Sprintf("%d of %d subtasks done", t.SubtasksDone(), n)
			}
			out = append(out, c)
		}
		for _, sub := range t.Subtasks {
			r := task.SubRef(t.ID, sub.Index)
			if c, ok := candidate(s, r, sub.Status, sub.Title, sub.Priority, sub.Dependencies); ok {
				out = append(out, c)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		if a.DepCount != b.DepCount {
			return a.DepCount < b.DepCount
		}
		return a.Ref.Less(b.Ref)
	})
	return out
}

// Next returns the single best actionable task or subtask, or false if
// nothing is currently eligible.
func Next(s *store.Store) (Candidate, bool) {
	ranked := Candidates(s)
	if len(ranked) == 0 {
		return Candidate{}, false
	}
	return ranked[0], true
}

// candidate evaluates eligibility: the node must not be started yet and
// every direct dependency must be done. A dependency that is missing or
// in any non-done state (including custom labels) blocks eligibility.
func candidate(s *store.Store, r task.Ref, st task.Status, title string, pri task.Priority, deps []task.Ref) (Candidate, bool) {
	if !st.Startable() {
		return Candidate{}, false
	}
	for _, d := range deps {
		depStatus, err := s.Status(d)
		if err != nil || !depStatus.Done() {
			return Candidate{}, false
		}
	}
	return Candidate{
		Ref:      r,
		Title:    title,
		Priority: pri,
		DepCount: len(deps),
	}, true
}
