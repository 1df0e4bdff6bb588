// Package task defines the core data types for the task-graph engine:
// tasks, subtasks, references, statuses, and priorities.
//
// These are pure data types. Mutation rules live in the store, graph,
// and workflow packages; nothing here enforces invariants beyond basic
// field shape.
package task

import (
	"strings"
	"time"
)

// Task is a top-level unit of work. IDs are integers assigned
// monotonically at creation and stable for the task's lifetime.
//
// Dependencies form the edges of a directed acyclic graph over task and
// subtask references. The graph package rejects any edge that would
// close a cycle, so a stored Task never participates in one.
type Task struct {
	// ID uniquely identifies this task across the store.
	ID int `json:"id"`

	// Title is a short, human-readable name.
	Title string `json:"title"`

	// Description is a free-text summary of the work.
	Description string `json:"description"`

	// Details is an append-only implementation log. Use AppendDetails
	// rather than assigning; existing entries are never rewritten.
	Details string `json:"details,omitempty"`

	// TestStrategy is a free-text verification plan.
	TestStrategy string `json:"test_strategy,omitempty"`

	// Status is the current workflow state.
	Status Status `json:"status"`

	// Priority orders the task against its peers in next-task selection.
	Priority Priority `json:"priority"`

	// Dependencies lists task or subtask references that must reach the
	// done state before this task is eligible.
	Dependencies []Ref `json:"dependencies"`

	// Subtasks is the ordered set of subtasks scoped to this task.
	// Indexes are contiguous starting at 1.
	Subtasks []Subtask `json:"subtasks,omitempty"`

	// Created is when the task was added to the store.
	Created time.Time `json:"created"`

	// Updated is stamped on every committed mutation of the task.
	Updated time.Time `json:"updated"`
}

// Subtask is a unit of work scoped under a parent task. Its identity is
// the composite (parent id, local index) pair, displayed as
// "parent.index". Subtasks do not nest.
type Subtask struct {
	// Index is the 1-based position within the parent's subtask list.
	Index int `json:"index"`

	Title        string `json:"title"`
	Description  string `json:"description"`
	Details      string `json:"details,omitempty"`
	TestStrategy string `json:"test_strategy,omitempty"`

	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`

	// Dependencies may reference sibling subtasks or external tasks.
	Dependencies []Ref `json:"dependencies"`

	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// Ref returns the task-level reference for this task.
func (t *Task) Ref() Ref {
	return TaskRef(t.ID)
}

// AppendDetails adds a note to the task's implementation log. Entries
// are separated by blank lines; earlier entries are preserved verbatim.
func (t *Task) AppendDetails(note string) {
	t.Details = appendNote(t.Details, note)
}

// Subtask returns the subtask with the given local index, or nil.
func (t *Task) Subtask(index int) *Subtask {
	for i := range t.Subtasks {
		if t.Subtasks[i].Index == index {
			return &t.Subtasks[i]
		}
	}
	return nil
}

// SubtasksDone reports how many of the task's subtasks are done.
func (t *Task) SubtasksDone() int {
	n := 0
	for i := range t.Subtasks {
		if t.Subtasks[i].Status.Done() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	cp := *t
	cp.Dependencies = append([]Ref(nil), t.Dependencies...)
	cp.Subtasks = make([]Subtask, len(t.Subtasks))
	for i := range t.Subtasks {
		sub := t.Subtasks[i]
		sub.Dependencies = append([]Ref(nil), t.Subtasks[i].Dependencies...)
		cp.Subtasks[i] = sub
	}
	return &cp
}

// AppendDetails adds a note to the subtask's implementation log.
func (s *Subtask) AppendDetails(note string) {
	s.Details = appendNote(s.Details, note)
}

func appendNote(log, note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return log
	}
	if log == "" {
		return note
	}
	return log + "\n\n" + note
}
