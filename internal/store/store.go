// Package store holds the canonical set of tasks and subtasks and their
// fields, persisted as a single structured JSON document.
//
// The store is the only owner of task records. The graph and workflow
// packages validate mutations and then apply them through the narrow
// mutators here; nothing else writes task state. The store itself does
// no invariant checking beyond field shape: callers that bypass the
// graph's reachability checks get exactly what they asked for.
//
// A Store assumes cooperative single-threaded use; the engine serializes
// access and clones the store before every mutation so a failed
// operation has no observable partial effect.
package store

import (
	"sort"
	"time"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/taskmill/internal/errors"
	"github.com/Iron-Ham/taskmill/internal/task"
)

// Store is an in-memory snapshot of the task set.
type Store struct {
	tasks  map[int]*task.Task
	nextID int
}

// New creates an empty store. The first created task receives id 1.
func New() *Store {
	return &Store{
		tasks:  make(map[int]*task.Task),
		nextID: 1,
	}
}

// Clone returns a deep copy of the store. The engine mutates clones and
// swaps them in only after the mutation commits.
func (s *Store) Clone() *Store {
	cp := &Store{
		tasks:  make(map[int]*task.Task, len(s.tasks)),
		nextID: s.nextID,
	}
	for id, t := range s.tasks {
		cp.tasks[id] = t.Clone()
	}
	return cp
}

// Len returns the number of top-level tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Create assigns the next monotonic id to the task and stores it.
// Dependencies must be empty: edges are added through the dependency
// graph after creation so every edge passes the cycle check.
func (s *Store) Create(t task.Task) (int, error) {
	if t.Title == "" {
		return 0, errors.NewValidationError("must not be empty").WithField("title")
	}
	if len(t.Dependencies) > 0 {
		return 0, errors.NewValidationError("dependencies are added through the graph, not at creation").WithField("dependencies")
	}
	if t.Status == "" {
		t.Status = task.StatusPending
	}
	if t.Priority == "" {
		t.Priority = task.PriorityMedium
	}
	if !t.Priority.IsValid() {
		return 0, errors.NewValidationError("must be high, medium, or low").WithField("priority")
	}

	now := time.Now().UTC()
	t.ID = s.nextID
	t.Dependencies = []task.Ref{}
	t.Subtasks = nil
	t.Created = now
	t.Updated = now

	s.tasks[t.ID] = &t
	s.nextID++
	return t.ID, nil
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id int) (task.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return task.Task{}, errors.NewNotFoundError("task", task.TaskRef(id).String())
	}
	return *t.Clone(), nil
}

// GetSubtask returns a copy of the subtask addressed by the ref.
func (s *Store) GetSubtask(r task.Ref) (task.Subtask, error) {
	_, sub, err := s.resolve(r)
	if err != nil {
		return task.Subtask{}, err
	}
	if sub == nil {
		return task.Subtask{}, errors.NewNotFoundError("subtask", r.String())
	}
	cp := *sub
	cp.Dependencies = append([]task.Ref(nil), sub.Dependencies...)
	return cp, nil
}

// Exists reports whether the ref addresses a stored task or subtask.
func (s *Store) Exists(r task.Ref) bool {
	_, _, err := s.resolve(r)
	return err == nil
}

// Refs returns every task and subtask reference in deterministic order:
// ascending task id, each task followed by its subtasks in index order.
func (s *Store) Refs() []task.Ref {
	ids := s.sortedIDs()
	refs := make([]task.Ref, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, task.TaskRef(id))
		for _, sub := range s.tasks[id].Subtasks {
			refs = append(refs, task.SubRef(id, sub.Index))
		}
	}
	return refs
}

// Deps returns a copy of the dependency list of the given ref.
func (s *Store) Deps(r task.Ref) ([]task.Ref, error) {
	t, sub, err := s.resolve(r)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		return append([]task.Ref(nil), sub.Dependencies...), nil
	}
	return append([]task.Ref(nil), t.Dependencies...), nil
}

// SetDeps replaces the dependency list of the given ref. This is the
// graph's write path; it performs no cycle or existence checking.
func (s *Store) SetDeps(r task.Ref, deps []task.Ref) error {
	t, sub, err := s.resolve(r)
	if err != nil {
		return err
	}
	if deps == nil {
		deps = []task.Ref{}
	}
	now := time.Now().UTC()
	if sub != nil {
		sub.Dependencies = deps
		sub.Updated = now
	} else {
		t.Dependencies = deps
	}
	t.Updated = now
	return nil
}

// Dependents returns every ref whose dependency list contains any of
// the given targets, in deterministic order.
func (s *Store) Dependents(targets ...task.Ref) []task.Ref {
	want := make(map[task.Ref]bool, len(targets))
	for _, t := range targets {
		want[t] = true
	}

	var out []task.Ref
	for _, r := range s.Refs() {
		deps, _ := s.Deps(r)
		for _, d := range deps {
			if want[d] {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// SetStatus records a new status on the ref and stamps the update time.
// Status validation is the workflow's job; this is the raw write path.
func (s *Store) SetStatus(r task.Ref, st task.Status) error {
	t, sub, err := s.resolve(r)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if sub != nil {
		sub.Status = st
		sub.Updated = now
	} else {
		t.Status = st
	}
	t.Updated = now
	return nil
}

// Status returns the current status of the ref.
func (s *Store) Status(r task.Ref) (task.Status, error) {
	t, sub, err := s.resolve(r)
	if err != nil {
		return "", err
	}
	if sub != nil {
		return sub.Status, nil
	}
	return t.Status, nil
}

// AppendDetails adds a note to the ref's append-only implementation log.
func (s *Store) AppendDetails(r task.Ref, note string) error {
	t, sub, err := s.resolve(r)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if sub != nil {
		sub.AppendDetails(note)
		sub.Updated = now
	} else {
		t.AppendDetails(note)
	}
	t.Updated = now
	return nil
}

// Update applies a field patch to the task or subtask addressed by the
// ref and returns the updated parent task.
func (s *Store) Update(r task.Ref, p Patch) (task.Task, error) {
	if err := p.validate(); err != nil {
		return task.Task{}, err
	}
	t, sub, err := s.resolve(r)
	if err != nil {
		return task.Task{}, err
	}

	now := time.Now().UTC()
	if sub != nil {
		p.applySubtask(sub)
		sub.Updated = now
	} else {
		p.applyTask(t)
	}
	t.Updated = now
	return *t.Clone(), nil
}

// Delete removes a task. If other tasks or subtasks depend on it (or on
// any of its subtasks), the deletion fails with a ConflictError unless
// cascade is set, in which case the dangling references are pruned and
// the pruned edges returned for logging.
func (s *Store) Delete(id int, cascade bool) ([]Edge, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, errors.NewNotFoundError("task", task.TaskRef(id).String())
	}

	targets := []task.Ref{task.TaskRef(id)}
	for _, sub := range t.Subtasks {
		targets = append(targets, task.SubRef(id, sub.Index))
	}
	isTarget := make(map[task.Ref]bool, len(targets))
	for _, r := range targets {
		isTarget[r] = true
	}

	var dependents []task.Ref
	for _, r := range s.Dependents(targets...) {
		if r.Task != id { // references among the task's own subtasks vanish with it
			dependents = append(dependents, r)
		}
	}

	if len(dependents) > 0 && !cascade {
		names := make([]string, len(dependents))
		for i, r := range dependents {
			names[i] = r.String()
		}
		return nil, errors.NewConflictError(task.TaskRef(id).String(), names)
	}

	var pruned []Edge
	for _, r := range dependents {
		deps, _ := s.Deps(r)
		kept := deps[:0]
		for _, d := range deps {
			if isTarget[d] {
				pruned = append(pruned, Edge{From: r, To: d})
				continue
			}
			kept = append(kept, d)
		}
		if err := s.SetDeps(r, append([]task.Ref{}, kept...)); err != nil {
			return nil, err
		}
	}

	delete(s.tasks, id)
	return pruned, nil
}

// AppendSubtask adds a subtask at the next contiguous index of the
// parent and returns its ref.
func (s *Store) AppendSubtask(parent int, sub task.Subtask) (task.Ref, error) {
	t, ok := s.tasks[parent]
	if !ok {
		return task.Ref{}, errors.NewNotFoundError("task", task.TaskRef(parent).String())
	}
	if sub.Title == "" {
		return task.Ref{}, errors.NewValidationError("must not be empty").WithField("title")
	}
	if sub.Status == "" {
		sub.Status = task.StatusPending
	}
	if sub.Priority == "" {
		sub.Priority = t.Priority
	}
	if !sub.Priority.IsValid() {
		return task.Ref{}, errors.NewValidationError("must be high, medium, or low").WithField("priority")
	}

	now := time.Now().UTC()
	sub.Index = len(t.Subtasks) + 1
	if sub.Dependencies == nil {
		sub.Dependencies = []task.Ref{}
	}
	sub.Created = now
	sub.Updated = now

	t.Subtasks = append(t.Subtasks, sub)
	t.Updated = now
	return task.SubRef(parent, sub.Index), nil
}

// RemoveSubtasks drops every subtask of the parent and returns how many
// were removed. Dependency edges referencing the removed subtasks must
// already have been cleared through the graph; this only drops the
// records themselves.
func (s *Store) RemoveSubtasks(parent int) (int, error) {
	t, ok := s.tasks[parent]
	if !ok {
		return 0, errors.NewNotFoundError("task", task.TaskRef(parent).String())
	}
	n := len(t.Subtasks)
	t.Subtasks = nil
	t.Updated = time.Now().UTC()
	return n, nil
}

// Filter selects tasks for List. Zero-value fields match everything.
type Filter struct {
	// Status keeps tasks whose status is in the set.
	Status []task.Status
	// Priority keeps tasks whose priority is in the set.
	Priority []task.Priority
	// Title keeps tasks whose title matches the glob.
	Title glob.Glob
}

func (f Filter) match(t *task.Task) bool {
	if len(f.Status) > 0 && !containsStatus(f.Status, t.Status) {
		return false
	}
	if len(f.Priority) > 0 && !containsPriority(f.Priority, t.Priority) {
		return false
	}
	if f.Title != nil && !f.Title.Match(t.Title) {
		return false
	}
	return true
}

// List returns copies of the tasks matching the filter, ordered by id.
func (s *Store) List(f Filter) []task.Task {
	var out []task.Task
	for _, id := range s.sortedIDs() {
		t := s.tasks[id]
		if f.match(t) {
			out = append(out, *t.Clone())
		}
	}
	return out
}

// Edge is a dependency edge in display terms, reported by cascade
// deletes and graph repairs.
type Edge struct {
	From task.Ref `json:"from"`
	To   task.Ref `json:"to"`
}

// String renders the edge as "from -> to".
func (e Edge) String() string {
	return e.From.String() + " -> " + e.To.String()
}

func (s *Store) sortedIDs() []int {
	ids := make([]int, 0, len(s.tasks))
	for id := range s.tasks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// resolve maps a ref to its task record and, for subtask refs, the
// subtask record. Callers own the single-writer discipline.
func (s *Store) resolve(r task.Ref) (*task.Task, *task.Subtask, error) {
	t, ok := s.tasks[r.Task]
	if !ok {
		return nil, nil, errors.NewNotFoundError("task", task.TaskRef(r.Task).String())
	}
	if !r.IsSubtask() {
		return t, nil, nil
	}
	sub := t.Subtask(r.Sub)
	if sub == nil {
		return nil, nil, errors.NewNotFoundError("subtask", r.String())
	}
	return t, sub, nil
}

func containsStatus(set []task.Status, v task.Status) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsPriority(set []task.Priority, v task.Priority) bool {
	for _, p := range set {
		if p == v {
			return true
		}
	}
	return false
}
