// Package engine is the transactional facade over the store, graph,
// workflow, selector, and advisor.
//
// Every public mutation reads the current snapshot, applies and
// validates the change on a clone, persists the clone atomically, and
// only then swaps it in. A rejected or failed operation therefore has
// no observable effect, in memory or on disk, and is independently
// retryable.
//
// The engine assumes cooperative single-threaded use: one mutation in
// flight at a time. Callers embedding it in a concurrent host are
// responsible for serializing access.
package engine

import (
	"errors"
	"io/fs"
	"time"

	"github.com/Iron-Ham/taskmill/internal/advisor"
	"github.com/Iron-Ham/taskmill/internal/graph"
	"github.com/Iron-Ham/taskmill/internal/logging"
	"github.com/Iron-Ham/taskmill/internal/selector"
	"github.com/Iron-Ham/taskmill/internal/store"
	"github.com/Iron-Ham/taskmill/internal/task"
	"github.com/Iron-Ham/taskmill/internal/workflow"
)

// Engine owns the live snapshot and the persistence path.
type Engine struct {
	path        string
	log         *logging.Logger
	advisor     *advisor.Advisor
	lockTimeout time.Duration
	snapshot    *store.Store
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to record committed mutations.
func WithLogger(log *logging.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithAdvisor replaces the default complexity advisor.
func WithAdvisor(a *advisor.Advisor) Option {
	return func(e *Engine) { e.advisor = a }
}

// WithLockTimeout bounds how long loads and saves wait for the
// snapshot's file lock. Zero waits indefinitely.
func WithLockTimeout(d time.Duration) Option {
	return func(e *Engine) { e.lockTimeout = d }
}

// Open loads the store snapshot at path, starting empty if no snapshot
// exists yet.
func Open(path string, opts ...Option) (*Engine, error) {
	e := &Engine{
		path:    path,
		log:     logging.NopLogger(),
		advisor: advisor.New(),
	}
	for _, opt := range opts {
		opt(e)
	}

	s, err := store.LoadTimeout(path, e.lockTimeout)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		s = store.New()
	}
	e.snapshot = s
	return e, nil
}

// Path returns the snapshot file path.
func (e *Engine) Path() string {
	return e.path
}

// Snapshot returns an isolated copy of the current store for read-only
// traversal.
func (e *Engine) Snapshot() *store.Store {
	return e.snapshot.Clone()
}

// mutate runs fn against a clone of the current snapshot, persists the
// result, and swaps it in. If fn or persistence fails, the current
// snapshot is untouched.
func (e *Engine) mutate(fn func(*store.Store) error) error {
	next := e.snapshot.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := next.SaveTimeout(e.path, e.lockTimeout); err != nil {
		return err
	}
	e.snapshot = next
	return nil
}

// Create adds a task and its initial dependency edges in one
// transaction. Each edge passes the graph's duplicate, existence, and
// cycle checks; any rejection aborts the whole creation.
func (e *Engine) Create(t task.Task, deps []task.Ref) (int, error) {
	var id int
	err := e.mutate(func(s *store.Store) error {
		var err error
		if id, err = s.Create(t); err != nil {
			return err
		}
		for _, dep := range deps {
			if err := graph.AddDependency(s, task.TaskRef(id), dep); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	e.log.Info("task created", "id", id, "title", t.Title)
	return id, nil
}

// Get returns the task with the given id.
func (e *Engine) Get(id int) (task.Task, error) {
	return e.snapshot.Get(id)
}

// GetSubtask returns the subtask addressed by the ref.
func (e *Engine) GetSubtask(r task.Ref) (task.Subtask, error) {
	return e.snapshot.GetSubtask(r)
}

// List returns the tasks matching the filter, ordered by id.
func (e *Engine) List(f store.Filter) []task.Task {
	return e.snapshot.List(f)
}

// Update applies a field patch to a task or subtask.
func (e *Engine) Update(r task.Ref, p store.Patch) (task.Task, error) {
	var updated task.Task
	err := e.mutate(func(s *store.Store) error {
		var err error
		updated, err = s.Update(r, p)
		return err
	})
	if err != nil {
		return task.Task{}, err
	}
	e.log.Info("task updated", "ref", r.String())
	return updated, nil
}

// AppendDetails adds a note to the ref's implementation log.
func (e *Engine) AppendDetails(r task.Ref, note string) error {
	err := e.mutate(func(s *store.Store) error {
		return s.AppendDetails(r, note)
	})
	if err != nil {
		return err
	}
	e.log.Info("details appended", "ref", r.String())
	return nil
}

// Delete removes a task. Without cascade it fails if anything depends
// on the task or its subtasks; with cascade the dangling references are
// pruned and returned.
func (e *Engine) Delete(id int, cascade bool) ([]store.Edge, error) {
	var pruned []store.Edge
	err := e.mutate(func(s *store.Store) error {
		var err error
		pruned, err = s.Delete(id, cascade)
		return err
	})
	if err != nil {
		return nil, err
	}
	e.log.Info("task deleted", "id", id, "cascade", cascade, "pruned_edges", len(pruned))
	for _, edge := range pruned {
		e.log.Debug("dependency pruned", "from", edge.From.String(), "to", edge.To.String())
	}
	return pruned, nil
}

// SetStatus applies a status change through the workflow.
func (e *Engine) SetStatus(r task.Ref, raw string) (workflow.Change, error) {
	var change workflow.Change
	err := e.mutate(func(s *store.Store) error {
		var err error
		change, err = workflow.SetStatus(s, r, raw)
		return err
	})
	if err != nil {
		return workflow.Change{}, err
	}
	e.log.Info("status changed", "ref", r.String(), "from", change.From.String(), "to", change.To.String())
	return change, nil
}

// AddDependency inserts a dependency edge through the graph.
func (e *Engine) AddDependency(from, to task.Ref) error {
	err := e.mutate(func(s *store.Store) error {
		return graph.AddDependency(s, from, to)
	})
	if err != nil {
		return err
	}
	e.log.Info("dependency added", "from", from.String(), "to", to.String())
	return nil
}

// RemoveDependency deletes a dependency edge through the graph.
func (e *Engine) RemoveDependency(from, to task.Ref) error {
	err := e.mutate(func(s *store.Store) error {
		return graph.RemoveDependency(s, from, to)
	})
	if err != nil {
		return err
	}
	e.log.Info("dependency removed", "from", from.String(), "to", to.String())
	return nil
}

// Validate audits the graph for cycles, dangling targets, and
// self-references. Read-only.
func (e *Engine) Validate() []graph.Violation {
	return graph.Validate(e.snapshot)
}

// Fix removes dangling and self-referential edges and reports the
// repairs. Cycles are reported by Validate, never auto-broken.
func (e *Engine) Fix() ([]graph.Repair, error) {
	var repairs []graph.Repair
	err := e.mutate(func(s *store.Store) error {
		var err error
		repairs, err = graph.Fix(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(repairs) > 0 {
		e.log.Info("graph repaired", "removed_edges", len(repairs))
	}
	return repairs, nil
}

// Next returns the best actionable task or subtask, or false when
// nothing is eligible. Pure with respect to the snapshot.
func (e *Engine) Next() (selector.Candidate, bool) {
	return selector.Next(e.snapshot)
}

// Candidates returns the full ranked actionable set.
func (e *Engine) Candidates() []selector.Candidate {
	return selector.Candidates(e.snapshot)
}

// Score returns the complexity score for a task.
func (e *Engine) Score(id int) (int, error) {
	t, err := e.snapshot.Get(id)
	if err != nil {
		return 0, err
	}
	return e.advisor.Score(t), nil
}

// Analyze scores every task and returns the complexity report.
func (e *Engine) Analyze() advisor.Report {
	return e.advisor.Analyze(e.snapshot)
}

// Expand appends drafted subtasks to a parent task.
func (e *Engine) Expand(parent int, drafts []advisor.Draft) ([]task.Ref, error) {
	var refs []task.Ref
	err := e.mutate(func(s *store.Store) error {
		var err error
		refs, err = advisor.Expand(s, parent, drafts)
		return err
	})
	if err != nil {
		return nil, err
	}
	e.log.Info("task expanded", "id", parent, "subtasks", len(refs))
	return refs, nil
}

// ClearSubtasks removes all subtasks of a parent and the dependency
// edges referencing them.
func (e *Engine) ClearSubtasks(parent int) (int, error) {
	var removed int
	err := e.mutate(func(s *store.Store) error {
		var err error
		removed, err = advisor.ClearSubtasks(s, parent)
		return err
	})
	if err != nil {
		return 0, err
	}
	e.log.Info("subtasks cleared", "id", parent, "removed", removed)
	return removed, nil
}

// CreateBatch creates several tasks and their dependency edges as one
// transaction, used by bulk import. Dependencies in each draft may
// reference other drafts by position (1-based) or existing store tasks
// by ref. Nothing is committed if any creation or edge is rejected.
func (e *Engine) CreateBatch(batch []BatchTask) ([]int, error) {
	var ids []int
	err := e.mutate(func(s *store.Store) error {
		ids = ids[:0]
		for _, bt := range batch {
			id, err := s.Create(bt.Task)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		for i, bt := range batch {
			from := task.TaskRef(ids[i])
			for _, dep := range bt.Deps {
				to, err := dep.resolve(ids)
				if err != nil {
					return err
				}
				if err := graph.AddDependency(s, from, to); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.log.Info("batch imported", "tasks", len(ids))
	return ids, nil
}
