package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Iron-Ham/taskmill/internal/advisor"
	"github.com/Iron-Ham/taskmill/internal/errors"
	"github.com/Iron-Ham/taskmill/internal/task"
)

func open(t *testing.T, path string) *Engine {
	t.Helper()
	e, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%q): %v", path, err)
	}
	return e
}

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "tasks.json")
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	path := storePath(t)
	e := open(t, path)
	if e.Snapshot().Len() != 0 {
		t.Errorf("fresh engine has %d tasks, want 0", e.Snapshot().Len())
	}
	// Opening must not create the file; only mutations persist.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Stat after Open: %v, want not exist", err)
	}
}

func TestCreatePersistsAcrossReopen(t *testing.T) {
	path := storePath(t)
	e := open(t, path)

	id, err := e.Create(task.Task{Title: "build index", Priority: task.PriorityHigh}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	e2 := open(t, path)
	got, err := e2.Get(id)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Title != "build index" || got.Priority != task.PriorityHigh {
		t.Errorf("reloaded task = %+v", got)
	}
}

func TestCreateWithDeps(t *testing.T) {
	e := open(t, storePath(t))
	a, _ := e.Create(task.Task{Title: "a"}, nil)
	b, err := e.Create(task.Task{Title: "b"}, []task.Ref{task.TaskRef(a)})
	if err != nil {
		t.Fatalf("Create with deps: %v", err)
	}

	got, _ := e.Get(b)
	if len(got.Dependencies) != 1 || got.Dependencies[0] != task.TaskRef(a) {
		t.Errorf("deps = %v, want [%d]", got.Dependencies, a)
	}
}

func TestCreateRollsBackOnBadDep(t *testing.T) {
	path := storePath(t)
	e := open(t, path)
	e.Create(task.Task{Title: "only"}, nil)

	before := e.Snapshot().Len()
	_, err := e.Create(task.Task{Title: "broken"}, []task.Ref{task.TaskRef(42)})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if e.Snapshot().Len() != before {
		t.Error("failed create left a task behind in memory")
	}

	e2 := open(t, path)
	if e2.Snapshot().Len() != before {
		t.Error("failed create was persisted to disk")
	}
}

func TestAddDependencyRejectsCycleAtomically(t *testing.T) {
	path := storePath(t)
	e := open(t, path)
	a, _ := e.Create(task.Task{Title: "a"}, nil)
	b, _ := e.Create(task.Task{Title: "b"}, []task.Ref{task.TaskRef(a)})

	err := e.AddDependency(task.TaskRef(a), task.TaskRef(b))
	if !errors.Is(err, errors.ErrCycle) {
		t.Fatalf("err = %v, want cycle error", err)
	}

	deps, _ := e.Snapshot().Deps(task.TaskRef(a))
	if len(deps) != 0 {
		t.Errorf("rejected edge appears in memory: %v", deps)
	}
	e2 := open(t, path)
	deps, _ = e2.Snapshot().Deps(task.TaskRef(a))
	if len(deps) != 0 {
		t.Errorf("rejected edge was persisted: %v", deps)
	}
}

func TestSetStatusAndNext(t *testing.T) {
	e := open(t, storePath(t))
	a, _ := e.Create(task.Task{Title: "first"}, nil)
	b, _ := e.Create(task.Task{Title: "second", Priority: task.PriorityHigh},
		[]task.Ref{task.TaskRef(a)})

	c, ok := e.Next()
	if !ok || c.Ref != task.TaskRef(a) {
		t.Fatalf("Next = %v, want blocked-free task %d", c.Ref, a)
	}

	change, err := e.SetStatus(task.TaskRef(a), "Done")
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if change.To != task.StatusDone {
		t.Errorf("change.To = %q, want done", change.To)
	}

	c, ok = e.Next()
	if !ok || c.Ref != task.TaskRef(b) {
		t.Errorf("Next after completing dep = %v, want %d", c.Ref, b)
	}
}

func TestDeleteCascadePersists(t *testing.T) {
	path := storePath(t)
	e := open(t, path)
	a, _ := e.Create(task.Task{Title: "a"}, nil)
	b, _ := e.Create(task.Task{Title: "b"}, []task.Ref{task.TaskRef(a)})

	if _, err := e.Delete(a, false); !errors.Is(err, errors.ErrConflict) {
		t.Fatalf("non-cascade delete of depended-on task: err = %v, want conflict", err)
	}

	pruned, err := e.Delete(a, true)
	if err != nil {
		t.Fatalf("cascade delete: %v", err)
	}
	if len(pruned) != 1 {
		t.Errorf("pruned edges = %v, want one", pruned)
	}

	e2 := open(t, path)
	if _, err := e2.Get(a); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("deleted task survived reopen: %v", err)
	}
	deps, _ := e2.Snapshot().Deps(task.TaskRef(b))
	if len(deps) != 0 {
		t.Errorf("pruned edge survived reopen: %v", deps)
	}
}

func TestExpandAndClearSubtasks(t *testing.T) {
	e := open(t, storePath(t))
	parent, _ := e.Create(task.Task{Title: "epic"}, nil)

	refs, err := e.Expand(parent, []advisor.Draft{
		{Title: "setup"}, {Title: "core"}, {Title: "polish"},
	})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(refs) != 3 || refs[0] != task.SubRef(parent, 1) {
		t.Errorf("refs = %v", refs)
	}

	n, err := e.ClearSubtasks(parent)
	if err != nil {
		t.Fatalf("ClearSubtasks: %v", err)
	}
	if n != 3 {
		t.Errorf("cleared = %d, want 3", n)
	}
}

func TestCreateBatchAllOrNothing(t *testing.T) {
	path := storePath(t)
	e := open(t, path)

	ids, err := e.CreateBatch([]BatchTask{
		{Task: task.Task{Title: "foundation"}},
		{Task: task.Task{Title: "walls"}, Deps: []BatchDep{OrdinalDep(1)}},
		{Task: task.Task{Title: "roof"}, Deps: []BatchDep{OrdinalDep(2)}},
	})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("ids = %v, want 3", ids)
	}
	deps, _ := e.Snapshot().Deps(task.TaskRef(ids[2]))
	if len(deps) != 1 || deps[0] != task.TaskRef(ids[1]) {
		t.Errorf("roof deps = %v, want [%d]", deps, ids[1])
	}

	before := e.Snapshot().Len()
	_, err = e.CreateBatch([]BatchTask{
		{Task: task.Task{Title: "ok"}},
		{Task: task.Task{Title: "bad"}, Deps: []BatchDep{OrdinalDep(9)}},
	})
	if !errors.Is(err, errors.ErrValidation) {
		t.Fatalf("out-of-range ordinal: err = %v, want validation", err)
	}
	if e.Snapshot().Len() != before {
		t.Error("failed batch left tasks in memory")
	}
	e2 := open(t, path)
	if e2.Snapshot().Len() != before {
		t.Error("failed batch was persisted")
	}
}

func TestScoreMissingTask(t *testing.T) {
	e := open(t, storePath(t))
	if _, err := e.Score(99); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Score(99) err = %v, want not found", err)
	}
}
