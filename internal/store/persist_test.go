package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/Iron-Ham/taskmill/internal/errors"
	"github.com/Iron-Ham/taskmill/internal/task"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")

	s := New()
	a := mustCreate(t, s, "first")
	b := mustCreate(t, s, "second")
	if err := s.SetDeps(task.TaskRef(b), []task.Ref{task.TaskRef(a)}); err != nil {
		t.Fatalf("SetDeps: %v", err)
	}
	if _, err := s.AppendSubtask(a, task.Subtask{Title: "sub"}); err != nil {
		t.Fatalf("AppendSubtask: %v", err)
	}
	if err := s.SetStatus(task.SubRef(a, 1), task.StatusDone); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Len() != 2 {
		t.Fatalf("loaded %d tasks, want 2", loaded.Len())
	}
	deps, err := loaded.Deps(task.TaskRef(b))
	if err != nil {
		t.Fatalf("Deps: %v", err)
	}
	if len(deps) != 1 || deps[0] != task.TaskRef(a) {
		t.Errorf("deps = %v, want [%v]", deps, task.TaskRef(a))
	}
	sub, err := loaded.GetSubtask(task.SubRef(a, 1))
	if err != nil {
		t.Fatalf("GetSubtask: %v", err)
	}
	if sub.Status != task.StatusDone {
		t.Errorf("subtask status = %q, want done", sub.Status)
	}

	// Newly loaded stores keep assigning fresh ids.
	next, err := loaded.Create(task.Task{Title: "third"})
	if err != nil {
		t.Fatalf("Create after load: %v", err)
	}
	if next != 3 {
		t.Errorf("next id = %d, want 3", next)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load of corrupt file should fail")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.json")

	s := New()
	mustCreate(t, s, "task")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	// No stray temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("temp file should be renamed away, stat err = %v", err)
	}
}
