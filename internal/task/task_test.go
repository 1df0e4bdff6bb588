package task

import "testing"

func TestAppendDetails(t *testing.T) {
	var task Task
	task.AppendDetails("first note")
	task.AppendDetails("  ") // blank notes are dropped
	task.AppendDetails("second note")

	want := "first note\n\nsecond note"
	if task.Details != want {
		t.Errorf("Details = %q, want %q", task.Details, want)
	}
}

func TestSubtaskLookup(t *testing.T) {
	task := Task{
		ID: 4,
		Subtasks: []Subtask{
			{Index: 1, Title: "one"},
			{Index: 2, Title: "two", Status: StatusDone},
		},
	}

	sub := task.Subtask(2)
	if sub == nil || sub.Title != "two" {
		t.Fatalf("Subtask(2) = %+v, want title %q", sub, "two")
	}
	if task.Subtask(3) != nil {
		t.Error("Subtask(3) should be nil")
	}
	if got := task.SubtasksDone(); got != 1 {
		t.Errorf("SubtasksDone() = %d, want 1", got)
	}
}

func TestTaskClone(t *testing.T) {
	orig := Task{
		ID:           1,
		Title:        "original",
		Dependencies: []Ref{TaskRef(2)},
		Subtasks: []Subtask{
			{Index: 1, Title: "sub", Dependencies: []Ref{TaskRef(3)}},
		},
	}

	cp := orig.Clone()
	cp.Title = "changed"
	cp.Dependencies[0] = TaskRef(99)
	cp.Subtasks[0].Dependencies[0] = TaskRef(99)

	if orig.Title != "original" {
		t.Error("clone shares Title with original")
	}
	if orig.Dependencies[0] != TaskRef(2) {
		t.Error("clone shares Dependencies backing array")
	}
	if orig.Subtasks[0].Dependencies[0] != TaskRef(3) {
		t.Error("clone shares subtask Dependencies backing array")
	}
}
