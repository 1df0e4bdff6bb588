package ingest

import (
	"testing"

	"github.com/Iron-Ham/taskmill/internal/engine"
	"github.com/Iron-Ham/taskmill/internal/errors"
	"github.com/Iron-Ham/taskmill/internal/task"
)

func TestParseJSONPlan(t *testing.T) {
	doc := []byte(`{
		"tasks": [
			{"title": "Set up schema", "description": "tables and indexes", "priority": "HIGH"},
			{"title": "Write importer", "depends_on": [1], "test_strategy": "golden files"},
			{"title": "Wire CLI", "depends_on": [1, 2], "external_deps": ["7.2"]}
		]
	}`)

	batch, err := ParseJSON(doc, task.PriorityMedium)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("batch = %d tasks, want 3", len(batch))
	}

	if batch[0].Task.Priority != task.PriorityHigh {
		t.Errorf("priority = %q, want parsed high", batch[0].Task.Priority)
	}
	if batch[1].Task.Priority != task.PriorityMedium {
		t.Errorf("priority = %q, want document default", batch[1].Task.Priority)
	}
	if batch[1].Task.TestStrategy != "golden files" {
		t.Errorf("test strategy = %q", batch[1].Task.TestStrategy)
	}

	deps := batch[2].Deps
	if len(deps) != 3 {
		t.Fatalf("deps = %v, want 3", deps)
	}
	if deps[0] != engine.OrdinalDep(1) || deps[1] != engine.OrdinalDep(2) {
		t.Errorf("ordinal deps = %v", deps[:2])
	}
	if deps[2] != engine.RefDep(task.SubRef(7, 2)) {
		t.Errorf("external dep = %v, want ref 7.2", deps[2])
	}
}

func TestParseJSONRejections(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"no tasks", `{"tasks": []}`},
		{"missing title", `{"tasks": [{"title": "  "}]}`},
		{"bad priority", `{"tasks": [{"title": "x", "priority": "urgent"}]}`},
		{"ordinal out of range", `{"tasks": [{"title": "x", "depends_on": [5]}]}`},
		{"self ordinal", `{"tasks": [{"title": "x", "depends_on": [1]}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tc.doc), task.PriorityMedium)
			if !errors.Is(err, errors.ErrValidation) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}

	if _, err := ParseJSON([]byte(`{"tasks`), task.PriorityMedium); err == nil {
		t.Error("malformed JSON accepted")
	}
}

const outline = `# Q3 plan

Some preamble that belongs to no task.

## Task 1: Design storage layout
Priority: high
Decide on the on-disk document shape.
Keep it a single file.

## Task 2: Implement persistence
Depends: 1
Test Strategy: round-trip through a temp dir
Atomic writes only.

## Task 3: Hook up watcher
Depends: 1, 2, 4.1
`

func TestParseMarkdownOutline(t *testing.T) {
	batch, err := ParseMarkdown([]byte(outline), task.PriorityLow)
	if err != nil {
		t.Fatalf("ParseMarkdown: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("batch = %d tasks, want 3", len(batch))
	}

	first := batch[0]
	if first.Task.Title != "Design storage layout" {
		t.Errorf("title = %q", first.Task.Title)
	}
	if first.Task.Priority != task.PriorityHigh {
		t.Errorf("priority = %q, want high from metadata line", first.Task.Priority)
	}
	if first.Task.Description != "Decide on the on-disk document shape.\nKeep it a single file." {
		t.Errorf("description = %q", first.Task.Description)
	}

	second := batch[1]
	if second.Task.Priority != task.PriorityLow {
		t.Errorf("priority = %q, want document default", second.Task.Priority)
	}
	if second.Task.TestStrategy != "round-trip through a temp dir" {
		t.Errorf("test strategy = %q", second.Task.TestStrategy)
	}
	if len(second.Deps) != 1 || second.Deps[0] != engine.OrdinalDep(1) {
		t.Errorf("deps = %v, want ordinal 1", second.Deps)
	}

	third := batch[2]
	want := []engine.BatchDep{
		engine.OrdinalDep(1),
		engine.OrdinalDep(2),
		engine.RefDep(task.SubRef(4, 1)),
	}
	if len(third.Deps) != len(want) {
		t.Fatalf("deps = %v, want %v", third.Deps, want)
	}
	for i := range want {
		if third.Deps[i] != want[i] {
			t.Errorf("dep %d = %v, want %v", i, third.Deps[i], want[i])
		}
	}
}

func TestParseMarkdownRejections(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"no headers", "just prose, no tasks"},
		{"headers out of order", "## Task 2: starts wrong\n"},
		{"gap in numbering", "## Task 1: a\n## Task 3: c\n"},
		{"self dependency", "## Task 1: a\nDepends: 1\n"},
		{"garbage dependency", "## Task 1: a\nDepends: soon\n"},
		{"bad priority", "## Task 1: a\nPriority: urgent\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseMarkdown([]byte(tc.doc), task.PriorityMedium)
			if !errors.Is(err, errors.ErrValidation) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestParseSniffsFormat(t *testing.T) {
	jsonDoc := []byte(`  {"tasks": [{"title": "from json"}]}`)
	batch, err := Parse(jsonDoc, task.PriorityMedium)
	if err != nil || batch[0].Task.Title != "from json" {
		t.Errorf("JSON sniff: batch=%v err=%v", batch, err)
	}

	mdDoc := []byte("## Task 1: from markdown\n")
	batch, err = Parse(mdDoc, task.PriorityMedium)
	if err != nil || batch[0].Task.Title != "from markdown" {
		t.Errorf("markdown sniff: batch=%v err=%v", batch, err)
	}
}
