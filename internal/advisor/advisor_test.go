package advisor

import (
	"strings"
	"testing"

	"github.com/Iron-Ham/taskmill/internal/errors"
	"github.com/Iron-Ham/taskmill/internal/graph"
	"github.com/Iron-Ham/taskmill/internal/store"
	"github.com/Iron-Ham/taskmill/internal/task"
)

func seed(t *testing.T, s *store.Store, title string) int {
	t.Helper()
	id, err := s.Create(task.Task{Title: title, Priority: task.PriorityMedium})
	if err != nil {
		t.Fatalf("Create(%q): %v", title, err)
	}
	return id
}

func TestDefaultScoreFloor(t *testing.T) {
	got := DefaultScore(task.Task{Title: "tiny"})
	if got != 1 {
		t.Errorf("score for empty task = %d, want 1", got)
	}
}

func TestDefaultScoreGrowsWithDescribedWork(t *testing.T) {
	small := task.Task{Title: "a", Description: "implement the thing"}
	big := task.Task{
		Title: "a",
		Description: "implement the parser, then validate input and " +
			"migrate the old data. Also document and test everything.\n" +
			"- parse headers\n- build index\n- write output\n" +
			"1. verify checksums\n2. deploy",
		Details: strings.Repeat("more context about the work involved. ", 30),
	}

	lo, hi := DefaultScore(small), DefaultScore(big)
	if hi <= lo {
		t.Errorf("scores: small=%d big=%d, want strictly increasing", lo, hi)
	}
}

func TestScoreClamped(t *testing.T) {
	a := New(WithScoreFunc(func(task.Task) int { return 99 }))
	if got := a.Score(task.Task{}); got != 10 {
		t.Errorf("Score = %d, want clamped to 10", got)
	}
	a = New(WithScoreFunc(func(task.Task) int { return -5 }))
	if got := a.Score(task.Task{}); got != 1 {
		t.Errorf("Score = %d, want clamped to 1", got)
	}
}

func TestRecommendedSubtasks(t *testing.T) {
	for score, want := range map[int]int{
		1: 3, 3: 3, 4: 3, 5: 4, 7: 4, 8: 5, 10: 5,
	} {
		if got := RecommendedSubtasks(score); got != want {
			t.Errorf("RecommendedSubtasks(%d) = %d, want %d", score, got, want)
		}
	}
}

func TestExpandAppendsAfterExisting(t *testing.T) {
	s := store.New()
	parent := seed(t, s, "parent")
	if _, err := s.AppendSubtask(parent, task.Subtask{Title: "existing"}); err != nil {
		t.Fatal(err)
	}

	refs, err := Expand(s, parent, []Draft{
		{Title: "first new"},
		{Title: "second new", Priority: task.PriorityHigh},
	})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []task.Ref{task.SubRef(parent, 2), task.SubRef(parent, 3)}
	if len(refs) != 2 || refs[0] != want[0] || refs[1] != want[1] {
		t.Errorf("refs = %v, want %v", refs, want)
	}

	sub, err := s.GetSubtask(task.SubRef(parent, 3))
	if err != nil {
		t.Fatal(err)
	}
	if sub.Title != "second new" || sub.Priority != task.PriorityHigh {
		t.Errorf("subtask = %+v, want drafted title and priority", sub)
	}
	if sub.Status != task.StatusPending {
		t.Errorf("status = %q, want pending", sub.Status)
	}
}

func TestExpandRejectsEmptyAndMissing(t *testing.T) {
	s := store.New()
	parent := seed(t, s, "parent")

	if _, err := Expand(s, parent, nil); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("empty drafts: err = %v, want validation error", err)
	}
	if _, err := Expand(s, 99, []Draft{{Title: "x"}}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("missing parent: err = %v, want not found", err)
	}
}

func TestClearSubtasksRemovesEdges(t *testing.T) {
	s := store.New()
	parent := seed(t, s, "parent")
	s.AppendSubtask(parent, task.Subtask{Title: "a"})
	s.AppendSubtask(parent, task.Subtask{Title: "b"})
	other := seed(t, s, "dependent")
	if err := graph.AddDependency(s, task.TaskRef(other), task.SubRef(parent, 2)); err != nil {
		t.Fatal(err)
	}

	n, err := ClearSubtasks(s, parent)
	if err != nil {
		t.Fatalf("ClearSubtasks: %v", err)
	}
	if n != 2 {
		t.Errorf("removed = %d, want 2", n)
	}

	deps, err := s.Deps(task.TaskRef(other))
	if err != nil {
		t.Fatal(err)
	}
	if len(deps) != 0 {
		t.Errorf("dependent still carries edges %v after clearing", deps)
	}

	got, err := s.Get(parent)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Subtasks) != 0 {
		t.Errorf("parent still has %d subtasks", len(got.Subtasks))
	}
}

func TestAnalyzeBucketsScores(t *testing.T) {
	s := store.New()
	seed(t, s, "simple")
	seed(t, s, "also simple")
	hard := seed(t, s, "hard")

	a := New(WithScoreFunc(func(t task.Task) int {
		if t.ID == hard {
			return 9
		}
		return 2
	}))

	report := a.Analyze(s)
	if report.Stats.Total != 3 || report.Stats.Low != 2 || report.Stats.High != 1 {
		t.Errorf("stats = %+v, want total 3, low 2, high 1", report.Stats)
	}
	if len(report.Tasks) != 3 {
		t.Fatalf("tasks = %d, want 3", len(report.Tasks))
	}
	for i := 1; i < len(report.Tasks); i++ {
		if report.Tasks[i-1].TaskID >= report.Tasks[i].TaskID {
			t.Errorf("report not ordered by id: %v then %v",
				report.Tasks[i-1].TaskID, report.Tasks[i].TaskID)
		}
	}
	last := report.Tasks[2]
	if last.Score != 9 || last.RecommendedSubtasks != 5 {
		t.Errorf("entry = %+v, want score 9 recommending 5 subtasks", last)
	}
	if report.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}
