// Package advisor scores tasks for breakdown-worthiness and manages
// subtask expansion.
//
// The scoring formula is a policy choice, not a correctness constraint:
// it is pluggable via WithScoreFunc, and the default heuristic is built
// from additive, non-decreasing terms so that describing more sub-steps
// can never lower a task's score. The advisor never generates task
// content itself; expansion stores drafts supplied by the caller.
package advisor

import (
	"strings"
	"time"

	"github.com/Iron-Ham/taskmill/internal/errors"
	"github.com/Iron-Ham/taskmill/internal/graph"
	"github.com/Iron-Ham/taskmill/internal/store"
	"github.com/Iron-Ham/taskmill/internal/task"
)

// ScoreFunc maps a task to a complexity score in 1..10.
type ScoreFunc func(t task.Task) int

// Advisor scores tasks and produces complexity reports.
type Advisor struct {
	score ScoreFunc
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithScoreFunc replaces the default scoring heuristic.
func WithScoreFunc(f ScoreFunc) Option {
	return func(a *Advisor) { a.score = f }
}

// New creates an Advisor with the default heuristic unless overridden.
func New(opts ...Option) *Advisor {
	a := &Advisor{score: DefaultScore}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Score returns the complexity score for a task, clamped to 1..10.
func (a *Advisor) Score(t task.Task) int {
	n := a.score(t)
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}

// actionVerbs is the lexicon used to count distinct described actions.
var actionVerbs = []string{
	"add", "build", "configure", "create", "define", "delete", "deploy",
	"design", "document", "extend", "fix", "implement", "integrate",
	"migrate", "parse", "refactor", "remove", "rename", "replace",
	"test", "update", "validate", "verify", "write",
}

// DefaultScore is the built-in heuristic: a base of 1 plus additive
// terms for description length, distinct action verbs, enumerated step
// lines, and existing subtask count. Every term is non-decreasing in
// the amount of described work, so the total is monotonic.
func DefaultScore(t task.Task) int {
	text := strings.ToLower(t.Description + "\n" + t.Details)

	score := 1
	score += min(3, len(text)/240)
	score += min(3, countVerbs(text))
	score += min(2, countStepLines(text)/2)
	score += min(2, len(t.Subtasks)/2)
	return score
}

func countVerbs(text string) int {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z')
	}) {
		words[w] = true
	}

	n := 0
	for _, v := range actionVerbs {
		if words[v] {
			n++
		}
	}
	return n
}

// countStepLines counts lines that read like enumerated sub-steps:
// bullet markers or a leading number.
func countStepLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			n++
			continue
		}
		if len(line) > 1 && line[0] >= '1' && line[0] <= '9' &&
			(line[1] == '.' || line[1] == ')') {
			n++
		}
	}
	return n
}

// RecommendedSubtasks maps a score to a suggested breakdown size.
func RecommendedSubtasks(score int) int {
	switch {
	case score >= 8:
		return 5
	case score >= 5:
		return 4
	default:
		return 3
	}
}

// Draft is caller-supplied content for a new subtask. Priority may be
// empty to inherit the parent's.
type Draft struct {
	Title        string
	Description  string
	TestStrategy string
	Priority     task.Priority
}

// Expand appends the drafted subtasks to the parent, after any existing
// ones, with contiguous dotted ids and default status pending. Returns
// the refs of the new subtasks in order.
func Expand(s *store.Store, parent int, drafts []Draft) ([]task.Ref, error) {
	if len(drafts) == 0 {
		return nil, errors.NewValidationError("expansion requires at least one subtask").WithField("subtasks")
	}
	if _, err := s.Get(parent); err != nil {
		return nil, err
	}

	refs := make([]task.Ref, 0, len(drafts))
	for _, d := range drafts {
		r, err := s.AppendSubtask(parent, task.Subtask{
			Title:        d.Title,
			Description:  d.Description,
			TestStrategy: d.TestStrategy,
			Priority:     d.Priority,
		})
		if err != nil {
			return refs, err
		}
		refs = append(refs, r)
	}
	return refs, nil
}

// ClearSubtasks removes every subtask of the parent along with any
// dependency edges referencing them. Edge removal runs through the
// graph's removal path so the invariants it maintains stay intact.
func ClearSubtasks(s *store.Store, parent int) (int, error) {
	t, err := s.Get(parent)
	if err != nil {
		return 0, err
	}

	removed := make([]task.Ref, 0, len(t.Subtasks))
	for _, sub := range t.Subtasks {
		removed = append(removed, task.SubRef(parent, sub.Index))
	}

	for _, dependent := range s.Dependents(removed...) {
		deps, err := s.Deps(dependent)
		if err != nil {
			return 0, err
		}
		for _, d := range deps {
			if d.Task == parent && d.IsSubtask() {
				if err := graph.RemoveDependency(s, dependent, d); err != nil {
					return 0, err
				}
			}
		}
	}

	return s.RemoveSubtasks(parent)
}

// Complexity is the per-task entry of a complexity report.
type Complexity struct {
	TaskID              int    `json:"task_id"`
	Title               string `json:"title"`
	Score               int    `json:"score"`
	RecommendedSubtasks int    `json:"recommended_subtasks"`
	SubtaskCount        int    `json:"subtask_count"`
}

// Stats buckets report entries by score band.
type Stats struct {
	Total  int `json:"total"`
	Low    int `json:"low"`    // score 1-3
	Medium int `json:"medium"` // score 4-7
	High   int `json:"high"`   // score 8-10
}

// Report is the persisted complexity analysis payload.
type Report struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Tasks       []Complexity `json:"tasks"`
	Stats       Stats        `json:"stats"`
}

// Analyze scores every task in the store and returns the full report,
// ordered by task id.
func (a *Advisor) Analyze(s *store.Store) Report {
	report := Report{GeneratedAt: time.Now().UTC()}

	for _, t := range s.List(store.Filter{}) {
		score := a.Score(t)
		report.Tasks = append(report.Tasks, Complexity{
			TaskID:              t.ID,
			Title:               t.Title,
			Score:               score,
			RecommendedSubtasks: RecommendedSubtasks(score),
			SubtaskCount:        len(t.Subtasks),
		})

		report.Stats.Total++
		switch {
		case score <= 3:
			report.Stats.Low++
		case score <= 7:
			report.Stats.Medium++
		default:
			report.Stats.High++
		}
	}
	return report
}
