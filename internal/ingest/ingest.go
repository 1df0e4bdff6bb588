// Package ingest parses external planning documents into task batches
// that the engine applies all-or-nothing.
//
// Two formats are supported: a JSON plan document and a markdown
// outline. In both, dependencies between tasks of the same document are
// expressed by document ordinal (the Nth task of the document, 1-based)
// and remapped to real ids at creation time.
package ingest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Iron-Ham/taskmill/internal/engine"
	"github.com/Iron-Ham/taskmill/internal/errors"
	"github.com/Iron-Ham/taskmill/internal/task"
)

// planDocument is the JSON import format.
type planDocument struct {
	Tasks []planTask `json:"tasks"`
}

type planTask struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Details      string   `json:"details,omitempty"`
	TestStrategy string   `json:"test_strategy,omitempty"`
	Priority     string   `json:"priority,omitempty"`
	DependsOn    []int    `json:"depends_on,omitempty"`
	External     []string `json:"external_deps,omitempty"`
}

// ParseJSON decodes a JSON plan document into a batch. Ordinal
// dependencies are validated for range here; existence and cycle checks
// happen when the engine applies the batch.
func ParseJSON(data []byte, defaultPriority task.Priority) ([]engine.BatchTask, error) {
	var doc planDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing plan document: %w", err)
	}
	if len(doc.Tasks) == 0 {
		return nil, errors.NewValidationError("plan document has no tasks").WithField("tasks")
	}

	batch := make([]engine.BatchTask, 0, len(doc.Tasks))
	for i, pt := range doc.Tasks {
		if strings.TrimSpace(pt.Title) == "" {
			return nil, errors.NewValidationError(fmt.Sprintf("task %d has no title", i+1)).WithField("title")
		}

		bt := engine.BatchTask{Task: task.Task{
			Title:        strings.TrimSpace(pt.Title),
			Description:  strings.TrimSpace(pt.Description),
			Details:      strings.TrimSpace(pt.Details),
			TestStrategy: strings.TrimSpace(pt.TestStrategy),
			Priority:     defaultPriority,
		}}
		if pt.Priority != "" {
			p := task.Priority(strings.ToLower(pt.Priority))
			if !p.IsValid() {
				return nil, errors.NewValidationError(fmt.Sprintf("task %d: unknown priority %q", i+1, pt.Priority)).WithField("priority")
			}
			bt.Task.Priority = p
		}

		for _, ord := range pt.DependsOn {
			if ord < 1 || ord > len(doc.Tasks) {
				return nil, errors.NewValidationError(fmt.Sprintf("task %d depends on ordinal %d, document has %d tasks", i+1, ord, len(doc.Tasks))).WithField("depends_on")
			}
			if ord == i+1 {
				return nil, errors.NewValidationError(fmt.Sprintf("task %d depends on itself", i+1)).WithField("depends_on")
			}
			bt.Deps = append(bt.Deps, engine.OrdinalDep(ord))
		}
		for _, raw := range pt.External {
			ref, err := task.ParseRef(raw)
			if err != nil {
				return nil, fmt.Errorf("task %d external dependency: %w", i+1, err)
			}
			bt.Deps = append(bt.Deps, engine.RefDep(ref))
		}

		batch = append(batch, bt)
	}
	return batch, nil
}

// Markdown outline patterns. Each task opens with "## Task N: Title";
// the metadata lines below it are optional and order-independent.
var (
	taskHeaderRe   = regexp.MustCompile(`(?i)^##\s+Task\s+(\d+):\s*(.+?)\s*$`)
	dependsLineRe  = regexp.MustCompile(`(?i)^Depends:\s*(.+?)\s*$`)
	priorityLineRe = regexp.MustCompile(`(?i)^Priority:\s*(\w+)\s*$`)
	strategyLineRe = regexp.MustCompile(`(?i)^Test Strategy:\s*(.+?)\s*$`)
)

// ParseMarkdown parses a markdown outline into a batch. Tasks are
// numbered by their header and must appear in order starting at 1;
// "Depends:" lines list other header numbers, comma separated.
func ParseMarkdown(data []byte, defaultPriority task.Priority) ([]engine.BatchTask, error) {
	var batch []engine.BatchTask
	var body []string

	flush := func() {
		if len(batch) == 0 {
			return
		}
		batch[len(batch)-1].Task.Description = strings.TrimSpace(strings.Join(body, "\n"))
		body = nil
	}

	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)

		if m := taskHeaderRe.FindStringSubmatch(trimmed); m != nil {
			flush()
			num, _ := strconv.Atoi(m[1])
			if num != len(batch)+1 {
				return nil, errors.NewValidationError(fmt.Sprintf("task headers out of order: found %d, expected %d", num, len(batch)+1)).WithField("tasks")
			}
			batch = append(batch, engine.BatchTask{Task: task.Task{
				Title:    m[2],
				Priority: defaultPriority,
			}})
			continue
		}
		if len(batch) == 0 {
			continue // preamble before the first task header
		}
		current := &batch[len(batch)-1]

		if m := dependsLineRe.FindStringSubmatch(trimmed); m != nil {
			deps, err := parseDependsList(m[1], len(batch))
			if err != nil {
				return nil, err
			}
			current.Deps = append(current.Deps, deps...)
			continue
		}
		if m := priorityLineRe.FindStringSubmatch(trimmed); m != nil {
			p := task.Priority(strings.ToLower(m[1]))
			if !p.IsValid() {
				return nil, errors.NewValidationError(fmt.Sprintf("task %d: unknown priority %q", len(batch), m[1])).WithField("priority")
			}
			current.Task.Priority = p
			continue
		}
		if m := strategyLineRe.FindStringSubmatch(trimmed); m != nil {
			current.Task.TestStrategy = m[1]
			continue
		}

		body = append(body, line)
	}
	flush()

	if len(batch) == 0 {
		return nil, errors.NewValidationError("document has no task headers").WithField("tasks")
	}
	return batch, nil
}

// parseDependsList parses a comma-separated "Depends:" value. Bare
// numbers are document ordinals; dotted refs point at existing store
// entries.
func parseDependsList(raw string, current int) ([]engine.BatchDep, error) {
	var deps []engine.BatchDep
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, ".") {
			ref, err := task.ParseRef(part)
			if err != nil {
				return nil, fmt.Errorf("task %d dependency %q: %w", current, part, err)
			}
			deps = append(deps, engine.RefDep(ref))
			continue
		}
		ord, err := strconv.Atoi(part)
		if err != nil || ord < 1 {
			return nil, errors.NewValidationError(fmt.Sprintf("task %d: invalid dependency %q", current, part)).WithField("depends")
		}
		if ord == current {
			return nil, errors.NewValidationError(fmt.Sprintf("task %d depends on itself", current)).WithField("depends")
		}
		deps = append(deps, engine.OrdinalDep(ord))
	}
	return deps, nil
}

// Parse sniffs the format from the content: documents opening with '{'
// parse as JSON plans, everything else as markdown outlines.
func Parse(data []byte, defaultPriority task.Priority) ([]engine.BatchTask, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		return ParseJSON(data, defaultPriority)
	}
	return ParseMarkdown(data, defaultPriority)
}
