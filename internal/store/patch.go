package store

import (
	"github.com/Iron-Ham/taskmill/internal/errors"
	"github.com/Iron-Ham/taskmill/internal/task"
)

// Patch is a partial update to a task or subtask. Nil fields are left
// unchanged. Status and dependencies are deliberately absent: status
// changes go through the workflow and dependency edits through the
// graph, so their validation cannot be bypassed by an update.
type Patch struct {
	Title        *string
	Description  *string
	TestStrategy *string
	Priority     *task.Priority

	// AppendDetails adds a note to the append-only implementation log.
	AppendDetails string
}

func (p Patch) validate() error {
	if p.Title != nil && *p.Title == "" {
		return errors.NewValidationError("must not be empty").WithField("title")
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return errors.NewValidationError("must be high, medium, or low").WithField("priority")
	}
	return nil
}

func (p Patch) applyTask(t *task.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.TestStrategy != nil {
		t.TestStrategy = *p.TestStrategy
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.AppendDetails != "" {
		t.AppendDetails(p.AppendDetails)
	}
}

func (p Patch) applySubtask(sub *task.Subtask) {
	if p.Title != nil {
		sub.Title = *p.Title
	}
	if p.Description != nil {
		sub.Description = *p.Description
	}
	if p.TestStrategy != nil {
		sub.TestStrategy = *p.TestStrategy
	}
	if p.Priority != nil {
		sub.Priority = *p.Priority
	}
	if p.AppendDetails != "" {
		sub.AppendDetails(p.AppendDetails)
	}
}
