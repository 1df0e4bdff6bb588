// Package workflow enforces status bookkeeping for tasks and subtasks.
//
// Transition validation is intentionally permissive: any status may
// follow any other, because a human override of task state must always
// be possible. The workflow's job is label validation and timestamping,
// not strict state-machine enforcement. Eligibility consequences of a
// status (what "done" unlocks) live in the selector.
package workflow

import (
	"time"

	"github.com/Iron-Ham/taskmill/internal/errors"
	"github.com/Iron-Ham/taskmill/internal/store"
	"github.com/Iron-Ham/taskmill/internal/task"
)

// Change records a committed status transition.
type Change struct {
	Ref  task.Ref    `json:"ref"`
	From task.Status `json:"from"`
	To   task.Status `json:"to"`
	At   time.Time   `json:"at"`
}

// SetStatus validates the raw status label, applies it to the ref, and
// returns the transition that took place. Labels are normalized to
// lowercase; custom labels outside the built-in set are accepted and
// simply count as "not done". Setting a parent task to done does not
// cascade to its subtasks.
func SetStatus(s *store.Store, r task.Ref, raw string) (Change, error) {
	st := task.NormalizeStatus(raw)
	if st == "" {
		return Change{}, errors.NewValidationError("must not be empty").WithField("status")
	}

	prev, err := s.Status(r)
	if err != nil {
		return Change{}, err
	}
	if err := s.SetStatus(r, st); err != nil {
		return Change{}, err
	}

	return Change{
		Ref:  r,
		From: prev,
		To:   st,
		At:   time.Now().UTC(),
	}, nil
}
