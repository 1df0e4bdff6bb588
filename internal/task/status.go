package task

import "strings"

// Status represents the workflow state of a task or subtask.
//
// The enumeration is open: the constants below are the recognized
// built-in states, but any non-empty label is accepted so that callers
// can track project-specific states. Custom values participate in
// eligibility logic only as "not done".
type Status string

const (
	// StatusPending indicates the task has not been started.
	StatusPending Status = "pending"

	// StatusInProgress indicates the task is actively being worked.
	StatusInProgress Status = "in-progress"

	// StatusDone indicates the task finished.
	StatusDone Status = "done"

	// StatusDeferred indicates the task is parked and should not be
	// offered by the selector.
	StatusDeferred Status = "deferred"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Known reports whether this is one of the built-in states.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone, StatusDeferred:
		return true
	default:
		return false
	}
}

// Done reports whether the status counts as completed for dependency
// eligibility. Only the built-in done state qualifies; custom labels
// are always "not done".
func (s Status) Done() bool {
	return s == StatusDone
}

// Startable reports whether the selector should consider a task in this
// state as not yet started.
func (s Status) Startable() bool {
	return s == StatusPending
}

// NormalizeStatus trims surrounding whitespace and lowercases the label.
// An empty result is invalid and rejected by the workflow.
func NormalizeStatus(raw string) Status {
	return Status(strings.ToLower(strings.TrimSpace(raw)))
}

// Priority represents task priority for selection ordering.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// IsValid reports whether this is a recognized priority value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank returns the selection weight of the priority: higher ranks are
// selected first. Unrecognized values rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}
