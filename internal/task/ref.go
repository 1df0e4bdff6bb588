package task

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Ref identifies either a task or a subtask. A task-level reference has
// Sub == 0; subtask indexes are 1-based, matching the dotted display form
// "parent.index" (e.g. "3.2" is the second subtask of task 3).
//
// Refs are modeled as a composite key rather than a string so that
// comparisons and ordering never depend on string parsing.
type Ref struct {
	Task int
	Sub  int
}

// TaskRef returns a task-level reference.
func TaskRef(id int) Ref {
	return Ref{Task: id}
}

// SubRef returns a subtask reference.
func SubRef(parent, index int) Ref {
	return Ref{Task: parent, Sub: index}
}

// IsSubtask reports whether the reference addresses a subtask.
func (r Ref) IsSubtask() bool {
	return r.Sub > 0
}

// Parent returns the task-level reference for a subtask ref. For a
// task-level ref it returns the ref itself.
func (r Ref) Parent() Ref {
	return Ref{Task: r.Task}
}

// String renders the external display form: "3" or "3.2".
func (r Ref) String() string {
	if r.IsSubtask() {
		return strconv.Itoa(r.Task) + "." + strconv.Itoa(r.Sub)
	}
	return strconv.Itoa(r.Task)
}

// Less orders refs by task id, then by subtask index. Used as the
// deterministic final tie-break in candidate ordering.
func (r Ref) Less(other Ref) bool {
	if r.Task != other.Task {
		return r.Task < other.Task
	}
	return r.Sub < other.Sub
}

// ParseRef parses the display form of a reference: "3" or "3.2".
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, fmt.Errorf("empty task reference")
	}

	head, tail, dotted := strings.Cut(s, ".")
	id, err := strconv.Atoi(head)
	if err != nil || id <= 0 {
		return Ref{}, fmt.Errorf("invalid task reference %q", s)
	}
	if !dotted {
		return TaskRef(id), nil
	}

	idx, err := strconv.Atoi(tail)
	if err != nil || idx <= 0 {
		return Ref{}, fmt.Errorf("invalid subtask reference %q", s)
	}
	return SubRef(id, idx), nil
}

// MarshalJSON writes the dotted display form so the persisted document
// matches what users see in the CLI.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts both the dotted string form and a bare JSON
// number for task-level references.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Fall back to a numeric task id.
		var id int
		if numErr := json.Unmarshal(data, &id); numErr != nil {
			return fmt.Errorf("invalid reference %s", string(data))
		}
		if id <= 0 {
			return fmt.Errorf("invalid task id %d", id)
		}
		*r = TaskRef(id)
		return nil
	}

	parsed, err := ParseRef(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
