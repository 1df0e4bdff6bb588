package engine

import (
	"github.com/Iron-Ham/taskmill/internal/errors"
	"github.com/Iron-Ham/taskmill/internal/task"
)

// BatchTask is one task in a bulk creation, with dependencies that may
// point at sibling batch entries or at tasks already in the store.
type BatchTask struct {
	Task task.Task
	Deps []BatchDep
}

// BatchDep addresses a dependency target either by 1-based position
// within the batch (Ordinal > 0) or by an existing store ref.
type BatchDep struct {
	Ordinal int
	Ref     task.Ref
}

// OrdinalDep references the nth task of the batch, 1-based.
func OrdinalDep(n int) BatchDep {
	return BatchDep{Ordinal: n}
}

// RefDep references a task or subtask already in the store.
func RefDep(r task.Ref) BatchDep {
	return BatchDep{Ref: r}
}

func (d BatchDep) resolve(ids []int) (task.Ref, error) {
	if d.Ordinal == 0 {
		return d.Ref, nil
	}
	if d.Ordinal < 1 || d.Ordinal > len(ids) {
		return task.Ref{}, errors.NewValidationError("dependency ordinal out of range").WithField("dependencies")
	}
	return task.TaskRef(ids[d.Ordinal-1]), nil
}
