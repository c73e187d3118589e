package task

import "time"

// Clearable is a patch slot for a nullable field.
// Set marks the field as present; a nil Value clears it.
type Clearable[T any] struct {
	Set   bool
	Value *T
}

func Clear[T any]() Clearable[T] {
	return Clearable[T]{Set: true}
}

func Value[T any](v T) Clearable[T] {
	return Clearable[T]{Set: true, Value: &v}
}

// Patch is a partial update: only present slots are applied.
// Rules match Fields; a cleared slot is never checked.
type Patch struct {
	Title       *string           `validate:"omitempty,min=1,max=200"`
	Description Clearable[string] `validate:"omitempty,max=1000"`
	Assignee    Clearable[string] `validate:"omitempty,max=100"`
	DueDate     Clearable[time.Time]
	Status      *Status `validate:"omitempty,task_status"`
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil &&
		!p.Description.Set &&
		!p.Assignee.Set &&
		!p.DueDate.Set &&
		p.Status == nil
}

// Apply copies every present slot onto t verbatim. It does not touch timestamps.
func (p Patch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description.Set {
		t.Description = clonePtr(p.Description.Value)
	}
	if p.Assignee.Set {
		t.Assignee = clonePtr(p.Assignee.Value)
	}
	if p.DueDate.Set {
		t.DueDate = clonePtr(p.DueDate.Value)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
