package models

import "time"

type Task struct {
	ID           int64
	Title        string
	Done         bool
	CreatedAt    time.Time
	AssignedToID *int64
	AssignedTo   *Assignee
}

// Assignee is the slice of a user embedded in task listings.
type Assignee struct {
	ID       int64
	Email    string
	FullName string
}

// TaskPatch describes a partial task update; nil fields are left unchanged.
// ClearAssignee unassigns the task and takes precedence over AssignedToID.
type TaskPatch struct {
	Title         *string
	Done          *bool
	AssignedToID  *int64
	ClearAssignee bool
}

// Apply returns t with the patch applied.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Done != nil {
		t.Done = *p.Done
	}
	if p.ClearAssignee {
		t.AssignedToID = nil
		t.AssignedTo = nil
	} else if p.AssignedToID != nil {
		id := *p.AssignedToID
		t.AssignedToID = &id
		if t.AssignedTo != nil && t.AssignedTo.ID != id {
			t.AssignedTo = nil
		}
	}
	return t
}
