// Package task defines the task record and the view-time listing rules
// (sorting and pagination) applied over the full collection.
package task

// Task is one registered to-do item. The id is assigned by the store and
// never changes; name is unique across all live tasks.
type Task struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Patch carries the mutable fields of an update. A nil field means
// "keep the current value".
type Patch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Apply returns a copy of t with the non-nil patch fields overwritten.
func (p Patch) Apply(t Task) Task {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Completed == nil
}
