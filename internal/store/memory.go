package store

import (
	"context"
	"sync"

	"tarefas/internal/task"
)

// Memory is an in-process task collection with the same contract as Store.
// A single mutex serializes mutations, so racing creates on one name still
// resolve to one winner and one ErrDuplicate.
type Memory struct {
	mu    sync.RWMutex
	seq   int64
	tasks []task.Task
}

// NewMemory returns an empty in-memory collection.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Create(_ context.Context, name, description string, completed bool) (task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tasks {
		if t.Name == name {
			return task.Task{}, ErrDuplicate
		}
	}
	m.seq++
	t := task.Task{ID: m.seq, Name: name, Description: description, Completed: completed}
	m.tasks = append(m.tasks, t)
	return t, nil
}

func (m *Memory) FindByName(_ context.Context, name string) (task.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tasks {
		if t.Name == name {
			return t, nil
		}
	}
	return task.Task{}, ErrNotFound
}

func (m *Memory) Update(_ context.Context, locator string, p task.Patch) (task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := -1
	for i, t := range m.tasks {
		if t.Name == locator {
			idx = i
			break
		}
	}
	if idx < 0 {
		return task.Task{}, ErrNotFound
	}
	next := p.Apply(m.tasks[idx])
	if next.Name != locator {
		for _, t := range m.tasks {
			if t.Name == next.Name {
				return task.Task{}, ErrDuplicate
			}
		}
	}
	m.tasks[idx] = next
	return next, nil
}

func (m *Memory) Delete(_ context.Context, locator string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t.Name == locator {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) All(_ context.Context) ([]task.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]task.Task, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}

func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tasks), nil
}
