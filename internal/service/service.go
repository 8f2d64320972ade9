// Package service orchestrates task operations between the transport
// boundary and the store: input validation, outcome classification, change
// events and export caching. The credential gate runs as HTTP middleware
// in front of it, so every caller is already authenticated.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tarefas/internal/result"
	"tarefas/internal/task"
	"tarefas/pkg/cache"
	"tarefas/pkg/mq"
)

// ErrInvalidInput classifies client-addressable validation failures.
var ErrInvalidInput = errors.New("entrada inválida")

// TaskStore is the store contract the service depends on. Both the MySQL
// store and the in-memory variant satisfy it.
type TaskStore interface {
	Create(ctx context.Context, name, description string, completed bool) (task.Task, error)
	FindByName(ctx context.Context, name string) (task.Task, error)
	Update(ctx context.Context, locator string, p task.Patch) (task.Task, error)
	Delete(ctx context.Context, locator string) error
	All(ctx context.Context) ([]task.Task, error)
	Count(ctx context.Context) (int, error)
}

const exportCacheTTL = 30 * time.Second

type Service struct {
	store    TaskStore
	exporter *result.Exporter
	exports  *cache.MemoryCache
	pub      mq.Publisher
}

func New(st TaskStore, pub mq.Publisher) *Service {
	return &Service{
		store:    st,
		exporter: result.NewExporter(st),
		exports:  cache.NewMemory(exportCacheTTL),
		pub:      pub,
	}
}

// List returns one sorted window of the collection. Total always reflects
// the unwindowed size, so Total == 0 means the collection itself is empty.
func (s *Service) List(ctx context.Context, page, limit int, field task.SortField, dir task.Direction) (task.Page, error) {
	if page < 1 || limit < 1 {
		return task.Page{}, fmt.Errorf("%w: page e limit devem ser maiores ou iguais a 1", ErrInvalidInput)
	}
	all, err := s.store.All(ctx)
	if err != nil {
		return task.Page{}, err
	}
	return task.Paginate(all, page, limit, field, dir), nil
}

// Create registers a new task. Name and description must be non-empty;
// a name collision surfaces as store.ErrDuplicate.
func (s *Service) Create(ctx context.Context, name, description string, completed bool) (task.Task, error) {
	if strings.TrimSpace(name) == "" {
		return task.Task{}, fmt.Errorf("%w: name é obrigatório", ErrInvalidInput)
	}
	if strings.TrimSpace(description) == "" {
		return task.Task{}, fmt.Errorf("%w: description é obrigatória", ErrInvalidInput)
	}
	t, err := s.store.Create(ctx, name, description, completed)
	if err != nil {
		return task.Task{}, err
	}
	s.changed("tarefa.criada", t)
	return t, nil
}

// Update applies the patch to the task addressed by locator. A rename to
// an empty name is rejected before touching the store; a rename onto an
// existing name surfaces as store.ErrDuplicate.
func (s *Service) Update(ctx context.Context, locator string, p task.Patch) (task.Task, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return task.Task{}, fmt.Errorf("%w: name não pode ser vazio", ErrInvalidInput)
	}
	t, err := s.store.Update(ctx, locator, p)
	if err != nil {
		return task.Task{}, err
	}
	s.changed("tarefa.atualizada", t)
	return t, nil
}

// Delete removes the task addressed by locator.
func (s *Service) Delete(ctx context.Context, locator string) error {
	if err := s.store.Delete(ctx, locator); err != nil {
		return err
	}
	s.changed("tarefa.deletada", task.Task{Name: locator})
	return nil
}

// Export renders the collection in the requested format, serving repeated
// downloads from the cache until the next mutation.
func (s *Service) Export(ctx context.Context, format string) ([]byte, error) {
	format = strings.ToLower(format)
	if b, ok := s.exports.Get(format); ok {
		return b, nil
	}
	b, err := s.exporter.Export(ctx, format)
	if err != nil {
		return nil, err
	}
	s.exports.Set(format, b)
	return b, nil
}

// changed publishes a task-change event and drops any cached exports.
func (s *Service) changed(topic string, t task.Task) {
	s.exports.Flush()
	payload, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := s.pub.Publish(topic, payload); err != nil {
		log.Printf("publish %s: %v", topic, err)
	}
}
