package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarefas/internal/store"
	"tarefas/internal/task"
)

var _ TaskStore = (*store.Memory)(nil)
var _ TaskStore = (*store.Store)(nil)

type recordPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordPublisher) Publish(topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func newService() (*Service, *recordPublisher) {
	pub := &recordPublisher{}
	return New(store.NewMemory(), pub), pub
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, pub := newService()

	_, err := svc.Create(ctx, "", "descrição", false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "   ", "descrição", false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "comprar leite", "", false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, pub.topics, "failed creates publish nothing")
}

func TestCreateRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, pub := newService()

	created, err := svc.Create(ctx, "comprar leite", "leite 2%", false)
	require.NoError(t, err)

	env, err := svc.List(ctx, 1, 10, task.SortName, task.Asc)
	require.NoError(t, err)
	require.Len(t, env.Items, 1)
	assert.Equal(t, created, env.Items[0])
	assert.Equal(t, []string{"tarefa.criada"}, pub.topics)
}

func TestCreateDuplicatePassesThrough(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Create(ctx, "comprar leite", "leite 2%", false)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "comprar leite", "outra", true)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestListValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.List(ctx, 0, 10, task.SortName, task.Asc)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.List(ctx, 1, 0, task.SortName, task.Asc)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListEmptyCollection(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	env, err := svc.List(ctx, 1, 10, task.SortName, task.Asc)
	require.NoError(t, err)
	assert.Zero(t, env.Total)
	assert.Empty(t, env.Items)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, pub := newService()
	_, err := svc.Create(ctx, "comprar leite", "leite 2%", false)
	require.NoError(t, err)

	done := true
	updated, err := svc.Update(ctx, "comprar leite", task.Patch{Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	empty := "  "
	_, err = svc.Update(ctx, "comprar leite", task.Patch{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(ctx, "inexistente", task.Patch{Completed: &done})
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Equal(t, []string{"tarefa.criada", "tarefa.atualizada"}, pub.topics)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, pub := newService()
	_, err := svc.Create(ctx, "comprar leite", "leite 2%", false)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "comprar leite"))
	assert.ErrorIs(t, svc.Delete(ctx, "comprar leite"), store.ErrNotFound)
	assert.Equal(t, []string{"tarefa.criada", "tarefa.deletada"}, pub.topics)
}

func TestExportReflectsMutations(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	b, err := svc.Export(ctx, "json")
	require.NoError(t, err)
	var before []task.Task
	require.NoError(t, json.Unmarshal(b, &before))
	assert.Empty(t, before)

	_, err = svc.Create(ctx, "comprar leite", "leite 2%", false)
	require.NoError(t, err)

	// mutation flushed the cache, so the next export sees the new task
	b, err = svc.Export(ctx, "json")
	require.NoError(t, err)
	var after []task.Task
	require.NoError(t, json.Unmarshal(b, &after))
	require.Len(t, after, 1)
	assert.Equal(t, "comprar leite", after[0].Name)
}
