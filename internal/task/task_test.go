package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatchApply(t *testing.T) {
	base := Task{ID: 7, Name: "comprar leite", Description: "leite 2%", Completed: false}

	assert.Equal(t, base, Patch{}.Apply(base), "empty patch keeps everything")

	done := true
	got := Patch{Completed: &done}.Apply(base)
	assert.True(t, got.Completed)
	assert.Equal(t, base.Name, got.Name)
	assert.Equal(t, base.Description, got.Description)
	assert.Equal(t, base.ID, got.ID)

	name := "comprar pão"
	desc := "integral"
	got = Patch{Name: &name, Description: &desc}.Apply(base)
	assert.Equal(t, "comprar pão", got.Name)
	assert.Equal(t, "integral", got.Description)
	assert.False(t, got.Completed)
}

func TestPatchEmpty(t *testing.T) {
	assert.True(t, Patch{}.Empty())
	v := false
	assert.False(t, Patch{Completed: &v}.Empty())
}
