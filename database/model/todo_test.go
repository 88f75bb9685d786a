package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTodoTitleBounds(t *testing.T) {
	tests := []struct {
		name  string
		title string
		ok    bool
	}{
		{"empty", "", false},
		{"one char", "a", true},
		{"max length", strings.Repeat("a", 32), true},
		{"too long", strings.Repeat("a", 33), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todo, err := NewTodo(tt.title, "", 1, "tester")
			if !tt.ok {
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.title, todo.Title)
			assert.False(t, todo.Completed)
			assert.False(t, todo.Deleted)
		})
	}
}

func TestNewTodoDescriptionsBounds(t *testing.T) {
	_, err := NewTodo("title", strings.Repeat("d", 128), 1, "tester")
	assert.NoError(t, err)

	_, err = NewTodo("title", strings.Repeat("d", 129), 1, "tester")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestTodoCompleteTransitions(t *testing.T) {
	todo, err := NewTodo("title", "", 1, "tester")
	require.NoError(t, err)

	// A fresh todo cannot be un-completed.
	var stateErr *InvalidStateError
	assert.ErrorAs(t, todo.MarkAsIncomplete("tester"), &stateErr)

	assert.NoError(t, todo.MarkAsCompleted("tester"))
	assert.True(t, todo.Completed)

	// Completing twice fails.
	assert.ErrorAs(t, todo.MarkAsCompleted("tester"), &stateErr)
	assert.True(t, todo.Completed)

	assert.NoError(t, todo.MarkAsIncomplete("tester"))
	assert.False(t, todo.Completed)
}

func TestTodoCompleteAfterDelete(t *testing.T) {
	todo, err := NewTodo("title", "", 1, "tester")
	require.NoError(t, err)
	require.NoError(t, todo.Delete("tester"))

	var stateErr *InvalidStateError
	assert.ErrorAs(t, todo.MarkAsCompleted("tester"), &stateErr)
}

func TestTodoDeleteIsNotRepeatable(t *testing.T) {
	todo, err := NewTodo("title", "", 1, "tester")
	require.NoError(t, err)

	assert.NoError(t, todo.Delete("tester"))
	assert.True(t, todo.Deleted)

	var stateErr *InvalidStateError
	assert.ErrorAs(t, todo.Delete("tester"), &stateErr)
	assert.True(t, todo.Deleted)
}

func TestTodoUpdateTitleValidates(t *testing.T) {
	todo, err := NewTodo("title", "", 1, "tester")
	require.NoError(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, todo.UpdateTitle("", "tester"), &validationErr)
	assert.ErrorAs(t, todo.UpdateTitle(strings.Repeat("x", 33), "tester"), &validationErr)
	assert.Equal(t, "title", todo.Title)

	assert.NoError(t, todo.UpdateTitle("new title", "tester"))
	assert.Equal(t, "new title", todo.Title)
}

func TestIsOwner(t *testing.T) {
	owner := &User{Id: 1}
	other := &User{Id: 2}
	todo := &Todo{Id: 10, UserId: 1}

	assert.True(t, IsOwner(todo, owner))
	assert.False(t, IsOwner(todo, other))
	assert.False(t, IsOwner(nil, owner))
	assert.False(t, IsOwner(todo, nil))
}

func TestFilterTodos(t *testing.T) {
	todos := []*Todo{
		{Id: 1, Completed: true},
		{Id: 2, Completed: false},
		{Id: 3, Completed: true},
	}

	completed := FilterCompletedTodos(todos)
	assert.Len(t, completed, 2)
	for _, todo := range completed {
		assert.True(t, todo.Completed)
	}

	incomplete := FilterIncompleteTodos(todos)
	assert.Len(t, incomplete, 1)
	assert.Equal(t, 2, incomplete[0].Id)
}
