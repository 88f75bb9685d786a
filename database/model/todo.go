package model

import (
	"time"
	"unicode/utf8"
)

// NewTodo creates a todo for the given owner. The owner must already be
// verified to exist by the caller.
func NewTodo(title, descriptions string, userId int, createdBy string) (*Todo, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescriptions(descriptions); err != nil {
		return nil, err
	}
	if createdBy == "" {
		createdBy = SystemActor
	}
	now := time.Now()
	return &Todo{
		Title:        title,
		Descriptions: descriptions,
		Completed:    false,
		UserId:       userId,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    createdBy,
		UpdatedBy:    createdBy,
		Deleted:      false,
	}, nil
}

func validateTitle(title string) error {
	length := utf8.RuneCountInString(title)
	if length == 0 {
		return NewValidationError("title", "must not be empty")
	}
	if length > MaxTitleLen {
		return NewValidationError("title", "must be 32 characters or fewer")
	}
	return nil
}

func validateDescriptions(descriptions string) error {
	if utf8.RuneCountInString(descriptions) > MaxDescriptionsLen {
		return NewValidationError("descriptions", "must be 128 characters or fewer")
	}
	return nil
}

// MarkAsCompleted flips the todo to completed. Completing a completed or
// deleted todo is rejected.
func (t *Todo) MarkAsCompleted(updatedBy string) error {
	if t.Deleted {
		return newInvalidStateError("todo", "is deleted")
	}
	if t.Completed {
		return newInvalidStateError("todo", "is already completed")
	}
	t.Completed = true
	t.touch(updatedBy)
	return nil
}

// MarkAsIncomplete flips a completed todo back to incomplete.
func (t *Todo) MarkAsIncomplete(updatedBy string) error {
	if t.Deleted {
		return newInvalidStateError("todo", "is deleted")
	}
	if !t.Completed {
		return newInvalidStateError("todo", "is not completed")
	}
	t.Completed = false
	t.touch(updatedBy)
	return nil
}

func (t *Todo) UpdateTitle(title, updatedBy string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	t.Title = title
	t.touch(updatedBy)
	return nil
}

func (t *Todo) UpdateDescriptions(descriptions, updatedBy string) error {
	if err := validateDescriptions(descriptions); err != nil {
		return err
	}
	t.Descriptions = descriptions
	t.touch(updatedBy)
	return nil
}

// Delete marks the todo as logically deleted. The row is retained.
func (t *Todo) Delete(updatedBy string) error {
	if t.Deleted {
		return newInvalidStateError("todo", "is already deleted")
	}
	t.Deleted = true
	t.touch(updatedBy)
	return nil
}

func (t *Todo) touch(updatedBy string) {
	if updatedBy == "" {
		updatedBy = SystemActor
	}
	t.UpdatedAt = time.Now()
	t.UpdatedBy = updatedBy
}

// IsOwner reports whether the user owns the todo. Ownership is exclusive:
// every todo-scoped mutation must pass this check or load via an
// owner-scoped query.
func IsOwner(todo *Todo, user *User) bool {
	return todo != nil && user != nil && todo.UserId == user.Id
}

// FilterCompletedTodos returns the completed todos of the list.
func FilterCompletedTodos(todos []*Todo) []*Todo {
	filtered := make([]*Todo, 0, len(todos))
	for _, t := range todos {
		if t.Completed {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// FilterIncompleteTodos returns the incomplete todos of the list.
func FilterIncompleteTodos(todos []*Todo) []*Todo {
	filtered := make([]*Todo, 0, len(todos))
	for _, t := range todos {
		if !t.Completed {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
