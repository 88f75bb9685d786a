package service

import (
	"errors"
	"sort"
	"strings"

	"todoapi/database/model"
	"todoapi/repository"
	"todoapi/web/entity"
)

// Actor identifies the authenticated user a use case runs on behalf of.
// It is threaded explicitly into every call; nothing is read from ambient
// request state.
type Actor struct {
	Id   int
	Role int
	Name string
}

// TodoService implements the todo use cases. Each method is one request
// orchestration running inside one transaction.
type TodoService struct {
	store repository.Store
}

func NewTodoService(store repository.Store) *TodoService {
	return &TodoService{store: store}
}

// Create verifies the owning user exists, builds the todo and persists it.
func (s *TodoService) Create(actor Actor, title, descriptions string) (*model.Todo, error) {
	var todo *model.Todo
	err := s.store.Transaction(func(tx repository.Store) error {
		user, err := tx.Users().FindById(actor.Id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}
		todo, err = model.NewTodo(title, descriptions, user.Id, user.Username)
		if err != nil {
			return err
		}
		return tx.Todos().Save(todo)
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// Get returns the actor's todo. The owner-scoped query reports a foreign
// todo as not found.
func (s *TodoService) Get(actor Actor, todoId int) (*model.Todo, error) {
	todo, err := s.store.Todos().FindByIdAndUserId(todoId, actor.Id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// UpdateTodoInput carries a partial update: only non-nil fields are
// applied to the loaded todo.
type UpdateTodoInput struct {
	Title        *string
	Descriptions *string
	Completed    *bool
}

// Update loads the todo, checks ownership and applies only the supplied
// fields through the entity mutators.
func (s *TodoService) Update(actor Actor, todoId int, in UpdateTodoInput) (*model.Todo, error) {
	var todo *model.Todo
	err := s.store.Transaction(func(tx repository.Store) error {
		var err error
		todo, err = tx.Todos().FindById(todoId)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTodoNotFound
		}
		if err != nil {
			return err
		}

		user, err := tx.Users().FindById(actor.Id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}
		if !model.IsOwner(todo, user) {
			return ErrAccessDenied
		}

		if in.Title != nil {
			if err := todo.UpdateTitle(*in.Title, user.Username); err != nil {
				return err
			}
		}
		if in.Descriptions != nil {
			if err := todo.UpdateDescriptions(*in.Descriptions, user.Username); err != nil {
				return err
			}
		}
		if in.Completed != nil {
			if *in.Completed {
				if err := todo.MarkAsCompleted(user.Username); err != nil {
					return err
				}
			} else {
				if err := todo.MarkAsIncomplete(user.Username); err != nil {
					return err
				}
			}
		}
		return tx.Todos().Save(todo)
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// Complete marks the actor's todo as completed.
func (s *TodoService) Complete(actor Actor, todoId int) (*model.Todo, error) {
	var todo *model.Todo
	err := s.store.Transaction(func(tx repository.Store) error {
		var err error
		todo, err = tx.Todos().FindByIdAndUserId(todoId, actor.Id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTodoNotFound
		}
		if err != nil {
			return err
		}
		if err := todo.MarkAsCompleted(actor.Name); err != nil {
			return err
		}
		return tx.Todos().Save(todo)
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// Delete logically deletes the actor's todo. The row is retained.
func (s *TodoService) Delete(actor Actor, todoId int) error {
	return s.store.Transaction(func(tx repository.Store) error {
		todo, err := tx.Todos().FindByIdAndUserId(todoId, actor.Id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTodoNotFound
		}
		if err != nil {
			return err
		}
		if err := todo.Delete(actor.Name); err != nil {
			return err
		}
		return tx.Todos().Save(todo)
	})
}

// List returns one page of the actor's todos, filtered and sorted in
// memory. Deleted todos are excluded by the repository query.
func (s *TodoService) List(actor Actor, query entity.TodoListQuery) (*entity.TodoListPage, error) {
	if err := query.Normalize(); err != nil {
		return nil, err
	}

	todos, err := s.store.Todos().FindByUserId(actor.Id)
	if err != nil {
		return nil, err
	}

	switch query.CompletedFilter {
	case entity.FilterCompleted:
		todos = model.FilterCompletedTodos(todos)
	case entity.FilterIncomplete:
		todos = model.FilterIncompleteTodos(todos)
	}

	sortTodos(todos, query.SortBy, query.SortOrder)

	total := len(todos)
	totalPages := (total + query.PerPage - 1) / query.PerPage

	start := (query.Page - 1) * query.PerPage
	if start > total {
		start = total
	}
	end := start + query.PerPage
	if end > total {
		end = total
	}

	return &entity.TodoListPage{
		Items:      todos[start:end],
		Total:      total,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: totalPages,
	}, nil
}

func sortTodos(todos []*model.Todo, sortBy, sortOrder string) {
	less := func(a, b *model.Todo) bool {
		switch sortBy {
		case entity.SortByUpdatedAt:
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.Before(b.UpdatedAt)
			}
		case entity.SortByTitle:
			if c := strings.Compare(a.Title, b.Title); c != 0 {
				return c < 0
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		}
		// Stable tie-break on identity.
		return a.Id < b.Id
	}
	sort.SliceStable(todos, func(i, j int) bool {
		if sortOrder == entity.SortDesc {
			return less(todos[j], todos[i])
		}
		return less(todos[i], todos[j])
	})
}
