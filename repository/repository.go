// Package repository declares the persistence ports consumed by the
// application services, plus their GORM-backed implementation. The ports
// never expose storage types; services stay storage-agnostic.
package repository

import (
	"errors"

	"todoapi/database/model"
)

// ErrNotFound is returned by every Find* method when no matching,
// non-deleted record exists.
var ErrNotFound = errors.New("record not found")

// TodoRepository is the persistence port for todos. Find methods exclude
// logically deleted rows unless stated otherwise.
type TodoRepository interface {
	FindById(id int) (*model.Todo, error)
	FindByUserId(userId int) ([]*model.Todo, error)
	// FindByIdAndUserId enforces ownership in the query itself: a todo
	// that exists but belongs to someone else is reported as not found.
	FindByIdAndUserId(id, userId int) (*model.Todo, error)
	// FindByUserIdIncludingDeleted serves administrative trash views.
	FindByUserIdIncludingDeleted(userId int) ([]*model.Todo, error)
	// Save inserts a todo without identity and assigns one, or performs a
	// full-record update for an existing identity.
	Save(todo *model.Todo) error
	// Delete marks the todo as logically deleted without loading it.
	Delete(id int) error
	DeleteByIdAndUserId(id, userId int) error
	// DeleteByUserId logically deletes every todo owned by the user.
	DeleteByUserId(userId int, updatedBy string) error
}

// UserRepository is the persistence port for users.
type UserRepository interface {
	FindById(id int) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	ExistsByUsername(username string) (bool, error)
	FindAll() ([]*model.User, error)
	Save(user *model.User) error
	Delete(id int) error
}

// Store bundles the repositories and supplies the transaction boundary:
// one use case runs its reads and writes inside one Transaction call.
type Store interface {
	Todos() TodoRepository
	Users() UserRepository
	Transaction(fn func(Store) error) error
}
