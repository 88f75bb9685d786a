// Package entity defines the wire-level data structures shared by the web
// layer: the response envelope and list query/page types.
package entity

import (
	"todoapi/database/model"
)

// Msg is the envelope every API response is wrapped in.
type Msg struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Completed filter values for todo lists.
const (
	FilterAll        = "all"
	FilterCompleted  = "completed"
	FilterIncomplete = "incomplete"
)

// Sortable columns for todo lists.
const (
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"
	SortByTitle     = "title"

	SortAsc  = "asc"
	SortDesc = "desc"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// TodoListQuery carries the pagination, filter and sort parameters of a
// todo list request.
type TodoListQuery struct {
	Page            int    `form:"page"`
	PerPage         int    `form:"perPage"`
	CompletedFilter string `form:"completedFilter"`
	SortBy          string `form:"sortBy"`
	SortOrder       string `form:"sortOrder"`
}

// Normalize applies defaults and rejects out-of-range values.
func (q *TodoListQuery) Normalize() error {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Page < 1 {
		return model.NewValidationError("page", "must be 1 or greater")
	}
	if q.PerPage == 0 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage < 1 || q.PerPage > MaxPerPage {
		return model.NewValidationError("perPage", "must be between 1 and 100")
	}
	switch q.CompletedFilter {
	case "":
		q.CompletedFilter = FilterAll
	case FilterAll, FilterCompleted, FilterIncomplete:
	default:
		return model.NewValidationError("completedFilter", "must be all, completed or incomplete")
	}
	switch q.SortBy {
	case "":
		q.SortBy = SortByCreatedAt
	case SortByCreatedAt, SortByUpdatedAt, SortByTitle:
	default:
		return model.NewValidationError("sortBy", "must be createdAt, updatedAt or title")
	}
	switch q.SortOrder {
	case "":
		q.SortOrder = SortAsc
	case SortAsc, SortDesc:
	default:
		return model.NewValidationError("sortOrder", "must be asc or desc")
	}
	return nil
}

// TodoListPage is one page of a todo list plus the counts needed by
// paginating clients. TotalPages is ceil(Total/PerPage).
type TodoListPage struct {
	Items      []*model.Todo `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PerPage    int           `json:"perPage"`
	TotalPages int           `json:"totalPages"`
}
