// Package model defines the persisted entities of todoapi and the
// invariant-enforcing behavior that guards their state transitions.
package model

import "time"

// Role values. Anything from RoleUser upward is an ordinary user; the
// schema default of 8 is deliberately deep in ordinary-user territory.
const (
	RoleAdmin   = 1
	RoleManager = 2
	RoleUser    = 3

	DefaultRole = 8
)

// SystemActor is the audit actor recorded when no authenticated user
// performed the change (bootstrap, migrations).
const SystemActor = "system"

// Field length limits enforced by the entities and mirrored in the schema.
const (
	MaxUsernameLen     = 50
	MaxNameLen         = 50
	MaxTitleLen        = 32
	MaxDescriptionsLen = 128
)

type User struct {
	Id            int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username      string    `json:"username" gorm:"index;not null;size:50"`
	PasswordHash  string    `json:"-" gorm:"column:password_hash"`
	FirstName     string    `json:"firstName" gorm:"size:50"`
	LastName      string    `json:"lastName" gorm:"size:50"`
	FirstNameRuby string    `json:"firstNameRuby" gorm:"size:50"`
	LastNameRuby  string    `json:"lastNameRuby" gorm:"size:50"`
	Role          int       `json:"role" gorm:"not null;default:8"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	CreatedBy     string    `json:"createdBy" gorm:"default:system"`
	UpdatedBy     string    `json:"updatedBy" gorm:"default:system"`
	Deleted       bool      `json:"-" gorm:"not null;default:false"`
}

type Todo struct {
	Id           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title        string    `json:"title" gorm:"not null;size:32"`
	Descriptions string    `json:"descriptions" gorm:"size:128"`
	Completed    bool      `json:"completed" gorm:"not null;default:false"`
	UserId       int       `json:"userId" gorm:"index;not null"`
	User         *User     `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	CreatedBy    string    `json:"createdBy" gorm:"default:system"`
	UpdatedBy    string    `json:"updatedBy" gorm:"default:system"`
	Deleted      bool      `json:"-" gorm:"not null;default:false"`
}
