package model

import (
	"time"
	"unicode/utf8"
)

// Profile carries the optional display-name fields of a user.
type Profile struct {
	FirstName     *string
	LastName      *string
	FirstNameRuby *string
	LastNameRuby  *string
}

// NewUser creates a user. passwordHash may be empty when an administrator
// provisions the account; InitializePassword sets it later.
func NewUser(username, passwordHash string, role int, createdBy string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if role <= 0 {
		role = DefaultRole
	}
	if createdBy == "" {
		createdBy = SystemActor
	}
	now := time.Now()
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    createdBy,
		UpdatedBy:    createdBy,
		Deleted:      false,
	}, nil
}

func validateUsername(username string) error {
	length := utf8.RuneCountInString(username)
	if length == 0 {
		return NewValidationError("username", "must not be empty")
	}
	if length > MaxUsernameLen {
		return NewValidationError("username", "must be 50 characters or fewer")
	}
	return nil
}

func validateName(field, value string) error {
	if utf8.RuneCountInString(value) > MaxNameLen {
		return NewValidationError(field, "must be 50 characters or fewer")
	}
	return nil
}

// InitializePassword sets the password hash exactly once, as a bootstrap
// path for accounts provisioned without a password. Changing an existing
// password goes through SetPassword after current-password verification.
func (u *User) InitializePassword(passwordHash, updatedBy string) error {
	if u.PasswordHash != "" {
		return newInvalidStateError("user", "password is already initialized")
	}
	u.PasswordHash = passwordHash
	u.touch(updatedBy)
	return nil
}

// SetPassword replaces the stored password hash.
func (u *User) SetPassword(passwordHash, updatedBy string) {
	u.PasswordHash = passwordHash
	u.touch(updatedBy)
}

// UpdateProfile merges only the supplied profile fields into the user.
func (u *User) UpdateProfile(p Profile, updatedBy string) error {
	if p.FirstName != nil {
		if err := validateName("firstName", *p.FirstName); err != nil {
			return err
		}
	}
	if p.LastName != nil {
		if err := validateName("lastName", *p.LastName); err != nil {
			return err
		}
	}
	if p.FirstNameRuby != nil {
		if err := validateName("firstNameRuby", *p.FirstNameRuby); err != nil {
			return err
		}
	}
	if p.LastNameRuby != nil {
		if err := validateName("lastNameRuby", *p.LastNameRuby); err != nil {
			return err
		}
	}

	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.FirstNameRuby != nil {
		u.FirstNameRuby = *p.FirstNameRuby
	}
	if p.LastNameRuby != nil {
		u.LastNameRuby = *p.LastNameRuby
	}
	u.touch(updatedBy)
	return nil
}

// SetRole changes the user's role.
func (u *User) SetRole(role int, updatedBy string) error {
	if role < RoleAdmin {
		return NewValidationError("role", "must be 1 or greater")
	}
	u.Role = role
	u.touch(updatedBy)
	return nil
}

// Delete marks the user as logically deleted.
func (u *User) Delete(updatedBy string) error {
	if u.Deleted {
		return newInvalidStateError("user", "is already deleted")
	}
	u.Deleted = true
	u.touch(updatedBy)
	return nil
}

func (u *User) touch(updatedBy string) {
	if updatedBy == "" {
		updatedBy = SystemActor
	}
	u.UpdatedAt = time.Now()
	u.UpdatedBy = updatedBy
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageUsers reports whether the user may access the user-management
// endpoints. Admins and managers qualify.
func (u *User) CanManageUsers() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}
