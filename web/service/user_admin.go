package service

import (
	"errors"

	"todoapi/database/model"
	"todoapi/repository"
	"todoapi/util/crypto"
)

// UserAdminService implements the user-management use cases: role-gated
// CRUD for admins/managers plus the self-service profile and password
// operations.
type UserAdminService struct {
	store repository.Store
}

func NewUserAdminService(store repository.Store) *UserAdminService {
	return &UserAdminService{store: store}
}

func (s *UserAdminService) List() ([]*model.User, error) {
	return s.store.Users().FindAll()
}

func (s *UserAdminService) Get(userId int) (*model.User, error) {
	user, err := s.store.Users().FindById(userId)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUserInput carries the admin provisioning payload. Password is
// optional; an account created without one is completed later through
// InitializePassword.
type CreateUserInput struct {
	Username      string
	Password      string
	FirstName     string
	LastName      string
	FirstNameRuby string
	LastNameRuby  string
	Role          int
}

func (s *UserAdminService) Create(actor Actor, in CreateUserInput) (*model.User, error) {
	hash := ""
	if in.Password != "" {
		var err error
		hash, err = crypto.HashPasswordAsBcrypt(in.Password)
		if err != nil {
			return nil, err
		}
	}

	var user *model.User
	err := s.store.Transaction(func(tx repository.Store) error {
		exists, err := tx.Users().ExistsByUsername(in.Username)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateUsername
		}
		user, err = model.NewUser(in.Username, hash, in.Role, actor.Name)
		if err != nil {
			return err
		}
		profile := model.Profile{
			FirstName:     &in.FirstName,
			LastName:      &in.LastName,
			FirstNameRuby: &in.FirstNameRuby,
			LastNameRuby:  &in.LastNameRuby,
		}
		if err := user.UpdateProfile(profile, actor.Name); err != nil {
			return err
		}
		return tx.Users().Save(user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserInput is a partial update: only non-nil fields are applied.
type UpdateUserInput struct {
	FirstName     *string
	LastName      *string
	FirstNameRuby *string
	LastNameRuby  *string
	Role          *int
}

func (s *UserAdminService) Update(actor Actor, userId int, in UpdateUserInput) (*model.User, error) {
	var user *model.User
	err := s.store.Transaction(func(tx repository.Store) error {
		var err error
		user, err = tx.Users().FindById(userId)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		profile := model.Profile{
			FirstName:     in.FirstName,
			LastName:      in.LastName,
			FirstNameRuby: in.FirstNameRuby,
			LastNameRuby:  in.LastNameRuby,
		}
		if err := user.UpdateProfile(profile, actor.Name); err != nil {
			return err
		}
		if in.Role != nil {
			if err := user.SetRole(*in.Role, actor.Name); err != nil {
				return err
			}
		}
		return tx.Users().Save(user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword sets a new password without current-password verification.
// Admin-only; the self-service path is ChangePassword.
func (s *UserAdminService) ResetPassword(actor Actor, userId int, password string) error {
	if password == "" {
		return model.NewValidationError("password", "must not be empty")
	}
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}
	return s.store.Transaction(func(tx repository.Store) error {
		user, err := tx.Users().FindById(userId)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}
		user.SetPassword(hash, actor.Name)
		return tx.Users().Save(user)
	})
}

// InitializePassword is the one-time bootstrap for accounts provisioned
// without a password. A second call fails on the entity.
func (s *UserAdminService) InitializePassword(actor Actor, userId int, password string) error {
	if password == "" {
		return model.NewValidationError("password", "must not be empty")
	}
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}
	return s.store.Transaction(func(tx repository.Store) error {
		user, err := tx.Users().FindById(userId)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}
		if err := user.InitializePassword(hash, actor.Name); err != nil {
			return err
		}
		return tx.Users().Save(user)
	})
}

// Delete logically deletes the user and, in the same transaction, all of
// the user's todos, mirroring the schema's cascade rule.
func (s *UserAdminService) Delete(actor Actor, userId int) error {
	return s.store.Transaction(func(tx repository.Store) error {
		user, err := tx.Users().FindById(userId)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}
		if err := user.Delete(actor.Name); err != nil {
			return err
		}
		if err := tx.Users().Save(user); err != nil {
			return err
		}
		return tx.Todos().DeleteByUserId(user.Id, actor.Name)
	})
}

// UpdateProfile is the self-service profile update.
func (s *UserAdminService) UpdateProfile(actor Actor, in UpdateUserInput) (*model.User, error) {
	// Role changes are not self-service.
	in.Role = nil
	return s.Update(actor, actor.Id, in)
}

// ChangePassword is the self-service password change; the current
// password must verify before the new one is stored.
func (s *UserAdminService) ChangePassword(actor Actor, currentPassword, newPassword string) error {
	if newPassword == "" {
		return model.NewValidationError("newPassword", "must not be empty")
	}
	hash, err := crypto.HashPasswordAsBcrypt(newPassword)
	if err != nil {
		return err
	}
	return s.store.Transaction(func(tx repository.Store) error {
		user, err := tx.Users().FindById(actor.Id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}
		if !crypto.CheckPasswordHash(user.PasswordHash, currentPassword) {
			return ErrInvalidCredentials
		}
		user.SetPassword(hash, actor.Name)
		return tx.Users().Save(user)
	})
}
