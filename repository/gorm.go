package repository

import (
	"time"

	"gorm.io/gorm"

	"todoapi/database/model"
)

// NewStore wraps a GORM handle in the Store port.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) Todos() TodoRepository {
	return &gormTodoRepository{db: s.db}
}

func (s *gormStore) Users() UserRepository {
	return &gormUserRepository{db: s.db}
}

func (s *gormStore) Transaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func wrapNotFound(err error) error {
	if err == gorm.ErrRecordNotFound {
		return ErrNotFound
	}
	return err
}

type gormTodoRepository struct {
	db *gorm.DB
}

func (r *gormTodoRepository) FindById(id int) (*model.Todo, error) {
	todo := &model.Todo{}
	err := r.db.Model(model.Todo{}).
		Where("id = ? AND deleted = ?", id, false).
		First(todo).
		Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return todo, nil
}

func (r *gormTodoRepository) FindByUserId(userId int) ([]*model.Todo, error) {
	var todos []*model.Todo
	err := r.db.Model(model.Todo{}).
		Where("user_id = ? AND deleted = ?", userId, false).
		Order("id").
		Find(&todos).
		Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *gormTodoRepository) FindByIdAndUserId(id, userId int) (*model.Todo, error) {
	todo := &model.Todo{}
	err := r.db.Model(model.Todo{}).
		Where("id = ? AND user_id = ? AND deleted = ?", id, userId, false).
		First(todo).
		Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return todo, nil
}

func (r *gormTodoRepository) FindByUserIdIncludingDeleted(userId int) ([]*model.Todo, error) {
	var todos []*model.Todo
	err := r.db.Model(model.Todo{}).
		Where("user_id = ?", userId).
		Order("id").
		Find(&todos).
		Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *gormTodoRepository) Save(todo *model.Todo) error {
	return r.db.Save(todo).Error
}

func (r *gormTodoRepository) Delete(id int) error {
	return r.logicalDelete(r.db.Model(model.Todo{}).Where("id = ?", id), model.SystemActor)
}

func (r *gormTodoRepository) DeleteByIdAndUserId(id, userId int) error {
	return r.logicalDelete(
		r.db.Model(model.Todo{}).Where("id = ? AND user_id = ?", id, userId),
		model.SystemActor,
	)
}

func (r *gormTodoRepository) DeleteByUserId(userId int, updatedBy string) error {
	return r.logicalDelete(
		r.db.Model(model.Todo{}).Where("user_id = ? AND deleted = ?", userId, false),
		updatedBy,
	)
}

func (r *gormTodoRepository) logicalDelete(query *gorm.DB, updatedBy string) error {
	if updatedBy == "" {
		updatedBy = model.SystemActor
	}
	return query.Updates(map[string]any{
		"deleted":    true,
		"updated_at": time.Now(),
		"updated_by": updatedBy,
	}).Error
}

type gormUserRepository struct {
	db *gorm.DB
}

func (r *gormUserRepository) FindById(id int) (*model.User, error) {
	user := &model.User{}
	err := r.db.Model(model.User{}).
		Where("id = ? AND deleted = ?", id, false).
		First(user).
		Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return user, nil
}

func (r *gormUserRepository) FindByUsername(username string) (*model.User, error) {
	user := &model.User{}
	err := r.db.Model(model.User{}).
		Where("username = ? AND deleted = ?", username, false).
		First(user).
		Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return user, nil
}

func (r *gormUserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(model.User{}).
		Where("username = ? AND deleted = ?", username, false).
		Count(&count).
		Error
	return count > 0, err
}

func (r *gormUserRepository) FindAll() ([]*model.User, error) {
	var users []*model.User
	err := r.db.Model(model.User{}).
		Where("deleted = ?", false).
		Order("id").
		Find(&users).
		Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *gormUserRepository) Save(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *gormUserRepository) Delete(id int) error {
	return r.db.Model(model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"deleted":    true,
			"updated_at": time.Now(),
			"updated_by": model.SystemActor,
		}).Error
}
