package devserver

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hairizuan-noorazman/user-admin/logger"
	"github.com/hairizuan-noorazman/user-admin/user"
	"gorm.io/gorm"
)

// GormStore implements Store using GORM.
type GormStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormStore creates a new GORM-backed user store.
func NewGormStore(db *gorm.DB, log logger.Logger) *GormStore {
	return &GormStore{
		db:     db,
		logger: log,
	}
}

// Create stores a new user with a generated UUID.
func (s *GormStore) Create(ctx context.Context, data user.CreateData) (*user.User, error) {
	u := &user.User{ID: uuid.NewString()}
	applyData(u, data)

	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		s.logger.Error(ctx, "failed to create user", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info(ctx, "user created", map[string]interface{}{
		"user_id": u.ID,
	})
	return u, nil
}

// GetByID retrieves a user by id.
func (s *GormStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error(ctx, "failed to get user by ID", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id,
		})
		return nil, err
	}
	return &u, nil
}

// Replace overwrites the editable fields of the user with id.
func (s *GormStore) Replace(ctx context.Context, id string, data user.CreateData) (*user.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyData(u, data)

	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		s.logger.Error(ctx, "failed to update user", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id,
		})
		return nil, err
	}

	s.logger.Info(ctx, "user updated", map[string]interface{}{
		"user_id": id,
	})
	return u, nil
}

// Delete removes the user with id.
func (s *GormStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&user.User{})
	if result.Error != nil {
		s.logger.Error(ctx, "failed to delete user", map[string]interface{}{
			"error":   result.Error.Error(),
			"user_id": id,
		})
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	s.logger.Info(ctx, "user deleted", map[string]interface{}{
		"user_id": id,
	})
	return nil
}

// List returns one page of users and the total count.
func (s *GormStore) List(ctx context.Context, limit, offset int) ([]user.User, int, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&user.User{}).Count(&total).Error; err != nil {
		s.logger.Error(ctx, "failed to count users", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, 0, err
	}

	users := []user.User{}
	err := s.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		s.logger.Error(ctx, "failed to list users", map[string]interface{}{
			"error":  err.Error(),
			"limit":  limit,
			"offset": offset,
		})
		return nil, 0, err
	}

	return users, int(total), nil
}

func applyData(u *user.User, d user.CreateData) {
	u.FirstName = d.FirstName
	u.LastName = d.LastName
	u.Height = d.Height
	u.Weight = d.Weight
	u.Gender = d.Gender
	u.Residence = d.Residence
	u.Photo = d.Photo
}
