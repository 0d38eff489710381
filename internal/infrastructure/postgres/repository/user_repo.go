package repository

import (
	"context"
	"errors"

	"github.com/Danish0929x/eurobytebackend/internal/domain"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/postgres/mappers"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultUserRepository struct {
	DB *gorm.DB
}

func NewDefaultUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{DB: db}
}

func (r *DefaultUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	model := mappers.ToGORMUser(user)
	return r.DB.WithContext(ctx).Create(model).Error
}

func (r *DefaultUserRepository) DeleteUser(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).
		Delete(&models.UserModel{}, "user_id = ?", userID).Error
}

func (r *DefaultUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var model models.UserModel
	if err := r.DB.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return mappers.ToDomainUser(&model), nil
}

func (r *DefaultUserRepository) ListByReferrers(ctx context.Context, referrerIDs []string) ([]*domain.User, error) {
	if len(referrerIDs) == 0 {
		return nil, nil
	}

	var userModels []models.UserModel
	if err := r.DB.WithContext(ctx).
		Where("referrer IN ?", referrerIDs).
		Order("created_at ASC").
		Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*domain.User, len(userModels))
	for i, model := range userModels {
		users[i] = mappers.ToDomainUser(&model)
	}
	return users, nil
}
