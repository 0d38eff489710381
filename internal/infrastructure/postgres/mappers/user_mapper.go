package mappers

import (
	"github.com/Danish0929x/eurobytebackend/internal/domain"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/postgres/models"
)

func ToDomainUser(model *models.UserModel) *domain.User {
	return &domain.User{
		UserID:    model.UserID,
		FullName:  model.FullName,
		Referrer:  model.Referrer,
		Verified:  model.Verified,
		Status:    domain.UserStatus(model.Status),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMUser(user *domain.User) *models.UserModel {
	return &models.UserModel{
		UserID:    user.UserID,
		FullName:  user.FullName,
		Referrer:  user.Referrer,
		Verified:  user.Verified,
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
