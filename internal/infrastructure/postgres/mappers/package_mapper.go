package mappers

import (
	"github.com/Danish0929x/eurobytebackend/internal/domain"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/postgres/models"
)

func ToDomainPackage(model *models.PackageModel) *domain.Package {
	return &domain.Package{
		ID:        model.ID,
		UserID:    model.UserID,
		Amount:    model.Amount,
		Status:    domain.PackageStatus(model.Status),
		StartDate: model.StartDate,
		EndDate:   model.EndDate,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMPackage(pkg *domain.Package) *models.PackageModel {
	return &models.PackageModel{
		ID:        pkg.ID,
		UserID:    pkg.UserID,
		Amount:    pkg.Amount,
		Status:    string(pkg.Status),
		StartDate: pkg.StartDate,
		EndDate:   pkg.EndDate,
		CreatedAt: pkg.CreatedAt,
		UpdatedAt: pkg.UpdatedAt,
	}
}
