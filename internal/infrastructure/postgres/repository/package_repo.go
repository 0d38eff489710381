package repository

import (
	"context"

	"github.com/Danish0929x/eurobytebackend/internal/domain"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/postgres/mappers"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPackageRepository struct {
	DB *gorm.DB
}

func NewDefaultPackageRepository(db *gorm.DB) *DefaultPackageRepository {
	return &DefaultPackageRepository{DB: db}
}

func (r *DefaultPackageRepository) CreatePackage(ctx context.Context, pkg *domain.Package) error {
	model := mappers.ToGORMPackage(pkg)
	return r.DB.WithContext(ctx).Create(model).Error
}

func (r *DefaultPackageRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Package, error) {
	var pkgModels []models.PackageModel
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&pkgModels).Error; err != nil {
		return nil, err
	}
	return toDomainPackages(pkgModels), nil
}

func (r *DefaultPackageRepository) ListActive(ctx context.Context) ([]*domain.Package, error) {
	var pkgModels []models.PackageModel
	if err := r.DB.WithContext(ctx).
		Where("status = ?", string(domain.PackageActive)).
		Order("created_at ASC").
		Find(&pkgModels).Error; err != nil {
		return nil, err
	}
	return toDomainPackages(pkgModels), nil
}

func (r *DefaultPackageRepository) HasActivePackage(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.PackageModel{}).
		Where("user_id = ? AND status = ?", userID, string(domain.PackageActive)).
		Count(&count).Error
	return count > 0, err
}

func (r *DefaultPackageRepository) SumAmountByUserIDs(ctx context.Context, userIDs []string) (float64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	var total float64
	err := r.DB.WithContext(ctx).Model(&models.PackageModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id IN ?", userIDs).
		Scan(&total).Error
	return total, err
}

func toDomainPackages(pkgModels []models.PackageModel) []*domain.Package {
	packages := make([]*domain.Package, len(pkgModels))
	for i, model := range pkgModels {
		packages[i] = mappers.ToDomainPackage(&model)
	}
	return packages
}
