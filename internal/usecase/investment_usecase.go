package usecase

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/Danish0929x/eurobytebackend/internal/domain"
	"github.com/google/uuid"
)

type InvestmentUsecase interface {
	CreatePackage(ctx context.Context, userID string, amount float64) (*domain.Package, error)
	PackagesByUser(ctx context.Context, userID string) ([]*domain.Package, error)
}

type DefaultInvestmentUsecase struct {
	PackageRepo domain.PackageRepository
	UserRepo    domain.UserRepository
	Bonus       BonusUsecase
}

func NewDefaultInvestmentUsecase(
	packageRepo domain.PackageRepository,
	userRepo domain.UserRepository,
	bonus BonusUsecase) *DefaultInvestmentUsecase {

	return &DefaultInvestmentUsecase{
		PackageRepo: packageRepo,
		UserRepo:    userRepo,
		Bonus:       bonus,
	}
}

func (uc *DefaultInvestmentUsecase) CreatePackage(ctx context.Context, userID string, amount float64) (*domain.Package, error) {
	if userID == "" {
		return nil, domain.ErrValidation
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, domain.ErrInvalidAmount
	}
	if _, err := uc.UserRepo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	pkg := &domain.Package{
		ID:        uuid.New().String(),
		UserID:    userID,
		Amount:    amount,
		Status:    domain.PackageActive,
		StartDate: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.PackageRepo.CreatePackage(ctx, pkg); err != nil {
		return nil, err
	}

	// The package row is durable at this point. The distributor fails soft
	// on eligibility misses, so an error here is a real fault, but the
	// investment itself already happened.
	if err := uc.Bonus.OnPackageCreated(ctx, pkg.ID, userID, amount); err != nil {
		slog.Error("direct bonus distribution failed",
			"package_id", pkg.ID,
			"user_id", userID,
			"error", err.Error())
	}

	return pkg, nil
}

func (uc *DefaultInvestmentUsecase) PackagesByUser(ctx context.Context, userID string) ([]*domain.Package, error) {
	if userID == "" {
		return nil, domain.ErrValidation
	}
	return uc.PackageRepo.ListByUserID(ctx, userID)
}
