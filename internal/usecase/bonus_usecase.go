package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/Danish0929x/eurobytebackend/internal/domain"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/metrics"
	ledgerdto "github.com/Danish0929x/eurobytebackend/internal/usecase/dto/ledger"
)

type BonusUsecase interface {
	OnPackageCreated(ctx context.Context, packageID, userID string, packageAmount float64) error
}

type DefaultBonusUsecase struct {
	UserRepo        domain.UserRepository
	PackageRepo     domain.PackageRepository
	Ledger          LedgerUsecase
	Metrics         *metrics.LedgerMetrics
	DirectBonusRate float64
}

func NewDefaultBonusUsecase(
	userRepo domain.UserRepository,
	packageRepo domain.PackageRepository,
	ledger LedgerUsecase,
	ledgerMetrics *metrics.LedgerMetrics,
	directBonusRate float64) *DefaultBonusUsecase {

	return &DefaultBonusUsecase{
		UserRepo:        userRepo,
		PackageRepo:     packageRepo,
		Ledger:          ledger,
		Metrics:         ledgerMetrics,
		DirectBonusRate: directBonusRate,
	}
}

// OnPackageCreated pays the direct referral bonus for one package creation.
// It is safe to call more than once for the same package: the credit is
// keyed on the package id and a replay is treated as already done.
func (uc *DefaultBonusUsecase) OnPackageCreated(ctx context.Context, packageID, userID string, packageAmount float64) error {
	if packageID == "" || userID == "" || packageAmount <= 0 {
		return domain.ErrValidation
	}

	user, err := uc.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Referrer == "" {
		slog.Info("no referrer found, skipping direct bonus", "user_id", userID)
		return nil
	}

	// Eligibility gating: only referrers with an active package earn.
	hasActive, err := uc.PackageRepo.HasActivePackage(ctx, user.Referrer)
	if err != nil {
		return err
	}
	if !hasActive {
		slog.Info("referrer has no active package, bonus not distributed",
			"referrer", user.Referrer,
			"user_id", userID)
		return nil
	}

	bonus := roundCents(packageAmount * uc.DirectBonusRate)
	_, err = uc.Ledger.ApplyTransaction(ctx, &ledgerdto.ApplyTransactionInput{
		UserID:    user.Referrer,
		Amount:    bonus,
		Category:  domain.CategoryDirectBonus,
		Remark:    fmt.Sprintf("Direct Bonus from User %s", userID),
		Status:    domain.StatusCompleted,
		DedupeKey: fmt.Sprintf("direct_bonus:%s", packageID),
	})
	if errors.Is(err, domain.ErrDuplicateTransaction) {
		slog.Info("direct bonus already distributed for package", "package_id", packageID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("distributing direct bonus for package %s: %w", packageID, err)
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordDirectBonus(bonus)
	}
	slog.Info("direct bonus distributed",
		"referrer", user.Referrer,
		"user_id", userID,
		"package_id", packageID,
		"bonus", bonus)
	return nil
}

// roundCents rounds to 2 decimal places so repeated distributions cannot
// accrete sub-cent drift.
func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
