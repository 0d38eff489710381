package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Danish0929x/eurobytebackend/internal/domain"
)

type AccountUsecase interface {
	Register(ctx context.Context, userID, fullName, referrerID string) (*domain.User, error)
	ReferralName(ctx context.Context, userID string) (string, error)
}

type DefaultAccountUsecase struct {
	UserRepo   domain.UserRepository
	LedgerRepo domain.LedgerRepository
}

func NewDefaultAccountUsecase(userRepo domain.UserRepository, ledgerRepo domain.LedgerRepository) *DefaultAccountUsecase {
	return &DefaultAccountUsecase{
		UserRepo:   userRepo,
		LedgerRepo: ledgerRepo,
	}
}

// Register provisions a participant and its zero-balance wallet. The
// referrer, when given, must exist and is immutable afterwards. Credential
// material is handled by the identity layer, never here.
func (uc *DefaultAccountUsecase) Register(ctx context.Context, userID, fullName, referrerID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrValidation
	}
	if referrerID != "" {
		if _, err := uc.UserRepo.GetUserByID(ctx, referrerID); err != nil {
			return nil, fmt.Errorf("referrer %s: %w", referrerID, err)
		}
	}

	now := time.Now()
	user := &domain.User{
		UserID:    userID,
		FullName:  fullName,
		Referrer:  referrerID,
		Status:    domain.UserActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.UserRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	wallet := &domain.Wallet{
		UserID:    userID,
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.LedgerRepo.CreateWallet(ctx, wallet); err != nil {
		// Registration either fully applies or leaves nothing behind: a
		// participant without a wallet would fail every later ledger call.
		if delErr := uc.UserRepo.DeleteUser(ctx, userID); delErr != nil {
			slog.Error("registration rollback failed, user left without wallet",
				"user_id", userID,
				"error", delErr)
		}
		return nil, err
	}

	return user, nil
}

func (uc *DefaultAccountUsecase) ReferralName(ctx context.Context, userID string) (string, error) {
	user, err := uc.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.FullName, nil
}
