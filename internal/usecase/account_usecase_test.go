package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Danish0929x/eurobytebackend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesUserAndWallet(t *testing.T) {
	users := newFakeUserRepo()
	ledgerRepo := newFakeLedgerRepo()
	uc := NewDefaultAccountUsecase(users, ledgerRepo)

	users.addUser("sponsor", "", time.Now())

	user, err := uc.Register(context.Background(), "newbie", "New Bee", "sponsor")
	require.NoError(t, err)
	assert.Equal(t, "sponsor", user.Referrer)
	assert.Equal(t, domain.UserActive, user.Status)

	wallet, err := ledgerRepo.GetWallet(context.Background(), "newbie")
	require.NoError(t, err)
	assert.Zero(t, wallet.Balance)
}

// A participant must never outlive a failed wallet insert.
func TestRegisterRollsBackUserWhenWalletCreateFails(t *testing.T) {
	users := newFakeUserRepo()
	ledgerRepo := newFakeLedgerRepo()
	ledgerRepo.createWalletErr = errors.New("connection reset")
	uc := NewDefaultAccountUsecase(users, ledgerRepo)

	_, err := uc.Register(context.Background(), "newbie", "New Bee", "")
	require.Error(t, err)

	_, err = users.GetUserByID(context.Background(), "newbie")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegisterExistingWalletReportsWalletExists(t *testing.T) {
	users := newFakeUserRepo()
	ledgerRepo := newFakeLedgerRepo()
	ledgerRepo.addWallet("newbie", 5)
	uc := NewDefaultAccountUsecase(users, ledgerRepo)

	_, err := uc.Register(context.Background(), "newbie", "New Bee", "")
	assert.ErrorIs(t, err, domain.ErrWalletExists)
	assert.NotErrorIs(t, err, domain.ErrDuplicateTransaction)
}

func TestRegisterRejectsUnknownReferrer(t *testing.T) {
	uc := NewDefaultAccountUsecase(newFakeUserRepo(), newFakeLedgerRepo())

	_, err := uc.Register(context.Background(), "newbie", "New Bee", "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestReferralName(t *testing.T) {
	users := newFakeUserRepo()
	ledgerRepo := newFakeLedgerRepo()
	uc := NewDefaultAccountUsecase(users, ledgerRepo)

	users.users["u1"] = &domain.User{UserID: "u1", FullName: "Ada"}

	name, err := uc.ReferralName(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)

	_, err = uc.ReferralName(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
