package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Danish0929x/eurobytebackend/internal/config"
	"github.com/Danish0929x/eurobytebackend/internal/domain"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/kafka"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/metrics"
	ledgerdto "github.com/Danish0929x/eurobytebackend/internal/usecase/dto/ledger"
	"github.com/jaevor/go-nanoid"
)

// maxApplyRetries bounds the optimistic-lock retry loop before the
// conflict is surfaced to the caller.
const maxApplyRetries = 5

type LedgerEventPublisher interface {
	PublishTransaction(event kafka.TransactionEvent) error
}

type LedgerUsecase interface {
	ApplyTransaction(ctx context.Context, input *ledgerdto.ApplyTransactionInput) (*domain.Transaction, error)
	ChangeStatus(ctx context.Context, transactionID string, newStatus domain.TransactionStatus) (*domain.Transaction, error)
	RecordVerifiedDeposit(ctx context.Context, userID, externalReference string, amount float64) (*domain.Transaction, error)
	Withdraw(ctx context.Context, userID string, amount float64) (*domain.Transaction, error)
	Balance(ctx context.Context, userID string) (float64, error)
	Transactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]*domain.Transaction, error)
	HasDedupeKey(ctx context.Context, dedupeKey string) (bool, error)
}

type DefaultLedgerUsecase struct {
	LedgerRepo  domain.LedgerRepository
	Publisher   LedgerEventPublisher
	Metrics     *metrics.LedgerMetrics
	Withdrawals config.Withdrawals
}

func NewDefaultLedgerUsecase(
	ledgerRepo domain.LedgerRepository,
	publisher LedgerEventPublisher,
	ledgerMetrics *metrics.LedgerMetrics,
	withdrawals config.Withdrawals) *DefaultLedgerUsecase {

	return &DefaultLedgerUsecase{
		LedgerRepo:  ledgerRepo,
		Publisher:   publisher,
		Metrics:     ledgerMetrics,
		Withdrawals: withdrawals,
	}
}

func (uc *DefaultLedgerUsecase) ApplyTransaction(ctx context.Context, input *ledgerdto.ApplyTransactionInput) (*domain.Transaction, error) {
	if input.UserID == "" || input.Category == "" {
		return nil, domain.ErrValidation
	}
	if input.Amount == 0 || math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) {
		return nil, domain.ErrInvalidAmount
	}
	switch input.Status {
	case domain.StatusPending, domain.StatusCompleted, domain.StatusFailed:
	default:
		return nil, domain.ErrValidation
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	// Amounts are applied at creation time for Pending and Completed, so
	// the balance always reflects funds currently encumbered. A later
	// ChangeStatus to Failed refunds explicitly.
	applied := input.Status == domain.StatusPending || input.Status == domain.StatusCompleted

	for attempt := 0; attempt < maxApplyRetries; attempt++ {
		wallet, err := uc.LedgerRepo.GetWallet(ctx, input.UserID)
		if err != nil {
			uc.recordError(input.Category, "wallet_not_found")
			return nil, err
		}

		newBalance := wallet.Balance
		if applied {
			if input.Amount < 0 && wallet.Balance+input.Amount < 0 {
				uc.recordError(input.Category, "insufficient_balance")
				return nil, domain.ErrInsufficientBalance
			}
			newBalance = wallet.Balance + input.Amount
		}

		now := time.Now()
		txRecord := &domain.Transaction{
			ID:                idGenerator(),
			UserID:            input.UserID,
			Category:          input.Category,
			Remark:            input.Remark,
			Status:            input.Status,
			BalanceAfter:      newBalance,
			ExternalReference: input.ExternalReference,
			DedupeKey:         input.DedupeKey,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if input.Amount > 0 {
			txRecord.CreditedAmount = input.Amount
		} else {
			txRecord.DebitedAmount = -input.Amount
		}

		if applied {
			err = uc.LedgerRepo.ApplyTransaction(ctx, wallet, newBalance, txRecord)
		} else {
			err = uc.LedgerRepo.CreateTransaction(ctx, txRecord)
		}
		if err != nil {
			if applied && errors.Is(err, domain.ErrConcurrencyConflict) {
				continue
			}
			if errors.Is(err, domain.ErrDuplicateTransaction) {
				uc.recordError(input.Category, "duplicate")
			}
			return nil, err
		}

		uc.recordApplied(txRecord)
		uc.publishTransaction(txRecord)
		return txRecord, nil
	}

	uc.recordError(input.Category, "concurrency_conflict")
	return nil, domain.ErrConcurrencyConflict
}

func (uc *DefaultLedgerUsecase) ChangeStatus(ctx context.Context, transactionID string, newStatus domain.TransactionStatus) (*domain.Transaction, error) {
	switch newStatus {
	case domain.StatusPending, domain.StatusCompleted, domain.StatusFailed:
	default:
		return nil, domain.ErrValidation
	}

	// The transaction is re-read on every attempt: a concurrent
	// ChangeStatus may have already moved it to Failed, and the refund
	// must happen at most once.
	for attempt := 0; attempt < maxApplyRetries; attempt++ {
		txRecord, err := uc.LedgerRepo.GetTransaction(ctx, transactionID)
		if err != nil {
			return nil, err
		}

		// The only transition that moves money: an applied debit going to
		// Failed gets its amount refunded. An already-Failed transaction
		// is never refunded again.
		refund := newStatus == domain.StatusFailed &&
			txRecord.DebitedAmount > 0 &&
			txRecord.Status != domain.StatusFailed

		if !refund {
			if err := uc.LedgerRepo.UpdateTransactionStatus(ctx, transactionID, newStatus); err != nil {
				return nil, err
			}
			txRecord.Status = newStatus
			return txRecord, nil
		}

		wallet, err := uc.LedgerRepo.GetWallet(ctx, txRecord.UserID)
		if err != nil {
			return nil, err
		}

		newBalance := wallet.Balance + txRecord.DebitedAmount
		txRecord.Status = domain.StatusFailed
		txRecord.BalanceAfter = newBalance

		err = uc.LedgerRepo.RefundDebit(ctx, wallet, newBalance, txRecord)
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			continue
		}
		if errors.Is(err, domain.ErrAlreadyRefunded) {
			// Lost the race after our read: the other caller refunded.
			return uc.LedgerRepo.GetTransaction(ctx, transactionID)
		}
		if err != nil {
			return nil, err
		}

		slog.Info("debit refunded",
			"transaction_id", txRecord.ID,
			"user_id", txRecord.UserID,
			"amount", txRecord.DebitedAmount)
		uc.publishTransaction(txRecord)
		return txRecord, nil
	}

	return nil, domain.ErrConcurrencyConflict
}

func (uc *DefaultLedgerUsecase) RecordVerifiedDeposit(ctx context.Context, userID, externalReference string, amount float64) (*domain.Transaction, error) {
	if externalReference == "" {
		return nil, domain.ErrValidation
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, domain.ErrInvalidAmount
	}

	exists, err := uc.LedgerRepo.ExternalReferenceExists(ctx, externalReference)
	if err != nil {
		return nil, err
	}
	if exists {
		if uc.Metrics != nil {
			uc.Metrics.RecordDuplicateDeposit()
		}
		return nil, domain.ErrDuplicateTransaction
	}

	return uc.ApplyTransaction(ctx, &ledgerdto.ApplyTransactionInput{
		UserID:            userID,
		Amount:            amount,
		Category:          domain.CategoryDeposit,
		Remark:            "deposit",
		Status:            domain.StatusCompleted,
		ExternalReference: externalReference,
	})
}

func (uc *DefaultLedgerUsecase) Withdraw(ctx context.Context, userID string, amount float64) (*domain.Transaction, error) {
	if amount < uc.Withdrawals.MinAmount {
		return nil, fmt.Errorf("%w: minimum withdrawal amount is %.2f", domain.ErrValidation, uc.Withdrawals.MinAmount)
	}
	if amount > uc.Withdrawals.MaxAmount {
		return nil, fmt.Errorf("%w: maximum withdrawal amount is %.2f", domain.ErrValidation, uc.Withdrawals.MaxAmount)
	}

	// One withdrawal per UTC calendar day.
	from := time.Now().UTC().Truncate(24 * time.Hour)
	to := from.Add(24 * time.Hour)
	count, err := uc.LedgerRepo.CountDebitsByCategoryBetween(ctx, userID, domain.CategoryWithdrawal, from, to)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: you can only withdraw once per day", domain.ErrValidation)
	}

	return uc.ApplyTransaction(ctx, &ledgerdto.ApplyTransactionInput{
		UserID:   userID,
		Amount:   -amount,
		Category: domain.CategoryWithdrawal,
		Remark:   "USDT Withdrawal",
		Status:   domain.StatusPending,
	})
}

func (uc *DefaultLedgerUsecase) Balance(ctx context.Context, userID string) (float64, error) {
	wallet, err := uc.LedgerRepo.GetWallet(ctx, userID)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

func (uc *DefaultLedgerUsecase) Transactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	if userID == "" {
		return nil, domain.ErrValidation
	}
	return uc.LedgerRepo.ListTransactions(ctx, userID, filter)
}

func (uc *DefaultLedgerUsecase) HasDedupeKey(ctx context.Context, dedupeKey string) (bool, error) {
	return uc.LedgerRepo.DedupeKeyExists(ctx, dedupeKey)
}

func (uc *DefaultLedgerUsecase) recordApplied(txRecord *domain.Transaction) {
	if uc.Metrics == nil {
		return
	}
	direction := "credited"
	amount := txRecord.CreditedAmount
	if txRecord.DebitedAmount > 0 {
		direction = "debited"
		amount = txRecord.DebitedAmount
	}
	uc.Metrics.RecordTransactionApplied(string(txRecord.Category), string(txRecord.Status), direction, amount)
}

func (uc *DefaultLedgerUsecase) recordError(category domain.TransactionCategory, errorType string) {
	if uc.Metrics != nil {
		uc.Metrics.RecordTransactionError(string(category), errorType)
	}
}

func (uc *DefaultLedgerUsecase) publishTransaction(txRecord *domain.Transaction) {
	if uc.Publisher == nil {
		return
	}
	event := kafka.TransactionEvent{
		TransactionID: txRecord.ID,
		UserID:        txRecord.UserID,
		Category:      string(txRecord.Category),
		Status:        string(txRecord.Status),
		Amount:        txRecord.SignedAmount(),
		BalanceAfter:  txRecord.BalanceAfter,
	}
	if err := uc.Publisher.PublishTransaction(event); err != nil {
		slog.Error("failed to publish transaction event", "transaction_id", txRecord.ID, "error", err.Error())
	}
}
