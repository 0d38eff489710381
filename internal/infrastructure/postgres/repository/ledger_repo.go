package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Danish0929x/eurobytebackend/internal/domain"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/postgres/mappers"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultLedgerRepository struct {
	DB *gorm.DB
}

func NewDefaultLedgerRepository(db *gorm.DB) *DefaultLedgerRepository {
	return &DefaultLedgerRepository{DB: db}
}

func (r *DefaultLedgerRepository) CreateWallet(ctx context.Context, wallet *domain.Wallet) error {
	model := mappers.ToGORMWallet(wallet)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrWalletExists
		}
		return err
	}
	return nil
}

func (r *DefaultLedgerRepository) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	var model models.WalletModel
	if err := r.DB.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return mappers.ToDomainWallet(&model), nil
}

// casWallet moves the wallet to newBalance only if its version is still the
// one the caller read. Zero rows affected means somebody won the race.
func casWallet(tx *gorm.DB, wallet *domain.Wallet, newBalance float64) error {
	res := tx.Model(&models.WalletModel{}).
		Where("user_id = ? AND version = ?", wallet.UserID, wallet.Version).
		Updates(map[string]interface{}{
			"balance":    newBalance,
			"version":    wallet.Version + 1,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrConcurrencyConflict
	}
	return nil
}

func (r *DefaultLedgerRepository) ApplyTransaction(ctx context.Context, wallet *domain.Wallet, newBalance float64, txRecord *domain.Transaction) error {
	model := mappers.ToGORMTransaction(txRecord)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := casWallet(tx, wallet, newBalance); err != nil {
			return err
		}
		return tx.Create(model).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateTransaction
	}
	return err
}

// RefundDebit moves the wallet and flips the transaction to Failed in one
// database transaction. The status update is guarded so a row that is
// already Failed is never refunded twice: zero rows affected rolls the
// wallet movement back and reports ErrAlreadyRefunded.
func (r *DefaultLedgerRepository) RefundDebit(ctx context.Context, wallet *domain.Wallet, newBalance float64, txRecord *domain.Transaction) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := casWallet(tx, wallet, newBalance); err != nil {
			return err
		}
		res := tx.Model(&models.TransactionModel{}).
			Where("id = ? AND status <> ?", txRecord.ID, string(domain.StatusFailed)).
			Updates(map[string]interface{}{
				"status":        string(txRecord.Status),
				"balance_after": txRecord.BalanceAfter,
				"updated_at":    time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyRefunded
		}
		return nil
	})
}

func (r *DefaultLedgerRepository) CreateTransaction(ctx context.Context, txRecord *domain.Transaction) error {
	model := mappers.ToGORMTransaction(txRecord)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateTransaction
		}
		return err
	}
	return nil
}

func (r *DefaultLedgerRepository) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var model models.TransactionModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return mappers.ToDomainTransaction(&model), nil
}

func (r *DefaultLedgerRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus) error {
	res := r.DB.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("id = ?", transactionID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *DefaultLedgerRepository) ExternalReferenceExists(ctx context.Context, externalReference string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("external_reference = ?", externalReference).
		Count(&count).Error
	return count > 0, err
}

func (r *DefaultLedgerRepository) DedupeKeyExists(ctx context.Context, dedupeKey string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("dedupe_key = ?", dedupeKey).
		Count(&count).Error
	return count > 0, err
}

func (r *DefaultLedgerRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	query := r.DB.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("user_id = ?", userID)

	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}
	switch filter.Direction {
	case domain.DirectionCredited:
		query = query.Where("credited_amount > 0")
	case domain.DirectionDebited:
		query = query.Where("debited_amount > 0")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 500
	}

	var txModels []models.TransactionModel
	if err := query.Order("created_at DESC").Limit(limit).Find(&txModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, len(txModels))
	for i, model := range txModels {
		transactions[i] = mappers.ToDomainTransaction(&model)
	}
	return transactions, nil
}

func (r *DefaultLedgerRepository) CountDebitsByCategoryBetween(ctx context.Context, userID string, category domain.TransactionCategory, from, to time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("user_id = ? AND category = ? AND debited_amount > 0", userID, string(category)).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}
