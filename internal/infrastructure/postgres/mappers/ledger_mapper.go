package mappers

import (
	"github.com/Danish0929x/eurobytebackend/internal/domain"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/postgres/models"
)

func ToDomainWallet(model *models.WalletModel) *domain.Wallet {
	return &domain.Wallet{
		UserID:    model.UserID,
		Balance:   model.Balance,
		Version:   model.Version,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMWallet(wallet *domain.Wallet) *models.WalletModel {
	return &models.WalletModel{
		UserID:    wallet.UserID,
		Balance:   wallet.Balance,
		Version:   wallet.Version,
		CreatedAt: wallet.CreatedAt,
		UpdatedAt: wallet.UpdatedAt,
	}
}

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	tx := &domain.Transaction{
		ID:             model.ID,
		UserID:         model.UserID,
		CreditedAmount: model.CreditedAmount,
		DebitedAmount:  model.DebitedAmount,
		Category:       domain.TransactionCategory(model.Category),
		Remark:         model.Remark,
		Status:         domain.TransactionStatus(model.Status),
		BalanceAfter:   model.BalanceAfter,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
	if model.ExternalReference != nil {
		tx.ExternalReference = *model.ExternalReference
	}
	if model.DedupeKey != nil {
		tx.DedupeKey = *model.DedupeKey
	}
	return tx
}

func ToGORMTransaction(tx *domain.Transaction) *models.TransactionModel {
	model := &models.TransactionModel{
		ID:             tx.ID,
		UserID:         tx.UserID,
		CreditedAmount: tx.CreditedAmount,
		DebitedAmount:  tx.DebitedAmount,
		Category:       string(tx.Category),
		Remark:         tx.Remark,
		Status:         string(tx.Status),
		BalanceAfter:   tx.BalanceAfter,
		CreatedAt:      tx.CreatedAt,
		UpdatedAt:      tx.UpdatedAt,
	}
	// NULL, not empty string, so the partial unique indexes stay quiet
	// for transactions without a reference or dedupe key.
	if tx.ExternalReference != "" {
		ref := tx.ExternalReference
		model.ExternalReference = &ref
	}
	if tx.DedupeKey != "" {
		key := tx.DedupeKey
		model.DedupeKey = &key
	}
	return model
}
