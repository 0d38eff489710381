package domain

import (
	"context"
	"time"
)

// LedgerRepository persists wallets and their transaction log. Apply and
// Refund must write the wallet balance and the transaction row as one
// atomic unit, guarded by the wallet version passed in — a stale version
// fails with ErrConcurrencyConflict and changes nothing.
type LedgerRepository interface {
	CreateWallet(ctx context.Context, wallet *Wallet) error
	GetWallet(ctx context.Context, userID string) (*Wallet, error)

	// ApplyTransaction sets the wallet balance to newBalance (CAS on
	// wallet.Version) and inserts tx.
	ApplyTransaction(ctx context.Context, wallet *Wallet, newBalance float64, tx *Transaction) error
	// RefundDebit sets the wallet balance to newBalance (CAS on
	// wallet.Version) and updates tx's status and balance snapshot.
	// A transaction already in Failed status is never touched again;
	// that case returns ErrAlreadyRefunded with no wallet movement.
	RefundDebit(ctx context.Context, wallet *Wallet, newBalance float64, tx *Transaction) error

	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, transactionID string) (*Transaction, error)
	UpdateTransactionStatus(ctx context.Context, transactionID string, status TransactionStatus) error

	ExternalReferenceExists(ctx context.Context, externalReference string) (bool, error)
	DedupeKeyExists(ctx context.Context, dedupeKey string) (bool, error)

	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]*Transaction, error)
	CountDebitsByCategoryBetween(ctx context.Context, userID string, category TransactionCategory, from, to time.Time) (int64, error)
}
