package domain

import "errors"

var (
	ErrValidation           = errors.New("invalid input")
	ErrUserNotFound         = errors.New("user not found")
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrWalletExists         = errors.New("wallet already exists for user")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrInvalidAmount        = errors.New("invalid transaction amount")
	ErrInsufficientBalance  = errors.New("insufficient balance for the debit transaction")
	ErrDuplicateTransaction = errors.New("transaction already processed")
	ErrAlreadyRefunded      = errors.New("debit already refunded")
	ErrConcurrencyConflict  = errors.New("wallet was modified concurrently")
)
