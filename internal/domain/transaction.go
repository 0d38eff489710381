package domain

import "time"

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "Pending"
	StatusCompleted TransactionStatus = "Completed"
	StatusFailed    TransactionStatus = "Failed"
)

// TransactionCategory is set at creation time. Reporting filters on this
// tag, never on the free-text remark.
type TransactionCategory string

const (
	CategoryDeposit     TransactionCategory = "deposit"
	CategoryWithdrawal  TransactionCategory = "withdrawal"
	CategoryDirectBonus TransactionCategory = "direct_bonus"
	CategoryDailyProfit TransactionCategory = "daily_profit"
	CategoryAdjustment  TransactionCategory = "adjustment"
)

// Transaction is one immutable ledger entry. Exactly one of CreditedAmount
// and DebitedAmount is non-zero. The only mutation ever applied after
// creation is a status change (and its refund side effect on BalanceAfter).
type Transaction struct {
	ID                string
	UserID            string
	CreditedAmount    float64
	DebitedAmount     float64
	Category          TransactionCategory
	Remark            string
	Status            TransactionStatus
	BalanceAfter      float64
	ExternalReference string
	DedupeKey         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SignedAmount is positive for credits, negative for debits.
func (t *Transaction) SignedAmount() float64 {
	if t.DebitedAmount > 0 {
		return -t.DebitedAmount
	}
	return t.CreditedAmount
}

type TransactionDirection string

const (
	DirectionCredited TransactionDirection = "credited"
	DirectionDebited  TransactionDirection = "debited"
)

type TransactionFilter struct {
	Category  TransactionCategory
	Direction TransactionDirection
	Limit     int
}
