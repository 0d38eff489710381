package domain

import "time"

// Wallet is the custodial balance record of one participant. Balance is
// mutated only by the ledger engine; Version guards every mutation with an
// optimistic compare-and-swap.
type Wallet struct {
	UserID    string
	Balance   float64
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
