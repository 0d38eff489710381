package ledgerdto

import "github.com/Danish0929x/eurobytebackend/internal/domain"

// ApplyTransactionInput describes one wallet mutation. Amount is signed:
// positive credits, negative debits.
type ApplyTransactionInput struct {
	UserID            string
	Amount            float64
	Category          domain.TransactionCategory
	Remark            string
	Status            domain.TransactionStatus
	ExternalReference string
	DedupeKey         string
}
