package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Danish0929x/eurobytebackend/internal/domain"
)

// fakeLedgerRepo is an in-memory LedgerRepository with the same version
// semantics as the postgres implementation.
type fakeLedgerRepo struct {
	mu           sync.Mutex
	wallets      map[string]*domain.Wallet
	transactions map[string]*domain.Transaction
	txOrder      []string

	// forceConflicts makes the next N Apply/Refund calls fail with
	// ErrConcurrencyConflict without touching state.
	forceConflicts int

	// createWalletErr, when set, fails every CreateWallet call.
	createWalletErr error

	// beforeGetWallet runs once before the next wallet read, outside the
	// repo lock, so a test can interleave a competing operation.
	beforeGetWallet func()
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		wallets:      make(map[string]*domain.Wallet),
		transactions: make(map[string]*domain.Transaction),
	}
}

func (r *fakeLedgerRepo) addWallet(userID string, balance float64) {
	r.wallets[userID] = &domain.Wallet{UserID: userID, Balance: balance}
}

func (r *fakeLedgerRepo) CreateWallet(ctx context.Context, wallet *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createWalletErr != nil {
		return r.createWalletErr
	}
	if _, ok := r.wallets[wallet.UserID]; ok {
		return domain.ErrWalletExists
	}
	w := *wallet
	r.wallets[wallet.UserID] = &w
	return nil
}

func (r *fakeLedgerRepo) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	r.mu.Lock()
	hook := r.beforeGetWallet
	r.beforeGetWallet = nil
	r.mu.Unlock()
	if hook != nil {
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	wallet, ok := r.wallets[userID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	w := *wallet
	return &w, nil
}

func (r *fakeLedgerRepo) checkUnique(tx *domain.Transaction) error {
	for _, existing := range r.transactions {
		if tx.ExternalReference != "" && existing.ExternalReference == tx.ExternalReference {
			return domain.ErrDuplicateTransaction
		}
		if tx.DedupeKey != "" && existing.DedupeKey == tx.DedupeKey {
			return domain.ErrDuplicateTransaction
		}
	}
	return nil
}

func (r *fakeLedgerRepo) ApplyTransaction(ctx context.Context, wallet *domain.Wallet, newBalance float64, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forceConflicts > 0 {
		r.forceConflicts--
		return domain.ErrConcurrencyConflict
	}
	stored, ok := r.wallets[wallet.UserID]
	if !ok || stored.Version != wallet.Version {
		return domain.ErrConcurrencyConflict
	}
	if err := r.checkUnique(tx); err != nil {
		return err
	}
	stored.Balance = newBalance
	stored.Version++
	record := *tx
	r.transactions[tx.ID] = &record
	r.txOrder = append(r.txOrder, tx.ID)
	return nil
}

func (r *fakeLedgerRepo) RefundDebit(ctx context.Context, wallet *domain.Wallet, newBalance float64, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forceConflicts > 0 {
		r.forceConflicts--
		return domain.ErrConcurrencyConflict
	}
	stored, ok := r.wallets[wallet.UserID]
	if !ok || stored.Version != wallet.Version {
		return domain.ErrConcurrencyConflict
	}
	existing, ok := r.transactions[tx.ID]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	if existing.Status == domain.StatusFailed {
		return domain.ErrAlreadyRefunded
	}
	stored.Balance = newBalance
	stored.Version++
	existing.Status = tx.Status
	existing.BalanceAfter = tx.BalanceAfter
	return nil
}

func (r *fakeLedgerRepo) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnique(tx); err != nil {
		return err
	}
	record := *tx
	r.transactions[tx.ID] = &record
	r.txOrder = append(r.txOrder, tx.ID)
	return nil
}

func (r *fakeLedgerRepo) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.transactions[transactionID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	record := *tx
	return &record, nil
}

func (r *fakeLedgerRepo) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.transactions[transactionID]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	tx.Status = status
	return nil
}

func (r *fakeLedgerRepo) ExternalReferenceExists(ctx context.Context, externalReference string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.transactions {
		if tx.ExternalReference == externalReference {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLedgerRepo) DedupeKeyExists(ctx context.Context, dedupeKey string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.transactions {
		if tx.DedupeKey == dedupeKey {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLedgerRepo) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Transaction
	for i := len(r.txOrder) - 1; i >= 0; i-- {
		tx := r.transactions[r.txOrder[i]]
		if tx.UserID != userID {
			continue
		}
		if filter.Category != "" && tx.Category != filter.Category {
			continue
		}
		if filter.Direction == domain.DirectionCredited && tx.CreditedAmount <= 0 {
			continue
		}
		if filter.Direction == domain.DirectionDebited && tx.DebitedAmount <= 0 {
			continue
		}
		record := *tx
		out = append(out, &record)
	}
	return out, nil
}

func (r *fakeLedgerRepo) CountDebitsByCategoryBetween(ctx context.Context, userID string, category domain.TransactionCategory, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, tx := range r.transactions {
		if tx.UserID == userID && tx.Category == category && tx.DebitedAmount > 0 &&
			!tx.CreatedAt.Before(from) && tx.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

// userTransactions returns the transactions of one user in creation order.
func (r *fakeLedgerRepo) userTransactions(userID string) []*domain.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Transaction
	for _, id := range r.txOrder {
		if tx := r.transactions[id]; tx.UserID == userID {
			record := *tx
			out = append(out, &record)
		}
	}
	return out
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) addUser(userID, referrer string, registeredAt time.Time) {
	r.users[userID] = &domain.User{
		UserID:    userID,
		Referrer:  referrer,
		Verified:  true,
		Status:    domain.UserActive,
		CreatedAt: registeredAt,
	}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	r.users[user.UserID] = user
	return nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, userID string) error {
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) ListByReferrers(ctx context.Context, referrerIDs []string) ([]*domain.User, error) {
	set := make(map[string]bool, len(referrerIDs))
	for _, id := range referrerIDs {
		set[id] = true
	}
	var out []*domain.User
	for _, user := range r.users {
		if set[user.Referrer] {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type fakePackageRepo struct {
	packages []*domain.Package
	sumCalls int
}

func (r *fakePackageRepo) addPackage(id, userID string, amount float64, status domain.PackageStatus) {
	r.packages = append(r.packages, &domain.Package{
		ID:     id,
		UserID: userID,
		Amount: amount,
		Status: status,
	})
}

func (r *fakePackageRepo) CreatePackage(ctx context.Context, pkg *domain.Package) error {
	record := *pkg
	r.packages = append(r.packages, &record)
	return nil
}

func (r *fakePackageRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Package, error) {
	var out []*domain.Package
	for _, pkg := range r.packages {
		if pkg.UserID == userID {
			out = append(out, pkg)
		}
	}
	return out, nil
}

func (r *fakePackageRepo) ListActive(ctx context.Context) ([]*domain.Package, error) {
	var out []*domain.Package
	for _, pkg := range r.packages {
		if pkg.Status == domain.PackageActive {
			out = append(out, pkg)
		}
	}
	return out, nil
}

func (r *fakePackageRepo) HasActivePackage(ctx context.Context, userID string) (bool, error) {
	for _, pkg := range r.packages {
		if pkg.UserID == userID && pkg.Status == domain.PackageActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePackageRepo) SumAmountByUserIDs(ctx context.Context, userIDs []string) (float64, error) {
	r.sumCalls++
	set := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		set[id] = true
	}
	var total float64
	for _, pkg := range r.packages {
		if set[pkg.UserID] {
			total += pkg.Amount
		}
	}
	return total, nil
}
