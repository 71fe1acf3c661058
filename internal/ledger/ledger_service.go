package ledger

import (
	"context"
	"fmt"

	"snapbid/internal/auctionerrors"
	"snapbid/internal/repository"

	model "snapbid/internal/models"
)

// LedgerService defines the business logic for user balances. Every
// balance change is recorded as a transaction, so a balance can always
// be re-derived from its history.
type LedgerService struct {
	store repository.LedgerStore
}

// NewLedgerService creates a new LedgerService instance
func NewLedgerService(store repository.LedgerStore) *LedgerService {
	return &LedgerService{store: store}
}

// Deposit credits a user's balance, creating the balance on first
// deposit. Returns the new total.
func (s *LedgerService) Deposit(ctx context.Context, userID string, amount int64, reference string) (int64, error) {
	if userID == "" {
		return 0, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("service: %w - non-positive deposit amount", auctionerrors.ErrInvalidInput)
	}
	if reference == "" {
		reference = "deposit"
	}

	total, err := s.store.Credit(ctx, userID, amount, reference)
	if err != nil {
		return 0, fmt.Errorf("service: failed to credit user %s: %w", userID, err)
	}
	return total, nil
}

// Withdraw debits a user's balance. Escrowed bid amounts are already
// debited, so whatever the ledger holds is withdrawable.
func (s *LedgerService) Withdraw(ctx context.Context, userID string, amount int64, reference string) (int64, error) {
	if userID == "" {
		return 0, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("service: %w - non-positive withdrawal amount", auctionerrors.ErrInvalidInput)
	}
	if reference == "" {
		reference = "withdrawal"
	}

	total, err := s.store.ApplyDelta(ctx, userID, -amount, reference)
	if err != nil {
		return 0, fmt.Errorf("service: failed to debit user %s: %w", userID, err)
	}
	return total, nil
}

// Balance returns a user's balance with its full transaction history
func (s *LedgerService) Balance(ctx context.Context, userID string) (model.Balance, error) {
	if userID == "" {
		return model.Balance{}, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	balance, err := s.store.GetBalance(ctx, userID)
	if err != nil {
		return model.Balance{}, fmt.Errorf("service: failed to get balance for user %s: %w", userID, err)
	}
	return balance, nil
}

// ListBalances returns every balance in the ledger
func (s *LedgerService) ListBalances(ctx context.Context) ([]model.Balance, error) {
	balances, err := s.store.ListBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list balances: %w", err)
	}
	return balances, nil
}

// Verify recomputes a user's total from its transaction history and
// reports whether it matches the stored total.
func (s *LedgerService) Verify(ctx context.Context, userID string) (bool, error) {
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return false, err
	}
	var sum int64
	for _, tx := range balance.Transactions {
		sum += tx.Amount
	}
	if sum != balance.Total {
		return false, nil
	}
	return true, nil
}
