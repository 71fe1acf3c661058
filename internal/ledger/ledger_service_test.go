package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"snapbid/internal/auctionerrors"
	"snapbid/internal/repository"
)

// Tests Deposit and Withdraw against the in-memory store
func TestLedgerService_DepositWithdraw(t *testing.T) {
	service := NewLedgerService(repository.NewMemoryStore())
	ctx := context.Background()

	// first deposit opens the balance
	total, err := service.Deposit(ctx, "user1", 500, "signup bonus")
	require.NoError(t, err)
	require.Equal(t, int64(500), total)

	total, err = service.Deposit(ctx, "user1", 250, "")
	require.NoError(t, err)
	require.Equal(t, int64(750), total)

	total, err = service.Withdraw(ctx, "user1", 100, "")
	require.NoError(t, err)
	require.Equal(t, int64(650), total)

	balance, err := service.Balance(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(650), balance.Total)
	require.Len(t, balance.Transactions, 3)

	ok, err := service.Verify(ctx, "user1")
	require.NoError(t, err)
	require.True(t, ok)
}

// Tests input validation and failure cases
func TestLedgerService_Errors(t *testing.T) {
	service := NewLedgerService(repository.NewMemoryStore())
	ctx := context.Background()

	tests := []struct {
		name          string
		run           func() error
		expectedError error
	}{
		{
			name: "deposit_empty_user",
			run: func() error {
				_, err := service.Deposit(ctx, "", 100, "")
				return err
			},
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name: "deposit_non_positive",
			run: func() error {
				_, err := service.Deposit(ctx, "user1", 0, "")
				return err
			},
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name: "withdraw_without_balance",
			run: func() error {
				_, err := service.Withdraw(ctx, "ghost", 100, "")
				return err
			},
			expectedError: auctionerrors.ErrBalanceNotFound,
		},
		{
			name: "balance_unknown_user",
			run: func() error {
				_, err := service.Balance(ctx, "ghost")
				return err
			},
			expectedError: auctionerrors.ErrBalanceNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			require.Error(t, err)
			require.ErrorIs(t, err, tc.expectedError)
		})
	}
}

// Tests that concurrent first deposits all land, none lost to the
// balance-creation race
func TestLedgerService_Deposit_ConcurrentFirstDeposits(t *testing.T) {
	service := NewLedgerService(repository.NewMemoryStore())
	ctx := context.Background()

	const deposits = 10
	errs := make(chan error, deposits)
	var wg sync.WaitGroup
	for i := 0; i < deposits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Deposit(ctx, "user1", 100, "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	balance, err := service.Balance(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(deposits*100), balance.Total)
	require.Len(t, balance.Transactions, deposits)
}

// Tests that a withdrawal can never drive the balance negative
func TestLedgerService_OverdraftRejected(t *testing.T) {
	service := NewLedgerService(repository.NewMemoryStore())
	ctx := context.Background()

	_, err := service.Deposit(ctx, "user1", 100, "")
	require.NoError(t, err)

	_, err = service.Withdraw(ctx, "user1", 150, "")
	require.Error(t, err)
	require.ErrorIs(t, err, auctionerrors.ErrInsufficientFunds)

	balance, err := service.Balance(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(100), balance.Total)
	require.Len(t, balance.Transactions, 1)
}
