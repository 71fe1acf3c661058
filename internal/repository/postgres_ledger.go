package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"snapbid/internal/auctionerrors"
	model "snapbid/internal/models"
)

// CreateBalance creates a balance record together with its opening
// transactions
func (s *PostgresStore) CreateBalance(ctx context.Context, balance model.Balance) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO balances (user_id, total) VALUES ($1, $2)`,
			balance.UserID, balance.Total,
		)
		if err != nil {
			return fmt.Errorf("failed to create balance: %w", err)
		}
		for _, txn := range balance.Transactions {
			_, err := tx.Exec(ctx,
				`INSERT INTO balance_transactions (user_id, amount, reference, occurred_at) VALUES ($1, $2, $3, $4)`,
				balance.UserID, txn.Amount, txn.Reference, txn.OccurredAt,
			)
			if err != nil {
				return fmt.Errorf("failed to record opening transaction: %w", err)
			}
		}
		return nil
	})
}

// GetBalance returns a user's balance with its full transaction history
func (s *PostgresStore) GetBalance(ctx context.Context, userID string) (model.Balance, error) {
	var balance model.Balance
	balance.UserID = userID
	err := s.pool.QueryRow(ctx, `SELECT total FROM balances WHERE user_id = $1`, userID).Scan(&balance.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Balance{}, fmt.Errorf("get balance for user %s: %w", userID, auctionerrors.ErrBalanceNotFound)
		}
		return model.Balance{}, fmt.Errorf("failed to get balance: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT amount, reference, occurred_at FROM balance_transactions WHERE user_id = $1 ORDER BY occurred_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return model.Balance{}, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var txn model.Transaction
		var reference *string
		if err := rows.Scan(&txn.Amount, &reference, &txn.OccurredAt); err != nil {
			return model.Balance{}, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if reference != nil {
			txn.Reference = *reference
		}
		balance.Transactions = append(balance.Transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return model.Balance{}, fmt.Errorf("error iterating transactions: %w", err)
	}
	return balance, nil
}

// ListBalances returns every user balance without transaction history
func (s *PostgresStore) ListBalances(ctx context.Context) ([]model.Balance, error) {
	rows, err := s.pool.Query(ctx, `SELECT user_id, total FROM balances ORDER BY user_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances: %w", err)
	}
	defer rows.Close()

	var balances []model.Balance
	for rows.Next() {
		var balance model.Balance
		if err := rows.Scan(&balance.UserID, &balance.Total); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, balance)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balances: %w", err)
	}
	return balances, nil
}

// Credit atomically credits a balance, creating it on first deposit
func (s *PostgresStore) Credit(ctx context.Context, userID string, amount int64, reference string) (int64, error) {
	var total int64
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO balances (user_id, total) VALUES ($1, $2)
			 ON CONFLICT (user_id) DO UPDATE SET total = balances.total + EXCLUDED.total
			 RETURNING total`,
			userID, amount,
		).Scan(&total)
		if err != nil {
			return fmt.Errorf("failed to credit balance: %w", err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO balance_transactions (user_id, amount, reference, occurred_at) VALUES ($1, $2, $3, now())`,
			userID, amount, reference,
		)
		if err != nil {
			return fmt.Errorf("failed to record credit transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ApplyDelta atomically applies one signed transaction to a balance and
// returns the new total
func (s *PostgresStore) ApplyDelta(ctx context.Context, userID string, amount int64, reference string) (int64, error) {
	var total int64
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if err := applyDeltaTx(ctx, tx, LedgerDelta{UserID: userID, Amount: amount, Reference: reference}); err != nil {
			return err
		}
		return tx.QueryRow(ctx, `SELECT total FROM balances WHERE user_id = $1`, userID).Scan(&total)
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
