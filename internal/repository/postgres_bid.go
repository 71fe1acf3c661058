package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"snapbid/internal/auctionerrors"
	model "snapbid/internal/models"
)

// PlaceBidTx records a bid together with its ledger movements in one
// database transaction. The image row is locked for the duration, and the
// best-bid pointer is compared against what the caller validated before
// anything is written.
func (s *PostgresStore) PlaceBidTx(ctx context.Context, bid model.Bid, debit LedgerDelta, refund *LedgerDelta, expectedHighestBidID string) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		var bestBidID *string
		err := tx.QueryRow(ctx, `SELECT best_bid_id FROM images WHERE id = $1 FOR UPDATE`, bid.ImageID).Scan(&bestBidID)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("place bid on image %s: %w", bid.ImageID, auctionerrors.ErrImageNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to lock image row: %w", err)
		}

		currentID := ""
		if bestBidID != nil {
			currentID = *bestBidID
		}
		if currentID != expectedHighestBidID {
			return fmt.Errorf("place bid on image %s: %w", bid.ImageID, auctionerrors.ErrConflict)
		}

		if err := applyDeltaTx(ctx, tx, debit); err != nil {
			return err
		}
		if refund != nil {
			if err := applyDeltaTx(ctx, tx, *refund); err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO bids (id, image_id, user_id, amount, created_at) VALUES ($1, $2, $3, $4, $5)`,
			bid.BidID, bid.ImageID, bid.UserID, bid.Amount, bid.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bid: %w", err)
		}

		_, err = tx.Exec(ctx, `UPDATE images SET best_bid_id = $2 WHERE id = $1`, bid.ImageID, bid.BidID)
		if err != nil {
			return fmt.Errorf("failed to update best bid pointer: %w", err)
		}
		return nil
	})
}

// applyDeltaTx applies one signed balance movement inside a transaction
func applyDeltaTx(ctx context.Context, tx pgx.Tx, delta LedgerDelta) error {
	result, err := tx.Exec(ctx,
		`UPDATE balances SET total = total + $2 WHERE user_id = $1 AND total + $2 >= 0`,
		delta.UserID, delta.Amount,
	)
	if err != nil {
		return fmt.Errorf("failed to apply balance delta: %w", err)
	}
	if result.RowsAffected() == 0 {
		var total int64
		err := tx.QueryRow(ctx, `SELECT total FROM balances WHERE user_id = $1`, delta.UserID).Scan(&total)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("apply delta for user %s: %w", delta.UserID, auctionerrors.ErrBalanceNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check balance: %w", err)
		}
		return fmt.Errorf("apply delta for user %s: %w", delta.UserID, auctionerrors.ErrInsufficientFunds)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO balance_transactions (user_id, amount, reference, occurred_at) VALUES ($1, $2, $3, now())`,
		delta.UserID, delta.Amount, delta.Reference,
	)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

// HighestBid returns the image's materialized best bid
func (s *PostgresStore) HighestBid(ctx context.Context, imageID string) (model.Bid, error) {
	query := `
		SELECT b.id, b.image_id, b.user_id, b.amount, b.created_at
		FROM images i
		JOIN bids b ON b.id = i.best_bid_id
		WHERE i.id = $1
	`
	var bid model.Bid
	err := s.pool.QueryRow(ctx, query, imageID).Scan(
		&bid.BidID, &bid.ImageID, &bid.UserID, &bid.Amount, &bid.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Bid{}, fmt.Errorf("get highest bid for image %s: %w", imageID, auctionerrors.ErrNoBids)
		}
		return model.Bid{}, fmt.Errorf("failed to get highest bid: %w", err)
	}
	return bid, nil
}

func (s *PostgresStore) queryBids(ctx context.Context, query string, args ...any) ([]model.Bid, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bids: %w", err)
	}
	defer rows.Close()

	var bids []model.Bid
	for rows.Next() {
		var bid model.Bid
		if err := rows.Scan(&bid.BidID, &bid.ImageID, &bid.UserID, &bid.Amount, &bid.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		bids = append(bids, bid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bids: %w", err)
	}
	return bids, nil
}

// BidsByImage returns all bids for an image, newest first
func (s *PostgresStore) BidsByImage(ctx context.Context, imageID string) ([]model.Bid, error) {
	query := `
		SELECT id, image_id, user_id, amount, created_at
		FROM bids WHERE image_id = $1 ORDER BY created_at DESC
	`
	return s.queryBids(ctx, query, imageID)
}

// BidsByUser returns all bids a user has placed, newest first
func (s *PostgresStore) BidsByUser(ctx context.Context, userID string) ([]model.Bid, error) {
	query := `
		SELECT id, image_id, user_id, amount, created_at
		FROM bids WHERE user_id = $1 ORDER BY created_at DESC
	`
	return s.queryBids(ctx, query, userID)
}
