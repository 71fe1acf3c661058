package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"snapbid/internal/auctionerrors"
	model "snapbid/internal/models"
)

// CreateUser creates a user record
func (s *PostgresStore) CreateUser(ctx context.Context, user model.User) error {
	query := `
		INSERT INTO users (id, username, email, phone_number, profile_picture)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.pool.Exec(ctx, query,
		user.UserID, user.Username, user.Email, user.PhoneNumber, user.ProfilePicture,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID
func (s *PostgresStore) GetUser(ctx context.Context, userID string) (model.User, error) {
	query := `SELECT id, username, email, phone_number, profile_picture FROM users WHERE id = $1`
	var user model.User
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&user.UserID, &user.Username, &user.Email, &user.PhoneNumber, &user.ProfilePicture,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateUser updates a user's profile fields
func (s *PostgresStore) UpdateUser(ctx context.Context, user model.User) error {
	query := `
		UPDATE users SET username = $2, email = $3, phone_number = $4, profile_picture = $5
		WHERE id = $1
	`
	result, err := s.pool.Exec(ctx, query,
		user.UserID, user.Username, user.Email, user.PhoneNumber, user.ProfilePicture,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("update user %s: %w", user.UserID, auctionerrors.ErrUserNotFound)
	}
	return nil
}

// CreatePayment creates a payment record
func (s *PostgresStore) CreatePayment(ctx context.Context, payment model.Payment) error {
	query := `
		INSERT INTO payments (id, user_id, gateway, amount, status, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.pool.Exec(ctx, query,
		payment.PaymentID, payment.UserID, payment.Gateway, payment.Amount,
		payment.Status, payment.TransactionID, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment by ID
func (s *PostgresStore) GetPayment(ctx context.Context, paymentID string) (model.Payment, error) {
	query := `SELECT id, user_id, gateway, amount, status, transaction_id, created_at FROM payments WHERE id = $1`
	var payment model.Payment
	err := s.pool.QueryRow(ctx, query, paymentID).Scan(
		&payment.PaymentID, &payment.UserID, &payment.Gateway, &payment.Amount,
		&payment.Status, &payment.TransactionID, &payment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Payment{}, fmt.Errorf("get payment %s: %w", paymentID, auctionerrors.ErrPaymentNotFound)
		}
		return model.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// UpdatePayment updates a payment's status and gateway reference
func (s *PostgresStore) UpdatePayment(ctx context.Context, payment model.Payment) error {
	query := `UPDATE payments SET status = $2, transaction_id = $3 WHERE id = $1`
	result, err := s.pool.Exec(ctx, query, payment.PaymentID, payment.Status, payment.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("update payment %s: %w", payment.PaymentID, auctionerrors.ErrPaymentNotFound)
	}
	return nil
}
