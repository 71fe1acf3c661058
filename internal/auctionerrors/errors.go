package auctionerrors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrImageNotFound        = errors.New("image not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrBalanceNotFound      = errors.New("balance not found for user")
	ErrNoBids               = errors.New("no bids found for image")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrBoardNotFound        = errors.New("board not found")
)

// Business logic errors
var (
	ErrInvalidBid        = errors.New("invalid bid")
	ErrNotEligible       = errors.New("image is not open for bidding")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrBidTooLow         = errors.New("bid amount too low")
	ErrConflict          = errors.New("conflicting concurrent write, retry the operation")
	ErrAlreadySettled    = errors.New("auction already settled")
	ErrInvalidInput      = errors.New("invalid input")
	ErrForbidden         = errors.New("operation not permitted")
)

// BidTooLowError wraps ErrBidTooLow and discloses the current highest
// amount so a client can retry with a valid bid.
type BidTooLowError struct {
	Highest   int64
	Increment int64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid must be at least %d more than the current highest bid of %d", e.Increment, e.Highest)
}

func (e *BidTooLowError) Unwrap() error { return ErrBidTooLow }
