package repository

import (
	"context"
	"time"

	model "snapbid/internal/models"
)

// LedgerDelta describes one signed balance mutation applied as part of a
// bid transaction. Positive amounts credit, negative amounts debit.
type LedgerDelta struct {
	UserID    string
	Amount    int64
	Reference string
}

// ImageStore defines image persistence for the auction system
type ImageStore interface {
	CreateImage(ctx context.Context, image model.Image) error
	GetImage(ctx context.Context, imageID string) (model.Image, error)
	ListImages(ctx context.Context) ([]model.Image, error)
	ListImagesByUploader(ctx context.Context, userID string) ([]model.Image, error)
	ListImagesLikedBy(ctx context.Context, userID string) ([]model.Image, error)
	UpdateImage(ctx context.Context, image model.Image) error
	DeleteImage(ctx context.Context, imageID string) error
	// ListExpiredUnsettled returns images whose auction window has closed
	// but which have not been settled yet.
	ListExpiredUnsettled(ctx context.Context, now time.Time) ([]model.Image, error)
	// MarkSettled is a conditional write: it fails with ErrAlreadySettled
	// when the image is already settled, which is the settlement sweep's
	// sole idempotency guard.
	MarkSettled(ctx context.Context, imageID, winnerID string) error
}

// BidStore defines bid persistence. Bids are write-once.
type BidStore interface {
	// PlaceBidTx atomically debits the bidder, optionally refunds the
	// outbid user, records the bid and advances the image's best-bid
	// pointer. expectedHighestBidID is the bid the caller validated
	// against ("" for no prior bid); a mismatch fails with ErrConflict
	// and leaves all state untouched.
	PlaceBidTx(ctx context.Context, bid model.Bid, debit LedgerDelta, refund *LedgerDelta, expectedHighestBidID string) error
	HighestBid(ctx context.Context, imageID string) (model.Bid, error)
	BidsByImage(ctx context.Context, imageID string) ([]model.Bid, error)
	BidsByUser(ctx context.Context, userID string) ([]model.Bid, error)
}

// LedgerStore defines balance persistence. ApplyDelta is atomic per call.
type LedgerStore interface {
	CreateBalance(ctx context.Context, balance model.Balance) error
	GetBalance(ctx context.Context, userID string) (model.Balance, error)
	ListBalances(ctx context.Context) ([]model.Balance, error)
	// ApplyDelta appends a signed transaction and returns the new total.
	// A delta that would drive the total negative fails with
	// ErrInsufficientFunds and changes nothing.
	ApplyDelta(ctx context.Context, userID string, amount int64, reference string) (int64, error)
	// Credit credits a user's balance, atomically creating the balance
	// record if this is the user's first deposit. Returns the new total.
	Credit(ctx context.Context, userID string, amount int64, reference string) (int64, error)
}

// NotificationStore defines notification persistence
type NotificationStore interface {
	CreateNotification(ctx context.Context, notification model.Notification) error
	NotificationsByUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, notificationID, userID string) error
}

// UserStore defines user persistence
type UserStore interface {
	CreateUser(ctx context.Context, user model.User) error
	GetUser(ctx context.Context, userID string) (model.User, error)
	UpdateUser(ctx context.Context, user model.User) error
}

// PaymentStore defines payment record persistence
type PaymentStore interface {
	CreatePayment(ctx context.Context, payment model.Payment) error
	GetPayment(ctx context.Context, paymentID string) (model.Payment, error)
	UpdatePayment(ctx context.Context, payment model.Payment) error
}

// CommentStore defines comment persistence
type CommentStore interface {
	CreateComment(ctx context.Context, comment model.Comment) error
	GetComment(ctx context.Context, commentID string) (model.Comment, error)
	CommentsByImage(ctx context.Context, imageID string) ([]model.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}

// FollowStore defines follower-graph persistence
type FollowStore interface {
	CreateFollow(ctx context.Context, follow model.Follow) error
	DeleteFollow(ctx context.Context, followerID, followeeID string) error
	Followers(ctx context.Context, userID string) ([]model.Follow, error)
	Following(ctx context.Context, userID string) ([]model.Follow, error)
}

// BoardStore defines board persistence
type BoardStore interface {
	CreateBoard(ctx context.Context, board model.Board) error
	GetBoard(ctx context.Context, boardID string) (model.Board, error)
	BoardsByUser(ctx context.Context, userID string) ([]model.Board, error)
	UpdateBoard(ctx context.Context, board model.Board) error
	DeleteBoard(ctx context.Context, boardID string) error
}

// Store aggregates every store the application uses
type Store interface {
	ImageStore
	BidStore
	LedgerStore
	NotificationStore
	UserStore
	PaymentStore
	CommentStore
	FollowStore
	BoardStore
}
