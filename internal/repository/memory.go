package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"snapbid/internal/auctionerrors"
	model "snapbid/internal/models"
)

// MemoryStore is a concurrency-safe in-memory implementation of Store.
// It backs tests and the zero-configuration dev mode.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]model.User
	images        map[string]model.Image
	bids          map[string][]model.Bid // key: imageID
	bestBid       map[string]model.Bid   // key: imageID, materialized highest
	balances      map[string]*model.Balance
	notifications map[string][]model.Notification // key: userID
	payments      map[string]model.Payment
	comments      map[string]model.Comment
	follows       map[string][]model.Follow // key: followerID
	boards        map[string]model.Board
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]model.User),
		images:        make(map[string]model.Image),
		bids:          make(map[string][]model.Bid),
		bestBid:       make(map[string]model.Bid),
		balances:      make(map[string]*model.Balance),
		notifications: make(map[string][]model.Notification),
		payments:      make(map[string]model.Payment),
		comments:      make(map[string]model.Comment),
		follows:       make(map[string][]model.Follow),
		boards:        make(map[string]model.Board),
	}
}

// ---- ImageStore ----

// CreateImage stores a new image record
func (s *MemoryStore) CreateImage(_ context.Context, image model.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[image.ImageID] = image
	return nil
}

// GetImage returns the image with the given ID
func (s *MemoryStore) GetImage(_ context.Context, imageID string) (model.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	image, ok := s.images[imageID]
	if !ok {
		return model.Image{}, fmt.Errorf("get image %s: %w", imageID, auctionerrors.ErrImageNotFound)
	}
	return image, nil
}

// ListImages returns all images, newest first
func (s *MemoryStore) ListImages(_ context.Context) ([]model.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	images := make([]model.Image, 0, len(s.images))
	for _, image := range s.images {
		images = append(images, image)
	}
	sort.Slice(images, func(i, j int) bool { return images[i].UploadedAt.After(images[j].UploadedAt) })
	return images, nil
}

// ListImagesByUploader returns all images uploaded by a user
func (s *MemoryStore) ListImagesByUploader(_ context.Context, userID string) ([]model.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var images []model.Image
	for _, image := range s.images {
		if image.UploaderID == userID {
			images = append(images, image)
		}
	}
	sort.Slice(images, func(i, j int) bool { return images[i].UploadedAt.After(images[j].UploadedAt) })
	return images, nil
}

// ListImagesLikedBy returns all images the user has liked
func (s *MemoryStore) ListImagesLikedBy(_ context.Context, userID string) ([]model.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var images []model.Image
	for _, image := range s.images {
		for _, id := range image.LikedBy {
			if id == userID {
				images = append(images, image)
				break
			}
		}
	}
	sort.Slice(images, func(i, j int) bool { return images[i].UploadedAt.After(images[j].UploadedAt) })
	return images, nil
}

// UpdateImage updates an image's mutable fields (likes and the one-time
// auction window assignment). Settlement state is owned by MarkSettled
// and is never touched here.
func (s *MemoryStore) UpdateImage(_ context.Context, image model.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.images[image.ImageID]
	if !ok {
		return fmt.Errorf("update image %s: %w", image.ImageID, auctionerrors.ErrImageNotFound)
	}
	current.Title = image.Title
	current.Description = image.Description
	current.TotalLikes = image.TotalLikes
	current.LikedBy = append([]string(nil), image.LikedBy...)
	current.BidEligible = image.BidEligible
	current.AuctionStart = image.AuctionStart
	current.AuctionEnd = image.AuctionEnd
	s.images[image.ImageID] = current
	return nil
}

// DeleteImage removes an image record
func (s *MemoryStore) DeleteImage(_ context.Context, imageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[imageID]; !ok {
		return fmt.Errorf("delete image %s: %w", imageID, auctionerrors.ErrImageNotFound)
	}
	delete(s.images, imageID)
	return nil
}

// ListExpiredUnsettled returns images whose auction has ended but which
// are not settled yet
func (s *MemoryStore) ListExpiredUnsettled(_ context.Context, now time.Time) ([]model.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var images []model.Image
	for _, image := range s.images {
		if image.AuctionEnd != nil && image.AuctionEnd.Before(now) && !image.Settled {
			images = append(images, image)
		}
	}
	sort.Slice(images, func(i, j int) bool { return images[i].AuctionEnd.Before(*images[j].AuctionEnd) })
	return images, nil
}

// MarkSettled settles an image exactly once. A second call for the same
// image fails with ErrAlreadySettled.
func (s *MemoryStore) MarkSettled(_ context.Context, imageID, winnerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	image, ok := s.images[imageID]
	if !ok {
		return fmt.Errorf("settle image %s: %w", imageID, auctionerrors.ErrImageNotFound)
	}
	if image.Settled {
		return fmt.Errorf("settle image %s: %w", imageID, auctionerrors.ErrAlreadySettled)
	}
	image.Settled = true
	image.WinnerID = winnerID
	s.images[imageID] = image
	return nil
}

// ---- BidStore ----

// PlaceBidTx applies the bid, its debit and the optional refund as one
// critical section. Either everything lands or nothing does.
func (s *MemoryStore) PlaceBidTx(_ context.Context, bid model.Bid, debit LedgerDelta, refund *LedgerDelta, expectedHighestBidID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.images[bid.ImageID]; !ok {
		return fmt.Errorf("place bid on image %s: %w", bid.ImageID, auctionerrors.ErrImageNotFound)
	}

	currentID := ""
	if best, ok := s.bestBid[bid.ImageID]; ok {
		currentID = best.BidID
	}
	if currentID != expectedHighestBidID {
		return fmt.Errorf("place bid on image %s: %w", bid.ImageID, auctionerrors.ErrConflict)
	}

	bidder, ok := s.balances[debit.UserID]
	if !ok {
		return fmt.Errorf("place bid for user %s: %w", debit.UserID, auctionerrors.ErrBalanceNotFound)
	}
	if bidder.Total+debit.Amount < 0 {
		return fmt.Errorf("place bid for user %s: %w", debit.UserID, auctionerrors.ErrInsufficientFunds)
	}
	if refund != nil {
		if _, ok := s.balances[refund.UserID]; !ok {
			return fmt.Errorf("refund user %s: %w", refund.UserID, auctionerrors.ErrBalanceNotFound)
		}
	}

	// All checks passed, apply the unit.
	s.applyDeltaLocked(bidder, debit)
	if refund != nil {
		s.applyDeltaLocked(s.balances[refund.UserID], *refund)
	}
	s.bids[bid.ImageID] = append(s.bids[bid.ImageID], bid)
	s.bestBid[bid.ImageID] = bid
	return nil
}

func (s *MemoryStore) applyDeltaLocked(balance *model.Balance, delta LedgerDelta) {
	balance.Total += delta.Amount
	balance.Transactions = append(balance.Transactions, model.Transaction{
		Amount:     delta.Amount,
		Reference:  delta.Reference,
		OccurredAt: time.Now().UTC(),
	})
}

// HighestBid returns the materialized best bid for an image
func (s *MemoryStore) HighestBid(_ context.Context, imageID string) (model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	best, ok := s.bestBid[imageID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get highest bid for image %s: %w", imageID, auctionerrors.ErrNoBids)
	}
	return best, nil
}

// BidsByImage returns all bids for an image, newest first
func (s *MemoryStore) BidsByImage(_ context.Context, imageID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bids := append([]model.Bid(nil), s.bids[imageID]...)
	sort.Slice(bids, func(i, j int) bool { return bids[i].CreatedAt.After(bids[j].CreatedAt) })
	return bids, nil
}

// BidsByUser returns all bids a user has placed, newest first
func (s *MemoryStore) BidsByUser(_ context.Context, userID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var bids []model.Bid
	for _, imageBids := range s.bids {
		for _, bid := range imageBids {
			if bid.UserID == userID {
				bids = append(bids, bid)
			}
		}
	}
	sort.Slice(bids, func(i, j int) bool { return bids[i].CreatedAt.After(bids[j].CreatedAt) })
	return bids, nil
}

// ---- LedgerStore ----

// CreateBalance creates a balance record for a user
func (s *MemoryStore) CreateBalance(_ context.Context, balance model.Balance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := balance
	copied.Transactions = append([]model.Transaction(nil), balance.Transactions...)
	s.balances[balance.UserID] = &copied
	return nil
}

// GetBalance returns a user's balance with its transaction history
func (s *MemoryStore) GetBalance(_ context.Context, userID string) (model.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	balance, ok := s.balances[userID]
	if !ok {
		return model.Balance{}, fmt.Errorf("get balance for user %s: %w", userID, auctionerrors.ErrBalanceNotFound)
	}
	copied := *balance
	copied.Transactions = append([]model.Transaction(nil), balance.Transactions...)
	return copied, nil
}

// ListBalances returns every user balance
func (s *MemoryStore) ListBalances(_ context.Context) ([]model.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	balances := make([]model.Balance, 0, len(s.balances))
	for _, balance := range s.balances {
		copied := *balance
		copied.Transactions = append([]model.Transaction(nil), balance.Transactions...)
		balances = append(balances, copied)
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].UserID < balances[j].UserID })
	return balances, nil
}

// ApplyDelta atomically applies one signed transaction to a balance
func (s *MemoryStore) ApplyDelta(_ context.Context, userID string, amount int64, reference string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	balance, ok := s.balances[userID]
	if !ok {
		return 0, fmt.Errorf("apply delta for user %s: %w", userID, auctionerrors.ErrBalanceNotFound)
	}
	if balance.Total+amount < 0 {
		return 0, fmt.Errorf("apply delta for user %s: %w", userID, auctionerrors.ErrInsufficientFunds)
	}
	s.applyDeltaLocked(balance, LedgerDelta{UserID: userID, Amount: amount, Reference: reference})
	return balance.Total, nil
}

// Credit atomically credits a balance, creating it on first deposit
func (s *MemoryStore) Credit(_ context.Context, userID string, amount int64, reference string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	balance, ok := s.balances[userID]
	if !ok {
		balance = &model.Balance{UserID: userID}
		s.balances[userID] = balance
	}
	s.applyDeltaLocked(balance, LedgerDelta{UserID: userID, Amount: amount, Reference: reference})
	return balance.Total, nil
}

// ---- NotificationStore ----

// CreateNotification stores a notification record
func (s *MemoryStore) CreateNotification(_ context.Context, notification model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[notification.UserID] = append(s.notifications[notification.UserID], notification)
	return nil
}

// NotificationsByUser returns a user's notifications, newest first
func (s *MemoryStore) NotificationsByUser(_ context.Context, userID string) ([]model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notifications := append([]model.Notification(nil), s.notifications[userID]...)
	sort.SliceStable(notifications, func(i, j int) bool { return notifications[i].CreatedAt.After(notifications[j].CreatedAt) })
	return notifications, nil
}

// MarkNotificationRead marks one of the user's notifications as read
func (s *MemoryStore) MarkNotificationRead(_ context.Context, notificationID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, notification := range s.notifications[userID] {
		if notification.NotificationID == notificationID {
			s.notifications[userID][i].Read = true
			return nil
		}
	}
	return fmt.Errorf("mark notification %s read: %w", notificationID, auctionerrors.ErrNotificationNotFound)
}

// MarkAllNotificationsRead marks every notification of a user as read
func (s *MemoryStore) MarkAllNotificationsRead(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications[userID] {
		s.notifications[userID][i].Read = true
	}
	return nil
}

// DeleteNotification removes one of the user's notifications
func (s *MemoryStore) DeleteNotification(_ context.Context, notificationID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notifications := s.notifications[userID]
	for i, notification := range notifications {
		if notification.NotificationID == notificationID {
			s.notifications[userID] = append(notifications[:i], notifications[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete notification %s: %w", notificationID, auctionerrors.ErrNotificationNotFound)
}

// ---- UserStore ----

// CreateUser stores a user record
func (s *MemoryStore) CreateUser(_ context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = user
	return nil
}

// GetUser returns the user with the given ID
func (s *MemoryStore) GetUser(_ context.Context, userID string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

// UpdateUser replaces an existing user record
func (s *MemoryStore) UpdateUser(_ context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserID]; !ok {
		return fmt.Errorf("update user %s: %w", user.UserID, auctionerrors.ErrUserNotFound)
	}
	s.users[user.UserID] = user
	return nil
}

// ---- PaymentStore ----

// CreatePayment stores a payment record
func (s *MemoryStore) CreatePayment(_ context.Context, payment model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[payment.PaymentID] = payment
	return nil
}

// GetPayment returns the payment with the given ID
func (s *MemoryStore) GetPayment(_ context.Context, paymentID string) (model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payment, ok := s.payments[paymentID]
	if !ok {
		return model.Payment{}, fmt.Errorf("get payment %s: %w", paymentID, auctionerrors.ErrPaymentNotFound)
	}
	return payment, nil
}

// UpdatePayment replaces an existing payment record
func (s *MemoryStore) UpdatePayment(_ context.Context, payment model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[payment.PaymentID]; !ok {
		return fmt.Errorf("update payment %s: %w", payment.PaymentID, auctionerrors.ErrPaymentNotFound)
	}
	s.payments[payment.PaymentID] = payment
	return nil
}

// ---- CommentStore ----

// CreateComment stores a comment record
func (s *MemoryStore) CreateComment(_ context.Context, comment model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.CommentID] = comment
	return nil
}

// GetComment returns the comment with the given ID
func (s *MemoryStore) GetComment(_ context.Context, commentID string) (model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comment, ok := s.comments[commentID]
	if !ok {
		return model.Comment{}, fmt.Errorf("get comment %s: %w", commentID, auctionerrors.ErrCommentNotFound)
	}
	return comment, nil
}

// CommentsByImage returns all comments for an image, newest first
func (s *MemoryStore) CommentsByImage(_ context.Context, imageID string) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var comments []model.Comment
	for _, comment := range s.comments {
		if comment.ImageID == imageID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.After(comments[j].CreatedAt) })
	return comments, nil
}

// DeleteComment removes a comment record
func (s *MemoryStore) DeleteComment(_ context.Context, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[commentID]; !ok {
		return fmt.Errorf("delete comment %s: %w", commentID, auctionerrors.ErrCommentNotFound)
	}
	delete(s.comments, commentID)
	return nil
}

// ---- FollowStore ----

// CreateFollow stores a follower edge, ignoring duplicates
func (s *MemoryStore) CreateFollow(_ context.Context, follow model.Follow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.follows[follow.FollowerID] {
		if existing.FolloweeID == follow.FolloweeID {
			return nil
		}
	}
	s.follows[follow.FollowerID] = append(s.follows[follow.FollowerID], follow)
	return nil
}

// DeleteFollow removes a follower edge
func (s *MemoryStore) DeleteFollow(_ context.Context, followerID, followeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	follows := s.follows[followerID]
	for i, follow := range follows {
		if follow.FolloweeID == followeeID {
			s.follows[followerID] = append(follows[:i], follows[i+1:]...)
			return nil
		}
	}
	return nil
}

// Followers returns the edges pointing at a user
func (s *MemoryStore) Followers(_ context.Context, userID string) ([]model.Follow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var followers []model.Follow
	for _, follows := range s.follows {
		for _, follow := range follows {
			if follow.FolloweeID == userID {
				followers = append(followers, follow)
			}
		}
	}
	return followers, nil
}

// Following returns the edges a user has created
func (s *MemoryStore) Following(_ context.Context, userID string) ([]model.Follow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Follow(nil), s.follows[userID]...), nil
}

// ---- BoardStore ----

// CreateBoard stores a board record
func (s *MemoryStore) CreateBoard(_ context.Context, board model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := board
	copied.ImageIDs = append([]string(nil), board.ImageIDs...)
	s.boards[board.BoardID] = copied
	return nil
}

// GetBoard returns the board with the given ID
func (s *MemoryStore) GetBoard(_ context.Context, boardID string) (model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	board, ok := s.boards[boardID]
	if !ok {
		return model.Board{}, fmt.Errorf("get board %s: %w", boardID, auctionerrors.ErrBoardNotFound)
	}
	copied := board
	copied.ImageIDs = append([]string(nil), board.ImageIDs...)
	return copied, nil
}

// BoardsByUser returns all boards owned by a user
func (s *MemoryStore) BoardsByUser(_ context.Context, userID string) ([]model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var boards []model.Board
	for _, board := range s.boards {
		if board.UserID == userID {
			copied := board
			copied.ImageIDs = append([]string(nil), board.ImageIDs...)
			boards = append(boards, copied)
		}
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].CreatedAt.After(boards[j].CreatedAt) })
	return boards, nil
}

// UpdateBoard replaces an existing board record
func (s *MemoryStore) UpdateBoard(_ context.Context, board model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[board.BoardID]; !ok {
		return fmt.Errorf("update board %s: %w", board.BoardID, auctionerrors.ErrBoardNotFound)
	}
	copied := board
	copied.ImageIDs = append([]string(nil), board.ImageIDs...)
	s.boards[board.BoardID] = copied
	return nil
}

// DeleteBoard removes a board record
func (s *MemoryStore) DeleteBoard(_ context.Context, boardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[boardID]; !ok {
		return fmt.Errorf("delete board %s: %w", boardID, auctionerrors.ErrBoardNotFound)
	}
	delete(s.boards, boardID)
	return nil
}
