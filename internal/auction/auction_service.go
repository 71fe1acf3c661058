package auction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"snapbid/internal/auctionerrors"
	"snapbid/internal/config"
	"snapbid/internal/notify"
	"snapbid/internal/repository"
	"snapbid/utils"

	model "snapbid/internal/models"
)

// Notifier delivers outbound events produced by core operations
type Notifier interface {
	Dispatch(ctx context.Context, events ...notify.Event)
}

// AuctionService defines the business logic for image auctions
type AuctionService struct {
	images     repository.ImageStore
	bids       repository.BidStore
	ledger     repository.LedgerStore
	users      repository.UserStore
	dispatcher Notifier
	cfg        config.AuctionConfig
	locks      *KeyedMutex
	now        func() time.Time
}

// NewAuctionService creates a new AuctionService instance. locks must be
// the same KeyedMutex handed to the settlement sweeper.
func NewAuctionService(
	images repository.ImageStore,
	bids repository.BidStore,
	ledger repository.LedgerStore,
	users repository.UserStore,
	dispatcher Notifier,
	cfg config.AuctionConfig,
	locks *KeyedMutex,
) *AuctionService {
	return &AuctionService{
		images:     images,
		bids:       bids,
		ledger:     ledger,
		users:      users,
		dispatcher: dispatcher,
		cfg:        cfg,
		locks:      locks,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *AuctionService) WithClock(now func() time.Time) *AuctionService {
	s.now = now
	return s
}

// PlaceBid validates and records a bid, moving the escrowed funds in the
// same transaction. On success the previous highest bidder (if any, and
// if a different user) has been refunded in full, and the bidder has been
// debited either the full amount or, when raising their own standing
// highest bid, only the delta.
func (s *AuctionService) PlaceBid(ctx context.Context, bidderID, imageID string, amount int64) (model.Bid, error) {
	if bidderID == "" || imageID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - missing imageID or bidderID", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return model.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	// Everything from the highest-bid read to the write happens under the
	// image's lock, so concurrent placements can never validate against
	// the same stale highest bid.
	unlock := s.locks.Lock(imageID)
	defer unlock()

	image, err := s.images.GetImage(ctx, imageID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to load image: %w", err)
	}
	if err := s.checkOpen(image); err != nil {
		return model.Bid{}, err
	}

	balance, err := s.ledger.GetBalance(ctx, bidderID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to load bidder balance: %w", err)
	}

	highest, err := s.bids.HighestBid(ctx, imageID)
	hasHighest := err == nil
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		return model.Bid{}, fmt.Errorf("service: failed to check highest bid: %w", err)
	}
	if hasHighest && amount < highest.Amount+s.cfg.MinIncrement {
		return model.Bid{}, fmt.Errorf("service: %w", &auctionerrors.BidTooLowError{
			Highest:   highest.Amount,
			Increment: s.cfg.MinIncrement,
		})
	}

	bid := model.Bid{
		BidID:     utils.GenerateID(),
		ImageID:   imageID,
		UserID:    bidderID,
		Amount:    amount,
		CreatedAt: s.now(),
	}

	debit := repository.LedgerDelta{
		UserID:    bidderID,
		Amount:    -amount,
		Reference: "bid:" + bid.BidID,
	}
	var refund *repository.LedgerDelta
	expectedHighestBidID := ""
	if hasHighest {
		expectedHighestBidID = highest.BidID
		if highest.UserID == bidderID {
			// Top-up: only the delta over the bidder's own standing
			// highest is debited, the escrowed part stays where it is.
			debit.Amount = -(amount - highest.Amount)
		} else {
			refund = &repository.LedgerDelta{
				UserID:    highest.UserID,
				Amount:    highest.Amount,
				Reference: "refund:" + highest.BidID,
			}
		}
	}

	if balance.Total < -debit.Amount {
		return model.Bid{}, fmt.Errorf("service: %w - need %d, have %d", auctionerrors.ErrInsufficientFunds, -debit.Amount, balance.Total)
	}

	if err := s.bids.PlaceBidTx(ctx, bid, debit, refund, expectedHighestBidID); err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to record bid for image %s by user %s: %w", imageID, bidderID, err)
	}

	s.dispatcher.Dispatch(ctx, s.placementEvents(ctx, image, bid, highest, hasHighest)...)

	return bid, nil
}

// checkOpen verifies the image is in the open auction state: eligible,
// window assigned, not expired, not settled
func (s *AuctionService) checkOpen(image model.Image) error {
	if !image.BidEligible || image.AuctionStart == nil || image.AuctionEnd == nil {
		return fmt.Errorf("service: %w - image has not reached %d likes", auctionerrors.ErrNotEligible, s.cfg.LikeThreshold)
	}
	now := s.now()
	if now.Before(*image.AuctionStart) {
		return fmt.Errorf("service: %w - auction has not started", auctionerrors.ErrNotEligible)
	}
	if image.Settled || now.After(*image.AuctionEnd) {
		return fmt.Errorf("service: %w - auction has ended", auctionerrors.ErrNotEligible)
	}
	return nil
}

// placementEvents builds the three fire-and-forget notifications for an
// accepted bid
func (s *AuctionService) placementEvents(ctx context.Context, image model.Image, bid model.Bid, outbid model.Bid, hasOutbid bool) []notify.Event {
	bidderName := bid.UserID
	if user, err := s.users.GetUser(ctx, bid.UserID); err == nil {
		bidderName = user.Username
	}

	events := []notify.Event{
		{
			Title:     "New bid on your image",
			Message:   fmt.Sprintf("%s placed a bid of %d on your image %q", bidderName, bid.Amount, image.Title),
			Recipient: image.UploaderID,
		},
		{
			Title:     "Bid placed",
			Message:   fmt.Sprintf("Your bid of %d on %q was placed successfully", bid.Amount, image.Title),
			Recipient: bid.UserID,
		},
	}
	if hasOutbid && outbid.UserID != bid.UserID {
		events = append(events, notify.Event{
			Title:     "You were outbid",
			Message:   fmt.Sprintf("Your bid of %d on %q was outbid; the amount has been returned to your balance", outbid.Amount, image.Title),
			Recipient: outbid.UserID,
		})
	}
	return events
}

// HighestBid returns the current highest bid for an image
func (s *AuctionService) HighestBid(ctx context.Context, imageID string) (model.Bid, error) {
	if imageID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - empty image ID", auctionerrors.ErrInvalidBid)
	}
	bid, err := s.bids.HighestBid(ctx, imageID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to get highest bid for image %s: %w", imageID, err)
	}
	return bid, nil
}

// BidsForImage returns all bids for an image, newest first
func (s *AuctionService) BidsForImage(ctx context.Context, imageID string) ([]model.Bid, error) {
	if imageID == "" {
		return nil, fmt.Errorf("service: %w - empty image ID", auctionerrors.ErrInvalidBid)
	}
	bids, err := s.bids.BidsByImage(ctx, imageID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for image %s: %w", imageID, err)
	}
	return bids, nil
}
