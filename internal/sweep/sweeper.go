package sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"snapbid/internal/auction"
	"snapbid/internal/auctionerrors"
	"snapbid/internal/notify"
	"snapbid/internal/repository"
	"snapbid/utils"

	model "snapbid/internal/models"
)

// Sweeper settles expired auctions. Each run scans for images whose
// window has closed without being settled and finalizes them one by one.
type Sweeper struct {
	images     repository.ImageStore
	bids       repository.BidStore
	users      repository.UserStore
	dispatcher auction.Notifier
	locks      *auction.KeyedMutex
	now        func() time.Time
}

// NewSweeper creates a settlement sweeper. locks must be the same
// KeyedMutex the auction service uses, so a settle and a late bid on
// the same image never interleave.
func NewSweeper(
	images repository.ImageStore,
	bids repository.BidStore,
	users repository.UserStore,
	dispatcher auction.Notifier,
	locks *auction.KeyedMutex,
) *Sweeper {
	return &Sweeper{
		images:     images,
		bids:       bids,
		users:      users,
		dispatcher: dispatcher,
		locks:      locks,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the sweeper clock. Intended for tests.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

// RunOnce performs a single settlement sweep. A failure on one image is
// logged and does not stop the rest of the sweep; the image is retried
// on the next run.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	expired, err := s.images.ListExpiredUnsettled(ctx, s.now())
	if err != nil {
		return fmt.Errorf("sweep: failed to list expired auctions: %w", err)
	}

	var settled int
	for _, image := range expired {
		if err := s.settle(ctx, image); err != nil {
			utils.Error("failed to settle auction", map[string]any{
				"image_id": image.ImageID,
				"error":    err.Error(),
			})
			continue
		}
		settled++
	}

	if len(expired) > 0 {
		utils.Info("settlement sweep finished", map[string]any{
			"expired": len(expired),
			"settled": settled,
		})
	}
	return nil
}

// settle finalizes one expired auction under the image's lock
func (s *Sweeper) settle(ctx context.Context, image model.Image) error {
	unlock := s.locks.Lock(image.ImageID)
	defer unlock()

	highest, err := s.bids.HighestBid(ctx, image.ImageID)
	hasWinner := err == nil
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		return fmt.Errorf("sweep: failed to get highest bid: %w", err)
	}

	winnerID := ""
	if hasWinner {
		winnerID = highest.UserID
	}

	if err := s.images.MarkSettled(ctx, image.ImageID, winnerID); err != nil {
		if errors.Is(err, auctionerrors.ErrAlreadySettled) {
			// Another sweep got here first; nothing left to do.
			return nil
		}
		return fmt.Errorf("sweep: failed to mark settled: %w", err)
	}

	if hasWinner {
		s.dispatcher.Dispatch(ctx, s.settlementEvents(ctx, image, highest)...)
	}
	return nil
}

// settlementEvents builds the winner and uploader notifications for a
// settled auction with at least one bid
func (s *Sweeper) settlementEvents(ctx context.Context, image model.Image, winning model.Bid) []notify.Event {
	winnerName := winning.UserID
	if user, err := s.users.GetUser(ctx, winning.UserID); err == nil {
		winnerName = user.Username
	}

	return []notify.Event{
		{
			Title:     "Auction won",
			Message:   fmt.Sprintf("Congratulations! You won the auction for %q with a bid of %d", image.Title, winning.Amount),
			Recipient: winning.UserID,
		},
		{
			Title:     "Image sold",
			Message:   fmt.Sprintf("Your image %q sold to %s for %d", image.Title, winnerName, winning.Amount),
			Recipient: image.UploaderID,
		},
	}
}
