package auction

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"snapbid/internal/auctionerrors"

	model "snapbid/internal/models"
)

// BidSummaryRow is one row of a user's bid overview: their best bid on an
// image, collapsed from every bid they placed on it.
type BidSummaryRow struct {
	ImageID        string    `json:"image_id"`
	ImageTitle     string    `json:"image_title"`
	ImageURL       string    `json:"image_url,omitempty"`
	UserBestAmount int64     `json:"user_best_amount"`
	UserLatestBid  time.Time `json:"user_latest_bid"`
	CurrentHighest int64     `json:"current_highest"`
	IsWinning      bool      `json:"is_winning"`
}

// AnnotatedBid is a bid enriched with the bidder's identity
type AnnotatedBid struct {
	BidID          string    `json:"bid_id"`
	Amount         int64     `json:"amount"`
	BidderID       string    `json:"bidder_id"`
	BidderUsername string    `json:"bidder_username"`
	CreatedAt      time.Time `json:"created_at"`
}

// OwnedImageBids describes the bidding activity on one uploaded image
type OwnedImageBids struct {
	Image     model.Image    `json:"image"`
	TotalBids int            `json:"total_bids"`
	LatestBid *AnnotatedBid  `json:"latest_bid,omitempty"`
	AllBids   []AnnotatedBid `json:"all_bids"`
}

// UserBidsSummary returns one row per image the user has bid on,
// collapsing multiple bids on the same image to the user's best one.
func (s *AuctionService) UserBidsSummary(ctx context.Context, userID string) ([]BidSummaryRow, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.bids.BidsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for user %s: %w", userID, err)
	}

	byImage := lo.GroupBy(bids, func(bid model.Bid) string { return bid.ImageID })

	rows := make([]BidSummaryRow, 0, len(byImage))
	for imageID, imageBids := range byImage {
		best := lo.MaxBy(imageBids, func(a, b model.Bid) bool { return a.Amount > b.Amount })
		latest := lo.MaxBy(imageBids, func(a, b model.Bid) bool { return a.CreatedAt.After(b.CreatedAt) })

		row := BidSummaryRow{
			ImageID:        imageID,
			UserBestAmount: best.Amount,
			UserLatestBid:  latest.CreatedAt,
		}

		// Bid history outlives image deletion; the row survives with the
		// identifiers it still has.
		image, err := s.images.GetImage(ctx, imageID)
		if err == nil {
			row.ImageTitle = image.Title
			row.ImageURL = image.URL
		} else if !errors.Is(err, auctionerrors.ErrImageNotFound) {
			return nil, fmt.Errorf("service: failed to load image %s: %w", imageID, err)
		}

		highest, err := s.bids.HighestBid(ctx, imageID)
		if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
			return nil, fmt.Errorf("service: failed to get highest bid for image %s: %w", imageID, err)
		}
		if err == nil {
			row.CurrentHighest = highest.Amount
			row.IsWinning = best.Amount >= highest.Amount
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].UserLatestBid.After(rows[j].UserLatestBid) })
	return rows, nil
}

// BidsForOwnedImages returns the full bidding activity for every image
// the owner uploaded: total count, the most recent bid, and the complete
// history annotated with bidder identities.
func (s *AuctionService) BidsForOwnedImages(ctx context.Context, ownerID string) ([]OwnedImageBids, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidBid)
	}

	images, err := s.images.ListImagesByUploader(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list images for user %s: %w", ownerID, err)
	}

	usernames := make(map[string]string)
	results := make([]OwnedImageBids, 0, len(images))
	for _, image := range images {
		bids, err := s.bids.BidsByImage(ctx, image.ImageID)
		if err != nil {
			return nil, fmt.Errorf("service: failed to get bids for image %s: %w", image.ImageID, err)
		}

		entry := OwnedImageBids{
			Image:     image,
			TotalBids: len(bids),
			AllBids:   make([]AnnotatedBid, 0, len(bids)),
		}
		for _, bid := range bids {
			entry.AllBids = append(entry.AllBids, s.annotate(ctx, bid, usernames))
		}
		if len(entry.AllBids) > 0 {
			// BidsByImage returns newest first.
			entry.LatestBid = &entry.AllBids[0]
		}
		results = append(results, entry)
	}
	return results, nil
}

// annotate attaches the bidder's username, caching lookups per request
func (s *AuctionService) annotate(ctx context.Context, bid model.Bid, usernames map[string]string) AnnotatedBid {
	username, ok := usernames[bid.UserID]
	if !ok {
		username = bid.UserID
		if user, err := s.users.GetUser(ctx, bid.UserID); err == nil {
			username = user.Username
		}
		usernames[bid.UserID] = username
	}
	return AnnotatedBid{
		BidID:          bid.BidID,
		Amount:         bid.Amount,
		BidderID:       bid.UserID,
		BidderUsername: username,
		CreatedAt:      bid.CreatedAt,
	}
}
