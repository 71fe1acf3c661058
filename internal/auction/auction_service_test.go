package auction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"snapbid/internal/auctionerrors"
	"snapbid/internal/config"
	"snapbid/internal/notify"
	"snapbid/internal/repository"

	model "snapbid/internal/models"
)

func testAuctionConfig() config.AuctionConfig {
	return config.AuctionConfig{
		LikeThreshold: 5,
		MinIncrement:  50,
		Window:        7 * 24 * time.Hour,
		SweepInterval: time.Hour,
	}
}

func openImage(now time.Time) model.Image {
	start := now.Add(-time.Hour)
	end := now.Add(24 * time.Hour)
	return model.Image{
		ImageID:      "img1",
		Title:        "sunset",
		UploaderID:   "owner1",
		TotalLikes:   5,
		BidEligible:  true,
		AuctionStart: &start,
		AuctionEnd:   &end,
	}
}

// Tests PlaceBid
func TestAuctionService_PlaceBid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockImages := repository.NewMockImageStore(ctrl)
	mockBids := repository.NewMockBidStore(ctrl)
	mockLedger := repository.NewMockLedgerStore(ctrl)
	mockUsers := repository.NewMockUserStore(ctrl)
	mockNotifications := repository.NewMockNotificationStore(ctrl)
	mockNotifications.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockUsers.EXPECT().GetUser(gomock.Any(), gomock.Any()).Return(model.User{Username: "someone"}, nil).AnyTimes()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	dispatcher := notify.NewDispatcher(mockNotifications)
	service := NewAuctionService(mockImages, mockBids, mockLedger, mockUsers, dispatcher, testAuctionConfig(), NewKeyedMutex()).
		WithClock(func() time.Time { return now })

	image := openImage(now)

	// Table-driven test cases
	tests := []struct {
		name          string
		bidderID      string
		imageID       string
		amount        int64
		mockSetup     func()
		expectedError error
	}{
		{
			name:     "valid_first_bid",
			bidderID: "user1",
			imageID:  "img1",
			amount:   100,
			mockSetup: func() {
				mockImages.EXPECT().GetImage(gomock.Any(), "img1").Return(image, nil)
				mockLedger.EXPECT().GetBalance(gomock.Any(), "user1").Return(model.Balance{UserID: "user1", Total: 500}, nil)
				mockBids.EXPECT().HighestBid(gomock.Any(), "img1").Return(model.Bid{}, auctionerrors.ErrNoBids)
				mockBids.EXPECT().PlaceBidTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil(), "").
					DoAndReturn(func(_ context.Context, bid model.Bid, debit repository.LedgerDelta, refund *repository.LedgerDelta, expected string) error {
						require.Equal(t, int64(-100), debit.Amount)
						return nil
					})
			},
		},
		{
			name:          "empty_bidderID",
			bidderID:      "",
			imageID:       "img1",
			amount:        100,
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:          "empty_imageID",
			bidderID:      "user1",
			imageID:       "",
			amount:        100,
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:          "non_positive_amount",
			bidderID:      "user1",
			imageID:       "img1",
			amount:        0,
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:     "image_not_found",
			bidderID: "user1",
			imageID:  "img1",
			amount:   100,
			mockSetup: func() {
				mockImages.EXPECT().GetImage(gomock.Any(), "img1").Return(model.Image{}, auctionerrors.ErrImageNotFound)
			},
			expectedError: auctionerrors.ErrImageNotFound,
		},
		{
			name:     "image_not_eligible",
			bidderID: "user1",
			imageID:  "img1",
			amount:   100,
			mockSetup: func() {
				mockImages.EXPECT().GetImage(gomock.Any(), "img1").Return(model.Image{ImageID: "img1", TotalLikes: 3}, nil)
			},
			expectedError: auctionerrors.ErrNotEligible,
		},
		{
			name:     "auction_expired",
			bidderID: "user1",
			imageID:  "img1",
			amount:   100,
			mockSetup: func() {
				expired := openImage(now)
				end := now.Add(-time.Minute)
				expired.AuctionEnd = &end
				mockImages.EXPECT().GetImage(gomock.Any(), "img1").Return(expired, nil)
			},
			expectedError: auctionerrors.ErrNotEligible,
		},
		{
			name:     "auction_settled",
			bidderID: "user1",
			imageID:  "img1",
			amount:   100,
			mockSetup: func() {
				settled := openImage(now)
				settled.Settled = true
				mockImages.EXPECT().GetImage(gomock.Any(), "img1").Return(settled, nil)
			},
			expectedError: auctionerrors.ErrNotEligible,
		},
		{
			name:     "no_balance",
			bidderID: "user1",
			imageID:  "img1",
			amount:   100,
			mockSetup: func() {
				mockImages.EXPECT().GetImage(gomock.Any(), "img1").Return(image, nil)
				mockLedger.EXPECT().GetBalance(gomock.Any(), "user1").Return(model.Balance{}, auctionerrors.ErrBalanceNotFound)
			},
			expectedError: auctionerrors.ErrBalanceNotFound,
		},
		{
			name:     "bid_below_increment",
			bidderID: "user2",
			imageID:  "img1",
			amount:   149,
			mockSetup: func() {
				mockImages.EXPECT().GetImage(gomock.Any(), "img1").Return(image, nil)
				mockLedger.EXPECT().GetBalance(gomock.Any(), "user2").Return(model.Balance{UserID: "user2", Total: 1000}, nil)
				mockBids.EXPECT().HighestBid(gomock.Any(), "img1").Return(model.Bid{BidID: "b1", UserID: "user1", Amount: 100}, nil)
			},
			expectedError: auctionerrors.ErrBidTooLow,
		},
		{
			name:     "insufficient_funds",
			bidderID: "user2",
			imageID:  "img1",
			amount:   200,
			mockSetup: func() {
				mockImages.EXPECT().GetImage(gomock.Any(), "img1").Return(image, nil)
				mockLedger.EXPECT().GetBalance(gomock.Any(), "user2").Return(model.Balance{UserID: "user2", Total: 150}, nil)
				mockBids.EXPECT().HighestBid(gomock.Any(), "img1").Return(model.Bid{BidID: "b1", UserID: "user1", Amount: 100}, nil)
			},
			expectedError: auctionerrors.ErrInsufficientFunds,
		},
		{
			name:     "store_conflict",
			bidderID: "user2",
			imageID:  "img1",
			amount:   200,
			mockSetup: func() {
				mockImages.EXPECT().GetImage(gomock.Any(), "img1").Return(image, nil)
				mockLedger.EXPECT().GetBalance(gomock.Any(), "user2").Return(model.Balance{UserID: "user2", Total: 1000}, nil)
				mockBids.EXPECT().HighestBid(gomock.Any(), "img1").Return(model.Bid{BidID: "b1", UserID: "user1", Amount: 100}, nil)
				mockBids.EXPECT().PlaceBidTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "b1").Return(auctionerrors.ErrConflict)
			},
			expectedError: auctionerrors.ErrConflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			bid, err := service.PlaceBid(context.Background(), tc.bidderID, tc.imageID, tc.amount)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.bidderID, bid.UserID)
			require.Equal(t, tc.imageID, bid.ImageID)
			require.Equal(t, tc.amount, bid.Amount)
			require.NotEmpty(t, bid.BidID)
		})
	}
}

// Tests the escrow deltas PlaceBid hands to the store
func TestAuctionService_PlaceBid_EscrowDeltas(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	image := openImage(now)

	tests := []struct {
		name           string
		bidderID       string
		amount         int64
		highest        model.Bid
		hasHighest     bool
		expectedDebit  int64
		expectRefund   bool
		refundUser     string
		refundAmount   int64
		expectedUpdate string
	}{
		{
			name:          "first_bid_debits_full_amount",
			bidderID:      "user1",
			amount:        100,
			expectedDebit: -100,
		},
		{
			name:           "outbid_refunds_previous_bidder",
			bidderID:       "user2",
			amount:         200,
			highest:        model.Bid{BidID: "b1", ImageID: "img1", UserID: "user1", Amount: 100},
			hasHighest:     true,
			expectedDebit:  -200,
			expectRefund:   true,
			refundUser:     "user1",
			refundAmount:   100,
			expectedUpdate: "b1",
		},
		{
			name:           "raising_own_bid_debits_only_delta",
			bidderID:       "user1",
			amount:         200,
			highest:        model.Bid{BidID: "b1", ImageID: "img1", UserID: "user1", Amount: 100},
			hasHighest:     true,
			expectedDebit:  -100,
			expectedUpdate: "b1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockImages := repository.NewMockImageStore(ctrl)
			mockBids := repository.NewMockBidStore(ctrl)
			mockLedger := repository.NewMockLedgerStore(ctrl)
			mockUsers := repository.NewMockUserStore(ctrl)
			mockNotifications := repository.NewMockNotificationStore(ctrl)
			mockNotifications.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			mockUsers.EXPECT().GetUser(gomock.Any(), gomock.Any()).Return(model.User{Username: "someone"}, nil).AnyTimes()

			service := NewAuctionService(mockImages, mockBids, mockLedger, mockUsers, notify.NewDispatcher(mockNotifications), testAuctionConfig(), NewKeyedMutex()).
				WithClock(func() time.Time { return now })

			mockImages.EXPECT().GetImage(gomock.Any(), "img1").Return(image, nil)
			mockLedger.EXPECT().GetBalance(gomock.Any(), tc.bidderID).Return(model.Balance{UserID: tc.bidderID, Total: 10000}, nil)
			if tc.hasHighest {
				mockBids.EXPECT().HighestBid(gomock.Any(), "img1").Return(tc.highest, nil)
			} else {
				mockBids.EXPECT().HighestBid(gomock.Any(), "img1").Return(model.Bid{}, auctionerrors.ErrNoBids)
			}
			mockBids.EXPECT().PlaceBidTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), tc.expectedUpdate).
				DoAndReturn(func(_ context.Context, bid model.Bid, debit repository.LedgerDelta, refund *repository.LedgerDelta, expected string) error {
					require.Equal(t, tc.bidderID, debit.UserID)
					require.Equal(t, tc.expectedDebit, debit.Amount)
					if tc.expectRefund {
						require.NotNil(t, refund)
						require.Equal(t, tc.refundUser, refund.UserID)
						require.Equal(t, tc.refundAmount, refund.Amount)
					} else {
						require.Nil(t, refund)
					}
					return nil
				})

			_, err := service.PlaceBid(context.Background(), tc.bidderID, "img1", tc.amount)
			require.NoError(t, err)
		})
	}
}

// Tests that a rejected bid surfaces the current highest amount so the
// client can retry above it
func TestAuctionService_PlaceBid_BidTooLowDetails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockImages := repository.NewMockImageStore(ctrl)
	mockBids := repository.NewMockBidStore(ctrl)
	mockLedger := repository.NewMockLedgerStore(ctrl)
	mockUsers := repository.NewMockUserStore(ctrl)
	mockNotifications := repository.NewMockNotificationStore(ctrl)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	service := NewAuctionService(mockImages, mockBids, mockLedger, mockUsers, notify.NewDispatcher(mockNotifications), testAuctionConfig(), NewKeyedMutex()).
		WithClock(func() time.Time { return now })

	mockImages.EXPECT().GetImage(gomock.Any(), "img1").Return(openImage(now), nil)
	mockLedger.EXPECT().GetBalance(gomock.Any(), "user2").Return(model.Balance{UserID: "user2", Total: 1000}, nil)
	mockBids.EXPECT().HighestBid(gomock.Any(), "img1").Return(model.Bid{BidID: "b1", UserID: "user1", Amount: 200}, nil)

	_, err := service.PlaceBid(context.Background(), "user2", "img1", 220)
	require.Error(t, err)

	var tooLow *auctionerrors.BidTooLowError
	require.True(t, errors.As(err, &tooLow))
	require.Equal(t, int64(200), tooLow.Highest)
	require.Equal(t, int64(50), tooLow.Increment)
}

// Tests UserBidsSummary
func TestAuctionService_UserBidsSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockImages := repository.NewMockImageStore(ctrl)
	mockBids := repository.NewMockBidStore(ctrl)
	mockLedger := repository.NewMockLedgerStore(ctrl)
	mockUsers := repository.NewMockUserStore(ctrl)
	mockNotifications := repository.NewMockNotificationStore(ctrl)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	service := NewAuctionService(mockImages, mockBids, mockLedger, mockUsers, notify.NewDispatcher(mockNotifications), testAuctionConfig(), NewKeyedMutex()).
		WithClock(func() time.Time { return now })

	mockBids.EXPECT().BidsByUser(gomock.Any(), "user1").Return([]model.Bid{
		{BidID: "b3", ImageID: "imgA", UserID: "user1", Amount: 300, CreatedAt: now.Add(-time.Minute)},
		{BidID: "b2", ImageID: "imgA", UserID: "user1", Amount: 200, CreatedAt: now.Add(-time.Hour)},
		{BidID: "b1", ImageID: "imgB", UserID: "user1", Amount: 100, CreatedAt: now.Add(-2 * time.Hour)},
	}, nil)
	mockImages.EXPECT().GetImage(gomock.Any(), "imgA").Return(model.Image{ImageID: "imgA", Title: "alpha"}, nil)
	mockImages.EXPECT().GetImage(gomock.Any(), "imgB").Return(model.Image{ImageID: "imgB", Title: "beta"}, nil)
	// user1 still holds the highest bid on imgA but was outbid on imgB
	mockBids.EXPECT().HighestBid(gomock.Any(), "imgA").Return(model.Bid{BidID: "b3", UserID: "user1", Amount: 300}, nil)
	mockBids.EXPECT().HighestBid(gomock.Any(), "imgB").Return(model.Bid{BidID: "b9", UserID: "user2", Amount: 400}, nil)

	rows, err := service.UserBidsSummary(context.Background(), "user1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// rows are sorted by the user's latest bid, newest first
	require.Equal(t, "imgA", rows[0].ImageID)
	require.Equal(t, int64(300), rows[0].UserBestAmount)
	require.Equal(t, int64(300), rows[0].CurrentHighest)
	require.True(t, rows[0].IsWinning)

	require.Equal(t, "imgB", rows[1].ImageID)
	require.Equal(t, int64(100), rows[1].UserBestAmount)
	require.Equal(t, int64(400), rows[1].CurrentHighest)
	require.False(t, rows[1].IsWinning)
}

// Tests BidsForOwnedImages
func TestAuctionService_BidsForOwnedImages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockImages := repository.NewMockImageStore(ctrl)
	mockBids := repository.NewMockBidStore(ctrl)
	mockLedger := repository.NewMockLedgerStore(ctrl)
	mockUsers := repository.NewMockUserStore(ctrl)
	mockNotifications := repository.NewMockNotificationStore(ctrl)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	service := NewAuctionService(mockImages, mockBids, mockLedger, mockUsers, notify.NewDispatcher(mockNotifications), testAuctionConfig(), NewKeyedMutex()).
		WithClock(func() time.Time { return now })

	mockImages.EXPECT().ListImagesByUploader(gomock.Any(), "owner1").Return([]model.Image{
		{ImageID: "imgA", Title: "alpha", UploaderID: "owner1"},
		{ImageID: "imgB", Title: "beta", UploaderID: "owner1"},
	}, nil)
	mockBids.EXPECT().BidsByImage(gomock.Any(), "imgA").Return([]model.Bid{
		{BidID: "b2", ImageID: "imgA", UserID: "user2", Amount: 200, CreatedAt: now.Add(-time.Minute)},
		{BidID: "b1", ImageID: "imgA", UserID: "user1", Amount: 100, CreatedAt: now.Add(-time.Hour)},
	}, nil)
	mockBids.EXPECT().BidsByImage(gomock.Any(), "imgB").Return(nil, nil)
	mockUsers.EXPECT().GetUser(gomock.Any(), "user1").Return(model.User{UserID: "user1", Username: "alice"}, nil)
	mockUsers.EXPECT().GetUser(gomock.Any(), "user2").Return(model.User{UserID: "user2", Username: "bob"}, nil)

	results, err := service.BidsForOwnedImages(context.Background(), "owner1")
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.Equal(t, 2, results[0].TotalBids)
	require.NotNil(t, results[0].LatestBid)
	require.Equal(t, "b2", results[0].LatestBid.BidID)
	require.Equal(t, "bob", results[0].LatestBid.BidderUsername)
	require.Equal(t, "alice", results[0].AllBids[1].BidderUsername)

	require.Equal(t, 0, results[1].TotalBids)
	require.Nil(t, results[1].LatestBid)
}
