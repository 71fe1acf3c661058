package sweep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"snapbid/internal/auction"
	"snapbid/internal/notify"
	"snapbid/internal/repository"

	model "snapbid/internal/models"
)

func setupSweeper(t *testing.T, now time.Time) (*Sweeper, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	dispatcher := notify.NewDispatcher(store)
	sweeper := NewSweeper(store, store, store, dispatcher, auction.NewKeyedMutex()).
		WithClock(func() time.Time { return now })
	return sweeper, store
}

func expiredImage(now time.Time, id string) model.Image {
	start := now.Add(-8 * 24 * time.Hour)
	end := now.Add(-time.Hour)
	return model.Image{
		ImageID:      id,
		Title:        "sunset",
		UploaderID:   "owner1",
		BidEligible:  true,
		AuctionStart: &start,
		AuctionEnd:   &end,
	}
}

func placeBid(t *testing.T, store *repository.MemoryStore, bid model.Bid, expected string) {
	t.Helper()
	debit := repository.LedgerDelta{UserID: bid.UserID, Amount: -bid.Amount, Reference: "bid:" + bid.BidID}
	require.NoError(t, store.PlaceBidTx(context.Background(), bid, debit, nil, expected))
}

// Tests that an expired auction with bids settles to the highest bidder
// and notifies both parties
func TestSweeper_SettlesExpiredAuction(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sweeper, store := setupSweeper(t, now)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, model.User{UserID: "owner1", Username: "olivia"}))
	require.NoError(t, store.CreateUser(ctx, model.User{UserID: "user1", Username: "alice"}))
	require.NoError(t, store.CreateImage(ctx, expiredImage(now, "img1")))
	require.NoError(t, store.CreateBalance(ctx, model.Balance{UserID: "user1", Total: 1000}))

	placeBid(t, store, model.Bid{BidID: "b1", ImageID: "img1", UserID: "user1", Amount: 200, CreatedAt: now.Add(-2 * time.Hour)}, "")

	require.NoError(t, sweeper.RunOnce(ctx))

	image, err := store.GetImage(ctx, "img1")
	require.NoError(t, err)
	require.True(t, image.Settled)
	require.Equal(t, "user1", image.WinnerID)

	winnerNotes, err := store.NotificationsByUser(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, winnerNotes, 1)
	require.Equal(t, "Auction won", winnerNotes[0].Title)

	ownerNotes, err := store.NotificationsByUser(ctx, "owner1")
	require.NoError(t, err)
	require.Len(t, ownerNotes, 1)
	require.Equal(t, "Image sold", ownerNotes[0].Title)
}

// Tests that an expired auction without bids settles quietly
func TestSweeper_SettlesNoBidAuctionWithoutNotifications(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sweeper, store := setupSweeper(t, now)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, model.User{UserID: "owner1", Username: "olivia"}))
	require.NoError(t, store.CreateImage(ctx, expiredImage(now, "img1")))

	require.NoError(t, sweeper.RunOnce(ctx))

	image, err := store.GetImage(ctx, "img1")
	require.NoError(t, err)
	require.True(t, image.Settled)
	require.Empty(t, image.WinnerID)

	ownerNotes, err := store.NotificationsByUser(ctx, "owner1")
	require.NoError(t, err)
	require.Empty(t, ownerNotes)
}

// Tests that sweeping twice settles each auction exactly once
func TestSweeper_Idempotent(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sweeper, store := setupSweeper(t, now)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, model.User{UserID: "owner1", Username: "olivia"}))
	require.NoError(t, store.CreateUser(ctx, model.User{UserID: "user1", Username: "alice"}))
	require.NoError(t, store.CreateImage(ctx, expiredImage(now, "img1")))
	require.NoError(t, store.CreateBalance(ctx, model.Balance{UserID: "user1", Total: 1000}))

	placeBid(t, store, model.Bid{BidID: "b1", ImageID: "img1", UserID: "user1", Amount: 200, CreatedAt: now.Add(-2 * time.Hour)}, "")

	require.NoError(t, sweeper.RunOnce(ctx))
	require.NoError(t, sweeper.RunOnce(ctx))

	winnerNotes, err := store.NotificationsByUser(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, winnerNotes, 1)
}

// Tests that an unexpired auction is left alone
func TestSweeper_SkipsOpenAuctions(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sweeper, store := setupSweeper(t, now)
	ctx := context.Background()

	open := expiredImage(now, "img1")
	end := now.Add(24 * time.Hour)
	open.AuctionEnd = &end
	require.NoError(t, store.CreateImage(ctx, open))

	require.NoError(t, sweeper.RunOnce(ctx))

	image, err := store.GetImage(ctx, "img1")
	require.NoError(t, err)
	require.False(t, image.Settled)
}

// Tests that one image failing to settle does not block the others
func TestSweeper_FailureIsolation(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store := repository.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, model.User{UserID: "owner1", Username: "olivia"}))
	require.NoError(t, store.CreateImage(ctx, expiredImage(now, "img1")))
	require.NoError(t, store.CreateImage(ctx, expiredImage(now, "img2")))

	sweeper := NewSweeper(store, failingBidStore{store}, store, notify.NewDispatcher(store), auction.NewKeyedMutex()).
		WithClock(func() time.Time { return now })

	require.NoError(t, sweeper.RunOnce(ctx))

	img1, err := store.GetImage(ctx, "img1")
	require.NoError(t, err)
	img2, err := store.GetImage(ctx, "img2")
	require.NoError(t, err)

	// img1's highest-bid lookup fails; img2 still settles
	require.False(t, img1.Settled)
	require.True(t, img2.Settled)
}

// failingBidStore fails highest-bid lookups for img1 only
type failingBidStore struct {
	*repository.MemoryStore
}

func (f failingBidStore) HighestBid(ctx context.Context, imageID string) (model.Bid, error) {
	if imageID == "img1" {
		return model.Bid{}, context.DeadlineExceeded
	}
	return f.MemoryStore.HighestBid(ctx, imageID)
}
