package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"snapbid/internal/auctionerrors"
	"snapbid/internal/repository"
)

// Tests that delivery failures are swallowed and the rest still deliver
func TestDispatcher_BestEffort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockNotificationStore(ctrl)
	gomock.InOrder(
		mockStore.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(errors.New("store down")),
		mockStore.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(nil),
	)

	dispatcher := NewDispatcher(mockStore)
	dispatcher.Dispatch(context.Background(),
		Event{Title: "first", Recipient: "user1"},
		Event{Title: "second", Recipient: "user2"},
	)
}

// Tests the notification service against the in-memory store
func TestNotificationService(t *testing.T) {
	store := repository.NewMemoryStore()
	service := NewNotificationService(store)
	dispatcher := NewDispatcher(store)
	ctx := context.Background()

	dispatcher.Dispatch(ctx,
		Event{Title: "one", Message: "m1", Recipient: "user1"},
		Event{Title: "two", Message: "m2", Recipient: "user1"},
		Event{Title: "other", Message: "m3", Recipient: "user2"},
	)

	notifications, err := service.List(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	require.False(t, notifications[0].Read)

	require.NoError(t, service.MarkRead(ctx, notifications[0].NotificationID, "user1"))
	notifications, err = service.List(ctx, "user1")
	require.NoError(t, err)
	require.True(t, notifications[0].Read || notifications[1].Read)

	require.NoError(t, service.MarkAllRead(ctx, "user1"))
	notifications, err = service.List(ctx, "user1")
	require.NoError(t, err)
	for _, n := range notifications {
		require.True(t, n.Read)
	}

	// a user cannot touch another user's notification
	others, err := service.List(ctx, "user2")
	require.NoError(t, err)
	require.Len(t, others, 1)
	err = service.MarkRead(ctx, others[0].NotificationID, "user1")
	require.ErrorIs(t, err, auctionerrors.ErrNotificationNotFound)

	require.NoError(t, service.Delete(ctx, others[0].NotificationID, "user2"))
	others, err = service.List(ctx, "user2")
	require.NoError(t, err)
	require.Empty(t, others)
}
