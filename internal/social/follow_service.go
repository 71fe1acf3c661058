package social

import (
	"context"
	"fmt"
	"time"

	"snapbid/internal/auctionerrors"
	"snapbid/internal/notify"
	"snapbid/internal/repository"

	model "snapbid/internal/models"
)

// FollowService defines the business logic for the follower graph
type FollowService struct {
	follows    repository.FollowStore
	users      repository.UserStore
	dispatcher Notifier
	now        func() time.Time
}

// NewFollowService creates a new FollowService instance
func NewFollowService(
	follows repository.FollowStore,
	users repository.UserStore,
	dispatcher Notifier,
) *FollowService {
	return &FollowService{
		follows:    follows,
		users:      users,
		dispatcher: dispatcher,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Follow records a follower -> followee edge. Following twice is a
// no-op; following yourself is rejected.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == "" || followeeID == "" {
		return fmt.Errorf("service: %w - missing followerID or followeeID", auctionerrors.ErrInvalidInput)
	}
	if followerID == followeeID {
		return fmt.Errorf("service: %w - cannot follow yourself", auctionerrors.ErrInvalidInput)
	}
	if _, err := s.users.GetUser(ctx, followeeID); err != nil {
		return fmt.Errorf("service: failed to load user %s: %w", followeeID, err)
	}

	follow := model.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  s.now(),
	}
	if err := s.follows.CreateFollow(ctx, follow); err != nil {
		return fmt.Errorf("service: failed to create follow: %w", err)
	}

	followerName := followerID
	if user, err := s.users.GetUser(ctx, followerID); err == nil {
		followerName = user.Username
	}
	s.dispatcher.Dispatch(ctx, notify.Event{
		Title:     "New follower",
		Message:   fmt.Sprintf("%s started following you", followerName),
		Recipient: followeeID,
	})
	return nil
}

// Unfollow removes a follower -> followee edge
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if followerID == "" || followeeID == "" {
		return fmt.Errorf("service: %w - missing followerID or followeeID", auctionerrors.ErrInvalidInput)
	}
	if err := s.follows.DeleteFollow(ctx, followerID, followeeID); err != nil {
		return fmt.Errorf("service: failed to delete follow: %w", err)
	}
	return nil
}

// Followers returns the users following userID
func (s *FollowService) Followers(ctx context.Context, userID string) ([]model.Follow, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	follows, err := s.follows.Followers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list followers for user %s: %w", userID, err)
	}
	return follows, nil
}

// Following returns the users userID follows
func (s *FollowService) Following(ctx context.Context, userID string) ([]model.Follow, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	follows, err := s.follows.Following(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list following for user %s: %w", userID, err)
	}
	return follows, nil
}
