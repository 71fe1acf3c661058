package notify

import (
	"context"
	"fmt"

	"snapbid/internal/auctionerrors"
	"snapbid/internal/repository"

	model "snapbid/internal/models"
)

// NotificationService defines the business logic for the notification feed
type NotificationService struct {
	store repository.NotificationStore
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(store repository.NotificationStore) *NotificationService {
	return &NotificationService{store: store}
}

// List returns all notifications for a user, newest first
func (s *NotificationService) List(ctx context.Context, userID string) ([]model.Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	notifications, err := s.store.NotificationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list notifications for user %s: %w", userID, err)
	}
	return notifications, nil
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	if notificationID == "" || userID == "" {
		return fmt.Errorf("service: %w - missing notification or user ID", auctionerrors.ErrInvalidInput)
	}
	if err := s.store.MarkNotificationRead(ctx, notificationID, userID); err != nil {
		return fmt.Errorf("service: failed to mark notification %s read: %w", notificationID, err)
	}
	return nil
}

// MarkAllRead marks every notification of a user as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	if err := s.store.MarkAllNotificationsRead(ctx, userID); err != nil {
		return fmt.Errorf("service: failed to mark notifications read for user %s: %w", userID, err)
	}
	return nil
}

// Delete removes one of the user's notifications
func (s *NotificationService) Delete(ctx context.Context, notificationID, userID string) error {
	if notificationID == "" || userID == "" {
		return fmt.Errorf("service: %w - missing notification or user ID", auctionerrors.ErrInvalidInput)
	}
	if err := s.store.DeleteNotification(ctx, notificationID, userID); err != nil {
		return fmt.Errorf("service: failed to delete notification %s: %w", notificationID, err)
	}
	return nil
}
