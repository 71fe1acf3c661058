package social

import (
	"context"
	"fmt"
	"time"

	"snapbid/internal/auctionerrors"
	"snapbid/internal/notify"
	"snapbid/internal/repository"
	"snapbid/utils"

	model "snapbid/internal/models"
)

// CommentService defines the business logic for image comments
type CommentService struct {
	comments   repository.CommentStore
	images     repository.ImageStore
	users      repository.UserStore
	dispatcher Notifier
	now        func() time.Time
}

// NewCommentService creates a new CommentService instance
func NewCommentService(
	comments repository.CommentStore,
	images repository.ImageStore,
	users repository.UserStore,
	dispatcher Notifier,
) *CommentService {
	return &CommentService{
		comments:   comments,
		images:     images,
		users:      users,
		dispatcher: dispatcher,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Add records a comment on an image and notifies the uploader
func (s *CommentService) Add(ctx context.Context, imageID, userID, text string) (model.Comment, error) {
	if imageID == "" || userID == "" || text == "" {
		return model.Comment{}, fmt.Errorf("service: %w - missing imageID, userID or text", auctionerrors.ErrInvalidInput)
	}

	image, err := s.images.GetImage(ctx, imageID)
	if err != nil {
		return model.Comment{}, fmt.Errorf("service: failed to load image %s: %w", imageID, err)
	}

	comment := model.Comment{
		CommentID: utils.GenerateID(),
		ImageID:   imageID,
		UserID:    userID,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return model.Comment{}, fmt.Errorf("service: failed to create comment: %w", err)
	}

	if userID != image.UploaderID {
		commenterName := userID
		if user, err := s.users.GetUser(ctx, userID); err == nil {
			commenterName = user.Username
		}
		s.dispatcher.Dispatch(ctx, notify.Event{
			Title:     "New comment",
			Message:   fmt.Sprintf("%s commented on your image %q", commenterName, image.Title),
			Recipient: image.UploaderID,
		})
	}
	return comment, nil
}

// ByImage returns the comments on an image, newest first
func (s *CommentService) ByImage(ctx context.Context, imageID string) ([]model.Comment, error) {
	if imageID == "" {
		return nil, fmt.Errorf("service: %w - empty image ID", auctionerrors.ErrInvalidInput)
	}
	comments, err := s.comments.CommentsByImage(ctx, imageID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list comments for image %s: %w", imageID, err)
	}
	return comments, nil
}

// Delete removes a comment. Only its author may delete it.
func (s *CommentService) Delete(ctx context.Context, commentID, userID string) error {
	if commentID == "" || userID == "" {
		return fmt.Errorf("service: %w - missing commentID or userID", auctionerrors.ErrInvalidInput)
	}
	comment, err := s.comments.GetComment(ctx, commentID)
	if err != nil {
		return fmt.Errorf("service: failed to load comment %s: %w", commentID, err)
	}
	if comment.UserID != userID {
		return fmt.Errorf("service: %w - only the author can delete a comment", auctionerrors.ErrForbidden)
	}
	if err := s.comments.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("service: failed to delete comment %s: %w", commentID, err)
	}
	return nil
}
