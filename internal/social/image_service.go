package social

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"snapbid/internal/auction"
	"snapbid/internal/auctionerrors"
	"snapbid/internal/config"
	"snapbid/internal/notify"
	"snapbid/internal/repository"
	"snapbid/utils"

	model "snapbid/internal/models"
)

// Notifier delivers outbound events produced by social operations
type Notifier interface {
	Dispatch(ctx context.Context, events ...notify.Event)
}

// ImageService defines the business logic for images and likes. Crossing
// the like threshold is what opens an image's auction window, so the
// like path carries the eligibility transition.
type ImageService struct {
	images     repository.ImageStore
	users      repository.UserStore
	dispatcher Notifier
	cfg        config.AuctionConfig
	locks      *auction.KeyedMutex
	now        func() time.Time
}

// NewImageService creates a new ImageService instance. The lock set is
// shared with bid placement and the settlement sweep so a like can
// never interleave with a settlement of the same image.
func NewImageService(
	images repository.ImageStore,
	users repository.UserStore,
	dispatcher Notifier,
	cfg config.AuctionConfig,
	locks *auction.KeyedMutex,
) *ImageService {
	return &ImageService{
		images:     images,
		users:      users,
		dispatcher: dispatcher,
		cfg:        cfg,
		locks:      locks,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *ImageService) WithClock(now func() time.Time) *ImageService {
	s.now = now
	return s
}

// Upload records a new image for the uploader
func (s *ImageService) Upload(ctx context.Context, uploaderID, title, description, url string, isPortrait bool) (model.Image, error) {
	if uploaderID == "" || title == "" || url == "" {
		return model.Image{}, fmt.Errorf("service: %w - missing uploaderID, title or url", auctionerrors.ErrInvalidInput)
	}
	if _, err := s.users.GetUser(ctx, uploaderID); err != nil {
		return model.Image{}, fmt.Errorf("service: failed to load uploader %s: %w", uploaderID, err)
	}

	image := model.Image{
		ImageID:     utils.GenerateID(),
		Title:       title,
		Description: description,
		URL:         url,
		IsPortrait:  isPortrait,
		UploaderID:  uploaderID,
		UploadedAt:  s.now(),
	}
	if err := s.images.CreateImage(ctx, image); err != nil {
		return model.Image{}, fmt.Errorf("service: failed to create image: %w", err)
	}
	return image, nil
}

// Image returns a single image by ID
func (s *ImageService) Image(ctx context.Context, imageID string) (model.Image, error) {
	if imageID == "" {
		return model.Image{}, fmt.Errorf("service: %w - empty image ID", auctionerrors.ErrInvalidInput)
	}
	image, err := s.images.GetImage(ctx, imageID)
	if err != nil {
		return model.Image{}, fmt.Errorf("service: failed to load image %s: %w", imageID, err)
	}
	return image, nil
}

// List returns every image, newest first
func (s *ImageService) List(ctx context.Context) ([]model.Image, error) {
	images, err := s.images.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list images: %w", err)
	}
	return images, nil
}

// ByUploader returns the images a user uploaded
func (s *ImageService) ByUploader(ctx context.Context, userID string) ([]model.Image, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	images, err := s.images.ListImagesByUploader(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list images for user %s: %w", userID, err)
	}
	return images, nil
}

// LikedBy returns the images a user has liked
func (s *ImageService) LikedBy(ctx context.Context, userID string) ([]model.Image, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	images, err := s.images.ListImagesLikedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list liked images for user %s: %w", userID, err)
	}
	return images, nil
}

// Delete removes an image. Only the uploader may delete their image.
func (s *ImageService) Delete(ctx context.Context, imageID, userID string) error {
	if imageID == "" || userID == "" {
		return fmt.Errorf("service: %w - missing imageID or userID", auctionerrors.ErrInvalidInput)
	}
	image, err := s.images.GetImage(ctx, imageID)
	if err != nil {
		return fmt.Errorf("service: failed to load image %s: %w", imageID, err)
	}
	if image.UploaderID != userID {
		return fmt.Errorf("service: %w - only the uploader can delete an image", auctionerrors.ErrForbidden)
	}
	if err := s.images.DeleteImage(ctx, imageID); err != nil {
		return fmt.Errorf("service: failed to delete image %s: %w", imageID, err)
	}
	return nil
}

// ToggleLike adds or removes a user's like. The first time the like
// count reaches the configured threshold the image becomes bid eligible
// and its auction window is assigned; the window is never reassigned,
// even if likes later drop below the threshold.
func (s *ImageService) ToggleLike(ctx context.Context, imageID, userID string) (model.Image, error) {
	if imageID == "" || userID == "" {
		return model.Image{}, fmt.Errorf("service: %w - missing imageID or userID", auctionerrors.ErrInvalidInput)
	}

	unlock := s.locks.Lock(imageID)
	defer unlock()

	image, err := s.images.GetImage(ctx, imageID)
	if err != nil {
		return model.Image{}, fmt.Errorf("service: failed to load image %s: %w", imageID, err)
	}

	liked := lo.Contains(image.LikedBy, userID)
	if liked {
		image.LikedBy = lo.Without(image.LikedBy, userID)
	} else {
		image.LikedBy = append(image.LikedBy, userID)
	}
	image.TotalLikes = len(image.LikedBy)

	becameEligible := false
	if !image.BidEligible && image.TotalLikes >= s.cfg.LikeThreshold {
		start := s.now()
		end := start.Add(s.cfg.Window)
		image.BidEligible = true
		image.AuctionStart = &start
		image.AuctionEnd = &end
		becameEligible = true
	}

	if err := s.images.UpdateImage(ctx, image); err != nil {
		return model.Image{}, fmt.Errorf("service: failed to update image %s: %w", imageID, err)
	}

	events := make([]notify.Event, 0, 2)
	if !liked && userID != image.UploaderID {
		likerName := userID
		if user, err := s.users.GetUser(ctx, userID); err == nil {
			likerName = user.Username
		}
		events = append(events, notify.Event{
			Title:     "New like",
			Message:   fmt.Sprintf("%s liked your image %q", likerName, image.Title),
			Recipient: image.UploaderID,
		})
	}
	if becameEligible {
		events = append(events, notify.Event{
			Title:     "Auction opened",
			Message:   fmt.Sprintf("Your image %q reached %d likes and is now open for bidding until %s", image.Title, s.cfg.LikeThreshold, image.AuctionEnd.Format(time.RFC3339)),
			Recipient: image.UploaderID,
		})
	}
	if len(events) > 0 {
		s.dispatcher.Dispatch(ctx, events...)
	}

	return image, nil
}
