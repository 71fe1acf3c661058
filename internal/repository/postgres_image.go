package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"snapbid/internal/auctionerrors"
	model "snapbid/internal/models"
)

const imageColumns = `id, title, description, url, is_portrait, uploader_id, total_likes,
	liked_by, bid_eligible, auction_start, auction_end, settled, winner_id, uploaded_at`

func scanImage(row pgx.Row) (model.Image, error) {
	var image model.Image
	var winnerID *string
	err := row.Scan(
		&image.ImageID, &image.Title, &image.Description, &image.URL, &image.IsPortrait,
		&image.UploaderID, &image.TotalLikes, &image.LikedBy, &image.BidEligible,
		&image.AuctionStart, &image.AuctionEnd, &image.Settled, &winnerID, &image.UploadedAt,
	)
	if err != nil {
		return model.Image{}, err
	}
	if winnerID != nil {
		image.WinnerID = *winnerID
	}
	return image, nil
}

// CreateImage creates a new image record
func (s *PostgresStore) CreateImage(ctx context.Context, image model.Image) error {
	query := `
		INSERT INTO images (id, title, description, url, is_portrait, uploader_id,
			total_likes, liked_by, bid_eligible, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.pool.Exec(ctx, query,
		image.ImageID, image.Title, image.Description, image.URL, image.IsPortrait,
		image.UploaderID, image.TotalLikes, image.LikedBy, image.BidEligible, image.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

// GetImage retrieves an image by ID
func (s *PostgresStore) GetImage(ctx context.Context, imageID string) (model.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE id = $1`
	image, err := scanImage(s.pool.QueryRow(ctx, query, imageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Image{}, fmt.Errorf("get image %s: %w", imageID, auctionerrors.ErrImageNotFound)
		}
		return model.Image{}, fmt.Errorf("failed to get image: %w", err)
	}
	return image, nil
}

func (s *PostgresStore) queryImages(ctx context.Context, query string, args ...any) ([]model.Image, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var images []model.Image
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, image)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating images: %w", err)
	}
	return images, nil
}

// ListImages retrieves all images, newest first
func (s *PostgresStore) ListImages(ctx context.Context) ([]model.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images ORDER BY uploaded_at DESC`
	return s.queryImages(ctx, query)
}

// ListImagesByUploader retrieves the images a user uploaded, newest first
func (s *PostgresStore) ListImagesByUploader(ctx context.Context, userID string) ([]model.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE uploader_id = $1 ORDER BY uploaded_at DESC`
	return s.queryImages(ctx, query, userID)
}

// ListImagesLikedBy retrieves the images a user has liked, newest first
func (s *PostgresStore) ListImagesLikedBy(ctx context.Context, userID string) ([]model.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE $1 = ANY(liked_by) ORDER BY uploaded_at DESC`
	return s.queryImages(ctx, query, userID)
}

// UpdateImage updates an image's mutable fields (likes and the one-time
// auction window assignment)
func (s *PostgresStore) UpdateImage(ctx context.Context, image model.Image) error {
	query := `
		UPDATE images
		SET title = $2, description = $3, total_likes = $4, liked_by = $5,
			bid_eligible = $6, auction_start = $7, auction_end = $8
		WHERE id = $1
	`
	result, err := s.pool.Exec(ctx, query,
		image.ImageID, image.Title, image.Description, image.TotalLikes, image.LikedBy,
		image.BidEligible, image.AuctionStart, image.AuctionEnd,
	)
	if err != nil {
		return fmt.Errorf("failed to update image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("update image %s: %w", image.ImageID, auctionerrors.ErrImageNotFound)
	}
	return nil
}

// DeleteImage deletes an image by ID
func (s *PostgresStore) DeleteImage(ctx context.Context, imageID string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM images WHERE id = $1`, imageID)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete image %s: %w", imageID, auctionerrors.ErrImageNotFound)
	}
	return nil
}

// ListExpiredUnsettled retrieves images whose auction window has closed
// and which are still unsettled
func (s *PostgresStore) ListExpiredUnsettled(ctx context.Context, now time.Time) ([]model.Image, error) {
	query := `SELECT ` + imageColumns + `
		FROM images
		WHERE auction_end IS NOT NULL AND auction_end < $1 AND settled = false
		ORDER BY auction_end ASC`
	return s.queryImages(ctx, query, now)
}

// MarkSettled settles an image exactly once via a conditional write
func (s *PostgresStore) MarkSettled(ctx context.Context, imageID, winnerID string) error {
	var winner *string
	if winnerID != "" {
		winner = &winnerID
	}
	query := `UPDATE images SET settled = true, winner_id = $2 WHERE id = $1 AND settled = false`
	result, err := s.pool.Exec(ctx, query, imageID, winner)
	if err != nil {
		return fmt.Errorf("failed to settle image: %w", err)
	}
	if result.RowsAffected() == 0 {
		var settled bool
		err := s.pool.QueryRow(ctx, `SELECT settled FROM images WHERE id = $1`, imageID).Scan(&settled)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("settle image %s: %w", imageID, auctionerrors.ErrImageNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check image settlement: %w", err)
		}
		return fmt.Errorf("settle image %s: %w", imageID, auctionerrors.ErrAlreadySettled)
	}
	return nil
}
