package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"snapbid/internal/auctionerrors"
	model "snapbid/internal/models"
)

// CreateComment creates a comment record
func (s *PostgresStore) CreateComment(ctx context.Context, comment model.Comment) error {
	query := `
		INSERT INTO comments (id, image_id, user_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.pool.Exec(ctx, query,
		comment.CommentID, comment.ImageID, comment.UserID, comment.Text, comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetComment retrieves a comment by ID
func (s *PostgresStore) GetComment(ctx context.Context, commentID string) (model.Comment, error) {
	query := `SELECT id, image_id, user_id, body, created_at FROM comments WHERE id = $1`
	var comment model.Comment
	err := s.pool.QueryRow(ctx, query, commentID).Scan(
		&comment.CommentID, &comment.ImageID, &comment.UserID, &comment.Text, &comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Comment{}, fmt.Errorf("get comment %s: %w", commentID, auctionerrors.ErrCommentNotFound)
		}
		return model.Comment{}, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

// CommentsByImage returns all comments for an image, newest first
func (s *PostgresStore) CommentsByImage(ctx context.Context, imageID string) ([]model.Comment, error) {
	query := `SELECT id, image_id, user_id, body, created_at FROM comments WHERE image_id = $1 ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, query, imageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(&comment.CommentID, &comment.ImageID, &comment.UserID, &comment.Text, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment record
func (s *PostgresStore) DeleteComment(ctx context.Context, commentID string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete comment %s: %w", commentID, auctionerrors.ErrCommentNotFound)
	}
	return nil
}

// CreateFollow stores a follower edge, ignoring duplicates
func (s *PostgresStore) CreateFollow(ctx context.Context, follow model.Follow) error {
	query := `
		INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`
	_, err := s.pool.Exec(ctx, query, follow.FollowerID, follow.FolloweeID, follow.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}
	return nil
}

// DeleteFollow removes a follower edge
func (s *PostgresStore) DeleteFollow(ctx context.Context, followerID, followeeID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

func (s *PostgresStore) queryFollows(ctx context.Context, query string, args ...any) ([]model.Follow, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query follows: %w", err)
	}
	defer rows.Close()

	var follows []model.Follow
	for rows.Next() {
		var follow model.Follow
		if err := rows.Scan(&follow.FollowerID, &follow.FolloweeID, &follow.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan follow: %w", err)
		}
		follows = append(follows, follow)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating follows: %w", err)
	}
	return follows, nil
}

// Followers returns the edges pointing at a user
func (s *PostgresStore) Followers(ctx context.Context, userID string) ([]model.Follow, error) {
	return s.queryFollows(ctx,
		`SELECT follower_id, followee_id, created_at FROM follows WHERE followee_id = $1`, userID)
}

// Following returns the edges a user has created
func (s *PostgresStore) Following(ctx context.Context, userID string) ([]model.Follow, error) {
	return s.queryFollows(ctx,
		`SELECT follower_id, followee_id, created_at FROM follows WHERE follower_id = $1`, userID)
}

// CreateBoard creates a board record
func (s *PostgresStore) CreateBoard(ctx context.Context, board model.Board) error {
	query := `INSERT INTO boards (id, user_id, title, image_ids, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := s.pool.Exec(ctx, query,
		board.BoardID, board.UserID, board.Title, board.ImageIDs, board.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}
	return nil
}

// GetBoard retrieves a board by ID
func (s *PostgresStore) GetBoard(ctx context.Context, boardID string) (model.Board, error) {
	query := `SELECT id, user_id, title, image_ids, created_at FROM boards WHERE id = $1`
	var board model.Board
	err := s.pool.QueryRow(ctx, query, boardID).Scan(
		&board.BoardID, &board.UserID, &board.Title, &board.ImageIDs, &board.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Board{}, fmt.Errorf("get board %s: %w", boardID, auctionerrors.ErrBoardNotFound)
		}
		return model.Board{}, fmt.Errorf("failed to get board: %w", err)
	}
	return board, nil
}

// BoardsByUser returns all boards owned by a user, newest first
func (s *PostgresStore) BoardsByUser(ctx context.Context, userID string) ([]model.Board, error) {
	query := `SELECT id, user_id, title, image_ids, created_at FROM boards WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	var boards []model.Board
	for rows.Next() {
		var board model.Board
		if err := rows.Scan(&board.BoardID, &board.UserID, &board.Title, &board.ImageIDs, &board.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, board)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating boards: %w", err)
	}
	return boards, nil
}

// UpdateBoard replaces a board's title and image list
func (s *PostgresStore) UpdateBoard(ctx context.Context, board model.Board) error {
	query := `UPDATE boards SET title = $2, image_ids = $3 WHERE id = $1`
	result, err := s.pool.Exec(ctx, query, board.BoardID, board.Title, board.ImageIDs)
	if err != nil {
		return fmt.Errorf("failed to update board: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("update board %s: %w", board.BoardID, auctionerrors.ErrBoardNotFound)
	}
	return nil
}

// DeleteBoard removes a board record
func (s *PostgresStore) DeleteBoard(ctx context.Context, boardID string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM boards WHERE id = $1`, boardID)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete board %s: %w", boardID, auctionerrors.ErrBoardNotFound)
	}
	return nil
}
