package social

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"snapbid/internal/auctionerrors"
	"snapbid/internal/repository"
	"snapbid/utils"

	model "snapbid/internal/models"
)

// BoardService defines the business logic for user-curated image boards
type BoardService struct {
	boards repository.BoardStore
	images repository.ImageStore
	now    func() time.Time
}

// NewBoardService creates a new BoardService instance
func NewBoardService(boards repository.BoardStore, images repository.ImageStore) *BoardService {
	return &BoardService{
		boards: boards,
		images: images,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create opens a new empty board for a user
func (s *BoardService) Create(ctx context.Context, userID, title string) (model.Board, error) {
	if userID == "" || title == "" {
		return model.Board{}, fmt.Errorf("service: %w - missing userID or title", auctionerrors.ErrInvalidInput)
	}
	board := model.Board{
		BoardID:   utils.GenerateID(),
		UserID:    userID,
		Title:     title,
		ImageIDs:  []string{},
		CreatedAt: s.now(),
	}
	if err := s.boards.CreateBoard(ctx, board); err != nil {
		return model.Board{}, fmt.Errorf("service: failed to create board: %w", err)
	}
	return board, nil
}

// Board returns a board by ID
func (s *BoardService) Board(ctx context.Context, boardID string) (model.Board, error) {
	if boardID == "" {
		return model.Board{}, fmt.Errorf("service: %w - empty board ID", auctionerrors.ErrInvalidInput)
	}
	board, err := s.boards.GetBoard(ctx, boardID)
	if err != nil {
		return model.Board{}, fmt.Errorf("service: failed to load board %s: %w", boardID, err)
	}
	return board, nil
}

// ByUser returns a user's boards
func (s *BoardService) ByUser(ctx context.Context, userID string) ([]model.Board, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	boards, err := s.boards.BoardsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list boards for user %s: %w", userID, err)
	}
	return boards, nil
}

// AddImage pins an image to a board. Pinning the same image twice is a
// no-op.
func (s *BoardService) AddImage(ctx context.Context, boardID, userID, imageID string) (model.Board, error) {
	board, err := s.ownedBoard(ctx, boardID, userID)
	if err != nil {
		return model.Board{}, err
	}
	if _, err := s.images.GetImage(ctx, imageID); err != nil {
		return model.Board{}, fmt.Errorf("service: failed to load image %s: %w", imageID, err)
	}
	if lo.Contains(board.ImageIDs, imageID) {
		return board, nil
	}
	board.ImageIDs = append(board.ImageIDs, imageID)
	if err := s.boards.UpdateBoard(ctx, board); err != nil {
		return model.Board{}, fmt.Errorf("service: failed to update board %s: %w", boardID, err)
	}
	return board, nil
}

// RemoveImage unpins an image from a board
func (s *BoardService) RemoveImage(ctx context.Context, boardID, userID, imageID string) (model.Board, error) {
	board, err := s.ownedBoard(ctx, boardID, userID)
	if err != nil {
		return model.Board{}, err
	}
	board.ImageIDs = lo.Without(board.ImageIDs, imageID)
	if err := s.boards.UpdateBoard(ctx, board); err != nil {
		return model.Board{}, fmt.Errorf("service: failed to update board %s: %w", boardID, err)
	}
	return board, nil
}

// Delete removes a board. Only its owner may delete it.
func (s *BoardService) Delete(ctx context.Context, boardID, userID string) error {
	if _, err := s.ownedBoard(ctx, boardID, userID); err != nil {
		return err
	}
	if err := s.boards.DeleteBoard(ctx, boardID); err != nil {
		return fmt.Errorf("service: failed to delete board %s: %w", boardID, err)
	}
	return nil
}

func (s *BoardService) ownedBoard(ctx context.Context, boardID, userID string) (model.Board, error) {
	if boardID == "" || userID == "" {
		return model.Board{}, fmt.Errorf("service: %w - missing boardID or userID", auctionerrors.ErrInvalidInput)
	}
	board, err := s.boards.GetBoard(ctx, boardID)
	if err != nil {
		return model.Board{}, fmt.Errorf("service: failed to load board %s: %w", boardID, err)
	}
	if board.UserID != userID {
		return model.Board{}, fmt.Errorf("service: %w - only the owner can modify a board", auctionerrors.ErrForbidden)
	}
	return board, nil
}
