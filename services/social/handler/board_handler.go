package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"snapbid/services/social/helpers"
	"snapbid/utils"

	model "snapbid/internal/models"
)

type BoardServiceInterface interface {
	Create(ctx context.Context, userID, title string) (model.Board, error)
	ByUser(ctx context.Context, userID string) ([]model.Board, error)
	AddImage(ctx context.Context, boardID, userID, imageID string) (model.Board, error)
	RemoveImage(ctx context.Context, boardID, userID, imageID string) (model.Board, error)
	Delete(ctx context.Context, boardID, userID string) error
}

type BoardHandler struct {
	service BoardServiceInterface
}

func NewBoardHandler(service BoardServiceInterface) *BoardHandler {
	return &BoardHandler{service: service}
}

// CreateBoardHandler handles POST /boards
func (h *BoardHandler) CreateBoardHandler(c *gin.Context) {
	var req helpers.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateBoardHandler", err)
		return
	}

	userID := utils.UserID(c)
	board, err := h.service.Create(c.Request.Context(), userID, req.Title)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateBoardHandler: failed to create board", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, board, "board created successfully")
	helpers.LogSuccess("CreateBoardHandler", "board created successfully", map[string]any{
		"board_id": board.BoardID,
		"user_id":  userID,
	})
}

// ListBoardsHandler handles GET /boards
func (h *BoardHandler) ListBoardsHandler(c *gin.Context) {
	userID := utils.UserID(c)
	boards, err := h.service.ByUser(c.Request.Context(), userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListBoardsHandler: error listing boards", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	if boards == nil {
		boards = []model.Board{}
	}

	utils.JSONResponse(c, http.StatusOK, boards, "boards retrieved successfully")
}

// AddBoardImageHandler handles POST /boards/:id/images
func (h *BoardHandler) AddBoardImageHandler(c *gin.Context) {
	var req helpers.AddBoardImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddBoardImageHandler", err)
		return
	}

	boardID := c.Param("id")
	userID := utils.UserID(c)
	board, err := h.service.AddImage(c.Request.Context(), boardID, userID, req.ImageID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("AddBoardImageHandler: error adding image", map[string]any{"board_id": boardID, "image_id": req.ImageID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, board, "image added to board successfully")
}

// RemoveBoardImageHandler handles DELETE /boards/:id/images/:image_id
func (h *BoardHandler) RemoveBoardImageHandler(c *gin.Context) {
	boardID := c.Param("id")
	imageID := c.Param("image_id")
	userID := utils.UserID(c)
	board, err := h.service.RemoveImage(c.Request.Context(), boardID, userID, imageID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RemoveBoardImageHandler: error removing image", map[string]any{"board_id": boardID, "image_id": imageID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, board, "image removed from board successfully")
}

// DeleteBoardHandler handles DELETE /boards/:id
func (h *BoardHandler) DeleteBoardHandler(c *gin.Context) {
	boardID := c.Param("id")
	userID := utils.UserID(c)
	if err := h.service.Delete(c.Request.Context(), boardID, userID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DeleteBoardHandler: error deleting board", map[string]any{"board_id": boardID, "user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "board deleted successfully")
}
