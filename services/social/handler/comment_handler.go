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

type CommentServiceInterface interface {
	Add(ctx context.Context, imageID, userID, text string) (model.Comment, error)
	ByImage(ctx context.Context, imageID string) ([]model.Comment, error)
	Delete(ctx context.Context, commentID, userID string) error
}

type CommentHandler struct {
	service CommentServiceInterface
}

func NewCommentHandler(service CommentServiceInterface) *CommentHandler {
	return &CommentHandler{service: service}
}

// AddCommentHandler handles POST /comments
func (h *CommentHandler) AddCommentHandler(c *gin.Context) {
	var req helpers.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddCommentHandler", err)
		return
	}

	userID := utils.UserID(c)
	comment, err := h.service.Add(c.Request.Context(), req.ImageID, userID, req.Text)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("AddCommentHandler: failed to add comment", map[string]any{"image_id": req.ImageID, "user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, comment, "comment added successfully")
	helpers.LogSuccess("AddCommentHandler", "comment added successfully", map[string]any{
		"comment_id": comment.CommentID,
		"image_id":   req.ImageID,
		"user_id":    userID,
	})
}

// GetCommentsByImageHandler handles GET /images/:image_id/comments
func (h *CommentHandler) GetCommentsByImageHandler(c *gin.Context) {
	imageID := c.Param("image_id")
	comments, err := h.service.ByImage(c.Request.Context(), imageID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetCommentsByImageHandler: error listing comments", map[string]any{"image_id": imageID, "error": err.Error()})
		return
	}

	if comments == nil {
		comments = []model.Comment{}
	}

	utils.JSONResponse(c, http.StatusOK, comments, "comments retrieved successfully")
}

// DeleteCommentHandler handles DELETE /comments/:id
func (h *CommentHandler) DeleteCommentHandler(c *gin.Context) {
	commentID := c.Param("id")
	userID := utils.UserID(c)
	if err := h.service.Delete(c.Request.Context(), commentID, userID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DeleteCommentHandler: error deleting comment", map[string]any{"comment_id": commentID, "user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "comment deleted successfully")
	helpers.LogSuccess("DeleteCommentHandler", "comment deleted successfully", map[string]any{
		"comment_id": commentID,
		"user_id":    userID,
	})
}
