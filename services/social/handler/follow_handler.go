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

type FollowServiceInterface interface {
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	Followers(ctx context.Context, userID string) ([]model.Follow, error)
	Following(ctx context.Context, userID string) ([]model.Follow, error)
}

type FollowHandler struct {
	service FollowServiceInterface
}

func NewFollowHandler(service FollowServiceInterface) *FollowHandler {
	return &FollowHandler{service: service}
}

// FollowHandler handles POST /follows/:user_id
func (h *FollowHandler) FollowUserHandler(c *gin.Context) {
	followeeID := c.Param("user_id")
	followerID := utils.UserID(c)
	if err := h.service.Follow(c.Request.Context(), followerID, followeeID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("FollowUserHandler: error following user", map[string]any{"follower_id": followerID, "followee_id": followeeID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, nil, "followed successfully")
	helpers.LogSuccess("FollowUserHandler", "followed successfully", map[string]any{
		"follower_id": followerID,
		"followee_id": followeeID,
	})
}

// UnfollowUserHandler handles DELETE /follows/:user_id
func (h *FollowHandler) UnfollowUserHandler(c *gin.Context) {
	followeeID := c.Param("user_id")
	followerID := utils.UserID(c)
	if err := h.service.Unfollow(c.Request.Context(), followerID, followeeID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("UnfollowUserHandler: error unfollowing user", map[string]any{"follower_id": followerID, "followee_id": followeeID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "unfollowed successfully")
}

// ListFollowersHandler handles GET /follows/followers
func (h *FollowHandler) ListFollowersHandler(c *gin.Context) {
	userID := utils.UserID(c)
	follows, err := h.service.Followers(c.Request.Context(), userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListFollowersHandler: error listing followers", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	if follows == nil {
		follows = []model.Follow{}
	}

	utils.JSONResponse(c, http.StatusOK, follows, "followers retrieved successfully")
}

// ListFollowingHandler handles GET /follows/following
func (h *FollowHandler) ListFollowingHandler(c *gin.Context) {
	userID := utils.UserID(c)
	follows, err := h.service.Following(c.Request.Context(), userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListFollowingHandler: error listing following", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	if follows == nil {
		follows = []model.Follow{}
	}

	utils.JSONResponse(c, http.StatusOK, follows, "following retrieved successfully")
}
