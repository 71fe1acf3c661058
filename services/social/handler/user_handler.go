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

type UserServiceInterface interface {
	Profile(ctx context.Context, userID string) (model.User, error)
	UpdateProfile(ctx context.Context, userID, username, phone, picture string) (model.User, error)
}

type UserHandler struct {
	service UserServiceInterface
}

func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// GetProfileHandler handles GET /users/me
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	userID := utils.UserID(c)
	user, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetProfileHandler: error retrieving profile", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, user, "profile retrieved successfully")
}

// UpdateProfileHandler handles PATCH /users/me
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	var req helpers.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateProfileHandler", err)
		return
	}

	userID := utils.UserID(c)
	user, err := h.service.UpdateProfile(c.Request.Context(), userID, req.Username, req.PhoneNumber, req.ProfilePicture)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("UpdateProfileHandler: failed to update profile", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, user, "profile updated successfully")
	helpers.LogSuccess("UpdateProfileHandler", "profile updated successfully", map[string]any{
		"user_id": userID,
	})
}
