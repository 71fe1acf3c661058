package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"snapbid/internal/auctionerrors"
	"snapbid/utils"

	model "snapbid/internal/models"
)

type NotificationServiceInterface interface {
	List(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, notificationID, userID string) error
}

type NotificationHandler struct {
	service NotificationServiceInterface
}

func NewNotificationHandler(service NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// mapError maps notification errors to HTTP status code and message
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrNotificationNotFound):
		return http.StatusNotFound, "notification not found"
	case errors.Is(err, auctionerrors.ErrForbidden):
		return http.StatusForbidden, "operation not allowed"
	case errors.Is(err, auctionerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request details"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// ListNotificationsHandler handles GET /notifications
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	userID := utils.UserID(c)
	notifications, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		status, message := mapError(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListNotificationsHandler: error listing notifications", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	if notifications == nil {
		notifications = []model.Notification{}
	}

	utils.JSONResponse(c, http.StatusOK, notifications, "notifications retrieved successfully")
}

// MarkReadHandler handles PATCH /notifications/:id/read
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	notificationID := c.Param("id")
	userID := utils.UserID(c)
	if err := h.service.MarkRead(c.Request.Context(), notificationID, userID); err != nil {
		status, message := mapError(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("MarkReadHandler: error marking notification read", map[string]any{"notification_id": notificationID, "user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "notification marked read")
}

// MarkAllReadHandler handles PATCH /notifications/read-all
func (h *NotificationHandler) MarkAllReadHandler(c *gin.Context) {
	userID := utils.UserID(c)
	if err := h.service.MarkAllRead(c.Request.Context(), userID); err != nil {
		status, message := mapError(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("MarkAllReadHandler: error marking notifications read", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "notifications marked read")
}

// DeleteNotificationHandler handles DELETE /notifications/:id
func (h *NotificationHandler) DeleteNotificationHandler(c *gin.Context) {
	notificationID := c.Param("id")
	userID := utils.UserID(c)
	if err := h.service.Delete(c.Request.Context(), notificationID, userID); err != nil {
		status, message := mapError(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DeleteNotificationHandler: error deleting notification", map[string]any{"notification_id": notificationID, "user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "notification deleted successfully")
}
