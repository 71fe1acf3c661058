package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"snapbid/internal/auctionerrors"
	"snapbid/utils"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	var tooLow *auctionerrors.BidTooLowError
	switch {
	case errors.As(err, &tooLow):
		return http.StatusConflict, fmt.Sprintf("bid too low, current highest is %d and the minimum increment is %d", tooLow.Highest, tooLow.Increment)
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrConflict):
		return http.StatusConflict, "bid raced with another update, retry"
	case errors.Is(err, auctionerrors.ErrImageNotFound):
		return http.StatusNotFound, "image not found"
	case errors.Is(err, auctionerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, auctionerrors.ErrBalanceNotFound):
		return http.StatusNotFound, "balance not found"
	case errors.Is(err, auctionerrors.ErrNotificationNotFound):
		return http.StatusNotFound, "notification not found"
	case errors.Is(err, auctionerrors.ErrPaymentNotFound):
		return http.StatusNotFound, "payment not found"
	case errors.Is(err, auctionerrors.ErrCommentNotFound):
		return http.StatusNotFound, "comment not found"
	case errors.Is(err, auctionerrors.ErrBoardNotFound):
		return http.StatusNotFound, "board not found"
	case errors.Is(err, auctionerrors.ErrNotEligible):
		return http.StatusUnprocessableEntity, "image is not open for bidding"
	case errors.Is(err, auctionerrors.ErrInsufficientFunds):
		return http.StatusPaymentRequired, "insufficient balance"
	case errors.Is(err, auctionerrors.ErrAlreadySettled):
		return http.StatusConflict, "auction already settled"
	case errors.Is(err, auctionerrors.ErrForbidden):
		return http.StatusForbidden, "operation not allowed"
	case errors.Is(err, auctionerrors.ErrInvalidBid), errors.Is(err, auctionerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request details"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for image"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
