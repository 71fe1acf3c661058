package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"snapbid/internal/auctionerrors"
	"snapbid/utils"

	model "snapbid/internal/models"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps ledger/payment errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrBalanceNotFound):
		return http.StatusNotFound, "balance not found"
	case errors.Is(err, auctionerrors.ErrPaymentNotFound):
		return http.StatusNotFound, "payment not found"
	case errors.Is(err, auctionerrors.ErrInsufficientFunds):
		return http.StatusPaymentRequired, "insufficient balance"
	case errors.Is(err, auctionerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request details"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// ToBalanceResponse converts a balance model to its response shape
func ToBalanceResponse(balance model.Balance) BalanceResponse {
	resp := BalanceResponse{
		UserID:       balance.UserID,
		Total:        balance.Total,
		Transactions: make([]TransactionResponse, 0, len(balance.Transactions)),
	}
	for _, tx := range balance.Transactions {
		resp.Transactions = append(resp.Transactions, TransactionResponse{
			Amount:     tx.Amount,
			Reference:  tx.Reference,
			OccurredAt: tx.OccurredAt.UTC().Format(time.RFC3339),
		})
	}
	return resp
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
