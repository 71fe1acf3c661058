package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"snapbid/services/ledger/helpers"
	"snapbid/utils"

	model "snapbid/internal/models"
)

type LedgerServiceInterface interface {
	Deposit(ctx context.Context, userID string, amount int64, reference string) (int64, error)
	Withdraw(ctx context.Context, userID string, amount int64, reference string) (int64, error)
	Balance(ctx context.Context, userID string) (model.Balance, error)
	ListBalances(ctx context.Context) ([]model.Balance, error)
}

type PaymentServiceInterface interface {
	Initiate(ctx context.Context, userID string, amount int64) (model.Payment, string, error)
	Complete(ctx context.Context, paymentID, token string) (model.Payment, error)
}

type LedgerHandler struct {
	ledger   LedgerServiceInterface
	payments PaymentServiceInterface
}

func NewLedgerHandler(ledger LedgerServiceInterface, payments PaymentServiceInterface) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, payments: payments}
}

// GetBalanceHandler handles GET /balance
func (h *LedgerHandler) GetBalanceHandler(c *gin.Context) {
	userID := utils.UserID(c)
	balance, err := h.ledger.Balance(c.Request.Context(), userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBalanceHandler: error retrieving balance", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBalanceResponse(balance), "balance retrieved successfully")
	helpers.LogSuccess("GetBalanceHandler", "balance retrieved successfully", map[string]any{
		"user_id": userID,
		"total":   balance.Total,
	})
}

// DepositHandler handles POST /balance/deposit
func (h *LedgerHandler) DepositHandler(c *gin.Context) {
	var req helpers.MoveFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "DepositHandler", err)
		return
	}

	userID := utils.UserID(c)
	total, err := h.ledger.Deposit(c.Request.Context(), userID, req.Amount, req.Reference)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("DepositHandler: failed to deposit", map[string]any{"user_id": userID, "amount": req.Amount, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"user_id": userID, "total": total}, "deposit recorded successfully")
	helpers.LogSuccess("DepositHandler", "deposit recorded successfully", map[string]any{
		"user_id": userID,
		"amount":  req.Amount,
		"total":   total,
	})
}

// WithdrawHandler handles POST /balance/withdraw
func (h *LedgerHandler) WithdrawHandler(c *gin.Context) {
	var req helpers.MoveFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "WithdrawHandler", err)
		return
	}

	userID := utils.UserID(c)
	total, err := h.ledger.Withdraw(c.Request.Context(), userID, req.Amount, req.Reference)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("WithdrawHandler: failed to withdraw", map[string]any{"user_id": userID, "amount": req.Amount, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"user_id": userID, "total": total}, "withdrawal recorded successfully")
	helpers.LogSuccess("WithdrawHandler", "withdrawal recorded successfully", map[string]any{
		"user_id": userID,
		"amount":  req.Amount,
		"total":   total,
	})
}

// ListBalancesHandler handles GET /balance/all
func (h *LedgerHandler) ListBalancesHandler(c *gin.Context) {
	balances, err := h.ledger.ListBalances(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListBalancesHandler: error listing balances", map[string]any{"error": err.Error()})
		return
	}

	resp := make([]helpers.BalanceResponse, 0, len(balances))
	for _, balance := range balances {
		resp = append(resp, helpers.ToBalanceResponse(balance))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "balances retrieved successfully")
	helpers.LogSuccess("ListBalancesHandler", "balances retrieved successfully", map[string]any{
		"count": len(resp),
	})
}

// InitiatePaymentHandler handles POST /payments/initiate
func (h *LedgerHandler) InitiatePaymentHandler(c *gin.Context) {
	var req helpers.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "InitiatePaymentHandler", err)
		return
	}

	userID := utils.UserID(c)
	payment, paymentURL, err := h.payments.Initiate(c.Request.Context(), userID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("InitiatePaymentHandler: failed to initiate payment", map[string]any{"user_id": userID, "amount": req.Amount, "error": err.Error()})
		return
	}

	resp := helpers.InitiatePaymentResponse{
		PaymentID:  payment.PaymentID,
		PaymentURL: paymentURL,
		Amount:     payment.Amount,
		Status:     payment.Status,
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "payment initiated successfully")
	helpers.LogSuccess("InitiatePaymentHandler", "payment initiated successfully", map[string]any{
		"payment_id": payment.PaymentID,
		"user_id":    userID,
		"amount":     payment.Amount,
	})
}

// CompletePaymentHandler handles POST /payments/complete
func (h *LedgerHandler) CompletePaymentHandler(c *gin.Context) {
	var req helpers.CompletePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CompletePaymentHandler", err)
		return
	}

	payment, err := h.payments.Complete(c.Request.Context(), req.PaymentID, req.Token)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CompletePaymentHandler: failed to complete payment", map[string]any{"payment_id": req.PaymentID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, payment, "payment completed successfully")
	helpers.LogSuccess("CompletePaymentHandler", "payment completed successfully", map[string]any{
		"payment_id": payment.PaymentID,
		"user_id":    payment.UserID,
		"amount":     payment.Amount,
	})
}
