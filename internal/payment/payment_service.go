package payment

import (
	"context"
	"fmt"
	"time"

	"snapbid/internal/auctionerrors"
	"snapbid/internal/ledger"
	"snapbid/internal/notify"
	"snapbid/internal/repository"
	"snapbid/utils"

	model "snapbid/internal/models"
)

// Notifier delivers outbound events produced by payment operations
type Notifier interface {
	Dispatch(ctx context.Context, events ...notify.Event)
}

// PaymentService funds balances through an external payment gateway. A
// payment starts pending, and only a gateway-verified completion credits
// the ledger.
type PaymentService struct {
	store      repository.PaymentStore
	ledger     *ledger.LedgerService
	gateway    Gateway
	dispatcher Notifier
	returnURL  string
	now        func() time.Time
}

// NewPaymentService creates a new PaymentService instance
func NewPaymentService(
	store repository.PaymentStore,
	ledgerService *ledger.LedgerService,
	gateway Gateway,
	dispatcher Notifier,
	returnURL string,
) *PaymentService {
	return &PaymentService{
		store:      store,
		ledger:     ledgerService,
		gateway:    gateway,
		dispatcher: dispatcher,
		returnURL:  returnURL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Initiate opens a gateway session and records the pending payment.
// Returns the payment record and the URL the user must visit to pay.
func (s *PaymentService) Initiate(ctx context.Context, userID string, amount int64) (model.Payment, string, error) {
	if userID == "" {
		return model.Payment{}, "", fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	if amount <= 0 {
		return model.Payment{}, "", fmt.Errorf("service: %w - non-positive payment amount", auctionerrors.ErrInvalidInput)
	}

	paymentID := utils.GenerateID()
	resp, err := s.gateway.Initiate(ctx, InitiateRequest{
		Amount:     amount,
		PurchaseID: paymentID,
		Purchase:   "balance top-up",
		ReturnURL:  s.returnURL,
	})
	if err != nil {
		return model.Payment{}, "", fmt.Errorf("service: failed to initiate payment: %w", err)
	}

	payment := model.Payment{
		PaymentID: paymentID,
		UserID:    userID,
		Gateway:   "khalti",
		Amount:    amount,
		Status:    model.PaymentPending,
		CreatedAt: s.now(),
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return model.Payment{}, "", fmt.Errorf("service: failed to record payment: %w", err)
	}
	return payment, resp.PaymentURL, nil
}

// Complete verifies a pending payment with the gateway and, on success,
// credits the user's balance. Completing an already-completed payment is
// a no-op.
func (s *PaymentService) Complete(ctx context.Context, paymentID, token string) (model.Payment, error) {
	if paymentID == "" || token == "" {
		return model.Payment{}, fmt.Errorf("service: %w - missing paymentID or token", auctionerrors.ErrInvalidInput)
	}

	payment, err := s.store.GetPayment(ctx, paymentID)
	if err != nil {
		return model.Payment{}, fmt.Errorf("service: failed to load payment %s: %w", paymentID, err)
	}
	if payment.Status == model.PaymentCompleted {
		return payment, nil
	}

	verified, err := s.gateway.Verify(ctx, token, payment.Amount)
	if err != nil {
		return model.Payment{}, fmt.Errorf("service: failed to verify payment %s: %w", paymentID, err)
	}
	if verified.Status != "Completed" || verified.Amount != payment.Amount {
		payment.Status = model.PaymentFailed
		if err := s.store.UpdatePayment(ctx, payment); err != nil {
			utils.Error("failed to mark payment failed", map[string]any{
				"payment_id": paymentID,
				"error":      err.Error(),
			})
		}
		return model.Payment{}, fmt.Errorf("service: %w - gateway reported %q for %d", auctionerrors.ErrInvalidInput, verified.Status, verified.Amount)
	}

	payment.Status = model.PaymentCompleted
	payment.TransactionID = verified.TransactionID
	if err := s.store.UpdatePayment(ctx, payment); err != nil {
		return model.Payment{}, fmt.Errorf("service: failed to update payment %s: %w", paymentID, err)
	}

	if _, err := s.ledger.Deposit(ctx, payment.UserID, payment.Amount, "payment:"+payment.PaymentID); err != nil {
		return model.Payment{}, fmt.Errorf("service: failed to credit payment %s: %w", paymentID, err)
	}

	s.dispatcher.Dispatch(ctx, notify.Event{
		Title:     "Balance funded",
		Message:   fmt.Sprintf("Your payment of %d was received and added to your balance", payment.Amount),
		Recipient: payment.UserID,
	})
	return payment, nil
}

// Payment returns a payment record by ID
func (s *PaymentService) Payment(ctx context.Context, paymentID string) (model.Payment, error) {
	if paymentID == "" {
		return model.Payment{}, fmt.Errorf("service: %w - empty payment ID", auctionerrors.ErrInvalidInput)
	}
	payment, err := s.store.GetPayment(ctx, paymentID)
	if err != nil {
		return model.Payment{}, fmt.Errorf("service: failed to load payment %s: %w", paymentID, err)
	}
	return payment, nil
}
