package helpers

// Request/Response DTOs
type MoveFundsRequest struct {
	Amount    int64  `json:"amount" binding:"required,gt=0"`
	Reference string `json:"reference"`
}

type BalanceResponse struct {
	UserID       string                `json:"user_id"`
	Total        int64                 `json:"total"`
	Transactions []TransactionResponse `json:"transactions"`
}

type TransactionResponse struct {
	Amount     int64  `json:"amount"`
	Reference  string `json:"reference,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

type InitiatePaymentRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

type InitiatePaymentResponse struct {
	PaymentID  string `json:"payment_id"`
	PaymentURL string `json:"payment_url"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
}

type CompletePaymentRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
	Token     string `json:"token" binding:"required"`
}
