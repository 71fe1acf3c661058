package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway abstracts the third-party payment provider. Initiate opens a
// payment session and Verify confirms a completed one.
type Gateway interface {
	Initiate(ctx context.Context, req InitiateRequest) (InitiateResponse, error)
	Verify(ctx context.Context, token string, amount int64) (VerifyResponse, error)
}

// InitiateRequest describes the payment session to open
type InitiateRequest struct {
	Amount     int64  `json:"amount"`
	PurchaseID string `json:"purchase_order_id"`
	Purchase   string `json:"purchase_order_name"`
	ReturnURL  string `json:"return_url"`
}

// InitiateResponse carries the gateway token and the URL the user is
// redirected to
type InitiateResponse struct {
	Token      string `json:"pidx"`
	PaymentURL string `json:"payment_url"`
}

// VerifyResponse reports the gateway's view of a payment
type VerifyResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"total_amount"`
}

// HTTPGateway talks to a Khalti-style payment API over HTTP.
type HTTPGateway struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

// NewHTTPGateway creates a gateway client for the given API base URL
func NewHTTPGateway(baseURL, secretKey string) *HTTPGateway {
	return &HTTPGateway{
		baseURL:   baseURL,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Initiate opens a payment session at the gateway
func (g *HTTPGateway) Initiate(ctx context.Context, req InitiateRequest) (InitiateResponse, error) {
	var resp InitiateResponse
	if err := g.post(ctx, "/epayment/initiate/", req, &resp); err != nil {
		return InitiateResponse{}, err
	}
	if resp.Token == "" || resp.PaymentURL == "" {
		return InitiateResponse{}, fmt.Errorf("gateway: incomplete initiate response")
	}
	return resp, nil
}

// Verify looks up the final state of a payment session
func (g *HTTPGateway) Verify(ctx context.Context, token string, amount int64) (VerifyResponse, error) {
	body := map[string]string{"pidx": token}
	var resp VerifyResponse
	if err := g.post(ctx, "/epayment/lookup/", body, &resp); err != nil {
		return VerifyResponse{}, err
	}
	return resp, nil
}

func (g *HTTPGateway) post(ctx context.Context, path string, payload any, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("gateway: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("gateway: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+g.secretKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("gateway: %s returned status %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: failed to decode response: %w", err)
	}
	return nil
}
