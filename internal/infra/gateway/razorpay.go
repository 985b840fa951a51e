// Package gateway implements the payment-provider boundary. Client talks to
// the Razorpay REST API; Mock synthesizes local references for environments
// without live credentials. Which one runs is decided at construction time
// from configuration, never by catching auth errors at runtime.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	dompayment "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/payment"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func NewClient(keyID, keySecret string, opts ...Option) *Client {
	c := &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   defaultBaseURL,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) KeyID() string { return c.keyID }

type gatewayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *Client) CreateOrder(ctx context.Context, in dompayment.CreateOrderInput) (*dompayment.GatewayOrder, error) {
	if in.Amount <= 0 {
		return nil, dompayment.ErrInvalidAmount
	}

	body, err := json.Marshal(map[string]any{
		"amount":   in.Amount,
		"currency": in.Currency,
		"receipt":  in.Receipt,
		"notes":    in.Notes,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dompayment.ErrGateway, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, c.remoteError(res)
	}

	var order dompayment.GatewayOrder
	if err := json.NewDecoder(res.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("%w: %v", dompayment.ErrGateway, err)
	}
	return &order, nil
}

func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*dompayment.Payment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dompayment.ErrGateway, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusBadRequest:
		// Razorpay answers 400 for unknown payment IDs.
		return nil, dompayment.ErrPaymentNotFound
	default:
		return nil, c.remoteError(res)
	}

	var p dompayment.Payment
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", dompayment.ErrGateway, err)
	}
	return &p, nil
}

func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(c.keySecret, orderID, paymentID, signature)
}

func (c *Client) remoteError(res *http.Response) error {
	var ge gatewayError
	_ = json.NewDecoder(res.Body).Decode(&ge)
	if res.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", dompayment.ErrGatewayUnauthorized, ge.Error.Description)
	}
	if ge.Error.Description != "" {
		return fmt.Errorf("%w: %s", dompayment.ErrGateway, ge.Error.Description)
	}
	return fmt.Errorf("%w: %s", dompayment.ErrGateway, res.Status)
}
