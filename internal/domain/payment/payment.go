package payment

import (
	"context"
	"time"
)

// MockOrderPrefix marks gateway order references issued by the mock client.
// Verification accepts them unconditionally so integration tests can run
// without live credentials.
const MockOrderPrefix = "order_mock_"

const MockPaymentPrefix = "pay_mock_"

// GatewayOrder is the remote payment-intent record. Amount is in minor
// currency units (paise).
type GatewayOrder struct {
	ID        string            `json:"id"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Receipt   string            `json:"receipt"`
	Status    string            `json:"status"`
	CreatedAt int64             `json:"created_at"`
	Notes     map[string]string `json:"notes,omitempty"`
	IsMock    bool              `json:"isMock,omitempty"`
}

// Payment is the remote record of a collected (or attempted) payment.
type Payment struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	Method    string `json:"method"`
	Email     string `json:"email"`
	Contact   string `json:"contact"`
	CreatedAt int64  `json:"created_at"`
}

type CreateOrderInput struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// Verification echoes the gateway values back to the caller on success.
type Verification struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
	IsMock    bool   `json:"isMock,omitempty"`
}

// Gateway is the payment-provider boundary. Implementations: the Razorpay
// REST client and a mock selected by configuration.
type Gateway interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*GatewayOrder, error)
	FetchPayment(ctx context.Context, paymentID string) (*Payment, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

// Unmatched is a verification that succeeded against the gateway but whose
// order update failed. It is persisted so an operator can reconcile by hand;
// the client is never told the payment failed because of bookkeeping.
type Unmatched struct {
	ID               int64
	OrderID          string
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	Reason           string
	CreatedAt        time.Time
	ResolvedAt       *time.Time
}
