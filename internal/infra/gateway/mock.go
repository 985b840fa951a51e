package gateway

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	dompayment "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/payment"
)

// Mock stands in for the remote gateway when live credentials are not
// configured. Order references carry the mock prefix so verification can
// recognize them; signature checks still run the real HMAC so signed test
// traffic behaves the same as against the live API.
type Mock struct {
	keyID     string
	keySecret string
	now       func() time.Time
}

func NewMock(keyID, keySecret string) *Mock {
	return &Mock{keyID: keyID, keySecret: keySecret, now: time.Now}
}

func (m *Mock) KeyID() string { return m.keyID }

func (m *Mock) CreateOrder(ctx context.Context, in dompayment.CreateOrderInput) (*dompayment.GatewayOrder, error) {
	if in.Amount <= 0 {
		return nil, dompayment.ErrInvalidAmount
	}
	return &dompayment.GatewayOrder{
		ID:        dompayment.MockOrderPrefix + uuid.NewString(),
		Amount:    in.Amount,
		Currency:  in.Currency,
		Receipt:   in.Receipt,
		Status:    "created",
		CreatedAt: m.now().Unix(),
		Notes:     in.Notes,
		IsMock:    true,
	}, nil
}

func (m *Mock) FetchPayment(ctx context.Context, paymentID string) (*dompayment.Payment, error) {
	if !strings.HasPrefix(paymentID, dompayment.MockPaymentPrefix) {
		return nil, dompayment.ErrPaymentNotFound
	}
	return &dompayment.Payment{
		ID:        paymentID,
		Status:    "captured",
		Currency:  "INR",
		Method:    "mock",
		CreatedAt: m.now().Unix(),
	}, nil
}

func (m *Mock) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(m.keySecret, orderID, paymentID, signature)
}
