package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domorder "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/order"
	dompayment "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/payment"
	"github.com/Sandanitin/ecommerce-wedding-backend/internal/logging"
)

// OrderRepository is the slice of the order store the reconciliation flow
// needs: linking a verified payment to its order.
type OrderRepository interface {
	MarkPaid(ctx context.Context, id string, details domorder.PaymentDetails) (*domorder.Order, error)
}

// UnmatchedRecorder persists verifications whose order update failed so an
// operator can reconcile them later.
type UnmatchedRecorder interface {
	Record(ctx context.Context, rec dompayment.Unmatched) error
}

type Service struct {
	gateway   dompayment.Gateway
	orders    OrderRepository
	unmatched UnmatchedRecorder
}

func NewService(gw dompayment.Gateway, orders OrderRepository, unmatched UnmatchedRecorder) *Service {
	return &Service{
		gateway:   gw,
		orders:    orders,
		unmatched: unmatched,
	}
}

// KeyID exposes the public gateway key identifier. The secret never leaves
// the gateway client.
func (s *Service) KeyID() string {
	return s.gateway.KeyID()
}

type CreateOrderInput struct {
	Amount   float64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// CreateOrder converts the major-unit amount to paise and creates a remote
// payment-intent order. No local order is touched.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*dompayment.GatewayOrder, error) {
	if in.Amount <= 0 {
		return nil, dompayment.ErrInvalidAmount
	}

	paise := decimal.NewFromFloat(in.Amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	currency := in.Currency
	if currency == "" {
		currency = "INR"
	}
	receipt := in.Receipt
	if receipt == "" {
		receipt = fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	}

	return s.gateway.CreateOrder(ctx, dompayment.CreateOrderInput{
		Amount:   paise,
		Currency: currency,
		Receipt:  receipt,
		Notes:    in.Notes,
	})
}

type VerifyInput struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	OrderID          string
}

// Verify checks a payment confirmation and, when an order reference is
// supplied, transitions that order to paid/processing.
//
// A failed order update does not fail the verification: the payment already
// happened at the gateway and must never be reported as failed because of a
// bookkeeping write. The failure is logged and recorded for the operator.
func (s *Service) Verify(ctx context.Context, in VerifyInput) (*dompayment.Verification, error) {
	if in.GatewayOrderID == "" || in.GatewayPaymentID == "" || in.Signature == "" {
		return nil, dompayment.ErrVerificationData
	}

	isMock := strings.HasPrefix(in.GatewayOrderID, dompayment.MockOrderPrefix)
	if !isMock && !s.gateway.VerifySignature(in.GatewayOrderID, in.GatewayPaymentID, in.Signature) {
		return nil, dompayment.ErrSignatureMismatch
	}

	result := &dompayment.Verification{
		OrderID:   in.GatewayOrderID,
		PaymentID: in.GatewayPaymentID,
		Signature: in.Signature,
		IsMock:    isMock,
	}

	if in.OrderID != "" {
		details := domorder.PaymentDetails{
			RazorpayOrderID:   in.GatewayOrderID,
			RazorpayPaymentID: in.GatewayPaymentID,
			RazorpaySignature: in.Signature,
			TransactionID:     in.GatewayOrderID,
			PaymentGateway:    "razorpay",
		}
		if _, err := s.orders.MarkPaid(ctx, in.OrderID, details); err != nil {
			logging.Log(logging.Event{
				Component:      "payment.verify",
				OrderID:        in.OrderID,
				GatewayOrderID: in.GatewayOrderID,
				PaymentID:      in.GatewayPaymentID,
				Status:         "order_update_failed",
				Message:        err.Error(),
			})
			s.recordUnmatched(ctx, in, err)
		}
	}

	return result, nil
}

func (s *Service) recordUnmatched(ctx context.Context, in VerifyInput, cause error) {
	if s.unmatched == nil {
		return
	}
	rec := dompayment.Unmatched{
		OrderID:          in.OrderID,
		GatewayOrderID:   in.GatewayOrderID,
		GatewayPaymentID: in.GatewayPaymentID,
		Signature:        in.Signature,
		Reason:           cause.Error(),
	}
	if err := s.unmatched.Record(ctx, rec); err != nil {
		logging.Log(logging.Event{
			Component:      "payment.verify",
			OrderID:        in.OrderID,
			GatewayOrderID: in.GatewayOrderID,
			Status:         "unmatched_record_failed",
			Message:        err.Error(),
		})
	}
}

// GetPayment fetches the remote payment record.
func (s *Service) GetPayment(ctx context.Context, paymentID string) (*dompayment.Payment, error) {
	if paymentID == "" {
		return nil, dompayment.ErrPaymentNotFound
	}
	return s.gateway.FetchPayment(ctx, paymentID)
}
