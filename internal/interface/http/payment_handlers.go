package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	dompayment "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/payment"
	paymentuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/payment"
)

func (a *API) handlePaymentConfig(w http.ResponseWriter, r *http.Request) {
	keyID := a.paymentSvc.KeyID()
	var data map[string]any
	if keyID != "" {
		data = map[string]any{"keyId": keyID}
	} else {
		data = map[string]any{"keyId": nil}
	}
	respondData(w, http.StatusOK, data, "")
}

type createPaymentOrderRequest struct {
	Amount   float64           `json:"amount" validate:"required"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

func (a *API) handleCreatePaymentOrder(w http.ResponseWriter, r *http.Request) {
	var req createPaymentOrderRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Valid amount is required")
		return
	}

	order, err := a.paymentSvc.CreateOrder(r.Context(), paymentuc.CreateOrderInput{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		if errors.Is(err, dompayment.ErrInvalidAmount) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		a.respondServerError(w, "Failed to create payment order", err)
		return
	}
	respondData(w, http.StatusOK, order, "Payment order created successfully")
}

type verifyPaymentRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id"`
	GatewayPaymentID string `json:"razorpay_payment_id"`
	GatewaySignature string `json:"razorpay_signature"`
	OrderID          string `json:"orderId"`
}

func (a *API) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Payment verification data is required")
		return
	}

	result, err := a.paymentSvc.Verify(r.Context(), paymentuc.VerifyInput{
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.GatewaySignature,
		OrderID:          req.OrderID,
	})
	if err != nil {
		a.countVerification("failure")
		a.handleDomainError(w, err)
		return
	}
	a.countVerification("success")
	respondData(w, http.StatusOK, result, "Payment verified successfully")
}

func (a *API) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := a.paymentSvc.GetPayment(r.Context(), chi.URLParam(r, "paymentId"))
	if err != nil {
		if errors.Is(err, dompayment.ErrPaymentNotFound) {
			respondError(w, http.StatusNotFound, "Payment not found")
			return
		}
		a.respondServerError(w, "Server error while fetching payment details", err)
		return
	}
	respondData(w, http.StatusOK, p, "Payment details retrieved successfully")
}

func (a *API) countVerification(result string) {
	if a.metrics != nil {
		a.metrics.Verifications.WithLabelValues(result).Inc()
	}
}
