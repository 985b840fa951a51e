package payment

import "errors"

var (
	ErrInvalidAmount       = errors.New("valid amount is required")
	ErrVerificationData    = errors.New("payment verification data is required")
	ErrSignatureMismatch   = errors.New("invalid payment signature")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrGateway             = errors.New("payment gateway error")
	ErrGatewayUnauthorized = errors.New("payment gateway authentication failed")
)
