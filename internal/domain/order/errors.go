package order

import "errors"

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrInvalidStatus          = errors.New("invalid order status")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrEmptyItems             = errors.New("order items are required")
	ErrMissingShippingAddress = errors.New("shipping address is required")
	ErrInvalidItem            = errors.New("order item has invalid quantity or price")
)
