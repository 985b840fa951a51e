package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyUsed    = errors.New("user already exists with this email")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountDisabled     = errors.New("account is deactivated")
	ErrInvalidRole         = errors.New("invalid role")
	ErrWeakPassword        = errors.New("password must be at least 6 characters long")
	ErrOTPRequired         = errors.New("email and OTP are required")
	ErrOTPNotRequested     = errors.New("no OTP requested for this account")
	ErrOTPExpired          = errors.New("OTP has expired")
	ErrOTPUsed             = errors.New("OTP has already been used")
	ErrOTPMismatch         = errors.New("invalid OTP")
	ErrOTPAttemptsExceeded = errors.New("maximum OTP attempts exceeded")
)
