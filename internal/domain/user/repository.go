package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id string) error
	SetOTP(ctx context.Context, id string, otp OTP) error
	GetOTP(ctx context.Context, id string) (*OTP, error)
	IncrementOTPAttempts(ctx context.Context, id string) error
	MarkOTPUsed(ctx context.Context, id string) error
	ClearOTP(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role Role) (int64, error)
}
