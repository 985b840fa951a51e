package auth

import (
	"context"
	"strings"
	"time"

	domuser "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/user"
)

type PasswordService interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type Claims struct {
	UserID string
	Role   domuser.Role
	Email  string
	Name   string
}

type TokenService interface {
	GenerateToken(u *domuser.User) (string, error)
	ParseToken(token string) (*Claims, error)
}

type Mailer interface {
	SendOTP(ctx context.Context, email, code string) error
	SendPasswordResetSuccess(ctx context.Context, email, name string) error
}

// OTPGenerator produces the reset codes; injected so tests can pin the code.
type OTPGenerator func() (string, error)

const otpTTL = 10 * time.Minute

type Service struct {
	users       domuser.Repository
	passwords   PasswordService
	tokens      TokenService
	mailer      Mailer
	generateOTP OTPGenerator
	now         func() time.Time
}

func NewService(users domuser.Repository, passwords PasswordService, tokens TokenService, mailer Mailer, generateOTP OTPGenerator) *Service {
	return &Service{
		users:       users,
		passwords:   passwords,
		tokens:      tokens,
		mailer:      mailer,
		generateOTP: generateOTP,
		now:         time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthResult struct {
	Token string
	User  *domuser.User
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	if len(in.Password) < 6 {
		return nil, domuser.ErrWeakPassword
	}

	role := domuser.RoleUser
	if in.Role != "" {
		parsed, err := domuser.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domuser.ErrEmailAlreadyUsed
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, &domuser.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

type LoginInput struct {
	Email    string
	Password string
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domuser.ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, domuser.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, domuser.ErrAccountDisabled
	}
	if err := s.passwords.Compare(u.PasswordHash, in.Password); err != nil {
		return nil, domuser.ErrInvalidCredentials
	}

	_ = s.users.UpdateLastLogin(ctx, u.ID)

	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

func (s *Service) Profile(ctx context.Context, userID string) (*domuser.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ForgotPassword issues a fresh OTP and mails it. A mail failure is surfaced:
// an OTP the user never received is useless.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domuser.ErrOTPRequired
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := s.generateOTP()
	if err != nil {
		return err
	}
	otp := domuser.OTP{
		Code:      code,
		ExpiresAt: s.now().Add(otpTTL),
	}
	if err := s.users.SetOTP(ctx, u.ID, otp); err != nil {
		return err
	}

	return s.mailer.SendOTP(ctx, u.Email, code)
}

// VerifyOTP checks the code without consuming it; ResetPassword consumes it.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	_, err := s.checkOTP(ctx, normalizeEmail(email), code)
	return err
}

func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)
	if len(newPassword) < 6 {
		return domuser.ErrWeakPassword
	}

	u, err := s.checkOTP(ctx, email, code)
	if err != nil {
		return err
	}

	hash, err := s.passwords.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}
	if err := s.users.ClearOTP(ctx, u.ID); err != nil {
		return err
	}

	// Confirmation mail is best effort; the reset already happened.
	_ = s.mailer.SendPasswordResetSuccess(ctx, u.Email, u.Name)
	return nil
}

func (s *Service) checkOTP(ctx context.Context, email, code string) (*domuser.User, error) {
	if email == "" || code == "" {
		return nil, domuser.ErrOTPRequired
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	otp, err := s.users.GetOTP(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if otp == nil || otp.Code == "" {
		return nil, domuser.ErrOTPNotRequested
	}
	if otp.IsUsed {
		return nil, domuser.ErrOTPUsed
	}
	if otp.Expired(s.now()) {
		return nil, domuser.ErrOTPExpired
	}
	if otp.Attempts >= domuser.OTPMaxAttempts {
		return nil, domuser.ErrOTPAttemptsExceeded
	}
	if otp.Code != code {
		_ = s.users.IncrementOTPAttempts(ctx, u.ID)
		return nil, domuser.ErrOTPMismatch
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
