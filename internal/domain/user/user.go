package user

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	Avatar       string
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OTP is a single-use password-reset code stored on the user row. At most
// three verification attempts are allowed before the code is rejected.
type OTP struct {
	Code      string
	ExpiresAt time.Time
	Attempts  int
	IsUsed    bool
}

const OTPMaxAttempts = 3

func (o OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
