package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domuser "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/user"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
    id, name, email, password_hash, role, is_active, COALESCE(avatar, ''),
    last_login, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, name, email, password_hash, role, is_active, avatar)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, id, u.Name, u.Email, u.PasswordHash, u.Role, u.IsActive, u.Avatar)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domuser.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domuser.User, error) {
	return r.get(ctx, `SELECT`+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	return r.get(ctx, `SELECT`+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
}

func (r *UserRepository) get(ctx context.Context, query string, arg any) (*domuser.User, error) {
	var u domuser.User
	err := r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Role, &u.IsActive, &u.Avatar, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domuser.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE users SET last_login = now() WHERE id = $1`, id)
}

func (r *UserRepository) SetOTP(ctx context.Context, id string, otp domuser.OTP) error {
	return r.exec(ctx, `
        UPDATE users
        SET otp_code = $2, otp_expires_at = $3, otp_attempts = 0, otp_is_used = FALSE, updated_at = now()
        WHERE id = $1
    `, id, otp.Code, otp.ExpiresAt)
}

func (r *UserRepository) GetOTP(ctx context.Context, id string) (*domuser.OTP, error) {
	var code *string
	var otp domuser.OTP
	err := r.db.QueryRow(ctx, `
        SELECT otp_code, COALESCE(otp_expires_at, 'epoch'::timestamptz), otp_attempts, otp_is_used
        FROM users WHERE id = $1
    `, id).Scan(&code, &otp.ExpiresAt, &otp.Attempts, &otp.IsUsed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domuser.ErrUserNotFound
		}
		return nil, err
	}
	if code == nil {
		return nil, nil
	}
	otp.Code = *code
	return &otp, nil
}

func (r *UserRepository) IncrementOTPAttempts(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE users SET otp_attempts = otp_attempts + 1 WHERE id = $1`, id)
}

func (r *UserRepository) MarkOTPUsed(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE users SET otp_is_used = TRUE WHERE id = $1`, id)
}

func (r *UserRepository) ClearOTP(ctx context.Context, id string) error {
	return r.exec(ctx, `
        UPDATE users
        SET otp_code = NULL, otp_expires_at = NULL, otp_attempts = 0, otp_is_used = FALSE
        WHERE id = $1
    `, id)
}

func (r *UserRepository) CountByRole(ctx context.Context, role domuser.Role) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM users WHERE role = $1`, role).Scan(&n)
	return n, err
}

func (r *UserRepository) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domuser.ErrUserNotFound
	}
	return nil
}
