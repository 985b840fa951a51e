package http

import (
	"net/http"

	domuser "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/user"
	authuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/auth"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	result, err := a.authSvc.Register(r.Context(), authuc.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusCreated, authPayload(result), "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := a.authSvc.Login(r.Context(), authuc.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, authPayload(result), "Login successful")
}

func (a *API) handleProfile(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	u, err := a.authSvc.Profile(r.Context(), user.UserID)
	if err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, mapUser(u), "")
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; logout is an acknowledgement for the client.
	respondMessage(w, http.StatusOK, "Logged out successfully")
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (a *API) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	if err := a.authSvc.ForgotPassword(r.Context(), req.Email); err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "OTP sent to your email address. Please check your inbox.")
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

func (a *API) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	if err := a.authSvc.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "OTP verified successfully")
}

type resetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (a *API) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Email, OTP, and new password are required")
		return
	}

	if err := a.authSvc.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		a.handleDomainError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Password reset successfully. You can now login with your new password.")
}

func authPayload(result *authuc.AuthResult) map[string]any {
	return map[string]any{
		"token": result.Token,
		"user":  mapUser(result.User),
	}
}

func mapUser(u *domuser.User) map[string]any {
	return map[string]any{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"role":      u.Role,
		"isActive":  u.IsActive,
		"avatar":    u.Avatar,
		"lastLogin": u.LastLogin,
		"createdAt": u.CreatedAt,
	}
}
