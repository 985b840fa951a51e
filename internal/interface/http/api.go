package http

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	domorder "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/order"
	dompayment "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/payment"
	domproduct "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/product"
	domuser "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/user"
	"github.com/Sandanitin/ecommerce-wedding-backend/internal/infra/metrics"
	authuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/auth"
	dashboarduc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/dashboard"
	orderuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/order"
	paymentuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/payment"
	productuc "github.com/Sandanitin/ecommerce-wedding-backend/internal/usecase/product"
)

// PaymentOutbox is the operator view over orphaned payment verifications.
type PaymentOutbox interface {
	ListUnresolved(ctx context.Context, limit int) ([]dompayment.Unmatched, error)
	MarkResolved(ctx context.Context, id int64) error
}

type API struct {
	authSvc      *authuc.Service
	productSvc   *productuc.Service
	orderSvc     *orderuc.Service
	paymentSvc   *paymentuc.Service
	dashboardSvc *dashboarduc.Service
	outbox       PaymentOutbox
	tokenSvc     authuc.TokenService
	validator    *validator.Validate
	metrics      *metrics.ServerMetrics
	exposeErrors bool
}

type Dependencies struct {
	AuthService      *authuc.Service
	ProductService   *productuc.Service
	OrderService     *orderuc.Service
	PaymentService   *paymentuc.Service
	DashboardService *dashboarduc.Service
	PaymentOutbox    PaymentOutbox
	TokenService     authuc.TokenService
	Metrics          *metrics.ServerMetrics
	ExposeErrors     bool
}

func NewAPI(deps Dependencies) *API {
	return &API{
		authSvc:      deps.AuthService,
		productSvc:   deps.ProductService,
		orderSvc:     deps.OrderService,
		paymentSvc:   deps.PaymentService,
		dashboardSvc: deps.DashboardService,
		outbox:       deps.PaymentOutbox,
		tokenSvc:     deps.TokenService,
		validator:    validator.New(),
		metrics:      deps.Metrics,
		exposeErrors: deps.ExposeErrors,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	if a.metrics != nil {
		r.Use(a.metricsMiddleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", a.handleRegister)
			r.Post("/login", a.handleLogin)
			r.Post("/forgot-password", a.handleForgotPassword)
			r.Post("/verify-otp", a.handleVerifyOTP)
			r.Post("/reset-password", a.handleResetPassword)

			r.Group(func(pr chi.Router) {
				pr.Use(a.authMiddleware)
				pr.Get("/profile", a.handleProfile)
				pr.Post("/logout", a.handleLogout)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", a.handleListProducts)
			r.Get("/{id}", a.handleGetProduct)

			r.Group(func(ar chi.Router) {
				ar.Use(a.authMiddleware)
				ar.Use(a.requireRoles(domuser.RoleAdmin))
				ar.Post("/", a.handleCreateProduct)
				ar.Put("/{id}", a.handleUpdateProduct)
				ar.Delete("/{id}", a.handleDeleteProduct)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Group(func(pr chi.Router) {
				pr.Use(a.authMiddleware)
				pr.Post("/", a.handleCreateOrder)
				pr.Get("/user/my-orders", a.handleMyOrders)
			})

			r.Group(func(ar chi.Router) {
				ar.Use(a.authMiddleware)
				ar.Use(a.requireRoles(domuser.RoleAdmin))
				ar.Get("/", a.handleListOrders)
				ar.Get("/{id}", a.handleGetOrder)
				ar.Put("/{id}/status", a.handleUpdateOrderStatus)
			})
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/config", a.handlePaymentConfig)

			r.Group(func(pr chi.Router) {
				pr.Use(a.authMiddleware)
				pr.Post("/create-order", a.handleCreatePaymentOrder)
				pr.Post("/verify", a.handleVerifyPayment)
				pr.Get("/{paymentId}", a.handleGetPayment)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(a.authMiddleware)
			r.Use(a.requireRoles(domuser.RoleAdmin))
			r.Get("/dashboard", a.handleDashboard)
			r.Get("/payment-outbox", a.handleListPaymentOutbox)
			r.Put("/payment-outbox/{id}/resolve", a.handleResolvePaymentOutbox)
		})
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

type response struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
	Error      string      `json:"error,omitempty"`
}

type pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

func newPagination(page, pageSize int, total int64) *pagination {
	pages := int(math.Ceil(float64(total) / float64(pageSize)))
	return &pagination{Current: page, Pages: pages, Total: total}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondData(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, response{Success: true, Data: data, Message: message})
}

func respondPage(w http.ResponseWriter, data any, p *pagination) {
	writeJSON(w, http.StatusOK, response{Success: true, Data: data, Pagination: p})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Success: true, Message: message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Success: false, Message: message})
}

// respondServerError hides the underlying message in production mode.
func (a *API) respondServerError(w http.ResponseWriter, message string, err error) {
	resp := response{Success: false, Message: message}
	if a.exposeErrors && err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}

func (a *API) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domorder.ErrEmptyItems),
		errors.Is(err, domorder.ErrMissingShippingAddress),
		errors.Is(err, domorder.ErrInvalidPaymentMethod),
		errors.Is(err, domorder.ErrInvalidStatus),
		errors.Is(err, domorder.ErrInvalidItem),
		errors.Is(err, domproduct.ErrInvalidName),
		errors.Is(err, domproduct.ErrInvalidPrice),
		errors.Is(err, dompayment.ErrInvalidAmount),
		errors.Is(err, dompayment.ErrVerificationData),
		errors.Is(err, dompayment.ErrSignatureMismatch),
		errors.Is(err, domuser.ErrWeakPassword),
		errors.Is(err, domuser.ErrInvalidRole),
		errors.Is(err, domuser.ErrEmailAlreadyUsed),
		errors.Is(err, domuser.ErrOTPRequired),
		errors.Is(err, domuser.ErrOTPNotRequested),
		errors.Is(err, domuser.ErrOTPExpired),
		errors.Is(err, domuser.ErrOTPUsed),
		errors.Is(err, domuser.ErrOTPMismatch),
		errors.Is(err, domuser.ErrOTPAttemptsExceeded):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domorder.ErrOrderNotFound),
		errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domuser.ErrUserNotFound),
		errors.Is(err, dompayment.ErrPaymentNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domuser.ErrInvalidCredentials),
		errors.Is(err, domuser.ErrAccountDisabled):
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		a.respondServerError(w, "Server error", err)
	}
}

func pageParams(r *http.Request) (int, int) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	return page, limit
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
