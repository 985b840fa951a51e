package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	domuser "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/user"
)

type ctxKey struct{}

var ctxUserKey = ctxKey{}

type authUser struct {
	UserID string
	Role   domuser.Role
	Email  string
	Name   string
}

func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respondError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := a.tokenSvc.ParseToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserKey, &authUser{
			UserID: claims.UserID,
			Role:   claims.Role,
			Email:  claims.Email,
			Name:   claims.Name,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *API) requireRoles(roles ...domuser.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := getAuthUser(r.Context())
			if user == nil {
				respondError(w, http.StatusUnauthorized, "Not authorized")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondError(w, http.StatusForbidden, "Access denied")
		})
	}
}

func getAuthUser(ctx context.Context) *authUser {
	val := ctx.Value(ctxUserKey)
	if user, ok := val.(*authUser); ok {
		return user
	}
	return nil
}

func (a *API) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		route := r.Method + " " + pattern
		a.metrics.Requests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		a.metrics.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	})
}
