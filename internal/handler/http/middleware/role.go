package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/handler/http/response"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
)

// RequirePermission checks that the user's role holds every permission
func RequirePermission(permissions ...user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := jwt.ClaimsFromContext(r.Context())
			if err != nil {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", joinPermissions(permissions)))
				return
			}

			if !user.HasCapabilities(claims.Role, permissions...) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", joinPermissions(permissions), claims.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyPermission checks that the user's role holds at least one permission
func RequireAnyPermission(permissions ...user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := jwt.ClaimsFromContext(r.Context())
			if err != nil || !user.HasAnyCapability(claims.Role, permissions...) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: one of '%s' required", joinPermissions(permissions)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func joinPermissions(permissions []user.Permission) string {
	names := make([]string, len(permissions))
	for i, p := range permissions {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
