package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/auth"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/handler/http/response"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
)

// AuthRequired accepts verified, unrevoked access tokens. It must run after
// jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.Unauthorized(w, "Token revoked")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
