package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/pantry/pkg/slogx"
)

// ErrNoToken is returned by TokenFromRequest when no usable credentials are
// present on the request.
var ErrNoToken = errors.New("authentication credentials were not provided")

// TokenAuthenticator resolves a presented opaque token to its owner.
type TokenAuthenticator interface {
	AuthenticateToken(ctx context.Context, raw string) (Principal, error)
}

// TokenFromRequest extracts the raw token from "Authorization: Token <key>"
// or "Authorization: Bearer <key>".
func TokenFromRequest(r *http.Request) (string, error) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return "", ErrNoToken
	}

	scheme, raw, ok := strings.Cut(h, " ")
	if !ok {
		return "", ErrNoToken
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return "", ErrNoToken
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, " \t") {
		return "", ErrNoToken
	}
	return raw, nil
}

// AuthnMiddleware rejects requests without a valid token and attaches the
// resolved Principal to the request context.
func AuthnMiddleware(a TokenAuthenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, err := TokenFromRequest(r)
			if err != nil {
				WriteAuthError(w, ErrNoToken.Error())
				return
			}

			p, err := a.AuthenticateToken(ctx, raw)
			if err != nil {
				slogx.FromContext(ctx).Warn("token authentication failed", "err", err)
				WriteAuthError(w, "Invalid token.")
				return
			}

			ctx = WithPrincipal(ctx, p)
			ctx = slogx.WithUserID(ctx, p.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff limits a handler to staff principals. It must run after
// AuthnMiddleware; a request without a principal is treated as anonymous.
func RequireStaff() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				WriteAuthError(w, ErrNoToken.Error())
				return
			}
			if !p.Staff {
				slogx.FromContext(r.Context()).Warn("non-staff user denied admin access")
				WriteError(w, http.StatusForbidden, "permission_denied",
					"You do not have permission to perform this action.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteAuthError writes a 401 with the Token challenge.
func WriteAuthError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", "Token")
	WriteError(w, http.StatusUnauthorized, "not_authenticated", desc)
}
