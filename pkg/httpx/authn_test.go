package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/pantry/pkg/httpx"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator map[string]httpx.Principal

func (s stubAuthenticator) AuthenticateToken(_ context.Context, raw string) (httpx.Principal, error) {
	p, ok := s[raw]
	if !ok {
		return httpx.Principal{}, errors.New("unknown token")
	}
	return p, nil
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"token scheme", "Token abc", "abc", true},
		{"bearer scheme", "Bearer abc", "abc", true},
		{"case insensitive scheme", "token abc", "abc", true},
		{"missing", "", "", false},
		{"scheme only", "Token", "", false},
		{"blank key", "Token   ", "", false},
		{"basic scheme", "Basic dXNlcjpwYXNz", "", false},
		{"extra parts", "Token abc def", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			got, err := httpx.TokenFromRequest(req)
			if !tt.ok {
				require.ErrorIs(t, err, httpx.ErrNoToken)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestAuthnMiddleware(t *testing.T) {
	auth := stubAuthenticator{"good": {UserID: "u1", Email: "a@example.com"}}

	var got httpx.Principal
	h := httpx.AuthnMiddleware(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = httpx.PrincipalFromContext(r.Context())
		require.Equal(t, "u1", httpx.UserIDFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token good")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "a@example.com", got.Email)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Token", rec.Header().Get("WWW-Authenticate"))
		require.Equal(t, "not_authenticated", decodeError(t, rec)["error"])
	})

	t.Run("unknown token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Invalid token.", decodeError(t, rec)["error_description"])
	})
}

func TestRequireStaff(t *testing.T) {
	auth := stubAuthenticator{
		"staff": {UserID: "s", Staff: true},
		"user":  {UserID: "u"},
	}
	h := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }),
		httpx.AuthnMiddleware(auth),
		httpx.RequireStaff(),
	)

	call := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		if token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, call("staff"))
	require.Equal(t, http.StatusForbidden, call("user"))
	require.Equal(t, http.StatusUnauthorized, call(""))
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.MethodNotAllowed(http.MethodGet, http.MethodPatch).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user/me/", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET, PATCH", rec.Header().Get("Allow"))
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "method_not_allowed", decodeError(t, rec)["error"])
}

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/recipes/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		httpx.CORS([]string{"https://app.example.com"})(ok).ServeHTTP(rec, req)

		require.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/recipes/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		httpx.CORS([]string{"https://app.example.com"})(ok).ServeHTTP(rec, req)

		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disabled", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		httpx.CORS(nil)(ok).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
