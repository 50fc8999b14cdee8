package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/masarhr/masar-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	middlewareTestSecret     = "test-secret-key-for-jwt"
	middlewareTestAccessExp  = "1h"
	middlewareTestRefreshExp = "24h"
)

func newTestJWTService() jwt.Service {
	return jwt.NewJWTService(middlewareTestSecret, middlewareTestAccessExp, middlewareTestRefreshExp)
}

// authChain mirrors the router's protected group: Verifier resolves the
// bearer token, AuthRequired enforces it.
func authChain(svc jwt.Service, extra ...func(http.Handler) http.Handler) http.Handler {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, _ := jwtauth.FromContext(r.Context())
		fmt.Fprint(w, claims["user_id"])
	})

	var h http.Handler = final
	for i := len(extra) - 1; i >= 0; i-- {
		h = extra[i](h)
	}
	return jwtauth.Verifier(svc.JWTAuth())(AuthRequired(svc.JWTAuth())(h))
}

func mintAccessToken(t *testing.T, svc jwt.Service, role string) string {
	t.Helper()
	employeeID := "emp-1"
	companyID := "company-1"
	token, _, err := svc.GenerateAccessToken("user-1", "user@masar.sa", &employeeID, &companyID, role)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return token
}

func doAuthRequest(handler http.Handler, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/payroll/summary", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestAuthRequired_ValidAccessToken(t *testing.T) {
	svc := newTestJWTService()
	handler := authChain(svc)

	employeeID := "emp-1"
	companyID := "company-1"
	token, expiresAt, err := svc.GenerateAccessToken("user-1", "user@masar.sa", &employeeID, &companyID, "hr_admin")
	require.NoError(t, err)
	require.Greater(t, expiresAt, time.Now().Unix())

	w := doAuthRequest(handler, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestAuthRequired_MissingToken(t *testing.T) {
	handler := authChain(newTestJWTService())

	w := doAuthRequest(handler, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_RefreshTokenRejected(t *testing.T) {
	svc := newTestJWTService()
	handler := authChain(svc)

	// A refresh token passes signature verification but is not an access
	// token, so it must not open protected routes.
	token, expiresAt, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	require.Greater(t, expiresAt, time.Now().Unix())

	w := doAuthRequest(handler, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_MalformedToken(t *testing.T) {
	handler := authChain(newTestJWTService())

	w := doAuthRequest(handler, "not-a-jwt")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	// Negative expiration mints a token that is already expired, well past
	// the verifier's acceptable skew.
	expiredSvc := jwt.NewJWTService(middlewareTestSecret, "-2m", middlewareTestRefreshExp)
	handler := authChain(expiredSvc)

	token := mintAccessToken(t, expiredSvc, "hr_admin")
	w := doAuthRequest(handler, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHRAdminOnly_Roles(t *testing.T) {
	svc := newTestJWTService()
	handler := authChain(svc, HRAdminOnly)

	cases := []struct {
		role string
		want int
	}{
		{"hr_admin", http.StatusOK},
		{"admin", http.StatusOK},
		{"employee", http.StatusForbidden},
	}
	for _, c := range cases {
		t.Run(c.role, func(t *testing.T) {
			w := doAuthRequest(handler, mintAccessToken(t, svc, c.role))
			assert.Equal(t, c.want, w.Code)
		})
	}
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestJWTService()

	token, expiresAt, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	cookie := svc.RefreshTokenCookie(token, expiresAt)

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, token, cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.True(t, cookie.Expires.Equal(time.Unix(expiresAt, 0)))
}
