package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	"github.com/SscSPs/cash_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "cash-ledger-test"
)

func signToken(t *testing.T, subject, role string, expiresIn time.Duration) string {
	t.Helper()
	return signTokenFrom(t, testIssuer, subject, role, expiresIn)
}

func signTokenFrom(t *testing.T, issuer, subject, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := middleware.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(testSecret, testIssuer))
	handlers := append(extra, func(c *gin.Context) {
		actor, _ := middleware.GetActorFromContext(c)
		c.JSON(http.StatusOK, actor)
	})
	r.GET("/whoami", handlers...)
	return r
}

func call(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Bearer {token}"},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized, "Invalid token"},
		{"expired", "Bearer " + signToken(t, "acc-1", "", -time.Minute), http.StatusUnauthorized, "Token has expired"},
		{"no subject", "Bearer " + signToken(t, "", "", time.Hour), http.StatusUnauthorized, "Invalid token claims"},
		{"valid user", "Bearer " + signToken(t, "acc-1", "", time.Hour), http.StatusOK, `"role":"USER"`},
		{"valid admin", "Bearer " + signToken(t, "ops", "administrator", time.Hour), http.StatusOK, `"role":"ADMINISTRATOR"`},
		{"unknown role", "Bearer " + signToken(t, "someone_else", "GUEST", time.Hour), http.StatusUnauthorized, "Invalid token claims"},
		{"wrong issuer", "Bearer " + signTokenFrom(t, "someone-else", "acc-1", "", time.Hour), http.StatusUnauthorized, "Invalid token"},
		{"missing issuer", "Bearer " + signTokenFrom(t, "", "acc-1", "", time.Hour), http.StatusUnauthorized, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(r, tt.header)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "acc-1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	w := call(newRouter(), "Bearer "+signed)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_IssuerOptional(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(testSecret, ""))
	r.GET("/whoami", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := call(r, "Bearer "+signTokenFrom(t, "anyone", "acc-1", "", time.Hour))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	r := newRouter(middleware.RequireRole(domain.RoleAdministrator, domain.RoleSystem))

	w := call(r, "Bearer "+signToken(t, "acc-1", "", time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(r, "Bearer "+signToken(t, "ops", "ADMINISTRATOR", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"ops"`)
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", middleware.RequireRole(domain.RoleAdministrator), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimit(t *testing.T) {
	lim, err := middleware.NewMemoryLimiter("2-M")
	require.NoError(t, err)
	r := newRouter(middleware.RateLimit(lim))

	alice := "Bearer " + signToken(t, "alice", "", time.Hour)
	bob := "Bearer " + signToken(t, "bob", "", time.Hour)

	assert.Equal(t, http.StatusOK, call(r, alice).Code)
	assert.Equal(t, http.StatusOK, call(r, alice).Code)
	assert.Equal(t, http.StatusTooManyRequests, call(r, alice).Code)
	assert.Equal(t, http.StatusOK, call(r, bob).Code, "limits are per actor")
}

func TestNewMemoryLimiter_BadFormat(t *testing.T) {
	_, err := middleware.NewMemoryLimiter("lots")
	assert.Error(t, err)
}

func TestStructuredLoggingMiddleware_SetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.Default()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
