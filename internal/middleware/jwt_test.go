package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mechanic_shop/internal/apperrors"
)

func TestCredentialRoundTrip(t *testing.T) {
	auth := NewJWTAuth("secret", time.Hour)

	token, err := auth.IssueCredential(42)
	require.NoError(t, err)

	id, err := auth.ValidateCredential(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
}

func TestExpiredCredential(t *testing.T) {
	auth := NewJWTAuth("secret", time.Minute)
	issued := time.Now().Add(-2 * time.Hour)
	auth.now = func() time.Time { return issued }

	token, err := auth.IssueCredential(7)
	require.NoError(t, err)

	auth.now = time.Now
	_, err = auth.ValidateCredential(token)
	var authErr *apperrors.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "token expired", authErr.Reason)
}

func TestCredentialWrongSecret(t *testing.T) {
	token, err := NewJWTAuth("one", time.Hour).IssueCredential(1)
	require.NoError(t, err)

	_, err = NewJWTAuth("two", time.Hour).ValidateCredential(token)
	var authErr *apperrors.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "invalid token", authErr.Reason)
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := NewJWTAuth("secret", time.Hour)

	r := gin.New()
	r.GET("/me", RequireAuth(auth), func(c *gin.Context) {
		id, ok := CustomerID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	token, err := auth.IssueCredential(9)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"id":9}`, w.Body.String())
			}
		})
	}
}

func TestRequestIDEchoesInboundHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}
