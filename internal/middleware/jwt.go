package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"mechanic_shop/internal/apperrors"
)

// CustomerIDKey is the gin context key RequireAuth stores the caller under.
const CustomerIDKey = "customer_id"

// Authenticator issues and validates bearer credentials bound to a customer.
type Authenticator interface {
	IssueCredential(customerID uint) (string, error)
	ValidateCredential(token string) (uint, error)
}

// JWTAuth is an HS256 Authenticator. The customer id travels in "sub".
type JWTAuth struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTAuth(secret string, ttl time.Duration) *JWTAuth {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTAuth{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (a *JWTAuth) IssueCredential(customerID uint) (string, error) {
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(customerID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *JWTAuth) ValidateCredential(tokenStr string) (uint, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, &apperrors.AuthError{Reason: "token expired"}
		}
		return 0, &apperrors.AuthError{Reason: "invalid token"}
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, &apperrors.AuthError{Reason: "invalid token subject"}
	}
	return uint(id), nil
}

// RequireAuth ensures a valid bearer token is present and stores the
// customer id in the context for downstream handlers.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		customerID, err := auth.ValidateCredential(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(CustomerIDKey, customerID)
		c.Next()
	}
}

// CustomerID returns the id RequireAuth stored on c.
func CustomerID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(CustomerIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
