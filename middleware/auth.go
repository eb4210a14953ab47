package middleware

import (
	"strings"
	"time"

	"portfolio-api/helper"
	"portfolio-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const identityKey = "identity"

// Claims are issued by the auth provider: the subject is the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the caller resolved from a bearer token.
type Identity struct {
	UserID string
	Role   models.UserRole
}

// Authenticate verifies a bearer token when one is sent and stores the
// caller's identity on the context. Requests without a token pass through
// anonymously.
func Authenticate(h *helper.HTTPHelper, key []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			h.SendError(c, models.NewUnauthorizedError("Bearer token required"), "Unauthorized")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			h.SendError(c, models.NewUnauthorizedError("Invalid token"), "Unauthorized")
			return
		}

		role := models.UserRole(claims.Role)
		if role == "" {
			role = models.RoleReader
		}
		c.Set(identityKey, Identity{UserID: claims.Subject, Role: role})
		c.Next()
	}
}

// RequireRole rejects anonymous callers with 401 and callers holding none of
// roles with 403.
func RequireRole(h *helper.HTTPHelper, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			h.SendError(c, models.NewUnauthorizedError("Authentication required"), "Unauthorized")
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		h.SendError(c, models.NewForbiddenError("Insufficient permissions"), "Forbidden")
	}
}

// GetIdentity returns the authenticated caller, if any.
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

// IssueToken signs a token the way the auth provider does. It backs the
// development CLI and tests.
func IssueToken(key []byte, userID string, role models.UserRole, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}
