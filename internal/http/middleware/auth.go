package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"reservas/internal/domain"
)

const identityKey = "identity"

// Identity parses an optional "Authorization: Bearer" token and attaches the
// resulting identity to the context. Requests without a token stay anonymous;
// RequireAuth decides whether that is acceptable per route.
func Identity(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		parsed, err := jwt.Parse(tokenString,
			func(t *jwt.Token) (any, error) { return secret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !parsed.Valid {
			// A broken token is treated like no token at all.
			c.Next()
			return
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			c.Next()
			return
		}

		userID, _ := claims["user_id"].(float64)
		role, _ := claims["role"].(string)
		if userID <= 0 {
			c.Next()
			return
		}

		c.Set(identityKey, domain.Identity{ID: int64(userID), Role: role})
		c.Next()
	}
}

// RequireAuth aborts anonymous requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c).IsAnonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "debes iniciar sesión",
			})
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the request identity; anonymous when none attached.
func CurrentIdentity(c *gin.Context) domain.Identity {
	if c == nil {
		return domain.Anonymous()
	}
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(domain.Identity); ok {
			return id
		}
	}
	return domain.Anonymous()
}
