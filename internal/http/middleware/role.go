package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireRoles only lets through identities whose role is in allowedRoles.
// An anonymous caller gets 401; a known caller with the wrong role gets 403,
// never a redirect: the user is known but unauthorized.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity.IsAnonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "debes iniciar sesión",
			})
			return
		}

		if _, ok := allowed[strings.ToLower(strings.TrimSpace(identity.Role))]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "no tienes permisos para esta operación",
			})
			return
		}

		c.Next()
	}
}
