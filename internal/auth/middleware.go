package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stephanygrace/customer-portal/internal/models"
)

const identityKey = "auth.identity"

// Middleware rejects requests without a valid bearer token and stores the
// caller's Identity in the gin context.
func Middleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.APIError{
				Error: "Access token required",
				Code:  models.ErrorCodeUnauthorized,
			})
			return
		}

		identity, err := authenticator.Authenticate(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, models.APIError{
				Error: "Invalid or expired token",
				Code:  models.ErrorCodeForbidden,
			})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by Middleware.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}
