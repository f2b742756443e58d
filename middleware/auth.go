package middleware

import (
	"net/http"
	"strings"

	"wrenchly/services/appointment"
	"wrenchly/utils"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// JWTAuthMiddleware validates the bearer token and injects the
// authenticated actor into the request context. Expired tokens simply
// fail validation; refreshing is the client's concern.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		sub, role, err := utils.ExtractActorFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		switch appointment.Role(role) {
		case appointment.RoleShop, appointment.RoleCustomer:
		default:
			// System tokens are never minted for HTTP clients.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token role"})
			return
		}

		c.Set(actorKey, appointment.Actor{ID: sub, Role: appointment.Role(role)})
		c.Next()
	}
}

// RequireRole restricts a route to one role; run it after JWTAuthMiddleware.
func RequireRole(role appointment.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok || actor.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}
		c.Next()
	}
}

// GetActor returns the authenticated actor set by JWTAuthMiddleware.
func GetActor(c *gin.Context) (appointment.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return appointment.Actor{}, false
	}
	actor, ok := v.(appointment.Actor)
	return actor, ok
}
