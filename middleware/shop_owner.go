package middleware

import (
	"net/http"

	shopRepo "wrenchly/database/repository/shop"
	"wrenchly/services/appointment"

	"github.com/gin-gonic/gin"
)

// ShopOwnerMiddleware restricts a :shopID-scoped route to the owner of
// that shop. The token subject is the owner's user ID; the shop document
// carries the binding. Run it after JWTAuthMiddleware.
func ShopOwnerMiddleware(shops shopRepo.ShopRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok || actor.Role != appointment.RoleShop {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}

		shop, err := shops.GetByID(c.Request.Context(), c.Param("shopID"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
			return
		}
		if shop.OwnerID != actor.ID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not your shop"})
			return
		}
		c.Next()
	}
}
