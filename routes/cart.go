package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/talibjameel/gemStore-backend/controllers/cart"
)

// SetupCartRoutes registers the shopping-cart endpoints.
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	rg.GET("/cart", cartControllers.GetCart(db))
	rg.POST("/cart/add", cartControllers.AddToCart(db))
	rg.DELETE("/cart/delete", cartControllers.DeleteCartItem(db))
	rg.PUT("/cart/updateItem", cartControllers.UpdateCartItem(db))
	rg.DELETE("/cart/clear", cartControllers.ClearCart(db))
}
