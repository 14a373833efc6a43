package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/talibjameel/gemStore-backend/controllers/order"
)

// SetupOrderRoutes registers order placement, history and the live feed.
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	rg.POST("/place_order", orderControllers.PlaceOrderHandler(db))
	rg.GET("/my_orders", orderControllers.MyOrdersHandler(db))

	// websocket endpoint for real-time order updates
	rg.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
}
