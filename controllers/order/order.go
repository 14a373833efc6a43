package orderControllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/talibjameel/gemStore-backend/models"
)

// ErrEmptyCart aborts order placement before any write happens.
var ErrEmptyCart = errors.New("cart is empty")

// generateOrderNumber returns a unique order reference.
// Example: 20250908130500-2f1c9a7e-...
func generateOrderNumber() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// PlaceOrder consolidates the user's cart into a single order inside one
// transaction: read the cart joined with product name/price, freeze it as a
// JSON snapshot, insert the order, delete the cart lines. Any failure rolls
// the whole thing back, so no partial order or half-cleared cart is ever
// observable.
func PlaceOrder(db *gorm.DB, userID string, subTotal, shippingCost float64, status string) (*models.Order, error) {
	if status == "" {
		status = "Pending"
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var lines []models.OrderLine
		if err := tx.Table("cart_items").
			Select("products.name, cart_items.quantity, products.price").
			Joins("JOIN products ON products.id = cart_items.product_id").
			Where("cart_items.user_id = ?", userID).
			Scan(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		snapshot, err := json.Marshal(lines)
		if err != nil {
			return err
		}

		order = models.Order{
			OrderNumber:       generateOrderNumber(),
			UserID:            userID,
			Subtotal:          subTotal,
			ShippingCost:      shippingCost,
			Status:            status,
			DetailsOfProducts: string(snapshot),
			CreatedAt:         time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// POST /place_order (form-encoded)
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		subTotalStr := c.PostForm("sub_total")
		if subTotalStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "sub_total is required"})
			return
		}
		subTotal, err := strconv.ParseFloat(subTotalStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid sub_total"})
			return
		}

		var shippingCost float64
		if costStr := c.PostForm("shipping_cost"); costStr != "" {
			shippingCost, err = strconv.ParseFloat(costStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid shipping_cost"})
				return
			}
		}

		order, err := PlaceOrder(db, userID, subTotal, shippingCost, c.PostForm("status"))
		if err != nil {
			if errors.Is(err, ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty!"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		broadcastNewOrder(*order)

		c.JSON(http.StatusCreated, gin.H{
			"success":      true,
			"message":      "Order placed successfully",
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
		})
	}
}

// GET /my_orders
func MyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}
