package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/talibjameel/gemStore-backend/models"
)

type DeleteCartItemInput struct {
	CartID uint `json:"cart_id" form:"cart_id" binding:"required"`
}

type UpdateCartItemInput struct {
	CartID          uint     `json:"cart_id" binding:"required"`
	Quantity        int      `json:"quantity" binding:"required"`
	ShippingCost    *float64 `json:"shipping_cost"`
	ShippingAddress *string  `json:"shipping_address"`
}

// CartRow is a cart line joined with the current product name, price and image.
type CartRow struct {
	CartID     uint    `json:"cart_id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	ProductImg string  `json:"product_img"`
	Color      string  `json:"color"`
	Size       string  `json:"size"`
	Quantity   int     `json:"quantity"`
}

func currentUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userIDVal.(string), true
}

// GET /cart
// total_price reflects the catalog prices at read time, not the prices when
// the items were added.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var rows []CartRow
		err := db.Table("cart_items").
			Select("cart_items.id AS cart_id, products.name AS title, products.price, products.product_img, cart_items.color, cart_items.size, cart_items.quantity").
			Joins("JOIN products ON products.id = cart_items.product_id").
			Where("cart_items.user_id = ?", userID).
			Scan(&rows).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		var totalPrice float64
		for _, row := range rows {
			totalPrice += row.Price * float64(row.Quantity)
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"total_price": totalPrice,
			"data":        rows,
		})
	}
}

// POST /cart/add (form-encoded)
// Adding an already-present (product, color, size) variant increments its
// quantity; otherwise a new line is inserted. The composite unique index on
// the variant key plus the ON CONFLICT increment make the two steps behave as
// one atomic upsert, so two concurrent identical adds can never produce
// duplicate rows.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		productIDStr := c.PostForm("product_id")
		if productIDStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "product_id is required"})
			return
		}
		productID, err := strconv.ParseUint(productIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product_id"})
			return
		}

		quantity := 1
		if qtyStr := c.PostForm("quantity"); qtyStr != "" {
			quantity, err = strconv.Atoi(qtyStr)
			if err != nil || quantity <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid quantity"})
				return
			}
		}

		color := c.PostForm("color")
		size := c.PostForm("size")

		var product models.Product
		if err := db.First(&product, uint(productID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			}
			return
		}

		// Increment an existing line first. Matching by the variant key keeps
		// the lookup and the write in one statement, so a line deleted in
		// between cannot be reported as updated.
		result := db.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ? AND color = ? AND size = ?",
				userID, uint(productID), color, size).
			Updates(map[string]interface{}{
				"quantity":   gorm.Expr("quantity + ?", quantity),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
			return
		}
		if result.RowsAffected > 0 {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Quantity updated successfully"})
			return
		}

		// No line yet. A concurrent add may still insert first, so the insert
		// falls back to an increment on conflict.
		line := models.CartItem{
			UserID:    userID,
			ProductID: uint(productID),
			Quantity:  quantity,
			Color:     color,
			Size:      size,
			UpdatedAt: time.Now(),
		}
		err = db.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "product_id"}, {Name: "color"}, {Name: "size"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("quantity + ?", quantity),
				"updated_at": time.Now(),
			}),
		}).Create(&line).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add to cart"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product added to cart successfully"})
	}
}

// DELETE /cart/delete
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input DeleteCartItemInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "cart_id is required"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", input.CartID, userID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart item not found or does not belong to this user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product removed from cart successfully"})
	}
}

// PUT /cart/updateItem
// Shipping fields keep their stored values when the request omits them.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantity must be greater than zero"})
			return
		}

		var item models.CartItem
		if err := db.Where("id = ? AND user_id = ?", input.CartID, userID).Take(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart item not found or does not belong to this user"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			}
			return
		}

		item.Quantity = input.Quantity
		if input.ShippingCost != nil {
			item.ShippingCost = *input.ShippingCost
		}
		if input.ShippingAddress != nil {
			item.ShippingAddress = *input.ShippingAddress
		}
		item.UpdatedAt = time.Now()

		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart item updated successfully"})
	}
}

// DELETE /cart/clear
// Idempotent: clearing an empty cart succeeds with zero rows removed.
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		result := db.Where("user_id = ?", userID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"message":       "Cart cleared",
			"items_removed": result.RowsAffected,
		})
	}
}
