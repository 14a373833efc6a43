package categoryControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/talibjameel/gemStore-backend/models"
)

// GET /categories
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":    "Categories fetched successfully ✅",
			"categories": categories,
		})
	}
}

// GET /categories/:id
// The category together with its products.
func GetCategoryByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}

		var category models.Category
		if err := db.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Category not found ❌"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
			}
			return
		}

		var products []models.Product
		if err := db.Where("category_id = ?", category.ID).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "Category and its products fetched successfully ✅",
			"category": category,
			"products": products,
		})
	}
}
