package productControllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/talibjameel/gemStore-backend/models"
	"github.com/talibjameel/gemStore-backend/storage"
)

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":  "Products fetched successfully ✅",
			"products": products,
		})
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /products/category/:id
// Returns the category's products together with its banners; 404 only when
// both are empty.
func GetProductsByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}

		var products []models.Product
		if err := db.Where("category_id = ?", categoryID).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		var banners []models.Banner
		if err := db.Where("category_id = ?", categoryID).Find(&banners).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banners"})
			return
		}

		if len(products) == 0 && len(banners) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "No products or banners found for this category ❌"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "Data fetched successfully ✅",
			"banners":  banners,
			"products": products,
		})
	}
}

// GET /products/featured, /products/recommended, /products/topCollection
func GetFlaggedProducts(db *gorm.DB, column string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Where(column+" = ?", true).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":  "Products fetched successfully ✅",
			"products": products,
		})
	}
}

// GET /subcategories/:name
func GetSubcategoryProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		var products []models.Product
		if err := db.Where("products_category = ?", name).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":  "Products fetched successfully ✅",
			"products": products,
		})
	}
}

// POST /products (multipart/form-data)
// Uploads the product image to the bucket and stores the returned URL.
func CreateProduct(db *gorm.DB, bucket *storage.Bucket) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		if name == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		var categoryID uint
		if cidStr := c.PostForm("category_id"); cidStr != "" {
			cid, err := strconv.ParseUint(cidStr, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			categoryID = uint(cid)
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
			return
		}
		defer file.Close()

		body, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
			return
		}

		key := fmt.Sprintf("Products/%d-%s", time.Now().UnixMilli(),
			strings.ReplaceAll(fileHeader.Filename, " ", "_"))
		imageURL, err := bucket.Put(c.Request.Context(), key, body, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}

		product := models.Product{
			Name:             name,
			Description:      c.PostForm("description"),
			Price:            price,
			ProductImg:       imageURL,
			CategoryID:       categoryID,
			ProductsCategory: c.PostForm("products_category"),
			IsFeatured:       c.PostForm("is_featured") == "true",
			IsRecommended:    c.PostForm("is_recommended") == "true",
			TopCollection:    c.PostForm("top_collection") == "true",
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "✅ Product created successfully",
			"product": product,
		})
	}
}

// DELETE /products/:id
// Removes the catalog row and its bucket image.
func DeleteProduct(db *gorm.DB, bucket *storage.Bucket) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			}
			return
		}

		if product.ProductImg != "" {
			if err := bucket.Delete(c.Request.Context(), bucket.KeyFromURL(product.ProductImg)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product image"})
				return
			}
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
