package bannerControllers

import (
	"encoding/json"
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

// GET /allbanners
func GetBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []models.Banner
		if err := db.Find(&banners).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get banners"})
			return
		}
		c.JSON(http.StatusOK, banners)
	}
}

// GET /banner/:id
func GetBannerByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid banner ID"})
			return
		}

		var banner models.Banner
		if err := db.First(&banner, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			}
			return
		}
		c.JSON(http.StatusOK, banner)
	}
}

// POST /addnewbanner (multipart/form-data, up to 5 images)
// Every image goes to the bucket; the stored banner keeps the URL list as a
// JSON array.
func CreateBanner(db *gorm.DB, bucket *storage.Bucket) gin.HandlerFunc {
	return func(c *gin.Context) {
		title := c.PostForm("title")
		position := c.PostForm("position")
		categoryIDStr := c.PostForm("category_id")
		if title == "" || position == "" || categoryIDStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title, position, category_id, and at least one image are required"})
			return
		}
		categoryID, err := strconv.ParseUint(categoryIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}

		form, err := c.MultipartForm()
		if err != nil || len(form.File["images"]) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title, position, category_id, and at least one image are required"})
			return
		}
		images := form.File["images"]
		if len(images) > 5 {
			images = images[:5]
		}

		var imageURLs []string
		for _, fileHeader := range images {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
				return
			}
			body, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
				return
			}

			key := fmt.Sprintf("Banner/%d-%s", time.Now().UnixMilli(),
				strings.ReplaceAll(fileHeader.Filename, " ", "_"))
			url, err := bucket.Put(c.Request.Context(), key, body, fileHeader.Header.Get("Content-Type"))
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
				return
			}
			imageURLs = append(imageURLs, url)
		}

		urlsJSON, err := json.Marshal(imageURLs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		banner := models.Banner{
			Title:       title,
			Description: c.PostForm("description"),
			Position:    position,
			CategoryID:  uint(categoryID),
			BannerImg:   string(urlsJSON),
		}
		if err := db.Create(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create banner"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "✅ Banner created successfully",
			"banner":  banner,
		})
	}
}

// DELETE /deletebanner/:id
// Deletes the bucket objects first, then the row.
func DeleteBanner(db *gorm.DB, bucket *storage.Bucket) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid banner ID"})
			return
		}

		var banner models.Banner
		if err := db.First(&banner, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			}
			return
		}

		var imageURLs []string
		if banner.BannerImg != "" {
			if err := json.Unmarshal([]byte(banner.BannerImg), &imageURLs); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid banner image data"})
				return
			}
		}

		for _, url := range imageURLs {
			if err := bucket.Delete(c.Request.Context(), bucket.KeyFromURL(url)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner images"})
				return
			}
		}

		if err := db.Delete(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete from database"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":         "Banner deleted successfully",
			"deletedBannerId": banner.ID,
		})
	}
}
