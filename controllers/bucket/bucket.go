package bucketControllers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talibjameel/gemStore-backend/storage"
)

// POST /upload (multipart/form-data, single "file" field)
func UploadFile(bucket *storage.Bucket) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
			return
		}
		defer file.Close()

		body, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
			return
		}

		key := fmt.Sprintf("%d-%s", time.Now().UnixMilli(),
			strings.ReplaceAll(fileHeader.Filename, " ", "_"))
		url, err := bucket.Put(c.Request.Context(), key, body, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "✅ File uploaded successfully", "url": url})
	}
}

// DELETE /delete/:key
func DeleteFile(bucket *storage.Bucket) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := bucket.Delete(c.Request.Context(), c.Param("key")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "🗑️ File deleted successfully"})
	}
}

// GET /files
func ListFiles(bucket *storage.Bucket) gin.HandlerFunc {
	return func(c *gin.Context) {
		files, err := bucket.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, files)
	}
}
