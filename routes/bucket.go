package routes

import (
	"github.com/gin-gonic/gin"

	bucketControllers "github.com/talibjameel/gemStore-backend/controllers/bucket"
	"github.com/talibjameel/gemStore-backend/storage"
)

// SetupBucketRoutes registers the raw object-storage endpoints.
func SetupBucketRoutes(rg *gin.RouterGroup, bucket *storage.Bucket) {
	rg.POST("/upload", bucketControllers.UploadFile(bucket))
	rg.DELETE("/delete/:key", bucketControllers.DeleteFile(bucket))
	rg.GET("/files", bucketControllers.ListFiles(bucket))
}
