package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/talibjameel/gemStore-backend/middleware"
	"github.com/talibjameel/gemStore-backend/storage"
	"github.com/talibjameel/gemStore-backend/token"
)

// SetupRoutes is the single entry-point that wires up every route group.
// Everything except the auth routes sits behind the token middleware.
func SetupRoutes(r *gin.Engine, db *gorm.DB, tokenSvc *token.Service, bucket *storage.Bucket) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, tokenSvc)

	// Protected routes (JWT)
	protected := r.Group("/")
	protected.Use(middleware.RequireAuth(tokenSvc))
	{
		SetupCartRoutes(protected, db)
		SetupOrderRoutes(protected, db)
		SetupCatalogRoutes(protected, db, bucket)
		SetupBucketRoutes(protected, bucket)
	}
}
