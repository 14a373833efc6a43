package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	bannerControllers "github.com/talibjameel/gemStore-backend/controllers/banner"
	categoryControllers "github.com/talibjameel/gemStore-backend/controllers/category"
	productControllers "github.com/talibjameel/gemStore-backend/controllers/product"
	"github.com/talibjameel/gemStore-backend/storage"
)

// SetupCatalogRoutes registers product, category and banner endpoints.
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, bucket *storage.Bucket) {
	// Products
	rg.GET("/products", productControllers.GetProducts(db))
	rg.GET("/products/featured", productControllers.GetFlaggedProducts(db, "is_featured"))
	rg.GET("/products/recommended", productControllers.GetFlaggedProducts(db, "is_recommended"))
	rg.GET("/products/topCollection", productControllers.GetFlaggedProducts(db, "top_collection"))
	rg.GET("/products/export", productControllers.ExportProductsToExcel(db))
	rg.GET("/products/category/:id", productControllers.GetProductsByCategory(db))
	rg.GET("/products/:id", productControllers.GetProductByID(db))
	rg.POST("/products", productControllers.CreateProduct(db, bucket))
	rg.DELETE("/products/:id", productControllers.DeleteProduct(db, bucket))
	rg.GET("/subcategories/:name", productControllers.GetSubcategoryProducts(db))

	// Categories
	rg.GET("/categories", categoryControllers.GetCategories(db))
	rg.GET("/categories/:id", categoryControllers.GetCategoryByID(db))

	// Banners
	rg.GET("/allbanners", bannerControllers.GetBanners(db))
	rg.POST("/addnewbanner", bannerControllers.CreateBanner(db, bucket))
	rg.GET("/banner/:id", bannerControllers.GetBannerByID(db))
	rg.DELETE("/deletebanner/:id", bannerControllers.DeleteBanner(db, bucket))
}
