package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/talibjameel/gemStore-backend/models"
)

// GET /products/export
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Name", "Description", "Price", "CategoryID",
			"ProductsCategory", "IsFeatured", "IsRecommended", "TopCollection",
			"Image", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.CategoryID)
			row.AddCell().SetValue(p.ProductsCategory)
			row.AddCell().SetValue(p.IsFeatured)
			row.AddCell().SetValue(p.IsRecommended)
			row.AddCell().SetValue(p.TopCollection)
			row.AddCell().SetValue(p.ProductImg)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
