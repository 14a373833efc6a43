package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authControllers "github.com/talibjameel/gemStore-backend/controllers/auth"
	"github.com/talibjameel/gemStore-backend/token"
)

// SetupAuthRoutes registers signup/login and the password reset flow.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, tokenSvc *token.Service) {
	r.POST("/signup", authControllers.Signup(db, tokenSvc))
	r.POST("/login", authControllers.Login(db, tokenSvc))

	r.POST("/forgot-password", authControllers.ForgotPassword(db))
	r.POST("/verify-otp", authControllers.VerifyOTP(db))
	r.POST("/update-password", authControllers.UpdatePassword(db))
}
