package authControllers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/talibjameel/gemStore-backend/models"
)

// How long a reset code stays valid.
const otpTTL = 10 * time.Minute

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required"`
}

type VerifyOTPInput struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type UpdatePasswordInput struct {
	Email       string `json:"email" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// POST /forgot-password
// Issues a fresh random 6-digit code per user with a 10-minute lifetime.
// The code is returned in the response because no mailer is wired up yet.
func ForgotPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ForgotPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		otp, err := generateOTP()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		expiresAt := time.Now().Add(otpTTL)
		if err := db.Model(&user).Updates(map[string]interface{}{
			"otp":            otp,
			"otp_expires_at": expiresAt,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store OTP"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "OTP sent successfully",
			"otp":     otp,
		})
	}
}

// POST /verify-otp
func VerifyOTP(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VerifyOTPInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		if user.OTP == "" || user.OTP != input.OTP {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
			return
		}
		if user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "OTP expired"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully!"})
	}
}

// POST /update-password
func UpdatePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdatePasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		// Invalidate the OTP along with the password change.
		if err := db.Model(&user).Updates(map[string]interface{}{
			"password":       string(hashed),
			"otp":            "",
			"otp_expires_at": nil,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully!"})
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
