package authControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/talibjameel/gemStore-backend/models"
	"github.com/talibjameel/gemStore-backend/token"
)

type SignupInput struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// POST /signup
func Signup(db *gorm.DB, tokenSvc *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		if input.Password != input.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Passwords do not match"})
			return
		}

		var existing models.User
		err := db.Where("email = ?", input.Email).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		user := models.User{
			ID:        uuid.NewString(),
			Name:      input.Name,
			Email:     input.Email,
			Password:  string(hashed),
			CreatedAt: time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
			return
		}

		jwtToken, err := tokenSvc.Issue(user.ID, user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Token generation failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":   "Signup successful 🚀",
			"jwt_token": jwtToken,
			"user":      userResponse{ID: user.ID, Name: user.Name, Email: user.Email},
		})
	}
}

// POST /login
func Login(db *gorm.DB, tokenSvc *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			// Same message for unknown email and wrong password.
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password"})
			return
		}

		jwtToken, err := tokenSvc.Issue(user.ID, user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   "Login successful 🚀",
			"jwt_token": jwtToken,
			"user":      userResponse{ID: user.ID, Name: user.Name, Email: user.Email},
		})
	}
}
