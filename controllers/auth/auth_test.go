package authControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/talibjameel/gemStore-backend/models"
	"github.com/talibjameel/gemStore-backend/token"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func setupAuthRouter(db *gorm.DB) (*gin.Engine, *token.Service) {
	gin.SetMode(gin.TestMode)
	tokenSvc := token.NewService("test-secret", time.Hour)
	r := gin.New()
	r.POST("/signup", Signup(db, tokenSvc))
	r.POST("/login", Login(db, tokenSvc))
	r.POST("/forgot-password", ForgotPassword(db))
	r.POST("/verify-otp", VerifyOTP(db))
	r.POST("/update-password", UpdatePassword(db))
	return r, tokenSvc
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSignupAndLogin(t *testing.T) {
	db := setupTestDB(t)
	r, tokenSvc := setupAuthRouter(db)

	w := postJSON(r, "/signup",
		`{"name":"X","email":"a@b.com","password":"pw1","confirm_password":"pw1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var signupResp struct {
		JWTToken string `json:"jwt_token"`
		User     struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signupResp))
	require.NotEmpty(t, signupResp.JWTToken)
	assert.Equal(t, "a@b.com", signupResp.User.Email)

	// the issued token carries the user identity
	claims, err := tokenSvc.Verify(signupResp.JWTToken)
	require.NoError(t, err)
	assert.Equal(t, signupResp.User.ID, claims.UserID)

	// correct password logs in
	w = postJSON(r, "/login", `{"email":"a@b.com","password":"pw1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jwt_token")

	// wrong password is rejected without a token
	w = postJSON(r, "/login", `{"email":"a@b.com","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "jwt_token")
}

func TestSignup_PasswordMismatch(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupAuthRouter(db)

	w := postJSON(r, "/signup",
		`{"name":"X","email":"a@b.com","password":"pw1","confirm_password":"pw2"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match")
}

func TestSignup_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupAuthRouter(db)

	body := `{"name":"X","email":"a@b.com","password":"pw1","confirm_password":"pw1"}`
	require.Equal(t, http.StatusCreated, postJSON(r, "/signup", body).Code)

	w := postJSON(r, "/signup", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")
}

func TestLogin_UnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupAuthRouter(db)

	w := postJSON(r, "/login", `{"email":"nobody@b.com","password":"pw1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestPasswordResetFlow(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupAuthRouter(db)

	body := `{"name":"X","email":"a@b.com","password":"pw1","confirm_password":"pw1"}`
	require.Equal(t, http.StatusCreated, postJSON(r, "/signup", body).Code)

	w := postJSON(r, "/forgot-password", `{"email":"a@b.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OTP string `json:"otp"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), resp.OTP)

	// the code is stored on this user with an expiry
	var user models.User
	require.NoError(t, db.Where("email = ?", "a@b.com").First(&user).Error)
	assert.Equal(t, resp.OTP, user.OTP)
	require.NotNil(t, user.OTPExpiresAt)
	assert.True(t, user.OTPExpiresAt.After(time.Now()))

	// wrong code is rejected, the right one verifies
	w = postJSON(r, "/verify-otp", `{"email":"a@b.com","otp":"000000"}`)
	if resp.OTP != "000000" {
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	w = postJSON(r, "/verify-otp", fmt.Sprintf(`{"email":"a@b.com","otp":"%s"}`, resp.OTP))
	assert.Equal(t, http.StatusOK, w.Code)

	// update the password, then only the new one works
	w = postJSON(r, "/update-password", `{"email":"a@b.com","new_password":"pw2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/login", `{"email":"a@b.com","password":"pw1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = postJSON(r, "/login", `{"email":"a@b.com","password":"pw2"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestForgotPassword_ExpiredOTP(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupAuthRouter(db)

	body := `{"name":"X","email":"a@b.com","password":"pw1","confirm_password":"pw1"}`
	require.Equal(t, http.StatusCreated, postJSON(r, "/signup", body).Code)
	require.Equal(t, http.StatusOK, postJSON(r, "/forgot-password", `{"email":"a@b.com"}`).Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "a@b.com").First(&user).Error)

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&user).Update("otp_expires_at", expired).Error)

	w := postJSON(r, "/verify-otp", fmt.Sprintf(`{"email":"a@b.com","otp":"%s"}`, user.OTP))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "OTP expired")
}

func TestForgotPassword_PerUserCodes(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupAuthRouter(db)

	for _, email := range []string{"a@b.com", "c@d.com"} {
		body := fmt.Sprintf(`{"name":"X","email":"%s","password":"pw1","confirm_password":"pw1"}`, email)
		require.Equal(t, http.StatusCreated, postJSON(r, "/signup", body).Code)
		require.Equal(t, http.StatusOK, postJSON(r, "/forgot-password", fmt.Sprintf(`{"email":"%s"}`, email)).Code)
	}

	var userA, userC models.User
	require.NoError(t, db.Where("email = ?", "a@b.com").First(&userA).Error)
	require.NoError(t, db.Where("email = ?", "c@d.com").First(&userC).Error)

	// one user's code must not verify for another
	w := postJSON(r, "/verify-otp", fmt.Sprintf(`{"email":"c@d.com","otp":"%s"}`, userA.OTP))
	if userA.OTP != userC.OTP {
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestForgotPassword_UnknownUser(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupAuthRouter(db)

	w := postJSON(r, "/forgot-password", `{"email":"nobody@b.com"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
