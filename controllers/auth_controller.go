package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agenda-api/models"
	"agenda-api/services"
	"agenda-api/utils"
)

type AuthController struct {
	db           *gorm.DB
	jwtSecret    string
	emailService *services.EmailService
}

// NewAuthController builds the auth handlers. emailService may be nil when
// no SMTP server is configured; the welcome email is skipped then.
func NewAuthController(db *gorm.DB, jwtSecret string, emailService *services.EmailService) *AuthController {
	return &AuthController{
		db:           db,
		jwtSecret:    jwtSecret,
		emailService: emailService,
	}
}

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,min=2,max=50"`
	LastName  string `json:"last_name" binding:"required,min=2,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    models.User `json:"user"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !utils.IsValidPassword(req.Password) {
		utils.SendValidationError(c, "Password must contain a lowercase letter, an uppercase letter and a digit")
		return
	}

	// Duplicate email is a conflict, not a validation failure
	var existingUser models.User
	if err := ac.db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "An account with this email already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user := models.User{
		ID:                 uuid.New().String(),
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		Password:           string(hashedPassword),
		Active:             true,
		LastLogin:          time.Now(),
		ProfileVisibility:  models.VisibilityFriends,
		CalendarVisibility: models.VisibilityPrivate,
	}

	if err := ac.db.Create(&user).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := ac.generateJWT(user.ID, user.Email)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if ac.emailService != nil {
		go func(email, name string) {
			if err := ac.emailService.SendWelcomeEmail(email, name); err != nil {
				fmt.Printf("Failed to send welcome email to %s: %v\n", email, err)
			}
		}(user.Email, user.FirstName)
	}

	user.Password = ""
	c.JSON(http.StatusCreated, AuthResponse{
		Message: "Account created successfully",
		Token:   token,
		User:    user,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !user.Active {
		utils.SendError(c, http.StatusUnauthorized, "Account disabled")
		return
	}

	ac.db.Model(&user).Update("last_login", time.Now())

	token, err := ac.generateJWT(user.ID, user.Email)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateProfileRequest struct {
	FirstName          *string            `json:"first_name" binding:"omitempty,min=2,max=50"`
	LastName           *string            `json:"last_name" binding:"omitempty,min=2,max=50"`
	Bio                *string            `json:"bio" binding:"omitempty,max=200"`
	Photo              *string            `json:"photo"`
	ProfileVisibility  *models.Visibility `json:"profile_visibility"`
	CalendarVisibility *models.Visibility `json:"calendar_visibility"`
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Photo != nil {
		updates["photo"] = *req.Photo
	}
	if req.ProfileVisibility != nil {
		if !req.ProfileVisibility.Valid() {
			utils.SendValidationError(c, "Invalid profile visibility")
			return
		}
		updates["profile_visibility"] = *req.ProfileVisibility
	}
	if req.CalendarVisibility != nil {
		if !req.CalendarVisibility.Valid() {
			utils.SendValidationError(c, "Invalid calendar visibility")
			return
		}
		updates["calendar_visibility"] = *req.CalendarVisibility
	}

	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	if len(updates) > 0 {
		if err := ac.db.Model(&user).Updates(updates).Error; err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to update profile")
			return
		}
	}

	user.Password = ""
	utils.SendSuccess(c, "Profile updated successfully", user)
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func (ac *AuthController) ChangePassword(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !utils.IsValidPassword(req.NewPassword) {
		utils.SendValidationError(c, "Password must contain a lowercase letter, an uppercase letter and a digit")
		return
	}

	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		utils.SendValidationError(c, "Old password is incorrect")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to change password")
		return
	}

	if err := ac.db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to change password")
		return
	}

	utils.SendSuccess(c, "Password changed successfully", nil)
}

// VerifyToken confirms the presented bearer token; the auth middleware has
// already rejected invalid tokens before this handler runs.
func (ac *AuthController) VerifyToken(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{"valid": true, "user": user})
}

func (ac *AuthController) generateJWT(userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ac.jwtSecret))
}
