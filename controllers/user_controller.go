package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"agenda-api/models"
	"agenda-api/repositories"
	"agenda-api/utils"
)

type UserController struct {
	db         *gorm.DB
	friendRepo repositories.FriendRepository
}

func NewUserController(db *gorm.DB, friendRepo repositories.FriendRepository) *UserController {
	return &UserController{db: db, friendRepo: friendRepo}
}

// SearchUsers finds accounts by name or email fragment, excluding the caller.
func (uc *UserController) SearchUsers(c *gin.Context) {
	userID := c.GetString("user_id")
	query := strings.TrimSpace(c.Query("q"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 50 {
		limit = 20
	}

	if len(query) < 2 {
		utils.SendValidationError(c, "Search query must be at least 2 characters")
		return
	}

	pattern := "%" + query + "%"
	var users []models.User
	if err := uc.db.Where("id <> ? AND active = ?", userID, true).
		Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", pattern, pattern, pattern).
		Order("last_name ASC, first_name ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to search users")
		return
	}

	results := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		results = append(results, users[i].ToPublicProfile())
	}

	c.JSON(http.StatusOK, gin.H{"users": results})
}

// GetUser returns another account's profile, subject to the owner's profile
// visibility tier: public is open, friends requires friendship, private is
// owner-only.
func (uc *UserController) GetUser(c *gin.Context) {
	viewerID := c.GetString("user_id")
	targetID := c.Param("id")

	var user models.User
	if err := uc.db.First(&user, "id = ? AND active = ?", targetID, true).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	if viewerID == targetID {
		user.Password = ""
		c.JSON(http.StatusOK, gin.H{"user": user})
		return
	}

	areFriends, err := uc.friendRepo.AreFriends(viewerID, targetID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	switch user.ProfileVisibility {
	case models.VisibilityPublic:
		// anyone may view
	case models.VisibilityFriends:
		if !areFriends {
			utils.SendError(c, http.StatusForbidden, "This profile is only visible to friends")
			return
		}
	default:
		utils.SendError(c, http.StatusForbidden, "This profile is private")
		return
	}

	profile := user.ToPublicProfile()
	if !areFriends {
		// Contact details stay between friends
		profile.Email = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      profile,
		"is_friend": areFriends,
	})
}
