package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"agenda-api/models"
	"agenda-api/repositories"
	"agenda-api/utils"
)

type FriendController struct {
	db                     *gorm.DB
	friendRepo             repositories.FriendRepository
	notificationController *NotificationController
}

func NewFriendController(db *gorm.DB, friendRepo repositories.FriendRepository, notificationController *NotificationController) *FriendController {
	return &FriendController{
		db:                     db,
		friendRepo:             friendRepo,
		notificationController: notificationController,
	}
}

func (fc *FriendController) SendFriendRequest(c *gin.Context) {
	senderID := c.GetString("user_id")
	receiverID := c.Param("id")

	if senderID == receiverID {
		utils.SendValidationError(c, "Cannot send a friend request to yourself")
		return
	}

	var receiver models.User
	if err := fc.db.First(&receiver, "id = ?", receiverID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	areFriends, err := fc.friendRepo.AreFriends(senderID, receiverID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to send friend request")
		return
	}
	if areFriends {
		utils.SendError(c, http.StatusConflict, "Already friends with this user")
		return
	}

	// A pending request in either direction blocks a new one
	pending, err := fc.friendRepo.PendingBetween(senderID, receiverID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to send friend request")
		return
	}
	if pending != nil {
		utils.SendError(c, http.StatusConflict, "A friend request is already pending")
		return
	}

	request, err := fc.friendRepo.CreateRequest(senderID, receiverID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to send friend request")
		return
	}

	var sender models.User
	if err := fc.db.First(&sender, "id = ?", senderID).Error; err == nil {
		if err := fc.notificationController.CreateFriendRequestNotification(&sender, receiverID); err != nil {
			fmt.Printf("Failed to create friend request notification: %v\n", err)
		}
	}

	utils.SendCreated(c, "Friend request sent successfully", request)
}

type RespondFriendRequestRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// RespondToFriendRequest accepts or declines a pending request addressed to
// the caller. Accepting makes the relationship symmetric and notifies the
// sender; either way the pending entry is settled.
func (fc *FriendController) RespondToFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	requestIDStr := c.Param("id")

	requestID, err := strconv.ParseUint(requestIDStr, 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid request ID")
		return
	}

	var req RespondFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	request, err := fc.friendRepo.PendingForReceiver(uint(requestID), userID)
	if err != nil {
		utils.SendError(c, http.StatusNotFound, "Friend request not found")
		return
	}

	if !*req.Accept {
		if err := fc.friendRepo.DeclineRequest(request); err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to decline friend request")
			return
		}
		utils.SendSuccess(c, "Friend request declined", nil)
		return
	}

	if err := fc.friendRepo.AcceptRequest(request); err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to accept friend request")
		return
	}

	var receiver models.User
	if err := fc.db.First(&receiver, "id = ?", userID).Error; err == nil {
		if err := fc.notificationController.CreateFriendAcceptedNotification(&receiver, request.SenderID); err != nil {
			fmt.Printf("Failed to create friend accepted notification: %v\n", err)
		}
	}

	utils.SendSuccess(c, "Friend request accepted", nil)
}

func (fc *FriendController) GetFriendRequests(c *gin.Context) {
	userID := c.GetString("user_id")

	received, err := fc.friendRepo.PendingRequests(userID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch friend requests")
		return
	}
	sent, err := fc.friendRepo.SentRequests(userID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch friend requests")
		return
	}

	for i := range received {
		received[i].Sender.Password = ""
	}
	for i := range sent {
		sent[i].Receiver.Password = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"received": received,
		"sent":     sent,
	})
}

func (fc *FriendController) GetFriends(c *gin.Context) {
	userID := c.GetString("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	friends, total, err := fc.friendRepo.Friends(userID, (page-1)*limit, limit)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch friends")
		return
	}

	for i := range friends {
		friends[i].Password = ""
	}

	utils.SendPaginated(c, gin.H{"friends": friends}, page, limit, total)
}

func (fc *FriendController) RemoveFriend(c *gin.Context) {
	userID := c.GetString("user_id")
	friendID := c.Param("id")

	if userID == friendID {
		utils.SendValidationError(c, "Invalid operation")
		return
	}

	if err := fc.friendRepo.RemoveFriendship(userID, friendID); err != nil {
		utils.SendError(c, http.StatusNotFound, "Friendship not found")
		return
	}

	utils.SendSuccess(c, "Friend removed successfully", nil)
}
