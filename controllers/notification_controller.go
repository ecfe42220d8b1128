package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"agenda-api/models"
	"agenda-api/utils"
)

type NotificationController struct {
	db *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{db: db}
}

// GetNotifications gets paginated notifications for the current user
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	notificationType := c.Query("type")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := nc.db.Where("target_user_id = ?", userID)
	if notificationType != "" {
		query = query.Where("type = ?", notificationType)
	}

	var total int64
	query.Model(&models.Notification{}).Count(&total)

	var notifications []models.Notification
	if err := query.Preload("ActorUser").
		Preload("Event").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, notification.ToResponse())
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	c.JSON(http.StatusOK, models.PaginatedNotifications{
		Notifications: responses,
		Page:          page,
		Limit:         limit,
		Total:         total,
		HasMore:       page < totalPages,
		TotalPages:    totalPages,
	})
}

// GetNotificationStats gets notification statistics (unread count, etc.)
func (nc *NotificationController) GetNotificationStats(c *gin.Context) {
	userID := c.GetString("user_id")

	var unreadCount int64
	var totalCount int64

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ? AND is_read = ?", userID, false).
		Count(&unreadCount).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch notification stats")
		return
	}

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ?", userID).
		Count(&totalCount).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch notification stats")
		return
	}

	c.JSON(http.StatusOK, models.NotificationStats{
		UnreadCount: int(unreadCount),
		TotalCount:  int(totalCount),
	})
}

// MarkAsRead marks a notification as read
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	userID := c.GetString("user_id")
	notificationID := c.Param("id")

	var notification models.Notification
	if err := nc.db.Where("id = ? AND target_user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "Notification not found")
		} else {
			utils.SendError(c, http.StatusInternalServerError, "Failed to find notification")
		}
		return
	}

	if err := nc.db.Model(&notification).Update("is_read", true).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to mark notification as read")
		return
	}

	utils.SendSuccess(c, "Notification marked as read", nil)
}

// MarkAllAsRead marks all notifications as read for the current user
func (nc *NotificationController) MarkAllAsRead(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to mark notifications as read")
		return
	}

	utils.SendSuccess(c, "All notifications marked as read", nil)
}

// DeleteNotification deletes a notification
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	userID := c.GetString("user_id")
	notificationID := c.Param("id")

	var notification models.Notification
	if err := nc.db.Where("id = ? AND target_user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "Notification not found")
		} else {
			utils.SendError(c, http.StatusInternalServerError, "Failed to find notification")
		}
		return
	}

	if err := nc.db.Delete(&notification).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete notification")
		return
	}

	utils.SendSuccess(c, "Notification deleted successfully", nil)
}

// CreateNotification creates a new notification (internal use)
func (nc *NotificationController) CreateNotification(params models.CreateNotificationParams) error {
	// Never notify someone about their own action
	if params.ActorUserID == params.TargetUserID {
		return nil
	}

	notification := models.Notification{
		ID:           uuid.New().String(),
		Type:         params.Type,
		Message:      params.Message,
		ActorUserID:  params.ActorUserID,
		TargetUserID: params.TargetUserID,
		EventID:      params.EventID,
		IsRead:       false,
	}

	return nc.db.Create(&notification).Error
}

// Helper methods for creating specific notification types

func (nc *NotificationController) CreateFriendRequestNotification(actor *models.User, targetUserID string) error {
	return nc.CreateNotification(models.CreateNotificationParams{
		Type:         models.NotificationTypeFriendRequest,
		Message:      actor.FullName() + " sent you a friend request",
		ActorUserID:  actor.ID,
		TargetUserID: targetUserID,
	})
}

func (nc *NotificationController) CreateFriendAcceptedNotification(actor *models.User, targetUserID string) error {
	return nc.CreateNotification(models.CreateNotificationParams{
		Type:         models.NotificationTypeFriendAccepted,
		Message:      actor.FullName() + " accepted your friend request",
		ActorUserID:  actor.ID,
		TargetUserID: targetUserID,
	})
}

func (nc *NotificationController) CreateEventSharedNotification(actor *models.User, targetUserID string, event *models.Event) error {
	return nc.CreateNotification(models.CreateNotificationParams{
		Type:         models.NotificationTypeEventShared,
		Message:      actor.FullName() + " shared the event \"" + event.Title + "\" with you",
		ActorUserID:  actor.ID,
		TargetUserID: targetUserID,
		EventID:      &event.ID,
	})
}

func (nc *NotificationController) CreateCommentNotification(actor *models.User, targetUserID string, event *models.Event) error {
	return nc.CreateNotification(models.CreateNotificationParams{
		Type:         models.NotificationTypeComment,
		Message:      actor.FullName() + " commented on your event \"" + event.Title + "\"",
		ActorUserID:  actor.ID,
		TargetUserID: targetUserID,
		EventID:      &event.ID,
	})
}
