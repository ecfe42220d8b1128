package models

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationTypeFriendRequest  NotificationType = "friend_request"
	NotificationTypeFriendAccepted NotificationType = "friend_accepted"
	NotificationTypeEventShared    NotificationType = "event_shared"
	NotificationTypeComment        NotificationType = "comment"
	NotificationTypeReminder       NotificationType = "reminder"
)

type Notification struct {
	ID           string           `json:"id" gorm:"primaryKey;size:191"`
	Type         NotificationType `json:"type" gorm:"not null;size:50"`
	Message      string           `json:"message" gorm:"not null;size:500"`
	ActorUserID  string           `json:"actor_user_id" gorm:"size:191"`            // Who performed the action
	TargetUserID string           `json:"target_user_id" gorm:"not null;size:191;index"` // Who receives the notification
	EventID      *string          `json:"event_id" gorm:"size:191"`                 // Optional: related event
	IsRead       bool             `json:"is_read" gorm:"default:false"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	// Relationships
	ActorUser  User   `json:"actor_user" gorm:"foreignKey:ActorUserID"`
	TargetUser User   `json:"target_user" gorm:"foreignKey:TargetUserID"`
	Event      *Event `json:"event,omitempty" gorm:"foreignKey:EventID"`
}

// NotificationResponse represents the API response for notifications
type NotificationResponse struct {
	ID        string             `json:"id"`
	Type      NotificationType   `json:"type"`
	Message   string             `json:"message"`
	ActorUser *NotificationUser  `json:"actor_user,omitempty"`
	Event     *NotificationEvent `json:"event,omitempty"`
	IsRead    bool               `json:"is_read"`
	CreatedAt time.Time          `json:"created_at"`
	TimeAgo   string             `json:"time_ago"`
}

type NotificationUser struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Photo     *string `json:"photo"`
}

type NotificationEvent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NotificationStats represents notification statistics
type NotificationStats struct {
	UnreadCount int `json:"unread_count"`
	TotalCount  int `json:"total_count"`
}

// PaginatedNotifications represents paginated notification response
type PaginatedNotifications struct {
	Notifications []NotificationResponse `json:"notifications"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	Total         int64                  `json:"total"`
	HasMore       bool                   `json:"has_more"`
	TotalPages    int                    `json:"total_pages"`
}

// CreateNotificationParams for creating new notifications
type CreateNotificationParams struct {
	Type         NotificationType `json:"type"`
	Message      string           `json:"message"`
	ActorUserID  string           `json:"actor_user_id"`
	TargetUserID string           `json:"target_user_id"`
	EventID      *string          `json:"event_id,omitempty"`
}

// GetTimeAgo returns a human-readable time difference
func (n *Notification) GetTimeAgo() string {
	now := time.Now()
	diff := now.Sub(n.CreatedAt)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		minutes := int(diff.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		weeks := int(diff.Hours() / (24 * 7))
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	}
}

// ToResponse converts Notification to NotificationResponse
func (n *Notification) ToResponse() NotificationResponse {
	response := NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
		TimeAgo:   n.GetTimeAgo(),
	}

	if n.ActorUserID != "" {
		response.ActorUser = &NotificationUser{
			ID:        n.ActorUser.ID,
			FirstName: n.ActorUser.FirstName,
			LastName:  n.ActorUser.LastName,
			Photo:     n.ActorUser.Photo,
		}
	}

	if n.Event != nil {
		response.Event = &NotificationEvent{
			ID:    n.Event.ID,
			Title: n.Event.Title,
		}
	}

	return response
}
