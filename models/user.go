package models

import "time"

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	FirstName string    `json:"first_name" gorm:"not null;size:50"`
	LastName  string    `json:"last_name" gorm:"not null;size:50"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password  string    `json:"-" gorm:"not null;size:255"`
	Photo     *string   `json:"photo" gorm:"size:500"`
	Bio       string    `json:"bio" gorm:"size:200"`
	Active    bool      `json:"active" gorm:"default:true"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Visibility preferences
	ProfileVisibility  Visibility `json:"profile_visibility" gorm:"not null;default:'friends';size:20"`
	CalendarVisibility Visibility `json:"calendar_visibility" gorm:"not null;default:'private';size:20"`

	// Relationships
	Events []Event `json:"events,omitempty" gorm:"foreignKey:OwnerID"`
}

// FullName returns the display name used in notification messages.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// PublicProfile is the subset of a user visible to other accounts.
type PublicProfile struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email,omitempty"`
	Photo     *string `json:"photo"`
	Bio       string  `json:"bio,omitempty"`
}

func (u *User) ToPublicProfile() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Photo:     u.Photo,
		Bio:       u.Bio,
	}
}

type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
	FriendRequestStatusDeclined FriendRequestStatus = "declined"
)

type FriendRequest struct {
	ID         uint                `json:"id" gorm:"primaryKey"`
	SenderID   string              `json:"sender_id" gorm:"not null;size:191;index"`
	ReceiverID string              `json:"receiver_id" gorm:"not null;size:191;index"`
	Status     FriendRequestStatus `json:"status" gorm:"not null;default:'pending';size:20"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`

	Sender   User `json:"sender" gorm:"foreignKey:SenderID"`
	Receiver User `json:"receiver" gorm:"foreignKey:ReceiverID"`
}

// Friendship is a single symmetric row per pair. User1ID < User2ID always,
// so the relation cannot drift one-directional.
type Friendship struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	User1ID   string    `json:"user1_id" gorm:"not null;size:191;index"`
	User2ID   string    `json:"user2_id" gorm:"not null;size:191;index"`
	CreatedAt time.Time `json:"created_at"`

	User1 User `json:"user1" gorm:"foreignKey:User1ID"`
	User2 User `json:"user2" gorm:"foreignKey:User2ID"`
}

// OrderedPair returns the two user IDs in canonical storage order.
func OrderedPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
