package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"agenda-api/models"
)

// FriendRepository hides friendship storage from the handlers. Controllers
// and the visibility checks only ever talk to this interface, never to
// shared mutable state.
type FriendRepository interface {
	AreFriends(user1ID, user2ID string) (bool, error)
	FriendIDs(userID string) ([]string, error)
	Friends(userID string, offset, limit int) ([]models.User, int64, error)
	RemoveFriendship(user1ID, user2ID string) error

	PendingBetween(user1ID, user2ID string) (*models.FriendRequest, error)
	CreateRequest(senderID, receiverID string) (*models.FriendRequest, error)
	PendingForReceiver(requestID uint, receiverID string) (*models.FriendRequest, error)
	PendingRequests(receiverID string) ([]models.FriendRequest, error)
	SentRequests(senderID string) ([]models.FriendRequest, error)
	AcceptRequest(request *models.FriendRequest) error
	DeclineRequest(request *models.FriendRequest) error
}

type friendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) AreFriends(user1ID, user2ID string) (bool, error) {
	user1ID, user2ID = models.OrderedPair(user1ID, user2ID)

	var friendship models.Friendship
	err := r.db.Where("user1_id = ? AND user2_id = ?", user1ID, user2ID).First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *friendRepository) FriendIDs(userID string) ([]string, error) {
	var friendships []models.Friendship
	if err := r.db.Where("user1_id = ? OR user2_id = ?", userID, userID).Find(&friendships).Error; err != nil {
		return nil, err
	}

	friendIDs := make([]string, 0, len(friendships))
	for _, friendship := range friendships {
		if friendship.User1ID == userID {
			friendIDs = append(friendIDs, friendship.User2ID)
		} else {
			friendIDs = append(friendIDs, friendship.User1ID)
		}
	}
	return friendIDs, nil
}

func (r *friendRepository) Friends(userID string, offset, limit int) ([]models.User, int64, error) {
	friendIDs, err := r.FriendIDs(userID)
	if err != nil {
		return nil, 0, err
	}
	if len(friendIDs) == 0 {
		return []models.User{}, 0, nil
	}

	var total int64
	if err := r.db.Model(&models.User{}).Where("id IN ?", friendIDs).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var friends []models.User
	if err := r.db.Where("id IN ?", friendIDs).
		Order("last_name ASC, first_name ASC").
		Offset(offset).Limit(limit).
		Find(&friends).Error; err != nil {
		return nil, 0, err
	}
	return friends, total, nil
}

func (r *friendRepository) RemoveFriendship(user1ID, user2ID string) error {
	user1ID, user2ID = models.OrderedPair(user1ID, user2ID)

	var friendship models.Friendship
	if err := r.db.Where("user1_id = ? AND user2_id = ?", user1ID, user2ID).First(&friendship).Error; err != nil {
		return err
	}
	return r.db.Delete(&friendship).Error
}

// PendingBetween finds a pending request in either direction between two users.
func (r *friendRepository) PendingBetween(user1ID, user2ID string) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.db.Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
		user1ID, user2ID, user2ID, user1ID, models.FriendRequestStatusPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *friendRepository) CreateRequest(senderID, receiverID string) (*models.FriendRequest, error) {
	request := models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.FriendRequestStatusPending,
	}
	if err := r.db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *friendRepository) PendingForReceiver(requestID uint, receiverID string) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.db.Preload("Sender").
		First(&request, "id = ? AND receiver_id = ? AND status = ?",
			requestID, receiverID, models.FriendRequestStatusPending).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *friendRepository) PendingRequests(receiverID string) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.Preload("Sender").
		Where("receiver_id = ? AND status = ?", receiverID, models.FriendRequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *friendRepository) SentRequests(senderID string) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.Preload("Receiver").
		Where("sender_id = ? AND status = ?", senderID, models.FriendRequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// AcceptRequest settles the request and creates the symmetric friendship
// row in one transaction, so a partial failure can never leave one side
// believing the pair are friends.
func (r *friendRepository) AcceptRequest(request *models.FriendRequest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		request.Status = models.FriendRequestStatusAccepted
		request.UpdatedAt = time.Now()
		if err := tx.Save(request).Error; err != nil {
			return err
		}

		user1ID, user2ID := models.OrderedPair(request.SenderID, request.ReceiverID)
		friendship := models.Friendship{
			User1ID: user1ID,
			User2ID: user2ID,
		}
		return tx.Create(&friendship).Error
	})
}

func (r *friendRepository) DeclineRequest(request *models.FriendRequest) error {
	request.Status = models.FriendRequestStatusDeclined
	return r.db.Save(request).Error
}
