package database

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agenda-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Event{},
		&models.EventParticipant{},
		&models.EventReminder{},
		&models.EventComment{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

func addDatabaseConstraints(db *gorm.DB) error {
	// Prevent duplicate friendship rows for the same ordered pair
	if err := db.Exec("ALTER TABLE friendships ADD CONSTRAINT uk_friendships_pair UNIQUE (user1_id, user2_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add unique constraint for friendships: %v\n", err)
	}

	// Prevent duplicate participant entries for the same event
	if err := db.Exec("ALTER TABLE event_participants ADD CONSTRAINT uk_event_participants_event_user UNIQUE (event_id, user_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add unique constraint for event_participants: %v\n", err)
	}

	return nil
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("Demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	testUsers := []models.User{
		{
			ID:                 "user-1",
			FirstName:          "Jean",
			LastName:           "Dupont",
			Email:              "jean.dupont@example.com",
			Password:           string(hashed),
			Active:             true,
			LastLogin:          time.Now(),
			ProfileVisibility:  models.VisibilityFriends,
			CalendarVisibility: models.VisibilityPrivate,
		},
		{
			ID:                 "user-2",
			FirstName:          "Marie",
			LastName:           "Martin",
			Email:              "marie.martin@example.com",
			Password:           string(hashed),
			Active:             true,
			LastLogin:          time.Now(),
			ProfileVisibility:  models.VisibilityPublic,
			CalendarVisibility: models.VisibilityFriends,
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.Email, err)
		}
	}

	demoEvent := models.Event{
		ID:          "event-1",
		Title:       "Team standup",
		Description: "Weekly sync",
		StartTime:   time.Now().Add(24 * time.Hour),
		EndTime:     time.Now().Add(25 * time.Hour),
		Category:    models.CategoryWork,
		Color:       "#3498db",
		Visibility:  models.VisibilityFriends,
		OwnerID:     "user-1",
		Tags:        models.StringSlice{"work", "weekly"},

		RecurrenceType:     models.RecurrenceWeekly,
		RecurrenceInterval: 1,
	}
	if err := db.Create(&demoEvent).Error; err != nil {
		fmt.Printf("Warning: Could not create test event: %v\n", err)
	}

	fmt.Println("Database seeded with test data")
	return nil
}
