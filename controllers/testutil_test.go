package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agenda-api/models"
	"agenda-api/routes"
)

const testJWTSecret = "test-secret"

// setupTestServer wires the full router against an in-memory database, so
// the tests exercise the same middleware chain and handlers as production.
func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
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
		t.Fatalf("failed to migrate test database: %v", err)
	}

	// No mail service in tests; the welcome email is skipped.
	router := gin.New()
	routes.SetupRoutes(router, db, testJWTSecret, nil)
	return router, db
}

// createAccount inserts an active user directly. MinCost keeps the suite fast;
// the password for every fixture account is "Password1".
func createAccount(t *testing.T, db *gorm.DB, firstName, lastName, email string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		ID:                 uuid.New().String(),
		FirstName:          firstName,
		LastName:           lastName,
		Email:              email,
		Password:           string(hashed),
		Active:             true,
		ProfileVisibility:  models.VisibilityFriends,
		CalendarVisibility: models.VisibilityPrivate,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func makeFriends(t *testing.T, db *gorm.DB, a, b *models.User) {
	t.Helper()

	user1, user2 := models.OrderedPair(a.ID, b.ID)
	if err := db.Create(&models.Friendship{User1ID: user1, User2ID: user2}).Error; err != nil {
		t.Fatalf("failed to create friendship: %v", err)
	}
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func countNotifications(t *testing.T, db *gorm.DB, targetUserID string, notificationType models.NotificationType) int64 {
	t.Helper()

	var count int64
	err := db.Model(&models.Notification{}).
		Where("target_user_id = ? AND type = ?", targetUserID, notificationType).
		Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	return count
}
