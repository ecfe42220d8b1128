package controllers_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agenda-api/models"
)

func createEvent(t *testing.T, db *gorm.DB, owner *models.User, title string, visibility models.Visibility) *models.Event {
	t.Helper()

	event := &models.Event{
		ID:             uuid.New().String(),
		Title:          title,
		StartTime:      time.Date(2026, time.September, 10, 9, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2026, time.September, 10, 10, 0, 0, 0, time.UTC),
		Category:       models.CategoryPersonal,
		Visibility:     visibility,
		OwnerID:        owner.ID,
		RecurrenceType: models.RecurrenceNone,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	return event
}

func TestCreateEvent(t *testing.T) {
	router, db := setupTestServer(t)
	alice := createAccount(t, db, "Alice", "Durand", "alice@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/events", tokenFor(t, alice), map[string]interface{}{
		"title":      "Réunion d'équipe",
		"start_time": "2026-09-10T09:00:00Z",
		"end_time":   "2026-09-10T10:00:00Z",
		"reminders":  []map[string]interface{}{{"channel": "email", "lead_minutes": 30}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data models.Event `json:"data"`
	}
	decodeBody(t, w, &resp)

	// Unspecified fields fall back to the defaults.
	if resp.Data.Category != models.CategoryPersonal {
		t.Errorf("category = %q, want personal", resp.Data.Category)
	}
	if resp.Data.Visibility != models.VisibilityPrivate {
		t.Errorf("visibility = %q, want private", resp.Data.Visibility)
	}
	if resp.Data.Color != "#3498db" {
		t.Errorf("color = %q, want #3498db", resp.Data.Color)
	}
	if resp.Data.OwnerID != alice.ID {
		t.Errorf("owner = %q, want caller", resp.Data.OwnerID)
	}

	var reminders []models.EventReminder
	if err := db.Where("event_id = ?", resp.Data.ID).Find(&reminders).Error; err != nil {
		t.Fatalf("failed to load reminders: %v", err)
	}
	if len(reminders) != 1 || reminders[0].Channel != models.ReminderEmail || reminders[0].LeadMinutes != 30 {
		t.Errorf("reminders = %+v, want one email reminder 30 minutes ahead", reminders)
	}
}

func TestCreateEventValidation(t *testing.T) {
	router, db := setupTestServer(t)
	alice := createAccount(t, db, "Alice", "Durand", "alice@example.com")
	token := tokenFor(t, alice)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"end before start", map[string]interface{}{
			"title":      "Inversé",
			"start_time": "2026-09-10T10:00:00Z",
			"end_time":   "2026-09-10T09:00:00Z",
		}},
		{"end equals start", map[string]interface{}{
			"title":      "Instantané",
			"start_time": "2026-09-10T09:00:00Z",
			"end_time":   "2026-09-10T09:00:00Z",
		}},
		{"missing title", map[string]interface{}{
			"start_time": "2026-09-10T09:00:00Z",
			"end_time":   "2026-09-10T10:00:00Z",
		}},
		{"bad category", map[string]interface{}{
			"title":      "Divers",
			"start_time": "2026-09-10T09:00:00Z",
			"end_time":   "2026-09-10T10:00:00Z",
			"category":   "sport",
		}},
		{"bad color", map[string]interface{}{
			"title":      "Divers",
			"start_time": "2026-09-10T09:00:00Z",
			"end_time":   "2026-09-10T10:00:00Z",
			"color":      "blue",
		}},
		{"bad recurrence weekday", map[string]interface{}{
			"title":               "Divers",
			"start_time":          "2026-09-10T09:00:00Z",
			"end_time":            "2026-09-10T10:00:00Z",
			"recurrence_type":     "weekly",
			"recurrence_weekdays": []int{7},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/v1/events", token, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetEventVisibility(t *testing.T) {
	router, db := setupTestServer(t)
	owner := createAccount(t, db, "Alice", "Durand", "alice@example.com")
	friend := createAccount(t, db, "Bob", "Moreau", "bob@example.com")
	stranger := createAccount(t, db, "Carol", "Petit", "carol@example.com")
	makeFriends(t, db, owner, friend)

	private := createEvent(t, db, owner, "Journal intime", models.VisibilityPrivate)
	friendsOnly := createEvent(t, db, owner, "Pique-nique", models.VisibilityFriends)
	public := createEvent(t, db, owner, "Concert", models.VisibilityPublic)

	tests := []struct {
		name   string
		viewer *models.User
		event  *models.Event
		want   int
	}{
		{"owner reads private", owner, private, http.StatusOK},
		{"friend blocked on private", friend, private, http.StatusForbidden},
		{"stranger blocked on private", stranger, private, http.StatusForbidden},
		{"friend reads friends-tier", friend, friendsOnly, http.StatusOK},
		{"stranger blocked on friends-tier", stranger, friendsOnly, http.StatusForbidden},
		{"stranger reads public", stranger, public, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, "/api/v1/events/"+tt.event.ID, tokenFor(t, tt.viewer), nil)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d; body: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}

	// A participant bypasses the tier check.
	if err := db.Create(&models.EventParticipant{
		EventID: private.ID,
		UserID:  stranger.ID,
		Status:  models.ParticipantInvited,
	}).Error; err != nil {
		t.Fatalf("failed to add participant: %v", err)
	}
	w := doJSON(t, router, http.MethodGet, "/api/v1/events/"+private.ID, tokenFor(t, stranger), nil)
	if w.Code != http.StatusOK {
		t.Errorf("participant on private event: status = %d, want 200", w.Code)
	}
}

func TestUpdateAndDeleteOwnerOnly(t *testing.T) {
	router, db := setupTestServer(t)
	owner := createAccount(t, db, "Alice", "Durand", "alice@example.com")
	other := createAccount(t, db, "Bob", "Moreau", "bob@example.com")
	event := createEvent(t, db, owner, "Concert", models.VisibilityPublic)

	update := map[string]interface{}{
		"title":      "Concert reporté",
		"start_time": "2026-09-11T20:00:00Z",
		"end_time":   "2026-09-11T22:00:00Z",
	}

	// Visible to everyone, mutable by no one but the owner.
	w := doJSON(t, router, http.MethodPut, "/api/v1/events/"+event.ID, tokenFor(t, other), update)
	if w.Code != http.StatusForbidden {
		t.Errorf("non-owner update: status = %d, want 403", w.Code)
	}
	w = doJSON(t, router, http.MethodDelete, "/api/v1/events/"+event.ID, tokenFor(t, other), nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("non-owner delete: status = %d, want 403", w.Code)
	}

	w = doJSON(t, router, http.MethodPut, "/api/v1/events/"+event.ID, tokenFor(t, owner), update)
	if w.Code != http.StatusOK {
		t.Fatalf("owner update: status = %d; body: %s", w.Code, w.Body.String())
	}
	var stored models.Event
	if err := db.First(&stored, "id = ?", event.ID).Error; err != nil {
		t.Fatalf("failed to reload event: %v", err)
	}
	if stored.Title != "Concert reporté" {
		t.Errorf("title = %q, want updated value", stored.Title)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/v1/events/"+event.ID, tokenFor(t, owner), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner delete: status = %d", w.Code)
	}
	if err := db.First(&stored, "id = ?", event.ID).Error; err == nil {
		t.Error("event still present after delete")
	}
}

func TestDeleteEventCascades(t *testing.T) {
	router, db := setupTestServer(t)
	owner := createAccount(t, db, "Alice", "Durand", "alice@example.com")
	guest := createAccount(t, db, "Bob", "Moreau", "bob@example.com")
	event := createEvent(t, db, owner, "Atelier", models.VisibilityPublic)

	fixtures := []interface{}{
		&models.EventParticipant{EventID: event.ID, UserID: guest.ID, Status: models.ParticipantInvited},
		&models.EventReminder{EventID: event.ID, Channel: models.ReminderNotification, LeadMinutes: 15},
		&models.EventComment{ID: uuid.New().String(), EventID: event.ID, AuthorID: guest.ID, Body: "Présent !"},
	}
	for _, f := range fixtures {
		if err := db.Create(f).Error; err != nil {
			t.Fatalf("failed to create fixture: %v", err)
		}
	}

	w := doJSON(t, router, http.MethodDelete, "/api/v1/events/"+event.ID, tokenFor(t, owner), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d; body: %s", w.Code, w.Body.String())
	}

	var participants, reminders, comments int64
	db.Model(&models.EventParticipant{}).Where("event_id = ?", event.ID).Count(&participants)
	db.Model(&models.EventReminder{}).Where("event_id = ?", event.ID).Count(&reminders)
	db.Model(&models.EventComment{}).Where("event_id = ?", event.ID).Count(&comments)
	if participants != 0 || reminders != 0 || comments != 0 {
		t.Errorf("orphans after delete: participants=%d reminders=%d comments=%d", participants, reminders, comments)
	}
}

func TestComments(t *testing.T) {
	router, db := setupTestServer(t)
	owner := createAccount(t, db, "Alice", "Durand", "alice@example.com")
	friend := createAccount(t, db, "Bob", "Moreau", "bob@example.com")
	stranger := createAccount(t, db, "Carol", "Petit", "carol@example.com")
	makeFriends(t, db, owner, friend)

	event := createEvent(t, db, owner, "Pique-nique", models.VisibilityFriends)

	// Commenting follows the same visibility gate as reading.
	w := doJSON(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/comments",
		tokenFor(t, stranger), map[string]string{"body": "On peut venir ?"})
	if w.Code != http.StatusForbidden {
		t.Errorf("stranger comment: status = %d, want 403", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/comments",
		tokenFor(t, friend), map[string]string{"body": "J'apporte le dessert."})
	if w.Code != http.StatusCreated {
		t.Fatalf("friend comment: status = %d; body: %s", w.Code, w.Body.String())
	}

	// The owner hears about it, but not about their own replies.
	if got := countNotifications(t, db, owner.ID, models.NotificationTypeComment); got != 1 {
		t.Errorf("owner comment-notifications = %d, want 1", got)
	}
	w = doJSON(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/comments",
		tokenFor(t, owner), map[string]string{"body": "Parfait, merci !"})
	if w.Code != http.StatusCreated {
		t.Fatalf("owner comment: status = %d", w.Code)
	}
	if got := countNotifications(t, db, owner.ID, models.NotificationTypeComment); got != 1 {
		t.Errorf("owner comment-notifications = %d after own comment, want still 1", got)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/events/"+event.ID+"/comments", tokenFor(t, friend), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list comments: status = %d", w.Code)
	}
	var resp struct {
		Comments []models.EventComment `json:"comments"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Comments) != 2 {
		t.Errorf("comments = %d, want 2", len(resp.Comments))
	}
}

func TestShareEventAndRespond(t *testing.T) {
	router, db := setupTestServer(t)
	owner := createAccount(t, db, "Alice", "Durand", "alice@example.com")
	guest := createAccount(t, db, "Bob", "Moreau", "bob@example.com")
	other := createAccount(t, db, "Carol", "Petit", "carol@example.com")

	event := createEvent(t, db, owner, "Crémaillère", models.VisibilityPrivate)

	w := doJSON(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/share",
		tokenFor(t, other), map[string]interface{}{"user_ids": []string{guest.ID}})
	if w.Code != http.StatusForbidden {
		t.Errorf("non-owner share: status = %d, want 403", w.Code)
	}

	// Sharing with a list tolerates the owner's own id and unknown ids.
	w = doJSON(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/share",
		tokenFor(t, owner), map[string]interface{}{"user_ids": []string{guest.ID, owner.ID, "no-such-user"}})
	if w.Code != http.StatusOK {
		t.Fatalf("share: status = %d; body: %s", w.Code, w.Body.String())
	}

	var participants []models.EventParticipant
	if err := db.Where("event_id = ?", event.ID).Find(&participants).Error; err != nil {
		t.Fatalf("failed to load participants: %v", err)
	}
	if len(participants) != 1 || participants[0].UserID != guest.ID || participants[0].Status != models.ParticipantInvited {
		t.Fatalf("participants = %+v, want guest invited", participants)
	}
	if got := countNotifications(t, db, guest.ID, models.NotificationTypeEventShared); got != 1 {
		t.Errorf("guest share-notifications = %d, want 1", got)
	}

	// Re-sharing with the same account adds nothing.
	w = doJSON(t, router, http.MethodPost, "/api/v1/events/"+event.ID+"/share",
		tokenFor(t, owner), map[string]interface{}{"user_ids": []string{guest.ID}})
	if w.Code != http.StatusOK {
		t.Fatalf("re-share: status = %d", w.Code)
	}
	var count int64
	db.Model(&models.EventParticipant{}).Where("event_id = ?", event.ID).Count(&count)
	if count != 1 {
		t.Errorf("participants = %d after re-share, want 1", count)
	}

	// The invitee answers; "invited" is not an answer.
	w = doJSON(t, router, http.MethodPut, "/api/v1/events/"+event.ID+"/respond",
		tokenFor(t, guest), map[string]string{"status": "invited"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("respond with invited: status = %d, want 400", w.Code)
	}
	w = doJSON(t, router, http.MethodPut, "/api/v1/events/"+event.ID+"/respond",
		tokenFor(t, guest), map[string]string{"status": "accepted"})
	if w.Code != http.StatusOK {
		t.Fatalf("respond: status = %d; body: %s", w.Code, w.Body.String())
	}

	var participant models.EventParticipant
	if err := db.First(&participant, "event_id = ? AND user_id = ?", event.ID, guest.ID).Error; err != nil {
		t.Fatalf("failed to reload participant: %v", err)
	}
	if participant.Status != models.ParticipantAccepted {
		t.Errorf("status = %q, want accepted", participant.Status)
	}
	if participant.RespondedAt == nil {
		t.Error("responded_at not recorded")
	}

	// Someone never invited has nothing to respond to.
	w = doJSON(t, router, http.MethodPut, "/api/v1/events/"+event.ID+"/respond",
		tokenFor(t, other), map[string]string{"status": "accepted"})
	if w.Code != http.StatusNotFound {
		t.Errorf("uninvited respond: status = %d, want 404", w.Code)
	}
}

func TestGetEventsFilters(t *testing.T) {
	router, db := setupTestServer(t)
	owner := createAccount(t, db, "Alice", "Durand", "alice@example.com")
	stranger := createAccount(t, db, "Carol", "Petit", "carol@example.com")

	createEvent(t, db, owner, "Journal intime", models.VisibilityPrivate)
	createEvent(t, db, owner, "Concert", models.VisibilityPublic)

	// The stranger's listing only ever contains the public event.
	w := doJSON(t, router, http.MethodGet, "/api/v1/events", tokenFor(t, stranger), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d; body: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Events []models.Event `json:"events"`
		} `json:"data"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Data.Events) != 1 || resp.Data.Events[0].Title != "Concert" {
		t.Errorf("stranger listing = %+v, want only the public event", resp.Data.Events)
	}

	// The owner sees both.
	w = doJSON(t, router, http.MethodGet, "/api/v1/events", tokenFor(t, owner), nil)
	decodeBody(t, w, &resp)
	if len(resp.Data.Events) != 2 {
		t.Errorf("owner listing = %d events, want 2", len(resp.Data.Events))
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/events?category=nonsense", tokenFor(t, owner), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad category filter: status = %d, want 400", w.Code)
	}
}

func TestGetEventsExpandsRecurrences(t *testing.T) {
	router, db := setupTestServer(t)
	owner := createAccount(t, db, "Alice", "Durand", "alice@example.com")

	event := &models.Event{
		ID:                 uuid.New().String(),
		Title:              "Stand-up",
		StartTime:          time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC),
		EndTime:            time.Date(2026, time.September, 7, 9, 15, 0, 0, time.UTC),
		Category:           models.CategoryWork,
		Visibility:         models.VisibilityPrivate,
		OwnerID:            owner.ID,
		RecurrenceType:     models.RecurrenceDaily,
		RecurrenceInterval: 1,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	w := doJSON(t, router, http.MethodGet,
		"/api/v1/events?date_from=2026-09-07T00:00:00Z&date_to=2026-09-10T00:00:00Z",
		tokenFor(t, owner), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Events []models.Event `json:"events"`
		} `json:"data"`
		Total int64 `json:"total"`
	}
	decodeBody(t, w, &resp)
	// Sep 7, 8 and 9; the Sep 10 occurrence starts after the range end.
	if len(resp.Data.Events) != 3 {
		t.Fatalf("expanded events = %d, want 3", len(resp.Data.Events))
	}
	// With a range, total counts the expanded occurrences the client can
	// page through, not the stored rows.
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}
	for i, ev := range resp.Data.Events[1:] {
		if ev.ParentEventID == nil || *ev.ParentEventID != event.ID {
			t.Errorf("occurrence %d missing parent reference", i+1)
		}
	}

	// Paging applies after expansion.
	w = doJSON(t, router, http.MethodGet,
		"/api/v1/events?date_from=2026-09-07T00:00:00Z&date_to=2026-09-10T00:00:00Z&limit=2&page=2",
		tokenFor(t, owner), nil)
	decodeBody(t, w, &resp)
	if resp.Total != 3 || len(resp.Data.Events) != 1 {
		t.Errorf("page 2 with limit 2: total = %d, events = %d, want 3 and 1", resp.Total, len(resp.Data.Events))
	}
}

func TestGetEventsRangeEndInclusive(t *testing.T) {
	router, db := setupTestServer(t)
	owner := createAccount(t, db, "Alice", "Durand", "alice@example.com")

	// Starts exactly at date_to: the range filter admits it, so the
	// response must carry it too.
	event := &models.Event{
		ID:             uuid.New().String(),
		Title:          "Petit déjeuner",
		StartTime:      time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2026, time.September, 10, 1, 0, 0, 0, time.UTC),
		Category:       models.CategoryPersonal,
		Visibility:     models.VisibilityPrivate,
		OwnerID:        owner.ID,
		RecurrenceType: models.RecurrenceNone,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	w := doJSON(t, router, http.MethodGet,
		"/api/v1/events?date_from=2026-09-07T00:00:00Z&date_to=2026-09-10T00:00:00Z",
		tokenFor(t, owner), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Events []models.Event `json:"events"`
		} `json:"data"`
		Total int64 `json:"total"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Data.Events) != 1 || resp.Data.Events[0].ID != event.ID {
		t.Fatalf("events = %+v, want the event starting at date_to", resp.Data.Events)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}
}

func TestGetMonthView(t *testing.T) {
	router, db := setupTestServer(t)
	owner := createAccount(t, db, "Alice", "Durand", "alice@example.com")
	token := tokenFor(t, owner)

	w := doJSON(t, router, http.MethodGet, "/api/v1/events/calendar?year=2026&month=13", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("month 13: status = %d, want 400", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/v1/events/calendar?year=2026", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing month: status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/events/calendar?year=2026&month=9", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("month view: status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Year  int `json:"year"`
		Month int `json:"month"`
		Days  []struct {
			Date    time.Time      `json:"date"`
			InMonth bool           `json:"in_month"`
			Events  []models.Event `json:"events"`
		} `json:"days"`
	}
	decodeBody(t, w, &resp)
	if resp.Year != 2026 || resp.Month != 9 {
		t.Errorf("year/month = %d/%d, want 2026/9", resp.Year, resp.Month)
	}
	if len(resp.Days) == 0 || len(resp.Days)%7 != 0 {
		t.Errorf("days = %d, want a non-empty multiple of 7", len(resp.Days))
	}
}

func TestExportICS(t *testing.T) {
	router, db := setupTestServer(t)
	owner := createAccount(t, db, "Alice", "Durand", "alice@example.com")
	createEvent(t, db, owner, "Concert", models.VisibilityPrivate)

	weekly := &models.Event{
		ID:                 uuid.New().String(),
		Title:              "Cours de yoga",
		StartTime:          time.Date(2026, time.September, 7, 18, 0, 0, 0, time.UTC),
		EndTime:            time.Date(2026, time.September, 7, 19, 0, 0, 0, time.UTC),
		Category:           models.CategoryHealth,
		Visibility:         models.VisibilityPrivate,
		OwnerID:            owner.ID,
		RecurrenceType:     models.RecurrenceWeekly,
		RecurrenceInterval: 1,
		RecurrenceWeekdays: models.StringSlice{"1"},
	}
	if err := db.Create(weekly).Error; err != nil {
		t.Fatalf("failed to create recurring event: %v", err)
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/events/export.ics", tokenFor(t, owner), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: status = %d; body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("content type = %q, want text/calendar", ct)
	}

	body := w.Body.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") || !strings.Contains(body, "END:VCALENDAR") {
		t.Error("response is not an iCalendar document")
	}
	if !strings.Contains(body, "SUMMARY:Concert") {
		t.Error("event summary missing from feed")
	}

	// Recurring events carry their rule so the series survives the export.
	if !strings.Contains(body, "RRULE:FREQ=WEEKLY") {
		t.Error("recurring event exported without its RRULE")
	}
}
