package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"agenda-api/calendar"
	"agenda-api/models"
	"agenda-api/repositories"
	"agenda-api/utils"
)

type EventController struct {
	db                     *gorm.DB
	friendRepo             repositories.FriendRepository
	notificationController *NotificationController
}

func NewEventController(db *gorm.DB, friendRepo repositories.FriendRepository, notificationController *NotificationController) *EventController {
	return &EventController{
		db:                     db,
		friendRepo:             friendRepo,
		notificationController: notificationController,
	}
}

type ReminderRequest struct {
	Channel     models.ReminderChannel `json:"channel"`
	LeadMinutes int                    `json:"lead_minutes"`
}

type CreateEventRequest struct {
	Title       string               `json:"title" binding:"required,max=100"`
	Description string               `json:"description" binding:"max=1000"`
	StartTime   time.Time            `json:"start_time" binding:"required"`
	EndTime     time.Time            `json:"end_time" binding:"required"`
	AllDay      bool                 `json:"all_day"`
	Location    string               `json:"location" binding:"max=200"`
	Category    models.EventCategory `json:"category"`
	Color       string               `json:"color"`
	Visibility  models.Visibility    `json:"visibility"`
	Tags        []string             `json:"tags"`
	Reminders   []ReminderRequest    `json:"reminders"`

	RecurrenceType     models.RecurrenceType `json:"recurrence_type"`
	RecurrenceInterval int                   `json:"recurrence_interval"`
	RecurrenceWeekdays []int                 `json:"recurrence_weekdays"`
	RecurrenceMonthDay int                   `json:"recurrence_month_day"`
	RecurrenceUntil    *time.Time            `json:"recurrence_until"`
}

func (req *CreateEventRequest) validate() string {
	if !req.EndTime.After(req.StartTime) {
		return "End time must be after start time"
	}
	if req.Category != "" && !req.Category.Valid() {
		return "Invalid category"
	}
	if req.Visibility != "" && !req.Visibility.Valid() {
		return "Invalid visibility"
	}
	if req.Color != "" && !utils.IsValidHexColor(req.Color) {
		return "Invalid color format"
	}
	if req.RecurrenceType != "" && !req.RecurrenceType.Valid() {
		return "Invalid recurrence type"
	}
	for _, r := range req.Reminders {
		if r.Channel != "" && !r.Channel.Valid() {
			return "Invalid reminder channel"
		}
		if r.LeadMinutes < 0 {
			return "Reminder lead time cannot be negative"
		}
	}
	for _, d := range req.RecurrenceWeekdays {
		if d < 0 || d > 6 {
			return "Recurrence weekdays must be between 0 and 6"
		}
	}
	return ""
}

// visibleEvents scopes a query to the events the viewer may list: their
// own, public ones, friends-tier ones from their friends, and events they
// participate in.
func (ec *EventController) visibleEvents(userID string, friendIDs []string) *gorm.DB {
	query := ec.db.Model(&models.Event{})

	participating := ec.db.Model(&models.EventParticipant{}).
		Select("event_id").
		Where("user_id = ?", userID)

	if len(friendIDs) > 0 {
		return query.Where(
			"owner_id = ? OR visibility = ? OR (visibility = ? AND owner_id IN ?) OR id IN (?)",
			userID, models.VisibilityPublic, models.VisibilityFriends, friendIDs, participating,
		)
	}
	return query.Where(
		"owner_id = ? OR visibility = ? OR id IN (?)",
		userID, models.VisibilityPublic, participating,
	)
}

func (ec *EventController) GetEvents(c *gin.Context) {
	userID := c.GetString("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	offset := (page - 1) * limit

	friendIDs, err := ec.friendRepo.FriendIDs(userID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	query := ec.visibleEvents(userID, friendIDs)

	if category := c.Query("category"); category != "" {
		if !models.EventCategory(category).Valid() {
			utils.SendValidationError(c, "Invalid category")
			return
		}
		query = query.Where("category = ?", category)
	}
	if visibility := c.Query("visibility"); visibility != "" {
		if !models.Visibility(visibility).Valid() {
			utils.SendValidationError(c, "Invalid visibility")
			return
		}
		query = query.Where("visibility = ?", visibility)
	}

	var dateFrom, dateTo time.Time
	hasRange := false
	if from, to := c.Query("date_from"), c.Query("date_to"); from != "" && to != "" {
		dateFrom, err = time.Parse(time.RFC3339, from)
		if err != nil {
			utils.SendValidationError(c, "Invalid date_from")
			return
		}
		dateTo, err = time.Parse(time.RFC3339, to)
		if err != nil {
			utils.SendValidationError(c, "Invalid date_to")
			return
		}
		hasRange = true
		// Events overlapping the range, plus recurring events whose rule
		// could still produce occurrences inside it.
		query = query.Where(
			"(start_time <= ? AND end_time >= ?) OR (recurrence_type <> ? AND start_time <= ? AND (recurrence_until IS NULL OR recurrence_until >= ?))",
			dateTo, dateFrom, models.RecurrenceNone, dateTo, dateFrom,
		)
	}

	var total int64
	var events []models.Event

	if hasRange {
		// Expansion changes the cardinality after the database, so range
		// queries load the whole window, expand, and page in memory; total
		// then counts what the client can actually iterate.
		if err := query.Preload("Owner").Preload("Participants.User").
			Order("start_time ASC").
			Find(&events).Error; err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to fetch events")
			return
		}
		events = calendar.ExpandOccurrences(events, dateFrom, dateTo)
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].StartTime.Before(events[j].StartTime)
		})
		total = int64(len(events))
		events = pageSlice(events, offset, limit)
	} else {
		query.Count(&total)
		if err := query.Preload("Owner").Preload("Participants.User").
			Order("start_time ASC").
			Offset(offset).Limit(limit).
			Find(&events).Error; err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to fetch events")
			return
		}
	}

	for i := range events {
		events[i].Owner.Password = ""
	}

	utils.SendPaginated(c, gin.H{"events": events}, page, limit, total)
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		utils.SendValidationError(c, msg)
		return
	}

	event := models.Event{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		AllDay:      req.AllDay,
		Location:    req.Location,
		Category:    req.Category,
		Color:       req.Color,
		Visibility:  req.Visibility,
		OwnerID:     userID,
		Tags:        models.StringSlice(req.Tags),

		RecurrenceType:     req.RecurrenceType,
		RecurrenceInterval: req.RecurrenceInterval,
		RecurrenceWeekdays: weekdayStrings(req.RecurrenceWeekdays),
		RecurrenceMonthDay: req.RecurrenceMonthDay,
		RecurrenceUntil:    req.RecurrenceUntil,
	}
	if event.Category == "" {
		event.Category = models.CategoryPersonal
	}
	if event.Visibility == "" {
		event.Visibility = models.VisibilityPrivate
	}
	if event.Color == "" {
		event.Color = "#3498db"
	}
	if event.RecurrenceType == "" {
		event.RecurrenceType = models.RecurrenceNone
	}
	if event.RecurrenceInterval < 1 {
		event.RecurrenceInterval = 1
	}

	if err := ec.db.Create(&event).Error; err != nil {
		if errors.Is(err, models.ErrEndBeforeStart) {
			utils.SendValidationError(c, err.Error())
			return
		}
		utils.SendError(c, http.StatusInternalServerError, "Failed to create event")
		return
	}

	for _, r := range req.Reminders {
		reminder := models.EventReminder{
			EventID:     event.ID,
			Channel:     r.Channel,
			LeadMinutes: r.LeadMinutes,
		}
		if reminder.Channel == "" {
			reminder.Channel = models.ReminderNotification
		}
		if reminder.LeadMinutes == 0 {
			reminder.LeadMinutes = 15
		}
		ec.db.Create(&reminder)
	}

	utils.SendCreated(c, "Event created successfully", event)
}

func (ec *EventController) GetEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.Preload("Owner").Preload("Participants.User").
		Preload("Reminders").Preload("Comments.Author").
		First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	friendIDs, err := ec.friendRepo.FriendIDs(userID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	if !event.CanView(userID, friendIDs) {
		utils.SendError(c, http.StatusForbidden, "Access to this event denied")
		return
	}

	event.Owner.Password = ""
	c.JSON(http.StatusOK, gin.H{"event": event})
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}
	if !event.CanModify(userID) {
		utils.SendError(c, http.StatusForbidden, "Only the owner can modify this event")
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		utils.SendValidationError(c, msg)
		return
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"start_time":  req.StartTime,
		"end_time":    req.EndTime,
		"all_day":     req.AllDay,
		"location":    req.Location,
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Visibility != "" {
		updates["visibility"] = req.Visibility
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.Tags != nil {
		updates["tags"] = models.StringSlice(req.Tags)
	}
	if req.RecurrenceType != "" {
		updates["recurrence_type"] = req.RecurrenceType
		updates["recurrence_interval"] = req.RecurrenceInterval
		updates["recurrence_weekdays"] = weekdayStrings(req.RecurrenceWeekdays)
		updates["recurrence_month_day"] = req.RecurrenceMonthDay
		updates["recurrence_until"] = req.RecurrenceUntil
	}

	if err := ec.db.Model(&event).Updates(updates).Error; err != nil {
		if errors.Is(err, models.ErrEndBeforeStart) {
			utils.SendValidationError(c, err.Error())
			return
		}
		utils.SendError(c, http.StatusInternalServerError, "Failed to update event")
		return
	}

	utils.SendSuccess(c, "Event updated successfully", event)
}

func (ec *EventController) DeleteEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}
	if !event.CanModify(userID) {
		utils.SendError(c, http.StatusForbidden, "Only the owner can delete this event")
		return
	}

	err := ec.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.EventParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.EventReminder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.EventComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	utils.SendSuccess(c, "Event deleted successfully", nil)
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,max=500"`
}

// AddComment lets any viewer-eligible account comment; the owner is
// notified unless they are the commenter.
func (ec *EventController) AddComment(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var event models.Event
	if err := ec.db.Preload("Participants").First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	friendIDs, err := ec.friendRepo.FriendIDs(userID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to add comment")
		return
	}
	if !event.CanView(userID, friendIDs) {
		utils.SendError(c, http.StatusForbidden, "Access to this event denied")
		return
	}

	comment := models.EventComment{
		ID:       uuid.New().String(),
		EventID:  event.ID,
		AuthorID: userID,
		Body:     req.Body,
	}
	if err := ec.db.Create(&comment).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	if event.OwnerID != userID {
		var author models.User
		if err := ec.db.First(&author, "id = ?", userID).Error; err == nil {
			if err := ec.notificationController.CreateCommentNotification(&author, event.OwnerID, &event); err != nil {
				fmt.Printf("Failed to create comment notification: %v\n", err)
			}
		}
	}

	utils.SendCreated(c, "Comment added successfully", comment)
}

func (ec *EventController) GetComments(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.Preload("Participants").First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	friendIDs, err := ec.friendRepo.FriendIDs(userID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}
	if !event.CanView(userID, friendIDs) {
		utils.SendError(c, http.StatusForbidden, "Access to this event denied")
		return
	}

	var comments []models.EventComment
	if err := ec.db.Preload("Author").Where("event_id = ?", eventID).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

type ShareEventRequest struct {
	UserIDs []string `json:"user_ids" binding:"required,min=1"`
}

// ShareEvent adds accounts as participants with status "invited"; each new
// participant gets a notification. Owner only.
func (ec *EventController) ShareEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var req ShareEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var event models.Event
	if err := ec.db.Preload("Participants").First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}
	if !event.CanModify(userID) {
		utils.SendError(c, http.StatusForbidden, "Only the owner can share this event")
		return
	}

	var owner models.User
	if err := ec.db.First(&owner, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to share event")
		return
	}

	for _, invitedID := range req.UserIDs {
		if invitedID == userID {
			continue
		}

		var invited models.User
		if err := ec.db.First(&invited, "id = ?", invitedID).Error; err != nil {
			continue
		}
		if event.IsParticipant(invitedID) {
			continue
		}

		participant := models.EventParticipant{
			EventID: event.ID,
			UserID:  invitedID,
			Status:  models.ParticipantInvited,
		}
		if err := ec.db.Create(&participant).Error; err != nil {
			continue
		}
		event.Participants = append(event.Participants, participant)

		if err := ec.notificationController.CreateEventSharedNotification(&owner, invitedID, &event); err != nil {
			fmt.Printf("Failed to create share notification: %v\n", err)
		}
	}

	utils.SendSuccess(c, "Event shared successfully", gin.H{"participants": event.Participants})
}

type RespondInvitationRequest struct {
	Status models.ParticipantStatus `json:"status" binding:"required"`
}

// RespondToInvitation records the caller's response on their participant entry.
func (ec *EventController) RespondToInvitation(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var req RespondInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	if !req.Status.Valid() || req.Status == models.ParticipantInvited {
		utils.SendValidationError(c, "Status must be accepted, declined or tentative")
		return
	}

	var participant models.EventParticipant
	if err := ec.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&participant).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Invitation not found")
		return
	}

	now := time.Now()
	if err := ec.db.Model(&participant).Updates(map[string]interface{}{
		"status":       req.Status,
		"responded_at": &now,
	}).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to record response")
		return
	}

	utils.SendSuccess(c, "Response recorded", participant)
}

// GetMonthView assembles the month grid server-side: week-aligned day
// cells with the viewer's visible events assigned to every day they span.
func (ec *EventController) GetMonthView(c *gin.Context) {
	userID := c.GetString("user_id")

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		utils.SendValidationError(c, "Invalid year")
		return
	}
	monthNum, err := strconv.Atoi(c.Query("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		utils.SendValidationError(c, "Invalid month, expected 1-12")
		return
	}
	month := time.Month(monthNum)

	weekStart := time.Monday
	if ws := c.Query("week_start"); ws != "" {
		n, err := strconv.Atoi(ws)
		if err != nil || n < 0 || n > 6 {
			utils.SendValidationError(c, "Invalid week_start, expected 0-6")
			return
		}
		weekStart = time.Weekday(n)
	}

	days := calendar.BuildMonthGrid(year, month, weekStart)
	rangeStart := days[0].Date
	rangeEnd := days[len(days)-1].Date.AddDate(0, 0, 1)

	friendIDs, err := ec.friendRepo.FriendIDs(userID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to build calendar")
		return
	}

	var events []models.Event
	if err := ec.visibleEvents(userID, friendIDs).
		Where(
			"(start_time < ? AND end_time >= ?) OR (recurrence_type <> ? AND start_time < ? AND (recurrence_until IS NULL OR recurrence_until >= ?))",
			rangeEnd, rangeStart, models.RecurrenceNone, rangeEnd, rangeStart,
		).
		Preload("Participants").
		Order("start_time ASC").
		Find(&events).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to build calendar")
		return
	}

	events = calendar.ExpandOccurrences(events, rangeStart, rangeEnd)
	days = calendar.AssignEvents(days, events)

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": monthNum,
		"days":  days,
	})
}

// ExportICS renders the viewer's visible events as an iCalendar feed.
func (ec *EventController) ExportICS(c *gin.Context) {
	userID := c.GetString("user_id")

	friendIDs, err := ec.friendRepo.FriendIDs(userID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to export calendar")
		return
	}

	var events []models.Event
	if err := ec.visibleEvents(userID, friendIDs).
		Order("start_time ASC").
		Find(&events).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to export calendar")
		return
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//agenda//calendar//EN")

	for _, ev := range events {
		vevent := cal.AddEvent(ev.ID)
		vevent.SetCreatedTime(ev.CreatedAt)
		vevent.SetModifiedAt(ev.UpdatedAt)
		vevent.SetSummary(ev.Title)
		if ev.Description != "" {
			vevent.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			vevent.SetLocation(ev.Location)
		}
		if ev.AllDay {
			vevent.SetAllDayStartAt(ev.StartTime)
			vevent.SetAllDayEndAt(ev.EndTime)
		} else {
			vevent.SetStartAt(ev.StartTime)
			vevent.SetEndAt(ev.EndTime)
		}
		// Recurring events carry their rule so subscribers expand the
		// series themselves.
		if rule, ok := calendar.RRuleString(ev); ok {
			vevent.AddRrule(rule)
		}
	}

	c.Header("Content-Disposition", `attachment; filename="agenda.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal.Serialize()))
}

func pageSlice(events []models.Event, offset, limit int) []models.Event {
	if offset > len(events) {
		offset = len(events)
	}
	end := offset + limit
	if end > len(events) {
		end = len(events)
	}
	return events[offset:end]
}

func weekdayStrings(days []int) models.StringSlice {
	if len(days) == 0 {
		return nil
	}
	out := make(models.StringSlice, 0, len(days))
	for _, d := range days {
		out = append(out, strconv.Itoa(d))
	}
	return out
}
