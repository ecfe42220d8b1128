package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type EventCategory string

const (
	CategoryWork     EventCategory = "work"
	CategoryPersonal EventCategory = "personal"
	CategoryStudies  EventCategory = "studies"
	CategoryHealth   EventCategory = "health"
	CategoryLeisure  EventCategory = "leisure"
	CategoryFamily   EventCategory = "family"
	CategoryOther    EventCategory = "other"
)

func (c EventCategory) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryStudies, CategoryHealth,
		CategoryLeisure, CategoryFamily, CategoryOther:
		return true
	}
	return false
}

type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = "none"
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
)

func (r RecurrenceType) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// ErrEndBeforeStart is returned when an event's end instant is not strictly
// after its start instant.
var ErrEndBeforeStart = errors.New("event end time must be after start time")

type Event struct {
	ID          string        `json:"id" gorm:"primaryKey;size:191"`
	Title       string        `json:"title" gorm:"not null;size:100"`
	Description string        `json:"description" gorm:"size:1000"`
	StartTime   time.Time     `json:"start_time" gorm:"not null;index:idx_events_range"`
	EndTime     time.Time     `json:"end_time" gorm:"not null;index:idx_events_range"`
	AllDay      bool          `json:"all_day" gorm:"default:false"`
	Location    string        `json:"location" gorm:"size:200"`
	Category    EventCategory `json:"category" gorm:"not null;default:'personal';size:20;index"`
	Color       string        `json:"color" gorm:"default:'#3498db';size:7"`
	Visibility  Visibility    `json:"visibility" gorm:"not null;default:'private';size:20;index"`
	OwnerID     string        `json:"owner_id" gorm:"not null;size:191;index"`
	Tags        StringSlice   `json:"tags" gorm:"type:json"`

	// Recurrence descriptor. Weekdays are 0=Sunday..6=Saturday, stored as
	// a JSON array of decimal strings. Zero MonthDay means "same day as start".
	RecurrenceType     RecurrenceType `json:"recurrence_type" gorm:"not null;default:'none';size:20"`
	RecurrenceInterval int            `json:"recurrence_interval" gorm:"default:1"`
	RecurrenceWeekdays StringSlice    `json:"recurrence_weekdays" gorm:"type:json"`
	RecurrenceMonthDay int            `json:"recurrence_month_day" gorm:"default:0"`
	RecurrenceUntil    *time.Time     `json:"recurrence_until"`

	// Set on occurrences expanded from a recurring event.
	ParentEventID *string `json:"parent_event_id" gorm:"size:191"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner        User               `json:"owner" gorm:"foreignKey:OwnerID"`
	Participants []EventParticipant `json:"participants" gorm:"foreignKey:EventID"`
	Reminders    []EventReminder    `json:"reminders" gorm:"foreignKey:EventID"`
	Comments     []EventComment     `json:"comments" gorm:"foreignKey:EventID"`
}

// Validate checks the invariants a handler must reject before persisting.
func (e *Event) Validate() error {
	if !e.EndTime.After(e.StartTime) {
		return ErrEndBeforeStart
	}
	return nil
}

// BeforeSave enforces the end-after-start invariant at the persistence
// layer as well, so no code path can store an inverted interval.
func (e *Event) BeforeSave(tx *gorm.DB) error {
	return e.Validate()
}

// CanView decides whether viewerID may see this event. Rules are evaluated
// in order, first match wins. friendIDs is the viewer's friend set.
func (e *Event) CanView(viewerID string, friendIDs []string) bool {
	if e.OwnerID == viewerID {
		return true
	}
	if e.IsParticipant(viewerID) {
		return true
	}
	switch e.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityFriends:
		for _, id := range friendIDs {
			if id == e.OwnerID {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// CanModify is the stricter subset of CanView: only the owner may mutate
// or delete an event.
func (e *Event) CanModify(viewerID string) bool {
	return e.OwnerID == viewerID
}

// IsParticipant reports whether userID appears in the participant list.
// Requires Participants to be preloaded.
func (e *Event) IsParticipant(userID string) bool {
	for _, p := range e.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

type ParticipantStatus string

const (
	ParticipantInvited   ParticipantStatus = "invited"
	ParticipantAccepted  ParticipantStatus = "accepted"
	ParticipantDeclined  ParticipantStatus = "declined"
	ParticipantTentative ParticipantStatus = "tentative"
)

func (s ParticipantStatus) Valid() bool {
	switch s {
	case ParticipantInvited, ParticipantAccepted, ParticipantDeclined, ParticipantTentative:
		return true
	}
	return false
}

type EventParticipant struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	EventID     string            `json:"event_id" gorm:"not null;size:191;index"`
	UserID      string            `json:"user_id" gorm:"not null;size:191;index"`
	Status      ParticipantStatus `json:"status" gorm:"not null;default:'invited';size:20"`
	RespondedAt *time.Time        `json:"responded_at"`
	CreatedAt   time.Time         `json:"created_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

type ReminderChannel string

const (
	ReminderEmail        ReminderChannel = "email"
	ReminderNotification ReminderChannel = "notification"
	ReminderPopup        ReminderChannel = "popup"
)

func (c ReminderChannel) Valid() bool {
	switch c {
	case ReminderEmail, ReminderNotification, ReminderPopup:
		return true
	}
	return false
}

type EventReminder struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	EventID     string          `json:"event_id" gorm:"not null;size:191;index"`
	Channel     ReminderChannel `json:"channel" gorm:"not null;default:'notification';size:20"`
	LeadMinutes int             `json:"lead_minutes" gorm:"default:15"`
	Sent        bool            `json:"sent" gorm:"default:false;index"`
	SentAt      *time.Time      `json:"sent_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DueAt is the instant the reminder should fire for the given event start.
func (r *EventReminder) DueAt(eventStart time.Time) time.Time {
	return eventStart.Add(-time.Duration(r.LeadMinutes) * time.Minute)
}

type EventComment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	EventID   string    `json:"event_id" gorm:"not null;size:191;index"`
	AuthorID  string    `json:"author_id" gorm:"not null;size:191;index"`
	Body      string    `json:"body" gorm:"not null;size:500"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author User `json:"author" gorm:"foreignKey:AuthorID"`
}
