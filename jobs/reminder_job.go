package jobs

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"agenda-api/models"
	"agenda-api/services"
)

// ReminderJob scans for due event reminders once a minute and delivers them
// over the configured channel: email goes through the mail service,
// notification and popup land in the recipient's inbox.
type ReminderJob struct {
	db           *gorm.DB
	emailService *services.EmailService
	cron         *cron.Cron
}

func NewReminderJob(db *gorm.DB, emailService *services.EmailService) *ReminderJob {
	return &ReminderJob{
		db:           db,
		emailService: emailService,
		cron:         cron.New(),
	}
}

// Start schedules the dispatch loop.
func (j *ReminderJob) Start() error {
	if _, err := j.cron.AddFunc("@every 1m", j.dispatchDue); err != nil {
		return err
	}
	j.cron.Start()
	fmt.Println("Reminder job started")
	return nil
}

// Stop halts the schedule and waits for a running dispatch to finish.
func (j *ReminderJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	fmt.Println("Reminder job stopped")
}

func (j *ReminderJob) dispatchDue() {
	now := time.Now()

	var reminders []models.EventReminder
	if err := j.db.Where("sent = ?", false).Find(&reminders).Error; err != nil {
		fmt.Printf("Reminder scan failed: %v\n", err)
		return
	}

	for _, reminder := range reminders {
		var event models.Event
		if err := j.db.Preload("Owner").First(&event, "id = ?", reminder.EventID).Error; err != nil {
			continue
		}

		if event.StartTime.Before(now) {
			// Event already started, nothing to remind about
			j.markSent(&reminder, now)
			continue
		}
		if reminder.DueAt(event.StartTime).After(now) {
			continue
		}

		if err := j.deliver(&reminder, &event); err != nil {
			fmt.Printf("Failed to deliver reminder %d for event %s: %v\n", reminder.ID, event.ID, err)
			continue
		}
		j.markSent(&reminder, now)
	}
}

func (j *ReminderJob) deliver(reminder *models.EventReminder, event *models.Event) error {
	switch reminder.Channel {
	case models.ReminderEmail:
		return j.emailService.SendReminderEmail(&event.Owner, event)
	default:
		// notification and popup both land in the inbox; the client decides
		// how loudly to surface them
		notification := models.Notification{
			ID:           uuid.New().String(),
			Type:         models.NotificationTypeReminder,
			Message:      fmt.Sprintf("Your event \"%s\" starts at %s", event.Title, event.StartTime.Format("15:04")),
			TargetUserID: event.OwnerID,
			EventID:      &event.ID,
		}
		return j.db.Create(&notification).Error
	}
}

func (j *ReminderJob) markSent(reminder *models.EventReminder, at time.Time) {
	if err := j.db.Model(reminder).Updates(map[string]interface{}{
		"sent":    true,
		"sent_at": &at,
	}).Error; err != nil {
		fmt.Printf("Failed to mark reminder %d sent: %v\n", reminder.ID, err)
	}
}
