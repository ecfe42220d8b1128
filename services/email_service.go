package services

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"agenda-api/config"
	"agenda-api/models"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		config: cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

// SendWelcomeEmail greets a freshly registered account.
func (es *EmailService) SendWelcomeEmail(email, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Agenda")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Hello %s!</h2>
    <p>Your Agenda account is ready. Create events, share them with friends
    and keep your calendar in one place.</p>
    <p>See you there!</p>
</body>
</html>`, name)

	m.SetBody("text/html", htmlBody)
	return es.dialer.DialAndSend(m)
}

// SendReminderEmail delivers an email-channel reminder for an upcoming event.
func (es *EmailService) SendReminderEmail(user *models.User, event *models.Event) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", fmt.Sprintf("Reminder: %s", event.Title))

	when := event.StartTime.Format("Monday, 2 January 2006 at 15:04")
	if event.AllDay {
		when = event.StartTime.Format("Monday, 2 January 2006") + " (all day)"
	}

	location := ""
	if event.Location != "" {
		location = fmt.Sprintf("<p>Location: %s</p>", event.Location)
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Hello %s!</h2>
    <p>Your event <strong>%s</strong> starts on %s.</p>
    %s
    <p style="color: #666; font-size: 13px;">Sent at %s by Agenda</p>
</body>
</html>`, user.FirstName, event.Title, when, location, time.Now().Format(time.RFC1123))

	m.SetBody("text/html", htmlBody)
	return es.dialer.DialAndSend(m)
}
