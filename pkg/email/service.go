// pkg/email/service.go
package email

import (
	"context"
	"time"
)

// ReminderKind says how close the deadline is.
type ReminderKind string

const (
	ReminderDueToday    ReminderKind = "due_today"
	ReminderDueTomorrow ReminderKind = "due_tomorrow"
)

// Reminder is a deadline notice for one assignee.
type Reminder struct {
	To        string
	Name      string
	TaskTitle string
	Deadline  time.Time
	Kind      ReminderKind
}

// EmailService defines the interface for sending emails
type EmailService interface {
	SendDeadlineReminder(ctx context.Context, reminder Reminder) error
}

// EmailTemplate represents an email template
type EmailTemplate struct {
	Subject  string
	HTMLBody string
	TextBody string
}

// EmailData contains data for template rendering
type EmailData struct {
	Name      string
	TaskTitle string
	Deadline  time.Time
	When      string
	AppName   string
}

// Config holds email service configuration
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	AppName      string
}

// Templates holds all email templates
type Templates struct {
	DeadlineReminder EmailTemplate
}

// NewTemplates creates default email templates
func NewTemplates() *Templates {
	return &Templates{
		DeadlineReminder: EmailTemplate{
			Subject: "[{{.AppName}}] \"{{.TaskTitle}}\" is due {{.When}}",
			HTMLBody: `
<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Deadline Reminder</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .alert { background-color: #fff3cd; border: 1px solid #ffeaa7; padding: 15px; border-radius: 5px; margin: 20px 0; }
        .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 14px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <p>Hi {{.Name}},</p>

        <div class="alert">
            <strong>⏰ {{.TaskTitle}}</strong> is due {{.When}} ({{.Deadline.Format "January 2, 2006"}}).
        </div>

        <div class="footer">
            <p>The {{.AppName}} Team</p>
        </div>
    </div>
</body>
</html>`,
			TextBody: `Hi {{.Name}},

"{{.TaskTitle}}" is due {{.When}} ({{.Deadline.Format "January 2, 2006"}}).

The {{.AppName}} Team`,
		},
	}
}

// whenText is the phrase used for a reminder kind in templates.
func whenText(kind ReminderKind) string {
	if kind == ReminderDueToday {
		return "today"
	}
	return "tomorrow"
}
