// pkg/email/smtp.go
package email

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	htmltemplate "html/template"
	"mime"
	"net/smtp"
	"strings"
	"sync"
	"text/template"
	"time"
)

// SMTPEmailService implements EmailService using SMTP
type SMTPEmailService struct {
	config    *Config
	templates *Templates
	auth      smtp.Auth
}

// NewSMTPEmailService creates a new SMTP email service
func NewSMTPEmailService(config *Config) *SMTPEmailService {
	var auth smtp.Auth
	if config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", config.SMTPUsername, config.SMTPPassword, config.SMTPHost)
	}

	return &SMTPEmailService{
		config:    config,
		templates: NewTemplates(),
		auth:      auth,
	}
}

// SendDeadlineReminder mails a due-today or due-tomorrow notice.
func (s *SMTPEmailService) SendDeadlineReminder(ctx context.Context, reminder Reminder) error {
	subject, textBody, htmlBody, err := s.render(s.templates.DeadlineReminder, s.buildEmailData(reminder))
	if err != nil {
		return err
	}

	message := s.buildMIMEMessage(
		s.config.FromEmail,
		s.config.FromName,
		reminder.To,
		subject,
		textBody,
		htmlBody,
		s.generateBoundary(),
	)

	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	if err := smtp.SendMail(addr, s.auth, s.config.FromEmail, []string{reminder.To}, message); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}

func (s *SMTPEmailService) buildEmailData(reminder Reminder) *EmailData {
	return &EmailData{
		Name:      reminder.Name,
		TaskTitle: reminder.TaskTitle,
		Deadline:  reminder.Deadline,
		When:      whenText(reminder.Kind),
		AppName:   s.config.AppName,
	}
}

// render executes the subject, text and HTML parts of a template.
func (s *SMTPEmailService) render(tmpl EmailTemplate, data *EmailData) (subject, text, html string, err error) {
	if subject, err = executeText(tmpl.Subject, data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	if text, err = executeText(tmpl.TextBody, data); err != nil {
		return "", "", "", fmt.Errorf("render text body: %w", err)
	}
	if html, err = executeHTML(tmpl.HTMLBody, data); err != nil {
		return "", "", "", fmt.Errorf("render HTML body: %w", err)
	}
	return subject, text, html, nil
}

func executeText(templateStr string, data *EmailData) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// executeHTML escapes task titles and names for the HTML part.
func executeHTML(templateStr string, data *EmailData) (string, error) {
	tmpl, err := htmltemplate.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// generateBoundary generates a random boundary for MIME messages
func (s *SMTPEmailService) generateBoundary() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// buildMIMEMessage builds a MIME email message with both text and HTML parts.
// The subject is RFC 2047 encoded and every line ends in CRLF.
func (s *SMTPEmailService) buildMIMEMessage(from, fromName, to, subject, textBody, htmlBody, boundary string) []byte {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteString("\r\n")
	}

	line("From: %s <%s>", mime.QEncoding.Encode("utf-8", fromName), from)
	line("To: %s", to)
	line("Subject: %s", mime.QEncoding.Encode("utf-8", subject))
	line("MIME-Version: 1.0")
	line(`Content-Type: multipart/alternative; boundary="%s"`, boundary)
	line("")

	for _, part := range []struct{ contentType, body string }{
		{"text/plain", textBody},
		{"text/html", htmlBody},
	} {
		line("--%s", boundary)
		line("Content-Type: %s; charset=UTF-8", part.contentType)
		line("Content-Transfer-Encoding: 8bit")
		line("")
		line("%s", crlf(part.body))
		line("")
	}
	line("--%s--", boundary)

	return []byte(b.String())
}

// crlf normalizes line endings to CRLF.
func crlf(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.ReplaceAll(body, "\n", "\r\n")
}

// TestConnection tests the SMTP connection
func (s *SMTPEmailService) TestConnection(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("dial SMTP server: %w", err)
	}
	defer client.Close()

	if s.auth == nil {
		return nil
	}
	if err := client.Auth(s.auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	return nil
}

// MockEmailService implements EmailService for testing
type MockEmailService struct {
	mu         sync.Mutex
	sentEmails []SentEmail
	failWith   error
}

// SentEmail represents an email that was sent via MockEmailService
type SentEmail struct {
	To       string
	Template string
	Reminder Reminder
	SentAt   time.Time
}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{
		sentEmails: make([]SentEmail, 0),
	}
}

// FailWith makes subsequent sends return err. Pass nil to succeed again.
func (m *MockEmailService) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// SendDeadlineReminder mock implementation
func (m *MockEmailService) SendDeadlineReminder(ctx context.Context, reminder Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}
	m.sentEmails = append(m.sentEmails, SentEmail{
		To:       reminder.To,
		Template: "deadline_reminder",
		Reminder: reminder,
		SentAt:   time.Now(),
	})
	return nil
}

// GetSentEmails returns all sent emails (for testing)
func (m *MockEmailService) GetSentEmails() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentEmail(nil), m.sentEmails...)
}

// GetLastSentEmail returns the last sent email (for testing)
func (m *MockEmailService) GetLastSentEmail() *SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sentEmails) == 0 {
		return nil
	}
	last := m.sentEmails[len(m.sentEmails)-1]
	return &last
}

// Clear clears all sent emails (for testing)
func (m *MockEmailService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sentEmails = make([]SentEmail, 0)
}
