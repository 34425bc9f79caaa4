// internal/service/security_logger.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/gurkanbulca/teamflow/internal/models"
	"github.com/gurkanbulca/teamflow/pkg/security"
)

// EventSink receives security events.
type EventSink interface {
	Record(ctx context.Context, event security.Event) error
}

// LogEventSink writes events to the standard logger.
type LogEventSink struct{}

func (LogEventSink) Record(_ context.Context, event security.Event) error {
	log.Printf("[SECURITY][%s] %s user=%s email=%s: %s",
		event.Severity, event.Type, event.UserID, event.Email, event.Description)
	return nil
}

// SecurityLogger provides convenience methods for logging security events.
// Sink failures are logged and never reach the caller.
type SecurityLogger struct {
	sink EventSink
	now  func() time.Time
}

// NewSecurityLogger creates a new security logger. A nil sink logs to the
// standard logger.
func NewSecurityLogger(sink EventSink) *SecurityLogger {
	if sink == nil {
		sink = LogEventSink{}
	}
	return &SecurityLogger{
		sink: sink,
		now:  time.Now,
	}
}

func (sl *SecurityLogger) record(ctx context.Context, event security.Event) {
	event.OccurredAt = sl.now()
	if err := sl.sink.Record(ctx, event); err != nil {
		log.Printf("[ERROR] failed to record security event %s: %v", event.Type, err)
	}
}

func (sl *SecurityLogger) forUser(ctx context.Context, user models.User, eventType security.EventType, severity security.Severity, description string) {
	sl.record(ctx, security.Event{
		Type:        eventType,
		Severity:    severity,
		UserID:      user.ID,
		Email:       user.Email,
		Description: description,
	})
}

// Convenience methods for common security events

func (sl *SecurityLogger) LogRegistered(ctx context.Context, user models.User) {
	sl.forUser(ctx, user, security.EventTypeRegistered, security.SeverityLow, "User registered")
}

func (sl *SecurityLogger) LogLoginSuccess(ctx context.Context, user models.User) {
	sl.forUser(ctx, user, security.EventTypeLoginSuccess, security.SeverityLow, "User successfully logged in")
}

func (sl *SecurityLogger) LogLoginFailed(ctx context.Context, email, reason string) {
	sl.record(ctx, security.Event{
		Type:        security.EventTypeLoginFailed,
		Severity:    security.SeverityMedium,
		Email:       email,
		Description: "Login failed: " + reason,
	})
}

func (sl *SecurityLogger) LogLogout(ctx context.Context, user models.User) {
	sl.forUser(ctx, user, security.EventTypeLogout, security.SeverityLow, "User logged out")
}

func (sl *SecurityLogger) LogSessionRestored(ctx context.Context, user models.User) {
	sl.forUser(ctx, user, security.EventTypeSessionRestored, security.SeverityLow, "Session restored from token")
}

func (sl *SecurityLogger) LogSessionRejected(ctx context.Context, reason string) {
	sl.record(ctx, security.Event{
		Type:        security.EventTypeSessionRejected,
		Severity:    security.SeverityMedium,
		Description: "Stored session rejected: " + reason,
	})
}
