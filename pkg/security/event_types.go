// pkg/security/event_types.go
package security

import (
	"fmt"
	"time"
)

// EventType names an identity event worth auditing.
type EventType string

// Event types
const (
	EventTypeRegistered      EventType = "registered"
	EventTypeLoginSuccess    EventType = "login_success"
	EventTypeLoginFailed     EventType = "login_failed"
	EventTypeLogout          EventType = "logout"
	EventTypeSessionRestored EventType = "session_restored"
	EventTypeSessionRejected EventType = "session_rejected"
)

// Severity of an event.
type Severity string

// Severity levels
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Event is a single audited occurrence.
type Event struct {
	Type        EventType `json:"type"`
	Severity    Severity  `json:"severity"`
	UserID      string    `json:"userId,omitempty"`
	Email       string    `json:"email,omitempty"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// ParseEventType converts a string to an EventType
func ParseEventType(value string) (EventType, error) {
	for _, t := range ValidEventTypes() {
		if string(t) == value {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown event type: %s", value)
}

// ParseSeverity converts a string to a Severity
func ParseSeverity(value string) (Severity, error) {
	for _, s := range ValidSeverities() {
		if string(s) == value {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown severity: %s", value)
}

// ValidEventTypes returns all event types
func ValidEventTypes() []EventType {
	return []EventType{
		EventTypeRegistered,
		EventTypeLoginSuccess,
		EventTypeLoginFailed,
		EventTypeLogout,
		EventTypeSessionRestored,
		EventTypeSessionRejected,
	}
}

// ValidSeverities returns all severities, lowest first
func ValidSeverities() []Severity {
	return []Severity{
		SeverityLow,
		SeverityMedium,
		SeverityHigh,
		SeverityCritical,
	}
}
