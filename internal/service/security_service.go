// internal/service/security_service.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gurkanbulca/teamflow/internal/repository"
	"github.com/gurkanbulca/teamflow/pkg/security"
)

// DefaultSecurityEventRetention caps the persisted security trail.
const DefaultSecurityEventRetention = 500

// SecurityService keeps a bounded trail of security events in the
// workspace store. It is an EventSink.
type SecurityService struct {
	mu        sync.Mutex
	repo      *repository.SnapshotRepository
	retention int
}

// NewSecurityService creates a new security service
func NewSecurityService(repo *repository.SnapshotRepository, retention int) *SecurityService {
	if retention <= 0 {
		retention = DefaultSecurityEventRetention
	}
	return &SecurityService{
		repo:      repo,
		retention: retention,
	}
}

// Record appends an event, dropping the oldest ones past the retention.
func (s *SecurityService) Record(ctx context.Context, event security.Event) error {
	if _, err := security.ParseEventType(string(event.Type)); err != nil {
		return fmt.Errorf("invalid event type: %w", err)
	}
	if _, err := security.ParseSeverity(string(event.Severity)); err != nil {
		return fmt.Errorf("invalid severity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.repo.LoadSecurityEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to load security events: %w", err)
	}

	events = append(events, event)
	if over := len(events) - s.retention; over > 0 {
		events = events[over:]
	}

	if err := s.repo.SaveSecurityEvents(ctx, events); err != nil {
		return fmt.Errorf("failed to save security event: %w", err)
	}
	return nil
}

// GetSecurityEvents retrieves security events with filtering, newest first.
func (s *SecurityService) GetSecurityEvents(ctx context.Context, req *GetSecurityEventsRequest) (*GetSecurityEventsResponse, error) {
	var (
		eventType security.EventType
		severity  security.Severity
		err       error
	)
	if req.EventType != "" {
		if eventType, err = security.ParseEventType(req.EventType); err != nil {
			return nil, fmt.Errorf("invalid event type filter: %w", err)
		}
	}
	if req.Severity != "" {
		if severity, err = security.ParseSeverity(req.Severity); err != nil {
			return nil, fmt.Errorf("invalid severity filter: %w", err)
		}
	}

	s.mu.Lock()
	events, err := s.repo.LoadSecurityEvents(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to get security events: %w", err)
	}

	matched := make([]security.Event, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		if req.UserID != "" && e.UserID != req.UserID {
			continue
		}
		if eventType != "" && e.Type != eventType {
			continue
		}
		if severity != "" && e.Severity != severity {
			continue
		}
		if !req.FromDate.IsZero() && e.OccurredAt.Before(req.FromDate) {
			continue
		}
		if !req.ToDate.IsZero() && e.OccurredAt.After(req.ToDate) {
			continue
		}
		matched = append(matched, e)
	}

	totalCount := len(matched)
	if req.Offset > 0 {
		matched = matched[min(req.Offset, len(matched)):]
	}
	if req.Limit > 0 && req.Limit < len(matched) {
		matched = matched[:req.Limit]
	}

	return &GetSecurityEventsResponse{
		Events:     matched,
		TotalCount: totalCount,
	}, nil
}

// GetSecurityStats returns security statistics, optionally for one user.
func (s *SecurityService) GetSecurityStats(ctx context.Context, userID string) (*SecurityStats, error) {
	s.mu.Lock()
	events, err := s.repo.LoadSecurityEvents(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to count security events: %w", err)
	}

	stats := &SecurityStats{}
	for _, e := range events {
		if userID != "" && e.UserID != userID {
			continue
		}
		stats.TotalEvents++
		if e.Type == security.EventTypeLoginFailed {
			stats.FailedLogins++
		}
		if e.Severity == security.SeverityHigh || e.Severity == security.SeverityCritical {
			stats.HighSeverityEvents++
		}
	}
	return stats, nil
}

// GetSecurityEventsRequest represents a request to get security events
type GetSecurityEventsRequest struct {
	UserID    string    `json:"user_id,omitempty"`
	EventType string    `json:"event_type,omitempty"`
	Severity  string    `json:"severity,omitempty"`
	FromDate  time.Time `json:"from_date,omitempty"`
	ToDate    time.Time `json:"to_date,omitempty"`
	Limit     int       `json:"limit"`
	Offset    int       `json:"offset"`
}

// GetSecurityEventsResponse represents the response from getting security events
type GetSecurityEventsResponse struct {
	Events     []security.Event `json:"events"`
	TotalCount int              `json:"total_count"`
}

// SecurityStats represents security statistics
type SecurityStats struct {
	TotalEvents        int `json:"total_events"`
	FailedLogins       int `json:"failed_logins"`
	HighSeverityEvents int `json:"high_severity_events"`
}
