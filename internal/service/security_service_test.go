package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurkanbulca/teamflow/internal/repository"
	"github.com/gurkanbulca/teamflow/pkg/security"
)

func newTestSecurityService(retention int) *SecurityService {
	repo := repository.NewSnapshotRepository(repository.NewMemoryKVStore())
	return NewSecurityService(repo, retention)
}

func TestSecurityService_RecordAndQuery(t *testing.T) {
	ctx := context.Background()
	svc := newTestSecurityService(0)

	events := []security.Event{
		{Type: security.EventTypeRegistered, Severity: security.SeverityLow, UserID: "u1", OccurredAt: testNow},
		{Type: security.EventTypeLoginFailed, Severity: security.SeverityMedium, Email: "u1@demo.com", OccurredAt: testNow.Add(time.Minute)},
		{Type: security.EventTypeLoginSuccess, Severity: security.SeverityLow, UserID: "u1", OccurredAt: testNow.Add(2 * time.Minute)},
		{Type: security.EventTypeLoginSuccess, Severity: security.SeverityLow, UserID: "u2", OccurredAt: testNow.Add(3 * time.Minute)},
	}
	for _, e := range events {
		require.NoError(t, svc.Record(ctx, e))
	}

	tests := []struct {
		name      string
		req       GetSecurityEventsRequest
		wantTypes []security.EventType
		wantTotal int
	}{
		{
			name:      "all newest first",
			req:       GetSecurityEventsRequest{},
			wantTypes: []security.EventType{security.EventTypeLoginSuccess, security.EventTypeLoginSuccess, security.EventTypeLoginFailed, security.EventTypeRegistered},
			wantTotal: 4,
		},
		{
			name:      "by user",
			req:       GetSecurityEventsRequest{UserID: "u1"},
			wantTypes: []security.EventType{security.EventTypeLoginSuccess, security.EventTypeRegistered},
			wantTotal: 2,
		},
		{
			name:      "by type",
			req:       GetSecurityEventsRequest{EventType: "login_failed"},
			wantTypes: []security.EventType{security.EventTypeLoginFailed},
			wantTotal: 1,
		},
		{
			name:      "by time window",
			req:       GetSecurityEventsRequest{FromDate: testNow.Add(time.Minute), ToDate: testNow.Add(2 * time.Minute)},
			wantTypes: []security.EventType{security.EventTypeLoginSuccess, security.EventTypeLoginFailed},
			wantTotal: 2,
		},
		{
			name:      "paged",
			req:       GetSecurityEventsRequest{Offset: 1, Limit: 2},
			wantTypes: []security.EventType{security.EventTypeLoginSuccess, security.EventTypeLoginFailed},
			wantTotal: 4,
		},
		{
			name:      "offset past end",
			req:       GetSecurityEventsRequest{Offset: 10},
			wantTypes: []security.EventType{},
			wantTotal: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetSecurityEvents(ctx, &tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, resp.TotalCount)

			got := make([]security.EventType, 0, len(resp.Events))
			for _, e := range resp.Events {
				got = append(got, e.Type)
			}
			assert.Equal(t, tt.wantTypes, got)
		})
	}

	stats, err := svc.GetSecurityStats(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, &SecurityStats{TotalEvents: 4, FailedLogins: 1}, stats)

	stats, err = svc.GetSecurityStats(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalEvents)
}

func TestSecurityService_Retention(t *testing.T) {
	ctx := context.Background()
	svc := newTestSecurityService(2)

	for _, eventType := range []security.EventType{
		security.EventTypeRegistered,
		security.EventTypeLoginSuccess,
		security.EventTypeLogout,
	} {
		require.NoError(t, svc.Record(ctx, security.Event{Type: eventType, Severity: security.SeverityLow}))
	}

	resp, err := svc.GetSecurityEvents(ctx, &GetSecurityEventsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, security.EventTypeLogout, resp.Events[0].Type)
	assert.Equal(t, security.EventTypeLoginSuccess, resp.Events[1].Type)
}

func TestSecurityService_RejectsUnknownValues(t *testing.T) {
	ctx := context.Background()
	svc := newTestSecurityService(0)

	assert.Error(t, svc.Record(ctx, security.Event{Type: "bogus", Severity: security.SeverityLow}))
	assert.Error(t, svc.Record(ctx, security.Event{Type: security.EventTypeLogout, Severity: "extreme"}))

	_, err := svc.GetSecurityEvents(ctx, &GetSecurityEventsRequest{Severity: "extreme"})
	assert.Error(t, err)
}

func TestSecurityLogger_WritesToSecurityService(t *testing.T) {
	ctx := context.Background()
	svc := newTestSecurityService(0)
	logger := NewSecurityLogger(svc)
	logger.now = testClock

	logger.LogLoginFailed(ctx, "alex@demo.com", "invalid password")

	resp, err := svc.GetSecurityEvents(ctx, &GetSecurityEventsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "alex@demo.com", resp.Events[0].Email)
	assert.Equal(t, security.SeverityMedium, resp.Events[0].Severity)
	assert.True(t, testNow.Equal(resp.Events[0].OccurredAt))
}
