// internal/service/deadline_notifier.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gurkanbulca/teamflow/internal/view"
	"github.com/gurkanbulca/teamflow/pkg/email"
)

// AlertDispatcher delivers a single deadline alert.
type AlertDispatcher interface {
	Dispatch(ctx context.Context, alert view.Alert) error
}

// AlertDispatchers fans an alert out to every dispatcher.
type AlertDispatchers []AlertDispatcher

func (ds AlertDispatchers) Dispatch(ctx context.Context, alert view.Alert) error {
	var errs []error
	for _, d := range ds {
		if err := d.Dispatch(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogAlertDispatcher writes alerts to the standard logger.
type LogAlertDispatcher struct{}

func (LogAlertDispatcher) Dispatch(_ context.Context, alert view.Alert) error {
	when := "today"
	if alert.Kind == view.AlertDueTomorrow {
		when = "tomorrow"
	}
	log.Printf("⏰ Task %q assigned to %s is due %s", alert.Task.Title, alert.Task.AssigneeName, when)
	return nil
}

// EmailAlertDispatcher mails the assignee of the alerted task.
type EmailAlertDispatcher struct {
	identity     *IdentityService
	emailService email.EmailService
}

func NewEmailAlertDispatcher(identity *IdentityService, emailService email.EmailService) *EmailAlertDispatcher {
	return &EmailAlertDispatcher{
		identity:     identity,
		emailService: emailService,
	}
}

func (d *EmailAlertDispatcher) Dispatch(ctx context.Context, alert view.Alert) error {
	assignee, err := d.identity.GetUser(alert.Task.AssigneeID)
	if err != nil {
		return fmt.Errorf("resolve assignee: %w", err)
	}

	kind := email.ReminderDueTomorrow
	if alert.Kind == view.AlertDueToday {
		kind = email.ReminderDueToday
	}

	err = d.emailService.SendDeadlineReminder(ctx, email.Reminder{
		To:        assignee.Email,
		Name:      assignee.Name,
		TaskTitle: alert.Task.Title,
		Deadline:  alert.Task.Deadline,
		Kind:      kind,
	})
	if err != nil {
		return fmt.Errorf("send deadline reminder: %w", err)
	}
	return nil
}

// DeadlineNotifier periodically delivers due-soon alerts while a user is
// logged in. Each (task, kind) pair is delivered at most once per day.
type DeadlineNotifier struct {
	workspace  *Workspace
	dispatcher AlertDispatcher
	interval   time.Duration
	dedupe     bool
	now        func() time.Time

	mu   sync.Mutex
	day  string
	sent map[string]struct{}
}

func NewDeadlineNotifier(workspace *Workspace, dispatcher AlertDispatcher, interval time.Duration, dedupe bool) *DeadlineNotifier {
	if interval <= 0 {
		interval = time.Minute
	}
	return &DeadlineNotifier{
		workspace:  workspace,
		dispatcher: dispatcher,
		interval:   interval,
		dedupe:     dedupe,
		now:        time.Now,
		sent:       make(map[string]struct{}),
	}
}

// Run checks deadlines immediately and then on every tick until ctx is done.
func (n *DeadlineNotifier) Run(ctx context.Context) {
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()
	log.Printf("⏰ Starting deadline checks (runs every %v)", n.interval)

	n.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.tick(ctx)
		}
	}
}

func (n *DeadlineNotifier) tick(ctx context.Context) {
	delivered, err := n.RunOnce(ctx, n.now())
	if err != nil {
		log.Printf("[ERROR] deadline check: %v", err)
	}
	if delivered > 0 {
		log.Printf("[INFO] delivered %d deadline alerts", delivered)
	}
}

// RunOnce delivers the alerts due at now and returns how many were
// delivered. Nothing happens without a logged-in user. Failed deliveries
// are retried on the next run.
func (n *DeadlineNotifier) RunOnce(ctx context.Context, now time.Time) (int, error) {
	if _, ok := n.workspace.Identity.CurrentSession(); !ok {
		return 0, nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	day := now.UTC().Format(time.DateOnly)
	if day != n.day {
		n.day = day
		n.sent = make(map[string]struct{})
	}

	var errs []error
	delivered := 0
	for _, alert := range n.workspace.Alerts(now) {
		key := alert.Task.ID + "|" + string(alert.Kind)
		if n.dedupe {
			if _, seen := n.sent[key]; seen {
				continue
			}
		}

		if err := n.dispatcher.Dispatch(ctx, alert); err != nil {
			errs = append(errs, fmt.Errorf("task %s: %w", alert.Task.ID, err))
			continue
		}
		n.sent[key] = struct{}{}
		delivered++
	}

	return delivered, errors.Join(errs...)
}
