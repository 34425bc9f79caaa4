package view

import (
	"fmt"
	"math"
	"time"

	"github.com/gurkanbulca/teamflow/internal/models"
)

const day = 24 * time.Hour

// UrgencyLevel classifies how close a deadline is.
type UrgencyLevel int

// Urgency levels
const (
	UrgencyNormal UrgencyLevel = iota
	UrgencyDueSoon
	UrgencyDueToday
	UrgencyOverdue
)

func (l UrgencyLevel) String() string {
	switch l {
	case UrgencyOverdue:
		return "overdue"
	case UrgencyDueToday:
		return "due_today"
	case UrgencyDueSoon:
		return "due_soon"
	default:
		return "normal"
	}
}

// Urgency is the classification of a task deadline relative to a reference
// time. Days is the rounded-up number of days until the deadline.
type Urgency struct {
	Level UrgencyLevel
	Days  int
}

func (u Urgency) String() string {
	if u.Level == UrgencyDueSoon {
		return fmt.Sprintf("%s(%d)", u.Level, u.Days)
	}
	return u.Level.String()
}

// DaysUntil returns ceil((deadline - now) / 1 day).
func DaysUntil(deadline, now time.Time) int {
	return int(math.Ceil(float64(deadline.Sub(now)) / float64(day)))
}

// Classify computes the urgency of task at now.
func Classify(task models.Task, now time.Time) Urgency {
	days := DaysUntil(task.Deadline, now)
	switch {
	case days < 0:
		return Urgency{Level: UrgencyOverdue, Days: days}
	case days == 0:
		return Urgency{Level: UrgencyDueToday, Days: days}
	case days <= 2:
		return Urgency{Level: UrgencyDueSoon, Days: days}
	default:
		return Urgency{Level: UrgencyNormal, Days: days}
	}
}

// AlertKind is the type of a deadline alert.
type AlertKind string

// Alert kinds
const (
	AlertDueToday    AlertKind = "due_today"
	AlertDueTomorrow AlertKind = "due_tomorrow"
)

// Alert pairs a task with the reason it should be brought to attention.
type Alert struct {
	Task models.Task
	Kind AlertKind
}

// DueSoonAlerts returns alerts for open tasks due today or tomorrow, in
// input order. It uses the same day arithmetic as Classify.
func DueSoonAlerts(tasks []models.Task, now time.Time) []Alert {
	alerts := []Alert{}
	for _, t := range tasks {
		if t.Status == models.TaskStatusCompleted {
			continue
		}
		switch DaysUntil(t.Deadline, now) {
		case 0:
			alerts = append(alerts, Alert{Task: t, Kind: AlertDueToday})
		case 1:
			alerts = append(alerts, Alert{Task: t, Kind: AlertDueTomorrow})
		}
	}
	return alerts
}
