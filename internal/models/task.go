package models

import (
	"fmt"
	"time"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

// Task status constants
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusProgress  TaskStatus = "progress"
	TaskStatusCompleted TaskStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Priority of a task.
type Priority string

// Priority constants
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p.Rank() <= 3
}

// Rank orders priorities for sorting: High=1, Medium=2, Low=3.
// Unknown values rank after every known one.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// DeadlineLayout is the calendar-date layout used for task deadlines.
const DeadlineLayout = "2006-01-02"

// ParseDeadline parses a YYYY-MM-DD date as midnight UTC.
func ParseDeadline(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DeadlineLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse deadline %q: %w", value, err)
	}
	return t, nil
}

// Task is a unit of work assigned to a team member.
//
// AssigneeName and CreatedBy are copies taken when the task is created and
// are never refreshed from the referenced users.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	AssigneeID   string     `json:"assigneeId"`
	AssigneeName string     `json:"assigneeName"`
	CreatedBy    string     `json:"createdBy"`
	CreatedByID  string     `json:"createdById,omitempty"`
	Deadline     time.Time  `json:"deadline"`
	Priority     Priority   `json:"priority"`
	Status       TaskStatus `json:"status"`
	CreatedDate  time.Time  `json:"createdDate"`
}
