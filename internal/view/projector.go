package view

import (
	"slices"
	"strings"

	"github.com/gurkanbulca/teamflow/internal/models"
)

// SortMode selects the ordering applied by Sort.
type SortMode string

// Sort modes
const (
	SortNone     SortMode = ""
	SortDeadline SortMode = "deadline"
	SortPriority SortMode = "priority"
)

// ParseSortMode maps a user-supplied value to a SortMode. Anything that is
// not a known mode keeps insertion order.
func ParseSortMode(value string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(value))) {
	case SortDeadline:
		return SortDeadline
	case SortPriority:
		return SortPriority
	default:
		return SortNone
	}
}

// Settings are the transient view controls (search box and sort select).
type Settings struct {
	Search string
	Sort   SortMode
}

// Board holds tasks partitioned by status.
type Board struct {
	Pending   []models.Task
	Progress  []models.Task
	Completed []models.Task
}

// Statistics are per-status counts over the whole collection.
type Statistics struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Progress  int `json:"progress"`
	Completed int `json:"completed"`
}

// Filter returns the tasks whose title or description contains search,
// ignoring case. An empty search matches everything.
func Filter(tasks []models.Task, search string) []models.Task {
	needle := strings.ToLower(search)
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if needle == "" ||
			strings.Contains(strings.ToLower(t.Title), needle) ||
			(t.Description != "" && strings.Contains(strings.ToLower(t.Description), needle)) {
			out = append(out, t)
		}
	}
	return out
}

// Sort returns a stably ordered copy of tasks.
func Sort(tasks []models.Task, mode SortMode) []models.Task {
	out := slices.Clone(tasks)
	if out == nil {
		out = []models.Task{}
	}

	switch mode {
	case SortDeadline:
		slices.SortStableFunc(out, func(a, b models.Task) int {
			return a.Deadline.Compare(b.Deadline)
		})
	case SortPriority:
		slices.SortStableFunc(out, func(a, b models.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		})
	}
	return out
}

// GroupByStatus partitions tasks into status buckets, keeping relative
// order. Tasks with an unknown status are left out.
func GroupByStatus(tasks []models.Task) Board {
	board := Board{
		Pending:   []models.Task{},
		Progress:  []models.Task{},
		Completed: []models.Task{},
	}
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusPending:
			board.Pending = append(board.Pending, t)
		case models.TaskStatusProgress:
			board.Progress = append(board.Progress, t)
		case models.TaskStatusCompleted:
			board.Completed = append(board.Completed, t)
		}
	}
	return board
}

// Stats counts tasks by status. Pass the unfiltered collection.
func Stats(tasks []models.Task) Statistics {
	stats := Statistics{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusPending:
			stats.Pending++
		case models.TaskStatusProgress:
			stats.Progress++
		case models.TaskStatusCompleted:
			stats.Completed++
		}
	}
	return stats
}

// Project runs Filter, Sort and GroupByStatus in that order.
func Project(tasks []models.Task, settings Settings) Board {
	return GroupByStatus(Sort(Filter(tasks, settings.Search), settings.Sort))
}
