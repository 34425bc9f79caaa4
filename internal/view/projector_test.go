package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurkanbulca/teamflow/internal/models"
)

func mustDeadline(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := models.ParseDeadline(value)
	require.NoError(t, err)
	return d
}

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func sampleTasks(t *testing.T) []models.Task {
	return []models.Task{
		{ID: "1", Title: "Write API docs", Description: "Cover the Login flow", Priority: models.PriorityLow, Status: models.TaskStatusPending, Deadline: mustDeadline(t, "2024-01-20")},
		{ID: "2", Title: "Fix login bug", Priority: models.PriorityHigh, Status: models.TaskStatusProgress, Deadline: mustDeadline(t, "2024-01-12")},
		{ID: "3", Title: "Design review", Description: "", Priority: models.PriorityMedium, Status: models.TaskStatusCompleted, Deadline: mustDeadline(t, "2024-01-12")},
		{ID: "4", Title: "QA sweep", Description: "regression pass", Priority: models.PriorityHigh, Status: models.TaskStatusPending, Deadline: mustDeadline(t, "2024-01-08")},
	}
}

func TestFilter(t *testing.T) {
	tasks := sampleTasks(t)

	tests := []struct {
		name     string
		search   string
		expected []string
	}{
		{
			name:     "empty search keeps everything in order",
			search:   "",
			expected: []string{"Write API docs", "Fix login bug", "Design review", "QA sweep"},
		},
		{
			name:     "matches title or description ignoring case",
			search:   "LOGIN",
			expected: []string{"Write API docs", "Fix login bug"},
		},
		{
			name:     "matches description only",
			search:   "regression",
			expected: []string{"QA sweep"},
		},
		{
			name:     "no match",
			search:   "deploy",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, titles(Filter(tasks, tt.search)))
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks(t)
	before := titles(tasks)

	_ = Filter(tasks, "login")
	_ = Sort(tasks, SortPriority)

	assert.Equal(t, before, titles(tasks))
}

func TestSort(t *testing.T) {
	tasks := sampleTasks(t)

	tests := []struct {
		name     string
		mode     SortMode
		expected []string
	}{
		{
			name:     "none keeps insertion order",
			mode:     SortNone,
			expected: []string{"Write API docs", "Fix login bug", "Design review", "QA sweep"},
		},
		{
			name:     "deadline ascending, ties stable",
			mode:     SortDeadline,
			expected: []string{"QA sweep", "Fix login bug", "Design review", "Write API docs"},
		},
		{
			name:     "priority rank, ties stable",
			mode:     SortPriority,
			expected: []string{"Fix login bug", "QA sweep", "Design review", "Write API docs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, titles(Sort(tasks, tt.mode)))
		})
	}
}

func TestSort_UnknownPriorityLast(t *testing.T) {
	tasks := []models.Task{
		{Title: "odd", Priority: "Urgent"},
		{Title: "low", Priority: models.PriorityLow},
	}
	assert.Equal(t, []string{"low", "odd"}, titles(Sort(tasks, SortPriority)))
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortDeadline, ParseSortMode("deadline"))
	assert.Equal(t, SortPriority, ParseSortMode(" Priority "))
	assert.Equal(t, SortNone, ParseSortMode(""))
	assert.Equal(t, SortNone, ParseSortMode("title"))
}

func TestGroupByStatusAndStats(t *testing.T) {
	tasks := append(sampleTasks(t), models.Task{Title: "mystery", Status: "archived"})

	board := GroupByStatus(tasks)
	assert.Equal(t, []string{"Write API docs", "QA sweep"}, titles(board.Pending))
	assert.Equal(t, []string{"Fix login bug"}, titles(board.Progress))
	assert.Equal(t, []string{"Design review"}, titles(board.Completed))

	stats := Stats(tasks)
	assert.Equal(t, Statistics{Total: 5, Pending: 2, Progress: 1, Completed: 1}, stats)
}

func TestProject_PriorityBoard(t *testing.T) {
	deadline := mustDeadline(t, "2024-02-01")
	tasks := []models.Task{
		{Title: "low", Priority: models.PriorityLow, Status: models.TaskStatusPending, Deadline: deadline},
		{Title: "high", Priority: models.PriorityHigh, Status: models.TaskStatusPending, Deadline: deadline},
		{Title: "medium", Priority: models.PriorityMedium, Status: models.TaskStatusPending, Deadline: deadline},
	}

	board := Project(tasks, Settings{Sort: SortPriority})
	assert.Equal(t, []string{"high", "medium", "low"}, titles(board.Pending))
	assert.Empty(t, board.Progress)
	assert.Empty(t, board.Completed)
	assert.Equal(t, Statistics{Total: 3, Pending: 3}, Stats(tasks))
}
