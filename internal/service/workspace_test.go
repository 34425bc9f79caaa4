package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurkanbulca/teamflow/internal/models"
	"github.com/gurkanbulca/teamflow/internal/view"
)

func TestWorkspace_PriorityBoard(t *testing.T) {
	env := newTestEnv(t)
	alex := env.register(t, "Alex Johnson", "alex@demo.com", models.RoleManager)
	env.login(t, "alex@demo.com")

	env.createTask(t, "Low task", alex.ID, "2024-01-20", models.PriorityLow)
	env.createTask(t, "High task", alex.ID, "2024-01-12", models.PriorityHigh)
	env.createTask(t, "Medium task", alex.ID, "2024-01-15", models.PriorityMedium)

	env.workspace.SetSortMode(view.SortPriority)
	board := env.workspace.Board()

	assert.Equal(t, []string{"High task", "Medium task", "Low task"}, titles(board.Pending))
	assert.Empty(t, board.Progress)
	assert.Empty(t, board.Completed)
	assert.Equal(t, view.Statistics{Total: 3, Pending: 3, Progress: 0, Completed: 0}, env.workspace.Statistics())

	// Insertion order is untouched by the projection.
	assert.Equal(t, []string{"Low task", "High task", "Medium task"}, titles(env.workspace.Tasks.List()))
}

func TestWorkspace_SearchDoesNotAffectStatistics(t *testing.T) {
	env := newTestEnv(t)
	alex := env.register(t, "Alex Johnson", "alex@demo.com", models.RoleManager)
	env.login(t, "alex@demo.com")

	env.createTask(t, "Fix login bug", alex.ID, "2024-01-12", models.PriorityHigh)
	done := env.createTask(t, "Design logo", alex.ID, "2024-01-15", models.PriorityLow)
	env.createTask(t, "Write docs", alex.ID, "2024-01-20", models.PriorityMedium)
	_, err := env.workspace.Tasks.SetStatus(context.Background(), done.ID, models.TaskStatusCompleted)
	require.NoError(t, err)

	env.workspace.SetSearchText("LOG")
	assert.Equal(t, view.Settings{Search: "LOG"}, env.workspace.Settings())

	board := env.workspace.Board()
	assert.Equal(t, []string{"Fix login bug"}, titles(board.Pending))
	assert.Equal(t, []string{"Design logo"}, titles(board.Completed))

	assert.Equal(t, view.Statistics{Total: 3, Pending: 2, Progress: 0, Completed: 1}, env.workspace.Statistics())
}

func TestWorkspace_DeadlineSortAndAlerts(t *testing.T) {
	env := newTestEnv(t)
	alex := env.register(t, "Alex Johnson", "alex@demo.com", models.RoleManager)
	env.login(t, "alex@demo.com")

	env.createTask(t, "Later", alex.ID, "2024-01-20", models.PriorityLow)
	env.createTask(t, "Tomorrow", alex.ID, "2024-01-11", models.PriorityLow)
	finished := env.createTask(t, "Finished today", alex.ID, "2024-01-10", models.PriorityLow)
	env.createTask(t, "Today", alex.ID, "2024-01-10", models.PriorityLow)
	_, err := env.workspace.Tasks.SetStatus(context.Background(), finished.ID, models.TaskStatusCompleted)
	require.NoError(t, err)

	env.workspace.SetSortMode(view.SortDeadline)
	assert.Equal(t, []string{"Today", "Tomorrow", "Later"}, titles(env.workspace.Board().Pending))

	alerts := env.workspace.Alerts(testNow)
	require.Len(t, alerts, 2)
	assert.Equal(t, "Tomorrow", alerts[0].Task.Title)
	assert.Equal(t, view.AlertDueTomorrow, alerts[0].Kind)
	assert.Equal(t, "Today", alerts[1].Task.Title)
	assert.Equal(t, view.AlertDueToday, alerts[1].Kind)
}
