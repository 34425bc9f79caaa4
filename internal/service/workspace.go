// internal/service/workspace.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gurkanbulca/teamflow/internal/view"
)

// Workspace bundles the identity and task services with the current view
// settings. One workspace serves one session context.
type Workspace struct {
	Identity *IdentityService
	Tasks    *TaskService

	mu            sync.RWMutex
	settings      view.Settings
	seedDemoUsers bool
}

func NewWorkspace(identity *IdentityService, tasks *TaskService, seedDemoUsers bool) *Workspace {
	return &Workspace{
		Identity:      identity,
		Tasks:         tasks,
		seedDemoUsers: seedDemoUsers,
	}
}

// Hydrate loads persisted users and tasks. An empty user collection is
// seeded with the demo team when seeding is enabled.
func (w *Workspace) Hydrate(ctx context.Context) error {
	if err := w.Identity.Load(ctx); err != nil {
		return fmt.Errorf("hydrate workspace: %w", err)
	}
	if err := w.Tasks.Load(ctx); err != nil {
		return fmt.Errorf("hydrate workspace: %w", err)
	}

	if w.seedDemoUsers {
		if err := w.Identity.SeedDemoUsers(ctx); err != nil {
			return fmt.Errorf("hydrate workspace: %w", err)
		}
	}
	return nil
}

func (w *Workspace) SetSearchText(search string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.settings.Search = search
}

func (w *Workspace) SetSortMode(mode view.SortMode) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.settings.Sort = mode
}

func (w *Workspace) Settings() view.Settings {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.settings
}

// Board projects the current tasks through the search and sort settings.
func (w *Workspace) Board() view.Board {
	return view.Project(w.Tasks.List(), w.Settings())
}

// Statistics counts every task regardless of search.
func (w *Workspace) Statistics() view.Statistics {
	return view.Stats(w.Tasks.List())
}

// Alerts lists open tasks due today or tomorrow relative to now.
func (w *Workspace) Alerts(now time.Time) []view.Alert {
	return view.DueSoonAlerts(w.Tasks.List(), now)
}
