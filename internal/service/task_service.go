// internal/service/task_service.go
package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gurkanbulca/teamflow/internal/models"
	"github.com/gurkanbulca/teamflow/internal/repository"
)

// CreateTaskInput carries the new-task form.
type CreateTaskInput struct {
	Title       string
	Description string
	AssigneeID  string
	Deadline    time.Time
	Priority    models.Priority
}

// TaskService owns the task collection and its lifecycle.
type TaskService struct {
	mu    sync.RWMutex
	tasks []models.Task

	repo       *repository.SnapshotRepository
	identity   *IdentityService
	validation *ValidationConfig
	now        func() time.Time
}

func NewTaskService(repo *repository.SnapshotRepository, identity *IdentityService) *TaskService {
	return &TaskService{
		tasks:      []models.Task{},
		repo:       repo,
		identity:   identity,
		validation: DefaultValidationConfig(),
		now:        time.Now,
	}
}

// Load replaces the in-memory tasks with the persisted collection.
func (s *TaskService) Load(ctx context.Context) error {
	tasks, err := s.repo.LoadTasks(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	return nil
}

// Create adds a pending task on behalf of the logged-in user. Assignee and
// creator names are copied at creation and never refreshed.
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	creator, ok := s.identity.CurrentSession()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	if err := s.validation.validateCreateTaskInput(input); err != nil {
		return nil, err
	}

	assignee, err := s.identity.GetUser(input.AssigneeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAssignee, input.AssigneeID)
	}

	newTask := models.Task{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		AssigneeID:   assignee.ID,
		AssigneeName: assignee.Name,
		CreatedBy:    creator.Name,
		CreatedByID:  creator.ID,
		Deadline:     input.Deadline.UTC(),
		Priority:     input.Priority,
		Status:       models.TaskStatusPending,
		CreatedDate:  s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clone(s.tasks), newTask)
	if err := s.repo.SaveTasks(ctx, next); err != nil {
		return nil, fmt.Errorf("persist tasks: %w", err)
	}
	s.tasks = next

	return &newTask, nil
}

// SetStatus overwrites a task's status. Any of the three statuses may
// follow any other.
func (s *TaskService) SetStatus(ctx context.Context, taskID string, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexByID(taskID)
	if idx < 0 {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}

	next := slices.Clone(s.tasks)
	next[idx].Status = status
	if err := s.repo.SaveTasks(ctx, next); err != nil {
		return nil, fmt.Errorf("persist tasks: %w", err)
	}
	s.tasks = next

	updated := next[idx]
	return &updated, nil
}

// Delete removes a task permanently.
func (s *TaskService) Delete(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexByID(taskID)
	if idx < 0 {
		return fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}

	next := slices.Delete(slices.Clone(s.tasks), idx, idx+1)
	if err := s.repo.SaveTasks(ctx, next); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	s.tasks = next

	return nil
}

// Get retrieves a task by ID.
func (s *TaskService) Get(taskID string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexByID(taskID)
	if idx < 0 {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	found := s.tasks[idx]
	return &found, nil
}

// List returns tasks in insertion order.
func (s *TaskService) List() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

func (s *TaskService) indexByID(id string) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool {
		return t.ID == id
	})
}
