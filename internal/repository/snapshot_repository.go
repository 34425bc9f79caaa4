// internal/repository/snapshot_repository.go
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gurkanbulca/teamflow/internal/models"
	"github.com/gurkanbulca/teamflow/pkg/security"
)

// Keys under which the collections are persisted.
const (
	UsersKey          = "teamflow_users"
	TasksKey          = "teamflow_tasks"
	SecurityEventsKey = "teamflow_security_events"
)

// SnapshotRepository persists whole collections as JSON arrays, one key
// per collection. A missing key reads as an empty collection.
type SnapshotRepository struct {
	kv KVStore
}

func NewSnapshotRepository(kv KVStore) *SnapshotRepository {
	return &SnapshotRepository{
		kv: kv,
	}
}

func (r *SnapshotRepository) LoadUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.load(ctx, UsersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *SnapshotRepository) SaveUsers(ctx context.Context, users []models.User) error {
	return r.save(ctx, UsersKey, users)
}

func (r *SnapshotRepository) LoadTasks(ctx context.Context) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.load(ctx, TasksKey, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *SnapshotRepository) SaveTasks(ctx context.Context, tasks []models.Task) error {
	return r.save(ctx, TasksKey, tasks)
}

func (r *SnapshotRepository) LoadSecurityEvents(ctx context.Context) ([]security.Event, error) {
	events := []security.Event{}
	if err := r.load(ctx, SecurityEventsKey, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *SnapshotRepository) SaveSecurityEvents(ctx context.Context, events []security.Event) error {
	return r.save(ctx, SecurityEventsKey, events)
}

func (r *SnapshotRepository) load(ctx context.Context, key string, dst any) error {
	data, found, err := r.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !found || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *SnapshotRepository) save(ctx context.Context, key string, src any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
