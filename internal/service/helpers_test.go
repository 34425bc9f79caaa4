package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gurkanbulca/teamflow/internal/models"
	"github.com/gurkanbulca/teamflow/internal/repository"
	"github.com/gurkanbulca/teamflow/pkg/auth"
	"github.com/gurkanbulca/teamflow/pkg/security"
)

const testPassword = "secret123"

var (
	testNow      = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	errStoreDown = errors.New("store unavailable")
)

func testClock() time.Time { return testNow }

// failingKVStore wraps a store and can be told to reject writes.
type failingKVStore struct {
	repository.KVStore

	mu   sync.Mutex
	fail bool
}

func (f *failingKVStore) SetFailing(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

func (f *failingKVStore) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	fail := f.fail
	f.mu.Unlock()
	if fail {
		return errStoreDown
	}
	return f.KVStore.Set(ctx, key, value)
}

// recordingSink keeps every security event it receives.
type recordingSink struct {
	mu     sync.Mutex
	events []security.Event
}

func (r *recordingSink) Record(_ context.Context, event security.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingSink) Types() []security.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]security.EventType, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

// testEnv is a workspace over in-memory backends with a fixed clock.
type testEnv struct {
	kv        *failingKVStore
	sessions  *repository.MemorySessionStore
	sink      *recordingSink
	workspace *Workspace
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{
		kv:       &failingKVStore{KVStore: repository.NewMemoryKVStore()},
		sessions: repository.NewMemorySessionStore(testClock),
		sink:     &recordingSink{},
	}
	env.workspace = env.openWorkspace(t, false)
	return env
}

// openWorkspace builds a fresh workspace over the env's backends, as a
// reload would.
func (e *testEnv) openWorkspace(t *testing.T, seed bool) *Workspace {
	repo := repository.NewSnapshotRepository(e.kv)
	logger := NewSecurityLogger(e.sink)
	logger.now = testClock

	identity := NewIdentityService(
		repo,
		auth.NewPasswordManager(bcrypt.MinCost, 6),
		auth.NewSessionTokenManager("test-secret", time.Hour).WithClock(testClock),
		e.sessions,
		logger,
	)
	identity.now = testClock

	tasks := NewTaskService(repo, identity)
	tasks.now = testClock

	workspace := NewWorkspace(identity, tasks, seed)
	require.NoError(t, workspace.Hydrate(context.Background()))
	return workspace
}

func (e *testEnv) register(t *testing.T, name, email, role string) *models.User {
	user, err := e.workspace.Identity.Register(context.Background(), RegisterInput{
		Name:     name,
		Email:    email,
		Password: testPassword,
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) login(t *testing.T, email string) *models.User {
	user, err := e.workspace.Identity.Authenticate(context.Background(), email, testPassword)
	require.NoError(t, err)
	return user
}

func (e *testEnv) createTask(t *testing.T, title, assigneeID, deadline string, priority models.Priority) *models.Task {
	task, err := e.workspace.Tasks.Create(context.Background(), CreateTaskInput{
		Title:      title,
		AssigneeID: assigneeID,
		Deadline:   mustDeadline(t, deadline),
		Priority:   priority,
	})
	require.NoError(t, err)
	return task
}

func mustDeadline(t *testing.T, value string) time.Time {
	deadline, err := models.ParseDeadline(value)
	require.NoError(t, err)
	return deadline
}

func titles(tasks []models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Title)
	}
	return out
}
