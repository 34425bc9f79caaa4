// internal/service/identity_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gurkanbulca/teamflow/internal/models"
	"github.com/gurkanbulca/teamflow/internal/repository"
	"github.com/gurkanbulca/teamflow/pkg/auth"
)

// RegisterInput carries the signup form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// IdentityService owns the registered users and the current session.
type IdentityService struct {
	mu      sync.RWMutex
	users   []models.User
	current *models.User

	repo            *repository.SnapshotRepository
	passwordManager *auth.PasswordManager
	tokenManager    *auth.SessionTokenManager
	sessions        repository.SessionStore
	securityLogger  *SecurityLogger
	validation      *ValidationConfig
	now             func() time.Time
}

// NewIdentityService creates an identity service. Call Load (or
// Workspace.Hydrate) before use to read persisted users.
func NewIdentityService(
	repo *repository.SnapshotRepository,
	passwordManager *auth.PasswordManager,
	tokenManager *auth.SessionTokenManager,
	sessions repository.SessionStore,
	securityLogger *SecurityLogger,
) *IdentityService {
	return &IdentityService{
		users:           []models.User{},
		repo:            repo,
		passwordManager: passwordManager,
		tokenManager:    tokenManager,
		sessions:        sessions,
		securityLogger:  securityLogger,
		validation:      DefaultValidationConfig(),
		now:             time.Now,
	}
}

// Load replaces the in-memory users with the persisted collection.
func (s *IdentityService) Load(ctx context.Context) error {
	users, err := s.repo.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
	return nil
}

// Register creates a new user account. It does not log the user in.
func (s *IdentityService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := s.validation.validateRegisterInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := s.passwordManager.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.addUser(ctx, input, hashedPassword)
}

// addUser stores a validated signup under an already hashed password.
func (s *IdentityService) addUser(ctx context.Context, input RegisterInput, hashedPassword string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByEmail(input.Email) >= 0 {
		return nil, ErrDuplicateEmail
	}

	newUser := models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         strings.TrimSpace(input.Role),
		JoinedDate:   s.now().UTC(),
	}

	next := append(slices.Clone(s.users), newUser)
	if err := s.repo.SaveUsers(ctx, next); err != nil {
		return nil, fmt.Errorf("persist users: %w", err)
	}
	s.users = next

	s.securityLogger.LogRegistered(ctx, newUser)
	return &newUser, nil
}

// Authenticate resolves credentials to a user and makes it the current
// session. Any failure leaves the session cleared.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexByEmail(email)
	if idx < 0 {
		s.clearSessionLocked(ctx)
		s.securityLogger.LogLoginFailed(ctx, email, "user not found")
		return nil, ErrInvalidCredentials
	}

	found := s.users[idx]
	if err := s.passwordManager.ComparePassword(found.PasswordHash, password); err != nil {
		s.clearSessionLocked(ctx)
		s.securityLogger.LogLoginFailed(ctx, email, "invalid password")
		return nil, ErrInvalidCredentials
	}

	s.current = &found
	s.mirrorSessionLocked(ctx, found)
	s.securityLogger.LogLoginSuccess(ctx, found)

	result := found
	return &result, nil
}

// Logout clears the current session. It is idempotent and never fails.
func (s *IdentityService) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.securityLogger.LogLogout(ctx, *s.current)
	}
	s.clearSessionLocked(ctx)
}

// CurrentSession returns the logged-in user, if any.
func (s *IdentityService) CurrentSession() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, false
	}
	current := *s.current
	return &current, true
}

// RestoreSession resumes a session from the token mirrored by a previous
// Authenticate. It fails with ErrNotAuthenticated when there is no usable
// token; a rejected token is removed from the session store.
func (s *IdentityService) RestoreSession(ctx context.Context) (*models.User, error) {
	token, found, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, ErrNotAuthenticated
	}

	claims, err := s.tokenManager.Validate(token)
	if err != nil {
		s.rejectStoredSession(ctx, err.Error())
		return nil, fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexByID(claims.UserID)
	if idx < 0 {
		s.rejectStoredSessionLocked(ctx, "user no longer exists")
		return nil, ErrNotAuthenticated
	}

	restored := s.users[idx]
	s.current = &restored
	s.securityLogger.LogSessionRestored(ctx, restored)

	result := restored
	return &result, nil
}

// ListUsers returns the team in registration order.
func (s *IdentityService) ListUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

// GetUser looks up a user by id.
func (s *IdentityService) GetUser(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexByID(id)
	if idx < 0 {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	found := s.users[idx]
	return &found, nil
}

// UserCount returns the number of registered users.
func (s *IdentityService) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// indexByEmail compares emails exactly; case matters.
func (s *IdentityService) indexByEmail(email string) int {
	return slices.IndexFunc(s.users, func(u models.User) bool {
		return u.Email == email
	})
}

func (s *IdentityService) indexByID(id string) int {
	return slices.IndexFunc(s.users, func(u models.User) bool {
		return u.ID == id
	})
}

func (s *IdentityService) mirrorSessionLocked(ctx context.Context, user models.User) {
	token, err := s.tokenManager.Issue(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		log.Printf("[WARN] failed to issue session token: %v", err)
		return
	}
	if err := s.sessions.Save(ctx, token, s.tokenManager.Duration()); err != nil {
		log.Printf("[WARN] failed to mirror session: %v", err)
	}
}

func (s *IdentityService) clearSessionLocked(ctx context.Context) {
	s.current = nil
	if err := s.sessions.Clear(ctx); err != nil {
		log.Printf("[WARN] failed to clear mirrored session: %v", err)
	}
}

func (s *IdentityService) rejectStoredSession(ctx context.Context, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectStoredSessionLocked(ctx, reason)
}

func (s *IdentityService) rejectStoredSessionLocked(ctx context.Context, reason string) {
	s.clearSessionLocked(ctx)
	s.securityLogger.LogSessionRejected(ctx, reason)
}
