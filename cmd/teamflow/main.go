// cmd/teamflow/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/gurkanbulca/teamflow/internal/config"
	"github.com/gurkanbulca/teamflow/internal/database"
	"github.com/gurkanbulca/teamflow/internal/repository"
	"github.com/gurkanbulca/teamflow/internal/service"
	"github.com/gurkanbulca/teamflow/pkg/auth"
	"github.com/gurkanbulca/teamflow/pkg/email"
	"github.com/gurkanbulca/teamflow/pkg/security"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateConfig(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer stores.Close()

	repo := repository.NewSnapshotRepository(stores.kv)
	securityService := service.NewSecurityService(repo, cfg.Security.EventRetention)
	securityLogger := service.NewSecurityLogger(securityService)

	identity := service.NewIdentityService(
		repo,
		auth.NewPasswordManager(cfg.Security.BcryptCost, cfg.Security.MinPasswordLength),
		auth.NewSessionTokenManager(cfg.Session.Secret, cfg.Session.TTL),
		stores.sessions,
		securityLogger,
	)
	tasks := service.NewTaskService(repo, identity)
	workspace := service.NewWorkspace(identity, tasks, cfg.Security.SeedDemoUsers)

	if err := workspace.Hydrate(ctx); err != nil {
		log.Fatalf("Failed to load workspace: %v", err)
	}
	stats := workspace.Statistics()
	log.Printf("📋 Workspace loaded: %d users, %d tasks (%d pending, %d in progress, %d completed)",
		identity.UserCount(), stats.Total, stats.Pending, stats.Progress, stats.Completed)

	logSecuritySummary(ctx, securityService)

	if user, err := identity.RestoreSession(ctx); err != nil {
		if !errors.Is(err, service.ErrNotAuthenticated) {
			log.Printf("[ERROR] restore session: %v", err)
		}
		log.Println("No active session; deadline alerts start after the next login")
	} else {
		log.Printf("👤 Resumed session for %s (%s)", user.Name, user.Email)
	}

	dispatchers := service.AlertDispatchers{
		service.LogAlertDispatcher{},
		service.NewEmailAlertDispatcher(identity, newEmailService(ctx, cfg)),
	}
	notifier := service.NewDeadlineNotifier(workspace, dispatchers, cfg.Server.DeadlineCheckInterval, cfg.Server.DeduplicateAlerts)

	log.Printf("🚀 TeamFlow running (storage: %s, sessions: %s)", cfg.Storage.Backend, cfg.Session.Backend)
	notifier.Run(ctx)

	log.Println("📴 Shutting down...")
	logSecuritySummary(context.Background(), securityService)
	log.Println("✅ Shutdown complete")
}

// logSecuritySummary logs trail totals and the latest high severity events.
func logSecuritySummary(ctx context.Context, securityService *service.SecurityService) {
	stats, err := securityService.GetSecurityStats(ctx, "")
	if err != nil {
		log.Printf("[ERROR] security stats: %v", err)
		return
	}
	log.Printf("🔐 Security trail: %d events, %d failed logins, %d high severity",
		stats.TotalEvents, stats.FailedLogins, stats.HighSeverityEvents)

	if stats.HighSeverityEvents == 0 {
		return
	}
	recent, err := securityService.GetSecurityEvents(ctx, &service.GetSecurityEventsRequest{
		Severity: string(security.SeverityHigh),
		Limit:    5,
	})
	if err != nil {
		log.Printf("[ERROR] security events: %v", err)
		return
	}
	for _, event := range recent.Events {
		log.Printf("[WARN] %s %s: %s", event.OccurredAt.Format(time.RFC3339), event.Type, event.Description)
	}
}

// backends holds the opened backends and whatever must be closed with them.
type backends struct {
	kv       repository.KVStore
	sessions repository.SessionStore
	closers  []func() error
}

func (s *backends) Close() {
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			log.Printf("Failed to close connection: %v", err)
		}
	}
}

func openStores(ctx context.Context, cfg *config.Config) (*backends, error) {
	s := &backends{}

	var redisClient *redis.Client
	if cfg.UsesRedis() {
		client, err := database.NewRedisClient(ctx, cfg.ToRedisConfig())
		if err != nil {
			return nil, err
		}
		redisClient = client
		s.closers = append(s.closers, client.Close)
	}

	switch {
	case cfg.UsesSQL():
		db, err := database.Open(ctx, cfg.ToDatabaseConfig())
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, db.Close)

		log.Println("🔄 Running migrations...")
		if err := database.Migrate(ctx, db); err != nil {
			s.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		s.kv = repository.NewSQLKVStore(db)
	case cfg.Storage.Backend == config.BackendRedis:
		s.kv = repository.NewRedisKVStore(redisClient, cfg.Redis.KeyPrefix)
	default:
		log.Println("Using in-memory storage; data is lost on exit")
		s.kv = repository.NewMemoryKVStore()
	}

	if cfg.Session.Backend == config.BackendRedis {
		s.sessions = repository.NewRedisSessionStore(redisClient, cfg.Redis.KeyPrefix)
	} else {
		s.sessions = repository.NewMemorySessionStore(nil)
	}

	return s, nil
}

func newEmailService(ctx context.Context, cfg *config.Config) email.EmailService {
	if cfg.Email.TestingMode || cfg.IsDevelopment() {
		log.Println("Using mock email service for development/testing")
		return email.NewMockEmailService()
	}

	log.Println("Using SMTP email service")
	smtpService := email.NewSMTPEmailService(cfg.ToEmailConfig())
	if err := smtpService.TestConnection(ctx); err != nil {
		log.Printf("Warning: SMTP connection test failed: %v", err)
	} else {
		log.Println("SMTP connection test successful")
	}
	return smtpService
}
