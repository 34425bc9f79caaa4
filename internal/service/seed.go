package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gurkanbulca/teamflow/internal/models"
)

// DemoPassword is shared by all demo accounts.
const DemoPassword = "demo123"

// DemoUsers is the team seeded into an empty workspace.
var DemoUsers = []RegisterInput{
	{Name: "Alex Johnson", Email: "alex@demo.com", Password: DemoPassword, Role: models.RoleManager},
	{Name: "Sarah Wilson", Email: "sarah@demo.com", Password: DemoPassword, Role: models.RoleDeveloper},
	{Name: "Mike Chen", Email: "mike@demo.com", Password: DemoPassword, Role: models.RoleDesigner},
	{Name: "Emma Davis", Email: "emma@demo.com", Password: DemoPassword, Role: models.RoleQA},
}

// SeedDemoUsers registers the demo team when no users exist yet.
func (s *IdentityService) SeedDemoUsers(ctx context.Context) error {
	if s.UserCount() > 0 {
		return nil
	}

	for _, input := range DemoUsers {
		if _, err := s.seedUser(ctx, input); err != nil {
			if errors.Is(err, ErrDuplicateEmail) {
				continue
			}
			return fmt.Errorf("seed demo user %s: %w", input.Email, err)
		}
	}

	log.Printf("🌱 Seeded %d demo users", len(DemoUsers))
	return nil
}

// seedUser registers a demo account. Demo passwords are fixed, so the
// configured minimum length does not apply to them.
func (s *IdentityService) seedUser(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := s.validation.validateRegisterInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := s.passwordManager.HashFixedPassword(input.Password)
	if err != nil {
		return nil, err
	}
	return s.addUser(ctx, input, hashedPassword)
}
