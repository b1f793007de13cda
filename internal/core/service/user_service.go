package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/internal/core/ports"
)

// UserService manages profiles. Every value it returns is stripped of the
// password hash.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// Get returns user id. Only the user themself or an admin may read it.
func (s *UserService) Get(ctx context.Context, actor *domain.PublicUser, id int64) (*domain.PublicUser, error) {
	if !selfOrAdmin(actor, id) {
		return nil, domain.ErrAccessDenied
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// Update applies a profile change. The ownership check runs first, then the
// existence check, then the role rule: a role field from a non-admin is
// rejected even on the caller's own record.
func (s *UserService) Update(ctx context.Context, actor *domain.PublicUser, id int64, in ports.UpdateUserInput) (*domain.PublicUser, error) {
	if !selfOrAdmin(actor, id) {
		return nil, domain.ErrAccessDenied
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// An empty role means the field was left out, never a demotion.
	if in.Role != nil && strings.TrimSpace(*in.Role) == "" {
		in.Role = nil
	}
	if in.Role != nil && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrRoleChangeForbidden
	}

	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return nil, domain.NewValidationError("Username cannot be empty")
		}
		user.Username = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, domain.NewValidationError("Email cannot be empty")
		}
		if email != user.Email {
			if other, err := s.users.FindByEmail(ctx, email); err == nil && other.ID != user.ID {
				return nil, domain.ErrDuplicateEmail
			} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
		}
		user.Email = email
	}
	if in.Role != nil {
		role, err := domain.ParseRole(*in.Role)
		if err != nil {
			return nil, err
		}
		if role != user.Role {
			s.log.Info().
				Int64("user_id", user.ID).
				Int64("changed_by", actor.ID).
				Str("from", string(user.Role)).
				Str("to", string(role)).
				Msg("role changed")
		}
		user.Role = role
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	return updated.Public(), nil
}

// Delete removes an identity. Tokens already issued for it keep a valid
// signature but fail authentication from the next request on.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func selfOrAdmin(actor *domain.PublicUser, ownerID int64) bool {
	if actor == nil {
		return false
	}
	return actor.ID == ownerID || actor.Role == domain.RoleAdmin
}
