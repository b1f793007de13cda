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

const (
	minPasswordLength = 6
	// bcrypt only reads the first 72 bytes and refuses longer input.
	maxPasswordBytes = 72
)

var errPasswordTooLong = domain.NewValidationError("Password must be at most 72 bytes long")

// AuthService implements registration, login and per-request token
// authentication on top of the credential store.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.NewValidationError("Username, email and password are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.NewValidationError("Password must be at least 6 characters long")
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, errPasswordTooLong
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, in.Username, in.Email, in.Password, role)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return &ports.AuthResult{User: user.Public(), Token: token}, nil
}

// createUser hashes the password and persists a new identity. The email
// uniqueness check runs before hashing so duplicates fail fast; the
// repository enforces it again on insert.
func (s *AuthService) createUser(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error) {
	email = normalizeEmail(email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.NewValidationError("Email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: user.Public(), Token: token}, nil
}

// Authenticate verifies token and re-reads the identity it names. The
// returned role is the stored one, not the role embedded in the token, so a
// downgrade takes effect on the next request.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.PublicUser, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if user.Role != claims.Role {
		s.log.Debug().
			Int64("user_id", user.ID).
			Str("token_role", string(claims.Role)).
			Str("current_role", string(user.Role)).
			Msg("token role is stale, using stored role")
	}
	return user.Public(), nil
}

// EnsureAdmin creates the bootstrap admin account when no identity uses email.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) (*domain.PublicUser, error) {
	existing, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return existing.Public(), nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user, err := s.createUser(ctx, username, email, password, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("email", user.Email).Msg("admin user initialized")
	return user.Public(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
