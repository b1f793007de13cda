package ports

import (
	"context"

	"github.com/codeforge/problemhub/internal/core/domain"
)

// RegisterInput carries the fields accepted by POST /api/auth/register.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	User  *domain.PublicUser
	Token string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Authenticate verifies a bearer token and resolves the live identity.
	// It returns domain.ErrInvalidToken or domain.ErrUserNotFound.
	Authenticate(ctx context.Context, token string) (*domain.PublicUser, error)
}

// TokenService issues and verifies stateless signed bearer tokens.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*domain.Claims, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// UpdateUserInput lists the profile fields a caller may change. Nil means
// unchanged.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Role     *string
}

type UserService interface {
	List(ctx context.Context) ([]*domain.PublicUser, error)
	Get(ctx context.Context, actor *domain.PublicUser, id int64) (*domain.PublicUser, error)
	Update(ctx context.Context, actor *domain.PublicUser, id int64, in UpdateUserInput) (*domain.PublicUser, error)
	Delete(ctx context.Context, id int64) error
}
