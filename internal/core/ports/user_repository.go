package ports

import (
	"context"

	"github.com/codeforge/problemhub/internal/core/domain"
)

// UserRepository is the credential store's persistence. Implementations
// assign monotonically increasing ids on Create and return
// domain.ErrDuplicateEmail when the email is taken.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
