package ports

import (
	"context"
	"time"

	"github.com/codeforge/problemhub/internal/core/domain"
)

// ProblemRepository defines persistence operations for problems.
type ProblemRepository interface {
	Create(ctx context.Context, p *domain.Problem) (*domain.Problem, error)
	FindByID(ctx context.Context, id int64) (*domain.Problem, error)
	Update(ctx context.Context, p *domain.Problem) (*domain.Problem, error)
	Delete(ctx context.Context, id int64) error
	// List returns every problem in insertion order. Filtering, sorting and
	// pagination happen in the service because they depend on ratings.
	List(ctx context.Context) ([]*domain.Problem, error)
}

// StatsCache stores the rendered problem statistics between mutations.
type StatsCache interface {
	Get(ctx context.Context) (*ProblemStats, bool, error)
	Set(ctx context.Context, stats *ProblemStats, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
