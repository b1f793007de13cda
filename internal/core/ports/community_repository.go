package ports

import (
	"context"

	"github.com/codeforge/problemhub/internal/core/domain"
)

// TagRepository defines persistence operations for tags.
type TagRepository interface {
	Create(ctx context.Context, t *domain.Tag) (*domain.Tag, error)
	FindByID(ctx context.Context, id int64) (*domain.Tag, error)
	// FindByName matches case-insensitively.
	FindByName(ctx context.Context, name string) (*domain.Tag, error)
	Update(ctx context.Context, t *domain.Tag) (*domain.Tag, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Tag, error)
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id int64) (*domain.Comment, error)
	UpdateContent(ctx context.Context, id int64, content string) (*domain.Comment, error)
	// Delete removes the comment together with its replies.
	Delete(ctx context.Context, id int64) error
	ListRoots(ctx context.Context, problemID int64) ([]*domain.Comment, error)
	ListReplies(ctx context.Context, parentID int64) ([]*domain.Comment, error)
}

// RatingRepository defines persistence operations for ratings.
type RatingRepository interface {
	// Upsert creates the (user, problem) rating or replaces its value.
	Upsert(ctx context.Context, userID, problemID int64, value int) (*domain.Rating, error)
	// Find returns nil, nil when the user has not rated the problem.
	Find(ctx context.Context, userID, problemID int64) (*domain.Rating, error)
	ListByProblem(ctx context.Context, problemID int64) ([]*domain.Rating, error)
}
