package ports

import (
	"context"

	"github.com/codeforge/problemhub/internal/core/domain"
)

// ListTagsInput carries the query parameters of GET /api/tags.
type ListTagsInput struct {
	Search string
	Page   int
	Limit  int
}

// TagPage is one page of GET /api/tags.
type TagPage struct {
	Tags       []*domain.Tag
	Total      int
	Page       int
	TotalPages int
}

// TagInput carries tag fields; empty strings mean unchanged on update.
type TagInput struct {
	Name        string
	Description string
	Color       string
}

type TagService interface {
	List(ctx context.Context, in ListTagsInput) (*TagPage, error)
	Popular(ctx context.Context) ([]*domain.Tag, error)
	Create(ctx context.Context, in TagInput) (*domain.Tag, error)
	Update(ctx context.Context, id int64, in TagInput) (*domain.Tag, error)
	Delete(ctx context.Context, id int64) error
}

// CommentView is a comment with its author's public profile.
type CommentView struct {
	domain.Comment
	User *domain.PublicUser `json:"user"`
}

// CommentThread is a root comment with its replies.
type CommentThread struct {
	CommentView
	Replies []CommentView `json:"replies"`
}

// CreateCommentInput carries the fields of POST /api/comments.
type CreateCommentInput struct {
	Content   string
	ProblemID int64
	ParentID  *int64
}

type CommentService interface {
	ListThreads(ctx context.Context, problemID int64) ([]CommentThread, error)
	Create(ctx context.Context, actor *domain.PublicUser, in CreateCommentInput) (*CommentView, error)
	Update(ctx context.Context, actor *domain.PublicUser, id int64, content string) (*CommentView, error)
	Delete(ctx context.Context, actor *domain.PublicUser, id int64) error
}

// RatingSummary is the aggregate for one problem.
type RatingSummary struct {
	AverageRating float64
	RatingCount   int
}

// RateResult is returned after a rating upsert.
type RateResult struct {
	Rating *domain.Rating
	RatingSummary
}

type RatingService interface {
	Rate(ctx context.Context, actor *domain.PublicUser, problemID int64, value int) (*RateResult, error)
	Summary(ctx context.Context, problemID int64) (*RatingSummary, error)
	// UserRating returns nil, nil when the user has not rated the problem.
	UserRating(ctx context.Context, userID, problemID int64) (*domain.Rating, error)
}
