package ports

import (
	"context"

	"github.com/codeforge/problemhub/internal/core/domain"
)

// ListProblemsInput carries the query parameters of GET /api/problems.
type ListProblemsInput struct {
	Difficulty string
	Tags       []string
	Search     string
	MinRating  *float64
	MaxRating  *float64
	Page       int
	Limit      int
	SortBy     string // createdAt (default), title, difficulty, rating
	SortOrder  string // desc (default) or asc
}

// ProblemView is a problem decorated with its rating aggregate.
type ProblemView struct {
	domain.Problem
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
}

// ProblemPage is one page of GET /api/problems.
type ProblemPage struct {
	Problems   []ProblemView
	Total      int
	Page       int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// TagCount is one entry of the popular tag ranking.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ProblemStats backs GET /api/problems/stats/overview.
type ProblemStats struct {
	TotalProblems int            `json:"totalProblems"`
	ByDifficulty  map[string]int `json:"byDifficulty"`
	PopularTags   []TagCount     `json:"popularTags"`
	TotalTags     int            `json:"totalTags"`
}

// CreateProblemInput carries the fields of a new problem.
type CreateProblemInput struct {
	Title       string
	Description string
	Difficulty  string
	Examples    []domain.Example
	Tags        []string
	CreatedBy   int64
}

// UpdateProblemInput lists the mutable fields; nil means unchanged.
type UpdateProblemInput struct {
	Title       *string
	Description *string
	Difficulty  *string
	Examples    *[]domain.Example
	Tags        *[]string
}

type ProblemService interface {
	List(ctx context.Context, in ListProblemsInput) (*ProblemPage, error)
	Stats(ctx context.Context) (*ProblemStats, error)
	Get(ctx context.Context, id int64) (*ProblemView, error)
	Create(ctx context.Context, in CreateProblemInput) (*domain.Problem, error)
	Update(ctx context.Context, id int64, in UpdateProblemInput) (*domain.Problem, error)
	Delete(ctx context.Context, id int64) error
}
