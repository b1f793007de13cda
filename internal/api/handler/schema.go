package handler

import (
	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string             `json:"message"`
	User    *domain.PublicUser `json:"user"`
	Token   string             `json:"token"`
}

type userResponse struct {
	User *domain.PublicUser `json:"user"`
}

// --- Users ---

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role"`
}

type userListResponse struct {
	Users []*domain.PublicUser `json:"users"`
	Total int                  `json:"total"`
}

// --- Problems ---

type exampleRequest struct {
	Input       string `json:"input" validate:"required"`
	Output      string `json:"output" validate:"required"`
	Explanation string `json:"explanation"`
}

type createProblemRequest struct {
	Title       string           `json:"title" validate:"omitempty,max=200"`
	Description string           `json:"description"`
	Difficulty  string           `json:"difficulty"`
	Examples    []exampleRequest `json:"examples" validate:"omitempty,dive"`
	Tags        []string         `json:"tags"`
}

type updateProblemRequest struct {
	Title       *string           `json:"title" validate:"omitempty,max=200"`
	Description *string           `json:"description"`
	Difficulty  *string           `json:"difficulty"`
	Examples    *[]exampleRequest `json:"examples" validate:"omitempty,dive"`
	Tags        *[]string         `json:"tags"`
}

type problemListResponse struct {
	Problems   []ports.ProblemView `json:"problems"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"totalPages"`
	HasNext    bool                `json:"hasNext"`
	HasPrev    bool                `json:"hasPrev"`
}

func toExamples(reqs []exampleRequest) []domain.Example {
	out := make([]domain.Example, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, domain.Example{Input: r.Input, Output: r.Output, Explanation: r.Explanation})
	}
	return out
}

// --- Tags ---

type tagRequest struct {
	Name        string `json:"name" validate:"omitempty,max=50"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

type tagListResponse struct {
	Tags       []*domain.Tag `json:"tags"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

type popularTagsResponse struct {
	Tags  []*domain.Tag `json:"tags"`
	Total int           `json:"total"`
}

// --- Comments ---

type createCommentRequest struct {
	Content   string `json:"content"`
	ProblemID int64  `json:"problemId"`
	ParentID  *int64 `json:"parentId"`
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

type commentListResponse struct {
	Comments []ports.CommentThread `json:"comments"`
	Total    int                   `json:"total"`
}

// --- Ratings ---

type rateRequest struct {
	ProblemID int64 `json:"problemId"`
	Value     int   `json:"value"`
}

type rateResponse struct {
	Rating        *domain.Rating `json:"rating"`
	AverageRating float64        `json:"averageRating"`
	RatingCount   int            `json:"ratingCount"`
}

type ratingSummaryResponse struct {
	AverageRating float64        `json:"averageRating"`
	RatingCount   int            `json:"ratingCount"`
	UserRating    *domain.Rating `json:"userRating"`
}

type myRatingResponse struct {
	UserRating *domain.Rating `json:"userRating"`
}

// --- Files ---

type fileListResponse struct {
	Files []*domain.File `json:"files"`
	Total int            `json:"total"`
}

type uploadResponse struct {
	Message string       `json:"message"`
	File    *domain.File `json:"file"`
}
