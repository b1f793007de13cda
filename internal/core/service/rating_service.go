package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/internal/core/ports"
)

type RatingService struct {
	ratings  ports.RatingRepository
	problems ports.ProblemRepository
	log      zerolog.Logger
}

func NewRatingService(ratings ports.RatingRepository, problems ports.ProblemRepository, log zerolog.Logger) *RatingService {
	return &RatingService{ratings: ratings, problems: problems, log: log}
}

// Rate records the actor's score for a problem, replacing an earlier one.
func (s *RatingService) Rate(ctx context.Context, actor *domain.PublicUser, problemID int64, value int) (*ports.RateResult, error) {
	if problemID <= 0 || value == 0 {
		return nil, domain.NewValidationError("ProblemId and value are required")
	}
	if value < domain.MinRatingValue || value > domain.MaxRatingValue {
		return nil, domain.NewValidationError("Rating value must be between 1 and 5")
	}
	if _, err := s.problems.FindByID(ctx, problemID); err != nil {
		return nil, err
	}

	rating, err := s.ratings.Upsert(ctx, actor.ID, problemID, value)
	if err != nil {
		return nil, err
	}

	summary, err := s.Summary(ctx, problemID)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int64("user_id", actor.ID).Int64("problem_id", problemID).Int("value", value).Msg("problem rated")
	return &ports.RateResult{Rating: rating, RatingSummary: *summary}, nil
}

func (s *RatingService) Summary(ctx context.Context, problemID int64) (*ports.RatingSummary, error) {
	ratings, err := s.ratings.ListByProblem(ctx, problemID)
	if err != nil {
		return nil, err
	}
	summary := summarizeRatings(ratings)
	return &summary, nil
}

func (s *RatingService) UserRating(ctx context.Context, userID, problemID int64) (*domain.Rating, error) {
	return s.ratings.Find(ctx, userID, problemID)
}

// summarizeRatings averages values rounded to one decimal; no ratings is 0.
func summarizeRatings(ratings []*domain.Rating) ports.RatingSummary {
	if len(ratings) == 0 {
		return ports.RatingSummary{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	avg := float64(sum) / float64(len(ratings))
	return ports.RatingSummary{
		AverageRating: math.Round(avg*10) / 10,
		RatingCount:   len(ratings),
	}
}
