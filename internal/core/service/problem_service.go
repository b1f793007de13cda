package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/internal/core/ports"
)

const (
	defaultProblemPageSize = 10
	maxPageSize            = 100
	popularTagsInStats     = 5
)

type ProblemService struct {
	problems ports.ProblemRepository
	ratings  ports.RatingRepository
	cache    ports.StatsCache
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewProblemService wires the problem use cases. cache may be nil.
func NewProblemService(problems ports.ProblemRepository, ratings ports.RatingRepository, cache ports.StatsCache, cacheTTL time.Duration, log zerolog.Logger) *ProblemService {
	if cache == nil {
		cache = noopStatsCache{}
	}
	return &ProblemService{problems: problems, ratings: ratings, cache: cache, cacheTTL: cacheTTL, log: log}
}

// List filters, sorts and paginates problems the same way the public
// catalogue does: difficulty, any-of tags, case-insensitive search on title
// and description, then the rating window.
func (s *ProblemService) List(ctx context.Context, in ports.ListProblemsInput) (*ports.ProblemPage, error) {
	all, err := s.problems.List(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(in.Search))
	views := make([]ports.ProblemView, 0, len(all))
	for _, p := range all {
		if in.Difficulty != "" && string(p.Difficulty) != in.Difficulty {
			continue
		}
		if len(in.Tags) > 0 && !p.HasAnyTag(in.Tags) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}

		view, err := s.decorate(ctx, p)
		if err != nil {
			return nil, err
		}
		if in.MinRating != nil && view.AverageRating < *in.MinRating {
			continue
		}
		if in.MaxRating != nil && view.AverageRating > *in.MaxRating {
			continue
		}
		views = append(views, *view)
	}

	sortProblems(views, in.SortBy, in.SortOrder)

	page, limit := normalizePage(in.Page, in.Limit, defaultProblemPageSize)
	start, end := pageBounds(len(views), page, limit)

	return &ports.ProblemPage{
		Problems:   views[start:end],
		Total:      len(views),
		Page:       page,
		TotalPages: totalPages(len(views), limit),
		HasNext:    end < len(views),
		HasPrev:    start > 0,
	}, nil
}

func sortProblems(views []ports.ProblemView, sortBy, sortOrder string) {
	less := func(a, b ports.ProblemView) bool { return a.CreatedAt.Before(b.CreatedAt) }
	switch sortBy {
	case "title":
		less = func(a, b ports.ProblemView) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case "difficulty":
		less = func(a, b ports.ProblemView) bool { return a.Difficulty.Rank() < b.Difficulty.Rank() }
	case "rating":
		less = func(a, b ports.ProblemView) bool { return a.AverageRating < b.AverageRating }
	}

	desc := sortOrder != "asc"
	sort.SliceStable(views, func(i, j int) bool {
		if desc {
			return less(views[j], views[i])
		}
		return less(views[i], views[j])
	})
}

func (s *ProblemService) Get(ctx context.Context, id int64) (*ports.ProblemView, error) {
	p, err := s.problems.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, p)
}

func (s *ProblemService) decorate(ctx context.Context, p *domain.Problem) (*ports.ProblemView, error) {
	ratings, err := s.ratings.ListByProblem(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	summary := summarizeRatings(ratings)
	return &ports.ProblemView{
		Problem:       *p,
		AverageRating: summary.AverageRating,
		RatingCount:   summary.RatingCount,
	}, nil
}

// Stats serves the overview from cache when possible. Cache failures are
// logged and the stats are computed from the store.
func (s *ProblemService) Stats(ctx context.Context) (*ports.ProblemStats, error) {
	if cached, ok, err := s.cache.Get(ctx); err != nil {
		s.log.Warn().Err(err).Msg("stats cache read failed")
	} else if ok {
		return cached, nil
	}

	all, err := s.problems.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ports.ProblemStats{
		TotalProblems: len(all),
		ByDifficulty:  make(map[string]int),
		PopularTags:   []ports.TagCount{},
	}
	counts := make(map[string]int)
	var order []string
	for _, p := range all {
		stats.ByDifficulty[string(p.Difficulty)]++
		for _, tag := range p.Tags {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}
	for _, tag := range order {
		stats.PopularTags = append(stats.PopularTags, ports.TagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(stats.PopularTags, func(i, j int) bool {
		return stats.PopularTags[i].Count > stats.PopularTags[j].Count
	})
	if len(stats.PopularTags) > popularTagsInStats {
		stats.PopularTags = stats.PopularTags[:popularTagsInStats]
	}
	stats.TotalTags = len(counts)

	if err := s.cache.Set(ctx, stats, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("stats cache write failed")
	}
	return stats, nil
}

func (s *ProblemService) Create(ctx context.Context, in ports.CreateProblemInput) (*domain.Problem, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" || in.Difficulty == "" {
		return nil, domain.NewValidationError("Title, description and difficulty are required")
	}
	difficulty, err := parseDifficulty(in.Difficulty)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Problem{
		Title:       in.Title,
		Description: in.Description,
		Difficulty:  difficulty,
		Examples:    in.Examples,
		Tags:        in.Tags,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Examples == nil {
		p.Examples = []domain.Example{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	created, err := s.problems.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	s.log.Info().Int64("problem_id", created.ID).Int64("created_by", in.CreatedBy).Msg("problem created")
	return created, nil
}

func (s *ProblemService) Update(ctx context.Context, id int64, in ports.UpdateProblemInput) (*domain.Problem, error) {
	p, err := s.problems.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Difficulty != nil {
		difficulty, err := parseDifficulty(*in.Difficulty)
		if err != nil {
			return nil, err
		}
		p.Difficulty = difficulty
	}
	if in.Examples != nil {
		p.Examples = *in.Examples
	}
	if in.Tags != nil {
		p.Tags = *in.Tags
	}
	p.UpdatedAt = time.Now().UTC()

	updated, err := s.problems.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return updated, nil
}

func (s *ProblemService) Delete(ctx context.Context, id int64) error {
	if err := s.problems.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	s.log.Info().Int64("problem_id", id).Msg("problem deleted")
	return nil
}

func (s *ProblemService) invalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}

func parseDifficulty(s string) (domain.Difficulty, error) {
	d := domain.Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d.Rank() == 0 {
		return "", domain.NewValidationError("Difficulty must be one of: easy, medium, hard")
	}
	return d, nil
}

type noopStatsCache struct{}

func (noopStatsCache) Get(context.Context) (*ports.ProblemStats, bool, error) { return nil, false, nil }
func (noopStatsCache) Set(context.Context, *ports.ProblemStats, time.Duration) error {
	return nil
}
func (noopStatsCache) Invalidate(context.Context) error { return nil }
