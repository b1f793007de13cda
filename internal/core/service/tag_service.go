package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/internal/core/ports"
)

const (
	defaultTagPageSize = 20
	popularTagLimit    = 10
)

type TagService struct {
	tags     ports.TagRepository
	problems ports.ProblemRepository
	log      zerolog.Logger
}

func NewTagService(tags ports.TagRepository, problems ports.ProblemRepository, log zerolog.Logger) *TagService {
	return &TagService{tags: tags, problems: problems, log: log}
}

func (s *TagService) List(ctx context.Context, in ports.ListTagsInput) (*ports.TagPage, error) {
	all, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(in.Search))
	filtered := make([]*domain.Tag, 0, len(all))
	for _, t := range all {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Name), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		filtered = append(filtered, t)
	}

	page, limit := normalizePage(in.Page, in.Limit, defaultTagPageSize)
	start, end := pageBounds(len(filtered), page, limit)
	return &ports.TagPage{
		Tags:       filtered[start:end],
		Total:      len(filtered),
		Page:       page,
		TotalPages: totalPages(len(filtered), limit),
	}, nil
}

// Popular ranks tags by how many problems use them. Ties keep creation order.
func (s *TagService) Popular(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}
	problems, err := s.problems.List(ctx)
	if err != nil {
		return nil, err
	}

	usage := make(map[string]int)
	for _, p := range problems {
		for _, name := range p.Tags {
			usage[strings.ToLower(name)]++
		}
	}

	ranked := append([]*domain.Tag(nil), tags...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return usage[strings.ToLower(ranked[i].Name)] > usage[strings.ToLower(ranked[j].Name)]
	})
	if len(ranked) > popularTagLimit {
		ranked = ranked[:popularTagLimit]
	}
	return ranked, nil
}

func (s *TagService) Create(ctx context.Context, in ports.TagInput) (*domain.Tag, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("Tag name is required")
	}
	if err := s.ensureNameFree(ctx, name); err != nil {
		return nil, err
	}

	color := in.Color
	if color == "" {
		color = domain.DefaultTagColor
	}
	created, err := s.tags.Create(ctx, &domain.Tag{
		Name:        name,
		Description: in.Description,
		Color:       color,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("tag_id", created.ID).Str("name", created.Name).Msg("tag created")
	return created, nil
}

// Update changes only the non-empty fields of in.
func (s *TagService) Update(ctx context.Context, id int64, in ports.TagInput) (*domain.Tag, error) {
	tag, err := s.tags.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name != "" && name != tag.Name {
		if !strings.EqualFold(name, tag.Name) {
			if err := s.ensureNameFree(ctx, name); err != nil {
				return nil, err
			}
		}
		tag.Name = name
	}
	if in.Description != "" {
		tag.Description = in.Description
	}
	if in.Color != "" {
		tag.Color = in.Color
	}
	return s.tags.Update(ctx, tag)
}

func (s *TagService) Delete(ctx context.Context, id int64) error {
	return s.tags.Delete(ctx, id)
}

func (s *TagService) ensureNameFree(ctx context.Context, name string) error {
	_, err := s.tags.FindByName(ctx, name)
	switch {
	case err == nil:
		return domain.ErrTagExists
	case errors.Is(err, domain.ErrTagNotFound):
		return nil
	default:
		return err
	}
}
