package memory

import (
	"context"
	"strings"
	"time"

	"github.com/codeforge/problemhub/internal/core/domain"
)

type TagRepository struct {
	s *Store
}

func cloneTag(t *domain.Tag) *domain.Tag {
	c := *t
	return &c
}

func (r *TagRepository) Create(_ context.Context, t *domain.Tag) (*domain.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.findByNameLocked(t.Name) != nil {
		return nil, domain.ErrTagExists
	}
	r.s.nextTag++
	stored := cloneTag(t)
	stored.ID = r.s.nextTag
	r.s.tags[stored.ID] = stored
	return cloneTag(stored), nil
}

func (r *TagRepository) FindByID(_ context.Context, id int64) (*domain.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tags[id]
	if !ok {
		return nil, domain.ErrTagNotFound
	}
	return cloneTag(t), nil
}

func (r *TagRepository) FindByName(_ context.Context, name string) (*domain.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if t := r.findByNameLocked(name); t != nil {
		return cloneTag(t), nil
	}
	return nil, domain.ErrTagNotFound
}

func (r *TagRepository) findByNameLocked(name string) *domain.Tag {
	for _, t := range r.s.tags {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return nil
}

func (r *TagRepository) Update(_ context.Context, t *domain.Tag) (*domain.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tags[t.ID]; !ok {
		return nil, domain.ErrTagNotFound
	}
	if other := r.findByNameLocked(t.Name); other != nil && other.ID != t.ID {
		return nil, domain.ErrTagExists
	}
	stored := cloneTag(t)
	r.s.tags[t.ID] = stored
	return cloneTag(stored), nil
}

func (r *TagRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tags[id]; !ok {
		return domain.ErrTagNotFound
	}
	delete(r.s.tags, id)
	return nil
}

func (r *TagRepository) List(_ context.Context) ([]*domain.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Tag, 0, len(r.s.tags))
	for _, id := range sortedIDs(r.s.tags) {
		out = append(out, cloneTag(r.s.tags[id]))
	}
	return out, nil
}

type CommentRepository struct {
	s *Store
}

func cloneComment(c *domain.Comment) *domain.Comment {
	out := *c
	if c.ParentID != nil {
		parent := *c.ParentID
		out.ParentID = &parent
	}
	return &out
}

func (r *CommentRepository) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextComment++
	stored := cloneComment(c)
	stored.ID = r.s.nextComment
	r.s.comments[stored.ID] = stored
	return cloneComment(stored), nil
}

func (r *CommentRepository) FindByID(_ context.Context, id int64) (*domain.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	return cloneComment(c), nil
}

func (r *CommentRepository) UpdateContent(_ context.Context, id int64, content string) (*domain.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	c.Content = content
	c.UpdatedAt = time.Now().UTC()
	return cloneComment(c), nil
}

func (r *CommentRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.s.comments, id)
	for cid, c := range r.s.comments {
		if c.ParentID != nil && *c.ParentID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

func (r *CommentRepository) ListRoots(_ context.Context, problemID int64) ([]*domain.Comment, error) {
	return r.list(func(c *domain.Comment) bool { return c.ProblemID == problemID && c.ParentID == nil }), nil
}

func (r *CommentRepository) ListReplies(_ context.Context, parentID int64) ([]*domain.Comment, error) {
	return r.list(func(c *domain.Comment) bool { return c.ParentID != nil && *c.ParentID == parentID }), nil
}

func (r *CommentRepository) list(match func(*domain.Comment) bool) []*domain.Comment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*domain.Comment{}
	for _, id := range sortedIDs(r.s.comments) {
		if c := r.s.comments[id]; match(c) {
			out = append(out, cloneComment(c))
		}
	}
	return out
}

type RatingRepository struct {
	s *Store
}

func cloneRating(rt *domain.Rating) *domain.Rating {
	c := *rt
	return &c
}

// Upsert is atomic under the store lock, so one (user, problem) pair never
// ends up with two ratings.
func (r *RatingRepository) Upsert(_ context.Context, userID, problemID int64, value int) (*domain.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now().UTC()
	for _, rt := range r.s.ratings {
		if rt.UserID == userID && rt.ProblemID == problemID {
			rt.Value = value
			rt.UpdatedAt = now
			return cloneRating(rt), nil
		}
	}
	r.s.nextRating++
	rt := &domain.Rating{
		ID:        r.s.nextRating,
		UserID:    userID,
		ProblemID: problemID,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.ratings[rt.ID] = rt
	return cloneRating(rt), nil
}

func (r *RatingRepository) Find(_ context.Context, userID, problemID int64) (*domain.Rating, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rt := range r.s.ratings {
		if rt.UserID == userID && rt.ProblemID == problemID {
			return cloneRating(rt), nil
		}
	}
	return nil, nil
}

func (r *RatingRepository) ListByProblem(_ context.Context, problemID int64) ([]*domain.Rating, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*domain.Rating{}
	for _, id := range sortedIDs(r.s.ratings) {
		if rt := r.s.ratings[id]; rt.ProblemID == problemID {
			out = append(out, cloneRating(rt))
		}
	}
	return out, nil
}
