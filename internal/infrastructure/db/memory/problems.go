package memory

import (
	"context"

	"github.com/codeforge/problemhub/internal/core/domain"
)

type ProblemRepository struct {
	s *Store
}

func cloneProblem(p *domain.Problem) *domain.Problem {
	c := *p
	c.Examples = append([]domain.Example(nil), p.Examples...)
	c.Tags = append([]string(nil), p.Tags...)
	if c.Examples == nil {
		c.Examples = []domain.Example{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c
}

func (r *ProblemRepository) Create(_ context.Context, p *domain.Problem) (*domain.Problem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextProblem++
	stored := cloneProblem(p)
	stored.ID = r.s.nextProblem
	r.s.problems[stored.ID] = stored
	return cloneProblem(stored), nil
}

func (r *ProblemRepository) FindByID(_ context.Context, id int64) (*domain.Problem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.problems[id]
	if !ok {
		return nil, domain.ErrProblemNotFound
	}
	return cloneProblem(p), nil
}

func (r *ProblemRepository) Update(_ context.Context, p *domain.Problem) (*domain.Problem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.problems[p.ID]; !ok {
		return nil, domain.ErrProblemNotFound
	}
	stored := cloneProblem(p)
	r.s.problems[p.ID] = stored
	return cloneProblem(stored), nil
}

func (r *ProblemRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.problems[id]; !ok {
		return domain.ErrProblemNotFound
	}
	delete(r.s.problems, id)
	return nil
}

func (r *ProblemRepository) List(_ context.Context) ([]*domain.Problem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Problem, 0, len(r.s.problems))
	for _, id := range sortedIDs(r.s.problems) {
		out = append(out, cloneProblem(r.s.problems[id]))
	}
	return out, nil
}
