package memory

import (
	"context"

	"github.com/codeforge/problemhub/internal/core/domain"
)

type FileRepository struct {
	s *Store
}

func cloneFile(f *domain.File) *domain.File {
	c := *f
	return &c
}

func (r *FileRepository) Create(_ context.Context, f *domain.File) (*domain.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextFile++
	stored := cloneFile(f)
	stored.ID = r.s.nextFile
	r.s.files[stored.ID] = stored
	return cloneFile(stored), nil
}

func (r *FileRepository) FindByID(_ context.Context, id int64) (*domain.File, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	f, ok := r.s.files[id]
	if !ok {
		return nil, domain.ErrFileNotFound
	}
	return cloneFile(f), nil
}

func (r *FileRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.files[id]; !ok {
		return domain.ErrFileNotFound
	}
	delete(r.s.files, id)
	return nil
}

func (r *FileRepository) ListByProblem(_ context.Context, problemID int64) ([]*domain.File, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*domain.File{}
	for _, id := range sortedIDs(r.s.files) {
		if f := r.s.files[id]; f.ProblemID == problemID {
			out = append(out, cloneFile(f))
		}
	}
	return out, nil
}
