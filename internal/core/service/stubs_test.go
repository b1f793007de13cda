package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	clone := *u
	clone.ID = r.nextID
	r.nextID++
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.users[u.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	r.users[u.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for id := int64(1); id < r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// seed stores u directly, bypassing hashing.
func (r *stubUserRepo) seed(username, email string, role domain.Role) *domain.PublicUser {
	u, _ := r.Create(context.Background(), &domain.User{Username: username, Email: email, Role: role})
	return u.Public()
}

type stubProblemRepo struct {
	problems []*domain.Problem
	nextID   int64
}

func newStubProblemRepo() *stubProblemRepo {
	return &stubProblemRepo{nextID: 1}
}

func (r *stubProblemRepo) Create(_ context.Context, p *domain.Problem) (*domain.Problem, error) {
	clone := *p
	clone.ID = r.nextID
	r.nextID++
	r.problems = append(r.problems, &clone)
	out := clone
	return &out, nil
}

func (r *stubProblemRepo) FindByID(_ context.Context, id int64) (*domain.Problem, error) {
	for _, p := range r.problems {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProblemNotFound
}

func (r *stubProblemRepo) Update(_ context.Context, p *domain.Problem) (*domain.Problem, error) {
	for i, existing := range r.problems {
		if existing.ID == p.ID {
			clone := *p
			r.problems[i] = &clone
			out := clone
			return &out, nil
		}
	}
	return nil, domain.ErrProblemNotFound
}

func (r *stubProblemRepo) Delete(_ context.Context, id int64) error {
	for i, p := range r.problems {
		if p.ID == id {
			r.problems = append(r.problems[:i], r.problems[i+1:]...)
			return nil
		}
	}
	return domain.ErrProblemNotFound
}

func (r *stubProblemRepo) List(_ context.Context) ([]*domain.Problem, error) {
	out := make([]*domain.Problem, 0, len(r.problems))
	for _, p := range r.problems {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

type stubRatingRepo struct {
	ratings []*domain.Rating
	nextID  int64
}

func newStubRatingRepo() *stubRatingRepo {
	return &stubRatingRepo{nextID: 1}
}

func (r *stubRatingRepo) Upsert(_ context.Context, userID, problemID int64, value int) (*domain.Rating, error) {
	now := time.Now().UTC()
	for _, existing := range r.ratings {
		if existing.UserID == userID && existing.ProblemID == problemID {
			existing.Value = value
			existing.UpdatedAt = now
			clone := *existing
			return &clone, nil
		}
	}
	rating := &domain.Rating{ID: r.nextID, UserID: userID, ProblemID: problemID, Value: value, CreatedAt: now, UpdatedAt: now}
	r.nextID++
	r.ratings = append(r.ratings, rating)
	clone := *rating
	return &clone, nil
}

func (r *stubRatingRepo) Find(_ context.Context, userID, problemID int64) (*domain.Rating, error) {
	for _, existing := range r.ratings {
		if existing.UserID == userID && existing.ProblemID == problemID {
			clone := *existing
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubRatingRepo) ListByProblem(_ context.Context, problemID int64) ([]*domain.Rating, error) {
	var out []*domain.Rating
	for _, existing := range r.ratings {
		if existing.ProblemID == problemID {
			clone := *existing
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubTagRepo struct {
	tags   []*domain.Tag
	nextID int64
}

func newStubTagRepo() *stubTagRepo {
	return &stubTagRepo{nextID: 1}
}

func (r *stubTagRepo) Create(_ context.Context, t *domain.Tag) (*domain.Tag, error) {
	clone := *t
	clone.ID = r.nextID
	r.nextID++
	r.tags = append(r.tags, &clone)
	out := clone
	return &out, nil
}

func (r *stubTagRepo) FindByID(_ context.Context, id int64) (*domain.Tag, error) {
	for _, t := range r.tags {
		if t.ID == id {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTagNotFound
}

func (r *stubTagRepo) FindByName(_ context.Context, name string) (*domain.Tag, error) {
	for _, t := range r.tags {
		if strings.EqualFold(t.Name, name) {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTagNotFound
}

func (r *stubTagRepo) Update(_ context.Context, t *domain.Tag) (*domain.Tag, error) {
	for i, existing := range r.tags {
		if existing.ID == t.ID {
			clone := *t
			r.tags[i] = &clone
			out := clone
			return &out, nil
		}
	}
	return nil, domain.ErrTagNotFound
}

func (r *stubTagRepo) Delete(_ context.Context, id int64) error {
	for i, t := range r.tags {
		if t.ID == id {
			r.tags = append(r.tags[:i], r.tags[i+1:]...)
			return nil
		}
	}
	return domain.ErrTagNotFound
}

func (r *stubTagRepo) List(_ context.Context) ([]*domain.Tag, error) {
	out := make([]*domain.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

type stubCommentRepo struct {
	comments []*domain.Comment
	nextID   int64
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{nextID: 1}
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	clone := *c
	clone.ID = r.nextID
	r.nextID++
	r.comments = append(r.comments, &clone)
	out := clone
	return &out, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id int64) (*domain.Comment, error) {
	for _, c := range r.comments {
		if c.ID == id {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCommentNotFound
}

func (r *stubCommentRepo) UpdateContent(_ context.Context, id int64, content string) (*domain.Comment, error) {
	for _, c := range r.comments {
		if c.ID == id {
			c.Content = content
			c.UpdatedAt = time.Now().UTC()
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCommentNotFound
}

func (r *stubCommentRepo) Delete(_ context.Context, id int64) error {
	found := false
	kept := r.comments[:0]
	for _, c := range r.comments {
		if c.ID == id {
			found = true
			continue
		}
		if c.ParentID != nil && *c.ParentID == id {
			continue
		}
		kept = append(kept, c)
	}
	r.comments = kept
	if !found {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *stubCommentRepo) ListRoots(_ context.Context, problemID int64) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.ProblemID == problemID && c.ParentID == nil {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCommentRepo) ListReplies(_ context.Context, parentID int64) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.ParentID != nil && *c.ParentID == parentID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubFileRepo struct {
	files     []*domain.File
	nextID    int64
	createErr error
}

func newStubFileRepo() *stubFileRepo {
	return &stubFileRepo{nextID: 1}
}

func (r *stubFileRepo) Create(_ context.Context, f *domain.File) (*domain.File, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *f
	clone.ID = r.nextID
	r.nextID++
	r.files = append(r.files, &clone)
	out := clone
	return &out, nil
}

func (r *stubFileRepo) FindByID(_ context.Context, id int64) (*domain.File, error) {
	for _, f := range r.files {
		if f.ID == id {
			clone := *f
			return &clone, nil
		}
	}
	return nil, domain.ErrFileNotFound
}

func (r *stubFileRepo) Delete(_ context.Context, id int64) error {
	for i, f := range r.files {
		if f.ID == id {
			r.files = append(r.files[:i], r.files[i+1:]...)
			return nil
		}
	}
	return domain.ErrFileNotFound
}

func (r *stubFileRepo) ListByProblem(_ context.Context, problemID int64) ([]*domain.File, error) {
	var out []*domain.File
	for _, f := range r.files {
		if f.ProblemID == problemID {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{blobs: make(map[string][]byte)}
}

func (s *stubBlobStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	return nil
}

func (s *stubBlobStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, domain.ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *stubBlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

// stubCleaner deletes synchronously so tests can observe the result.
type stubCleaner struct {
	blobs  ports.BlobStore
	queued []string
}

func (c *stubCleaner) Enqueue(key string) {
	c.queued = append(c.queued, key)
	_ = c.blobs.Delete(context.Background(), key)
}

type stubStatsCache struct {
	stats       *ports.ProblemStats
	gets        int
	invalidated int
	getErr      error
}

func (c *stubStatsCache) Get(context.Context) (*ports.ProblemStats, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	if c.stats == nil {
		return nil, false, nil
	}
	clone := *c.stats
	return &clone, true, nil
}

func (c *stubStatsCache) Set(_ context.Context, stats *ports.ProblemStats, _ time.Duration) error {
	clone := *stats
	c.stats = &clone
	return nil
}

func (c *stubStatsCache) Invalidate(context.Context) error {
	c.invalidated++
	c.stats = nil
	return nil
}

var errStore = errors.New("store unavailable")

func validationMessage(err error) string {
	var v *domain.ValidationError
	if errors.As(err, &v) {
		return v.Message
	}
	return ""
}
