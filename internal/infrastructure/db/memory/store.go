// Package memory holds every resource in process memory. It is the default
// store for development and tests; state is lost on restart.
package memory

import (
	"sort"
	"sync"

	"github.com/codeforge/problemhub/internal/core/domain"
)

// Store guards all collections with one lock so cross-collection updates
// (a cascading comment delete, an email uniqueness check) are atomic.
type Store struct {
	mu sync.RWMutex

	users    map[int64]*domain.User
	problems map[int64]*domain.Problem
	tags     map[int64]*domain.Tag
	comments map[int64]*domain.Comment
	ratings  map[int64]*domain.Rating
	files    map[int64]*domain.File

	nextUser, nextProblem, nextTag, nextComment, nextRating, nextFile int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]*domain.User),
		problems: make(map[int64]*domain.Problem),
		tags:     make(map[int64]*domain.Tag),
		comments: make(map[int64]*domain.Comment),
		ratings:  make(map[int64]*domain.Rating),
		files:    make(map[int64]*domain.File),
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Problems() *ProblemRepository { return &ProblemRepository{s: s} }
func (s *Store) Tags() *TagRepository         { return &TagRepository{s: s} }
func (s *Store) Comments() *CommentRepository { return &CommentRepository{s: s} }
func (s *Store) Ratings() *RatingRepository   { return &RatingRepository{s: s} }
func (s *Store) Files() *FileRepository       { return &FileRepository{s: s} }

// sortedIDs returns the keys of m in ascending order, which is insertion
// order because ids are allocated sequentially.
func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
