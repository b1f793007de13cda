package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/internal/core/ports"
)

type CommentService struct {
	comments ports.CommentRepository
	problems ports.ProblemRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, problems ports.ProblemRepository, users ports.UserRepository, log zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, problems: problems, users: users, log: log}
}

// ListThreads returns the root comments of a problem, each with its replies
// and the public profile of every author.
func (s *CommentService) ListThreads(ctx context.Context, problemID int64) ([]ports.CommentThread, error) {
	roots, err := s.comments.ListRoots(ctx, problemID)
	if err != nil {
		return nil, err
	}

	threads := make([]ports.CommentThread, 0, len(roots))
	for _, root := range roots {
		rootView, err := s.view(ctx, root)
		if err != nil {
			return nil, err
		}

		replies, err := s.comments.ListReplies(ctx, root.ID)
		if err != nil {
			return nil, err
		}
		replyViews := make([]ports.CommentView, 0, len(replies))
		for _, reply := range replies {
			rv, err := s.view(ctx, reply)
			if err != nil {
				return nil, err
			}
			replyViews = append(replyViews, *rv)
		}

		threads = append(threads, ports.CommentThread{CommentView: *rootView, Replies: replyViews})
	}
	return threads, nil
}

func (s *CommentService) Create(ctx context.Context, actor *domain.PublicUser, in ports.CreateCommentInput) (*ports.CommentView, error) {
	if strings.TrimSpace(in.Content) == "" || in.ProblemID <= 0 {
		return nil, domain.NewValidationError("Content and problemId are required")
	}
	if _, err := s.problems.FindByID(ctx, in.ProblemID); err != nil {
		return nil, err
	}

	var parentID *int64
	if in.ParentID != nil {
		parent, err := s.comments.FindByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ProblemID != in.ProblemID {
			return nil, domain.NewValidationError("Parent comment belongs to a different problem")
		}
		// Threads are one level deep: a reply to a reply joins the root.
		rootID := parent.ID
		if parent.ParentID != nil {
			rootID = *parent.ParentID
		}
		parentID = &rootID
	}

	now := time.Now().UTC()
	created, err := s.comments.Create(ctx, &domain.Comment{
		Content:   in.Content,
		UserID:    actor.ID,
		ProblemID: in.ProblemID,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, created)
}

// Update edits a comment. Only the author may edit, admins included.
func (s *CommentService) Update(ctx context.Context, actor *domain.PublicUser, id int64, content string) (*ports.CommentView, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actor.ID {
		return nil, domain.ErrNotCommentAuthor
	}
	if strings.TrimSpace(content) == "" {
		return nil, domain.NewValidationError("Content is required")
	}

	updated, err := s.comments.UpdateContent(ctx, id, content)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, updated)
}

// Delete removes a comment and its replies. The author or an admin may delete.
func (s *CommentService) Delete(ctx context.Context, actor *domain.PublicUser, id int64) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != actor.ID && actor.Role != domain.RoleAdmin {
		return domain.ErrAccessDenied
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("comment_id", id).Int64("deleted_by", actor.ID).Msg("comment deleted")
	return nil
}

func (s *CommentService) view(ctx context.Context, c *domain.Comment) (*ports.CommentView, error) {
	view := &ports.CommentView{Comment: *c}
	author, err := s.users.FindByID(ctx, c.UserID)
	switch {
	case err == nil:
		view.User = author.Public()
	case errors.Is(err, domain.ErrUserNotFound):
		// author was deleted; the comment stays visible without a profile
	default:
		return nil, err
	}
	return view, nil
}
