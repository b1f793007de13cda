package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/internal/core/ports"
)

type commentFixture struct {
	svc      *CommentService
	users    *stubUserRepo
	comments *stubCommentRepo
	problem  *domain.Problem
	other    *domain.Problem
	alice    *domain.PublicUser
	bob      *domain.PublicUser
	admin    *domain.PublicUser
}

func newCommentFixture() *commentFixture {
	ctx := context.Background()
	users := newStubUserRepo()
	problems := newStubProblemRepo()
	comments := newStubCommentRepo()
	f := &commentFixture{
		svc:      NewCommentService(comments, problems, users, zerolog.Nop()),
		users:    users,
		comments: comments,
		alice:    users.seed("alice", "alice@example.com", domain.RoleUser),
		bob:      users.seed("bob", "bob@example.com", domain.RoleUser),
		admin:    users.seed("root", "root@example.com", domain.RoleAdmin),
	}
	f.problem, _ = problems.Create(ctx, &domain.Problem{Title: "Two Sum"})
	f.other, _ = problems.Create(ctx, &domain.Problem{Title: "Three Sum"})
	return f
}

func int64Ptr(v int64) *int64 { return &v }

func TestCommentService_CreateAndThreads(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	root, err := f.svc.Create(ctx, f.alice, ports.CreateCommentInput{Content: "Use a hash map", ProblemID: f.problem.ID})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if root.User == nil || root.User.Username != "alice" {
		t.Fatalf("expected author profile, got %+v", root.User)
	}

	reply, err := f.svc.Create(ctx, f.bob, ports.CreateCommentInput{Content: "Nice", ProblemID: f.problem.ID, ParentID: int64Ptr(root.ID)})
	if err != nil {
		t.Fatalf("reply failed: %v", err)
	}
	nested, err := f.svc.Create(ctx, f.alice, ports.CreateCommentInput{Content: "Thanks", ProblemID: f.problem.ID, ParentID: int64Ptr(reply.ID)})
	if err != nil {
		t.Fatalf("nested reply failed: %v", err)
	}
	if nested.ParentID == nil || *nested.ParentID != root.ID {
		t.Fatalf("expected reply to a reply to join the root thread, got %v", nested.ParentID)
	}

	threads, err := f.svc.ListThreads(ctx, f.problem.ID)
	if err != nil {
		t.Fatalf("ListThreads returned error: %v", err)
	}
	if len(threads) != 1 || len(threads[0].Replies) != 2 {
		t.Fatalf("unexpected threads: %+v", threads)
	}
}

func TestCommentService_Create_Validation(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.alice, ports.CreateCommentInput{ProblemID: f.problem.ID}); validationMessage(err) != "Content and problemId are required" {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.Create(ctx, f.alice, ports.CreateCommentInput{Content: "x", ProblemID: 404}); err != domain.ErrProblemNotFound {
		t.Fatalf("expected ErrProblemNotFound, got %v", err)
	}
	if _, err := f.svc.Create(ctx, f.alice, ports.CreateCommentInput{Content: "x", ProblemID: f.problem.ID, ParentID: int64Ptr(404)}); err != domain.ErrCommentNotFound {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}

	root, _ := f.svc.Create(ctx, f.alice, ports.CreateCommentInput{Content: "x", ProblemID: f.problem.ID})
	_, err := f.svc.Create(ctx, f.alice, ports.CreateCommentInput{Content: "y", ProblemID: f.other.ID, ParentID: int64Ptr(root.ID)})
	if validationMessage(err) != "Parent comment belongs to a different problem" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCommentService_Update_AuthorOnly(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	c, _ := f.svc.Create(ctx, f.alice, ports.CreateCommentInput{Content: "first", ProblemID: f.problem.ID})

	if _, err := f.svc.Update(ctx, f.bob, c.ID, "edited"); err != domain.ErrNotCommentAuthor {
		t.Fatalf("expected ErrNotCommentAuthor, got %v", err)
	}
	// Admins moderate by deleting, not by editing.
	if _, err := f.svc.Update(ctx, f.admin, c.ID, "edited"); err != domain.ErrNotCommentAuthor {
		t.Fatalf("expected ErrNotCommentAuthor for admin, got %v", err)
	}
	updated, err := f.svc.Update(ctx, f.alice, c.ID, "edited")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Content != "edited" {
		t.Fatalf("unexpected content %q", updated.Content)
	}
	if _, err := f.svc.Update(ctx, f.alice, 404, "x"); err != domain.ErrCommentNotFound {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestCommentService_Delete_AuthorOrAdmin(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	root, _ := f.svc.Create(ctx, f.alice, ports.CreateCommentInput{Content: "root", ProblemID: f.problem.ID})
	_, _ = f.svc.Create(ctx, f.bob, ports.CreateCommentInput{Content: "reply", ProblemID: f.problem.ID, ParentID: int64Ptr(root.ID)})

	if err := f.svc.Delete(ctx, f.bob, root.ID); err != domain.ErrAccessDenied {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if err := f.svc.Delete(ctx, f.admin, root.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if len(f.comments.comments) != 0 {
		t.Fatalf("expected replies to be removed with the root, %d left", len(f.comments.comments))
	}
}

func TestCommentService_DeletedAuthor(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	_, _ = f.svc.Create(ctx, f.bob, ports.CreateCommentInput{Content: "bye", ProblemID: f.problem.ID})
	_ = f.users.Delete(ctx, f.bob.ID)

	threads, err := f.svc.ListThreads(ctx, f.problem.ID)
	if err != nil {
		t.Fatalf("ListThreads returned error: %v", err)
	}
	if len(threads) != 1 || threads[0].User != nil {
		t.Fatalf("expected orphaned comment without profile, got %+v", threads)
	}
}
