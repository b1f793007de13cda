package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/internal/core/ports"
)

func TestTagService_Create(t *testing.T) {
	svc := NewTagService(newStubTagRepo(), newStubProblemRepo(), zerolog.Nop())
	ctx := context.Background()

	tag, err := svc.Create(ctx, ports.TagInput{Name: " graph "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if tag.Name != "graph" || tag.Color != domain.DefaultTagColor {
		t.Fatalf("unexpected tag: %+v", tag)
	}

	if _, err := svc.Create(ctx, ports.TagInput{Name: "GRAPH"}); err != domain.ErrTagExists {
		t.Fatalf("expected ErrTagExists, got %v", err)
	}
	if _, err := svc.Create(ctx, ports.TagInput{}); validationMessage(err) != "Tag name is required" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTagService_Update(t *testing.T) {
	svc := NewTagService(newStubTagRepo(), newStubProblemRepo(), zerolog.Nop())
	ctx := context.Background()

	graph, _ := svc.Create(ctx, ports.TagInput{Name: "graph", Description: "Graphs", Color: "#111111"})
	_, _ = svc.Create(ctx, ports.TagInput{Name: "tree"})

	updated, err := svc.Update(ctx, graph.ID, ports.TagInput{Name: "Graph"})
	if err != nil {
		t.Fatalf("case-only rename failed: %v", err)
	}
	if updated.Name != "Graph" || updated.Description != "Graphs" || updated.Color != "#111111" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if _, err := svc.Update(ctx, graph.ID, ports.TagInput{Name: "TREE"}); err != domain.ErrTagExists {
		t.Fatalf("expected ErrTagExists, got %v", err)
	}
	if _, err := svc.Update(ctx, 404, ports.TagInput{Name: "x"}); err != domain.ErrTagNotFound {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestTagService_ListAndPopular(t *testing.T) {
	problems := newStubProblemRepo()
	svc := NewTagService(newStubTagRepo(), problems, zerolog.Nop())
	ctx := context.Background()

	for _, name := range []string{"array", "string", "graph"} {
		_, _ = svc.Create(ctx, ports.TagInput{Name: name, Description: name + " problems"})
	}
	_, _ = problems.Create(ctx, &domain.Problem{Tags: []string{"graph"}})
	_, _ = problems.Create(ctx, &domain.Problem{Tags: []string{"Graph", "string"}})

	page, err := svc.List(ctx, ports.ListTagsInput{Search: "STR"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.Total != 1 || page.Tags[0].Name != "string" {
		t.Fatalf("unexpected search result: %+v", page)
	}
	page, _ = svc.List(ctx, ports.ListTagsInput{Limit: 2, Page: 2})
	if page.Total != 3 || len(page.Tags) != 1 || page.TotalPages != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}

	popular, err := svc.Popular(ctx)
	if err != nil {
		t.Fatalf("Popular returned error: %v", err)
	}
	if popular[0].Name != "graph" || popular[1].Name != "string" || popular[2].Name != "array" {
		t.Fatalf("unexpected ranking: %s, %s, %s", popular[0].Name, popular[1].Name, popular[2].Name)
	}
}

func TestTagService_Delete(t *testing.T) {
	svc := NewTagService(newStubTagRepo(), newStubProblemRepo(), zerolog.Nop())
	ctx := context.Background()

	tag, _ := svc.Create(ctx, ports.TagInput{Name: "graph"})
	if err := svc.Delete(ctx, tag.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(ctx, tag.ID); err != domain.ErrTagNotFound {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}
