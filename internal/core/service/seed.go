package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/internal/core/ports"
)

var demoTags = []ports.TagInput{
	{Name: "array", Description: "Problems involving arrays", Color: "#FF6B6B"},
	{Name: "hash-table", Description: "Problems using hash tables", Color: "#4ECDC4"},
	{Name: "dynamic-programming", Description: "Dynamic programming problems", Color: "#45B7D1"},
	{Name: "string", Description: "String manipulation problems", Color: "#96CEB4"},
	{Name: "algorithm", Description: "General algorithm problems", Color: "#FFEAA7"},
}

var demoProblem = ports.CreateProblemInput{
	Title:       "Two Sum",
	Description: "Given an array of integers nums and an integer target, return indices of the two numbers such that they add up to target.",
	Difficulty:  string(domain.DifficultyEasy),
	Examples: []domain.Example{{
		Input:       "nums = [2,7,11,15], target = 9",
		Output:      "[0,1]",
		Explanation: "Because nums[0] + nums[1] == 9, we return [0, 1].",
	}},
	Tags: []string{"array", "hash-table"},
}

// SeedDemoData loads the starter catalogue. Running it twice is a no-op.
func SeedDemoData(ctx context.Context, tags *TagService, problems *ProblemService, createdBy int64, log zerolog.Logger) error {
	for _, in := range demoTags {
		if _, err := tags.Create(ctx, in); err != nil && !errors.Is(err, domain.ErrTagExists) {
			return err
		}
	}

	existing, err := problems.problems.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range existing {
		if p.Title == demoProblem.Title {
			return nil
		}
	}

	in := demoProblem
	in.CreatedBy = createdBy
	if _, err := problems.Create(ctx, in); err != nil {
		return err
	}
	log.Info().Int("tags", len(demoTags)).Msg("demo data seeded")
	return nil
}
