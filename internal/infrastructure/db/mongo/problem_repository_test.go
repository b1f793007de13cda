package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/codeforge/problemhub/internal/core/domain"
)

func TestProblemRepository_CreateAndFind(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewProblemRepository(mt.DB, NewCounters(mt.DB))
		mt.AddMockResponses(counterResponse(5), mtest.CreateSuccessResponse())

		p, err := repo.Create(context.Background(), &domain.Problem{
			Title:      "Two Sum",
			Difficulty: domain.DifficultyEasy,
			Tags:       []string{"array"},
			CreatedBy:  1,
		})
		require.NoError(mt, err)
		assert.EqualValues(mt, 5, p.ID)
		assert.Equal(mt, []string{"array"}, p.Tags)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		repo := NewProblemRepository(mt.DB, NewCounters(mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "test.problems", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: int64(5)},
			{Key: "title", Value: "Two Sum"},
			{Key: "difficulty", Value: "easy"},
		}))

		p, err := repo.FindByID(context.Background(), 5)
		require.NoError(mt, err)
		assert.Equal(mt, domain.DifficultyEasy, p.Difficulty)
	})

	mt.Run("find missing", func(mt *mtest.T) {
		repo := NewProblemRepository(mt.DB, NewCounters(mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.problems", mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), 5)
		assert.ErrorIs(mt, err, domain.ErrProblemNotFound)
	})
}

func TestProblemRepository_UpdateAndDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	problem := &domain.Problem{ID: 5, Title: "Two Sum II"}

	mt.Run("update", func(mt *mtest.T) {
		repo := NewProblemRepository(mt.DB, NewCounters(mt.DB))
		mt.AddMockResponses(matchedResponse(1))

		got, err := repo.Update(context.Background(), problem)
		require.NoError(mt, err)
		assert.Equal(mt, "Two Sum II", got.Title)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := NewProblemRepository(mt.DB, NewCounters(mt.DB))
		mt.AddMockResponses(matchedResponse(0))

		_, err := repo.Update(context.Background(), problem)
		assert.ErrorIs(mt, err, domain.ErrProblemNotFound)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := NewProblemRepository(mt.DB, NewCounters(mt.DB))
		mt.AddMockResponses(deletedResponse(0))

		assert.ErrorIs(mt, repo.Delete(context.Background(), 5), domain.ErrProblemNotFound)
	})
}

func TestProblemRepository_ListFillsEmptySlices(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("nil tags and examples", func(mt *mtest.T) {
		repo := NewProblemRepository(mt.DB, NewCounters(mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.problems", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: int64(1)}, {Key: "title", Value: "A"}},
			bson.D{{Key: "_id", Value: int64(2)}, {Key: "title", Value: "B"}, {Key: "tags", Value: bson.A{"graph"}}},
		))

		problems, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, problems, 2)
		assert.NotNil(mt, problems[0].Tags)
		assert.Empty(mt, problems[0].Tags)
		assert.NotNil(mt, problems[0].Examples)
		assert.Equal(mt, []string{"graph"}, problems[1].Tags)
	})
}
