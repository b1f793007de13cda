package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codeforge/problemhub/internal/core/domain"
)

type ProblemRepository struct {
	col      *mongo.Collection
	counters *Counters
}

func NewProblemRepository(db *mongo.Database, counters *Counters) *ProblemRepository {
	return &ProblemRepository{col: db.Collection(collectionProblems), counters: counters}
}

func (r *ProblemRepository) Create(ctx context.Context, p *domain.Problem) (*domain.Problem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.counters.Next(ctx, collectionProblems)
	if err != nil {
		return nil, err
	}
	doc := *p
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert problem: %w", err)
	}
	return &doc, nil
}

func (r *ProblemRepository) FindByID(ctx context.Context, id int64) (*domain.Problem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Problem
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProblemNotFound
		}
		return nil, fmt.Errorf("find problem: %w", err)
	}
	return &p, nil
}

func (r *ProblemRepository) Update(ctx context.Context, p *domain.Problem) (*domain.Problem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return nil, fmt.Errorf("update problem: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProblemNotFound
	}
	out := *p
	return &out, nil
}

func (r *ProblemRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete problem: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProblemNotFound
	}
	return nil
}

func (r *ProblemRepository) List(ctx context.Context) ([]*domain.Problem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}
	var out []*domain.Problem
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode problems: %w", err)
	}
	for _, p := range out {
		if p.Tags == nil {
			p.Tags = []string{}
		}
		if p.Examples == nil {
			p.Examples = []domain.Example{}
		}
	}
	return out, nil
}
