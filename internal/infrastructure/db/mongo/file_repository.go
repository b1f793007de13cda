package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/codeforge/problemhub/internal/core/domain"
)

type FileRepository struct {
	col      *mongo.Collection
	counters *Counters
}

func NewFileRepository(db *mongo.Database, counters *Counters) *FileRepository {
	return &FileRepository{col: db.Collection(collectionFiles), counters: counters}
}

func (r *FileRepository) Create(ctx context.Context, f *domain.File) (*domain.File, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.counters.Next(ctx, collectionFiles)
	if err != nil {
		return nil, err
	}
	doc := *f
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert file: %w", err)
	}
	return &doc, nil
}

func (r *FileRepository) FindByID(ctx context.Context, id int64) (*domain.File, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var f domain.File
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("find file: %w", err)
	}
	return &f, nil
}

func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFileNotFound
	}
	return nil
}

func (r *FileRepository) ListByProblem(ctx context.Context, problemID int64) ([]*domain.File, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"problem_id": problemID}, byID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	out := []*domain.File{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode files: %w", err)
	}
	return out, nil
}
