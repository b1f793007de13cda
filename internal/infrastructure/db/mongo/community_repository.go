package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codeforge/problemhub/internal/core/domain"
)

var byID = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

type TagRepository struct {
	col      *mongo.Collection
	counters *Counters
}

func NewTagRepository(db *mongo.Database, counters *Counters) *TagRepository {
	return &TagRepository{col: db.Collection(collectionTags), counters: counters}
}

func (r *TagRepository) Create(ctx context.Context, t *domain.Tag) (*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.counters.Next(ctx, collectionTags)
	if err != nil {
		return nil, err
	}
	doc := *t
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrTagExists
		}
		return nil, fmt.Errorf("insert tag: %w", err)
	}
	return &doc, nil
}

func (r *TagRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Tag
	if err := r.col.FindOne(ctx, filter, opts...).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTagNotFound
		}
		return nil, fmt.Errorf("find tag: %w", err)
	}
	return &t, nil
}

func (r *TagRepository) FindByID(ctx context.Context, id int64) (*domain.Tag, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *TagRepository) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	return r.findOne(ctx, bson.M{"name": name}, options.FindOne().SetCollation(caseInsensitive))
}

func (r *TagRepository) Update(ctx context.Context, t *domain.Tag) (*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrTagExists
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTagNotFound
	}
	out := *t
	return &out, nil
}

func (r *TagRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTagNotFound
	}
	return nil
}

func (r *TagRepository) List(ctx context.Context) ([]*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, byID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	out := []*domain.Tag{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return out, nil
}

type CommentRepository struct {
	col      *mongo.Collection
	counters *Counters
}

func NewCommentRepository(db *mongo.Database, counters *Counters) *CommentRepository {
	return &CommentRepository{col: db.Collection(collectionComments), counters: counters}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.counters.Next(ctx, collectionComments)
	if err != nil {
		return nil, err
	}
	doc := *c
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &doc, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id int64) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Comment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return &c, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Comment
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": content, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return &c, nil
}

// Delete removes the comment and every reply pointing at it.
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"_id": id},
		bson.M{"parent_id": id},
	}})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) ListRoots(ctx context.Context, problemID int64) ([]*domain.Comment, error) {
	return r.list(ctx, bson.M{"problem_id": problemID, "parent_id": nil})
}

func (r *CommentRepository) ListReplies(ctx context.Context, parentID int64) ([]*domain.Comment, error) {
	return r.list(ctx, bson.M{"parent_id": parentID})
}

func (r *CommentRepository) list(ctx context.Context, filter bson.M) ([]*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, byID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	out := []*domain.Comment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return out, nil
}

type RatingRepository struct {
	col      *mongo.Collection
	counters *Counters
}

func NewRatingRepository(db *mongo.Database, counters *Counters) *RatingRepository {
	return &RatingRepository{col: db.Collection(collectionRatings), counters: counters}
}

// Upsert leans on the unique (user_id, problem_id) index; a lost race on the
// insert path is retried once as an update.
func (r *RatingRepository) Upsert(ctx context.Context, userID, problemID int64, value int) (*domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.counters.Next(ctx, collectionRatings)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	filter := bson.M{"user_id": userID, "problem_id": problemID}
	update := bson.M{
		"$set":         bson.M{"value": value, "updated_at": now},
		"$setOnInsert": bson.M{"_id": id, "created_at": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var rt domain.Rating
	err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rt)
	if mongo.IsDuplicateKeyError(err) {
		err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rt)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert rating: %w", err)
	}
	return &rt, nil
}

func (r *RatingRepository) Find(ctx context.Context, userID, problemID int64) (*domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rt domain.Rating
	err := r.col.FindOne(ctx, bson.M{"user_id": userID, "problem_id": problemID}).Decode(&rt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find rating: %w", err)
	}
	return &rt, nil
}

func (r *RatingRepository) ListByProblem(ctx context.Context, problemID int64) ([]*domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"problem_id": problemID}, byID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	out := []*domain.Rating{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode ratings: %w", err)
	}
	return out, nil
}
