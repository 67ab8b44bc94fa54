package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomokihara/snapfeed/internal/domain/contract"
	"github.com/tomokihara/snapfeed/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository is the MongoDB implementation of contract.IPostRepository.
type PostRepository struct {
	collection *mongo.Collection
}

var _ contract.IPostRepository = (*PostRepository)(nil)

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		collection: db.Collection("posts"),
	}
}

func (r *PostRepository) CreatePost(ctx context.Context, post *entity.Post) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) GetPostByID(ctx context.Context, postID string) (*entity.Post, error) {
	var post entity.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve post: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) ListTimeline(ctx context.Context, before time.Time, limit int) ([]*entity.Post, error) {
	filter := bson.M{}
	if !before.IsZero() {
		filter["created_at"] = bson.M{"$lt": before}
	}
	return r.list(ctx, filter, limit)
}

func (r *PostRepository) ListByUser(ctx context.Context, userID string, before time.Time, limit int) ([]*entity.Post, error) {
	filter := bson.M{"user_id": userID}
	if !before.IsZero() {
		filter["created_at"] = bson.M{"$lt": before}
	}
	return r.list(ctx, filter, limit)
}

func (r *PostRepository) DeletePost(ctx context.Context, postID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": postID})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("no post with id %s", postID)
	}
	return nil
}

// AdjustCounts increments the cached like/comment counters. Counters are
// floored at zero to absorb double-settled decrements.
func (r *PostRepository) AdjustCounts(ctx context.Context, postID string, likesDelta, commentsDelta int) error {
	inc := bson.M{}
	if likesDelta != 0 {
		inc["like_count"] = likesDelta
	}
	if commentsDelta != 0 {
		inc["comment_count"] = commentsDelta
	}
	if len(inc) == 0 {
		return nil
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{
		"$inc": inc,
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to adjust counts: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("no post with id %s", postID)
	}
	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": postID, "$or": bson.A{
			bson.M{"like_count": bson.M{"$lt": 0}},
			bson.M{"comment_count": bson.M{"$lt": 0}},
		}},
		bson.M{"$max": bson.M{"like_count": 0, "comment_count": 0}},
	)
	if err != nil {
		return fmt.Errorf("failed to floor counts: %w", err)
	}
	return nil
}

func (r *PostRepository) list(ctx context.Context, filter bson.M, limit int) ([]*entity.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []*entity.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}
