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

// InteractionRepository is the MongoDB implementation of
// contract.IInteractionRepository. Likes and comments live in separate
// collections; likes are unique per (post, user).
type InteractionRepository struct {
	likes    *mongo.Collection
	comments *mongo.Collection
}

var _ contract.IInteractionRepository = (*InteractionRepository)(nil)

func NewInteractionRepository(db *mongo.Database) *InteractionRepository {
	return &InteractionRepository{
		likes:    db.Collection("post_likes"),
		comments: db.Collection("post_comments"),
	}
}

func (r *InteractionRepository) CreateLike(ctx context.Context, like *entity.Like) error {
	like.CreatedAt = time.Now()
	// Upsert keyed on (post, user) so a double-submit cannot create two likes.
	filter := bson.M{"post_id": like.PostID, "user_id": like.UserID}
	update := bson.M{"$setOnInsert": bson.M{
		"_id":        like.ID,
		"post_id":    like.PostID,
		"user_id":    like.UserID,
		"created_at": like.CreatedAt,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.likes.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

func (r *InteractionRepository) DeleteLike(ctx context.Context, postID, userID string) error {
	res, err := r.likes.DeleteOne(ctx, bson.M{"post_id": postID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("no like by user %s on post %s", userID, postID)
	}
	return nil
}

func (r *InteractionRepository) GetLike(ctx context.Context, postID, userID string) (*entity.Like, error) {
	var like entity.Like
	err := r.likes.FindOne(ctx, bson.M{"post_id": postID, "user_id": userID}).Decode(&like)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve like: %w", err)
	}
	return &like, nil
}

func (r *InteractionRepository) ListLikesByPost(ctx context.Context, postID string, limit int) ([]*entity.Like, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.likes.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	defer cursor.Close(ctx)

	var likes []*entity.Like
	if err := cursor.All(ctx, &likes); err != nil {
		return nil, fmt.Errorf("failed to decode likes: %w", err)
	}
	return likes, nil
}

func (r *InteractionRepository) CountLikesByPost(ctx context.Context, postID string) (int64, error) {
	count, err := r.likes.CountDocuments(ctx, bson.M{"post_id": postID})
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func (r *InteractionRepository) CreateComment(ctx context.Context, comment *entity.Comment) error {
	comment.CreatedAt = time.Now()
	if _, err := r.comments.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *InteractionRepository) GetCommentByID(ctx context.Context, commentID string) (*entity.Comment, error) {
	var comment entity.Comment
	err := r.comments.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve comment: %w", err)
	}
	return &comment, nil
}

func (r *InteractionRepository) DeleteComment(ctx context.Context, commentID string) error {
	res, err := r.comments.DeleteOne(ctx, bson.M{"_id": commentID})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("no comment with id %s", commentID)
	}
	return nil
}

// ListCommentsByPost returns comments oldest first, the order they are shown
// under a post.
func (r *InteractionRepository) ListCommentsByPost(ctx context.Context, postID string, limit int) ([]*entity.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))
	cursor, err := r.comments.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []*entity.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

func (r *InteractionRepository) CountCommentsByPost(ctx context.Context, postID string) (int64, error) {
	count, err := r.comments.CountDocuments(ctx, bson.M{"post_id": postID})
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}

func (r *InteractionRepository) DeleteByPost(ctx context.Context, postID string) error {
	if _, err := r.likes.DeleteMany(ctx, bson.M{"post_id": postID}); err != nil {
		return fmt.Errorf("failed to delete likes for post: %w", err)
	}
	if _, err := r.comments.DeleteMany(ctx, bson.M{"post_id": postID}); err != nil {
		return fmt.Errorf("failed to delete comments for post: %w", err)
	}
	return nil
}
