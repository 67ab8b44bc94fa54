package contract

import (
	"context"

	"github.com/tomokihara/snapfeed/internal/domain/entity"
)

// IInteractionRepository defines the interface for like and comment persistence.
type IInteractionRepository interface {
	CreateLike(ctx context.Context, like *entity.Like) error
	DeleteLike(ctx context.Context, postID, userID string) error
	GetLike(ctx context.Context, postID, userID string) (*entity.Like, error)
	ListLikesByPost(ctx context.Context, postID string, limit int) ([]*entity.Like, error)
	CountLikesByPost(ctx context.Context, postID string) (int64, error)

	CreateComment(ctx context.Context, comment *entity.Comment) error
	GetCommentByID(ctx context.Context, commentID string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
	ListCommentsByPost(ctx context.Context, postID string, limit int) ([]*entity.Comment, error)
	CountCommentsByPost(ctx context.Context, postID string) (int64, error)

	// DeleteByPost removes every like and comment attached to a post.
	DeleteByPost(ctx context.Context, postID string) error
}
