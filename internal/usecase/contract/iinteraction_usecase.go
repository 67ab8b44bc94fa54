package usecasecontract

import (
	"context"

	"github.com/tomokihara/snapfeed/internal/domain/entity"
)

// LikeResult is the authoritative like state of a post after a toggle.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

type IInteractionUseCase interface {
	ToggleLike(ctx context.Context, userID, postID string) (*LikeResult, error)
	AddComment(ctx context.Context, userID, postID, content string) (*entity.Comment, int, error)
	DeleteComment(ctx context.Context, userID, postID, commentID string) (int, error)
	ListComments(ctx context.Context, postID string, limit int) ([]*entity.Comment, int, error)
	ListLikes(ctx context.Context, postID string, limit int) ([]*entity.Author, int, error)
	LikeStatus(ctx context.Context, userID, postID string) (bool, error)
}
