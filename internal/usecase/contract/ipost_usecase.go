package usecasecontract

import (
	"context"

	"github.com/tomokihara/snapfeed/internal/domain/contract"
	"github.com/tomokihara/snapfeed/internal/domain/entity"
)

type IPostUseCase interface {
	CreatePost(ctx context.Context, userID, imageKey, caption string) (*entity.Post, error)
	GetPost(ctx context.Context, postID, viewerID string) (*entity.Post, error)
	Timeline(ctx context.Context, viewerID, cursor string, limit int) (*contract.TimelinePage, error)
	UserPosts(ctx context.Context, userID, viewerID, cursor string, limit int) (*contract.TimelinePage, error)
	DeletePost(ctx context.Context, userID, postID string) error
	PresignImageUpload(ctx context.Context, userID, contentType string) (*contract.UploadTicket, error)
}
