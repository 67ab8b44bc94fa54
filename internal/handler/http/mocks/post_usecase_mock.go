package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/tomokihara/snapfeed/internal/domain/contract"
	"github.com/tomokihara/snapfeed/internal/domain/entity"
	usecasecontract "github.com/tomokihara/snapfeed/internal/usecase/contract"
)

// MockPostUsecase is a mock implementation of the IPostUseCase interface
type MockPostUsecase struct {
	// Control mock behavior
	ShouldFailCreate    bool
	ShouldFailGet       bool
	ShouldFailTimeline  bool
	ShouldFailUserPosts bool
	ShouldFailDelete    bool
	ShouldFailPresign   bool

	// Return values
	MockPost   entity.Post
	MockPage   contract.TimelinePage
	MockTicket contract.UploadTicket
}

var _ usecasecontract.IPostUseCase = (*MockPostUsecase)(nil)

func NewMockPostUsecase() *MockPostUsecase {
	post := entity.Post{
		ID:       "mock-post-id",
		UserID:   "mock-user-id",
		ImageKey: "posts/mock-user-id/abc.jpg",
		ImageURL: "https://cdn.example.com/posts/mock-user-id/abc.jpg",
		Caption:  "a caption",
	}
	return &MockPostUsecase{
		MockPost: post,
		MockPage: contract.TimelinePage{
			Posts:   []*entity.Post{&post},
			HasMore: false,
		},
		MockTicket: contract.UploadTicket{
			Key:       "posts/mock-user-id/abc.jpg",
			UploadURL: "https://s3.example.com/upload",
			ExpiresAt: time.Now().Add(10 * time.Minute),
		},
	}
}

func (m *MockPostUsecase) CreatePost(ctx context.Context, userID, imageKey, caption string) (*entity.Post, error) {
	if m.ShouldFailCreate {
		return nil, errors.New("create post failed")
	}
	return &m.MockPost, nil
}

func (m *MockPostUsecase) GetPost(ctx context.Context, postID, viewerID string) (*entity.Post, error) {
	if m.ShouldFailGet {
		return nil, errors.New("post not found")
	}
	return &m.MockPost, nil
}

func (m *MockPostUsecase) Timeline(ctx context.Context, viewerID, cursor string, limit int) (*contract.TimelinePage, error) {
	if m.ShouldFailTimeline {
		return nil, errors.New("timeline failed")
	}
	return &m.MockPage, nil
}

func (m *MockPostUsecase) UserPosts(ctx context.Context, userID, viewerID, cursor string, limit int) (*contract.TimelinePage, error) {
	if m.ShouldFailUserPosts {
		return nil, errors.New("user posts failed")
	}
	return &m.MockPage, nil
}

func (m *MockPostUsecase) DeletePost(ctx context.Context, userID, postID string) error {
	if m.ShouldFailDelete {
		return errors.New("delete post failed")
	}
	return nil
}

func (m *MockPostUsecase) PresignImageUpload(ctx context.Context, userID, contentType string) (*contract.UploadTicket, error) {
	if m.ShouldFailPresign {
		return nil, errors.New("presign failed")
	}
	return &m.MockTicket, nil
}
