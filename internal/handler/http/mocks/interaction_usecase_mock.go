package mocks

import (
	"context"

	"github.com/tomokihara/snapfeed/internal/domain/entity"
	"github.com/tomokihara/snapfeed/internal/usecase"
	usecasecontract "github.com/tomokihara/snapfeed/internal/usecase/contract"
)

// MockInteractionUsecase is a mock implementation of the IInteractionUseCase interface
type MockInteractionUsecase struct {
	// Control mock behavior
	ShouldFailToggleLike    bool
	ShouldFailAddComment    bool
	ShouldFailDeleteComment bool
	ShouldFailListComments  bool
	ShouldFailListLikes     bool
	ShouldFailLikeStatus    bool

	// When set, failures return this error instead of a generic one
	FailWith error

	// Return values
	MockLikeResult usecasecontract.LikeResult
	MockComment    entity.Comment
	MockCount      int
}

var _ usecasecontract.IInteractionUseCase = (*MockInteractionUsecase)(nil)

func NewMockInteractionUsecase() *MockInteractionUsecase {
	return &MockInteractionUsecase{
		MockLikeResult: usecasecontract.LikeResult{Liked: true, LikeCount: 5},
		MockComment: entity.Comment{
			ID:      "mock-comment-id",
			PostID:  "mock-post-id",
			UserID:  "mock-user-id",
			Content: "nice shot",
		},
		MockCount: 3,
	}
}

func (m *MockInteractionUsecase) failure() error {
	if m.FailWith != nil {
		return m.FailWith
	}
	return usecase.ErrPostNotFound
}

func (m *MockInteractionUsecase) ToggleLike(ctx context.Context, userID, postID string) (*usecasecontract.LikeResult, error) {
	if m.ShouldFailToggleLike {
		return nil, m.failure()
	}
	return &m.MockLikeResult, nil
}

func (m *MockInteractionUsecase) AddComment(ctx context.Context, userID, postID, content string) (*entity.Comment, int, error) {
	if m.ShouldFailAddComment {
		return nil, 0, m.failure()
	}
	return &m.MockComment, m.MockCount, nil
}

func (m *MockInteractionUsecase) DeleteComment(ctx context.Context, userID, postID, commentID string) (int, error) {
	if m.ShouldFailDeleteComment {
		return 0, m.failure()
	}
	return m.MockCount, nil
}

func (m *MockInteractionUsecase) ListComments(ctx context.Context, postID string, limit int) ([]*entity.Comment, int, error) {
	if m.ShouldFailListComments {
		return nil, 0, m.failure()
	}
	return []*entity.Comment{&m.MockComment}, m.MockCount, nil
}

func (m *MockInteractionUsecase) ListLikes(ctx context.Context, postID string, limit int) ([]*entity.Author, int, error) {
	if m.ShouldFailListLikes {
		return nil, 0, m.failure()
	}
	return []*entity.Author{{UserID: "mock-user-id", Username: "testuser"}}, m.MockCount, nil
}

func (m *MockInteractionUsecase) LikeStatus(ctx context.Context, userID, postID string) (bool, error) {
	if m.ShouldFailLikeStatus {
		return false, m.failure()
	}
	return m.MockLikeResult.Liked, nil
}
