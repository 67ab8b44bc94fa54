package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomokihara/snapfeed/internal/domain/contract"
	"github.com/tomokihara/snapfeed/internal/domain/entity"
	usecasecontract "github.com/tomokihara/snapfeed/internal/usecase/contract"
)

// InteractionUsecase handles the business logic for likes and comments.
type InteractionUsecase struct {
	interactionRepo contract.IInteractionRepository
	postRepo        contract.IPostRepository
	userRepo        contract.IUserRepository
	uuidGen         contract.IUUIDGenerator
	logger          usecasecontract.IAppLogger
}

// NewInteractionUsecase creates and returns a new InteractionUsecase instance.
func NewInteractionUsecase(interactionRepo contract.IInteractionRepository, postRepo contract.IPostRepository, userRepo contract.IUserRepository, uuidGen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *InteractionUsecase {
	return &InteractionUsecase{
		interactionRepo: interactionRepo,
		postRepo:        postRepo,
		userRepo:        userRepo,
		uuidGen:         uuidGen,
		logger:          logger,
	}
}

var _ usecasecontract.IInteractionUseCase = (*InteractionUsecase)(nil)

// ToggleLike likes a post the user has not liked yet and unlikes one they
// have. Returns the authoritative state after the toggle.
func (u *InteractionUsecase) ToggleLike(ctx context.Context, userID, postID string) (*usecasecontract.LikeResult, error) {
	post, err := u.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	existing, err := u.interactionRepo.GetLike(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing like: %w", err)
	}

	if existing != nil {
		if err := u.interactionRepo.DeleteLike(ctx, postID, userID); err != nil {
			return nil, fmt.Errorf("failed to remove like: %w", err)
		}
		if err := u.postRepo.AdjustCounts(ctx, postID, -1, 0); err != nil {
			return nil, fmt.Errorf("failed to update like count: %w", err)
		}
		u.logger.Infof("user %s unliked post %s", userID, postID)
	} else {
		like := &entity.Like{
			ID:     u.uuidGen.NewUUID(),
			PostID: postID,
			UserID: userID,
		}
		if err := u.interactionRepo.CreateLike(ctx, like); err != nil {
			return nil, fmt.Errorf("failed to create like: %w", err)
		}
		if err := u.postRepo.AdjustCounts(ctx, postID, 1, 0); err != nil {
			return nil, fmt.Errorf("failed to update like count: %w", err)
		}
		u.logger.Infof("user %s liked post %s", userID, postID)
	}

	count, err := u.interactionRepo.CountLikesByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	return &usecasecontract.LikeResult{
		Liked:     existing == nil,
		LikeCount: int(count),
	}, nil
}

// AddComment validates and stores a comment, returning the created comment
// enriched with author info plus the post's new comment count.
func (u *InteractionUsecase) AddComment(ctx context.Context, userID, postID, content string) (*entity.Comment, int, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, 0, NewValidationError("comment content is required")
	}
	if len([]rune(trimmed)) > entity.MaxCommentLength {
		return nil, 0, NewValidationError(fmt.Sprintf("comment must be %d characters or fewer", entity.MaxCommentLength))
	}

	post, err := u.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, 0, ErrPostNotFound
	}
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, 0, ErrUserNotFound
	}

	comment := &entity.Comment{
		ID:      u.uuidGen.NewUUID(),
		PostID:  postID,
		UserID:  userID,
		Content: trimmed,
	}
	if err := u.interactionRepo.CreateComment(ctx, comment); err != nil {
		return nil, 0, fmt.Errorf("failed to create comment: %w", err)
	}
	if err := u.postRepo.AdjustCounts(ctx, postID, 0, 1); err != nil {
		return nil, 0, fmt.Errorf("failed to update comment count: %w", err)
	}
	comment.Author = &entity.Author{
		UserID:    user.ID,
		Username:  user.Username,
		AvatarKey: user.AvatarKey,
	}
	u.logger.Infof("user %s commented on post %s", userID, postID)
	return comment, post.CommentCount + 1, nil
}

// DeleteComment removes a comment. Only the comment author may delete it.
func (u *InteractionUsecase) DeleteComment(ctx context.Context, userID, postID, commentID string) (int, error) {
	comment, err := u.interactionRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return 0, fmt.Errorf("failed to load comment: %w", err)
	}
	if comment == nil || comment.PostID != postID {
		return 0, ErrCommentNotFound
	}
	if comment.UserID != userID {
		return 0, ErrForbidden
	}

	if err := u.interactionRepo.DeleteComment(ctx, commentID); err != nil {
		return 0, fmt.Errorf("failed to delete comment: %w", err)
	}
	if err := u.postRepo.AdjustCounts(ctx, postID, 0, -1); err != nil {
		return 0, fmt.Errorf("failed to update comment count: %w", err)
	}

	count, err := u.interactionRepo.CountCommentsByPost(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	u.logger.Infof("user %s deleted comment %s on post %s", userID, commentID, postID)
	return int(count), nil
}

// ListComments returns a post's comments oldest first, with author info.
func (u *InteractionUsecase) ListComments(ctx context.Context, postID string, limit int) ([]*entity.Comment, int, error) {
	post, err := u.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, 0, ErrPostNotFound
	}

	comments, err := u.interactionRepo.ListCommentsByPost(ctx, postID, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	for _, c := range comments {
		user, err := u.userRepo.GetUserByID(ctx, c.UserID)
		if err != nil || user == nil {
			continue
		}
		c.Author = &entity.Author{
			UserID:    user.ID,
			Username:  user.Username,
			AvatarKey: user.AvatarKey,
		}
	}
	return comments, post.CommentCount, nil
}

// ListLikes returns the users who liked a post.
func (u *InteractionUsecase) ListLikes(ctx context.Context, postID string, limit int) ([]*entity.Author, int, error) {
	post, err := u.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, 0, ErrPostNotFound
	}

	likes, err := u.interactionRepo.ListLikesByPost(ctx, postID, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list likes: %w", err)
	}
	authors := make([]*entity.Author, 0, len(likes))
	for _, l := range likes {
		user, err := u.userRepo.GetUserByID(ctx, l.UserID)
		if err != nil || user == nil {
			continue
		}
		authors = append(authors, &entity.Author{
			UserID:    user.ID,
			Username:  user.Username,
			AvatarKey: user.AvatarKey,
		})
	}
	return authors, post.LikeCount, nil
}

// LikeStatus reports whether the user has liked the post.
func (u *InteractionUsecase) LikeStatus(ctx context.Context, userID, postID string) (bool, error) {
	like, err := u.interactionRepo.GetLike(ctx, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get like status: %w", err)
	}
	return like != nil, nil
}
