package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tomokihara/snapfeed/internal/domain/contract"
	"github.com/tomokihara/snapfeed/internal/domain/entity"
	usecasecontract "github.com/tomokihara/snapfeed/internal/usecase/contract"
)

const (
	maxCaptionLength = 1000
	defaultPageSize  = 20
	maxPageSize      = 50
)

// PostUsecase handles the business logic for creating, listing and deleting posts.
type PostUsecase struct {
	postRepo        contract.IPostRepository
	userRepo        contract.IUserRepository
	interactionRepo contract.IInteractionRepository
	imageStorage    contract.IImageStorage
	uuidGen         contract.IUUIDGenerator
	logger          usecasecontract.IAppLogger
	feedCache       contract.IFeedCache
}

// NewPostUsecase creates and returns a new PostUsecase instance.
func NewPostUsecase(postRepo contract.IPostRepository, userRepo contract.IUserRepository, interactionRepo contract.IInteractionRepository, imageStorage contract.IImageStorage, uuidGen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *PostUsecase {
	return &PostUsecase{
		postRepo:        postRepo,
		userRepo:        userRepo,
		interactionRepo: interactionRepo,
		imageStorage:    imageStorage,
		uuidGen:         uuidGen,
		logger:          logger,
	}
}

var _ usecasecontract.IPostUseCase = (*PostUsecase)(nil)

// SetFeedCache attaches an optional timeline cache.
func (u *PostUsecase) SetFeedCache(cache contract.IFeedCache) {
	u.feedCache = cache
}

// CreatePost stores a new post referencing an already-uploaded image.
func (u *PostUsecase) CreatePost(ctx context.Context, userID, imageKey, caption string) (*entity.Post, error) {
	if imageKey == "" {
		return nil, NewValidationError("image key is required")
	}
	if len([]rune(caption)) > maxCaptionLength {
		return nil, NewValidationError(fmt.Sprintf("caption must be %d characters or fewer", maxCaptionLength))
	}

	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	post := &entity.Post{
		ID:       u.uuidGen.NewUUID(),
		UserID:   userID,
		ImageKey: imageKey,
		Caption:  caption,
	}
	if err := u.postRepo.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	if err := u.userRepo.AdjustPostCount(ctx, userID, 1); err != nil {
		u.logger.Warnf("failed to bump post count for user %s: %v", userID, err)
	}
	u.invalidateTimeline(ctx)

	u.enrich(ctx, post, userID)
	u.logger.Infof("post %s created by user %s", post.ID, userID)
	return post, nil
}

// GetPost returns a single post enriched for the viewer.
func (u *PostUsecase) GetPost(ctx context.Context, postID, viewerID string) (*entity.Post, error) {
	post, err := u.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	u.enrich(ctx, post, viewerID)
	return post, nil
}

// Timeline returns one page of the global feed, newest first. The cursor is
// an opaque base64 of the oldest creation instant already seen.
func (u *PostUsecase) Timeline(ctx context.Context, viewerID, cursor string, limit int) (*contract.TimelinePage, error) {
	limit = clampLimit(limit)
	before, err := decodeCursor(cursor)
	if err != nil {
		return nil, NewValidationError("invalid cursor")
	}

	cacheKey := timelineCacheKey(cursor, limit)
	if u.feedCache != nil && viewerID == "" {
		if page, ok, err := u.feedCache.GetTimelinePage(ctx, cacheKey); err == nil && ok {
			return page, nil
		}
	}

	posts, err := u.postRepo.ListTimeline(ctx, before, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline: %w", err)
	}
	page := u.buildPage(ctx, posts, viewerID, limit)

	if u.feedCache != nil && viewerID == "" {
		if err := u.feedCache.SetTimelinePage(ctx, cacheKey, page); err != nil {
			u.logger.Warnf("failed to cache timeline page: %v", err)
		}
	}
	return page, nil
}

// UserPosts returns one page of a single user's posts, newest first.
func (u *PostUsecase) UserPosts(ctx context.Context, userID, viewerID, cursor string, limit int) (*contract.TimelinePage, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	limit = clampLimit(limit)
	before, err := decodeCursor(cursor)
	if err != nil {
		return nil, NewValidationError("invalid cursor")
	}
	posts, err := u.postRepo.ListByUser(ctx, userID, before, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to list user posts: %w", err)
	}
	return u.buildPage(ctx, posts, viewerID, limit), nil
}

// DeletePost removes a post, its image and all attached interactions.
// Only the post owner may delete it.
func (u *PostUsecase) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := u.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return ErrForbidden
	}

	if err := u.interactionRepo.DeleteByPost(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete interactions: %w", err)
	}
	if err := u.postRepo.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if err := u.imageStorage.RemoveImage(ctx, post.ImageKey); err != nil {
		u.logger.Warnf("failed to remove image %s: %v", post.ImageKey, err)
	}
	if err := u.userRepo.AdjustPostCount(ctx, userID, -1); err != nil {
		u.logger.Warnf("failed to drop post count for user %s: %v", userID, err)
	}
	u.invalidateTimeline(ctx)

	u.logger.Infof("post %s deleted by user %s", postID, userID)
	return nil
}

// PresignImageUpload issues an upload ticket for a client-side image upload.
func (u *PostUsecase) PresignImageUpload(ctx context.Context, userID, contentType string) (*contract.UploadTicket, error) {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return nil, NewValidationError("unsupported image content type")
	}
	ticket, err := u.imageStorage.PresignUpload(ctx, userID, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}
	return ticket, nil
}

// buildPage enriches up to limit posts and computes the next cursor from the
// extra row fetched beyond the page.
func (u *PostUsecase) buildPage(ctx context.Context, posts []*entity.Post, viewerID string, limit int) *contract.TimelinePage {
	hasMore := len(posts) > limit
	if hasMore {
		posts = posts[:limit]
	}
	for _, p := range posts {
		u.enrich(ctx, p, viewerID)
	}
	page := &contract.TimelinePage{Posts: posts, HasMore: hasMore}
	if hasMore && len(posts) > 0 {
		page.NextCursor = encodeCursor(posts[len(posts)-1].CreatedAt)
	}
	return page
}

// enrich attaches author info, image URL and the viewer's like state.
func (u *PostUsecase) enrich(ctx context.Context, post *entity.Post, viewerID string) {
	post.ImageURL = u.imageStorage.ImageURL(post.ImageKey)
	if author, err := u.userRepo.GetUserByID(ctx, post.UserID); err == nil && author != nil {
		post.Author = &entity.Author{
			UserID:    author.ID,
			Username:  author.Username,
			AvatarKey: author.AvatarKey,
		}
	}
	if viewerID != "" {
		if like, err := u.interactionRepo.GetLike(ctx, post.ID, viewerID); err == nil && like != nil {
			post.LikedByMe = true
		}
	}
}

func (u *PostUsecase) invalidateTimeline(ctx context.Context) {
	if u.feedCache == nil {
		return
	}
	if err := u.feedCache.InvalidateTimeline(ctx); err != nil {
		u.logger.Warnf("failed to invalidate timeline cache: %v", err)
	}
}

func clampLimit(limit int) int {
	if limit < 1 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func timelineCacheKey(cursor string, limit int) string {
	return "timeline:" + cursor + ":" + strconv.Itoa(limit)
}

// Cursors are the base64 of the boundary instant in RFC3339Nano. A zero time
// means "from the head".
func encodeCursor(t time.Time) string {
	return base64.RawURLEncoding.EncodeToString([]byte(t.UTC().Format(time.RFC3339Nano)))
}

func decodeCursor(cursor string) (time.Time, error) {
	if cursor == "" {
		return time.Time{}, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, errors.New("malformed cursor")
	}
	t, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return time.Time{}, errors.New("malformed cursor")
	}
	return t, nil
}
