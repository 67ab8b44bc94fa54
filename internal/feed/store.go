package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tomokihara/snapfeed/internal/domain/entity"
	usecasecontract "github.com/tomokihara/snapfeed/internal/usecase/contract"
)

// DefaultErrorTTL is how long a recorded operation error stays visible
// before it expires on its own.
const DefaultErrorTTL = 3 * time.Second

// ErrPostNotFound is returned when an operation references a post that is
// not (or no longer) held by the store.
var ErrPostNotFound = errors.New("post not found in feed")

// Validation failures for comments. Both are recorded in the post's error
// slot and returned to the caller; neither reaches the remote collaborator.
var (
	ErrEmptyComment   = errors.New("comment content is required")
	ErrCommentTooLong = fmt.Errorf("comment must be %d characters or fewer", entity.MaxCommentLength)
)

type opKey struct {
	postID string
	kind   Kind
}

type slotError struct {
	msg       string
	expiresAt time.Time
}

// Patch carries partial post updates applied by UpdateItem. Nil fields are
// left untouched.
type Patch struct {
	Caption      *string
	LikeCount    *int
	CommentCount *int
	LikedByMe    *bool
}

// Store holds the client-side feed state and applies optimistic mutations
// against it: likes flip locally before the backend confirms and roll back
// exactly on failure; comments and deletes only mutate on confirmed success.
//
// At most one remote call per (post, operation kind) is ever outstanding;
// duplicate invocations while one is in flight are dropped. All state is
// owned by the store: accessors return copies, never internal references.
type Store struct {
	mu       sync.Mutex
	api      API
	logger   usecasecontract.IAppLogger
	errTTL   time.Duration
	now      func() time.Time
	posts    []entity.Post
	inFlight map[opKey]struct{}
	errs     map[string]slotError
}

// Option configures a Store.
type Option func(*Store)

// WithErrorTTL overrides the error auto-expiry window.
func WithErrorTTL(ttl time.Duration) Option {
	return func(s *Store) { s.errTTL = ttl }
}

// WithClock overrides the store's time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger attaches a logger. Without one the store stays silent.
func WithLogger(logger usecasecontract.IAppLogger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a feed store driving the given remote collaborator.
func NewStore(api API, opts ...Option) *Store {
	s := &Store{
		api:      api,
		errTTL:   DefaultErrorTTL,
		now:      time.Now,
		inFlight: make(map[opKey]struct{}),
		errs:     make(map[string]slotError),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ToggleLike optimistically flips the viewer's like on a post, then
// reconciles with the backend. On success the server-reported state
// overwrites the optimistic guess; on failure the exact pre-optimistic
// state is restored and the error is recorded against the post.
//
// Like failures are self-contained: they surface through GetError only.
// The returned error is non-nil only when the post is unknown.
func (s *Store) ToggleLike(ctx context.Context, postID string) error {
	s.mu.Lock()
	idx := s.index(postID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrPostNotFound
	}
	key := opKey{postID, KindLike}
	if _, busy := s.inFlight[key]; busy {
		s.mu.Unlock()
		return nil
	}

	// Snapshot before the optimistic flip. Rollback restores exactly this,
	// never a recomputation from whatever the state drifted to.
	prevLiked := s.posts[idx].LikedByMe
	prevCount := s.posts[idx].LikeCount

	s.posts[idx].LikedByMe = !prevLiked
	if prevLiked {
		if s.posts[idx].LikeCount > 0 {
			s.posts[idx].LikeCount--
		}
	} else {
		s.posts[idx].LikeCount++
	}
	s.inFlight[key] = struct{}{}
	s.mu.Unlock()

	result, err := s.api.ToggleLike(ctx, postID)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)

	// The post may have been deleted while the call was outstanding; a
	// stale completion must settle without touching anything.
	idx = s.index(postID)
	if err != nil {
		if idx >= 0 {
			s.posts[idx].LikedByMe = prevLiked
			s.posts[idx].LikeCount = prevCount
		}
		s.recordError(postID, err)
		if s.logger != nil {
			s.logger.Warnf("like toggle failed for post %s: %v", postID, err)
		}
		return nil
	}
	if idx >= 0 {
		s.posts[idx].LikedByMe = result.Liked
		s.posts[idx].LikeCount = result.LikeCount
	}
	return nil
}

// AddComment submits a comment. The comment count only moves on confirmed
// success; on failure the caller keeps the input and gets the error back,
// which is also recorded against the post for display.
//
// A duplicate invocation while one is outstanding is dropped and returns
// (nil, nil).
func (s *Store) AddComment(ctx context.Context, postID, content string) (*entity.Comment, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		s.mu.Lock()
		s.recordError(postID, ErrEmptyComment)
		s.mu.Unlock()
		return nil, ErrEmptyComment
	}
	if len([]rune(trimmed)) > entity.MaxCommentLength {
		s.mu.Lock()
		s.recordError(postID, ErrCommentTooLong)
		s.mu.Unlock()
		return nil, ErrCommentTooLong
	}

	s.mu.Lock()
	if s.index(postID) < 0 {
		s.mu.Unlock()
		return nil, ErrPostNotFound
	}
	key := opKey{postID, KindComment}
	if _, busy := s.inFlight[key]; busy {
		s.mu.Unlock()
		return nil, nil
	}
	s.inFlight[key] = struct{}{}
	s.mu.Unlock()

	comment, err := s.api.AddComment(ctx, postID, trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)

	if err != nil {
		s.recordError(postID, err)
		if s.logger != nil {
			s.logger.Warnf("comment failed for post %s: %v", postID, err)
		}
		return nil, &RemoteError{Kind: KindComment, PostID: postID, Err: err}
	}
	if idx := s.index(postID); idx >= 0 {
		s.posts[idx].CommentCount++
	}
	return &comment, nil
}

// DeletePost removes a post. Deletion is destructive, so it is never
// applied speculatively: the post leaves the list only on confirmed
// success. Failures are recorded and returned.
func (s *Store) DeletePost(ctx context.Context, postID string) error {
	s.mu.Lock()
	if s.index(postID) < 0 {
		s.mu.Unlock()
		return ErrPostNotFound
	}
	key := opKey{postID, KindDelete}
	if _, busy := s.inFlight[key]; busy {
		s.mu.Unlock()
		return nil
	}
	s.inFlight[key] = struct{}{}
	s.mu.Unlock()

	err := s.api.DeletePost(ctx, postID)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)

	if err != nil {
		s.recordError(postID, err)
		if s.logger != nil {
			s.logger.Warnf("delete failed for post %s: %v", postID, err)
		}
		return &RemoteError{Kind: KindDelete, PostID: postID, Err: err}
	}
	if idx := s.index(postID); idx >= 0 {
		s.posts = append(s.posts[:idx], s.posts[idx+1:]...)
	}
	return nil
}

// IsLoading reports whether a remote call for (postID, kind) is outstanding.
func (s *Store) IsLoading(postID string, kind Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.inFlight[opKey{postID, kind}]
	return busy
}

// GetError returns the currently surfaced error message for a post, if any.
// Expired slots read as absent and are dropped.
func (s *Store) GetError(postID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.errs[postID]
	if !ok {
		return "", false
	}
	if !s.now().Before(slot.expiresAt) {
		delete(s.errs, postID)
		return "", false
	}
	return slot.msg, true
}

// ClearError dismisses a post's surfaced error immediately.
func (s *Store) ClearError(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.errs, postID)
}

// SetItems replaces the whole feed. The slice is copied; the caller keeps
// ownership of its own slice.
func (s *Store) SetItems(posts []entity.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = make([]entity.Post, len(posts))
	copy(s.posts, posts)
}

// AddItem prepends a new post to the feed.
func (s *Store) AddItem(post entity.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append([]entity.Post{post}, s.posts...)
}

// UpdateItem applies a partial patch to one post. Unknown IDs are ignored;
// sibling surfaces may race with deletion.
func (s *Store) UpdateItem(postID string, patch Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.index(postID)
	if idx < 0 {
		return
	}
	if patch.Caption != nil {
		s.posts[idx].Caption = *patch.Caption
	}
	if patch.LikeCount != nil {
		s.posts[idx].LikeCount = *patch.LikeCount
	}
	if patch.CommentCount != nil {
		s.posts[idx].CommentCount = *patch.CommentCount
	}
	if patch.LikedByMe != nil {
		s.posts[idx].LikedByMe = *patch.LikedByMe
	}
}

// Items returns a copied snapshot of the feed in display order.
func (s *Store) Items() []entity.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Item returns a copy of one post by ID.
func (s *Store) Item(postID string) (entity.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.index(postID)
	if idx < 0 {
		return entity.Post{}, false
	}
	return s.posts[idx], true
}

// index returns the position of a post, or -1. Caller holds s.mu.
func (s *Store) index(postID string) int {
	for i := range s.posts {
		if s.posts[i].ID == postID {
			return i
		}
	}
	return -1
}

// recordError stores an error message for a post. A new error replaces the
// previous slot and restarts its expiry window. Caller holds s.mu.
func (s *Store) recordError(postID string, err error) {
	msg := "operation failed"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	s.errs[postID] = slotError{
		msg:       msg,
		expiresAt: s.now().Add(s.errTTL),
	}
}
