package feed

import (
	"context"
	"fmt"

	"github.com/tomokihara/snapfeed/internal/domain/entity"
)

// Kind classifies the mutating operations a Store can have in flight.
type Kind string

const (
	KindLike    Kind = "like"
	KindComment Kind = "comment"
	KindDelete  Kind = "delete"
)

// LikeResult is the authoritative like state reported by the backend after
// a toggle.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// API is the remote collaborator the Store drives. Implementations perform
// the actual backend calls; the Store owns all local state transitions.
type API interface {
	ToggleLike(ctx context.Context, postID string) (LikeResult, error)
	AddComment(ctx context.Context, postID, content string) (entity.Comment, error)
	DeletePost(ctx context.Context, postID string) error
}

// RemoteError wraps a failed remote operation with the post and operation
// it belonged to. The collaborator's message is preserved for display.
type RemoteError struct {
	Kind   Kind
	PostID string
	Err    error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s on post %s failed: %v", e.Kind, e.PostID, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }
