package contract

import (
	"context"
	"time"

	"github.com/tomokihara/snapfeed/internal/domain/entity"
)

// TimelinePage is one page of posts ordered newest first, with the cursor
// to request the next page. An empty NextCursor means the timeline is exhausted.
type TimelinePage struct {
	Posts      []*entity.Post `json:"posts"`
	NextCursor string         `json:"next_cursor,omitempty"`
	HasMore    bool           `json:"has_more"`
}

// IPostRepository defines the interface for post data persistence.
type IPostRepository interface {
	CreatePost(ctx context.Context, post *entity.Post) error
	GetPostByID(ctx context.Context, postID string) (*entity.Post, error)
	// ListTimeline returns up to limit posts created strictly before the cursor
	// instant, newest first. A zero cursor starts from the head of the timeline.
	ListTimeline(ctx context.Context, before time.Time, limit int) ([]*entity.Post, error)
	ListByUser(ctx context.Context, userID string, before time.Time, limit int) ([]*entity.Post, error)
	DeletePost(ctx context.Context, postID string) error
	AdjustCounts(ctx context.Context, postID string, likesDelta, commentsDelta int) error
}
