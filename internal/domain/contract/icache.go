package contract

import "context"

// IFeedCache caches rendered timeline pages and single posts.
type IFeedCache interface {
	GetTimelinePage(ctx context.Context, key string) (*TimelinePage, bool, error)
	SetTimelinePage(ctx context.Context, key string, page *TimelinePage) error
	// InvalidateTimeline drops every cached timeline page. Called when posts
	// are created or deleted; like/comment count changes are left to age out
	// with the page TTL.
	InvalidateTimeline(ctx context.Context) error
}
