package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tomokihara/snapfeed/internal/domain/contract"
)

// FeedCacheStore caches rendered timeline pages in redis. Pages are stored
// as JSON blobs with a short TTL; any feed write invalidates all of them.
type FeedCacheStore struct {
	rdb     *redis.Client
	pageTTL time.Duration
}

var _ contract.IFeedCache = (*FeedCacheStore)(nil)

func NewFeedCacheStore(rdb *redis.Client) *FeedCacheStore {
	return &FeedCacheStore{
		rdb:     rdb,
		pageTTL: 5 * time.Minute,
	}
}

func pageKey(key string) string { return fmt.Sprintf("feed:page:%s", key) }

func (c *FeedCacheStore) GetTimelinePage(ctx context.Context, key string) (*contract.TimelinePage, bool, error) {
	b, err := c.rdb.Get(ctx, pageKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var page contract.TimelinePage
	if err := json.Unmarshal(b, &page); err != nil {
		// Treat a corrupt blob as a miss; it will be rewritten.
		return nil, false, nil
	}
	return &page, true, nil
}

func (c *FeedCacheStore) SetTimelinePage(ctx context.Context, key string, page *contract.TimelinePage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, pageKey(key), data, c.pageTTL).Err()
}

func (c *FeedCacheStore) InvalidateTimeline(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, "feed:page:*", 1000).Iterator()
	pipe := c.rdb.Pipeline()
	n := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		n++
		if n%200 == 0 {
			if _, err := pipe.Exec(ctx); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	_, _ = pipe.Exec(ctx)
	return nil
}
