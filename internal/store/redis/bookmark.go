package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/staffdash/internal/bookmarks"
)

// BookmarkSlot persists the bookmark set in a single redis string key.
// The key never expires.
type BookmarkSlot struct {
	client *redis.Client
	key    string
}

// NewBookmarkSlot creates a slot on KeyBookmarks.
func NewBookmarkSlot(client *redis.Client) *BookmarkSlot {
	return &BookmarkSlot{client: client, key: KeyBookmarks}
}

func (b *BookmarkSlot) Name() string { return "redis:" + b.key }

func (b *BookmarkSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, bookmarks.ErrSlotEmpty
		}
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}
	return data, nil
}

func (b *BookmarkSlot) Save(ctx context.Context, data []byte) error {
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return nil
}
