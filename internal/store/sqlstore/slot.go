package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/staffdash/internal/bookmarks"
)

// DefaultBookmarkSlot is the row name holding the bookmark set.
const DefaultBookmarkSlot = "bookmarks"

// BookmarkSlot stores the serialized bookmark set in one row of
// staffdash_slots.
type BookmarkSlot struct {
	db   *DB
	name string
}

func NewBookmarkSlot(db *DB, name string) *BookmarkSlot {
	if name == "" {
		name = DefaultBookmarkSlot
	}
	return &BookmarkSlot{db: db, name: name}
}

func (s *BookmarkSlot) Name() string {
	return fmt.Sprintf("%s:%s", s.db.dialect, s.name)
}

func (s *BookmarkSlot) Load(ctx context.Context) ([]byte, error) {
	var value string
	err := s.db.Client.QueryRowContext(ctx,
		s.db.rebind(`SELECT value FROM staffdash_slots WHERE name = ?`),
		s.name,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bookmarks.ErrSlotEmpty
		}
		return nil, fmt.Errorf("failed to read bookmark slot: %w", err)
	}
	if value == "" {
		return nil, bookmarks.ErrSlotEmpty
	}
	return []byte(value), nil
}

func (s *BookmarkSlot) Save(ctx context.Context, data []byte) error {
	_, err := s.db.Client.ExecContext(ctx,
		s.db.rebind(`
			INSERT INTO staffdash_slots (name, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT (name) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at`),
		s.name, string(data), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write bookmark slot: %w", err)
	}
	return nil
}

// UpdatedAt returns when the slot was last written, or the zero time when it
// was never written.
func (s *BookmarkSlot) UpdatedAt(ctx context.Context) (time.Time, error) {
	var unix int64
	err := s.db.Client.QueryRowContext(ctx,
		s.db.rebind(`SELECT updated_at FROM staffdash_slots WHERE name = ?`),
		s.name,
	).Scan(&unix)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to read bookmark slot: %w", err)
	}
	return time.Unix(unix, 0), nil
}
