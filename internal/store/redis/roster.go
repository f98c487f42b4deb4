package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
)

// SaveRoster replaces the roster snapshot in one transaction: every employee
// as a JSON blob plus the ordered id list.
func (s *Store) SaveRoster(ctx context.Context, employees []domain.Employee) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, KeyRosterOrder)

	ids := make([]interface{}, 0, len(employees))
	for _, e := range employees {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal employee %d: %w", e.ID, err)
		}
		pipe.Set(ctx, EmployeeKey(e.ID), data, s.ttl)
		ids = append(ids, e.ID)
	}
	if len(ids) > 0 {
		pipe.RPush(ctx, KeyRosterOrder, ids...)
		pipe.Expire(ctx, KeyRosterOrder, s.ttl)
	}
	pipe.Set(ctx, KeyRosterSavedAt, time.Now().UTC().Format(time.RFC3339), s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}
	return nil
}

// LoadRoster returns the snapshotted employees in roster order. Entries whose
// blob expired or is unreadable are skipped.
func (s *Store) LoadRoster(ctx context.Context) ([]domain.Employee, error) {
	rawIDs, err := s.client.LRange(ctx, KeyRosterOrder, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get roster order: %w", err)
	}
	if len(rawIDs) == 0 {
		return []domain.Employee{}, nil
	}

	keys := make([]string, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		keys = append(keys, EmployeeKey(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}

	employees := make([]domain.Employee, 0, len(values))
	for _, v := range values {
		blob, ok := v.(string)
		if !ok {
			continue
		}
		var e domain.Employee
		if err := json.Unmarshal([]byte(blob), &e); err != nil {
			continue
		}
		employees = append(employees, e)
	}
	return employees, nil
}

// RosterSavedAt returns when the snapshot was last written, or the zero time
// when there is none.
func (s *Store) RosterSavedAt(ctx context.Context) (time.Time, error) {
	raw, err := s.client.Get(ctx, KeyRosterSavedAt).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to get roster timestamp: %w", err)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid roster timestamp %q: %w", raw, err)
	}
	return t, nil
}
