package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/staffdash/internal/index"
	"github.com/MrSnakeDoc/staffdash/internal/logger"
	"github.com/MrSnakeDoc/staffdash/internal/metrics"
)

// RedisSyncer seeds the roster from the last snapshot on startup
type RedisSyncer struct {
	store  SnapshotStore
	roster *index.Roster
	logger logger.Logger
}

// NewRedisSyncer creates a new redis syncer
func NewRedisSyncer(
	store SnapshotStore,
	roster *index.Roster,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		roster: roster,
		logger: log,
	}
}

// Sync loads the snapshot into the roster unless a roster is already loaded.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	if rs.roster.Loaded() {
		return nil
	}
	rs.logger.Info("syncing roster from redis snapshot")

	employees, err := rs.store.LoadRoster(ctx)
	if err != nil {
		return err
	}

	if len(employees) == 0 {
		rs.logger.Info("no roster snapshot found in redis")
		return nil
	}

	rs.roster.Replace(employees, index.OriginSnapshot)
	metrics.RosterSize.Set(float64(rs.roster.Count()))

	rs.logger.Info("synced roster from redis",
		logger.Int("count", len(employees)))

	return nil
}
