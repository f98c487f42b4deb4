package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
	"github.com/MrSnakeDoc/staffdash/internal/index"
	"github.com/MrSnakeDoc/staffdash/internal/logger"
	"github.com/MrSnakeDoc/staffdash/internal/metrics"
	"github.com/MrSnakeDoc/staffdash/internal/sources"
)

// SnapshotStore persists a copy of the roster outside the process.
type SnapshotStore interface {
	SaveRoster(ctx context.Context, employees []domain.Employee) error
	LoadRoster(ctx context.Context) ([]domain.Employee, error)
}

// RosterReloader handles periodic reloading of the roster from its source
type RosterReloader struct {
	source        sources.Source
	snapshots     SnapshotStore // nil when redis is disabled
	roster        *index.Roster
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
}

// NewRosterReloader creates a new roster reloader. manualTrigger may be nil.
func NewRosterReloader(
	source sources.Source,
	snapshots SnapshotStore,
	roster *index.Roster,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *RosterReloader {
	return &RosterReloader{
		source:        source,
		snapshots:     snapshots,
		roster:        roster,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the roster once, then keeps reloading on every tick and manual
// trigger until Stop or ctx is done. A failed first load is only fatal when
// no roster was seeded from a snapshot.
func (rr *RosterReloader) Start(ctx context.Context) error {
	if err := rr.Reload(ctx); err != nil {
		if !rr.roster.Loaded() {
			return fmt.Errorf("initial reload failed: %w", err)
		}
		rr.logger.Warn("initial reload failed, serving snapshot",
			logger.Int("employees", rr.roster.Count()),
			logger.Error(err))
	}

	ticker := time.NewTicker(rr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rr.reloadLogged(ctx)
			case <-rr.manualTrigger:
				rr.logger.Info("manual reload triggered")
				rr.reloadLogged(ctx)
			case <-rr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader. Safe to call more than once.
func (rr *RosterReloader) Stop() {
	rr.stopOnce.Do(func() { close(rr.stopCh) })
}

func (rr *RosterReloader) reloadLogged(ctx context.Context) {
	if err := rr.Reload(ctx); err != nil {
		rr.logger.Error("failed to reload roster", logger.Error(err))
	}
}

// Reload fetches the roster from the source and installs it. On failure the
// current roster is kept.
func (rr *RosterReloader) Reload(ctx context.Context) error {
	log := rr.logger.With(
		logger.String("run", uuid.NewString()),
		logger.String("source", rr.source.Name()))
	log.Info("reloading roster")
	start := time.Now()

	employees, err := rr.source.List(ctx)
	if err != nil {
		metrics.RosterReloads.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to load roster: %w", err)
	}

	rr.roster.Replace(employees, index.OriginSource)
	metrics.RosterReloads.WithLabelValues("ok").Inc()
	metrics.RosterSize.Set(float64(rr.roster.Count()))

	log.Info("roster reloaded",
		logger.Int("employees", rr.roster.Count()),
		logger.Duration("took", time.Since(start)))

	// Best effort: the in-memory roster is the primary copy.
	if rr.snapshots != nil {
		if err := rr.snapshots.SaveRoster(ctx, rr.roster.All()); err != nil {
			log.Warn("failed to save roster snapshot", logger.Error(err))
		} else {
			log.Debug("roster snapshot saved")
		}
	}

	return nil
}
