package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
	"github.com/MrSnakeDoc/staffdash/internal/index"
	"github.com/MrSnakeDoc/staffdash/internal/logger"
	"github.com/MrSnakeDoc/staffdash/internal/sources"
)

type fakeSource struct {
	mu    sync.Mutex
	list  []domain.Employee
	err   error
	calls int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) List(context.Context) ([]domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeSource) Get(_ context.Context, id int) (domain.Employee, error) {
	return domain.Employee{}, sources.ErrNotFound
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSnapshots struct {
	mu      sync.Mutex
	saved   []domain.Employee
	saveErr error
	loadErr error
}

func (f *fakeSnapshots) SaveRoster(_ context.Context, e []domain.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append([]domain.Employee(nil), e...)
	return nil
}

func (f *fakeSnapshots) LoadRoster(context.Context) ([]domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.saved, nil
}

func people(ids ...int) []domain.Employee {
	out := make([]domain.Employee, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Annotate(domain.Person{ID: id, FirstName: "P"}))
	}
	return out
}

func TestRosterReloader_Reload(t *testing.T) {
	src := &fakeSource{list: people(1, 2, 3)}
	snaps := &fakeSnapshots{}
	roster := index.NewRoster()
	rr := NewRosterReloader(src, snaps, roster, logger.NewNop(), time.Hour, nil)

	require.NoError(t, rr.Reload(context.Background()))

	assert.Equal(t, 3, roster.Count())
	assert.Equal(t, index.OriginSource, roster.Origin())
	assert.Len(t, snaps.saved, 3)
}

func TestRosterReloader_ReloadFailureKeepsRoster(t *testing.T) {
	src := &fakeSource{list: people(1, 2)}
	roster := index.NewRoster()
	rr := NewRosterReloader(src, nil, roster, logger.NewNop(), time.Hour, nil)
	require.NoError(t, rr.Reload(context.Background()))

	src.err = errors.New("upstream down")
	assert.Error(t, rr.Reload(context.Background()))
	assert.Equal(t, 2, roster.Count())
}

func TestRosterReloader_SnapshotFailureIsNotFatal(t *testing.T) {
	src := &fakeSource{list: people(1)}
	snaps := &fakeSnapshots{saveErr: errors.New("redis down")}
	roster := index.NewRoster()
	rr := NewRosterReloader(src, snaps, roster, logger.NewNop(), time.Hour, nil)

	assert.NoError(t, rr.Reload(context.Background()))
	assert.Equal(t, 1, roster.Count())
}

func TestRosterReloader_StartFailsWithoutRoster(t *testing.T) {
	src := &fakeSource{err: errors.New("upstream down")}
	rr := NewRosterReloader(src, nil, index.NewRoster(), logger.NewNop(), time.Hour, nil)

	assert.Error(t, rr.Start(context.Background()))
}

func TestRosterReloader_StartServesSnapshotWhenSourceDown(t *testing.T) {
	src := &fakeSource{err: errors.New("upstream down")}
	roster := index.NewRoster()
	roster.Replace(people(7), index.OriginSnapshot)
	rr := NewRosterReloader(src, nil, roster, logger.NewNop(), time.Hour, nil)

	require.NoError(t, rr.Start(context.Background()))
	defer rr.Stop()

	assert.Equal(t, index.OriginSnapshot, roster.Origin())
}

func TestRosterReloader_ManualTrigger(t *testing.T) {
	src := &fakeSource{list: people(1)}
	trigger := make(chan struct{}, 1)
	rr := NewRosterReloader(src, nil, index.NewRoster(), logger.NewNop(), time.Hour, trigger)

	require.NoError(t, rr.Start(context.Background()))
	defer rr.Stop()
	assert.Equal(t, 1, src.Calls())

	trigger <- struct{}{}
	assert.Eventually(t, func() bool { return src.Calls() == 2 }, time.Second, 5*time.Millisecond)

	rr.Stop()
	rr.Stop()
}

func TestRedisSyncer_Sync(t *testing.T) {
	snaps := &fakeSnapshots{saved: people(4, 5)}
	roster := index.NewRoster()

	require.NoError(t, NewRedisSyncer(snaps, roster, logger.NewNop()).Sync(context.Background()))
	assert.Equal(t, 2, roster.Count())
	assert.Equal(t, index.OriginSnapshot, roster.Origin())
}

func TestRedisSyncer_SkipsLoadedRoster(t *testing.T) {
	snaps := &fakeSnapshots{saved: people(4, 5)}
	roster := index.NewRoster()
	roster.Replace(people(1), index.OriginSource)

	require.NoError(t, NewRedisSyncer(snaps, roster, logger.NewNop()).Sync(context.Background()))
	assert.Equal(t, 1, roster.Count())
}

func TestRedisSyncer_EmptyAndError(t *testing.T) {
	roster := index.NewRoster()

	require.NoError(t, NewRedisSyncer(&fakeSnapshots{}, roster, logger.NewNop()).Sync(context.Background()))
	assert.False(t, roster.Loaded())

	err := NewRedisSyncer(&fakeSnapshots{loadErr: errors.New("boom")}, roster, logger.NewNop()).Sync(context.Background())
	assert.Error(t, err)
}
