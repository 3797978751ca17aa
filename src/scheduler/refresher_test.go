package scheduler_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"market-pulse/src/logger"
	"market-pulse/src/models"
	"market-pulse/src/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	mu        sync.Mutex
	refreshes int
}

func (f *fakeService) Snapshot(context.Context) models.MSnapshotResponse {
	return models.MSnapshotResponse{}
}

func (f *fakeService) RefreshSnapshot(context.Context) models.MSnapshotResponse {
	f.mu.Lock()
	f.refreshes++
	f.mu.Unlock()
	return models.MSnapshotResponse{MMarketSnapshot: models.NewMarketSnapshot(nil, time.Now())}
}

func (f *fakeService) Series(context.Context, string, string) models.MSeriesResponse {
	return models.MSeriesResponse{}
}

func (f *fakeService) Metrics() models.MAggregationMetrics { return models.MAggregationMetrics{} }

func (f *fakeService) CacheTTL() time.Duration { return time.Minute }

func (f *fakeService) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshes
}

type fakeExchange struct {
	mu          sync.Mutex
	connections int
	pushed      int
}

func (f *fakeExchange) Broadcast(models.MSnapshotResponse) {
	f.mu.Lock()
	f.pushed++
	f.mu.Unlock()
}

func (f *fakeExchange) Connections() int { return f.connections }

func (f *fakeExchange) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pushed
}

type fakeHours bool

func (h fakeHours) AnyMarketOpen() bool { return bool(h) }

func newRefresher(svc *fakeService, ex *fakeExchange, open bool) *scheduler.Refresher {
	log := logger.NewLogger(&models.MConfig{LogLevel: "ERROR"}, "RefresherTest")
	return scheduler.NewRefresher(context.Background(), svc, ex, fakeHours(open), log)
}

// -----------------------------------------------------------------------------

func TestRunOnceGates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		connections int
		open        bool
		want        bool
	}{
		{"no listeners", 0, true, false},
		{"markets closed", 3, false, false},
		{"open with listeners", 1, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeService{}
			ex := &fakeExchange{connections: tc.connections}

			assert.Equal(t, tc.want, newRefresher(svc, ex, tc.open).RunOnce())
			want := 0
			if tc.want {
				want = 1
			}
			assert.Equal(t, want, svc.count())
			assert.Equal(t, want, ex.count())
		})
	}
}

func TestRegisterRejectsBadCron(t *testing.T) {
	t.Parallel()

	r := newRefresher(&fakeService{}, &fakeExchange{}, true)
	assert.Error(t, r.Register("not a cron"))
	assert.NoError(t, r.Register("@every 1m"))
	assert.NoError(t, r.Register("*/5 * * * *"))
}

func TestCronTicksRefresh(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	ex := &fakeExchange{connections: 1}
	r := newRefresher(svc, ex, true)
	require.NoError(t, r.Register("@every 1s"))

	r.Start()
	assert.Eventually(t, func() bool { return ex.count() >= 1 }, 3*time.Second, 50*time.Millisecond)
	r.Stop()
}
