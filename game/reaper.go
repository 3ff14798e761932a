package game

import (
	"time"

	"leaderboard/shared/logger"
)

// IdleReaper periodically evicts players with no sufficiently recent
// history entry and then snapshots the history store. It is the only
// autonomous actor in the system and holds no lock across its
// scan-then-mutate boundary beyond what each store operation takes.
type IdleReaper struct {
	coordinator   *Coordinator
	period        time.Duration
	tickerCreator PeriodicTickerChannelCreator
}

func NewIdleReaper(coordinator *Coordinator, period time.Duration, tickerCreator PeriodicTickerChannelCreator) *IdleReaper {
	return &IdleReaper{
		coordinator:   coordinator,
		period:        period,
		tickerCreator: tickerCreator,
	}
}

// Run loops until the process exits. The staleness threshold equals the
// reap period: a player is idle once a full cycle passes without a
// recorded state change. Snapshot failures are logged and retried
// naturally on the next tick.
func (r *IdleReaper) Run(started chan struct{}) {
	ticker := r.tickerCreator.Create(r.period)
	close(started)

	for range ticker {
		evicted := r.coordinator.ReapIdle(r.period)
		if len(evicted) > 0 {
			logger.Infof("reaped %d idle players: %v", len(evicted), evicted)
		}
		r.coordinator.SnapshotHistory()
	}
}
