package game

import "time"

// PeriodicTickerChannelCreator lets tests feed the reaper hand-rolled
// tick channels instead of real timers.
type PeriodicTickerChannelCreator interface {
	Create(period time.Duration) <-chan time.Time
}

type TickerGen struct{}

func NewTickerGen() TickerGen {
	return TickerGen{}
}

func (TickerGen) Create(period time.Duration) <-chan time.Time {
	return time.NewTicker(period).C
}
