package game

import (
	"sync"

	"golang.org/x/time/rate"
)

// updateLimiters throttles the update endpoint per player. Limiters are
// created lazily and never expire; the map is bounded by the number of
// usernames ever seen, which matches the unbounded-history trade-off the
// rest of the system already accepts.
type updateLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newUpdateLimiters(limit rate.Limit, burst int) *updateLimiters {
	return &updateLimiters{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (ul *updateLimiters) Allow(username string) bool {
	ul.mu.Lock()
	limiter, ok := ul.limiters[username]
	if !ok {
		limiter = rate.NewLimiter(ul.limit, ul.burst)
		ul.limiters[username] = limiter
	}
	ul.mu.Unlock()

	return limiter.Allow()
}
