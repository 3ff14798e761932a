package game

import (
	"slices"
	"sync"

	"leaderboard/domain"
)

// HistoryStore is the append-only time series of reported updates per
// player. Entries survive the player leaving; the store only ever grows
// within a process lifetime. It backs the all-time leaderboard, the fps
// telemetry, and the idle reaper's liveness check.
type HistoryStore struct {
	mu      sync.RWMutex
	updates map[string][]domain.Update
}

func NewHistoryStore() *HistoryStore {
	return NewHistoryStoreFrom(nil)
}

// NewHistoryStoreFrom seeds the store with previously persisted history,
// typically today's snapshot loaded at startup.
func NewHistoryStoreFrom(seed map[string][]domain.Update) *HistoryStore {
	updates := make(map[string][]domain.Update, len(seed))
	for username, seq := range seed {
		updates[username] = cloneUpdates(seq)
	}
	return &HistoryStore{updates: updates}
}

// cloneUpdates copies a sequence including the collections embedded in
// each update's player, so neither side can reach the other's backing
// arrays.
func cloneUpdates(seq []domain.Update) []domain.Update {
	cloned := slices.Clone(seq)
	for i := range cloned {
		cloned[i].Player.Hordes = slices.Clone(cloned[i].Player.Hordes)
		cloned[i].Player.Pois = slices.Clone(cloned[i].Player.Pois)
	}
	return cloned
}

// Record appends the update to the player's sequence unless the embedded
// player equals the one in the last stored entry. Tick, fps and
// timestamp are deliberately excluded from the comparison: a player who
// keeps reporting identical game state is not recorded as recently seen.
// Returns whether the update was appended.
func (hs *HistoryStore) Record(update domain.Update) bool {
	username := update.Player.Username

	hs.mu.Lock()
	defer hs.mu.Unlock()

	seq := hs.updates[username]
	if len(seq) > 0 && seq[len(seq)-1].Player.Equal(update.Player) {
		return false
	}
	hs.updates[username] = append(seq, update)
	return true
}

// Latest returns the most recent stored update for the player.
func (hs *HistoryStore) Latest(username string) (domain.Update, bool) {
	hs.mu.RLock()
	defer hs.mu.RUnlock()

	seq := hs.updates[username]
	if len(seq) == 0 {
		return domain.Update{}, false
	}
	return seq[len(seq)-1], true
}

// Peak returns the stored update with the maximum score for the player.
// Ties keep the first-seen entry (stable max scan).
func (hs *HistoryStore) Peak(username string) (domain.Update, bool) {
	hs.mu.RLock()
	defer hs.mu.RUnlock()

	seq := hs.updates[username]
	if len(seq) == 0 {
		return domain.Update{}, false
	}

	peak := seq[0]
	for _, update := range seq[1:] {
		if update.Player.Score > peak.Player.Score {
			peak = update
		}
	}
	return peak, true
}

// AllLatest returns the most recent update of every player ever seen.
func (hs *HistoryStore) AllLatest() []domain.Update {
	hs.mu.RLock()
	defer hs.mu.RUnlock()

	latest := make([]domain.Update, 0, len(hs.updates))
	for _, seq := range hs.updates {
		if len(seq) > 0 {
			latest = append(latest, seq[len(seq)-1])
		}
	}
	return latest
}

// AllPeaks returns the peak-score update of every player ever seen.
func (hs *HistoryStore) AllPeaks() []domain.Update {
	hs.mu.RLock()
	defer hs.mu.RUnlock()

	peaks := make([]domain.Update, 0, len(hs.updates))
	for _, seq := range hs.updates {
		if len(seq) == 0 {
			continue
		}
		peak := seq[0]
		for _, update := range seq[1:] {
			if update.Player.Score > peak.Player.Score {
				peak = update
			}
		}
		peaks = append(peaks, peak)
	}
	return peaks
}

// Snapshot returns a private copy of the whole store, safe to serialize
// after the lock is released.
func (hs *HistoryStore) Snapshot() map[string][]domain.Update {
	hs.mu.RLock()
	defer hs.mu.RUnlock()

	snapshot := make(map[string][]domain.Update, len(hs.updates))
	for username, seq := range hs.updates {
		snapshot[username] = cloneUpdates(seq)
	}
	return snapshot
}
