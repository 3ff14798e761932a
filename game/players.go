package game

import (
	"sync"

	"leaderboard/domain"
)

// PlayerStore holds the live state of every currently-connected player,
// keyed by username. It is one of the four independently-locked stores;
// callers must never reach into the map directly.
type PlayerStore struct {
	mu      sync.RWMutex
	players map[string]domain.Player
}

func NewPlayerStore() *PlayerStore {
	return &PlayerStore{
		players: make(map[string]domain.Player),
	}
}

// Upsert registers a player on join. Re-joining under an existing
// username resets the player in place: score and collections start over.
func (ps *PlayerStore) Upsert(id uint64, username string) domain.Player {
	player := domain.Player{
		Id:       id,
		Username: username,
		Score:    0,
		Hordes:   []domain.Horde{},
		Pois:     []domain.POI{},
	}

	ps.mu.Lock()
	ps.players[username] = player
	ps.mu.Unlock()

	return player
}

// ApplyUpdate replaces the stored player wholesale with the snapshot
// embedded in the update.
func (ps *PlayerStore) ApplyUpdate(update domain.Update) {
	ps.mu.Lock()
	ps.players[update.Player.Username] = update.Player
	ps.mu.Unlock()
}

// Remove deletes a player. Unknown usernames are a no-op.
func (ps *PlayerStore) Remove(username string) {
	ps.mu.Lock()
	delete(ps.players, username)
	ps.mu.Unlock()
}

// Snapshot returns all current players in arbitrary order.
func (ps *PlayerStore) Snapshot() []domain.Player {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	players := make([]domain.Player, 0, len(ps.players))
	for _, player := range ps.players {
		players = append(players, player)
	}
	return players
}

// Usernames returns the keys of all current players.
func (ps *PlayerStore) Usernames() []string {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	usernames := make([]string, 0, len(ps.players))
	for username := range ps.players {
		usernames = append(usernames, username)
	}
	return usernames
}

func (ps *PlayerStore) Count() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.players)
}
