package game

import (
	"fmt"
	"sync"

	"leaderboard/domain"
)

// RoomRegistry owns the ordered list of rooms plus the current default
// config. Rooms are never deleted; deactivated rooms stop accepting
// members but stay listed.
type RoomRegistry struct {
	mu     sync.RWMutex
	rooms  []domain.Room
	config domain.Config
}

func NewRoomRegistry(config domain.Config) *RoomRegistry {
	return &RoomRegistry{config: config}
}

// GetOrCreate returns the first room in creation order that is active
// and under capacity. When none qualifies it creates a new room named by
// the next sequential index, seeded with the current global config, so
// config changes only affect rooms created afterwards.
func (rr *RoomRegistry) GetOrCreate() domain.RoomResponse {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	for _, room := range rr.rooms {
		if room.Active && len(room.Players) < room.Config.PlayersPerRoom {
			return domain.RoomResponse{Name: room.Name, Config: room.Config}
		}
	}

	room := domain.Room{
		Name:    fmt.Sprintf("Room %d", len(rr.rooms)),
		Players: []string{},
		Config:  rr.config,
		Active:  true,
	}
	rr.rooms = append(rr.rooms, room)

	return domain.RoomResponse{Name: room.Name, Config: room.Config}
}

// Join adds the player to the named room. No-op when the room does not
// exist, is inactive, is full, or already contains the player. Returns
// whether membership changed.
func (rr *RoomRegistry) Join(roomName, username string) bool {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	for i := range rr.rooms {
		room := &rr.rooms[i]
		if room.Name != roomName {
			continue
		}
		if !room.Active || len(room.Players) >= room.Config.PlayersPerRoom {
			return false
		}
		for _, member := range room.Players {
			if member == username {
				return false
			}
		}
		room.Players = append(room.Players, username)
		return true
	}
	return false
}

// Leave removes the player from every room's membership list.
func (rr *RoomRegistry) Leave(username string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	for i := range rr.rooms {
		room := &rr.rooms[i]
		for j, member := range room.Players {
			if member == username {
				room.Players = append(room.Players[:j], room.Players[j+1:]...)
				break
			}
		}
	}
}

// Deactivate flags the named room as closed to new members. Returns
// whether the room was found.
func (rr *RoomRegistry) Deactivate(roomName string) bool {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	for i := range rr.rooms {
		if rr.rooms[i].Name == roomName {
			rr.rooms[i].Active = false
			return true
		}
	}
	return false
}

// List returns a copy of every room, including inactive ones, in
// creation order.
func (rr *RoomRegistry) List() []domain.Room {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	rooms := make([]domain.Room, len(rr.rooms))
	for i, room := range rr.rooms {
		room.Players = append([]string(nil), room.Players...)
		rooms[i] = room
	}
	return rooms
}

// Snapshot returns the registry's state view.
func (rr *RoomRegistry) Snapshot() domain.State {
	return domain.State{Rooms: rr.List()}
}

// Config returns the current default config used to seed new rooms.
func (rr *RoomRegistry) Config() domain.Config {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	return rr.config
}
