package game

import (
	"time"

	"leaderboard/domain"
	"leaderboard/shared/logger"
)

// SnapshotWriter persists a full history snapshot to durable storage.
type SnapshotWriter interface {
	Save(history map[string][]domain.Update) error
}

// Coordinator composes the four stores and exposes one method per
// external operation. Operations that touch more than one store acquire
// and release each store's lock in a fixed order (players, history,
// rooms, commands) and never hold two at once, trading brief cross-store
// inconsistency windows for freedom from lock-ordering deadlocks.
type Coordinator struct {
	players   *PlayerStore
	history   *HistoryStore
	rooms     *RoomRegistry
	commands  *CommandLog
	snapshots SnapshotWriter
	now       func() time.Time
}

// NewCoordinator builds the coordinator around freshly created stores,
// seeding history from a previously loaded snapshot when one exists.
func NewCoordinator(config domain.Config, snapshots SnapshotWriter, historySeed map[string][]domain.Update) *Coordinator {
	return &Coordinator{
		players:   NewPlayerStore(),
		history:   NewHistoryStoreFrom(historySeed),
		rooms:     NewRoomRegistry(config),
		commands:  NewCommandLog(),
		snapshots: snapshots,
		now:       time.Now,
	}
}

// Join registers the player, resetting any existing state under the same
// username.
func (c *Coordinator) Join(id uint64, username string) {
	c.players.Upsert(id, username)
}

// Leave removes the player from the live store and from every room.
func (c *Coordinator) Leave(username string) {
	c.players.Remove(username)
	c.rooms.Leave(username)
}

// ApplyUpdate replaces the live player, appends to history when the
// reported state changed, and joins the player to the room the update
// was reported from. Updates arriving without a timestamp are stamped
// with the server clock.
func (c *Coordinator) ApplyUpdate(update domain.Update) {
	if update.Timestamp == 0 {
		update.Timestamp = c.now().Unix()
	}

	c.players.ApplyUpdate(update)
	c.history.Record(update)
	if update.Room != "" {
		c.rooms.Join(update.Room, update.Player.Username)
	}
}

func (c *Coordinator) CurrentLeaderboard() []domain.Player {
	return CurrentRanking(c.players.Snapshot())
}

func (c *Coordinator) AlltimeLeaderboard() []domain.Player {
	return AlltimeRanking(c.history.AllPeaks())
}

func (c *Coordinator) MedianFps() float64 {
	return MedianFps(c.history.AllLatest())
}

func (c *Coordinator) Info() domain.Info {
	return domain.Info{
		Config: c.rooms.Config(),
		State:  c.rooms.Snapshot(),
	}
}

func (c *Coordinator) GetOrCreateRoom() domain.RoomResponse {
	return c.rooms.GetOrCreate()
}

func (c *Coordinator) ListRooms() []domain.Room {
	return c.rooms.List()
}

// RestartRoom deactivates the room and, when it exists, appends a
// restart command for its game server to pick up on the next poll.
// Returns whether the room was found.
func (c *Coordinator) RestartRoom(roomName string) bool {
	found := c.rooms.Deactivate(roomName)
	if found {
		c.commands.Append(domain.CommandRestart, roomName)
	}
	return found
}

func (c *Coordinator) PollCommands(room string, lastNonce int) []domain.Command {
	return c.commands.Since(room, lastNonce)
}

// ReapIdle evicts every player whose latest history entry is missing or
// older than maxAge. The scan takes a usernames snapshot first; each
// eviction then reacquires the player and room locks per operation, so a
// reaped player may linger in a membership list for a brief window.
// Returns the evicted usernames.
func (c *Coordinator) ReapIdle(maxAge time.Duration) []string {
	cutoff := c.now().Add(-maxAge).Unix()

	stale := []string{}
	for _, username := range c.players.Usernames() {
		latest, ok := c.history.Latest(username)
		if !ok || latest.Timestamp < cutoff {
			stale = append(stale, username)
		}
	}

	for _, username := range stale {
		c.players.Remove(username)
		c.rooms.Leave(username)
	}
	return stale
}

// SnapshotHistory serializes a private copy of the history store to
// durable storage. The copy is taken under the read lock; the write
// happens after it is released.
func (c *Coordinator) SnapshotHistory() error {
	snapshot := c.history.Snapshot()
	if err := c.snapshots.Save(snapshot); err != nil {
		logger.Criticalf("history snapshot failed: %v", err)
		return err
	}
	return nil
}
