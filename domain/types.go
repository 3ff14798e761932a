package domain

// Horde is one pack of rats a player controls.
type Horde struct {
	Rats uint64 `json:"rats"`
	Id   uint64 `json:"id"`
}

// POI is a point of interest captured by a player.
type POI struct {
	Id uint64 `json:"id"`
}

// Player is the full reported state of one connected player. It is
// replaced wholesale on every update, never merged field by field.
type Player struct {
	Id       uint64  `json:"id"`
	Username string  `json:"username"`
	Score    uint64  `json:"score"`
	Hordes   []Horde `json:"hordes"`
	Pois     []POI   `json:"pois"`
	Damage   uint64  `json:"damage"`
}

// Equal reports whether two player snapshots carry identical game state.
// It is the history dedup comparison: an update whose player compares
// equal to the previously stored one is not recorded.
func (p Player) Equal(other Player) bool {
	if p.Id != other.Id || p.Username != other.Username ||
		p.Score != other.Score || p.Damage != other.Damage {
		return false
	}
	if len(p.Hordes) != len(other.Hordes) || len(p.Pois) != len(other.Pois) {
		return false
	}
	for i, h := range p.Hordes {
		if h != other.Hordes[i] {
			return false
		}
	}
	for i, poi := range p.Pois {
		if poi != other.Pois[i] {
			return false
		}
	}
	return true
}

// Update is one reported snapshot from a game client. Immutable once
// stored. Timestamp is seconds since epoch as reported by the server
// clock when the update arrived.
type Update struct {
	Tick      uint64  `json:"tick"`
	Player    Player  `json:"player"`
	Fps       float64 `json:"fps"`
	Timestamp int64   `json:"timestamp"`
	Room      string  `json:"room"`
}

// Config is the room-shaping configuration. The registry's current
// config seeds new rooms only; existing rooms keep the snapshot taken
// at their creation.
type Config struct {
	PlayersPerRoom   int `json:"players_per_room"`
	MaxBotsPerClient int `json:"max_bots_per_client"`
}

// Room groups players into one game session instance. Rooms are never
// deleted; an inactive room stops accepting members but keeps history.
type Room struct {
	Name    string   `json:"name"`
	Players []string `json:"players"`
	Config  Config   `json:"config"`
	Active  bool     `json:"active"`
}

// State is the room portion of the info snapshot.
type State struct {
	Rooms []Room `json:"rooms"`
}

// Info is the global configuration and room state returned to clients.
type Info struct {
	Config Config `json:"config"`
	State  State  `json:"state"`
}

// RoomResponse is what a capacity-seeking client receives: the room to
// join and the config that room was created with.
type RoomResponse struct {
	Name   string `json:"name"`
	Config Config `json:"config"`
}

type CommandType string

const CommandRestart CommandType = "restart"

// Command is one control instruction for the game server hosting a
// room. Nonce is the command's position in the global log and doubles
// as the polling cursor.
type Command struct {
	CommandType CommandType `json:"command_type"`
	Room        string      `json:"room"`
	Nonce       int         `json:"nonce"`
}
