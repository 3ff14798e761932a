package game

import (
	"sync"

	"leaderboard/domain"
)

// CommandLog is the append-only list of room control commands. A
// command's nonce is its position in the log at append time; nonces are
// never reused and commands are never deleted, so cursor polling with
// "nonce > N" is well-defined for any previously issued N. Growth is
// unbounded, matching the short-lived deployments this serves.
type CommandLog struct {
	mu       sync.RWMutex
	commands []domain.Command
}

func NewCommandLog() *CommandLog {
	return &CommandLog{}
}

// Append stores a new command for the room and returns it with its
// assigned nonce.
func (cl *CommandLog) Append(commandType domain.CommandType, room string) domain.Command {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	command := domain.Command{
		CommandType: commandType,
		Room:        room,
		Nonce:       len(cl.commands),
	}
	cl.commands = append(cl.commands, command)
	return command
}

// Since returns, in log order, the commands targeting the room with a
// nonce greater than lastNonce. A lastNonce of -1 returns all of the
// room's commands.
func (cl *CommandLog) Since(room string, lastNonce int) []domain.Command {
	cl.mu.RLock()
	defer cl.mu.RUnlock()

	matched := []domain.Command{}
	for _, command := range cl.commands {
		if command.Room != room {
			continue
		}
		if lastNonce == -1 || command.Nonce > lastNonce {
			matched = append(matched, command)
		}
	}
	return matched
}

func (cl *CommandLog) Len() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.commands)
}
