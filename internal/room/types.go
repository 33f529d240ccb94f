package room

import (
	"sync"
	"time"

	"github.com/voltrace/gameserver/internal/catalog"
	"github.com/voltrace/gameserver/internal/match"
)

// State is one of the three lifecycle stages of a room.
type State string

const (
	StateWaiting     State = "waiting"
	StatePlaying     State = "playing"
	StateTerminated  State = "terminated"
)

const (
	// MinPlayers and MaxPlayers bound a room's active roster to start.
	MinPlayers = 2
	MaxPlayers = 5

	// TurnTimeout is the per-turn inactivity window, spec.md §4.4.
	TurnTimeout = 90 * time.Second

	// RematchWindow is how long the rematch queue waits for originals to
	// opt in before forming (or cancelling), spec.md §4.4.
	RematchWindow = 45 * time.Second

	// SweepInterval is the garbage-collector cadence, spec.md §4.4.
	SweepInterval = 30 * time.Minute

	// MaxRoomAge retires a room regardless of activity, spec.md §4.4.
	MaxRoomAge = 2 * time.Hour
)

// ClientRef names one connected participant: a transport-level client id
// paired with their authenticated display name.
type ClientRef struct {
	ClientID string
	Name     string
}

// Room is one lobby/match/terminated lifecycle instance.
type Room struct {
	mu sync.Mutex

	ID              string
	Players         []ClientRef
	State           State
	Match           *match.Match
	ColorAssignment map[string]string
	CreatedAt       time.Time
	KitPreference   map[string]catalog.Kit

	turnTimer    *time.Timer
	turnGen      int
	inactiveName map[string]bool
}

// activeClientNames returns the display names of players still present in
// the room (not yet disconnected/removed).
func (r *Room) activeClientNames() []string {
	names := make([]string, 0, len(r.Players))
	for _, c := range r.Players {
		names = append(names, c.Name)
	}
	return names
}

func (r *Room) hasClient(clientID string) bool {
	for _, c := range r.Players {
		if c.ClientID == clientID {
			return true
		}
	}
	return false
}

func (r *Room) hasClientName(name string) bool {
	for _, c := range r.Players {
		if c.Name == name {
			return true
		}
	}
	return false
}

func (r *Room) removeClient(clientID string) (ClientRef, bool) {
	for i, c := range r.Players {
		if c.ClientID == clientID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return c, true
		}
	}
	return ClientRef{}, false
}
