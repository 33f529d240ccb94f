package room

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inconshreveable/log15/v3"

	"github.com/voltrace/gameserver/internal/catalog"
	"github.com/voltrace/gameserver/internal/match"
	"github.com/voltrace/gameserver/internal/metrics"
	"github.com/voltrace/gameserver/internal/player"
)

var (
	ErrRoomNotFound     = errors.New("room: not found")
	ErrRoomFull         = errors.New("room: full")
	ErrRoomNotWaiting   = errors.New("room: not in waiting state")
	ErrNotEnoughPlayers = errors.New("room: not enough players to start")
	ErrAlreadyInRoom    = errors.New("room: client already present")
)

var colorPalette = []string{"red", "blue", "green", "yellow", "purple"}

// PresenceChecker reports whether a player's last heartbeat is still within
// the "online" window, used to gate rematch eligibility (spec.md §4.4).
type PresenceChecker interface {
	IsOnline(name string) bool
}

// EventSink receives every outbound match/room event so the transport
// gateway (internal/transport/ws) can fan it out per its visibility scope.
type EventSink interface {
	Deliver(roomID string, ev match.Event)
}

// Manager owns the room and rematch registries behind a single write-lock
// each, matching the teacher's session.Manager discipline.
type Manager struct {
	mu     sync.RWMutex
	rooms  map[string]*Room

	rematchMu sync.RWMutex
	rematches map[string]*rematchQueue

	catalog  *catalog.Catalog
	packs    []catalog.EnergyPack
	presence PresenceChecker
	sink     EventSink
	log      log15.Logger

	stop chan struct{}
}

// NewManager builds an empty room registry.
func NewManager(cat *catalog.Catalog, packs []catalog.EnergyPack, presence PresenceChecker, sink EventSink, logger log15.Logger) *Manager {
	if logger == nil {
		logger = log15.New()
	}
	return &Manager{
		rooms:     make(map[string]*Room),
		rematches: make(map[string]*rematchQueue),
		catalog:   cat,
		packs:     packs,
		presence:  presence,
		sink:      sink,
		log:       logger,
		stop:      make(chan struct{}),
	}
}

// CreateRoom starts a new waiting-state room with its creator as the first
// player.
func (m *Manager) CreateRoom(clientID, name string) *Room {
	r := &Room{
		ID:              uuid.NewString(),
		Players:         []ClientRef{{ClientID: clientID, Name: name}},
		State:           StateWaiting,
		CreatedAt:       time.Now(),
		ColorAssignment: map[string]string{name: colorPalette[0]},
		KitPreference:   make(map[string]catalog.Kit),
		inactiveName:    make(map[string]bool),
	}

	m.mu.Lock()
	m.rooms[r.ID] = r
	m.mu.Unlock()
	metrics.RoomsActive.Inc()

	m.log.Info("room created", "room_id", r.ID, "creator", name)
	return r
}

// SetEventSink wires the transport gateway after construction, avoiding an
// import cycle (the gateway needs a *Manager to dispatch into).
func (m *Manager) SetEventSink(sink EventSink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sink = sink
}

// Get returns a room by id.
func (m *Manager) Get(roomID string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// Join adds a client to a waiting room.
func (m *Manager) Join(roomID, clientID, name string) error {
	r, err := m.Get(roomID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != StateWaiting {
		return ErrRoomNotWaiting
	}
	if len(r.Players) >= MaxPlayers {
		return ErrRoomFull
	}
	if r.hasClient(clientID) {
		return ErrAlreadyInRoom
	}

	r.Players = append(r.Players, ClientRef{ClientID: clientID, Name: name})
	r.ColorAssignment[name] = colorPalette[(len(r.Players)-1)%len(colorPalette)]

	m.emitRoom(r, match.Event{
		Type: "player_joined", Scope: match.ScopeAll,
		Payload: map[string]any{
			"names":     r.activeClientNames(),
			"can_start": len(r.Players) >= MinPlayers,
		},
	})
	return nil
}

// LeaveLobby removes a client from a still-waiting room.
func (m *Manager) LeaveLobby(roomID, clientID string) error {
	r, err := m.Get(roomID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	ref, ok := r.removeClient(clientID)
	empty := len(r.Players) == 0
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("room: client not in room")
	}

	if empty {
		m.retire(roomID)
		return nil
	}

	m.emitRoom(r, match.Event{
		Type: "player_left", Scope: match.ScopeAll,
		Payload: map[string]any{"names": r.activeClientNames(), "name": ref.Name},
	})
	return nil
}

// Start transitions a waiting room with 2-5 players into play, building a
// fresh Match from the catalog and the room's roster.
func (m *Manager) Start(roomID string, seed int64) error {
	r, err := m.Get(roomID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != StateWaiting {
		return ErrRoomNotWaiting
	}
	if len(r.Players) < MinPlayers || len(r.Players) > MaxPlayers {
		return ErrNotEnoughPlayers
	}

	players := make([]*player.Player, 0, len(r.Players))
	kits := catalog.AllKits
	for i, c := range r.Players {
		kit := kits[i%len(kits)]
		if pref, ok := r.KitPreference[c.Name]; ok {
			kit = pref
		}
		abilities, _ := m.catalog.KitAbilities(kit)
		players = append(players, player.New(c.Name, kit, abilities, 300))
	}

	r.Match = match.New(m.catalog, players, m.packs, seed)
	r.Match.Begin()
	r.State = StatePlaying
	metrics.MatchesStarted.Inc()

	m.flush(r)
	m.armTurnTimer(r)
	return nil
}

// flush drains and delivers every event the match loop produced since the
// last call, preserving emission order (spec.md §5's ordering guarantee).
func (m *Manager) flush(r *Room) {
	if r.Match == nil || m.sink == nil {
		if r.Match != nil {
			r.Match.EventLog = nil
		}
		return
	}
	for _, ev := range r.Match.EventLog {
		m.sink.Deliver(r.ID, ev)
	}
	r.Match.EventLog = nil
}

func (m *Manager) emitRoom(r *Room, ev match.Event) {
	if m.sink != nil {
		m.sink.Deliver(r.ID, ev)
	}
}

func (m *Manager) retire(roomID string) {
	m.mu.Lock()
	delete(m.rooms, roomID)
	m.mu.Unlock()
	metrics.RoomsActive.Dec()
	m.log.Info("room retired", "room_id", roomID)
}
