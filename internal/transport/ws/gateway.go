package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/inconshreveable/log15/v3"
	"golang.org/x/time/rate"

	"github.com/voltrace/gameserver/internal/room"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192

	// ratePerSecond and rateBurst bound how many actions one client may
	// issue; chosen generously above the game's natural one-action-per-turn
	// cadence so only abusive clients are ever throttled.
	ratePerSecond = 5
	rateBurst     = 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// PresenceRecorder is notified of inbound heartbeats, for rematch-eligibility
// presence tracking.
type PresenceRecorder interface {
	Heartbeat(name string)
}

// AchievementChecker evaluates a typed event for one player and reports
// newly unlocked achievement ids, per spec.md §4.6.
type AchievementChecker interface {
	Check(name, eventType string, data map[string]any) []string
	Info(id string) (string, bool)
}

// Gateway owns every live client connection and fans out room.Manager's
// outbound events per their declared visibility scope. It is the Manager's
// EventSink.
type Gateway struct {
	mgr          *room.Manager
	presence     PresenceRecorder
	achievements AchievementChecker
	log          log15.Logger

	mu          sync.RWMutex
	clients     map[string]*Client   // by client id
	roomMembers map[string]map[string]*Client // room id -> client id -> client

	register   chan *Client
	unregister chan *Client
}

// NewGateway wires a Gateway to the room manager it will drive. achievements
// may be nil to run without achievement evaluation.
func NewGateway(mgr *room.Manager, presence PresenceRecorder, achievements AchievementChecker, logger log15.Logger) *Gateway {
	if logger == nil {
		logger = log15.New()
	}
	return &Gateway{
		mgr:          mgr,
		achievements: achievements,
		presence:    presence,
		log:         logger,
		clients:     make(map[string]*Client),
		roomMembers: make(map[string]map[string]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
	}
}

// Run drives the register/unregister loop until stop is closed.
func (g *Gateway) Run(stop <-chan struct{}) {
	for {
		select {
		case c := <-g.register:
			g.mu.Lock()
			g.clients[c.id] = c
			g.mu.Unlock()
		case c := <-g.unregister:
			g.dropClient(c)
		case <-stop:
			return
		}
	}
}

func (g *Gateway) dropClient(c *Client) {
	g.mu.Lock()
	delete(g.clients, c.id)
	if c.roomID != "" {
		if members, ok := g.roomMembers[c.roomID]; ok {
			delete(members, c.id)
			if len(members) == 0 {
				delete(g.roomMembers, c.roomID)
			}
		}
	}
	g.mu.Unlock()
	close(c.send)

	if c.roomID != "" && c.name != "" {
		g.mgr.Disconnect(c.roomID, c.id)
	}
}

func (g *Gateway) joinRoomTracking(c *Client, roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if members, ok := g.roomMembers[c.roomID]; ok {
		delete(members, c.id)
	}
	c.roomID = roomID
	if g.roomMembers[roomID] == nil {
		g.roomMembers[roomID] = make(map[string]*Client)
	}
	g.roomMembers[roomID][c.id] = c
}

// ServeWS upgrades the HTTP request to a WebSocket connection and starts
// the client's pumps.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("websocket upgrade failed", "err", err)
		return
	}

	c := &Client{
		id:      uuid.NewString(),
		conn:    conn,
		send:    make(chan []byte, 256),
		gw:      g,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), rateBurst),
	}

	g.register <- c
	go c.writePump()
	go c.readPump()
}
