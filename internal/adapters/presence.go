package adapters

import (
	"sync"
	"time"
)

// onlineWindow is how recently a heartbeat must have arrived for a client
// to be considered "online" for rematch eligibility, spec.md §5.
const onlineWindow = 60 * time.Second

// Presence is a heartbeat-based, in-memory social presence tracker. It
// satisfies room.PresenceChecker (IsOnline) and ws.PresenceRecorder
// (Heartbeat) structurally, with no import of either package.
type Presence struct {
	mu   sync.Mutex
	seen map[string]time.Time
	status map[string]string
}

// NewPresence builds an empty tracker.
func NewPresence() *Presence {
	return &Presence{seen: make(map[string]time.Time), status: make(map[string]string)}
}

// Heartbeat records that name is alive right now.
func (p *Presence) Heartbeat(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen[name] = time.Now()
}

// IsOnline reports whether name's last heartbeat is within the online
// window.
func (p *Presence) IsOnline(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	last, ok := p.seen[name]
	return ok && time.Since(last) <= onlineWindow
}

// Set records an explicit status (e.g. "in_match", "in_lobby") alongside
// the heartbeat-derived online/offline signal.
func (p *Presence) Set(name, status string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status[name] = status
}

// Get returns "offline" if name hasn't heartbeated within the window;
// otherwise its last explicitly set status, or "online" if none was set.
func (p *Presence) Get(name string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if last, ok := p.seen[name]; !ok || time.Since(last) > onlineWindow {
		return "offline"
	}
	if s, ok := p.status[name]; ok {
		return s
	}
	return "online"
}
