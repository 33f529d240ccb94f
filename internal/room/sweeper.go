package room

import "time"

// RunSweeper blocks, retiring empty or stale rooms every SweepInterval,
// until Stop is called. Intended to run in its own goroutine from
// cmd/server, mirroring the teacher's Hub.Run() select-loop idiom.
func (m *Manager) RunSweeper() {
	ticker := time.NewTicker(SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stop:
			return
		}
	}
}

// Stop ends a running sweeper loop.
func (m *Manager) Stop() {
	close(m.stop)
}

func (m *Manager) sweep() {
	now := time.Now()

	m.mu.RLock()
	var stale []string
	for id, r := range m.rooms {
		r.mu.Lock()
		empty := len(r.Players) == 0
		tooOld := now.Sub(r.CreatedAt) > MaxRoomAge
		r.mu.Unlock()
		if empty || tooOld {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		m.retire(id)
		m.log.Info("room swept", "room_id", id)
	}
}
