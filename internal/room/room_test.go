package room

import (
	"testing"
	"time"

	"github.com/voltrace/gameserver/internal/catalog"
	"github.com/voltrace/gameserver/internal/match"
)

type fakePresence struct{ online map[string]bool }

func (f *fakePresence) IsOnline(name string) bool { return f.online[name] }

type recordingSink struct{ events []match.Event }

func (s *recordingSink) Deliver(roomID string, ev match.Event) {
	s.events = append(s.events, ev)
}

func newTestManager(t *testing.T) (*Manager, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	presence := &fakePresence{online: map[string]bool{"alice": true, "bob": true, "carol": true}}
	mgr := NewManager(catalog.Default(), nil, presence, sink, nil)
	return mgr, sink
}

func TestCreateJoinAndStart(t *testing.T) {
	mgr, _ := newTestManager(t)
	r := mgr.CreateRoom("c-alice", "alice")

	if err := mgr.Join(r.ID, "c-bob", "bob"); err != nil {
		t.Fatalf("unexpected join error: %v", err)
	}
	if err := mgr.Start(r.ID, 42); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	got, err := mgr.Get(r.ID)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if got.State != StatePlaying {
		t.Fatalf("expected playing state, got %s", got.State)
	}
	if got.Match == nil {
		t.Fatal("expected a match to have been built")
	}
}

func TestStartRejectsTooFewPlayers(t *testing.T) {
	mgr, _ := newTestManager(t)
	r := mgr.CreateRoom("c-alice", "alice")

	if err := mgr.Start(r.ID, 1); err == nil {
		t.Fatal("expected an error starting with only one player")
	}
}

func TestJoinRejectsFullRoom(t *testing.T) {
	mgr, _ := newTestManager(t)
	r := mgr.CreateRoom("c1", "p1")
	for i := 2; i <= 5; i++ {
		name := string(rune('0' + i))
		if err := mgr.Join(r.ID, "c"+name, "p"+name); err != nil {
			t.Fatalf("unexpected join error for p%s: %v", name, err)
		}
	}
	if err := mgr.Join(r.ID, "c6", "p6"); err != ErrRoomFull {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}
}

func TestRollAndResolveAdvanceTurn(t *testing.T) {
	mgr, _ := newTestManager(t)
	r := mgr.CreateRoom("c-alice", "alice")
	_ = mgr.Join(r.ID, "c-bob", "bob")
	_ = mgr.Start(r.ID, 7)

	if err := mgr.Roll(r.ID, "alice"); err != nil {
		t.Fatalf("unexpected roll error: %v", err)
	}
	if err := mgr.ResolveAck(r.ID, "alice"); err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}

	got, _ := mgr.Get(r.ID)
	if got.Match.CurrentTurnIdx != 1 {
		t.Fatalf("expected turn to advance to bob, got idx %d", got.Match.CurrentTurnIdx)
	}
}

func TestDisconnectDuringOwnTurnMarksPlayerInactive(t *testing.T) {
	mgr, _ := newTestManager(t)
	r := mgr.CreateRoom("alice", "alice")
	_ = mgr.Join(r.ID, "bob", "bob")
	_ = mgr.Start(r.ID, 3)

	mgr.Disconnect(r.ID, "alice")

	got, _ := mgr.Get(r.ID)
	alice, _ := got.Match.PlayerByName("alice")
	if alice.Active {
		t.Fatal("expected alice to be marked inactive after disconnect")
	}
}

func TestRematchFormsNewRoomWhenAllOriginalsRequest(t *testing.T) {
	mgr, _ := newTestManager(t)
	r := mgr.CreateRoom("alice", "alice")
	_ = mgr.Join(r.ID, "bob", "bob")
	_ = mgr.Start(r.ID, 9)

	got, _ := mgr.Get(r.ID)
	got.mu.Lock()
	got.Match.Players[0].Energy = 1000
	got.Match.Players[1].Active = false
	got.Match.CheckActiveCount()
	ended := got.Match.Ended
	if ended {
		mgr.onMatchEnded(got)
	}
	got.mu.Unlock()
	if !ended {
		t.Fatal("expected the match to end when only one player remains active")
	}

	if err := mgr.RequestRematch(r.ID, "alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.RequestRematch(r.ID, "bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// fireRematch runs synchronously once all originals have requested.
	time.Sleep(10 * time.Millisecond)

	mgr.mu.RLock()
	found := false
	for id := range mgr.rooms {
		if id != r.ID {
			found = true
		}
	}
	mgr.mu.RUnlock()
	if !found {
		t.Fatal("expected a new room to have been created for the rematch")
	}
}

func TestBuySelectAndCancelPerkOffer(t *testing.T) {
	mgr, _ := newTestManager(t)
	r := mgr.CreateRoom("alice", "alice")
	_ = mgr.Join(r.ID, "bob", "bob")
	_ = mgr.Start(r.ID, 5)

	got, _ := mgr.Get(r.ID)
	got.mu.Lock()
	alice, _ := got.Match.PlayerByName("alice")
	alice.CommandPoints = 100
	got.mu.Unlock()

	if err := mgr.BuyPerkPack(r.ID, "alice", "basic"); err != nil {
		t.Fatalf("unexpected buy error: %v", err)
	}
	if err := mgr.CancelPerkOffer(r.ID, "alice"); err != nil {
		t.Fatalf("unexpected cancel error: %v", err)
	}
	if err := mgr.CancelPerkOffer(r.ID, "alice"); err == nil {
		t.Fatal("expected cancelling twice to fail")
	}
}
