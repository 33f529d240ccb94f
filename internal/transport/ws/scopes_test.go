package ws

import (
	"encoding/json"
	"testing"

	"github.com/voltrace/gameserver/internal/match"
	"github.com/voltrace/gameserver/internal/room"
)

func newTestGateway() *Gateway {
	return NewGateway(&room.Manager{}, nil, nil, nil)
}

func newTestClient(g *Gateway, name string) *Client {
	return &Client{id: name + "-conn", name: name, send: make(chan []byte, 4), gw: g}
}

func drain(t *testing.T, c *Client) map[string]any {
	t.Helper()
	select {
	case data := <-c.send:
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("bad json: %v", err)
		}
		return m
	default:
		return nil
	}
}

func TestDeliverScopeAllReachesEveryMember(t *testing.T) {
	g := newTestGateway()
	alice, bob := newTestClient(g, "alice"), newTestClient(g, "bob")
	g.roomMembers = map[string]map[string]*Client{"r1": {alice.id: alice, bob.id: bob}}

	g.Deliver("r1", match.Event{Type: "phase2_resolution", Scope: match.ScopeAll, Payload: map[string]any{"state": "ok"}})

	if drain(t, alice) == nil || drain(t, bob) == nil {
		t.Fatal("expected both members to receive the all-scope event")
	}
}

func TestDeliverScopePrivateOnlyReachesRecipient(t *testing.T) {
	g := newTestGateway()
	alice, bob := newTestClient(g, "alice"), newTestClient(g, "bob")
	g.roomMembers = map[string]map[string]*Client{"r1": {alice.id: alice, bob.id: bob}}

	g.Deliver("r1", match.Event{Type: "perk_offer", Scope: match.ScopePrivate, Recipient: "alice", Payload: map[string]any{"cost": 10}})

	if drain(t, alice) == nil {
		t.Fatal("expected alice (the recipient) to receive the private event")
	}
	if drain(t, bob) != nil {
		t.Fatal("expected bob to receive nothing from a private event")
	}
}

func TestDeliverScopeCasterRedactedSplitsPayload(t *testing.T) {
	g := newTestGateway()
	alice, bob := newTestClient(g, "alice"), newTestClient(g, "bob")
	g.roomMembers = map[string]map[string]*Client{"r1": {alice.id: alice, bob.id: bob}}

	g.Deliver("r1", match.Event{
		Type: "ability_full", Scope: match.ScopeCasterRedacted, Recipient: "alice",
		Payload:  map[string]any{"result": "invisibilidad applied"},
		Redacted: map[string]any{"result": "alice used an ability"},
	})

	aliceMsg := drain(t, alice)
	bobMsg := drain(t, bob)
	if aliceMsg["result"] != "invisibilidad applied" {
		t.Fatalf("expected alice to see the full result, got %v", aliceMsg)
	}
	if bobMsg["result"] != "alice used an ability" {
		t.Fatalf("expected bob to see the redacted result, got %v", bobMsg)
	}
}
