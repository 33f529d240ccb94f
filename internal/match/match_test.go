package match

import (
	"testing"

	"github.com/voltrace/gameserver/internal/catalog"
	"github.com/voltrace/gameserver/internal/player"
)

func newTestMatch(t *testing.T, seed int64, names ...string) *Match {
	t.Helper()
	cat := catalog.Default()
	players := make([]*player.Player, 0, len(names))
	kits := []catalog.Kit{catalog.KitGuardian, catalog.KitTactico, catalog.KitIngeniero}
	for i, name := range names {
		kit := kits[i%len(kits)]
		abilities, ok := cat.KitAbilities(kit)
		if !ok {
			t.Fatalf("kit %s missing abilities", kit)
		}
		players = append(players, player.New(name, kit, abilities, 500))
	}
	m := New(cat, players, nil, seed)
	m.Begin()
	return m
}

func TestBeginStartsFirstPlayerAtStarted(t *testing.T) {
	m := newTestMatch(t, 1, "alice", "bob")
	if m.currentPlayer().Name != "alice" {
		t.Fatalf("expected alice's turn, got %s", m.currentPlayer().Name)
	}
	if m.TurnState != TurnStarted {
		t.Fatalf("expected started state, got %s", m.TurnState)
	}
}

func TestRollAndMoveThenResolveAdvancesTurn(t *testing.T) {
	m := newTestMatch(t, 7, "alice", "bob")

	if err := m.RollAndMove("alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.TurnState != TurnRolled {
		t.Fatalf("expected rolled state, got %s", m.TurnState)
	}
	alicePos := m.Players[0].Position
	if alicePos <= 1 {
		t.Fatalf("expected alice to have moved off cell 1, got %d", alicePos)
	}

	if err := m.ResolveTileAndCollisions("alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.currentPlayer().Name != "bob" {
		t.Fatalf("expected turn to advance to bob, got %s", m.currentPlayer().Name)
	}
	if m.TurnState != TurnStarted {
		t.Fatalf("expected bob's turn to start fresh, got %s", m.TurnState)
	}
}

func TestRollAndMoveRejectsOutOfTurnPlayer(t *testing.T) {
	m := newTestMatch(t, 3, "alice", "bob")
	if err := m.RollAndMove("bob"); err == nil {
		t.Fatal("expected error rolling out of turn")
	}
}

func TestEscudoTotalNullifiesCollisionDamage(t *testing.T) {
	m := newTestMatch(t, 11, "alice", "bob")
	alice := m.Players[0]

	if err := m.UseAbility("alice", 1, ""); err != nil { // kit guardian slot 1 = escudo_total
		t.Fatalf("unexpected error: %v", err)
	}
	if !alice.HasEffect(player.EffectShield) {
		t.Fatal("expected alice to hold a shield")
	}

	bob := m.Players[1]
	bob.Position = alice.Position
	before := alice.Energy
	m.resolveCollisions(alice)
	if alice.Energy != before {
		t.Fatalf("expected shield to fully nullify collision damage, energy changed from %d to %d", before, alice.Energy)
	}
	if alice.HasEffect(player.EffectShield) {
		t.Fatal("expected shield to be consumed by the collision")
	}
}

func TestSabotajeReflectsOffBarrier(t *testing.T) {
	m := newTestMatch(t, 22, "alice", "bob")
	alice, bob := m.Players[0], m.Players[1]
	bob.AddEffect(player.Effect{Kind: player.EffectBarrier, TurnsRemaining: 2})

	alice.Abilities[0] = catalog.Sabotaje
	alice.Cooldowns = map[catalog.AbilityName]int{}

	if err := m.UseAbility("alice", 1, bob.Name); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bob.HasEffect(player.EffectPause) {
		t.Fatal("expected bob (protected by barrier) to receive no pause")
	}
	if bob.HasEffect(player.EffectBarrier) {
		t.Fatal("expected bob's barrier to be consumed")
	}
	if !alice.HasEffect(player.EffectPause) {
		t.Fatal("expected the reflected pause to land on alice")
	}
}

func TestBountyAwardsOnFirstDamage(t *testing.T) {
	m := newTestMatch(t, 5, "alice", "bob", "carol")
	m.Round = 5
	m.Players[0].Position = 40
	m.Players[1].Position = 10
	m.Players[2].Position = 10
	m.refreshBounty()

	if !m.Players[0].IsBounty {
		t.Fatal("expected the leader to be marked bounty")
	}

	before := m.Players[1].Energy
	m.applyEnergyDelta(m.Players[0], -10, m.Players[1])

	if m.Players[0].IsBounty {
		t.Fatal("expected bounty flag cleared after being claimed")
	}
	if m.Players[1].Energy <= before {
		t.Fatal("expected bob to gain the bounty reward")
	}
	if !m.Players[1].BountyClaimedThisRound {
		t.Fatal("expected bob's bounty_claimed_this_round flag set")
	}
}

func TestEndMatchPicksHighestScoringActivePlayer(t *testing.T) {
	m := newTestMatch(t, 9, "alice", "bob")
	m.Players[0].Energy = 500
	m.Players[0].Position = 75
	m.Players[1].Energy = 10
	m.Players[1].Position = 5

	m.endMatch()

	if !m.Ended {
		t.Fatal("expected match to be marked ended")
	}
	if m.Winner != "alice" {
		t.Fatalf("expected alice to win, got %q", m.Winner)
	}
}

func TestEndMatchExcludesInactivePlayers(t *testing.T) {
	m := newTestMatch(t, 9, "alice", "bob")
	m.Players[0].Energy = 1000
	m.Players[0].Active = false
	m.Players[1].Energy = 10

	m.endMatch()

	if m.Winner != "bob" {
		t.Fatalf("expected bob (the only active player) to win, got %q", m.Winner)
	}
}
