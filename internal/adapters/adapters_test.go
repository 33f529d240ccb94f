package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountStoreCreatesThenPersists(t *testing.T) {
	s := NewAccountStore(4)

	acc, err := s.Find("alice")
	require.NoError(t, err)
	assert.Equal(t, 1, acc.Level, "fresh accounts start at level 1")

	require.NoError(t, s.Persist("alice", map[string]int{"xp": 50}))
	acc2, err := s.Find("alice")
	require.NoError(t, err)
	assert.Equal(t, 50, acc2.XP)
}

func TestAchievementCheckerUnlocksOncePerRule(t *testing.T) {
	c := NewAchievementChecker()

	unlocked := c.Check("alice", "game_finished", map[string]any{"won": true, "position": 75})
	assert.ElementsMatch(t, []string{"first_win", "finisher"}, unlocked)

	again := c.Check("alice", "game_finished", map[string]any{"won": true, "position": 75})
	assert.Empty(t, again, "a second identical event must not re-unlock")
}

func TestBackfillReplaysGameFinishedEventsIntoCounters(t *testing.T) {
	s := NewAccountStore(4)
	events := []GameFinishedEvent{
		{Player: "alice", Won: true, Score: 140, Counters: map[string]int{"mines_collected": 2}},
		{Player: "alice", Won: false, Score: 80, Counters: map[string]int{"mines_collected": 1}},
		{Player: "bob", Won: false, Score: 60},
	}

	applied, err := Backfill(s, events)
	require.NoError(t, err)
	assert.Equal(t, 3, applied)

	alice, err := s.Find("alice")
	require.NoError(t, err)
	assert.Equal(t, 2, alice.Counters["games_played"])
	assert.Equal(t, 1, alice.Counters["wins"])
	assert.Equal(t, 220, alice.Counters["score_total"])
	assert.Equal(t, 3, alice.Counters["mines_collected"])

	bob, err := s.Find("bob")
	require.NoError(t, err)
	assert.Equal(t, 1, bob.Counters["games_played"])
	assert.Equal(t, 0, bob.Counters["wins"])
}

func TestPresenceOnlineWithinWindow(t *testing.T) {
	p := NewPresence()
	assert.False(t, p.IsOnline("alice"), "alice should be offline before any heartbeat")
	p.Heartbeat("alice")
	assert.True(t, p.IsOnline("alice"), "alice should be online right after a heartbeat")
}
