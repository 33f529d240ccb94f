package room

import "github.com/voltrace/gameserver/internal/catalog"

// wireTierNames maps the wire protocol's tier names to the catalog's.
var wireTierNames = map[string]catalog.PerkTier{
	"basic":        catalog.TierBasic,
	"intermediate": catalog.TierMid,
	"advanced":     catalog.TierHigh,
}

func (m *Manager) withPlayingRoom(roomID string, fn func(r *Room) error) error {
	r, err := m.Get(roomID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Match == nil || r.State != StatePlaying {
		return ErrRoomNotPlaying
	}
	err = fn(r)
	m.flush(r)
	return err
}

// BuyPerkPack opens a pack offer for a player.
func (m *Manager) BuyPerkPack(roomID, playerName, wireTier string) error {
	tier, ok := wireTierNames[wireTier]
	if !ok {
		tier = catalog.TierBasic
	}
	return m.withPlayingRoom(roomID, func(r *Room) error {
		return r.Match.BuyPerkPack(playerName, tier)
	})
}

// SelectPerk resolves a pending offer.
func (m *Manager) SelectPerk(roomID, playerName string, perkID catalog.PerkID, expectedCost int) error {
	return m.withPlayingRoom(roomID, func(r *Room) error {
		return r.Match.SelectPerk(playerName, perkID, expectedCost)
	})
}

// CancelPerkOffer drops a pending offer.
func (m *Manager) CancelPerkOffer(roomID, playerName string) error {
	return m.withPlayingRoom(roomID, func(r *Room) error {
		return r.Match.CancelPerkOffer(playerName)
	})
}

// RequestPerkPrices answers with the room match's current tier pricing.
func (m *Manager) RequestPerkPrices(roomID string) (map[catalog.PerkTier]int, error) {
	r, err := m.Get(roomID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Match == nil || r.State != StatePlaying {
		return nil, ErrRoomNotPlaying
	}
	return r.Match.PerkPrices(), nil
}
