package match

import (
	"fmt"

	"github.com/voltrace/gameserver/internal/catalog"
	"github.com/voltrace/gameserver/internal/player"
)

// basePerkPrice is the PM cost of a pack offer before the Mercado Negro
// global event halves it.
var basePerkPrice = map[catalog.PerkTier]int{
	catalog.TierBasic: 10,
	catalog.TierMid:   25,
	catalog.TierHigh:  50,
}

// perkOfferSize is how many distinct options a pack offer presents.
const perkOfferSize = 3

// PerkPrice returns the current PM cost of a pack tier, halved while
// Mercado Negro is active.
func (m *Match) PerkPrice(tier catalog.PerkTier) int {
	price := basePerkPrice[tier]
	if m.hasGlobalEvent(EventMercadoNegro) {
		price /= 2
	}
	return price
}

// PerkPrices returns the current price of every tier, for request_perk_prices.
func (m *Match) PerkPrices() map[catalog.PerkTier]int {
	return map[catalog.PerkTier]int{
		catalog.TierBasic: m.PerkPrice(catalog.TierBasic),
		catalog.TierMid:   m.PerkPrice(catalog.TierMid),
		catalog.TierHigh:  m.PerkPrice(catalog.TierHigh),
	}
}

// eligiblePerks filters a tier's catalog entries down to ones the player
// doesn't already hold and, for ability-gated perks, whose required ability
// is in the player's kit.
func (m *Match) eligiblePerks(p *player.Player, tier catalog.PerkTier) []catalog.PerkID {
	var out []catalog.PerkID
	for _, id := range m.Catalog.PerksByTier(tier) {
		perk, ok := m.Catalog.Perk(id)
		if !ok || p.HasPerk(id) {
			continue
		}
		if perk.RequiresAbility != "" && !p.HasAbility(perk.RequiresAbility) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// BuyPerkPack opens a pack offer for casterName at the given tier. A
// pending offer blocks rolling and ability use until resolved.
func (m *Match) BuyPerkPack(casterName string, tier catalog.PerkTier) error {
	p, ok := m.playerByName(casterName)
	if !ok || !p.Active {
		return fmt.Errorf("match: unknown player %q", casterName)
	}
	if m.PendingPerkOffers[casterName] != nil {
		return fmt.Errorf("match: %s already has a pending perk offer", casterName)
	}

	price := m.PerkPrice(tier)
	if p.CommandPoints < price {
		return fmt.Errorf("match: %s has insufficient command points", casterName)
	}

	options := m.eligiblePerks(p, tier)
	m.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	if len(options) > perkOfferSize {
		options = options[:perkOfferSize]
	}
	if len(options) == 0 {
		return fmt.Errorf("match: no eligible perks left in tier %s", tier)
	}

	m.PendingPerkOffers[casterName] = &PerkOffer{Tier: tier, Options: options, Cost: price}
	m.emit(Event{
		Type: "perk_offer", Scope: ScopePrivate, Recipient: casterName,
		Payload: map[string]any{"offer": options, "cost": price, "pm_left": p.CommandPoints},
	})
	return nil
}

// SelectPerk resolves an outstanding offer, charging PM and granting the
// perk. expectedCost guards against a stale price (e.g. a Mercado Negro
// window that closed between the offer and the selection).
func (m *Match) SelectPerk(casterName string, id catalog.PerkID, expectedCost int) error {
	p, ok := m.playerByName(casterName)
	if !ok {
		return fmt.Errorf("match: unknown player %q", casterName)
	}
	offer := m.PendingPerkOffers[casterName]
	if offer == nil {
		return fmt.Errorf("match: %s has no pending perk offer", casterName)
	}
	if offer.Cost != expectedCost {
		return fmt.Errorf("match: perk price changed, expected %d got %d", offer.Cost, expectedCost)
	}
	found := false
	for _, opt := range offer.Options {
		if opt == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("match: perk %s not in offer", id)
	}
	if p.CommandPoints < offer.Cost {
		return fmt.Errorf("match: %s has insufficient command points", casterName)
	}

	p.CommandPoints -= offer.Cost
	p.GrantPerk(id)
	delete(m.PendingPerkOffers, casterName)

	m.emit(Event{
		Type: "perk_activated", Scope: ScopePrivate, Recipient: casterName,
		Payload: map[string]any{"perk_id": id, "pm_left": p.CommandPoints},
	})
	return nil
}

// CancelPerkOffer drops a pending offer without spending anything.
func (m *Match) CancelPerkOffer(casterName string) error {
	if m.PendingPerkOffers[casterName] == nil {
		return fmt.Errorf("match: %s has no pending perk offer", casterName)
	}
	delete(m.PendingPerkOffers, casterName)
	return nil
}
