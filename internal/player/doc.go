// Package player holds per-player in-match state: position, energy,
// command points, active effects, cooldowns, perks, and the turn-scoped
// flags the match engine reads and mutates every turn. Players never hold a
// reference to another Player directly — effects that target a peer
// (link, pain_transfer, controlled) store the peer's name, and the match
// engine resolves that name through its own player index. This keeps a
// *Player safe to construct and test in isolation.
package player
