// Package match implements the authoritative per-match game loop: the
// two-phase turn protocol (roll+move, then resolve tile and collisions),
// the ability/perk effect-resolution pipeline, global round events, bounty
// tracking, and end-of-match scoring. A *Match is never reentrant: the room
// coordinator is responsible for serializing every call into it on the
// match's single logical thread, matching the teacher's GameEngine holding
// its own mutable state behind a narrow interface.
package match
