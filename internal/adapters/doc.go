// Package adapters provides the in-memory, default implementations of the
// three external-collaborator interfaces the match/room core depends on:
// account lookup, achievement checking, and social presence. The core
// never imports this package directly — it depends only on the narrow
// interfaces each component declares (room.PresenceChecker,
// ws.PresenceRecorder), satisfied here structurally.
package adapters
