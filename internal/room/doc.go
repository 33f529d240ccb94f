// Package room implements the per-room lifecycle coordinator: creation,
// join/leave, readiness, transition to play, the 90-second turn inactivity
// timer, disconnect handling, the 45-second rematch window, and garbage
// collection of stale rooms. It is the only caller of internal/match;
// every registry mutation goes through a single write-lock, grounded in the
// teacher's session.Manager.
package room
