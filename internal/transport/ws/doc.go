// Package ws is the transport gateway: one persistent bidirectional
// WebSocket channel per client, decoding and validating inbound actions,
// enforcing the authentication boundary and per-client rate limits, and
// fanning out room.Manager's outbound events according to their declared
// visibility scope. Grounded in the teacher's transport/websocket.Hub
// register/unregister/broadcast loop, generalized from one implicit
// broadcast-everything scope to the spec's three (all, caster-redacted,
// private).
package ws
