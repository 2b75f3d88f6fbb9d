// Package cart owns the per-session shopping cart: the authoritative
// in-memory aggregate, the pure calculation and validation rules over it,
// and the durable snapshot round-trip.
//
// Mutations on one session are serialized by its Store. There is no
// cross-process coordination on the shared snapshot slot: two API instances
// (or a stale client replaying an old session) are last-writer-wins at the
// storage layer with no merge or conflict detection.
package cart
