// Package registry implements the global OrderKey -> location index that
// gives the matching engine O(1) cancel. It holds no matching logic of
// its own.
package registry

import (
	"github.com/lumenex/matchcore/internal/book"
	"github.com/lumenex/matchcore/internal/types"
)

// Location is the value stored for each resting order: enough to jump
// straight to its book and FIFO node without a symbol-by-symbol search.
type Location struct {
	Symbol types.Symbol
	Side   types.Side
	Price  float64
	Node   *book.Node
}

// Registry is the OrderKey -> Location index. An entry exists if and only
// if the referenced order is currently resting in some book — callers are
// responsible for keeping that invariant by calling Unregister whenever a
// node leaves a book for any reason (fill, cancel, flush).
type Registry struct {
	byKey map[types.OrderKey]Location
}

// New creates an empty registry sized for size resting orders.
func New(size int) *Registry {
	return &Registry{byKey: make(map[types.OrderKey]Location, size)}
}

// Register files a new resting order's location. An existing entry for the
// same key is overwritten silently; it's the caller's duplicate-OrderKey
// policy (checked via Contains) that decides whether that is ever reached.
func (r *Registry) Register(key types.OrderKey, loc Location) {
	r.byKey[key] = loc
}

// Lookup returns the location for key, if any.
func (r *Registry) Lookup(key types.OrderKey) (Location, bool) {
	loc, ok := r.byKey[key]
	return loc, ok
}

// Contains reports whether key is currently resting.
func (r *Registry) Contains(key types.OrderKey) bool {
	_, ok := r.byKey[key]
	return ok
}

// Unregister removes key's entry. It is a no-op if the key isn't present,
// matching CANCEL's idempotence.
func (r *Registry) Unregister(key types.OrderKey) {
	delete(r.byKey, key)
}

// Len reports the number of currently resting orders across every symbol —
// the figure the engine checks against MaxGlobalOrders.
func (r *Registry) Len() int {
	return len(r.byKey)
}

// Clear empties the registry in place, used by FLUSH.
func (r *Registry) Clear() {
	r.byKey = make(map[types.OrderKey]Location, len(r.byKey))
}
