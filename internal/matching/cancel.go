package matching

import (
	"github.com/lumenex/matchcore/internal/book"
	"github.com/lumenex/matchcore/internal/outtape"
	"github.com/lumenex/matchcore/internal/types"
	"github.com/lumenex/matchcore/pkg/metrics"
)

// handleCancel looks up the resting order, removes it, emits the cancel
// record, and publishes any BBO delta. An unknown OrderKey is a silent
// no-op, matching CANCEL's idempotence.
func (e *Engine) handleCancel(key types.OrderKey) {
	bk := e.cancelInternal(key, true)
	if bk == nil {
		return
	}
	e.publishBBO(bk, types.Buy)
	e.publishBBO(bk, types.Sell)
}

// cancelInternal removes the resting order at key from its book and the
// Registry. It returns the affected Book (nil if the key wasn't resting)
// so callers can decide whether and how to publish BBO deltas. When
// emitRecord is true it also prints the `C, userId, userOrderId` line —
// the duplicate-OrderKey "replace" policy reuses this with emitRecord
// false, since replacing a resting order silently is a routing decision
// internal to NEW, not a cancellation the operator asked for.
func (e *Engine) cancelInternal(key types.OrderKey, emitRecord bool) *book.Book {
	loc, ok := e.reg.Lookup(key)
	if !ok {
		return nil
	}

	bk := e.books[loc.Symbol]
	side := bk.SideFor(loc.Side)
	side.RemoveCancelled(loc.Node)
	e.reg.Unregister(key)

	if emitRecord {
		metrics.CancelsAccepted.Inc()
		e.emit.Push(outtape.BuildCancel(key.UserID, key.UserOrderID))
	}

	return bk
}
