package matching

import (
	"math"

	"github.com/lumenex/matchcore/internal/book"
	"github.com/lumenex/matchcore/internal/outtape"
	"github.com/lumenex/matchcore/internal/precision"
	"github.com/lumenex/matchcore/internal/registry"
	"github.com/lumenex/matchcore/internal/types"
	"github.com/lumenex/matchcore/pkg/config"
	"github.com/lumenex/matchcore/pkg/metrics"
)

// handleNew validates a NEW command, then runs it through five steps:
// acknowledge, route, match, rest, publish. Validation (whitelist, global order cap,
// duplicate key, volatility corridor) happens before the acknowledgment,
// since a command that never gets acknowledged is treated as
// operationally invalid and silently dropped, the same treatment CANCEL
// of an unknown key already gets.
func (e *Engine) handleNew(cmd types.Command) {
	if !e.validateSymbol(cmd.Symbol) {
		e.diag("reject NEW: symbol not in whitelist: " + cmd.Symbol.String())
		metrics.CommandsRejected.Inc()
		return
	}

	key := cmd.Key()
	if e.reg.Contains(key) {
		if !e.resolveDuplicate(key) {
			e.diag("reject NEW: duplicate OrderKey " + key.String())
			metrics.CommandsRejected.Inc()
			return
		}
	}

	if e.maxGlobalOrders > 0 && e.reg.Len() >= e.maxGlobalOrders {
		e.diag("reject NEW: global order cap reached")
		metrics.CommandsRejected.Inc()
		return
	}

	bk := e.getOrCreateBook(cmd.Symbol)

	if !e.validateCorridor(bk, cmd) {
		e.diag("reject NEW: price outside volatility corridor")
		metrics.CommandsRejected.Inc()
		return
	}

	// Step 1 — Acknowledge.
	e.emit.Push(outtape.BuildAck(cmd.UserID, cmd.UserOrderID))
	metrics.OrdersAccepted.Inc()

	// Step 2 — Route already happened above (bk).

	// Step 3 — Match against the opposite side.
	takerRemaining := e.match(bk, cmd)

	// Step 4 — Rest residual.
	if cmd.OrderType == types.Limit && precision.IsPositive(takerRemaining) {
		e.rest(bk, cmd, takerRemaining)
	}
	// MARKET residuals are IOC: dropped silently, no cancellation print.

	// Step 5 — Publish BBO deltas.
	e.publishBBO(bk, types.Buy)
	e.publishBBO(bk, types.Sell)
}

// validateSymbol enforces the whitelist only when configured to. Any
// well-formed symbol is accepted by default.
func (e *Engine) validateSymbol(sym types.Symbol) bool {
	if sym.IsZero() {
		return false
	}
	if !e.enforceWhitelist {
		return true
	}
	return e.whitelist[sym]
}

// resolveDuplicate applies the configured policy for a NEW whose OrderKey
// already rests. Returns false if the NEW should be dropped outright.
func (e *Engine) resolveDuplicate(key types.OrderKey) bool {
	switch e.duplicatePolicy {
	case config.DuplicateReject:
		return false
	case config.DuplicateReplace:
		e.cancelInternal(key, false)
		return true
	case config.DuplicateAccept:
		// The old resting order is left exactly where it is; the Registry
		// entry will simply point at the new order's location once it's
		// filed, since a map key can only resolve to one location.
		return true
	default:
		return false
	}
}

// validateCorridor rejects a LIMIT NEW priced too far from the book's last
// traded price, when a corridor threshold is configured. MARKET orders and
// books with no trade history are exempt.
func (e *Engine) validateCorridor(bk *book.Book, cmd types.Command) bool {
	if e.corridorThresh <= 0 || cmd.OrderType != types.Limit || bk.LastTradedPrice <= 0 {
		return true
	}
	deviation := math.Abs(cmd.Price-bk.LastTradedPrice) / bk.LastTradedPrice
	return deviation <= e.corridorThresh
}

// match walks the opposite side from best price outward, crossing the
// taker against resting liquidity. Returns the taker's remaining quantity
// after matching stops.
func (e *Engine) match(bk *book.Book, cmd types.Command) float64 {
	takerRemaining := cmd.Quantity
	oppSide := bk.OppositeSideFor(cmd.Side)

	for precision.IsPositive(takerRemaining) {
		lvl, ok := oppSide.Best()
		if !ok {
			break
		}
		if cmd.OrderType == types.Limit && !priceCrosses(cmd.Side, cmd.Price, lvl.Price) {
			break
		}

		node := lvl.Head
		for node != nil && precision.IsPositive(takerRemaining) {
			maker := node
			tradeQty := math.Min(takerRemaining, maker.Order.RemainingQuantity)

			e.emitTrade(cmd, maker, lvl.Price, tradeQty)

			takerRemaining = precision.SubtractOrZero(takerRemaining, tradeQty)
			oppSide.Fill(maker, tradeQty)
			bk.LastTradedPrice = lvl.Price
			metrics.TradesExecuted.Inc()

			advance := maker.Next()
			if precision.IsZero(maker.Order.RemainingQuantity) {
				e.reg.Unregister(types.OrderKey{UserID: maker.Order.UserID, UserOrderID: maker.Order.UserOrderID})
				oppSide.RemoveFilled(maker)
			}
			node = advance
		}
	}

	return takerRemaining
}

// priceCrosses reports whether a resting level at levelPrice crosses a
// LIMIT taker of the given side and limit price, epsilon-tolerant:
// equality within epsilon counts as crossing.
func priceCrosses(takerSide types.Side, takerPrice, levelPrice float64) bool {
	if takerSide == types.Buy {
		return !precision.IsGreater(levelPrice, takerPrice)
	}
	return !precision.IsLess(levelPrice, takerPrice)
}

// emitTrade prints the trade in buy-then-sell field order regardless of
// which side was the taker.
func (e *Engine) emitTrade(cmd types.Command, maker *book.Node, price, qty float64) {
	if cmd.Side == types.Buy {
		e.emit.Push(outtape.BuildTrade(cmd.UserID, cmd.UserOrderID, maker.Order.UserID, maker.Order.UserOrderID, price, qty))
	} else {
		e.emit.Push(outtape.BuildTrade(maker.Order.UserID, maker.Order.UserOrderID, cmd.UserID, cmd.UserOrderID, price, qty))
	}
}

// rest inserts the taker's residual as a new resting order and files its
// Registry entry. A level-ceiling violation drops the residual silently
// and logs a diagnostic — by this point the ack and any trades have
// already been emitted, so the whole command cannot be unwound.
func (e *Engine) rest(bk *book.Book, cmd types.Command, remaining float64) {
	side := bk.SideFor(cmd.Side)
	e.seq++
	order := book.RestingOrder{
		UserID:            cmd.UserID,
		UserOrderID:       cmd.UserOrderID,
		Price:             cmd.Price,
		RemainingQuantity: remaining,
		Seq:               e.seq,
	}
	node, err := side.Add(order)
	if err != nil {
		e.diag("drop residual: " + err.Error())
		return
	}
	e.reg.Register(cmd.Key(), registry.Location{
		Symbol: cmd.Symbol,
		Side:   cmd.Side,
		Price:  cmd.Price,
		Node:   node,
	})
}

// publishBBO recomputes one side's top-of-book and emits a B record only
// when it differs from the last-published snapshot.
func (e *Engine) publishBBO(bk *book.Book, side types.Side) {
	bookSide := bk.SideFor(side)
	sideLetter := side.String()[0]

	var current book.BBOSnapshot
	if lvl, ok := bookSide.Best(); ok {
		current = book.BBOSnapshot{Price: lvl.Price, TotalVolume: lvl.TotalVolume, HasPrice: true}
	}

	last := bk.LastBBO(side)
	if bboEqual(last, current) {
		return
	}

	e.emit.Push(outtape.BuildBBO(sideLetter, current.Price, current.TotalVolume, current.HasPrice))
	bk.SetLastBBO(side, current)
}

func bboEqual(a, b book.BBOSnapshot) bool {
	if a.HasPrice != b.HasPrice {
		return false
	}
	if !a.HasPrice {
		return true
	}
	return precision.IsEqual(a.Price, b.Price) && a.TotalVolume == b.TotalVolume
}
