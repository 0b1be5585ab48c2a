// Package book implements the per-symbol, per-side price-level structure
// the matching engine walks and mutates. It holds no knowledge of the
// Registry or of cross-symbol state — internal/matching wires those
// together.
package book

import (
	"errors"

	"github.com/lumenex/matchcore/internal/precision"
	"github.com/lumenex/matchcore/internal/types"
)

// ErrTooManyLevels is returned when a NEW would create a price level
// beyond the book's configured ceiling.
var ErrTooManyLevels = errors.New("book: price level ceiling reached")

// Level is the read-only view of a price level exposed to callers walking
// the FIFO queue during matching.
type Level struct {
	Price       float64
	TotalVolume float64
	Size        int
	Head        *Node
}

// Side is one side (bids or asks) of a single symbol's book: a map of price
// to FIFO level plus a lazily-deleted heap that tracks price priority.
type Side struct {
	levels    map[float64]*priceLevel
	heap      *priceHeap
	maxLevels int
}

func newSide(less func(a, b float64) bool, maxLevels int) *Side {
	return &Side{
		levels:    make(map[float64]*priceLevel),
		heap:      newPriceHeap(less),
		maxLevels: maxLevels,
	}
}

// Best returns the top-of-book level, skipping stale heap entries left
// behind by levels that have since emptied.
func (s *Side) Best() (Level, bool) {
	for s.heap.Len() > 0 {
		p := s.heap.prices[0]
		lvl, ok := s.levels[p]
		if ok && !lvl.empty() {
			return Level{Price: lvl.price, TotalVolume: lvl.totalVolume, Size: lvl.size, Head: lvl.head}, true
		}
		s.heap.popTop()
	}
	return Level{}, false
}

// LevelCount reports the number of live (non-empty) price levels. Used to
// enforce MaxPriceLevels without trusting a heap length that may hold stale
// entries.
func (s *Side) LevelCount() int {
	return len(s.levels)
}

// Add files a resting order at its price, creating the level if needed.
// Returns the Node the Registry should key on for O(1) cancel.
func (s *Side) Add(order RestingOrder) (*Node, error) {
	lvl, ok := s.levels[order.Price]
	if !ok {
		if s.maxLevels > 0 && len(s.levels) >= s.maxLevels {
			return nil, ErrTooManyLevels
		}
		lvl = &priceLevel{price: order.Price}
		s.levels[order.Price] = lvl
		s.heap.push(order.Price)
	}
	n := getNode(order, lvl)
	lvl.pushBack(n)
	return n, nil
}

// Fill reduces a resting node's quantity by qty and keeps the level's
// totalVolume in sync, snapping either to exactly zero once within epsilon
// of it so a fully-filled maker never lingers with a technically-positive
// remainder.
func (s *Side) Fill(n *Node, qty float64) {
	n.Order.RemainingQuantity = precision.SubtractOrZero(n.Order.RemainingQuantity, qty)
	n.level.totalVolume = precision.SubtractOrZero(n.level.totalVolume, qty)
}

// RemoveFilled detaches a fully-filled node from its level, releasing it to
// the pool, and drops the level from the map if it's now empty. The stale
// price is left in the heap for lazy cleanup on the next Best() call.
func (s *Side) RemoveFilled(n *Node) {
	lvl := n.level
	lvl.remove(n)
	if lvl.empty() {
		delete(s.levels, lvl.price)
	}
	putNode(n)
}

// RemoveCancelled detaches a resting node for CANCEL, decrementing the
// level's volume by the node's still-resting quantity before unlinking it.
func (s *Side) RemoveCancelled(n *Node) {
	lvl := n.level
	lvl.totalVolume = precision.SubtractOrZero(lvl.totalVolume, n.Order.RemainingQuantity)
	lvl.remove(n)
	if lvl.empty() {
		delete(s.levels, lvl.price)
	}
	putNode(n)
}

// HasLevel reports whether a price currently has a live level.
func (s *Side) HasLevel(price float64) bool {
	lvl, ok := s.levels[price]
	return ok && !lvl.empty()
}

// Clear drops every level. The Side struct itself is kept (not
// reallocated) so the book can be reused after FLUSH.
func (s *Side) Clear() {
	s.levels = make(map[float64]*priceLevel)
	s.heap = newPriceHeap(s.heap.less)
}

// Book is the per-symbol bid/ask pair plus the state BBO delta-tracking and
// crossing decisions need.
type Book struct {
	Symbol          types.Symbol
	Bids            *Side // max-heap: best bid is highest price
	Asks            *Side // min-heap: best ask is lowest price
	LastTradedPrice float64

	lastBidBBO BBOSnapshot
	lastAskBBO BBOSnapshot
}

// BBOSnapshot is the last (price, totalVolume) pair published for one side
// of a book, used to suppress no-op BBO emissions. An empty side is
// represented by HasPrice == false.
type BBOSnapshot struct {
	Price       float64
	TotalVolume float64
	HasPrice    bool
}

// NewBook creates an empty book for symbol with the given per-side price
// level ceiling.
func NewBook(symbol types.Symbol, maxLevels int) *Book {
	return &Book{
		Symbol: symbol,
		Bids:   newSide(func(a, b float64) bool { return a > b }, maxLevels), // max-heap
		Asks:   newSide(func(a, b float64) bool { return a < b }, maxLevels), // min-heap
	}
}

// SideFor returns the book side an order of the given direction rests on.
func (b *Book) SideFor(side types.Side) *Side {
	if side == types.Buy {
		return b.Bids
	}
	return b.Asks
}

// OppositeSideFor returns the book side an order of the given direction
// matches against.
func (b *Book) OppositeSideFor(side types.Side) *Side {
	if side == types.Buy {
		return b.Asks
	}
	return b.Bids
}

// LastBBO and SetLastBBO give the matching engine read/write access to the
// delta-suppression state without exposing the Side internals.
func (b *Book) LastBBO(side types.Side) BBOSnapshot {
	if side == types.Buy {
		return b.lastBidBBO
	}
	return b.lastAskBBO
}

func (b *Book) SetLastBBO(side types.Side, snap BBOSnapshot) {
	if side == types.Buy {
		b.lastBidBBO = snap
	} else {
		b.lastAskBBO = snap
	}
}

// Clear wipes bids, asks, the last-traded price, and published BBO state
// without deallocating the Book itself.
func (b *Book) Clear() {
	b.Bids.Clear()
	b.Asks.Clear()
	b.LastTradedPrice = 0
	b.lastBidBBO = BBOSnapshot{}
	b.lastAskBBO = BBOSnapshot{}
}
