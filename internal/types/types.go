// Package types holds the wire-level and book-level value types shared by
// the parser, matching engine, and output tape. Nothing here owns behavior
// beyond simple accessors — mutation lives in the packages that own state.
package types

import (
	"bytes"
	"fmt"
)

// SymbolLength is the maximum number of meaningful bytes a Symbol carries.
const SymbolLength = 12

// Symbol is a fixed-width, value-typed ticker. Trivially comparable and
// usable directly as a map key, avoiding the heap allocation and pointer
// indirection a string-keyed book would otherwise pay on every lookup.
type Symbol struct {
	data [SymbolLength]byte
}

// NewSymbol truncates s to SymbolLength bytes. Empty symbols are invalid —
// callers must check IsZero before trusting a freshly constructed Symbol.
func NewSymbol(s string) Symbol {
	var sym Symbol
	n := len(s)
	if n > SymbolLength {
		n = SymbolLength
	}
	copy(sym.data[:], s[:n])
	return sym
}

// IsZero reports whether the symbol carries no bytes at all.
func (s Symbol) IsZero() bool {
	return s.data == [SymbolLength]byte{}
}

// String returns the symbol with trailing NUL padding trimmed.
func (s Symbol) String() string {
	return string(bytes.TrimRight(s.data[:], "\x00"))
}

// Side is the direction of an order.
type Side uint8

const (
	SideUnknown Side = iota
	Buy
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "B"
	case Sell:
		return "S"
	default:
		return "?"
	}
}

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// OrderType distinguishes resting LIMIT orders from fire-and-forget MARKET
// (IOC) orders. A NEW with price == 0 selects MARKET.
type OrderType uint8

const (
	Limit OrderType = iota
	Market
)

// CommandType is the decoded wire command kind.
type CommandType uint8

const (
	CmdNew CommandType = iota
	CmdCancel
	CmdFlush
)

// OrderKey globally identifies a resting order for as long as it rests.
// Uniqueness is scoped to the engine's lifetime: once an order leaves the
// book (fill, cancel, flush) its key may be reused by a future NEW.
type OrderKey struct {
	UserID      uint64
	UserOrderID uint64
}

func (k OrderKey) String() string {
	return fmt.Sprintf("%d/%d", k.UserID, k.UserOrderID)
}

// Command is a fully decoded, validated ingress record. Exactly one of the
// NEW/CANCEL/FLUSH field groups is meaningful, selected by Type.
type Command struct {
	Type CommandType

	// NEW fields.
	Symbol    Symbol
	Side      Side
	Price     float64
	Quantity  float64
	OrderType OrderType

	// Shared by NEW and CANCEL.
	UserID      uint64
	UserOrderID uint64
}

// Key extracts the OrderKey a NEW or CANCEL command refers to.
func (c Command) Key() OrderKey {
	return OrderKey{UserID: c.UserID, UserOrderID: c.UserOrderID}
}
