// Package parser turns one raw CSV payload into a validated types.Command.
//
// Tokenizing is non-destructive: a slice-advancing token() function walks
// the input without allocating substrings. Numeric conversion follows a
// "convert, then check the whole token was consumed" shape, using
// strconv.ParseUint/ParseFloat plus explicit finite/subnormal/sign guards
// from the math package. The wire field order is `N, userId, symbol,
// price, quantity, side, userOrderId`.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/lumenex/matchcore/internal/types"
)

// Parse tokenizes raw, validates every field, and returns the decoded
// Command. ok is false for any malformed input, which callers should
// drop silently rather than reject with an error record.
func Parse(raw string, maxSymbolLen int) (types.Command, bool) {
	data := strings.TrimSpace(raw)
	if data == "" {
		return types.Command{}, false
	}

	typeTok, rest := token(data)
	if typeTok == "" {
		return types.Command{}, false
	}

	switch typeTok[0] {
	case 'N':
		return parseNew(rest, maxSymbolLen)
	case 'C':
		return parseCancel(rest)
	case 'F':
		return parseFlush(rest)
	default:
		return types.Command{}, false
	}
}

func parseNew(rest string, maxSymbolLen int) (types.Command, bool) {
	var uidTok, symTok, priceTok, qtyTok, sideTok, oidTok string
	uidTok, rest = token(rest)
	symTok, rest = token(rest)
	priceTok, rest = token(rest)
	qtyTok, rest = token(rest)
	sideTok, rest = token(rest)
	oidTok, rest = token(rest)

	if oidTok == "" || rest != "" {
		return types.Command{}, false
	}
	if symTok == "" || len(symTok) > maxSymbolLen {
		return types.Command{}, false
	}

	userID, ok := parseUint64(uidTok)
	if !ok {
		return types.Command{}, false
	}
	userOrderID, ok := parseUint64(oidTok)
	if !ok {
		return types.Command{}, false
	}

	var side types.Side
	switch sideTok {
	case "B":
		side = types.Buy
	case "S":
		side = types.Sell
	default:
		return types.Command{}, false
	}

	price, ok := parsePrice(priceTok)
	if !ok {
		return types.Command{}, false
	}
	qty, ok := parseQuantity(qtyTok)
	if !ok {
		return types.Command{}, false
	}

	orderType := types.Limit
	if price == 0 {
		orderType = types.Market
	}

	return types.Command{
		Type:        types.CmdNew,
		Symbol:      types.NewSymbol(symTok),
		Side:        side,
		Price:       price,
		Quantity:    qty,
		OrderType:   orderType,
		UserID:      userID,
		UserOrderID: userOrderID,
	}, true
}

func parseCancel(rest string) (types.Command, bool) {
	var uidTok, oidTok string
	uidTok, rest = token(rest)
	oidTok, rest = token(rest)

	if oidTok == "" || rest != "" {
		return types.Command{}, false
	}

	userID, ok := parseUint64(uidTok)
	if !ok {
		return types.Command{}, false
	}
	userOrderID, ok := parseUint64(oidTok)
	if !ok {
		return types.Command{}, false
	}

	return types.Command{
		Type:        types.CmdCancel,
		UserID:      userID,
		UserOrderID: userOrderID,
	}, true
}

func parseFlush(rest string) (types.Command, bool) {
	if rest != "" {
		return types.Command{}, false
	}
	return types.Command{Type: types.CmdFlush}, true
}

// token slices off the next comma-delimited field, trimming surrounding
// whitespace, and returns the remainder: advance past the comma, never
// copy the tail.
func token(data string) (tok, rest string) {
	if idx := strings.IndexByte(data, ','); idx >= 0 {
		tok, rest = data[:idx], data[idx+1:]
	} else {
		tok, rest = data, ""
	}
	return strings.TrimSpace(tok), strings.TrimSpace(rest)
}

// parseUint64 rejects a leading sign. ParseUint alone would accept an
// optional "+", so an explicit check rejects both "+" and "-" before
// parsing; ParseUint already guarantees full-token consumption or an
// error.
func parseUint64(tok string) (uint64, bool) {
	if tok == "" || tok[0] == '+' || tok[0] == '-' {
		return 0, false
	}
	v, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parsePrice accepts zero (MARKET) but rejects negative, NaN, Inf, and
// subnormal values; trailing garbage is rejected because ParseFloat
// returns an error unless it consumes the whole token.
func parsePrice(tok string) (float64, bool) {
	return parseFloatGuarded(tok, true)
}

// parseQuantity additionally requires a strictly positive value.
func parseQuantity(tok string) (float64, bool) {
	return parseFloatGuarded(tok, false)
}

func parseFloatGuarded(tok string, allowZero bool) (float64, bool) {
	if tok == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v < 0 {
		return 0, false
	}
	if v == 0 {
		if allowZero {
			return 0, true
		}
		return 0, false
	}
	if isSubnormal(v) {
		return 0, false
	}
	return v, true
}

func isSubnormal(v float64) bool {
	av := math.Abs(v)
	return av > 0 && av < math.SmallestNonzeroFloat64*(1<<52)
}
