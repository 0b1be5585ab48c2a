package outtape

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// formatNumber renders a price or quantity with no unnecessary trailing
// zeros and no dangling decimal point: round to a fixed precision, then
// strip. decimal.NewFromFloat avoids the float-to-string surprises
// strconv.FormatFloat('f', -1, ...) can produce for values like 0.1 + 0.2.
func formatNumber(v float64) string {
	d := decimal.NewFromFloat(v).Round(8)
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "" || s == "-0" {
		s = "0"
	}
	return s
}

// BuildAck formats `A, <userId>, <userOrderId>`.
func BuildAck(userID, userOrderID uint64) Envelope {
	return newEnvelope(RouteData, "A, "+u64(userID)+", "+u64(userOrderID))
}

// BuildCancel formats `C, <userId>, <userOrderId>`.
func BuildCancel(userID, userOrderID uint64) Envelope {
	return newEnvelope(RouteData, "C, "+u64(userID)+", "+u64(userOrderID))
}

// BuildTrade formats `T, <buyUserId>, <buyUserOrderId>, <sellUserId>,
// <sellUserOrderId>, <price>, <quantity>`.
func BuildTrade(buyUserID, buyUserOrderID, sellUserID, sellUserOrderID uint64, price, qty float64) Envelope {
	line := "T, " + u64(buyUserID) + ", " + u64(buyUserOrderID) + ", " +
		u64(sellUserID) + ", " + u64(sellUserOrderID) + ", " +
		formatNumber(price) + ", " + formatNumber(qty)
	return newEnvelope(RouteData, line)
}

// BuildBBO formats `B, <B|S>, <price>, <totalQuantity>`, or `B, <B|S>, -, -`
// when hasPrice is false (the side is now empty).
func BuildBBO(sideLetter byte, price, totalQty float64, hasPrice bool) Envelope {
	if !hasPrice {
		return newEnvelope(RouteData, "B, "+string(sideLetter)+", -, -")
	}
	line := "B, " + string(sideLetter) + ", " + formatNumber(price) + ", " + formatNumber(totalQty)
	return newEnvelope(RouteData, line)
}

// BuildDiag wraps msg as a diagnostic envelope routed to stderr. Used only
// for optional logging, never for canonical records.
func BuildDiag(msg string) Envelope {
	return newEnvelope(RouteDiag, msg)
}

func u64(v uint64) string {
	return strconv.FormatUint(v, 10)
}
