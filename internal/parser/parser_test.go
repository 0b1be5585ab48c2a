package parser

import (
	"testing"

	"github.com/lumenex/matchcore/internal/types"
)

func TestParseNewLimit(t *testing.T) {
	cmd, ok := Parse("N, 1, IBM, 10, 100, B, 1", 12)
	if !ok {
		t.Fatal("expected successful parse")
	}
	if cmd.Type != types.CmdNew || cmd.Side != types.Buy || cmd.OrderType != types.Limit {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd.UserID != 1 || cmd.UserOrderID != 1 || cmd.Price != 10 || cmd.Quantity != 100 {
		t.Fatalf("unexpected fields: %+v", cmd)
	}
	if cmd.Symbol.String() != "IBM" {
		t.Fatalf("unexpected symbol: %q", cmd.Symbol.String())
	}
}

func TestParseNewMarketAtZeroPrice(t *testing.T) {
	cmd, ok := Parse("N, 2, SYM, 0, 8, B, 1", 12)
	if !ok {
		t.Fatal("expected successful parse")
	}
	if cmd.OrderType != types.Market {
		t.Fatal("expected MARKET for price == 0")
	}
}

func TestParseCancel(t *testing.T) {
	cmd, ok := Parse("C, 1, 101", 12)
	if !ok {
		t.Fatal("expected successful parse")
	}
	if cmd.Type != types.CmdCancel || cmd.UserID != 1 || cmd.UserOrderID != 101 {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestParseFlush(t *testing.T) {
	cmd, ok := Parse("F", 12)
	if !ok || cmd.Type != types.CmdFlush {
		t.Fatalf("expected FLUSH, got %+v ok=%v", cmd, ok)
	}
}

func TestParseTrimsWhitespaceAndTrailingNewline(t *testing.T) {
	cmd, ok := Parse("  N, 1, IBM, 10, 100, B, 1  \r\n", 12)
	if !ok {
		t.Fatal("expected successful parse with surrounding whitespace")
	}
	if cmd.UserOrderID != 1 {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestParseRejectsLeadingSignOnIDs(t *testing.T) {
	if _, ok := Parse("N, -1, IBM, 10, 100, B, 1", 12); ok {
		t.Fatal("expected rejection of negative userId")
	}
	if _, ok := Parse("N, 1, IBM, 10, 100, B, +1", 12); ok {
		t.Fatal("expected rejection of leading '+' on userOrderId")
	}
}

func TestParseRejectsNegativePriceOrQuantity(t *testing.T) {
	if _, ok := Parse("N, 1, IBM, -10, 100, B, 1", 12); ok {
		t.Fatal("expected rejection of negative price")
	}
	if _, ok := Parse("N, 1, IBM, 10, -100, B, 1", 12); ok {
		t.Fatal("expected rejection of negative quantity")
	}
}

func TestParseRejectsZeroQuantity(t *testing.T) {
	if _, ok := Parse("N, 1, IBM, 10, 0, B, 1", 12); ok {
		t.Fatal("expected rejection of zero quantity")
	}
}

func TestParseRejectsNaNAndInf(t *testing.T) {
	if _, ok := Parse("N, 1, IBM, NaN, 100, B, 1", 12); ok {
		t.Fatal("expected rejection of NaN price")
	}
	if _, ok := Parse("N, 1, IBM, Inf, 100, B, 1", 12); ok {
		t.Fatal("expected rejection of Inf price")
	}
}

func TestParseRejectsInvalidSide(t *testing.T) {
	if _, ok := Parse("N, 1, IBM, 10, 100, X, 1", 12); ok {
		t.Fatal("expected rejection of invalid side")
	}
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	if _, ok := Parse("N, 1, IBM, 10abc, 100, B, 1", 12); ok {
		t.Fatal("expected rejection of trailing garbage in numeric field")
	}
}

func TestParseRejectsExtraFields(t *testing.T) {
	if _, ok := Parse("N, 1, IBM, 10, 100, B, 1, 999", 12); ok {
		t.Fatal("expected rejection of extra trailing field")
	}
}

func TestParseRejectsOversizedSymbol(t *testing.T) {
	if _, ok := Parse("N, 1, TOOLONGSYMBOLNAME, 10, 100, B, 1", 12); ok {
		t.Fatal("expected rejection of oversized symbol")
	}
}

func TestParseRejectsUnknownCommandLetter(t *testing.T) {
	if _, ok := Parse("Z, 1, 2", 12); ok {
		t.Fatal("expected rejection of unknown command letter")
	}
}

func TestParseRejectsEmptyInput(t *testing.T) {
	if _, ok := Parse("", 12); ok {
		t.Fatal("expected rejection of empty input")
	}
	if _, ok := Parse("   \r\n", 12); ok {
		t.Fatal("expected rejection of whitespace-only input")
	}
}
