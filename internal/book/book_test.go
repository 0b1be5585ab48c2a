package book

import (
	"testing"

	"github.com/lumenex/matchcore/internal/types"
)

func TestSideAddAndBestOrdering(t *testing.T) {
	b := NewBook(types.NewSymbol("IBM"), 0)

	mustAdd(t, b.Bids, RestingOrder{UserID: 1, UserOrderID: 1, Price: 10, RemainingQuantity: 100})
	mustAdd(t, b.Bids, RestingOrder{UserID: 2, UserOrderID: 2, Price: 12, RemainingQuantity: 50})
	mustAdd(t, b.Bids, RestingOrder{UserID: 3, UserOrderID: 3, Price: 11, RemainingQuantity: 25})

	top, ok := b.Bids.Best()
	if !ok || top.Price != 12 {
		t.Fatalf("expected best bid 12, got %+v ok=%v", top, ok)
	}

	mustAdd(t, b.Asks, RestingOrder{UserID: 4, UserOrderID: 4, Price: 20, RemainingQuantity: 10})
	mustAdd(t, b.Asks, RestingOrder{UserID: 5, UserOrderID: 5, Price: 18, RemainingQuantity: 10})

	topAsk, ok := b.Asks.Best()
	if !ok || topAsk.Price != 18 {
		t.Fatalf("expected best ask 18, got %+v ok=%v", topAsk, ok)
	}
}

func TestSideFIFOWithinLevel(t *testing.T) {
	s := newSide(func(a, b float64) bool { return a > b }, 0)
	n1, err := s.Add(RestingOrder{UserID: 1, UserOrderID: 1, Price: 10, RemainingQuantity: 5})
	if err != nil {
		t.Fatal(err)
	}
	n2, err := s.Add(RestingOrder{UserID: 2, UserOrderID: 2, Price: 10, RemainingQuantity: 5})
	if err != nil {
		t.Fatal(err)
	}

	lvl, ok := s.Best()
	if !ok {
		t.Fatal("expected a level")
	}
	if lvl.Head != n1 {
		t.Fatal("expected n1 to be head (first in, first out)")
	}
	if lvl.Head.next != n2 {
		t.Fatal("expected n2 to follow n1")
	}
	if lvl.TotalVolume != 10 {
		t.Fatalf("expected total volume 10, got %v", lvl.TotalVolume)
	}
}

func TestSideFillAndRemoveFilled(t *testing.T) {
	s := newSide(func(a, b float64) bool { return a < b }, 0)
	n, err := s.Add(RestingOrder{UserID: 1, UserOrderID: 1, Price: 100, RemainingQuantity: 10})
	if err != nil {
		t.Fatal(err)
	}

	s.Fill(n, 10)
	if n.Order.RemainingQuantity != 0 {
		t.Fatalf("expected 0 remaining, got %v", n.Order.RemainingQuantity)
	}
	s.RemoveFilled(n)

	if _, ok := s.Best(); ok {
		t.Fatal("expected empty side after removing the only order")
	}
	if s.LevelCount() != 0 {
		t.Fatalf("expected level to be dropped, got count %d", s.LevelCount())
	}
}

func TestSideRemoveCancelledUpdatesVolume(t *testing.T) {
	s := newSide(func(a, b float64) bool { return a < b }, 0)
	n1, _ := s.Add(RestingOrder{UserID: 1, UserOrderID: 1, Price: 50, RemainingQuantity: 5})
	_, _ = s.Add(RestingOrder{UserID: 2, UserOrderID: 2, Price: 50, RemainingQuantity: 5})

	s.RemoveCancelled(n1)

	lvl, ok := s.Best()
	if !ok {
		t.Fatal("expected remaining level")
	}
	if lvl.TotalVolume != 5 {
		t.Fatalf("expected volume 5 after cancel, got %v", lvl.TotalVolume)
	}
	if lvl.Size != 1 {
		t.Fatalf("expected size 1, got %d", lvl.Size)
	}
}

func TestSideMaxLevelsEnforced(t *testing.T) {
	s := newSide(func(a, b float64) bool { return a < b }, 1)
	if _, err := s.Add(RestingOrder{UserID: 1, UserOrderID: 1, Price: 10, RemainingQuantity: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add(RestingOrder{UserID: 2, UserOrderID: 2, Price: 11, RemainingQuantity: 1}); err != ErrTooManyLevels {
		t.Fatalf("expected ErrTooManyLevels, got %v", err)
	}
	// Adding to the already-existing level must still succeed.
	if _, err := s.Add(RestingOrder{UserID: 3, UserOrderID: 3, Price: 10, RemainingQuantity: 1}); err != nil {
		t.Fatalf("expected same-level add to succeed, got %v", err)
	}
}

func TestBookClearResetsEverythingButKeepsTheBook(t *testing.T) {
	b := NewBook(types.NewSymbol("BTC"), 0)
	mustAdd(t, b.Bids, RestingOrder{UserID: 1, UserOrderID: 1, Price: 50000, RemainingQuantity: 10})
	b.LastTradedPrice = 50000
	b.SetLastBBO(types.Buy, BBOSnapshot{Price: 50000, TotalVolume: 10, HasPrice: true})

	b.Clear()

	if _, ok := b.Bids.Best(); ok {
		t.Fatal("expected empty bids after clear")
	}
	if b.LastTradedPrice != 0 {
		t.Fatal("expected last traded price reset")
	}
	if snap := b.LastBBO(types.Buy); snap.HasPrice {
		t.Fatal("expected last BBO snapshot reset")
	}
}

func mustAdd(t *testing.T, s *Side, o RestingOrder) *Node {
	t.Helper()
	n, err := s.Add(o)
	if err != nil {
		t.Fatalf("unexpected error adding order: %v", err)
	}
	return n
}
