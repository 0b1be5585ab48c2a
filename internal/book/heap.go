package book

import "container/heap"

// priceHeap is a lazily-deleted binary heap over price keys. The book never
// removes a price from the heap when its level empties — it leaves the
// stale entry in place and skips it the next time the top is requested.
// This amortizes level churn: a price that's added and removed repeatedly
// costs one heap push per add, not one push and one scan-to-remove. A
// single generic implementation serves both the bid (max) and ask (min)
// side via an injected comparator.
type priceHeap struct {
	prices []float64
	less   func(a, b float64) bool
}

func newPriceHeap(less func(a, b float64) bool) *priceHeap {
	h := &priceHeap{less: less}
	heap.Init(h)
	return h
}

func (h priceHeap) Len() int            { return len(h.prices) }
func (h priceHeap) Less(i, j int) bool  { return h.less(h.prices[i], h.prices[j]) }
func (h priceHeap) Swap(i, j int)       { h.prices[i], h.prices[j] = h.prices[j], h.prices[i] }
func (h *priceHeap) Push(x interface{}) { h.prices = append(h.prices, x.(float64)) }
func (h *priceHeap) Pop() interface{} {
	old := h.prices
	n := len(old)
	x := old[n-1]
	h.prices = old[:n-1]
	return x
}

func (h *priceHeap) push(p float64) {
	heap.Push(h, p)
}

func (h *priceHeap) popTop() {
	heap.Pop(h)
}
