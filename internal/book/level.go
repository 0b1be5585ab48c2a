package book

import "sync"

// RestingOrder is the book's view of a resting order. It carries no side or
// symbol of its own — those are implied by where it's filed.
type RestingOrder struct {
	UserID            uint64
	UserOrderID       uint64
	Price             float64
	RemainingQuantity float64
	Seq               uint64 // monotonic insertion sequence, for FIFO tie-break
}

// Node is the intrusive doubly-linked-list element a PriceLevel's FIFO
// queue is built from, and the handle the Registry stores for O(1) cancel.
type Node struct {
	prev, next *Node
	level      *priceLevel
	Order      RestingOrder
}

// Next returns the next node in FIFO order at this node's price level, or
// nil if n is currently the tail. Exposed so the matching engine can walk
// a level's queue without reaching into book's unexported linked-list
// fields.
func (n *Node) Next() *Node { return n.next }

type priceLevel struct {
	price       float64
	head, tail  *Node
	totalVolume float64
	size        int
}

func (l *priceLevel) empty() bool { return l.size == 0 }

func (l *priceLevel) pushBack(n *Node) {
	n.prev, n.next = l.tail, nil
	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	l.size++
	l.totalVolume += n.Order.RemainingQuantity
}

func (l *priceLevel) remove(n *Node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.size--
}

var nodePool = sync.Pool{
	New: func() interface{} { return new(Node) },
}

func getNode(order RestingOrder, level *priceLevel) *Node {
	n := nodePool.Get().(*Node)
	n.prev, n.next = nil, nil
	n.level = level
	n.Order = order
	return n
}

func putNode(n *Node) {
	n.prev, n.next = nil, nil
	n.level = nil
	n.Order = RestingOrder{}
	nodePool.Put(n)
}
