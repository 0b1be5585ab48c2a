// Package outtape implements the asynchronous output tape: the fixed-size
// envelope type the matching engine produces and the batch-draining writer
// that serializes envelopes to stdout or stderr.
//
// Envelopes are value types with a fixed buffer and a length, carrying one
// pre-formatted CSV line each. Numeric formatting goes through
// github.com/shopspring/decimal's format-then-trim idiom rather than
// hand-rolled float formatting.
package outtape

// Route selects the destination stream for an envelope.
type Route int

const (
	// RouteData carries a canonical CSV record to stdout.
	RouteData Route = iota
	// RouteDiag carries an optional diagnostic line to stderr. Canonical
	// records never use this route.
	RouteDiag
)

// maxLine is the envelope buffer size, fixed at 128 bytes; every format
// this package produces comfortably fits a 12-byte symbol, two uint64
// fields, and a couple of decimal-formatted numbers inside that budget.
const maxLine = 128

// Envelope is a fixed-size, value-typed output record. It is copied through
// the output queue rather than boxed, matching the "no heap allocation on
// the hot path" contract.
type Envelope struct {
	buf [maxLine]byte
	n   int
	rt  Route
}

// Route reports which stream this envelope belongs on.
func (e Envelope) Route() Route { return e.rt }

// Bytes returns the envelope's payload, including its trailing newline.
func (e *Envelope) Bytes() []byte { return e.buf[:e.n] }

// newEnvelope builds an envelope from line (without its trailing newline)
// on the given route, truncating defensively if a caller ever exceeds
// maxLine rather than corrupting adjacent memory.
func newEnvelope(rt Route, line string) Envelope {
	e := Envelope{rt: rt}
	n := copy(e.buf[:maxLine-1], line)
	e.buf[n] = '\n'
	e.n = n + 1
	return e
}
