// Package ingress implements the datagram receiver: bind a UDP endpoint,
// copy each payload into an owned byte sequence, and hand it to the
// input queue on a dedicated goroutine blocked in the kernel recv call.
package ingress

import (
	"errors"
	"net"

	"go.uber.org/zap"

	"github.com/lumenex/matchcore/internal/queue"
	"github.com/lumenex/matchcore/pkg/metrics"
)

// maxPacketSize is the scratch buffer size, comfortably above the path
// MTU for a single CSV line.
const maxPacketSize = 4096

// Receiver owns the bound UDP socket and pushes decoded payloads into an
// input queue of raw strings.
type Receiver struct {
	conn *net.UDPConn
	q    *queue.Queue[string]
	log  *zap.Logger
}

// Listen binds a UDP endpoint on addr (e.g. ":1234") and returns a
// Receiver ready to Run.
func Listen(addr string, q *queue.Queue[string], log *zap.Logger) (*Receiver, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Receiver{conn: conn, q: q, log: log}, nil
}

// Run blocks in the receive loop until Stop closes the socket, at which
// point ReadFromUDP returns an error and the loop exits cleanly — a
// cooperative stop that unblocks any pending receive.
func (r *Receiver) Run() {
	buf := make([]byte, maxPacketSize)
	for {
		n, _, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			r.log.Warn("ingress: read error", zap.Error(err))
			continue
		}
		if n == len(buf) {
			// A datagram that exactly fills the scratch buffer may have been
			// truncated by the kernel; drop it silently rather than guess at
			// the missing tail.
			metrics.DatagramsDropped.Inc()
			continue
		}
		payload := make([]byte, n)
		copy(payload, buf[:n])
		r.q.Push(string(payload))
	}
}

// Stop closes the socket, unblocking Run.
func (r *Receiver) Stop() error {
	return r.conn.Close()
}

// Addr reports the bound local address, useful for tests that bind an
// ephemeral port.
func (r *Receiver) Addr() net.Addr {
	return r.conn.LocalAddr()
}
