package outtape

import (
	"bufio"
	"io"

	"go.uber.org/zap"

	"github.com/lumenex/matchcore/internal/queue"
	"github.com/lumenex/matchcore/pkg/metrics"
)

// Writer is the output-thread consumer: it blocks on the output queue's
// batch-drain primitive, writes each envelope to its route's stream, and
// flushes stdout once per batch.
type Writer struct {
	q      *queue.Queue[Envelope]
	stdout *bufio.Writer
	stderr io.Writer
	log    *zap.Logger
}

// NewWriter builds a Writer that drains q, writing RouteData envelopes to
// stdout and RouteDiag envelopes to stderr.
func NewWriter(q *queue.Queue[Envelope], stdout, stderr io.Writer, log *zap.Logger) *Writer {
	return &Writer{
		q:      q,
		stdout: bufio.NewWriter(stdout),
		stderr: stderr,
		log:    log,
	}
}

// Run drains batches until the queue is stopped and empty. It is meant to
// be the entire body of the output goroutine.
func (w *Writer) Run() {
	for {
		batch, ok := w.q.PopAll()
		if !ok {
			w.flush()
			return
		}
		w.writeBatch(batch)
	}
}

func (w *Writer) writeBatch(batch []Envelope) {
	for i := range batch {
		e := &batch[i]
		switch e.Route() {
		case RouteData:
			if _, err := w.stdout.Write(e.Bytes()); err != nil {
				w.log.Error("output tape: stdout write failed", zap.Error(err))
			}
		case RouteDiag:
			if _, err := w.stderr.Write(e.Bytes()); err != nil {
				w.log.Error("output tape: stderr write failed", zap.Error(err))
			}
		}
	}
	metrics.OutputEnvelopesWritten.Add(float64(len(batch)))
	w.flush()
}

func (w *Writer) flush() {
	if err := w.stdout.Flush(); err != nil {
		w.log.Error("output tape: stdout flush failed", zap.Error(err))
	}
}
