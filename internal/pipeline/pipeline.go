// Package pipeline wires the three persistent threads — receiver,
// processing, output — into one supervised application, joined by two
// queues.
package pipeline

import (
	"context"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/lumenex/matchcore/internal/ingress"
	"github.com/lumenex/matchcore/internal/matching"
	"github.com/lumenex/matchcore/internal/outtape"
	"github.com/lumenex/matchcore/internal/parser"
	"github.com/lumenex/matchcore/internal/queue"
	"github.com/lumenex/matchcore/internal/types"
	"github.com/lumenex/matchcore/pkg/config"
	"github.com/lumenex/matchcore/pkg/metrics"
)

// App supervises the receiver, processing, and output goroutines and the
// two queues between them.
type App struct {
	cfg config.Config
	log *zap.Logger

	inputQ  *queue.Queue[string]
	outputQ *queue.Queue[outtape.Envelope]

	receiver *ingress.Receiver
	engine   *matching.Engine
	writer   *outtape.Writer

	receiverDone  chan struct{}
	processorDone chan struct{}
	writerDone    chan struct{}
}

// New builds an App with the given config and logger. It binds the UDP
// socket on cfg.Port right away but does not start any goroutine — call
// Start for that.
func New(cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	inputQ := queue.New[string]()
	outputQ := queue.New[outtape.Envelope]()

	receiver, err := ingress.Listen(udpAddr(cfg.Port), inputQ, log)
	if err != nil {
		return nil, err
	}

	engine := matching.New(cfg, outputQ, log)
	writer := outtape.NewWriter(outputQ, os.Stdout, os.Stderr, log)

	return &App{
		cfg:           cfg,
		log:           log,
		inputQ:        inputQ,
		outputQ:       outputQ,
		receiver:      receiver,
		engine:        engine,
		writer:        writer,
		receiverDone:  make(chan struct{}),
		processorDone: make(chan struct{}),
		writerDone:    make(chan struct{}),
	}, nil
}

func udpAddr(port int) string {
	return ":" + strconv.Itoa(port)
}

// Start launches the three goroutines: receiver, processing, output.
func (a *App) Start() {
	go func() {
		defer close(a.receiverDone)
		a.receiver.Run()
	}()

	go func() {
		defer close(a.processorDone)
		a.processingLoop()
	}()

	go func() {
		defer close(a.writerDone)
		a.writer.Run()
	}()
}

// processingLoop is the "processing thread": it pops raw payloads,
// parses, and feeds well-formed commands straight to the engine, all on
// one goroutine, preserving the single-writer invariant.
func (a *App) processingLoop() {
	for {
		metrics.InputQueueDepth.Set(float64(a.inputQ.Len()))
		raw, ok := a.inputQ.PopBlocking()
		if !ok {
			return
		}
		cmd, ok := parser.Parse(raw, types.SymbolLength)
		if !ok {
			metrics.CommandsRejected.Inc()
			continue
		}
		a.engine.Process(cmd)
		metrics.RestingOrders.Set(float64(a.engine.RegistrySize()))
	}
}

// Stop drains and tears down the pipeline in order: receiver, then input
// queue, then processing thread, then output queue, then output thread.
// Each stage is allowed to drain its inbound work before the next is
// signaled.
func (a *App) Stop(ctx context.Context) error {
	if err := a.receiver.Stop(); err != nil {
		a.log.Warn("pipeline: error closing receiver", zap.Error(err))
	}
	if err := waitFor(ctx, a.receiverDone); err != nil {
		return err
	}

	a.inputQ.Stop()
	// The processing goroutine exits once PopBlocking reports "done" for the
	// drained input queue; only then is it safe to stop the output queue,
	// or a command still mid-match could push into a queue no consumer
	// will ever drain again.
	if err := waitFor(ctx, a.processorDone); err != nil {
		return err
	}

	a.outputQ.Stop()
	return waitFor(ctx, a.writerDone)
}

func waitFor(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
