// Package matching implements the single-writer matching engine: the
// state machines for NEW, CANCEL, and FLUSH, wired on top of
// internal/book and internal/registry.
package matching

import (
	"go.uber.org/zap"

	"github.com/lumenex/matchcore/internal/book"
	"github.com/lumenex/matchcore/internal/outtape"
	"github.com/lumenex/matchcore/internal/registry"
	"github.com/lumenex/matchcore/internal/types"
	"github.com/lumenex/matchcore/pkg/config"
)

// Emitter is the sink the engine pushes output envelopes into. Satisfied
// by *queue.Queue[outtape.Envelope]; kept as an interface so tests can
// assert against a plain slice without spinning up the output thread.
type Emitter interface {
	Push(outtape.Envelope)
}

// Engine owns every Book and the Registry. It must never be called from
// more than one goroutine: single-writer access is enforced by
// convention (the processing thread is the only caller), not by a lock.
type Engine struct {
	books map[types.Symbol]*book.Book
	reg   *registry.Registry
	emit  Emitter
	log   *zap.Logger

	whitelist        map[types.Symbol]bool
	enforceWhitelist bool
	maxGlobalOrders  int
	maxPriceLevels   int
	corridorThresh   float64
	duplicatePolicy  config.DuplicateOrderPolicy
	rejectDiagnostic bool

	seq uint64
}

// New builds an Engine from cfg. log may be nil, in which case a no-op
// logger is used. Reject diagnostics are pushed to the output tape's stderr
// route only when cfg.RejectDiagnostics is set, whatever log is.
func New(cfg config.Config, emit Emitter, log *zap.Logger) *Engine {
	whitelist := make(map[types.Symbol]bool, len(cfg.Symbols))
	for _, s := range cfg.Symbols {
		whitelist[types.NewSymbol(s)] = true
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		books:            make(map[types.Symbol]*book.Book),
		reg:              registry.New(0),
		emit:             emit,
		log:              log,
		whitelist:        whitelist,
		enforceWhitelist: cfg.EnforceWhitelist,
		maxGlobalOrders:  cfg.MaxGlobalOrders,
		maxPriceLevels:   cfg.MaxPriceLevels,
		corridorThresh:   cfg.CorridorThreshold,
		duplicatePolicy:  cfg.DuplicateOrderPolicy,
		rejectDiagnostic: cfg.RejectDiagnostics,
	}
}

// Process dispatches a decoded Command to its state machine. This is the
// processing thread's entire hot-path entry point.
func (e *Engine) Process(cmd types.Command) {
	switch cmd.Type {
	case types.CmdNew:
		e.handleNew(cmd)
	case types.CmdCancel:
		e.handleCancel(cmd.Key())
	case types.CmdFlush:
		e.handleFlush()
	}
}

func (e *Engine) getOrCreateBook(sym types.Symbol) *book.Book {
	bk, ok := e.books[sym]
	if !ok {
		bk = book.NewBook(sym, e.maxPriceLevels)
		e.books[sym] = bk
	}
	return bk
}

func (e *Engine) diag(msg string) {
	if !e.rejectDiagnostic {
		return
	}
	e.emit.Push(outtape.BuildDiag(msg))
}

// RegistrySize exposes the current count of resting orders, used by the
// pipeline to mirror the metrics.RestingOrders gauge.
func (e *Engine) RegistrySize() int {
	return e.reg.Len()
}
