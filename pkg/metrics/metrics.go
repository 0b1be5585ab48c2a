// Package metrics exposes the engine's passive health surface: a handful
// of prometheus counters and gauges plus the /metrics handler that
// serves them, declared as package-level collectors and registered once
// at startup.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// OrdersAccepted counts NEW commands that produced an acknowledgment.
	OrdersAccepted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchcore",
		Name:      "orders_accepted_total",
		Help:      "Total number of NEW commands acknowledged.",
	})

	// TradesExecuted counts individual trade prints emitted across all
	// symbols.
	TradesExecuted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchcore",
		Name:      "trades_executed_total",
		Help:      "Total number of trade events emitted.",
	})

	// CancelsAccepted counts CANCEL commands that found a resting order.
	CancelsAccepted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchcore",
		Name:      "cancels_accepted_total",
		Help:      "Total number of CANCEL commands that removed a resting order.",
	})

	// DatagramsDropped counts UDP payloads dropped for exceeding the
	// ingress scratch buffer.
	DatagramsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchcore",
		Name:      "datagrams_dropped_total",
		Help:      "Total number of datagrams dropped for exceeding the ingress buffer.",
	})

	// CommandsRejected counts payloads the parser could not turn into a
	// Command, plus NEW commands the engine's validation dropped.
	CommandsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchcore",
		Name:      "commands_rejected_total",
		Help:      "Total number of payloads rejected by the parser or NEW commands rejected by the engine.",
	})

	// InputQueueDepth tracks the pending-command backlog between the
	// receiver and the processing thread.
	InputQueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchcore",
		Name:      "input_queue_depth",
		Help:      "Current depth of the raw-datagram input queue.",
	})

	// OutputEnvelopesWritten counts envelopes flushed by the output tape,
	// across both stdout and stderr routes.
	OutputEnvelopesWritten = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchcore",
		Name:      "output_envelopes_written_total",
		Help:      "Total number of output envelopes written to a stream.",
	})

	// RestingOrders tracks the current number of resting orders across
	// every book, mirrored from the registry's size.
	RestingOrders = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchcore",
		Name:      "resting_orders",
		Help:      "Current number of resting orders across all books.",
	})
)

// MustRegister registers every collector with the default prometheus
// registry. Called once at startup.
func MustRegister() {
	prometheus.MustRegister(
		OrdersAccepted,
		TradesExecuted,
		CancelsAccepted,
		DatagramsDropped,
		CommandsRejected,
		InputQueueDepth,
		OutputEnvelopesWritten,
		RestingOrders,
	)
}

// Handler returns the HTTP handler serving the registered collectors in
// the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
