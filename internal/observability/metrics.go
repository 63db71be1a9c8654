// Package observability exposes Prometheus metrics for the data core.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreMutations counts successful mutations by entity and operation.
	StoreMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vyvoxa_store_mutations_total",
		Help: "Successful data-core mutations by entity and operation.",
	}, []string{"entity", "op"})

	// BusFanouts counts subscriber notifications delivered by the bus.
	BusFanouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vyvoxa_bus_fanout_total",
		Help: "Subscriber callbacks invoked by the subscription bus.",
	})

	// BusDroppedPublishes counts publishes dropped by the reentrancy guard.
	BusDroppedPublishes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vyvoxa_bus_dropped_publishes_total",
		Help: "Publishes dropped because they were issued from inside a subscriber callback.",
	})

	// PersistenceFailures counts failed flushes by collection key.
	PersistenceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vyvoxa_persistence_failures_total",
		Help: "Failed key-value store writes by collection key.",
	}, []string{"key"})
)
