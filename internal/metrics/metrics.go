package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewBroadcastDroppedTotal returns a Prometheus counter for deliveries dropped on full observer buffers
func NewBroadcastDroppedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "broadcast_dropped_total",
		Help: "Total number of observer deliveries dropped because the observer buffer was full",
	})
}

// NewSnapshotTicksTotal returns a Prometheus counter for completed periodic snapshot broadcasts
func NewSnapshotTicksTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "snapshot_ticks_total",
		Help: "Total number of periodic snapshot broadcasts completed",
	})
}

// NewSnapshotFailuresTotal returns a Prometheus counter for snapshot queries that failed and were skipped
func NewSnapshotFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "snapshot_failures_total",
		Help: "Total number of periodic snapshot ticks skipped due to a failed store query",
	})
}
