// Package metrics exposes Prometheus collectors describing the traffic of collection sources and
// operators. All methods are safe on a nil *Metrics, which disables instrumentation.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "rxcollections"

// Metrics holds the collectors. Every series is labeled with the collection name.
type Metrics struct {
	Published   *prometheus.CounterVec
	Suppressed  *prometheus.CounterVec
	Rejected    *prometheus.CounterVec
	Recomputed  *prometheus.CounterVec
	Subscribers *prometheus.GaugeVec
}

// New creates an unregistered set of collectors.
func New() *Metrics {
	return &Metrics{
		Published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "notifications_published_total",
			Help:      "Notifications published by a collection, by action.",
		}, []string{"collection", "action"}),
		Suppressed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "mutations_suppressed_total",
			Help:      "Mutations that left the collection unchanged and were not published.",
		}, []string{"collection"}),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "mutations_rejected_total",
			Help:      "Mutations rejected with an error.",
		}, []string{"collection"}),
		Recomputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operator_recomputations_total",
			Help:      "Upstream resets that forced an operator to re-derive its state from scratch.",
		}, []string{"collection"}),
		Subscribers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "subscribers",
			Help:      "Live subscribers of a shared operator output.",
		}, []string{"collection"}),
	}
}

// Collectors returns all collectors.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Published, m.Suppressed, m.Rejected, m.Recomputed, m.Subscribers}
}

// Register registers all collectors with reg. Collectors that are already registered are
// tolerated, so sharing one Metrics between components is safe.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// ObservePublished counts a published notification.
func (m *Metrics) ObservePublished(collection, action string) {
	if m == nil {
		return
	}
	m.Published.WithLabelValues(collection, action).Inc()
}

// ObserveSuppressed counts a no-op mutation.
func (m *Metrics) ObserveSuppressed(collection string) {
	if m == nil {
		return
	}
	m.Suppressed.WithLabelValues(collection).Inc()
}

// ObserveRejected counts a failed mutation.
func (m *Metrics) ObserveRejected(collection string) {
	if m == nil {
		return
	}
	m.Rejected.WithLabelValues(collection).Inc()
}

// ObserveRecomputed counts an operator re-derivation.
func (m *Metrics) ObserveRecomputed(collection string) {
	if m == nil {
		return
	}
	m.Recomputed.WithLabelValues(collection).Inc()
}

// SetSubscribers records the number of live subscribers.
func (m *Metrics) SetSubscribers(collection string, n int) {
	if m == nil {
		return
	}
	m.Subscribers.WithLabelValues(collection).Set(float64(n))
}
