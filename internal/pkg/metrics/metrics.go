// Package metrics holds the Prometheus collectors of the dispatch service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrderEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_order_events_total",
			Help: "Committed order lifecycle events, by event name",
		},
		[]string{"event"},
	)

	NotificationsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_notifications_created_total",
			Help: "Notification records stored, by type",
		},
		[]string{"type"},
	)

	// NotificationFailuresTotal counts side effects that failed after an order
	// write committed. stage is one of lookup, store or publish.
	NotificationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_notification_failures_total",
			Help: "Post-commit notification failures, by stage",
		},
		[]string{"stage"},
	)

	LiveEventsDeliveredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_live_events_delivered_total",
			Help: "Frames written to live connections, by channel kind",
		},
		[]string{"channel"},
	)

	LiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dispatch_live_connections",
			Help: "Currently registered live connections",
		},
	)

	LiveConnectionsEvictedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_live_connections_evicted_total",
			Help: "Live connections dropped after a failed write or ping",
		},
	)
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(OrderEventsTotal)
		prometheus.MustRegister(NotificationsCreatedTotal)
		prometheus.MustRegister(NotificationFailuresTotal)
		prometheus.MustRegister(LiveEventsDeliveredTotal)
		prometheus.MustRegister(LiveConnections)
		prometheus.MustRegister(LiveConnectionsEvictedTotal)
	})
}
