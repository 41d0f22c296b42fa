package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_store_operations_total",
			Help: "Applied cart and wishlist mutations by operation",
		},
		[]string{"operation"},
	)

	storePersistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_store_persist_failures_total",
			Help: "Mutations whose state could not be written to storage",
		},
	)

	sessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_sessions_active",
			Help: "Shopper sessions currently held in memory",
		},
	)

	checkoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_checkouts_total",
			Help: "Checkout attempts by outcome",
		},
		[]string{"outcome"},
	)

	orderTotalAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_order_total_amount",
			Help:    "Grand total of placed orders",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
		},
	)
)

// Checkout outcomes.
const (
	outcomePlaced       = "placed"
	outcomeDeclined     = "declined"
	outcomeGatewayError = "gateway_error"
	outcomeSubmitFailed = "submit_failed"
	outcomeInvalid      = "invalid"
)
