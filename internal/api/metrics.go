package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Checkout Metrics ───────────────────────────────────────────────────────

// TransactionsCommitted counts committed sales by payment type.
var TransactionsCommitted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "kasir",
	Subsystem: "checkout",
	Name:      "transactions_total",
	Help:      "Total committed transactions by payment type.",
}, []string{"payment_type"})

// RevenueRupiah accumulates committed sale totals in whole rupiah.
var RevenueRupiah = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "kasir",
	Subsystem: "checkout",
	Name:      "revenue_rupiah_total",
	Help:      "Total committed revenue in rupiah.",
})

// CheckoutRejections counts validation failures by reason.
var CheckoutRejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "kasir",
	Subsystem: "checkout",
	Name:      "rejections_total",
	Help:      "Total rejected checkout operations by reason.",
}, []string{"reason"})

// KasbonRecorded accumulates debt recorded against customer accounts.
var KasbonRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "kasir",
	Subsystem: "ledger",
	Name:      "kasbon_rupiah_total",
	Help:      "Total kasbon recorded in rupiah.",
})
