package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reservation outcomes used as the "outcome" label.
const (
	OutcomeReserved  = "reserved"
	OutcomeSoldOut   = "sold_out"
	OutcomeNotFound  = "not_found"
	OutcomeDuplicate = "duplicate"
	OutcomeError     = "error"
)

var (
	// ReserveDuration tracks the latency of reservations
	ReserveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "deal_reserve_duration_seconds",
			Help: "Duration of deal reservation requests in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
			},
		},
		[]string{"outcome"},
	)

	// DealsPosted counts deals created by vendors
	DealsPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deals_posted_total",
		Help: "Number of deals posted",
	})

	// LeadRevenue sums the revenue booked from leads, in minor units
	LeadRevenue = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lead_revenue_minor_units_total",
		Help: "Revenue booked from reservation leads in minor currency units",
	})
)

// RecordReservation records the outcome and duration of a reservation
func RecordReservation(outcome string, duration float64) {
	ReserveDuration.WithLabelValues(outcome).Observe(duration)
}

// RecordDealPosted counts a newly posted deal
func RecordDealPosted() {
	DealsPosted.Inc()
}

// RecordLeadRevenue adds the revenue of one lead
func RecordLeadRevenue(amount int64) {
	if amount > 0 {
		LeadRevenue.Add(float64(amount))
	}
}
