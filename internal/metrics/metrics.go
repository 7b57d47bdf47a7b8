package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "care_http_requests_total",
			Help: "Total HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "care_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2, 5, 10, 30},
		},
		[]string{"route", "method"},
	)

	AnalysisFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "care_analysis_fallbacks_total",
			Help: "Symptom analyses answered with the fallback result, by reason",
		},
		[]string{"reason"},
	)

	AppointmentsBooked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "care_appointments_booked_total",
			Help: "Appointments created",
		},
	)

	SlotConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "care_appointment_slot_conflicts_total",
			Help: "Bookings rejected because the slot was already held",
		},
	)

	AppointmentsSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "care_appointments_swept_total",
			Help: "Past confirmed appointments completed by the sweeper",
		},
	)

	AuditDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "care_audit_events_dropped_total",
			Help: "Audit events dropped because the dispatcher queue was full",
		},
	)
)
