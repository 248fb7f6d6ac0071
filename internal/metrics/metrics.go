package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/tasklist-api/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tasklist",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tasklist",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Domain metrics

	SignupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tasklist",
		Name:      "signups_total",
		Help:      "Total successful sign-ups.",
	})

	SigninsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tasklist",
		Name:      "signins_total",
		Help:      "Total successful sign-ins.",
	})

	TaskListsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tasklist",
		Name:      "task_lists_created_total",
		Help:      "Total task lists created.",
	})

	TodosCompletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tasklist",
		Name:      "todos_completed_total",
		Help:      "Total todos marked completed.",
	})

	// Reminder metrics

	RemindersSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tasklist",
		Name:      "reminders_sent_total",
		Help:      "Total reminder emails sent.",
	})

	ReminderCycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tasklist",
		Name:      "reminder_cycle_duration_seconds",
		Help:      "Time taken for one reminder cycle.",
		Buckets:   prometheus.DefBuckets,
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		SignupsTotal,
		SigninsTotal,
		TaskListsCreatedTotal,
		TodosCompletedTotal,
		RemindersSentTotal,
		ReminderCycleDuration,
	)
}

// NewServer exposes /metrics plus the liveness/readiness probes on a port
// separate from the API.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		result := checker.Readiness(r.Context())
		status := http.StatusOK
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, result)
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
