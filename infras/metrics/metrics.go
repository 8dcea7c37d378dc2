package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "roomform"

// Submission outcomes.
const (
	OutcomeSubmitted = "submitted"
	OutcomeInvalid   = "invalid"
	OutcomeInFlight  = "in_flight"
	OutcomeFailed    = "failed"
)

type Metrics interface {
	Handler() http.Handler
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
	SessionOpened()
	SessionClosed()
	FieldUpdated(field string, accepted bool)
	SubmissionFinished(outcome string, duration time.Duration)
}

type metricsImpl struct {
	handler            http.Handler
	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	openSessions       prometheus.Gauge
	fieldUpdates       *prometheus.CounterVec
	submissions        *prometheus.CounterVec
	submissionDuration prometheus.Histogram
}

// New registers the collectors on a private registry.
func New() Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	openSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "form_sessions_open",
		Help:      "Number of open form sessions",
	})

	fieldUpdates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_field_updates_total",
		Help:      "Field writes by field and whether they were accepted",
	}, []string{"field", "accepted"})

	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_submissions_total",
		Help:      "Submission attempts by outcome",
	}, []string{"outcome"})

	submissionDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "form_submission_duration_seconds",
		Help:      "Duration of submission attempts in seconds",
		Buckets:   prometheus.DefBuckets,
	})

	registry.MustRegister(requestDuration, requestTotal, openSessions, fieldUpdates, submissions, submissionDuration)

	return &metricsImpl{
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		openSessions:       openSessions,
		fieldUpdates:       fieldUpdates,
		submissions:        submissions,
		submissionDuration: submissionDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *metricsImpl) Handler() http.Handler {
	return m.handler
}

func (m *metricsImpl) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)

	m.requestDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, route, code).Inc()
}

func (m *metricsImpl) SessionOpened() {
	m.openSessions.Inc()
}

func (m *metricsImpl) SessionClosed() {
	m.openSessions.Dec()
}

func (m *metricsImpl) FieldUpdated(field string, accepted bool) {
	m.fieldUpdates.WithLabelValues(field, strconv.FormatBool(accepted)).Inc()
}

func (m *metricsImpl) SubmissionFinished(outcome string, duration time.Duration) {
	m.submissions.WithLabelValues(outcome).Inc()
	m.submissionDuration.Observe(duration.Seconds())
}
