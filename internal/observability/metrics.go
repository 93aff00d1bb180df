package observability

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports request and analysis metrics to Prometheus.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	overallScore    prometheus.Histogram
	matchPercentage prometheus.Histogram
	batchJobs       *prometheus.CounterVec
}

// NewMetrics registers the service metrics on reg, reusing collectors that are
// already registered under the same name.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = "ats_analyzer"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	scoreBuckets := prometheus.LinearBuckets(10, 10, 10)
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		overallScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ats_overall_score",
			Help:      "Distribution of overall ATS scores.",
			Buckets:   scoreBuckets,
		}),
		matchPercentage: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "keyword_match_percentage",
			Help:      "Distribution of keyword match percentages.",
			Buckets:   scoreBuckets,
		}),
		batchJobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_jobs_total",
			Help:      "Count of batch jobs by outcome.",
		}, []string{"outcome"}),
	}

	var err error
	if m.requests, err = register(reg, m.requests); err != nil {
		return nil, err
	}
	if m.requestDuration, err = register(reg, m.requestDuration); err != nil {
		return nil, err
	}
	if m.overallScore, err = register(reg, m.overallScore); err != nil {
		return nil, err
	}
	if m.matchPercentage, err = register(reg, m.matchPercentage); err != nil {
		return nil, err
	}
	if m.batchJobs, err = register(reg, m.batchJobs); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, fmt.Errorf("register metric: %w", err)
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// ObserveScore records an overall ATS score
func (m *Metrics) ObserveScore(overall int) {
	if m == nil {
		return
	}
	m.overallScore.Observe(float64(overall))
}

// ObserveKeywords records a keyword match percentage
func (m *Metrics) ObserveKeywords(matchPercentage int) {
	if m == nil {
		return
	}
	m.matchPercentage.Observe(float64(matchPercentage))
}

// ObserveBatchJob records the outcome of one batch job
func (m *Metrics) ObserveBatchJob(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.batchJobs.WithLabelValues(outcome).Inc()
}
