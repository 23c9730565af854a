package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ClientMetrics holds the session-client metrics. A nil *ClientMetrics is
// valid and turns every record method into a no-op, so the client does not
// need to guard call sites.
type ClientMetrics struct {
	loginsTotal     *prometheus.CounterVec
	keepAlivesTotal *prometheus.CounterVec
	callsTotal      *prometheus.CounterVec
	refreshesTotal  prometheus.Counter
	loginRetries    prometheus.Counter
	callDuration    prometheus.Histogram
}

// NewClientMetrics creates the client metrics and registers them with the
// given registerer.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	m := &ClientMetrics{
		loginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "betlink",
			Subsystem: "session",
			Name:      "logins_total",
			Help:      "Certificate login attempts by result",
		}, []string{"result"}),
		keepAlivesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "betlink",
			Subsystem: "session",
			Name:      "keepalives_total",
			Help:      "Keep-alive calls by result",
		}, []string{"result"}),
		callsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "betlink",
			Subsystem: "rpc",
			Name:      "calls_total",
			Help:      "Business calls by outcome kind",
		}, []string{"outcome"}),
		refreshesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "betlink",
			Subsystem: "session",
			Name:      "token_refreshes_total",
			Help:      "Token refreshes triggered by auth failures",
		}),
		loginRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "betlink",
			Subsystem: "session",
			Name:      "login_retries_total",
			Help:      "Login attempts repeated after a failure",
		}),
		callDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "betlink",
			Subsystem: "rpc",
			Name:      "call_duration_seconds",
			Help:      "Business call round-trip latency",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.loginsTotal,
		m.keepAlivesTotal,
		m.callsTotal,
		m.refreshesTotal,
		m.loginRetries,
		m.callDuration,
	)
	return m
}

// Login records one login attempt.
func (m *ClientMetrics) Login(result string) {
	if m == nil {
		return
	}
	m.loginsTotal.WithLabelValues(result).Inc()
}

// KeepAlive records one keep-alive call.
func (m *ClientMetrics) KeepAlive(result string) {
	if m == nil {
		return
	}
	m.keepAlivesTotal.WithLabelValues(result).Inc()
}

// Call records one business call outcome and its latency in seconds.
func (m *ClientMetrics) Call(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.callsTotal.WithLabelValues(outcome).Inc()
	m.callDuration.Observe(seconds)
}

// Refresh records one auth-triggered token refresh.
func (m *ClientMetrics) Refresh() {
	if m == nil {
		return
	}
	m.refreshesTotal.Inc()
}

// LoginRetry records one repeated login attempt.
func (m *ClientMetrics) LoginRetry() {
	if m == nil {
		return
	}
	m.loginRetries.Inc()
}
