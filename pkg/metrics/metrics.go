package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Access verification results.
const (
	ResultAuthorized   = "authorized"
	ResultUnauthorized = "unauthorized"
	ResultUnconfigured = "unconfigured"
	ResultLimited      = "limited"
)

// Mail dispatch outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeProviderError = "provider_error"
	OutcomeError         = "error"
)

var (
	AccessVerifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "corpsite_access_verifications_total",
		Help: "Password verification attempts grouped by result",
	}, []string{"result"})
	// transport is "API", "SMTP" or "none" when no transport could be resolved
	MailDispatches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "corpsite_mail_dispatch_total",
		Help: "Email dispatch attempts grouped by transport and outcome",
	}, []string{"transport", "outcome"})
	MailDispatchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "corpsite_mail_dispatch_duration_seconds",
		Help:    "Time spent handing a message to the mail transport",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"transport"})
)

func init() {
	prometheus.MustRegister(AccessVerifications)
	prometheus.MustRegister(MailDispatches)
	prometheus.MustRegister(MailDispatchDuration)
}

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
