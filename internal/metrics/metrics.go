package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "oauthapps"

var (
	tokenExchanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_exchanges_total",
		Help:      "Authorization code exchanges performed by the client app, by result",
	}, []string{"result"})

	challengeResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "challenge_resolutions_total",
		Help:      "Login and consent challenge outcomes, by kind and outcome",
	}, []string{"kind", "outcome"})

	adminRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "hydra_admin_request_duration_seconds",
		Help:      "Latency of Hydra admin API calls",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "result"})
)

// Result labels
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

func TokenExchange(result string) {
	tokenExchanges.WithLabelValues(result).Inc()
}

// ChallengeResolved records how a login or consent challenge was handled
// (skip, accept, reject, prompt, invalid_credentials).
func ChallengeResolved(kind, outcome string) {
	challengeResolutions.WithLabelValues(kind, outcome).Inc()
}

func ObserveAdminRequest(operation string, start time.Time, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	adminRequestDuration.WithLabelValues(operation, result).Observe(time.Since(start).Seconds())
}
