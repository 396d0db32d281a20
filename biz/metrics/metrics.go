// Package metrics holds the auth counters exported next to the hertz server
// metrics on the same registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	LoginSuccess = "success"
	LoginInvalid = "invalid"
	LoginError   = "error"
)

var Registry = prometheus.NewRegistry()

var (
	loginTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_login_total",
		Help: "Credential verifications by result.",
	}, []string{"result"})

	tokenRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_token_rejected_total",
		Help: "Requests rejected by the authenticator, by reason.",
	}, []string{"reason"})

	passwordHashSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "auth_password_hash_seconds",
		Help:    "Time spent deriving password hashes.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	})
)

func init() {
	Registry.MustRegister(loginTotal, tokenRejectedTotal, passwordHashSeconds)
}

func Login(result string) {
	loginTotal.WithLabelValues(result).Inc()
}

func TokenRejected(reason string) {
	tokenRejectedTotal.WithLabelValues(reason).Inc()
}

// ObserveHash records the time since start. Use with defer.
func ObserveHash(start time.Time) {
	passwordHashSeconds.Observe(time.Since(start).Seconds())
}
