package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AuthRegistrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "recipebook", Name: "auth_register_total", Help: "Number of registration attempts by outcome."},
		[]string{"outcome"},
	)
	AuthLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "recipebook", Name: "auth_login_total", Help: "Number of login attempts by outcome."},
		[]string{"outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "recipebook", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "recipebook", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(AuthRegistrations)
	reg.MustRegister(AuthLogins)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
