package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ecohealth", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ecohealth", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	ChatRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ecohealth", Name: "chat_requests_total", Help: "Chat requests dispatched by domain and result."},
		[]string{"domain", "result"},
	)
	ProviderCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ecohealth", Name: "llm_provider_calls_total", Help: "LLM provider calls by provider and outcome (ok, blank, error)."},
		[]string{"provider", "outcome"},
	)
	ContextFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ecohealth", Name: "context_fetches_total", Help: "External context fetches by source and outcome."},
		[]string{"source", "outcome"},
	)
	ProxyErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ecohealth", Name: "gateway_proxy_errors_total", Help: "Gateway upstream failures by target."},
		[]string{"target"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(ChatRequests)
	reg.MustRegister(ProviderCalls)
	reg.MustRegister(ContextFetches)
	reg.MustRegister(ProxyErrors)
}
