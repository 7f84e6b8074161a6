// Package metrics exposes Prometheus collectors for the LLM integration
// layer. Collectors register on the default registry at package init; the
// embedding application decides how and whether to serve them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for LLMCalls.
const (
	OutcomeSuccess   = "success"
	OutcomeFatal     = "fatal"
	OutcomeExhausted = "retries_exhausted"
	OutcomeCanceled  = "canceled"
)

var (
	// LLMCalls tracks finished model calls per operation and outcome
	LLMCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vesalius_llm_calls_total",
			Help: "Total number of model calls",
		},
		[]string{"operation", "outcome"},
	)

	// LLMRetries tracks backoff retries per operation
	LLMRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vesalius_llm_retries_total",
			Help: "Total number of retried model calls",
		},
		[]string{"operation"},
	)

	// LLMCallDuration tracks wall time per model call, retries included
	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vesalius_llm_call_duration_seconds",
			Help:    "Model call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// PromptTruncations tracks study material cut to fit its budget per source
	PromptTruncations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vesalius_prompt_truncations_total",
			Help: "Total number of source sections truncated to fit their character budget",
		},
		[]string{"source"},
	)

	// SafeDefaults tracks failures replaced by a safe default per operation
	SafeDefaults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vesalius_llm_safe_defaults_total",
			Help: "Total number of responses replaced by a safe default after a failure",
		},
		[]string{"operation"},
	)
)
