package tutor

import (
	"context"

	"github.com/vesaliusapp/vesalius-llm/internal/domain"
)

// Service defines the interface for the AI anatomy tutor. It is the boundary
// between the application core and the external LLM provider, following the
// hexagonal architecture pattern: the application depends on this interface,
// and provider adapters implement it.
//
// All methods honor context cancellation, including during retry backoff
// waits. Implementations must be safe for concurrent use.
type Service interface {
	// GenerateQuestions creates a multiple-choice quiz for the requested
	// topic, difficulty mix, and question count, grounded in the learner's
	// own study material when provided.
	//
	// This is the primary operation: every failure propagates to the caller.
	// Errors wrap the sentinels in errors.go; notably ErrInvalidResponse
	// when the model's answer cannot be parsed and ErrQuotaExhausted or
	// ErrServiceOverloaded once retries are exhausted.
	GenerateQuestions(ctx context.Context, req domain.GenerationRequest) (*domain.QuestionSet, error)

	// CheckStation verifies a station photograph and, when the image shows
	// identifiable anatomical material, returns follow-up questions grounded
	// in it.
	//
	// On unparseable or blocked responses the method returns
	// domain.EmptyStationReport() with a nil error so a single bad image
	// never breaks the session flow. Quota and overload failures still
	// propagate, halting any caller loop that would otherwise burn through
	// the remaining quota.
	CheckStation(ctx context.Context, req domain.StationCheckRequest) (*domain.StationReport, error)

	// AnalyzePerformance reviews a learner's per-topic results and returns
	// structured mentor feedback.
	//
	// Follows the same fallback policy as CheckStation: a safe default
	// report on parse failures, propagation of quota and overload errors.
	AnalyzePerformance(ctx context.Context, summary domain.PerformanceSummary) (*domain.MentorReport, error)

	// Chat continues a free-form tutoring conversation and returns the
	// mentor's reply.
	//
	// Follows the same fallback policy as CheckStation: a canned reply on
	// failures, propagation of quota and overload errors.
	Chat(ctx context.Context, req domain.ChatRequest) (string, error)
}
