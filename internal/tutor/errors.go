package tutor

import (
	"errors"
	"fmt"
)

// Common errors returned by tutor service implementations
var (
	// ErrInvalidConfig is returned when the service configuration is invalid,
	// for example a missing API credential or model name. It is detected at
	// construction time, before any network call.
	ErrInvalidConfig = errors.New("invalid tutor service configuration")

	// ErrGenerationFailed is returned when a generation call fails for any
	// general reason not covered by a more specific error below.
	ErrGenerationFailed = errors.New("failed to generate tutor content")

	// ErrInvalidResponse is returned when the model call succeeded but the
	// response body could not be parsed into the expected structure.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model refuses a request via its
	// safety filters. Retrying the same content will not help.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientService marks the family of temporary service failures:
	// rate limits, quota exhaustion, and overload. ErrQuotaExhausted and
	// ErrServiceOverloaded both wrap it, so errors.Is(err,
	// ErrTransientService) identifies the whole family.
	ErrTransientService = errors.New("transient language model service failure")
)

// Terminal transient errors, produced once retries are exhausted. Their
// messages are written for end users; callers may surface them directly.
var (
	// ErrQuotaExhausted is returned when the service keeps answering with
	// quota or resource-exhaustion failures after all retries.
	ErrQuotaExhausted = fmt.Errorf(
		"%w: the daily request quota is used up; wait for it to reset or upgrade your plan",
		ErrTransientService)

	// ErrServiceOverloaded is returned when the service keeps answering with
	// rate-limit or overload failures after all retries.
	ErrServiceOverloaded = fmt.Errorf(
		"%w: the model is overloaded right now; please try again in a moment",
		ErrTransientService)
)
