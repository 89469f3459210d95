package genai

import "errors"

var (
	// ErrNotReady indicates Complete was called before the model
	// finished loading. Callers are expected to check Ready or wait
	// on OnReady; there is no implicit queuing.
	ErrNotReady = errors.New("model not ready")

	// ErrUnavailable indicates the model backend is unreachable.
	ErrUnavailable = errors.New("model backend unavailable")

	// ErrTimeout indicates a generation request exceeded its timeout.
	ErrTimeout = errors.New("generation request timed out")

	// ErrInvalidOutput indicates the model response could not be
	// parsed into the expected structured format.
	ErrInvalidOutput = errors.New("invalid model output format")

	// ErrLoadFailed indicates model initialization exhausted its
	// retry budget.
	ErrLoadFailed = errors.New("model load failed")
)
