// Package apperr defines the error kinds shared across the quiz pipeline.
// Callers wrap a kind with fmt.Errorf("%w: ...", apperr.ErrX) and test with
// errors.Is.
package apperr

import "errors"

var (
	// ErrInvalidArgument marks malformed input such as a video URL without a
	// v= parameter or a non-positive chunk size.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnavailable marks a collaborator failure: transcript fetch errors,
	// model call failures, empty or safety-blocked model output.
	ErrUnavailable = errors.New("unavailable")

	// ErrInsufficientContent marks a summary too short to build a quiz from.
	ErrInsufficientContent = errors.New("insufficient content")

	// ErrGenerationShortfall marks a generation that produced fewer
	// questions than a quiz needs.
	ErrGenerationShortfall = errors.New("generation shortfall")

	// ErrParseMismatch marks an inconsistency in parsed quiz text. The parser
	// repairs these instead of returning them; the kind exists so repairs
	// can be logged and counted uniformly.
	ErrParseMismatch = errors.New("parse mismatch")
)

// Kind returns a short label for the error kind wrapped by err, or "error"
// when err carries none of the known kinds.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidArgument):
		return "InvalidArgument"
	case errors.Is(err, ErrUnavailable):
		return "Unavailable"
	case errors.Is(err, ErrInsufficientContent):
		return "InsufficientContent"
	case errors.Is(err, ErrGenerationShortfall):
		return "GenerationShortfall"
	case errors.Is(err, ErrParseMismatch):
		return "ParseMismatch"
	default:
		return "error"
	}
}
