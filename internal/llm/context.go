package llm

import "context"

// purposeKey carries the label recorded with each LLM event, such as
// "summary" or "quiz-gen".
type purposeKey struct{}

// UnknownPurpose is recorded for calls made without WithPurpose.
const UnknownPurpose = "unknown"

// WithPurpose labels LLM calls made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or UnknownPurpose.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return UnknownPurpose
}
