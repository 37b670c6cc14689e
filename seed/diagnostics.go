package seed

import "context"

type skipSlowQueryKey struct{}

// WithoutSlowQueryDetection returns a context under which Seed does not report
// slow statements. Bulk sample inserts use it.
func WithoutSlowQueryDetection(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipSlowQueryKey{}, true)
}

// SlowQueryDetectionSkipped reports whether ctx came from WithoutSlowQueryDetection.
func SlowQueryDetectionSkipped(ctx context.Context) bool {
	skip, _ := ctx.Value(skipSlowQueryKey{}).(bool)
	return skip
}
