package obs

import "context"

type matchedRouteKey struct{}

// WithMatchedRoute stores the matched router pattern on the context so the
// metrics, tracing, and logging layers all label with the same route.
func WithMatchedRoute(ctx context.Context, route string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, matchedRouteKey{}, route)
}

// MatchedRoute returns the stored route pattern, or empty.
func MatchedRoute(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if route, ok := ctx.Value(matchedRouteKey{}).(string); ok {
		return route
	}
	return ""
}
