package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ResponseTap wraps a ResponseWriter to observe the status code and the
// number of bytes sent to the client.
type ResponseTap struct {
	http.ResponseWriter
	code  int
	bytes int64
}

// TapResponse wraps w, defaulting the status to 200 for handlers that never
// call WriteHeader.
func TapResponse(w http.ResponseWriter) *ResponseTap {
	return &ResponseTap{ResponseWriter: w, code: http.StatusOK}
}

func (t *ResponseTap) WriteHeader(code int) {
	t.code = code
	t.ResponseWriter.WriteHeader(code)
}

func (t *ResponseTap) Write(p []byte) (int, error) {
	n, err := t.ResponseWriter.Write(p)
	t.bytes += int64(n)
	return n, err
}

// Code returns the response status code.
func (t *ResponseTap) Code() int { return t.code }

// Bytes returns the number of response body bytes written.
func (t *ResponseTap) Bytes() int64 { return t.bytes }

// routeFor picks the best route label for a request: the stored matched
// route, the live chi pattern, then a fallback.
func routeFor(r *http.Request, fallback string) string {
	if route := MatchedRoute(r.Context()); route != "" {
		return route
	}
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if pattern := rc.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return fallback
}

// MatchedRouteMiddleware records the matched chi pattern on the context
// before the inner middlewares run.
func MatchedRouteMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if rc := chi.RouteContext(ctx); rc != nil {
			if pattern := rc.RoutePattern(); pattern != "" {
				ctx = WithMatchedRoute(ctx, pattern)
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestMetrics instruments handlers with the request counter, latency
// histogram, and in-flight gauge.
type RequestMetrics struct {
	M *HTTPMetrics
}

// Middleware implements the chi middleware shape.
func (rm RequestMetrics) Middleware(next http.Handler) http.Handler {
	if rm.M == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tap := TapResponse(w)
		rm.M.InFlight.Inc()
		start := time.Now()
		next.ServeHTTP(tap, r)
		rm.M.InFlight.Dec()

		route := routeFor(r, "unknown")
		rm.M.ReqTotal.WithLabelValues(r.Method, route, strconv.Itoa(tap.Code())).Inc()
		rm.M.ReqDur.WithLabelValues(r.Method, route).Observe(DurationMillis(time.Since(start)))
	})
}

// TraceRequests opens a span per request, named after the matched route so
// all widget boots for different products share one span name.
func TraceRequests(next http.Handler) http.Handler {
	tracer := otel.Tracer("checkout-api/http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routeFor(r, r.URL.Path)
		ctx, span := tracer.Start(r.Context(), r.Method+" "+route)
		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", route),
			attribute.String("http.target", r.URL.Path),
		)

		tap := TapResponse(w)
		next.ServeHTTP(tap, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.status_code", tap.Code()))
		if tap.Code() >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(tap.Code()))
		}
		span.End()
	})
}
