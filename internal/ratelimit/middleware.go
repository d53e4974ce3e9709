package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ronginpran/checkout-api/internal/common"
)

// Handler throttles requests before they reach the wrapped handler. The
// order endpoint is public and unauthenticated, so it is keyed per client
// IP. A failing limiter store never blocks orders.
type Handler struct {
	Window  SlidingWindow
	Key     func(*http.Request) string
	Every   time.Duration
	Max     int
	OnError func(error)
}

// Middleware implements the chi middleware shape.
func (h Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Key == nil {
			next.ServeHTTP(w, r)
			return
		}
		allowed, remaining, resetAt, err := h.Window.Allow(r.Context(), h.Key(r), h.Every, h.Max)
		if err != nil {
			if h.OnError != nil {
				h.OnError(err)
			}
			next.ServeHTTP(w, r)
			return
		}

		headers := w.Header()
		headers.Set("X-RateLimit-Limit", strconv.Itoa(max(h.Max, 0)))
		headers.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			headers.Set("Retry-After", strconv.Itoa(max(int(time.Until(resetAt).Seconds()), 0)))
			common.JSONError(w, http.StatusTooManyRequests, "RATE_LIMITED",
				"Too many orders from this address, please try again shortly", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
