package security

import "net/http"

// Headers attaches standard security headers. The widget is embedded
// cross-origin, so frames are allowed from anywhere while sniffing and
// referrer leakage stay locked down.
type Headers struct {
	Enable bool
}

// Middleware applies the headers to each response.
func (h Headers) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.Enable {
			next.ServeHTTP(w, r)
			return
		}
		headers := w.Header()
		headers.Set("X-Content-Type-Options", "nosniff")
		headers.Set("Referrer-Policy", "no-referrer")
		headers.Set("Permissions-Policy", "geolocation=(), microphone=()")
		next.ServeHTTP(w, r)
	})
}
