package common

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP resolves the address the rate limiter keys on. The widget sits
// behind the store's reverse proxy, so forwarded headers are consulted
// first, but only values that parse as an IP are trusted.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			candidate := strings.TrimSpace(part)
			if net.ParseIP(candidate) != nil {
				return candidate
			}
		}
	}
	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(real) != nil {
		return real
	}
	remote := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(remote); err == nil {
		return host
	}
	return remote
}

// FormValue returns the trimmed value of a posted form field.
func FormValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}
