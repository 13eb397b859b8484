package middleware

import (
	"io"
	"net/http"
)

// DefaultMaxBodyBytes caps coach and MCP request bodies.
const DefaultMaxBodyBytes int64 = 1 << 20

// LimitAndDrainRequest caps the request body at maxBodyBytes for the handlers,
// then drains what is left of it and closes it once they are done.
// A non positive maxBodyBytes falls back to DefaultMaxBodyBytes.
func LimitAndDrainRequest(maxBodyBytes int64) func(next http.Handler) http.Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			next.ServeHTTP(w, r)

			// bounded by the reader above
			_, _ = io.Copy(io.Discard, r.Body)
			_ = r.Body.Close()
		})
	}
}
