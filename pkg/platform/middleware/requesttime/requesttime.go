// Package requesttime pins a single "now" per HTTP request. Every
// timestamp taken during one attempt (attempt time, trace, record) reads
// the same instant, and tests inject a fixed time through
// requestcontext.WithTime.
package requesttime

import (
	"net/http"
	"time"

	"github.com/rortizs/biometria-Sasvin/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request and
// stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
