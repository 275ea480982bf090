// Package requestid assigns every request a correlation ID that flows
// through logs, audit traces, and the response.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rortizs/biometria-Sasvin/pkg/requestcontext"
)

const headerName = "X-Request-ID"

// Middleware honors an incoming X-Request-ID, minting one otherwise, and
// echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerName)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set(headerName, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
