// Package device authenticates kiosk devices. Kiosks hold a long-lived
// HMAC-signed token minted at provisioning time; the middleware validates
// it and injects the device identifier for the fraud rules and the audit
// trace.
package device

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rortizs/biometria-Sasvin/pkg/requestcontext"
)

// Claims are the claims a provisioned kiosk token carries. Subject is the
// device identifier.
type Claims struct {
	SiteName string `json:"site_name,omitempty"`
	jwt.RegisteredClaims
}

// Validator validates kiosk device tokens.
type Validator struct {
	key []byte
}

// NewValidator creates a validator over the shared HMAC signing key.
func NewValidator(key []byte) *Validator {
	return &Validator{key: key}
}

// ValidateToken parses and verifies a kiosk token, returning its claims.
func (v *Validator) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("parse device token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid device token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("device token missing subject")
	}
	return claims, nil
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireDevice enforces a valid kiosk token on the verification
// endpoints and injects the device identifier into the context.
func RequireDevice(validator *Validator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				logger.WarnContext(ctx, "unauthorized device - missing token",
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized device - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired device token")
				return
			}

			ctx = requestcontext.WithDeviceID(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
