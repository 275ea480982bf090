package device

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rortizs/biometria-Sasvin/pkg/requestcontext"
)

var signingKey = []byte("test-device-signing-key")

func mintToken(t *testing.T, key []byte, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		SiteName: "Oficina Central",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func protectedEndpoint(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var seenDevice string
	validator := NewValidator(signingKey)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := RequireDevice(validator, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenDevice = requestcontext.DeviceID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &seenDevice
}

func TestRequireDeviceInjectsDeviceID(t *testing.T) {
	handler, seenDevice := protectedEndpoint(t)

	req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, signingKey, "kiosk-front-01", time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "kiosk-front-01", *seenDevice)
}

func TestRequireDeviceRejections(t *testing.T) {
	const (
		missingHeader = "Missing or invalid Authorization header"
		invalidToken  = "Invalid or expired device token"
	)
	tests := []struct {
		name     string
		header   string
		wantDesc string
	}{
		{name: "missing header", header: "", wantDesc: missingHeader},
		{name: "not bearer", header: "Basic a2lvc2s=", wantDesc: missingHeader},
		{name: "garbage token", header: "Bearer not.a.jwt", wantDesc: invalidToken},
		{name: "wrong key", header: "Bearer " + mintToken(t, []byte("other-key"), "kiosk-front-01", time.Now().Add(time.Hour)), wantDesc: invalidToken},
		{name: "expired", header: "Bearer " + mintToken(t, signingKey, "kiosk-front-01", time.Now().Add(-time.Hour)), wantDesc: invalidToken},
		{name: "no subject", header: "Bearer " + mintToken(t, signingKey, "", time.Now().Add(time.Hour)), wantDesc: invalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, seenDevice := protectedEndpoint(t)

			req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Empty(t, *seenDevice)
			assert.JSONEq(t, `{"error":"unauthorized","error_description":"`+tt.wantDesc+`"}`, w.Body.String())
		})
	}
}
