package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/rortizs/biometria-Sasvin/internal/attendance"
	"github.com/rortizs/biometria-Sasvin/internal/fraud"
	"github.com/rortizs/biometria-Sasvin/internal/verification"
	"github.com/rortizs/biometria-Sasvin/internal/verification/handler/mocks"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
	"github.com/rortizs/biometria-Sasvin/pkg/requestcontext"
)

type VerificationHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *VerificationHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestVerificationHandlerSuite(t *testing.T) {
	suite.Run(t, new(VerificationHandlerSuite))
}

func newTestHandler(t *testing.T) (chi.Router, *mocks.MockService, *mocks.MockRecordLister) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	mockLister := mocks.NewMockRecordLister(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := New(mockService, mockLister, logger)
	r := chi.NewRouter()
	handler.Register(r)
	return r, mockService, mockLister
}

func checkBody(t *testing.T, frames int) []byte {
	t.Helper()
	encoded := make([]string, frames)
	for i := range encoded {
		encoded[i] = base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, byte(i)})
	}
	lat, lng := 14.6349, -90.5069
	body, err := json.Marshal(CheckRequest{
		Frames:            encoded,
		Latitude:          &lat,
		Longitude:         &lng,
		DeviceFingerprint: "kiosk-front-01",
	})
	require.NoError(t, err)
	return body
}

func (s *VerificationHandlerSuite) TestCheckInAccepted() {
	router, mockService, _ := newTestHandler(s.T())

	attemptAt := time.Date(2026, 3, 9, 8, 2, 0, 0, time.UTC)
	employeeID := id.EmployeeID(uuid.New())
	recordID := id.NewRecordID()
	confidence := 0.91

	mockService.EXPECT().CheckIn(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, attempt verification.Attempt) (*verification.Result, error) {
			s.Require().False(attempt.ID.IsNil())
			s.Require().Len(attempt.Frames, 2)
			s.Require().NotNil(attempt.Coordinate)
			s.Equal(14.6349, attempt.Coordinate.Latitude)
			s.Equal("kiosk-front-01", attempt.DeviceFingerprint)
			s.Equal(attemptAt, attempt.At)
			return &verification.Result{
				AttemptID:       attempt.ID,
				Direction:       verification.DirectionCheckIn,
				Outcome:         verification.ReasonAccepted,
				Accepted:        true,
				EmployeeID:      employeeID,
				RecordID:        &recordID,
				Status:          attendance.StatusPresent,
				MatchConfidence: &confidence,
				DecidedAt:       attemptAt,
			}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", bytes.NewReader(checkBody(s.T(), 2)))
	req = req.WithContext(requestcontext.WithTime(req.Context(), attemptAt))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), true, resp["accepted"])
	assert.Equal(s.T(), "ACCEPTED", resp["reason"])
	assert.Equal(s.T(), employeeID.String(), resp["employee_id"])
	assert.Equal(s.T(), recordID.String(), resp["record_id"])
	assert.Equal(s.T(), "present", resp["status"])
	assert.InDelta(s.T(), 0.91, resp["match_confidence"].(float64), 1e-9)
}

func (s *VerificationHandlerSuite) TestCheckInRejectionIsStillOK() {
	router, mockService, _ := newTestHandler(s.T())

	spoof := 0.87
	mockService.EXPECT().CheckIn(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, attempt verification.Attempt) (*verification.Result, error) {
			return &verification.Result{
				AttemptID:        attempt.ID,
				Direction:        verification.DirectionCheckIn,
				Outcome:          verification.ReasonSpoofSuspected,
				SpoofProbability: &spoof,
				DecidedAt:        attempt.At,
			}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", bytes.NewReader(checkBody(s.T(), 1)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), false, resp["accepted"])
	assert.Equal(s.T(), "SPOOF_SUSPECTED", resp["reason"])
	assert.InDelta(s.T(), 0.87, resp["spoof_probability"].(float64), 1e-9)
	_, hasEmployee := resp["employee_id"]
	assert.False(s.T(), hasEmployee)
}

func (s *VerificationHandlerSuite) TestCheckOutFraudFlagsOnWire() {
	router, mockService, _ := newTestHandler(s.T())

	employeeID := id.EmployeeID(uuid.New())
	mockService.EXPECT().CheckOut(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, attempt verification.Attempt) (*verification.Result, error) {
			return &verification.Result{
				AttemptID:  attempt.ID,
				Direction:  verification.DirectionCheckOut,
				Outcome:    verification.ReasonFraudSuspected,
				EmployeeID: employeeID,
				FraudFlags: []fraud.Flag{{
					Kind:     fraud.KindImpossibleTravel,
					Severity: fraud.SeverityCritical,
				}},
				DecidedAt: attempt.At,
			}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/attendance/check-out", bytes.NewReader(checkBody(s.T(), 1)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "FRAUD_SUSPECTED", resp["reason"])
	flags := resp["fraud_flags"].([]any)
	require.Len(s.T(), flags, 1)
	flag := flags[0].(map[string]any)
	assert.Equal(s.T(), "impossible_travel", flag["kind"])
	assert.Equal(s.T(), "critical", flag["severity"])
}

func (s *VerificationHandlerSuite) TestCheckInFallsBackToDeviceContext() {
	router, mockService, _ := newTestHandler(s.T())

	mockService.EXPECT().CheckIn(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, attempt verification.Attempt) (*verification.Result, error) {
			s.Equal("kiosk-token-device", attempt.DeviceFingerprint)
			return &verification.Result{
				AttemptID: attempt.ID,
				Outcome:   verification.ReasonFaceNotRecognized,
				DecidedAt: attempt.At,
			}, nil
		})

	body, err := json.Marshal(CheckRequest{
		Frames: []string{base64.StdEncoding.EncodeToString([]byte("frame"))},
	})
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", bytes.NewReader(body))
	req = req.WithContext(requestcontext.WithDeviceID(req.Context(), "kiosk-token-device"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *VerificationHandlerSuite) TestCheckInValidation() {
	tests := []struct {
		name string
		body CheckRequest
	}{
		{name: "no frames", body: CheckRequest{}},
		{name: "bad base64", body: CheckRequest{Frames: []string{"not-base64!!"}}},
		{
			name: "lone latitude",
			body: CheckRequest{
				Frames:   []string{base64.StdEncoding.EncodeToString([]byte("frame"))},
				Latitude: ptr(14.6),
			},
		},
		{
			name: "latitude out of range",
			body: CheckRequest{
				Frames:    []string{base64.StdEncoding.EncodeToString([]byte("frame"))},
				Latitude:  ptr(99.0),
				Longitude: ptr(-90.5),
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			router, _, _ := newTestHandler(s.T())

			body, err := json.Marshal(tt.body)
			require.NoError(s.T(), err)

			req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		})
	}
}

func (s *VerificationHandlerSuite) TestServiceErrorMapsToStatus() {
	router, mockService, _ := newTestHandler(s.T())

	mockService.EXPECT().CheckIn(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeUnavailable, "liveness scorer unreachable"))

	req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", bytes.NewReader(checkBody(s.T(), 1)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusServiceUnavailable, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "unavailable", resp["error"])
}

func (s *VerificationHandlerSuite) TestListWithFilters() {
	router, _, mockLister := newTestHandler(s.T())

	employeeID := id.EmployeeID(uuid.New())
	checkedIn := time.Date(2026, 3, 9, 8, 31, 0, 0, time.UTC)
	mockLister.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, filter attendance.Filter) ([]attendance.Record, error) {
			s.Equal(attendance.Date("2026-03-09"), filter.From)
			s.Equal(attendance.Date("2026-03-09"), filter.To)
			s.Require().NotNil(filter.EmployeeID)
			s.Equal(employeeID, *filter.EmployeeID)
			s.Require().NotNil(filter.Status)
			s.Equal(attendance.StatusLate, *filter.Status)
			s.Equal(25, filter.Limit)
			return []attendance.Record{{
				ID:           id.NewRecordID(),
				EmployeeID:   employeeID,
				Date:         "2026-03-09",
				Status:       attendance.StatusLate,
				CheckInAt:    checkedIn,
				GeoValidated: true,
			}}, nil
		})

	target := "/attendance?date=2026-03-09&employee_id=" + employeeID.String() + "&status=late&limit=25"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), float64(1), resp["count"])
	records := resp["records"].([]any)
	record := records[0].(map[string]any)
	assert.Equal(s.T(), employeeID.String(), record["employee_id"])
	assert.Equal(s.T(), "late", record["status"])
	assert.Equal(s.T(), true, record["geo_validated"])
	_, hasCheckOut := record["check_out_at"]
	assert.False(s.T(), hasCheckOut)
}

func (s *VerificationHandlerSuite) TestListRejectsBadQuery() {
	tests := []struct {
		name   string
		target string
	}{
		{name: "bad date", target: "/attendance?date=09-03-2026"},
		{name: "bad employee id", target: "/attendance?employee_id=not-a-uuid"},
		{name: "unknown status", target: "/attendance?status=vacation"},
		{name: "non-positive limit", target: "/attendance?limit=0"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			router, _, _ := newTestHandler(s.T())

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		})
	}
}

func (s *VerificationHandlerSuite) TestListTodayUsesRequestTime() {
	router, _, mockLister := newTestHandler(s.T())

	now := time.Date(2026, 3, 9, 17, 45, 0, 0, time.UTC)
	mockLister.EXPECT().List(gomock.Any(), attendance.Filter{From: "2026-03-09", To: "2026-03-09"}).
		Return([]attendance.Record{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/attendance/today", nil)
	req = req.WithContext(requestcontext.WithTime(req.Context(), now))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), float64(0), resp["count"])
}

func ptr(v float64) *float64 { return &v }
