package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/rortizs/biometria-Sasvin/internal/audit"
	"github.com/rortizs/biometria-Sasvin/internal/audit/handler/mocks"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
)

type AuditHandlerSuite struct {
	suite.Suite
}

func TestAuditHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuditHandlerSuite))
}

func newTestHandler(t *testing.T) (chi.Router, *mocks.MockTraceReader) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockReader := mocks.NewMockTraceReader(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := New(mockReader, logger)
	r := chi.NewRouter()
	handler.Register(r)
	return r, mockReader
}

func sampleTrace(employeeID id.EmployeeID) audit.Trace {
	spoof := 0.12
	return audit.Trace{
		AttemptID:        id.NewAttemptID(),
		Direction:        "check_in",
		EmployeeID:       employeeID,
		DeviceID:         "kiosk-front-01",
		ClientIP:         "203.0.113.9",
		UserAgent:        "KioskApp/2.1",
		StartedAt:        time.Date(2026, 3, 9, 8, 2, 0, 0, time.UTC),
		CompletedAt:      time.Date(2026, 3, 9, 8, 2, 1, 0, time.UTC),
		StepsRun:         []audit.Step{audit.StepLiveness, audit.StepGeofence, audit.StepMatch, audit.StepDecision},
		SpoofProbability: &spoof,
		Outcome:          "ACCEPTED",
		Accepted:         true,
	}
}

func (s *AuditHandlerSuite) TestListByEmployee() {
	router, mockReader := newTestHandler(s.T())

	employeeID := id.EmployeeID(uuid.New())
	mockReader.EXPECT().ListByEmployee(gomock.Any(), employeeID).
		Return([]audit.Trace{sampleTrace(employeeID)}, nil)

	req := httptest.NewRequest(http.MethodGet, "/audit/traces?employee_id="+employeeID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.EqualValues(1, resp["count"])
	traces := resp["traces"].([]any)
	s.Require().Len(traces, 1)
	trace := traces[0].(map[string]any)
	s.Equal(employeeID.String(), trace["employee_id"])
	s.Equal("ACCEPTED", trace["outcome"])
	s.Equal("KioskApp/2.1", trace["user_agent"])
	s.Equal(true, trace["accepted"])
}

func (s *AuditHandlerSuite) TestListRecentDefaultLimit() {
	router, mockReader := newTestHandler(s.T())

	mockReader.EXPECT().ListRecent(gomock.Any(), defaultListLimit).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/audit/traces", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.EqualValues(0, resp["count"])
}

func (s *AuditHandlerSuite) TestListRecentExplicitLimit() {
	router, mockReader := newTestHandler(s.T())

	mockReader.EXPECT().ListRecent(gomock.Any(), 25).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/audit/traces?limit=25", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *AuditHandlerSuite) TestListRejectsBadQuery() {
	tests := []struct {
		name  string
		query string
	}{
		{name: "malformed employee id", query: "?employee_id=not-a-uuid"},
		{name: "zero limit", query: "?limit=0"},
		{name: "limit over cap", query: "?limit=501"},
		{name: "non-numeric limit", query: "?limit=many"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			router, _ := newTestHandler(s.T())

			req := httptest.NewRequest(http.MethodGet, "/audit/traces"+tt.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			s.Equal(http.StatusBadRequest, rec.Code)
		})
	}
}

func (s *AuditHandlerSuite) TestStoreErrorMapsToStatus() {
	router, mockReader := newTestHandler(s.T())

	mockReader.EXPECT().ListRecent(gomock.Any(), defaultListLimit).
		Return(nil, dErrors.New(dErrors.CodeUnavailable, "trace store unreachable"))

	req := httptest.NewRequest(http.MethodGet, "/audit/traces", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusServiceUnavailable, rec.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("unavailable", resp["error"])
}
