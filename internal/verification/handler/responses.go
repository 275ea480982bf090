package handler

import (
	"time"

	"github.com/rortizs/biometria-Sasvin/internal/attendance"
	"github.com/rortizs/biometria-Sasvin/internal/verification"
)

// CheckResponse is the HTTP response for check-in and check-out.
type CheckResponse struct {
	AttemptID        string       `json:"attempt_id"`
	Accepted         bool         `json:"accepted"`
	Reason           string       `json:"reason"`
	EmployeeID       string       `json:"employee_id,omitempty"`
	RecordID         string       `json:"record_id,omitempty"`
	Status           string       `json:"status,omitempty"`
	MatchConfidence  *float64     `json:"match_confidence,omitempty"`
	SpoofProbability *float64     `json:"spoof_probability,omitempty"`
	WithinSite       *bool        `json:"within_site,omitempty"`
	DistanceMeters   *float64     `json:"distance_meters,omitempty"`
	FraudFlags       []FlagDetail `json:"fraud_flags,omitempty"`
	DecidedAt        time.Time    `json:"decided_at"`
}

// FlagDetail is the wire form of a raised fraud flag.
type FlagDetail struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
}

// FromResult converts a domain Result to an HTTP response.
func FromResult(result *verification.Result) *CheckResponse {
	resp := &CheckResponse{
		AttemptID:        result.AttemptID.String(),
		Accepted:         result.Accepted,
		Reason:           string(result.Outcome),
		Status:           string(result.Status),
		MatchConfidence:  result.MatchConfidence,
		SpoofProbability: result.SpoofProbability,
		WithinSite:       result.WithinSite,
		DistanceMeters:   result.DistanceMeters,
		DecidedAt:        result.DecidedAt,
	}
	if !result.EmployeeID.IsNil() {
		resp.EmployeeID = result.EmployeeID.String()
	}
	if result.RecordID != nil {
		resp.RecordID = result.RecordID.String()
	}
	for _, flag := range result.FraudFlags {
		resp.FraudFlags = append(resp.FraudFlags, FlagDetail{
			Kind:     string(flag.Kind),
			Severity: string(flag.Severity),
		})
	}
	return resp
}

// RecordResponse is one attendance record in the admin listing.
type RecordResponse struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	Date           string     `json:"date"`
	Status         string     `json:"status"`
	CheckInAt      time.Time  `json:"check_in_at"`
	CheckOutAt     *time.Time `json:"check_out_at,omitempty"`
	CheckInDevice  string     `json:"check_in_device,omitempty"`
	CheckOutDevice string     `json:"check_out_device,omitempty"`
	GeoValidated   bool       `json:"geo_validated"`
}

// ListResponse is the admin listing envelope.
type ListResponse struct {
	Records []RecordResponse `json:"records"`
	Count   int              `json:"count"`
}

// FromRecords converts domain records to the admin listing response.
func FromRecords(records []attendance.Record) *ListResponse {
	out := &ListResponse{Records: make([]RecordResponse, 0, len(records)), Count: len(records)}
	for _, record := range records {
		out.Records = append(out.Records, RecordResponse{
			ID:             record.ID.String(),
			EmployeeID:     record.EmployeeID.String(),
			Date:           string(record.Date),
			Status:         string(record.Status),
			CheckInAt:      record.CheckInAt,
			CheckOutAt:     record.CheckOutAt,
			CheckInDevice:  record.CheckInDevice,
			CheckOutDevice: record.CheckOutDevice,
			GeoValidated:   record.GeoValidated,
		})
	}
	return out
}
