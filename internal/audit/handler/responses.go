package handler

import (
	"time"

	"github.com/rortizs/biometria-Sasvin/internal/audit"
)

// TraceResponse is one verification trace in the forensic listing.
type TraceResponse struct {
	AttemptID        string    `json:"attempt_id"`
	Direction        string    `json:"direction"`
	EmployeeID       string    `json:"employee_id,omitempty"`
	DeviceID         string    `json:"device_id,omitempty"`
	RequestID        string    `json:"request_id,omitempty"`
	ClientIP         string    `json:"client_ip,omitempty"`
	UserAgent        string    `json:"user_agent,omitempty"`
	StartedAt        time.Time `json:"started_at"`
	CompletedAt      time.Time `json:"completed_at"`
	StepsRun         []string  `json:"steps_run"`
	SpoofProbability *float64  `json:"spoof_probability,omitempty"`
	MatchConfidence  *float64  `json:"match_confidence,omitempty"`
	GeoVerdict       string    `json:"geo_verdict,omitempty"`
	WithinSite       *bool     `json:"within_site,omitempty"`
	DistanceMeters   *float64  `json:"distance_meters,omitempty"`
	FraudFlags       []string  `json:"fraud_flags,omitempty"`
	Outcome          string    `json:"outcome"`
	Accepted         bool      `json:"accepted"`
}

// TraceListResponse is the forensic listing envelope.
type TraceListResponse struct {
	Traces []TraceResponse `json:"traces"`
	Count  int             `json:"count"`
}

// FromTraces converts stored traces to the listing response.
func FromTraces(traces []audit.Trace) *TraceListResponse {
	out := &TraceListResponse{Traces: make([]TraceResponse, 0, len(traces)), Count: len(traces)}
	for _, trace := range traces {
		steps := make([]string, len(trace.StepsRun))
		for i, step := range trace.StepsRun {
			steps[i] = string(step)
		}
		resp := TraceResponse{
			AttemptID:        trace.AttemptID.String(),
			Direction:        trace.Direction,
			DeviceID:         trace.DeviceID,
			RequestID:        trace.RequestID,
			ClientIP:         trace.ClientIP,
			UserAgent:        trace.UserAgent,
			StartedAt:        trace.StartedAt,
			CompletedAt:      trace.CompletedAt,
			StepsRun:         steps,
			SpoofProbability: trace.SpoofProbability,
			MatchConfidence:  trace.MatchConfidence,
			GeoVerdict:       trace.GeoVerdict,
			WithinSite:       trace.WithinSite,
			DistanceMeters:   trace.DistanceMeters,
			FraudFlags:       trace.FraudFlags,
			Outcome:          trace.Outcome,
			Accepted:         trace.Accepted,
		}
		if !trace.EmployeeID.IsNil() {
			resp.EmployeeID = trace.EmployeeID.String()
		}
		out.Traces = append(out.Traces, resp)
	}
	return out
}
