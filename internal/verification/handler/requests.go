package handler

import (
	"encoding/base64"

	"github.com/rortizs/biometria-Sasvin/internal/geofence"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
)

// maxFrames bounds the probe size a kiosk may submit in one attempt.
const maxFrames = 10

// CheckRequest is the HTTP request body for POST /attendance/check-in and
// /check-out. Frames are base64-encoded captured images in capture order.
type CheckRequest struct {
	Frames            []string `json:"frames"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	DeviceFingerprint string   `json:"device_fingerprint,omitempty"`

	// Parsed values (populated by Validate)
	parsedFrames     [][]byte
	parsedCoordinate *geofence.Coordinate
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CheckRequest) Validate() error {
	if len(r.Frames) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "at least one frame is required")
	}
	if len(r.Frames) > maxFrames {
		return dErrors.Newf(dErrors.CodeInvalidInput, "at most %d frames per attempt", maxFrames)
	}

	r.parsedFrames = make([][]byte, len(r.Frames))
	for i, encoded := range r.Frames {
		frame, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return dErrors.Newf(dErrors.CodeInvalidInput, "frame %d is not valid base64", i)
		}
		r.parsedFrames[i] = frame
	}

	// Location is optional but must be complete and in range when sent.
	switch {
	case r.Latitude == nil && r.Longitude == nil:
	case r.Latitude == nil || r.Longitude == nil:
		return dErrors.New(dErrors.CodeInvalidInput, "latitude and longitude must be sent together")
	default:
		if *r.Latitude < -90 || *r.Latitude > 90 {
			return dErrors.New(dErrors.CodeInvalidInput, "latitude must be in [-90, 90]")
		}
		if *r.Longitude < -180 || *r.Longitude > 180 {
			return dErrors.New(dErrors.CodeInvalidInput, "longitude must be in [-180, 180]")
		}
		r.parsedCoordinate = &geofence.Coordinate{
			Latitude:  *r.Latitude,
			Longitude: *r.Longitude,
		}
	}

	if len(r.DeviceFingerprint) > 128 {
		return dErrors.New(dErrors.CodeInvalidInput, "device_fingerprint must be at most 128 characters")
	}
	return nil
}

// ParsedFrames returns the decoded probe frames.
func (r *CheckRequest) ParsedFrames() [][]byte {
	return r.parsedFrames
}

// ParsedCoordinate returns the validated coordinate, nil when omitted.
func (r *CheckRequest) ParsedCoordinate() *geofence.Coordinate {
	return r.parsedCoordinate
}
