package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,RecordLister

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rortizs/biometria-Sasvin/internal/attendance"
	"github.com/rortizs/biometria-Sasvin/internal/verification"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
	"github.com/rortizs/biometria-Sasvin/pkg/platform/httputil"
	"github.com/rortizs/biometria-Sasvin/pkg/requestcontext"
)

// Service defines the interface for verification operations.
type Service interface {
	CheckIn(ctx context.Context, attempt verification.Attempt) (*verification.Result, error)
	CheckOut(ctx context.Context, attempt verification.Attempt) (*verification.Result, error)
}

// RecordLister is the read side the admin endpoints consume.
type RecordLister interface {
	List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error)
}

// Handler wires verification endpoints to the verification service.
type Handler struct {
	service Service
	lister  RecordLister
	logger  *slog.Logger
}

// New constructs a verification handler with its dependencies.
func New(service Service, lister RecordLister, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		lister:  lister,
		logger:  logger,
	}
}

// Register mounts verification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/attendance/check-in", h.HandleCheckIn)
	r.Post("/attendance/check-out", h.HandleCheckOut)
	r.Get("/attendance", h.HandleList)
	r.Get("/attendance/today", h.HandleListToday)
}

// HandleCheckIn handles POST /attendance/check-in requests.
func (h *Handler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	h.handleCheck(w, r, h.service.CheckIn)
}

// HandleCheckOut handles POST /attendance/check-out requests.
func (h *Handler) HandleCheckOut(w http.ResponseWriter, r *http.Request) {
	h.handleCheck(w, r, h.service.CheckOut)
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request, op func(context.Context, verification.Attempt) (*verification.Result, error)) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CheckRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	fingerprint := req.DeviceFingerprint
	if fingerprint == "" {
		fingerprint = requestcontext.DeviceID(ctx)
	}

	attempt := verification.Attempt{
		ID:                id.NewAttemptID(),
		Frames:            req.ParsedFrames(),
		Coordinate:        req.ParsedCoordinate(),
		DeviceFingerprint: fingerprint,
		At:                requestcontext.Now(ctx),
	}

	result, err := op(ctx, attempt)
	if err != nil {
		h.logger.ErrorContext(ctx, "verification failed",
			"request_id", requestID,
			"attempt_id", attempt.ID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "verification completed",
		"request_id", requestID,
		"attempt_id", result.AttemptID.String(),
		"accepted", result.Accepted,
		"reason", string(result.Outcome),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleList handles GET /attendance requests with optional date, range,
// employee and status filters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.list(w, r, filter)
}

// HandleListToday handles GET /attendance/today requests.
func (h *Handler) HandleListToday(w http.ResponseWriter, r *http.Request) {
	today := attendance.DateOf(requestcontext.Now(r.Context()))
	h.list(w, r, attendance.Filter{From: today, To: today})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, filter attendance.Filter) {
	ctx := r.Context()

	records, err := h.lister.List(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "list attendance records",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecords(records))
}

func filterFromQuery(r *http.Request) (attendance.Filter, error) {
	query := r.URL.Query()
	var filter attendance.Filter

	if date := query.Get("date"); date != "" {
		parsed, err := parseDate(date)
		if err != nil {
			return filter, err
		}
		filter.From, filter.To = parsed, parsed
	} else {
		if from := query.Get("from"); from != "" {
			parsed, err := parseDate(from)
			if err != nil {
				return filter, err
			}
			filter.From = parsed
		}
		if to := query.Get("to"); to != "" {
			parsed, err := parseDate(to)
			if err != nil {
				return filter, err
			}
			filter.To = parsed
		}
	}

	if raw := query.Get("employee_id"); raw != "" {
		employeeID, err := id.ParseEmployeeID(raw)
		if err != nil {
			return filter, err
		}
		filter.EmployeeID = &employeeID
	}

	if raw := query.Get("status"); raw != "" {
		status := attendance.Status(raw)
		switch status {
		case attendance.StatusPresent, attendance.StatusLate, attendance.StatusAbsent, attendance.StatusEarlyLeave:
			filter.Status = &status
		default:
			return filter, dErrors.Newf(dErrors.CodeInvalidInput, "unknown status %q", raw)
		}
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return filter, dErrors.New(dErrors.CodeInvalidInput, "limit must be a positive integer")
		}
		filter.Limit = limit
	}

	return filter, nil
}

func parseDate(raw string) (attendance.Date, error) {
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "date %q must be YYYY-MM-DD", raw)
	}
	return attendance.Date(raw), nil
}
