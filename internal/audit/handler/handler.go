// Package handler exposes the forensic read surface over stored audit
// traces. Write access stays inside the verification pipeline; reviewers
// only ever list.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks TraceReader

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rortizs/biometria-Sasvin/internal/audit"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
	"github.com/rortizs/biometria-Sasvin/pkg/platform/httputil"
	"github.com/rortizs/biometria-Sasvin/pkg/requestcontext"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// TraceReader is the read side of the audit store the handler consumes.
type TraceReader interface {
	ListByEmployee(ctx context.Context, employeeID id.EmployeeID) ([]audit.Trace, error)
	ListRecent(ctx context.Context, limit int) ([]audit.Trace, error)
}

// Handler serves audit trace listings.
type Handler struct {
	reader TraceReader
	logger *slog.Logger
}

// New constructs an audit handler with its dependencies.
func New(reader TraceReader, logger *slog.Logger) *Handler {
	return &Handler{reader: reader, logger: logger}
}

// Register mounts the audit endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit/traces", h.HandleList)
}

// HandleList handles GET /audit/traces. With employee_id it returns that
// employee's traces; without it, the most recent traces up to limit.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var (
		traces []audit.Trace
		err    error
	)
	if raw := query.Get("employee_id"); raw != "" {
		employeeID, parseErr := id.ParseEmployeeID(raw)
		if parseErr != nil {
			httputil.WriteError(w, parseErr)
			return
		}
		traces, err = h.reader.ListByEmployee(ctx, employeeID)
	} else {
		limit := defaultListLimit
		if raw := query.Get("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil || limit < 1 || limit > maxListLimit {
				httputil.WriteError(w, dErrors.Newf(dErrors.CodeInvalidInput,
					"limit must be between 1 and %d", maxListLimit))
				return
			}
		}
		traces, err = h.reader.ListRecent(ctx, limit)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "list audit traces",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromTraces(traces))
}
