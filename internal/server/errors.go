package server

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/xirr/internal/models"
	"github.com/bobmcallan/xirr/internal/payload"
	"github.com/bobmcallan/xirr/internal/payments"
	"github.com/bobmcallan/xirr/internal/xirr"
)

// Error codes returned in ErrorResponse.Code.
const (
	codeBadRequest      = "bad_request"
	codeTypeMismatch    = "type_mismatch"
	codeDateParse       = "date_parse"
	codeInvalidPayments = "invalid_payments"
	codeInvalidOption   = "invalid_option"
	codeInvalidSchedule = "invalid_schedule"
	codeNotFound        = "not_found"
	codeNoConvergence   = "no_convergence"
	codeRateLimited     = "rate_limited"
	codeInternal        = "internal"
)

// ConvergenceResponse is the 422 body for a solver that gave up.
type ConvergenceResponse struct {
	ErrorResponse
	Reason     string  `json:"reason"`
	Iterations int     `json:"iterations"`
	LastRate   float64 `json:"last_rate"`
}

// writeServiceError maps a service error to its HTTP status and code.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var ce *xirr.ConvergenceError
	if errors.As(err, &ce) {
		WriteJSON(w, http.StatusUnprocessableEntity, ConvergenceResponse{
			ErrorResponse: ErrorResponse{Error: err.Error(), Code: codeNoConvergence},
			Reason:        string(ce.Reason),
			Iterations:    ce.Iterations,
			LastRate:      ce.Rate,
		})
		return
	}

	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("Request failed")
		WriteErrorWithCode(w, status, "Internal server error", code)
		return
	}
	WriteErrorWithCode(w, status, err.Error(), code)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, payments.ErrTypeMismatch):
		return http.StatusBadRequest, codeTypeMismatch
	case errors.Is(err, payments.ErrDateParse):
		return http.StatusBadRequest, codeDateParse
	case errors.Is(err, payments.ErrInvalidPayments):
		return http.StatusBadRequest, codeInvalidPayments
	case errors.Is(err, payload.ErrBadPayload):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, xirr.ErrInvalidOption), errors.Is(err, xirr.ErrInvalidRate):
		return http.StatusBadRequest, codeInvalidOption
	case errors.Is(err, models.ErrScheduleName):
		return http.StatusBadRequest, codeInvalidSchedule
	case errors.Is(err, models.ErrScheduleNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, xirr.ErrConvergence):
		return http.StatusUnprocessableEntity, codeNoConvergence
	}
	return http.StatusInternalServerError, codeInternal
}
