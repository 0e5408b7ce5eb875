package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/worker"
	"jetbond/internal/core/ports"
	"jetbond/internal/pkg/errs"
)

// conflictErrors are domain rule violations reported as 409 Conflict.
var conflictErrors = []error{
	job.ErrInvalidTransition,
	job.ErrWindowClosed,
	job.ErrAlreadyApplied,
	job.ErrCapacityExceeded,
	job.ErrPreviouslyCancelled,
	job.ErrNotApplied,
	job.ErrAlreadyRated,
	worker.ErrInvalidAvailabilityTransition,
	worker.ErrInvalidTrigger,
	worker.ErrNotAWorker,
	ports.ErrAlreadyExists,
}

// problem translates a use case error into an HTTP response.
func problem(c echo.Context, err error) error {
	status := statusFor(err)
	return c.JSON(status, Error{Code: status, Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, job.ErrPermissionDenied):
		return http.StatusForbidden
	case isConflict(err):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isConflict(err error) bool {
	for _, sentinel := range conflictErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
