package http

import (
	"errors"
	"net/http"

	"fleetdispatch/internal/core/application/usecases/commands"
	"fleetdispatch/internal/core/domain/services"
	"fleetdispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error codes returned next to path search failures.
const (
	CodeInvalidNode = "INVALID_NODE"
	CodeNoPath      = "NO_PATH"
)

// statusOf maps an application error onto an HTTP status code.
func statusOf(err error) int {
	var rejected *commands.AssignmentRejectedError
	switch {
	case errors.As(err, &rejected):
		if errors.Is(rejected.Kind, errs.ErrObjectNotFound) {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, services.ErrInvalidNode),
		errors.Is(err, services.ErrNoPath):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as an errorResponse. Unexpected errors are logged
// and hidden behind a generic message.
func (s *Server) writeError(c echo.Context, err error) error {
	status := statusOf(err)
	response := errorResponse{Error: err.Error()}

	var rejected *commands.AssignmentRejectedError
	switch {
	case errors.As(err, &rejected):
		response.Error = rejected.Reason
		response.WorkflowID = rejected.WorkflowID.String()
	case errors.Is(err, services.ErrInvalidNode):
		response.Code = CodeInvalidNode
	case errors.Is(err, services.ErrNoPath):
		response.Code = CodeNoPath
	case status == http.StatusInternalServerError:
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		response.Error = http.StatusText(http.StatusInternalServerError)
	}
	return c.JSON(status, response)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: message})
}
