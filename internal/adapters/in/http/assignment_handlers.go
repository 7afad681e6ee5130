package http

import (
	"errors"
	"net/http"

	"fleetdispatch/internal/core/application/usecases/commands"
	"fleetdispatch/internal/core/domain/model/audit"
	"fleetdispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	systemBusy = "System Busy: Another optimization batch is currently executing."
	emptyBatch = "Assignments array cannot be empty"
)

// ExecuteOptimization handles POST /api/v3/execute-optimization.
func (s *Server) ExecuteOptimization(c echo.Context) error {
	var request executeBatchRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if request.Assignments == nil {
		return badRequest(c, "assignments must be an array")
	}

	cmd, err := commands.NewExecuteBatchCommand(toProposals(request.Assignments), audit.Manual)
	if errors.Is(err, commands.ErrEmptyBatch) {
		return badRequest(c, emptyBatch)
	}
	if err != nil {
		return badRequest(c, err.Error())
	}

	result, err := s.handlers.ExecuteBatch.Handle(c.Request().Context(), cmd)
	switch {
	case errors.Is(err, errs.ErrConflict):
		return c.JSON(http.StatusConflict, batchFailureResponse{Error: systemBusy, Code: http.StatusConflict})
	case err != nil:
		s.logger.ErrorContext(c.Request().Context(), "batch execution failed", "error", err)
		return c.JSON(http.StatusInternalServerError, batchFailureResponse{
			Error: err.Error(),
			Code:  http.StatusInternalServerError,
		})
	}
	return c.JSON(http.StatusOK, toBatchResponse(result))
}

// AssignParcel handles POST /api/assignParcel.
func (s *Server) AssignParcel(c echo.Context) error {
	var request assignParcelRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewAssignParcelCommand(request.ParcelID, request.TruckID)
	if err != nil {
		return badRequest(c, err.Error())
	}

	result, err := s.handlers.AssignParcel.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toAssignParcelResponse(result))
}
