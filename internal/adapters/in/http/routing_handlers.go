package http

import (
	"net/http"
	"time"

	"fleetdispatch/internal/core/application/usecases/commands"
	"fleetdispatch/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetRoutingCost handles GET /api/v3/routing/cost?from=&to=.
func (s *Server) GetRoutingCost(c echo.Context) error {
	from, to := c.QueryParam("from"), c.QueryParam("to")
	if from == "" || to == "" {
		return badRequest(c, "Missing 'from' or 'to' parameters")
	}

	query, err := queries.NewFindPathQuery(from, to)
	if err != nil {
		return s.writeError(c, err)
	}
	path, err := s.handlers.FindPath.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toPathResponse(path))
}

// SetRoadStatus handles POST /api/v3/admin/road-status.
func (s *Server) SetRoadStatus(c echo.Context) error {
	var request roadStatusRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewToggleRoadCommand(request.From, request.To, request.IsClosed)
	if err != nil {
		return s.writeError(c, err)
	}
	result, err := s.handlers.ToggleRoad.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toRoadStatusResponse(result))
}

// GetOptimizationProposals handles GET /api/v3/audit/optimization-proposals.
func (s *Server) GetOptimizationProposals(c echo.Context) error {
	report, err := s.handlers.Proposals.Handle(c.Request().Context(), queries.NewFleetQuery())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toProposalsResponse(report, time.Now().UTC()))
}
