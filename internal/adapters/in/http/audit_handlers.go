package http

import (
	"errors"
	"net/http"

	"fleetdispatch/internal/core/application/usecases/queries"
	"fleetdispatch/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// ReplayBatch handles GET /api/v3/audit/replay/:batchId.
func (s *Server) ReplayBatch(c echo.Context) error {
	query, err := queries.NewReplayBatchQuery(c.Param("batchId"))
	if err != nil {
		return s.writeError(c, err)
	}
	replay, err := s.handlers.Replay.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toReplayResponse(replay))
}

// CreateTender handles POST /api/v3/external/tender.
func (s *Server) CreateTender(c echo.Context) error {
	manifest, err := s.handlers.Tender.Handle(c.Request().Context(), queries.NewFleetQuery())
	if errors.Is(err, services.ErrNothingToTender) {
		return c.JSON(http.StatusOK, messageResponse{Message: "No unassigned parcels to tender."})
	}
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toTenderResponse(manifest))
}

// ListWorkflows handles GET /api/workflows?limit=.
func (s *Server) ListWorkflows(c echo.Context) error {
	summaries, err := s.handlers.Workflows.Handle(c.Request().Context(), queries.NewListAuditQuery(queryLimit(c)))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toWorkflowResponses(summaries))
}

// ListAlerts handles GET /api/alerts?limit=.
func (s *Server) ListAlerts(c echo.Context) error {
	alerts, err := s.handlers.Alerts.Handle(c.Request().Context(), queries.NewListAuditQuery(queryLimit(c)))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toAlertResponses(alerts))
}

// GetStatus handles GET /api/status.
func (s *Server) GetStatus(c echo.Context) error {
	status, err := s.handlers.Status.Handle(c.Request().Context(), queries.NewFleetQuery())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toStatusResponse(status))
}
