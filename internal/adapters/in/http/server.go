// Package http exposes the dispatch engine over a JSON API served by echo.
package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"fleetdispatch/internal/core/application/usecases/commands"
	"fleetdispatch/internal/core/application/usecases/queries"
	"fleetdispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handlers bundles the use cases served over HTTP.
type Handlers struct {
	ExecuteBatch commands.ExecuteBatchCommandHandler
	AssignParcel commands.AssignParcelCommandHandler
	ToggleRoad   commands.ToggleRoadCommandHandler
	CreateParcel commands.CreateParcelCommandHandler
	CreateTruck  commands.CreateTruckCommandHandler
	CreateRoute  commands.CreateRouteCommandHandler

	FindPath  queries.FindPathQueryHandler
	Proposals queries.GetOptimizationProposalsQueryHandler
	Replay    queries.ReplayBatchQueryHandler
	Tender    queries.GetTenderManifestQueryHandler
	Workflows queries.ListWorkflowsQueryHandler
	Alerts    queries.ListAlertsQueryHandler
	Status    queries.GetSystemStatusQueryHandler
	Records   queries.ListRecordsQueryHandler
}

// Options configures access control on the protected endpoints.
type Options struct {
	AdminKey   string
	PartnerKey string

	// TenderRate is the sustained tender requests per second per client.
	TenderRate  float64
	TenderBurst int
}

// Server implements the HTTP endpoints on top of the command and query
// handlers.
type Server struct {
	handlers Handlers
	options  Options
	logger   *slog.Logger
	metrics  *metrics.Collector
}

// NewServer creates the server. collector may be nil.
func NewServer(handlers Handlers, options Options, logger *slog.Logger, collector *metrics.Collector) *Server {
	if options.TenderRate <= 0 {
		options.TenderRate = 1
	}
	if options.TenderBurst <= 0 {
		options.TenderBurst = 5
	}
	return &Server{
		handlers: handlers,
		options:  options,
		logger:   logger.With("component", "http"),
		metrics:  collector,
	}
}

// Router builds an echo instance with every route registered.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(s.logger))
	e.Use(requestMetrics(s.metrics))

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	api := e.Group("/api")
	api.POST("/assignParcel", s.AssignParcel)
	api.GET("/workflows", s.ListWorkflows)
	api.GET("/alerts", s.ListAlerts)
	api.GET("/status", s.GetStatus)
	api.GET("/parcels", s.ListParcels)
	api.POST("/parcels", s.CreateParcel)
	api.GET("/trucks", s.ListTrucks)
	api.POST("/trucks", s.CreateTruck)
	api.GET("/routes", s.ListRoutes)
	api.POST("/routes", s.CreateRoute)

	v3 := api.Group("/v3")
	v3.POST("/execute-optimization", s.ExecuteOptimization)
	v3.GET("/routing/cost", s.GetRoutingCost)
	v3.GET("/audit/optimization-proposals", s.GetOptimizationProposals)
	v3.GET("/audit/replay/:batchId", s.ReplayBatch)
	v3.POST("/admin/road-status", s.SetRoadStatus, requireKey(AdminKeyHeader, s.options.AdminKey))
	v3.POST("/external/tender", s.CreateTender,
		requireKey(PartnerKeyHeader, s.options.PartnerKey),
		rateLimit(s.options.TenderRate, s.options.TenderBurst),
	)

	return e
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

func queryLimit(c echo.Context) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		return 0
	}
	return limit
}
