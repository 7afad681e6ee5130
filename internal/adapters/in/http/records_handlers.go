package http

import (
	"net/http"

	"fleetdispatch/internal/core/application/usecases/commands"
	"fleetdispatch/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// CreateParcel handles POST /api/parcels.
func (s *Server) CreateParcel(c echo.Context) error {
	var request createParcelRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCreateParcelCommand(request.ParcelID, request.Destination, request.Weight)
	if err != nil {
		return s.writeError(c, err)
	}
	created, err := s.handlers.CreateParcel.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toParcelResponse(created))
}

// CreateTruck handles POST /api/trucks.
func (s *Server) CreateTruck(c echo.Context) error {
	var request createTruckRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCreateTruckCommand(request.TruckID, request.MaxCapacity, request.RouteID)
	if err != nil {
		return s.writeError(c, err)
	}
	created, err := s.handlers.CreateTruck.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toTruckResponse(created))
}

// CreateRoute handles POST /api/routes.
func (s *Server) CreateRoute(c echo.Context) error {
	var request createRouteRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCreateRouteCommand(request.RouteID, request.Stops, request.CapacityLimit)
	if err != nil {
		return s.writeError(c, err)
	}
	created, err := s.handlers.CreateRoute.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toRouteResponse(created))
}

// ListParcels handles GET /api/parcels.
func (s *Server) ListParcels(c echo.Context) error {
	records, err := s.handlers.Records.Handle(c.Request().Context(), queries.NewFleetQuery())
	if err != nil {
		return s.writeError(c, err)
	}
	response := make([]parcelResponse, 0, len(records.Parcels))
	for _, p := range records.Parcels {
		response = append(response, toParcelResponse(p))
	}
	return c.JSON(http.StatusOK, response)
}

// ListTrucks handles GET /api/trucks.
func (s *Server) ListTrucks(c echo.Context) error {
	records, err := s.handlers.Records.Handle(c.Request().Context(), queries.NewFleetQuery())
	if err != nil {
		return s.writeError(c, err)
	}
	response := make([]truckResponse, 0, len(records.Trucks))
	for _, t := range records.Trucks {
		response = append(response, toTruckResponse(t))
	}
	return c.JSON(http.StatusOK, response)
}

// ListRoutes handles GET /api/routes.
func (s *Server) ListRoutes(c echo.Context) error {
	records, err := s.handlers.Records.Handle(c.Request().Context(), queries.NewFleetQuery())
	if err != nil {
		return s.writeError(c, err)
	}
	response := make([]routeResponse, 0, len(records.Routes))
	for _, r := range records.Routes {
		response = append(response, toRouteResponse(r))
	}
	return c.JSON(http.StatusOK, response)
}
