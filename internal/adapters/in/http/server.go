// Package http provides the inbound REST adapter. It translates HTTP requests
// into commands and queries and maps domain errors onto status codes.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"nexus/internal/core/application/usecases/commands"
	"nexus/internal/core/application/usecases/queries"
	"nexus/internal/core/domain/model/driver"
	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/shipment"
	"nexus/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	receiveStockHandler     commands.ReceiveStockCommandHandler
	createOrderHandler      commands.CreateOrderCommandHandler
	assignShipmentsHandler  commands.AssignShipmentsCommandHandler
	startTransitHandler     commands.StartTransitCommandHandler
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler
	registerDriverHandler   commands.RegisterDriverCommandHandler
	setDriverOfflineHandler commands.SetDriverOfflineCommandHandler
	resetOperationsHandler  commands.ResetOperationsCommandHandler

	// Query handlers
	getInventoryHandler       queries.GetInventoryQueryHandler
	getFleetHandler           queries.GetFleetQueryHandler
	getActiveShipmentsHandler queries.GetActiveShipmentsQueryHandler
	getDriverRouteHandler     queries.GetDriverRouteQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	receiveStockHandler commands.ReceiveStockCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	assignShipmentsHandler commands.AssignShipmentsCommandHandler,
	startTransitHandler commands.StartTransitCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	registerDriverHandler commands.RegisterDriverCommandHandler,
	setDriverOfflineHandler commands.SetDriverOfflineCommandHandler,
	resetOperationsHandler commands.ResetOperationsCommandHandler,
	getInventoryHandler queries.GetInventoryQueryHandler,
	getFleetHandler queries.GetFleetQueryHandler,
	getActiveShipmentsHandler queries.GetActiveShipmentsQueryHandler,
	getDriverRouteHandler queries.GetDriverRouteQueryHandler,
) *Server {
	return &Server{
		receiveStockHandler:       receiveStockHandler,
		createOrderHandler:        createOrderHandler,
		assignShipmentsHandler:    assignShipmentsHandler,
		startTransitHandler:       startTransitHandler,
		completeDeliveryHandler:   completeDeliveryHandler,
		registerDriverHandler:     registerDriverHandler,
		setDriverOfflineHandler:   setDriverOfflineHandler,
		resetOperationsHandler:    resetOperationsHandler,
		getInventoryHandler:       getInventoryHandler,
		getFleetHandler:           getFleetHandler,
		getActiveShipmentsHandler: getActiveShipmentsHandler,
		getDriverRouteHandler:     getDriverRouteHandler,
	}
}

// RegisterRoutes binds the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.GET("/inventory", s.GetInventory)
	v1.POST("/inventory", s.ReceiveStock)

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/shipments", s.GetActiveShipments)

	v1.POST("/dispatch", s.Dispatch)
	v1.POST("/handover", s.Handover)

	v1.GET("/drivers", s.GetFleet)
	v1.POST("/drivers", s.RegisterDriver)
	v1.POST("/drivers/:id/offline", s.SetDriverOffline)
	v1.GET("/drivers/:id/route", s.GetDriverRoute)

	v1.POST("/reset", s.Reset)
}

// Error is the JSON error body returned for failed requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GetInventory handles GET /api/v1/inventory - retrieves the catalog with
// stock levels, optionally filtered by a search term matching name or SKU.
func (s *Server) GetInventory(ctx echo.Context) error {
	query := queries.NewGetInventoryQuery(ctx.QueryParam("search"))

	items, err := s.getInventoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]inventoryItem, len(items))
	for i, item := range items {
		response[i] = inventoryItem{
			ID:        item.ID.String(),
			SKU:       item.SKU,
			Name:      item.Name,
			Stock:     item.Stock,
			UnitPrice: item.UnitPrice,
			Location:  item.Location,
			Status:    item.Status,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type inventoryItem struct {
	ID        string  `json:"id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Stock     int     `json:"stock"`
	UnitPrice float64 `json:"unitPrice"`
	Location  string  `json:"location"`
	Status    string  `json:"status"`
}

// ReceiveStock handles POST /api/v1/inventory - registers inbound goods,
// creating the catalog entry when the SKU is new.
func (s *Server) ReceiveStock(ctx echo.Context) error {
	var body struct {
		SKU       string  `json:"sku"`
		Name      string  `json:"name"`
		Quantity  int     `json:"quantity"`
		UnitPrice float64 `json:"unitPrice"`
		Location  string  `json:"location"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	command, err := commands.NewReceiveStockCommand(body.SKU, body.Name, body.Quantity, body.UnitPrice, body.Location)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.receiveStockHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// CreateOrder handles POST /api/v1/orders - reserves stock for the order
// lines and creates the shipment.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body struct {
		DestinationAddress string  `json:"destinationAddress"`
		Lat                float64 `json:"lat"`
		Lng                float64 `json:"lng"`
		Lines              []struct {
			SKU      string `json:"sku"`
			Quantity int    `json:"quantity"`
		} `json:"lines"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	destination, err := kernel.NewGeoPoint(body.Lat, body.Lng)
	if err != nil {
		return errorResponse(ctx, err)
	}

	lines := make([]commands.OrderLine, len(body.Lines))
	for i, line := range body.Lines {
		lines[i] = commands.OrderLine{SKU: line.SKU, Quantity: line.Quantity}
	}

	command, err := commands.NewCreateOrderCommand(body.DestinationAddress, destination, lines)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]any{
		"trackingId": result.TrackingID.String(),
		"weightKg":   result.WeightKg,
		"price":      result.Price,
	})
}

// GetActiveShipments handles GET /api/v1/shipments - retrieves every
// undelivered shipment with its driver, if bound.
func (s *Server) GetActiveShipments(ctx echo.Context) error {
	query := queries.NewGetActiveShipmentsQuery()

	shipments, err := s.getActiveShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]activeShipment, len(shipments))
	for i, item := range shipments {
		entry := activeShipment{
			ID:                 item.ID.String(),
			TrackingID:         item.TrackingID,
			DestinationAddress: item.DestinationAddress,
			Lat:                item.Lat,
			Lng:                item.Lng,
			Status:             item.Status,
			WeightKg:           item.WeightKg,
			Price:              item.Price,
			RouteOrder:         item.RouteOrder,
			DriverName:         item.DriverName,
			CreatedAt:          item.CreatedAt,
		}
		if item.DriverID != nil {
			id := item.DriverID.String()
			entry.DriverID = &id
		}
		response[i] = entry
	}

	return ctx.JSON(http.StatusOK, response)
}

type activeShipment struct {
	ID                 string    `json:"id"`
	TrackingID         string    `json:"trackingId"`
	DestinationAddress string    `json:"destinationAddress"`
	Lat                float64   `json:"lat"`
	Lng                float64   `json:"lng"`
	Status             string    `json:"status"`
	WeightKg           float64   `json:"weightKg"`
	Price              float64   `json:"price"`
	RouteOrder         *int      `json:"routeOrder,omitempty"`
	DriverID           *string   `json:"driverId,omitempty"`
	DriverName         *string   `json:"driverName,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Dispatch handles POST /api/v1/dispatch - runs one assignment cycle
// immediately. An empty backlog or an empty fleet is a no-op, not an error.
func (s *Server) Dispatch(ctx echo.Context) error {
	command := commands.NewAssignShipmentsCommand()

	result, err := s.assignShipmentsHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		if errors.Is(err, commands.ErrNoPendingShipments) || errors.Is(err, commands.ErrNoIdleDrivers) {
			return ctx.JSON(http.StatusOK, map[string]int{
				"assignedShipments": 0,
				"busyDrivers":       0,
				"rejectedProposals": 0,
			})
		}
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]int{
		"assignedShipments": result.AssignedShipments,
		"busyDrivers":       result.BusyDrivers,
		"rejectedProposals": result.RejectedProposals,
	})
}

// Handover handles POST /api/v1/handover - confirms a scanned handover token
// for a driver, advancing the shipment to in_transit or delivered.
func (s *Server) Handover(ctx echo.Context) error {
	var body struct {
		DriverID string          `json:"driverId"`
		Token    json.RawMessage `json:"token"`
		Position struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"position"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(body.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	position, err := kernel.NewGeoPoint(body.Position.Lat, body.Position.Lng)
	if err != nil {
		return errorResponse(ctx, err)
	}

	token, err := shipment.ParseHandoverToken(body.Token)
	if err != nil {
		return errorResponse(ctx, err)
	}

	switch token.Action {
	case shipment.ActionStartTransit:
		command, cmdErr := commands.NewStartTransitCommand(token.TrackingID, driverID, position)
		if cmdErr != nil {
			return errorResponse(ctx, cmdErr)
		}
		if handleErr := s.startTransitHandler.Handle(ctx.Request().Context(), command); handleErr != nil {
			return errorResponse(ctx, handleErr)
		}
	case shipment.ActionComplete:
		command, cmdErr := commands.NewCompleteDeliveryCommand(token.TrackingID, driverID, position)
		if cmdErr != nil {
			return errorResponse(ctx, cmdErr)
		}
		if handleErr := s.completeDeliveryHandler.Handle(ctx.Request().Context(), command); handleErr != nil {
			return errorResponse(ctx, handleErr)
		}
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"trackingId": token.TrackingID.String(),
		"action":     string(token.Action),
	})
}

// GetFleet handles GET /api/v1/drivers - retrieves the fleet overview with
// active shipment counts.
func (s *Server) GetFleet(ctx echo.Context) error {
	query := queries.NewGetFleetQuery()

	drivers, err := s.getFleetHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]fleetDriver, len(drivers))
	for i, item := range drivers {
		response[i] = fleetDriver{
			ID:              item.ID.String(),
			Name:            item.Name,
			Vehicle:         item.Vehicle,
			Status:          item.Status,
			Lat:             item.Lat,
			Lng:             item.Lng,
			Phone:           item.Phone,
			ActiveShipments: item.ActiveShipments,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type fleetDriver struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Vehicle         string  `json:"vehicle"`
	Status          string  `json:"status"`
	Lat             float64 `json:"lat"`
	Lng             float64 `json:"lng"`
	Phone           string  `json:"phone"`
	ActiveShipments int     `json:"activeShipments"`
}

// RegisterDriver handles POST /api/v1/drivers - registers a new driver,
// entering the fleet idle at the given position.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var body struct {
		Name    string  `json:"name"`
		Vehicle string  `json:"vehicle"`
		Lat     float64 `json:"lat"`
		Lng     float64 `json:"lng"`
		Phone   string  `json:"phone"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vehicle, err := driver.VehicleClassFromString(body.Vehicle)
	if err != nil {
		return errorResponse(ctx, err)
	}

	position, err := kernel.NewGeoPoint(body.Lat, body.Lng)
	if err != nil {
		return errorResponse(ctx, err)
	}

	command, err := commands.NewRegisterDriverCommand(body.Name, vehicle, position, body.Phone)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.registerDriverHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// SetDriverOffline handles POST /api/v1/drivers/:id/offline - takes an idle
// driver off shift. A busy driver is rejected with a conflict.
func (s *Server) SetDriverOffline(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	command, err := commands.NewSetDriverOfflineCommand(driverID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.setDriverOfflineHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDriverRoute handles GET /api/v1/drivers/:id/route - retrieves the
// driver's remaining stops and drivable path geometry for the live map.
func (s *Server) GetDriverRoute(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	query, err := queries.NewGetDriverRouteQuery(driverID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	route, err := s.getDriverRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := driverRoute{
		DriverID:        route.DriverID.String(),
		Stops:           make([]routeStop, len(route.Stops)),
		Geometry:        make([]routePoint, len(route.Geometry)),
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
		Degraded:        route.Degraded,
	}
	for i, stop := range route.Stops {
		response.Stops[i] = routeStop{
			TrackingID: stop.TrackingID,
			Address:    stop.Address,
			Lat:        stop.Lat,
			Lng:        stop.Lng,
			RouteOrder: stop.RouteOrder,
			Status:     stop.Status,
		}
	}
	for i, point := range route.Geometry {
		response.Geometry[i] = routePoint{Lat: point.Lat, Lng: point.Lng}
	}

	return ctx.JSON(http.StatusOK, response)
}

type driverRoute struct {
	DriverID        string       `json:"driverId"`
	Stops           []routeStop  `json:"stops"`
	Geometry        []routePoint `json:"geometry"`
	DistanceMeters  float64      `json:"distanceMeters"`
	DurationSeconds float64      `json:"durationSeconds"`
	Degraded        bool         `json:"degraded"`
}

type routeStop struct {
	TrackingID string  `json:"trackingId"`
	Address    string  `json:"address"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	RouteOrder int     `json:"routeOrder"`
	Status     string  `json:"status"`
}

type routePoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Reset handles POST /api/v1/reset - forces every shipment back to pending
// and every driver back to idle. Administrative escape hatch.
func (s *Server) Reset(ctx echo.Context) error {
	command := commands.NewResetOperationsCommand()

	if err := s.resetOperationsHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// errorResponse maps domain errors onto HTTP status codes: not-found to 404,
// state conflicts to 409, validation failures to 400, a timed out assignment
// strategy to 503, everything else to 500.
func errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrCapacityExceeded):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrDelegateTimeout):
		status = http.StatusServiceUnavailable
	}

	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
