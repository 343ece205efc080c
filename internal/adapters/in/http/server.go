// Package http exposes the dispatch application over a REST surface
// plus a WebSocket event stream for dashboard clients.
package http

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const defaultRecentAssignmentsLimit = 20

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	updateOrderStatusHandler    commands.UpdateOrderStatusCommandHandler
	registerDriverHandler       commands.RegisterDriverCommandHandler
	reviewDriverHandler         commands.ReviewDriverCommandHandler
	updateDriverPresenceHandler commands.UpdateDriverPresenceCommandHandler
	processPendingOrdersHandler *commands.ProcessPendingOrdersCommandHandler

	// Query handlers
	getPendingOrdersHandler     queries.GetPendingOrdersQueryHandler
	getAllDriversHandler        queries.GetAllDriversQueryHandler
	getRecentAssignmentsHandler queries.GetRecentAssignmentsQueryHandler
	getSystemStatsHandler       queries.GetSystemStatsQueryHandler

	events EventStream
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	registerDriverHandler commands.RegisterDriverCommandHandler,
	reviewDriverHandler commands.ReviewDriverCommandHandler,
	updateDriverPresenceHandler commands.UpdateDriverPresenceCommandHandler,
	processPendingOrdersHandler *commands.ProcessPendingOrdersCommandHandler,
	getPendingOrdersHandler queries.GetPendingOrdersQueryHandler,
	getAllDriversHandler queries.GetAllDriversQueryHandler,
	getRecentAssignmentsHandler queries.GetRecentAssignmentsQueryHandler,
	getSystemStatsHandler queries.GetSystemStatsQueryHandler,
	events EventStream,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		updateOrderStatusHandler:    updateOrderStatusHandler,
		registerDriverHandler:       registerDriverHandler,
		reviewDriverHandler:         reviewDriverHandler,
		updateDriverPresenceHandler: updateDriverPresenceHandler,
		processPendingOrdersHandler: processPendingOrdersHandler,
		getPendingOrdersHandler:     getPendingOrdersHandler,
		getAllDriversHandler:        getAllDriversHandler,
		getRecentAssignmentsHandler: getRecentAssignmentsHandler,
		getSystemStatsHandler:       getSystemStatsHandler,
		events:                      events,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/mock", s.CreateMockOrder)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	api.GET("/orders/pending", s.GetPendingOrders)
	api.POST("/drivers", s.RegisterDriver)
	api.POST("/drivers/:id/review", s.ReviewDriver)
	api.POST("/drivers/:id/presence", s.UpdateDriverPresence)
	api.GET("/drivers", s.GetDrivers)
	api.GET("/assignments/recent", s.GetRecentAssignments)
	api.GET("/stats", s.GetStats)
	api.POST("/dispatch", s.TriggerDispatch)

	e.GET("/ws", s.StreamEvents)
}

// CreateOrder handles POST /api/v1/orders - registers a pending order
// and kicks off a dispatch run in the background.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	pickup, err := kernel.NewLocation(kernel.Degrees(request.PickupLat), kernel.Degrees(request.PickupLon))
	if err != nil {
		return badRequest(ctx, "Invalid pickup coordinates: "+err.Error())
	}
	delivery, err := kernel.NewLocation(kernel.Degrees(request.DeliveryLat), kernel.Degrees(request.DeliveryLon))
	if err != nil {
		return badRequest(ctx, "Invalid delivery coordinates: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, request.OrderNumber, request.RestaurantName,
		pickup, request.DeliveryAddress, delivery, request.Amount)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Failed to create order",
		})
	}

	// New backlog entry, try to match it right away.
	go s.runDispatch()

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// Sample pickup and dropoff points for generated demo orders.
var (
	demoRestaurants = []struct {
		name     string
		lat, lon kernel.Degrees
	}{
		{"Pizza Palace", 40.7589, -73.9851},
		{"Burger Hub", 40.7505, -73.9934},
		{"Sushi Express", 40.7282, -73.7949},
		{"Taco Corner", 40.6892, -74.0445},
		{"Pasta Place", 40.7128, -74.0060},
	}

	demoAddresses = []struct {
		address  string
		lat, lon kernel.Degrees
	}{
		{"123 Main St, New York, NY", 40.7589, -73.9851},
		{"456 Oak Ave, New York, NY", 40.7505, -73.9934},
		{"789 Pine Rd, New York, NY", 40.7282, -73.7949},
		{"321 Elm St, New York, NY", 40.6892, -74.0445},
		{"654 Broadway, New York, NY", 40.7128, -74.0060},
	}
)

// CreateMockOrder handles POST /api/v1/orders/mock - generates a demo
// order from sample data and feeds it through the normal creation flow.
func (s *Server) CreateMockOrder(ctx echo.Context) error {
	restaurant := demoRestaurants[rand.IntN(len(demoRestaurants))]
	delivery := demoAddresses[rand.IntN(len(demoAddresses))]

	pickup, err := kernel.NewLocation(restaurant.lat, restaurant.lon)
	if err != nil {
		return internalError(ctx, "Failed to create mock order")
	}
	dropoff, err := kernel.NewLocation(delivery.lat, delivery.lon)
	if err != nil {
		return internalError(ctx, "Failed to create mock order")
	}

	orderID := kernel.NewUUID()
	orderNumber := fmt.Sprintf("ORD-%d-%d", time.Now().UnixMilli(), rand.IntN(1000))
	amount := strconv.FormatFloat(rand.Float64()*50+10, 'f', 2, 64)

	cmd, err := commands.NewCreateOrderCommand(orderID, orderNumber, restaurant.name,
		pickup, delivery.address, dropoff, amount)
	if err != nil {
		return internalError(ctx, "Failed to create mock order")
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return internalError(ctx, "Failed to create mock order")
	}

	go s.runDispatch()

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	next, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Unknown order status: "+request.Status)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, next)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if handleErr := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, errs.ErrObjectNotFound) {
			return notFound(ctx, "Order not found")
		}
		if errors.Is(handleErr, errs.ErrValueIsInvalid) {
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Invalid status transition",
			})
		}
		return internalError(ctx, "Failed to update order status")
	}

	return ctx.NoContent(http.StatusOK)
}

// GetPendingOrders handles GET /api/v1/orders/pending.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	query := queries.NewGetPendingOrdersQuery()

	orders, err := s.getPendingOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve pending orders")
	}

	response := make([]PendingOrder, len(orders))
	for i, o := range orders {
		response[i] = PendingOrder{
			ID:              o.ID.String(),
			OrderNumber:     o.OrderNumber,
			RestaurantName:  o.RestaurantName,
			PickupLat:       float64(o.Pickup.Latitude()),
			PickupLon:       float64(o.Pickup.Longitude()),
			DeliveryAddress: o.DeliveryAddress,
			Amount:          o.Amount,
			CreatedAt:       o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RegisterDriver handles POST /api/v1/drivers - creates a driver in
// pending approval.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var request RegisterDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	location, err := kernel.NewLocation(kernel.Degrees(request.Lat), kernel.Degrees(request.Lon))
	if err != nil {
		return badRequest(ctx, "Invalid coordinates: "+err.Error())
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewRegisterDriverCommand(driverID, request.Name, request.ChatID,
		request.Phone, location)
	if err != nil {
		return badRequest(ctx, "Invalid driver data: "+err.Error())
	}

	if handleErr := s.registerDriverHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Failed to register driver",
		})
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: driverID.String()})
}

// ReviewDriver handles POST /api/v1/drivers/:id/review.
func (s *Server) ReviewDriver(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	var request ReviewDriverRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReviewDriverCommand(driverID, request.Approved)
	if err != nil {
		return badRequest(ctx, "Invalid review: "+err.Error())
	}

	if handleErr := s.reviewDriverHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, errs.ErrObjectNotFound) {
			return notFound(ctx, "Driver not found")
		}
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Driver was already reviewed",
		})
	}

	return ctx.NoContent(http.StatusOK)
}

// UpdateDriverPresence handles POST /api/v1/drivers/:id/presence.
func (s *Server) UpdateDriverPresence(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	var request DriverPresenceRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var location *kernel.Location
	if request.Lat != nil && request.Lon != nil {
		parsed, locErr := kernel.NewLocation(kernel.Degrees(*request.Lat), kernel.Degrees(*request.Lon))
		if locErr != nil {
			return badRequest(ctx, "Invalid coordinates: "+locErr.Error())
		}
		location = &parsed
	}

	cmd, err := commands.NewUpdateDriverPresenceCommand(driverID, request.Online, location)
	if err != nil {
		return badRequest(ctx, "Invalid presence update: "+err.Error())
	}

	if handleErr := s.updateDriverPresenceHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, errs.ErrObjectNotFound) {
			return notFound(ctx, "Driver not found")
		}
		return internalError(ctx, "Failed to update driver presence")
	}

	// Drivers coming online may unlock the backlog.
	if request.Online {
		go s.runDispatch()
	}

	return ctx.NoContent(http.StatusOK)
}

// GetDrivers handles GET /api/v1/drivers.
func (s *Server) GetDrivers(ctx echo.Context) error {
	query := queries.NewGetAllDriversQuery()

	drivers, err := s.getAllDriversHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve drivers")
	}

	response := make([]Driver, len(drivers))
	for i, d := range drivers {
		response[i] = Driver{
			ID:             d.ID.String(),
			Name:           d.Name,
			ChatID:         d.ChatID,
			Phone:          d.Phone,
			Lat:            float64(d.Location.Latitude()),
			Lon:            float64(d.Location.Longitude()),
			IsAvailable:    d.IsAvailable,
			IsOnline:       d.IsOnline,
			ApprovalStatus: d.ApprovalStatus,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRecentAssignments handles GET /api/v1/assignments/recent?limit=N.
func (s *Server) GetRecentAssignments(ctx echo.Context) error {
	limit := defaultRecentAssignmentsLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		if err := echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
			return badRequest(ctx, "Invalid limit")
		}
	}

	query, err := queries.NewGetRecentAssignmentsQuery(limit)
	if err != nil {
		return badRequest(ctx, "Invalid limit: "+err.Error())
	}

	assignments, err := s.getRecentAssignmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve assignments")
	}

	response := make([]Assignment, len(assignments))
	for i, a := range assignments {
		response[i] = Assignment{
			ID:                 a.ID.String(),
			OrderID:            a.OrderID.String(),
			DriverID:           a.DriverID.String(),
			OrderNumber:        a.OrderNumber,
			DriverName:         a.DriverName,
			DistanceKm:         a.DistanceKm,
			AssignedAt:         a.AssignedAt,
			NotificationStatus: a.NotificationStatus,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetStats handles GET /api/v1/stats.
func (s *Server) GetStats(ctx echo.Context) error {
	query := queries.NewGetSystemStatsQuery()

	stats, err := s.getSystemStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve stats")
	}

	return ctx.JSON(http.StatusOK, Stats{
		PendingOrders:    stats.PendingOrders,
		ActiveOrders:     stats.ActiveOrders,
		TotalOrders:      stats.TotalOrders,
		OnlineDrivers:    stats.OnlineDrivers,
		AvailableDrivers: stats.AvailableDrivers,
		TotalDrivers:     stats.TotalDrivers,
		TotalAssignments: stats.TotalAssignments,
	})
}

// TriggerDispatch handles POST /api/v1/dispatch - runs the backlog
// synchronously and reports how many orders got a driver. Overlapping
// triggers are absorbed by the handler's re-entry guard.
func (s *Server) TriggerDispatch(ctx echo.Context) error {
	cmd := commands.NewProcessPendingOrdersCommand()

	assigned, err := s.processPendingOrdersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return internalError(ctx, "Dispatch run failed")
	}

	return ctx.JSON(http.StatusOK, DispatchResponse{Assigned: assigned})
}

// runDispatch fires a background backlog run, used after mutations
// that may make new matches possible.
func (s *Server) runDispatch() {
	cmd := commands.NewProcessPendingOrdersCommand()
	_, _ = s.processPendingOrdersHandler.Handle(context.Background(), cmd)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: message})
}
