// Package http is the thin transport layer: it parses requests and caller
// identity, delegates to command and query handlers, and maps domain errors
// to status codes. No business rule lives here.
package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	transitionOrderHandler  commands.TransitionOrderCommandHandler
	completeOrderHandler    commands.CompleteOrderCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	assignShipperHandler    commands.AssignShipperCommandHandler
	startDeliveryHandler    commands.StartDeliveryCommandHandler
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler
	failDeliveryHandler     commands.FailDeliveryCommandHandler

	// Query handlers
	getOrderHandler      queries.GetOrderQueryHandler
	resolvePricesHandler queries.ResolvePricesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	assignShipperHandler commands.AssignShipperCommandHandler,
	startDeliveryHandler commands.StartDeliveryCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	failDeliveryHandler commands.FailDeliveryCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	resolvePricesHandler queries.ResolvePricesQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		transitionOrderHandler:  transitionOrderHandler,
		completeOrderHandler:    completeOrderHandler,
		cancelOrderHandler:      cancelOrderHandler,
		assignShipperHandler:    assignShipperHandler,
		startDeliveryHandler:    startDeliveryHandler,
		completeDeliveryHandler: completeDeliveryHandler,
		failDeliveryHandler:     failDeliveryHandler,
		getOrderHandler:         getOrderHandler,
		resolvePricesHandler:    resolvePricesHandler,
	}
}

// RegisterRoutes attaches all fulfillment routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:id", s.GetOrder)
	v1.POST("/orders/:id/confirm", s.TransitionOrder)
	v1.POST("/orders/:id/process", s.TransitionOrder)
	v1.POST("/orders/:id/ship", s.TransitionOrder)
	v1.POST("/orders/:id/complete", s.CompleteOrder)
	v1.POST("/orders/:id/cancel", s.CancelOrder)

	v1.POST("/deliveries", s.AssignShipper)
	v1.POST("/deliveries/:id/start", s.StartDelivery)
	v1.POST("/deliveries/:id/complete", s.CompleteDelivery)
	v1.POST("/deliveries/:id/fail", s.FailDelivery)

	v1.GET("/prices", s.ResolvePrices)
}

// CreateOrder handles POST /api/v1/orders - checks out the caller's cart
// into a priced order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		variantID, parseErr := kernel.UUIDFromString(item.VariantID)
		if parseErr != nil {
			return badRequest(ctx, "Invalid variant id: "+item.VariantID)
		}
		items = append(items, commands.CartItem{VariantID: variantID, Quantity: item.Quantity})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, caller.accountID, items, req.VoucherCode)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order's detail.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFrom(detail))
}

// TransitionOrder handles the forward lifecycle steps
// POST /api/v1/orders/:id/{confirm,process,ship}. The step is the last path
// segment, so one handler serves all three routes.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	action, err := commands.TransitionActionFromString(lastPathSegment(ctx))
	if err != nil {
		return badRequest(ctx, "Unknown transition")
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, action, caller.role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:id/complete - finishes the
// order and re-ranks its customer.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, caller.role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - cancels the order and
// compensates its side effects.
func (s *Server) CancelOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, caller.accountID, caller.role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignShipper handles POST /api/v1/deliveries - manually binds a shipped
// order to a shipper.
func (s *Server) AssignShipper(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	var req assignShipperRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	shipperID, err := kernel.UUIDFromString(req.ShipperID)
	if err != nil {
		return badRequest(ctx, "Invalid shipper id")
	}

	assignmentID := kernel.NewUUID()
	cmd, err := commands.NewAssignShipperCommand(assignmentID, orderID, shipperID, caller.role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.assignShipperHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, assignShipperResponse{ID: assignmentID.String()})
}

// StartDelivery handles POST /api/v1/deliveries/:id/start.
func (s *Server) StartDelivery(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	assignmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid assignment id")
	}

	cmd, err := commands.NewStartDeliveryCommand(assignmentID, caller.accountID, caller.role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.startDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/deliveries/:id/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	assignmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid assignment id")
	}

	var req completeDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCompleteDeliveryCommand(assignmentID, caller.accountID, caller.role, req.ProofImages)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FailDelivery handles POST /api/v1/deliveries/:id/fail.
func (s *Server) FailDelivery(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	assignmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid assignment id")
	}

	var req failDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewFailDeliveryCommand(assignmentID, caller.accountID, caller.role, req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.failDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolvePrices handles GET /api/v1/prices?variant_ids=a,b,c - resolves the
// effective price of each requested variant.
func (s *Server) ResolvePrices(ctx echo.Context) error {
	ids, err := queryUUIDs(ctx, "variant_ids")
	if err != nil {
		return badRequest(ctx, "Invalid variant_ids parameter")
	}

	query, err := queries.NewResolvePricesQuery(ids)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	prices, err := s.resolvePricesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]priceResponse, len(prices))
	for i, p := range prices {
		response[i] = priceResponseFrom(p)
	}
	return ctx.JSON(http.StatusOK, response)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}
