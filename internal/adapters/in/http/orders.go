package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/auth"

	"github.com/labstack/echo/v4"
)

const (
	msgOrderCreated     = "Commande créée avec succès"
	msgReceiptConfirmed = "Réception confirmée avec succès"
)

// CreateOrder handles POST /api/orders. The caller, when authenticated,
// becomes the owning client.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	location, err := req.DeliveryLocation.point()
	if err != nil {
		return s.fail(c, err)
	}

	var clientID *kernel.UUID
	viewer := viewerOf(c)
	if viewer != nil {
		clientID = &viewer.UserID
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, clientID, order.Details{
		Description:     req.Description,
		DeliveryAddress: req.DeliveryAddress,
		ReceiverPhone:   req.ReceiverPhone,
		Instructions:    req.Instructions,
	}, location)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.handlers.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrder(c, http.StatusCreated, msgOrderCreated, orderID)
}

// ListOrders handles GET /api/orders?status=.
func (s *Server) ListOrders(c echo.Context) error {
	query, err := queries.NewListOrdersQuery(c.QueryParam("status"))
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrders(c, query, nil)
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, "", envelope{"order": toOrderJSON(o, viewerOf(c))})
}

// ConfirmReceipt handles PATCH /api/orders/:id/confirm.
func (s *Server) ConfirmReceipt(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	p, _ := principalOf(c)

	cmd, err := commands.NewConfirmReceiptCommand(id, p.UserID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.ConfirmReceipt.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, msgReceiptConfirmed, id)
}

// ListClientOrders handles GET /api/client/orders?status=.
func (s *Server) ListClientOrders(c echo.Context) error {
	p, _ := principalOf(c)
	query, err := queries.NewListClientOrdersQuery(p.UserID, c.QueryParam("status"))
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrders(c, query, nil)
}

// respondWithOrder reads the order back after a committed command. A failed
// read does not turn the committed change into an error.
func (s *Server) respondWithOrder(c echo.Context, status int, message string, id kernel.UUID) error {
	ctx := c.Request().Context()

	query, err := queries.NewGetOrderQuery(id)
	if err == nil {
		var o queries.OrderResponse
		if o, err = s.handlers.GetOrder.Handle(ctx, query); err == nil {
			return respond(c, status, message, envelope{"order": toOrderJSON(o, viewerOf(c))})
		}
	}

	s.logger.WarnContext(ctx, "failed to read order back", "order_id", id, "error", err)
	return respond(c, status, message, nil)
}

func (s *Server) respondWithOrders(c echo.Context, query queries.ListOrdersQuery, extra envelope) error {
	list, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	payload := envelope{"orders": toOrdersJSON(list, viewerOf(c))}
	for k, v := range extra {
		payload[k] = v
	}
	return respond(c, http.StatusOK, "", payload)
}

func viewerOf(c echo.Context) *auth.Principal {
	p, ok := principalOf(c)
	if !ok {
		return nil
	}
	return &p
}
