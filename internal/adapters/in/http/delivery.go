package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

const (
	msgOrderAccepted     = "Commande acceptée"
	msgLocationUpdated   = "Localisation mise à jour"
	msgDeliveryCompleted = "Livraison complétée"
)

// ListAvailableOrders handles GET /api/delivery/available-orders.
func (s *Server) ListAvailableOrders(c echo.Context) error {
	return s.respondWithOrders(c, queries.NewListAvailableOrdersQuery(), nil)
}

// AcceptOrder handles POST /api/delivery/accept-order/:orderId.
func (s *Server) AcceptOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	p, _ := principalOf(c)

	cmd, err := commands.NewAcceptOrderCommand(orderID, p.UserID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.AcceptOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, msgOrderAccepted, orderID)
}

// ListMyDeliveries handles GET /api/delivery/my-deliveries?status=a,b.
func (s *Server) ListMyDeliveries(c echo.Context) error {
	p, _ := principalOf(c)
	query, err := queries.NewListCourierDeliveriesQuery(p.UserID, c.QueryParam("status"))
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrders(c, query, nil)
}

// DeliveryHistory handles GET /api/delivery/history?status=a,b.
func (s *Server) DeliveryHistory(c echo.Context) error {
	p, _ := principalOf(c)
	query, err := queries.NewDeliveryHistoryQuery(p.UserID, c.QueryParam("status"))
	if err != nil {
		return s.fail(c, err)
	}

	list, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, "", envelope{
		"total":  len(list),
		"orders": toOrdersJSON(list, viewerOf(c)),
	})
}

// UpdateLocation handles PUT /api/delivery/update-location/:orderId. A status
// in the body advances the order as well.
func (s *Server) UpdateLocation(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}

	var req UpdateLocationRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	var location kernel.GeoPoint
	if req.Latitude != nil && req.Longitude != nil {
		location = kernel.NewGeoPoint(*req.Latitude, *req.Longitude)
	}

	var status *order.Status
	if req.Status != "" {
		parsed, parseErr := order.ParseStatus(req.Status)
		if parseErr != nil {
			return s.fail(c, parseErr)
		}
		status = &parsed
	}

	p, _ := principalOf(c)
	cmd, err := commands.NewUpdateDeliveryLocationCommand(orderID, p.UserID, location, status)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.UpdateLocation.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, msgLocationUpdated, orderID)
}

// CompleteDelivery handles PUT /api/delivery/complete/:orderId.
func (s *Server) CompleteDelivery(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}

	var req CompleteDeliveryRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	p, _ := principalOf(c)
	cmd, err := commands.NewCompleteDeliveryCommand(orderID, p.UserID, req.DeliveryCode)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.CompleteDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, msgDeliveryCompleted, orderID)
}
