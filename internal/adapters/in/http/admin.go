package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	msgOrderAssigned   = "Livreur assigné avec succès"
	msgCourierVerified = "Livreur vérifié avec succès"
)

// ListAdminOrders handles GET /api/admin/orders?status=&livreur=.
func (s *Server) ListAdminOrders(c echo.Context) error {
	courierID, err := queryUUID(c, "livreur")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewListAdminOrdersQuery(c.QueryParam("status"), courierID)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrders(c, query, nil)
}

// AssignOrder handles POST /api/admin/orders/:orderId/assign.
func (s *Server) AssignOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}

	var req AssignOrderRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	if req.LivreurID == "" {
		return s.fail(c, errs.NewValueIsRequiredError("livreurId"))
	}
	courierID, err := kernel.UUIDFromString(req.LivreurID)
	if err != nil {
		return s.fail(c, err)
	}

	p, _ := principalOf(c)
	cmd, err := commands.NewAssignOrderCommand(orderID, courierID, p.UserID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.AssignOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, msgOrderAssigned, orderID)
}

// ListCouriers handles GET /api/admin/deliveries?verified=.
func (s *Server) ListCouriers(c echo.Context) error {
	verified, err := queryBool(c, "verified")
	if err != nil {
		return s.fail(c, err)
	}
	couriers, err := s.handlers.ListCouriers.Handle(c.Request().Context(), queries.NewListCouriersQuery(verified))
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, "", envelope{"livreurs": toCouriersJSON(couriers), "total": len(couriers)})
}

// VerifyCourier handles PUT /api/admin/deliveries/:userId/verify.
func (s *Server) VerifyCourier(c echo.Context) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewVerifyCourierCommand(userID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.VerifyCourier.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, msgCourierVerified, nil)
}

// GetAdminStats handles GET /api/admin/stats.
func (s *Server) GetAdminStats(c echo.Context) error {
	stats, err := s.handlers.GetAdminStats.Handle(c.Request().Context(), queries.NewGetAdminStatsQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, "", envelope{"stats": StatsJSON{
		UsersByRole:      stats.UsersByRole,
		VerifiedCouriers: stats.VerifiedCouriers,
		ActiveCouriers:   stats.ActiveCouriers,
		OrdersByStatus:   stats.OrdersByStatus,
		TotalOrders:      stats.TotalOrders,
	}})
}
