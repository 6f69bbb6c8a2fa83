// Package http is the echo adapter of the dispatch service. It authenticates
// callers, binds requests into commands and queries, and renders every
// response in the {success, message, ...} envelope.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/auth"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type (
	// CommandHandler is satisfied by every handler of the commands package.
	CommandHandler[C any] interface {
		Handle(ctx context.Context, cmd C) error
	}

	// QueryHandler is satisfied by the queries package and by commands that
	// report a result.
	QueryHandler[Q, R any] interface {
		Handle(ctx context.Context, query Q) (R, error)
	}

	TokenParser interface {
		ParseToken(token string) (auth.Principal, error)
	}
)

// Handlers groups the use cases the server routes to.
type Handlers struct {
	CreateOrder          CommandHandler[commands.CreateOrderCommand]
	AssignOrder          CommandHandler[commands.AssignOrderCommand]
	AcceptOrder          CommandHandler[commands.AcceptOrderCommand]
	UpdateLocation       CommandHandler[commands.UpdateDeliveryLocationCommand]
	CompleteDelivery     CommandHandler[commands.CompleteDeliveryCommand]
	ConfirmReceipt       CommandHandler[commands.ConfirmReceiptCommand]
	VerifyCourier        CommandHandler[commands.VerifyCourierCommand]
	MarkNotificationRead CommandHandler[commands.MarkNotificationReadCommand]
	ClearNotifications   QueryHandler[commands.ClearNotificationsCommand, int64]

	GetOrder          QueryHandler[queries.GetOrderQuery, queries.OrderResponse]
	ListOrders        QueryHandler[queries.ListOrdersQuery, []queries.OrderResponse]
	ListNotifications QueryHandler[queries.ListNotificationsQuery, queries.ListNotificationsResponse]
	GetAdminStats     QueryHandler[queries.GetAdminStatsQuery, queries.AdminStatsResponse]
	ListCouriers      QueryHandler[queries.ListCouriersQuery, []queries.CourierResponse]
}

type Options struct {
	// ExposeErrorDetails adds the raw error to failure responses.
	ExposeErrorDetails bool
}

// Server holds the HTTP handlers of the dispatch API.
type Server struct {
	handlers Handlers
	tokens   TokenParser
	live     LiveRegistry
	upgrader websocket.Upgrader
	options  Options
	logger   *slog.Logger
}

func NewServer(
	handlers Handlers,
	tokens TokenParser,
	live LiveRegistry,
	options Options,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers: handlers,
		tokens:   tokens,
		live:     live,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// sessions authenticate with a token, not with cookies
			CheckOrigin: func(*http.Request) bool { return true },
		},
		options: options,
		logger:  logger.With("component", "http"),
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.HTTPErrorHandler = s.errorHandler
	e.GET("/health", s.Health)
	e.GET("/ws", s.ServeWS)

	api := e.Group("/api")

	api.POST("/orders", s.CreateOrder, s.authenticate(false))
	api.GET("/orders", s.ListOrders, s.authenticate(false))
	api.GET("/orders/:id", s.GetOrder, s.authenticate(false))
	api.PATCH("/orders/:id/confirm", s.ConfirmReceipt, s.authenticate(true), requireRole(user.RoleClient))

	client := api.Group("/client", s.authenticate(true), requireRole(user.RoleClient))
	client.GET("/orders", s.ListClientOrders)

	admin := api.Group("/admin", s.authenticate(true), requireRole(user.RoleAdmin))
	admin.GET("/orders", s.ListAdminOrders)
	admin.POST("/orders/:orderId/assign", s.AssignOrder)
	admin.GET("/deliveries", s.ListCouriers)
	admin.PUT("/deliveries/:userId/verify", s.VerifyCourier)
	admin.GET("/stats", s.GetAdminStats)

	delivery := api.Group("/delivery", s.authenticate(true), requireRole(user.RoleCourier))
	delivery.GET("/available-orders", s.ListAvailableOrders)
	delivery.POST("/accept-order/:orderId", s.AcceptOrder)
	delivery.GET("/my-deliveries", s.ListMyDeliveries)
	delivery.GET("/history", s.DeliveryHistory)
	delivery.PUT("/update-location/:orderId", s.UpdateLocation)
	delivery.PUT("/complete/:orderId", s.CompleteDelivery)

	notifications := api.Group("/notifications", s.authenticate(true))
	notifications.GET("", s.ListNotifications)
	notifications.PUT("/:id/read", s.MarkNotificationRead)
	notifications.DELETE("", s.ClearNotifications)
}

func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}
