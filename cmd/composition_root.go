package cmd

import (
	"log/slog"

	dispatchhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/notificationrepo"
	"dispatch/internal/adapters/out/postgres/userrepo"
	"dispatch/internal/adapters/out/realtime"
	"dispatch/internal/core/application/notifier"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/auth"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	policy     services.AssignmentPolicy
	tokens     *auth.HMACStrategy
	hub        *realtime.Hub
	relay      *realtime.PgRelay
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	hub := realtime.NewHub(logger)

	var (
		publisher ports.EventPublisher = hub
		relay     *realtime.PgRelay
	)
	if config.RealtimeRelay == RelayPostgres {
		relay = realtime.NewPgRelay(gormDB, config.DSN(), hub, logger)
		publisher = relay
	}

	// The notifier writes outside the command's transaction, which has
	// already committed when it runs.
	dispatcher := notifier.New(
		userrepo.NewGormUserRepository(gormDB, nil),
		notificationrepo.NewGormNotificationRepository(gormDB, nil),
		publisher,
		logger,
	)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, dispatcher),
		policy:     services.NewAssignmentPolicy(config.SelfAcceptRequiresVerification),
		tokens:     auth.NewHMACStrategy(config.TokenSecret, config.TokenTTL),
		hub:        hub,
		relay:      relay,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.assignmentUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.assignmentUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateUpdateDeliveryLocationCommandHandler() commands.UpdateDeliveryLocationCommandHandler {
	return commands.NewUpdateDeliveryLocationCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmReceiptCommandHandler() commands.ConfirmReceiptCommandHandler {
	return commands.NewConfirmReceiptCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateVerifyCourierCommandHandler() commands.VerifyCourierCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVerifyCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateClearNotificationsCommandHandler() commands.ClearNotificationsCommandHandler {
	return commands.NewClearNotificationsCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAdminStatsQueryHandler() queries.GetAdminStatsQueryHandler {
	return queries.NewGetAdminStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCouriersQueryHandler() queries.ListCouriersQueryHandler {
	return queries.NewListCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *dispatchhttp.Server {
	handlers := dispatchhttp.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		AssignOrder:          c.CreateAssignOrderCommandHandler(),
		AcceptOrder:          c.CreateAcceptOrderCommandHandler(),
		UpdateLocation:       c.CreateUpdateDeliveryLocationCommandHandler(),
		CompleteDelivery:     c.CreateCompleteDeliveryCommandHandler(),
		ConfirmReceipt:       c.CreateConfirmReceiptCommandHandler(),
		VerifyCourier:        c.CreateVerifyCourierCommandHandler(),
		MarkNotificationRead: c.CreateMarkNotificationReadCommandHandler(),
		ClearNotifications:   c.CreateClearNotificationsCommandHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
		ListOrders:           c.CreateListOrdersQueryHandler(),
		ListNotifications:    c.CreateListNotificationsQueryHandler(),
		GetAdminStats:        c.CreateGetAdminStatsQueryHandler(),
		ListCouriers:         c.CreateListCouriersQueryHandler(),
	}
	return dispatchhttp.NewServer(handlers, c.tokens, c.hub, dispatchhttp.Options{
		ExposeErrorDetails: c.config.ExposeErrorDetails,
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.hub, c.config.SweepSchedule, c.logger)
}

// Relay is nil unless live events go through Postgres.
func (c *CompositionRoot) Relay() *realtime.PgRelay {
	return c.relay
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
