package cmd

import (
	"log/slog"
	"time"

	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

const defaultDispatchPacing = 100 * time.Millisecond

// CompositionRoot wires adapters to use cases. Handlers are created on
// demand; the broadcaster, the notifier and the scheduler handler are
// shared singletons.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	matcher     services.DriverMatcher
	notifier    notifierPort
	broadcaster *eventbus.Broadcaster
	logger      *slog.Logger

	processPendingOrdersHandler *commands.ProcessPendingOrdersCommandHandler
}

// notifierPort bundles the two notification capabilities the adapters
// implement together.
type notifierPort interface {
	ports.AssignmentNotifier
	ports.DriverReviewNotifier
}

// NewCompositionRoot builds the object graph. A missing Telegram token
// selects the recording notifier.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	var notifier notifierPort
	if config.TelegramBotToken != "" {
		notifier = notify.NewTelegramNotifier(config.TelegramBotToken, logger)
	} else {
		logger.Info("no Telegram token configured, notifications will be recorded only")
		notifier = notify.NewRecordingNotifier(logger)
	}

	root := &CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		matcher:     services.NewDriverMatcher(),
		notifier:    notifier,
		broadcaster: eventbus.NewBroadcaster(logger),
		logger:      logger,
	}

	root.processPendingOrdersHandler = commands.NewProcessPendingOrdersCommandHandler(
		root.orderUoWFactory(),
		root.CreateAssignOrderCommandHandler(),
		parsePacing(config.DispatchPacingMs, logger),
		logger,
	)

	return root
}

// Broadcaster exposes the event fan-out for the WebSocket endpoint.
func (c *CompositionRoot) Broadcaster() *eventbus.Broadcaster {
	return c.broadcaster
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.broadcaster)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.uoWFactory(), c.matcher,
		c.notifier, c.broadcaster, c.logger)
}

// ProcessPendingOrdersCommandHandler returns the shared scheduler handler.
// It must be a singleton: the re-entry guard lives on the handler.
func (c *CompositionRoot) ProcessPendingOrdersCommandHandler() *commands.ProcessPendingOrdersCommandHandler {
	return c.processPendingOrdersHandler
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.uoWFactory(), c.broadcaster)
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	return commands.NewRegisterDriverCommandHandler(c.driverUoWFactory(), c.broadcaster)
}

func (c *CompositionRoot) CreateReviewDriverCommandHandler() commands.ReviewDriverCommandHandler {
	return commands.NewReviewDriverCommandHandler(c.driverUoWFactory(), c.notifier,
		c.broadcaster, c.logger)
}

func (c *CompositionRoot) CreateUpdateDriverPresenceCommandHandler() commands.UpdateDriverPresenceCommandHandler {
	return commands.NewUpdateDriverPresenceCommandHandler(c.driverUoWFactory(), c.broadcaster)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllDriversQueryHandler() queries.GetAllDriversQueryHandler {
	return queries.NewGetAllDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRecentAssignmentsQueryHandler() queries.GetRecentAssignmentsQueryHandler {
	return queries.NewGetRecentAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSystemStatsQueryHandler() queries.GetSystemStatsQueryHandler {
	return queries.NewGetSystemStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) driverUoWFactory() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func parsePacing(raw string, logger *slog.Logger) time.Duration {
	if raw == "" {
		return defaultDispatchPacing
	}

	parsed, err := time.ParseDuration(raw + "ms")
	if err != nil || parsed < 0 {
		logger.Warn("invalid DISPATCH_PACING_MS, using default", "value", raw)
		return defaultDispatchPacing
	}
	return parsed
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
