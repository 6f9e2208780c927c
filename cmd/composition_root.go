package cmd

import (
	"log"

	"nexus/internal/adapters/out/kafka"
	"nexus/internal/adapters/out/osrm"
	"nexus/internal/adapters/out/postgres"
	"nexus/internal/core/application/usecases/commands"
	"nexus/internal/core/application/usecases/queries"
	"nexus/internal/core/domain/services"
	"nexus/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use case handlers.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	routes     ports.RouteGeometryProvider
	dispatcher services.Dispatcher
	strategy   services.AssignmentStrategy
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	dispatcher, err := services.NewDispatcher(config.ClosenessKm)
	if err != nil {
		log.Fatalf("invalid closeness configuration: %v", err)
	}

	strategy, err := services.NewGreedyNearestStrategy(config.ClosenessKm)
	if err != nil {
		log.Fatalf("invalid closeness configuration: %v", err)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  kafka.NewPublisher(config.KafkaHost, config.KafkaMapTopic),
		routes:     osrm.NewClient(config.OsrmBaseURL),
		dispatcher: dispatcher,
		strategy:   strategy,
	}
}

func (c *CompositionRoot) CreateReceiveStockCommandHandler() commands.ReceiveStockCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReceiveStockCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher, c.config.WarehouseAddress)
}

func (c *CompositionRoot) CreateAssignShipmentsCommandHandler() commands.AssignShipmentsCommandHandler {
	var f commands.FleetUoWFactory = FuncFleetUoWFactory(func() commands.FleetUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignShipmentsCommandHandler(
		f, c.strategy, c.dispatcher, c.publisher, c.config.StrategyTimeout)
}

func (c *CompositionRoot) CreateStartTransitCommandHandler() commands.StartTransitCommandHandler {
	var f commands.FleetUoWFactory = FuncFleetUoWFactory(func() commands.FleetUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartTransitCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.FleetUoWFactory = FuncFleetUoWFactory(func() commands.FleetUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateSetDriverOfflineCommandHandler() commands.SetDriverOfflineCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetDriverOfflineCommandHandler(f)
}

func (c *CompositionRoot) CreateResetOperationsCommandHandler() commands.ResetOperationsCommandHandler {
	var f commands.FleetUoWFactory = FuncFleetUoWFactory(func() commands.FleetUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResetOperationsCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetInventoryQueryHandler() queries.GetInventoryQueryHandler {
	return queries.NewGetInventoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetFleetQueryHandler() queries.GetFleetQueryHandler {
	return queries.NewGetFleetQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveShipmentsQueryHandler() queries.GetActiveShipmentsQueryHandler {
	return queries.NewGetActiveShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverRouteQueryHandler() queries.GetDriverRouteQueryHandler {
	return queries.NewGetDriverRouteQueryHandler(c.gormDB, c.routes)
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncFleetUoWFactory func() commands.FleetUoW

func (f FuncFleetUoWFactory) Create() commands.FleetUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
