package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpadapter "fleetdispatch/internal/adapters/in/http"
	"fleetdispatch/internal/adapters/out/locks"
	"fleetdispatch/internal/adapters/out/memory"
	"fleetdispatch/internal/adapters/out/postgres"
	"fleetdispatch/internal/adapters/out/postgres/auditrepo"
	"fleetdispatch/internal/adapters/out/seed"
	"fleetdispatch/internal/core/application/usecases/commands"
	"fleetdispatch/internal/core/application/usecases/queries"
	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/network"
	"fleetdispatch/internal/core/domain/services"
	"fleetdispatch/internal/core/ports"
	"fleetdispatch/internal/jobs"
	"fleetdispatch/internal/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

type CompositionRoot struct {
	config  Config
	logger  *slog.Logger
	metrics *metrics.Collector

	uowFactory ports.UnitOfWorkFactory
	auditLog   ports.AuditLog
	lock       ports.ExecutionLock
	graph      *network.Graph

	depot       kernel.Location
	finder      *services.PathFinder
	synthesizer *services.RouteSynthesizer

	closers []func() error
}

// NewCompositionRoot wires the store, lock and road network selected by
// config and applies the seed data.
func NewCompositionRoot(ctx context.Context, config Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:  config,
		logger:  logger,
		metrics: metrics.NewCollector(),
	}

	var err error
	if c.depot, err = kernel.NewLocation(config.DepotLocation); err != nil {
		return nil, fmt.Errorf("depot: %w", err)
	}
	if c.finder, err = services.NewPathFinder(config.FuelRatePerKm); err != nil {
		return nil, fmt.Errorf("path finder: %w", err)
	}
	if c.synthesizer, err = services.NewRouteSynthesizer(c.depot); err != nil {
		return nil, fmt.Errorf("route synthesizer: %w", err)
	}

	if err := c.openStore(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.openLock(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.loadSeed(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) openStore() error {
	if c.config.StoreDriver != StorePostgres {
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
		c.auditLog = memory.NewAuditLog(c.config.AuditRetention)
		return nil
	}

	db, err := postgres.Open(c.config.DSN())
	if err != nil {
		return err
	}
	c.closers = append(c.closers, func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})
	if err := postgres.Migrate(db); err != nil {
		return err
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
	c.auditLog = auditrepo.NewGormAuditLog(db)
	return nil
}

func (c *CompositionRoot) openLock() error {
	if c.config.LockDriver != LockRedis {
		c.lock = locks.NewLocalLock()
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: c.config.RedisAddr})
	c.closers = append(c.closers, client.Close)

	lock, err := locks.NewRedisLock(client, locks.DefaultLockKey, c.config.LockTTL, c.logger)
	if err != nil {
		return err
	}
	c.lock = lock
	return nil
}

func (c *CompositionRoot) loadSeed(ctx context.Context) error {
	file, err := seed.Default()
	if c.config.SeedFile != "" {
		file, err = seed.Load(c.config.SeedFile)
	}
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	if c.graph, err = file.BuildGraph(); err != nil {
		return fmt.Errorf("road network: %w", err)
	}
	if !c.graph.HasNode(c.depot) {
		return fmt.Errorf("depot %s is not part of the road network", c.depot)
	}

	added, err := file.Apply(ctx, c.uowFactory)
	if err != nil {
		return fmt.Errorf("apply seed: %w", err)
	}
	c.logger.InfoContext(ctx, "Seed applied",
		"added", added,
		"locations", len(c.graph.Snapshot().Nodes()),
		"segments", len(c.graph.Segments()),
	)
	return nil
}

// Close releases the database and Redis connections.
func (c *CompositionRoot) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.logger.Warn("Failed to close resource", "error", err)
		}
	}
	c.closers = nil
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateExecuteBatchCommandHandler() commands.ExecuteBatchCommandHandler {
	return commands.NewExecuteBatchCommandHandler(
		c.commandUoWFactory(), c.auditLog, c.lock, c.synthesizer, c.config.BatchSettleDelay, c.logger, c.metrics)
}

func (c *CompositionRoot) CreateAssignParcelCommandHandler() commands.AssignParcelCommandHandler {
	return commands.NewAssignParcelCommandHandler(c.commandUoWFactory(), c.auditLog, c.lock, c.logger, c.metrics)
}

func (c *CompositionRoot) CreateToggleRoadCommandHandler() commands.ToggleRoadCommandHandler {
	return commands.NewToggleRoadCommandHandler(
		c.graph, c.commandUoWFactory(), services.NewImpactAnalyzer(c.finder), c.logger, c.metrics)
}

func (c *CompositionRoot) CreateGetOptimizationProposalsQueryHandler() queries.GetOptimizationProposalsQueryHandler {
	return queries.NewGetOptimizationProposalsQueryHandler(
		c.uowFactory, c.graph, services.NewProposalGenerator(c.finder, c.depot))
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	uows := c.commandUoWFactory()
	handlers := httpadapter.Handlers{
		ExecuteBatch: c.CreateExecuteBatchCommandHandler(),
		AssignParcel: c.CreateAssignParcelCommandHandler(),
		ToggleRoad:   c.CreateToggleRoadCommandHandler(),
		CreateParcel: commands.NewCreateParcelCommandHandler(uows),
		CreateTruck:  commands.NewCreateTruckCommandHandler(uows),
		CreateRoute:  commands.NewCreateRouteCommandHandler(uows),

		FindPath:  queries.NewFindPathQueryHandler(c.graph, c.finder),
		Proposals: c.CreateGetOptimizationProposalsQueryHandler(),
		Replay:    queries.NewReplayBatchQueryHandler(c.auditLog),
		Tender:    queries.NewGetTenderManifestQueryHandler(c.uowFactory),
		Workflows: queries.NewListWorkflowsQueryHandler(c.auditLog),
		Alerts:    queries.NewListAlertsQueryHandler(c.auditLog),
		Status:    queries.NewGetSystemStatusQueryHandler(c.uowFactory, c.auditLog, c.graph),
		Records:   queries.NewListRecordsQueryHandler(c.uowFactory),
	}
	return httpadapter.NewServer(handlers, httpadapter.Options{
		AdminKey:    c.config.AdminAPIKey,
		PartnerKey:  c.config.ExternalAPIKey,
		TenderRate:  c.config.TenderRateLimit,
		TenderBurst: 5,
	}, c.logger, c.metrics)
}

// CreateJobManager returns a manager with the auto optimization job, or an
// empty one unless AUTO_OPTIMIZE_SCHEDULE names a schedule.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	if !c.config.AutoOptimizationEnabled() {
		return jobs.NewJobManager(nil)
	}
	job := jobs.NewAutoOptimizationJob(
		c.CreateGetOptimizationProposalsQueryHandler(),
		c.CreateExecuteBatchCommandHandler(),
		c.config.AutoOptimizeSchedule,
		c.logger,
	)
	return jobs.NewJobManager(job)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
