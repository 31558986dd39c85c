package config

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"x402-gate/application/resolvers"
	"x402-gate/application/usecases"
	"x402-gate/domain/interfaces"
	"x402-gate/infrastructure/blockchain"
	"x402-gate/infrastructure/httpapi"
	"x402-gate/infrastructure/logger"
	"x402-gate/infrastructure/metrics"
	"x402-gate/infrastructure/repository"
	"x402-gate/infrastructure/store"
)

// Container represents the dependency injection container
type Container struct {
	Config *Config

	// Infrastructure
	Logger    interfaces.Logger
	DB        *gorm.DB
	EthClient *ethclient.Client
	Clock     interfaces.Clock
	Exporter  *metrics.Exporter

	// Payment plumbing
	JobStore          interfaces.JobStore
	Sweeper           *store.Sweeper
	Verifier          interfaces.ChainVerifier
	Resolver          interfaces.ContentResolver
	ReceiptRepository interfaces.ReceiptRepository
	RateLimiter       *httpapi.RateLimiter

	// Use Cases
	UnlockContentUseCase interfaces.UnlockContentUseCase
	PaymentStatusUseCase interfaces.PaymentStatusUseCase
}

// NewContainer creates a new dependency injection container
func NewContainer(config *Config) (*Container, error) {
	container := &Container{
		Config: config,
	}

	// Initialize logger
	container.Logger = logger.NewLogrusLogger(config.LogLevel)
	container.Clock = store.NewSystemClock()
	container.Exporter = metrics.NewExporter(prometheus.DefaultRegisterer, container.Logger)

	// Initialize blockchain client
	if err := container.initBlockchainClient(); err != nil {
		return nil, fmt.Errorf("failed to initialize blockchain client: %w", err)
	}

	// Initialize database (optional)
	if config.Database.Host != "" {
		if err := container.initDatabase(); err != nil {
			container.Logger.Warn("Failed to initialize receipt archive", "error", err)
			// The archive is optional, so we continue
		}
	}

	// Initialize payment services
	if err := container.initServices(); err != nil {
		return nil, err
	}

	// Initialize use cases
	container.initUseCases()

	return container, nil
}

// initBlockchainClient initializes the blockchain client and verifier
func (c *Container) initBlockchainClient() error {
	ethClient, err := blockchain.Dial(c.Config.Chain.RPCAddr, c.Config.Chain.ChainID)
	if err != nil {
		return err
	}
	c.EthClient = ethClient

	policy := blockchain.PolicyOptimistic
	if c.Config.Chain.VerifyPolicy == "strict" {
		policy = blockchain.PolicyStrict
	}

	c.Verifier = blockchain.NewEVMVerifier(ethClient, blockchain.VerifierConfig{
		ChainID:      c.Config.Chain.ChainID,
		Treasury:     common.HexToAddress(c.Config.Chain.TreasuryAddress),
		PollInterval: c.Config.Chain.PollInterval,
		PollBudget:   c.Config.Chain.PollBudget,
		Policy:       policy,
	}, c.Logger)

	return nil
}

// initDatabase initializes the optional receipt archive
func (c *Container) initDatabase() error {
	dsn := c.Config.Database.GetDatabaseDSN()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return errors.Wrap(err, "failed to connect to database")
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get underlying sql.DB")
	}

	sqlDB.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)

	if err := repository.Migrate(db); err != nil {
		return errors.Wrap(err, "failed to migrate receipt schema")
	}

	c.DB = db
	c.ReceiptRepository = repository.NewReceiptRepository(db)

	return nil
}

// initServices initializes the job store, sweeper and resolvers
func (c *Container) initServices() error {
	pricing, err := c.Config.PriceTable()
	if err != nil {
		return err
	}

	c.JobStore = store.NewMemoryJobStore(pricing, c.Config.Payment.JobTimeout, c.Clock, c.Logger)

	sweeper, err := store.NewSweeper(c.JobStore, c.Config.Payment.SweepInterval, c.Logger, c.Exporter.RecordSweep)
	if err != nil {
		return fmt.Errorf("failed to create sweeper: %w", err)
	}
	c.Sweeper = sweeper

	c.Resolver = resolvers.NewDefaultRegistry(
		c.Config.Resolver.MarketBaseURL,
		c.Config.Resolver.RequestTimeout,
		c.Logger,
	)

	if c.Config.RateLimit.RequestsPerSecond > 0 {
		c.RateLimiter = httpapi.NewRateLimiter(
			c.Config.RateLimit.RequestsPerSecond,
			c.Config.RateLimit.Burst,
			c.Logger,
		)
	}

	return nil
}

// initUseCases initializes use cases
func (c *Container) initUseCases() {
	pricing, _ := c.Config.PriceTable()

	c.UnlockContentUseCase = usecases.NewUnlockContentUseCase(
		c.JobStore,
		c.Verifier,
		c.Resolver,
		c.ReceiptRepository,
		pricing,
		usecases.GateConfig{
			Treasury:   common.HexToAddress(c.Config.Chain.TreasuryAddress),
			ChainID:    c.Config.Chain.ChainID,
			Network:    c.Config.Chain.Network,
			JobTimeout: c.Config.Payment.JobTimeout,
			MaxTxAge:   c.Config.Payment.MaxTxAge,
		},
		c.Clock,
		c.Logger,
	)

	c.PaymentStatusUseCase = usecases.NewPaymentStatusUseCase(c.Verifier, c.Logger)
}

// Close closes all resources
func (c *Container) Close() error {
	// Stop the sweeper
	if c.Sweeper != nil {
		c.Sweeper.Stop()
	}

	// Close Ethereum client
	if c.EthClient != nil {
		c.EthClient.Close()
	}

	// Close database
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				c.Logger.Error("Failed to close database", "error", err)
			}
		}
	}

	return nil
}
