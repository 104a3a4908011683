package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/babylonlabs-io/staking-ledger/internal/api"
	"github.com/babylonlabs-io/staking-ledger/internal/asset"
	"github.com/babylonlabs-io/staking-ledger/internal/config"
	"github.com/babylonlabs-io/staking-ledger/internal/db"
	dbmodel "github.com/babylonlabs-io/staking-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-ledger/internal/observability/tracing"
	"github.com/babylonlabs-io/staking-ledger/internal/queue"
	"github.com/babylonlabs-io/staking-ledger/internal/services"
	"github.com/babylonlabs-io/staking-ledger/internal/staking"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the staking ledger server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up staking db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	// Create a basic zap logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating zap logger")
	}
	defer func() {
		// stderr sync fails on some platforms, nothing to recover there
		_ = zapLogger.Sync()
	}()

	queueManager, err := queue.NewQueueManager(&cfg.Queue, zapLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize event consumer")
	}
	if err := queueManager.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start event consumer")
	}
	defer queueManager.Shutdown()

	ledger, err := newAssetLedger(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating asset ledger")
	}
	assetLedger := asset.NewLedgerWithMetrics(ledger)

	schedule, err := cfg.Pool.Schedule()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid reward schedule")
	}

	events := services.NewEventQueue(0)
	stakingPool, err := staking.NewPool(
		staking.Params{Address: cfg.Pool.GetAddress(), Schedule: schedule},
		assetLedger,
		staking.WithEventSink(events),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating staking pool")
	}
	pool := staking.NewPoolWithMetrics(stakingPool)

	service := services.NewService(cfg, dbClient, pool, queueManager, events)

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	apiServer := api.New(cfg, pool, dbClient, assetLedger)
	go func() {
		if err := apiServer.Start(); err != nil {
			log.Fatal().Err(err).Msg("api server stopped")
		}
	}()

	// the processor outlives ctx so events from in-flight requests still get flushed
	syncCtx, stopSync := context.WithCancel(context.WithoutCancel(ctx))
	syncDone := make(chan struct{})
	go func() {
		service.StartLedgerSync(syncCtx)
		close(syncDone)
	}()

	log.Info().
		Str("pool", cfg.Pool.GetAddress().Hex()).
		Str("asset", cfg.Pool.GetAssetAddress().Hex()).
		Msg("staking ledger started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down api server")
	}

	stopSync()
	<-syncDone

	log.Info().Msg("staking ledger stopped")
	return nil
}

// newAssetLedger creates the in-process asset ledger and credits the genesis balances.
func newAssetLedger(ctx context.Context, cfg *config.Config) (*asset.MemoryLedger, error) {
	ledger := asset.NewMemoryLedger(cfg.Pool.GetAssetAddress())

	balances, err := cfg.Asset.GenesisBalances()
	if err != nil {
		return nil, err
	}
	for account, balance := range balances {
		if balance.IsZero() {
			continue
		}
		if err := ledger.Mint(ctx, account, balance); err != nil {
			return nil, fmt.Errorf("failed to credit genesis balance of %s: %w", account.Hex(), err)
		}
	}

	log.Ctx(ctx).Info().Int("accounts", len(balances)).Msg("asset ledger seeded from genesis")
	return ledger, nil
}
