package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	slotservice "criadores/contexts/campaign-ops/slot-service"
	postgresadapter "criadores/contexts/campaign-ops/slot-service/adapters/postgres"
	workerapp "criadores/contexts/campaign-ops/slot-service/application/workers"
	"criadores/contexts/campaign-ops/slot-service/ports"
	"criadores/internal/platform/config"
	"criadores/internal/platform/db"
	"criadores/internal/platform/httpserver"
	"criadores/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	database *db.Database
	logger   *slog.Logger
}

type WorkerApp struct {
	database     *db.Database
	nats         *messaging.NATSPublisher
	outboxRelay  workerapp.OutboxRelay
	sweeper      workerapp.IntegritySweeper
	relayEnabled bool
	sweepEnabled bool
	relayTick    time.Duration
	sweepTick    time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.DatabaseDSN) == "" {
		return nil, errors.New("DATABASE_DSN is required")
	}

	database, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := postgresadapter.Migrate(database.DB); err != nil {
		_ = database.Close()
		return nil, err
	}

	repo := postgresadapter.NewRepository(database.DB, logger)
	module := slotservice.NewModule(slotservice.Dependencies{
		Directory:   repo,
		Campaigns:   repo,
		Assignments: repo,
		Stages:      repo,
		Audit:       repo,
		Integrity:   repo,
		Clock:       postgresadapter.SystemClock{},
		IDGenerator: postgresadapter.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		database: database,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.DatabaseDSN) == "" {
		return nil, errors.New("DATABASE_DSN is required")
	}

	database, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := postgresadapter.Migrate(database.DB); err != nil {
		_ = database.Close()
		return nil, err
	}

	repo := postgresadapter.NewRepository(database.DB, logger)

	var nats *messaging.NATSPublisher
	var publisher ports.EventPublisher
	if strings.TrimSpace(cfg.NATSURL) != "" {
		nats, err = messaging.ConnectNATS(cfg.NATSURL, cfg.ServiceName, logger)
		if err != nil {
			_ = database.Close()
			return nil, err
		}
		publisher = nats
	} else {
		publisher = messaging.NewBus(logger)
	}

	module := slotservice.NewModule(slotservice.Dependencies{
		Directory:   repo,
		Campaigns:   repo,
		Assignments: repo,
		Stages:      repo,
		Audit:       repo,
		Integrity:   repo,
		Clock:       postgresadapter.SystemClock{},
		IDGenerator: postgresadapter.UUIDGenerator{},
		Logger:      logger,
	})

	return &WorkerApp{
		database: database,
		nats:     nats,
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    repo,
			Publisher: publisher,
			Clock:     postgresadapter.SystemClock{},
			BatchSize: cfg.RelayBatchSize,
			Logger:    logger,
		},
		sweeper: workerapp.IntegritySweeper{
			Validate: module.Handler.ValidateIntegrity,
			Fix:      module.Handler.FixIntegrity,
			Logger:   logger,
		},
		relayEnabled: cfg.EnableOutboxRelay,
		sweepEnabled: cfg.EnableIntegritySweeper,
		relayTick:    cfg.RelayInterval,
		sweepTick:    cfg.SweeperInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.database != nil {
		return a.database.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	relayTicker := time.NewTicker(w.relayTick)
	defer relayTicker.Stop()
	sweepTicker := time.NewTicker(w.sweepTick)
	defer sweepTicker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"relay_enabled", w.relayEnabled,
		"sweeper_enabled", w.sweepEnabled,
		"relay_interval", w.relayTick.String(),
		"sweeper_interval", w.sweepTick.String(),
	)

	if w.sweepEnabled {
		if err := w.sweeper.RunOnce(ctx); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-relayTicker.C:
			if !w.relayEnabled {
				continue
			}
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		case <-sweepTicker.C:
			if !w.sweepEnabled {
				continue
			}
			if err := w.sweeper.RunOnce(ctx); err != nil {
				return err
			}
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.nats != nil {
		w.nats.Close()
	}
	if w.database != nil {
		return w.database.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
