package cmd

import (
	"context"
	"fmt"
	"time"

	"theaterwecker/core/broker"
	"theaterwecker/core/config"
	"theaterwecker/core/database"
	"theaterwecker/core/logger"
	"theaterwecker/core/mail"
	"theaterwecker/core/metrics"
	"theaterwecker/core/storage"
	"theaterwecker/feature/listing"
	"theaterwecker/feature/notification"
	"theaterwecker/feature/performance"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles the wired components every command works with.
type runtime struct {
	cfg          *config.Config
	logger       *zap.Logger
	db           *gorm.DB
	metrics      *metrics.Recorder
	performances *performance.Service
	dispatcher   *notification.Dispatcher
}

// bootstrap loads configuration and wires storage, scraping and delivery.
func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := performance.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate performance tables: %w", err)
	}
	if err := notification.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate notification tables: %w", err)
	}

	rec := metrics.New()

	layout, err := listing.LayoutFor(cfg.Scraper.Mode)
	if err != nil {
		return nil, err
	}

	deps := performance.Deps{
		DB:        db,
		Fetcher:   listing.NewFetcher(cfg.Scraper, l, rec),
		Parser:    listing.NewParser(layout, listing.DefaultRules(), l, rec),
		Publisher: broker.New(cfg.Broker, l),
		Metrics:   rec,
		Logger:    l,
	}

	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			l.Warn("Listing archive unavailable", zap.Error(err))
		} else {
			deps.Archive = listing.NewArchive(client, cfg.Storage.Bucket, cfg.Storage.Prefix, l)
			deps.ArchiveRetention = time.Duration(cfg.Storage.RetentionDays) * 24 * time.Hour
		}
	}

	svc, err := performance.NewService(cfg.Theater, deps)
	if err != nil {
		return nil, err
	}

	dispatcher := notification.NewDispatcher(db, mail.NewSMTPSender(cfg.Mail), cfg.Notify, rec, l)

	return &runtime{
		cfg:          cfg,
		logger:       l,
		db:           db,
		metrics:      rec,
		performances: svc,
		dispatcher:   dispatcher,
	}, nil
}
