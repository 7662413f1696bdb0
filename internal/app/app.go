// Package app wires configuration, storage, clients, and services into the
// shared application core used by cmd/folioboard-server.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/folioworks/folioboard/internal/clients/brokerlink"
	"github.com/folioworks/folioboard/internal/clients/trendfeed"
	"github.com/folioworks/folioboard/internal/common"
	"github.com/folioworks/folioboard/internal/interfaces"
	"github.com/folioworks/folioboard/internal/services/community"
	"github.com/folioworks/folioboard/internal/services/portfolio"
	"github.com/folioworks/folioboard/internal/services/sentiment"
	"github.com/folioworks/folioboard/internal/storage"
)

// App holds all initialized services, clients, and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	BrokerageClient  interfaces.BrokerageClient
	TrendFeedClient  interfaces.TrendFeedClient
	PortfolioService interfaces.PortfolioService
	CommunityService interfaces.CommunityService
	SentimentService interfaces.SentimentService
	StartupTime      time.Time

	schedulerCancel context.CancelFunc
}

// NewApp initializes all services, clients, and storage from config.
// configPath may be empty, in which case FOLIOBOARD_CONFIG and the default
// location are tried.
func NewApp(configPath string) (*App, error) {
	if configPath == "" {
		configPath = os.Getenv("FOLIOBOARD_CONFIG")
	}
	if configPath == "" {
		configPath = "config/folioboard.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	brokerage := brokerlink.NewClient(config.Clients.Brokerlink.APIKey,
		brokerlink.WithBaseURL(config.Clients.Brokerlink.BaseURL),
		brokerlink.WithRateLimit(config.Clients.Brokerlink.RateLimit),
		brokerlink.WithTimeout(config.Clients.Brokerlink.GetTimeout()),
		brokerlink.WithLogger(logger),
	)

	feed := trendfeed.NewClient(config.Clients.Trendfeed.APIKey,
		trendfeed.WithBaseURL(config.Clients.Trendfeed.BaseURL),
		trendfeed.WithRateLimit(config.Clients.Trendfeed.RateLimit),
		trendfeed.WithTimeout(config.Clients.Trendfeed.GetTimeout()),
		trendfeed.WithLogger(logger),
	)

	return &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		BrokerageClient:  brokerage,
		TrendFeedClient:  feed,
		PortfolioService: portfolio.NewService(brokerage, storageManager, logger),
		CommunityService: community.NewService(storageManager, logger, config.Community.TopPositions),
		SentimentService: sentiment.NewService(feed, logger, config.Sentiment.OverfetchMultiplier, config.Clients.Trendfeed.GetChartTimeout()),
		StartupTime:      time.Now(),
	}, nil
}

// Close stops background work and releases storage.
func (a *App) Close() {
	if a.schedulerCancel != nil {
		a.schedulerCancel()
	}
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Storage close failed")
		}
	}
}
