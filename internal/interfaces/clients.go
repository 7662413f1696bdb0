// Package interfaces defines service contracts for Folioboard
package interfaces

import (
	"context"

	"github.com/folioworks/folioboard/internal/models"
)

// BrokerageClient is the brokerage-data provider boundary. A sync returns
// the full account/position set for a connection; snapshots replace stored
// state wholesale.
type BrokerageClient interface {
	// GetSnapshot retrieves all accounts and positions for a user's
	// connection, plus the provider's last-synced timestamp.
	GetSnapshot(ctx context.Context, userID string) (*models.ProviderSnapshot, error)
}

// TrendFeedClient is the upstream trending-stocks feed boundary. The feed
// paginates on an unfiltered basis sorted by the requested key; it has no
// sentiment filter support.
type TrendFeedClient interface {
	// GetTrending returns one upstream page sorted by the requested key.
	GetTrending(ctx context.Context, query models.TrendingQuery) ([]models.TrendingStock, error)

	// GetChart returns recent closes for a ticker, used for sparkline
	// enrichment. Failures degrade the single symbol, never the page.
	GetChart(ctx context.Context, ticker string) ([]float64, error)
}
