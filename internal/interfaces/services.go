package interfaces

import (
	"context"

	"github.com/folioworks/folioboard/internal/models"
)

// PortfolioService owns provider sync, valuation, and the owner view.
type PortfolioService interface {
	// Sync pulls the full position set from the brokerage provider,
	// valuates it, and replaces the stored snapshot.
	Sync(ctx context.Context, userID string) (*models.OwnerPortfolio, error)

	// GetOwnerPortfolio returns the full, unredacted view with totals
	// recomputed from current positions.
	GetOwnerPortfolio(ctx context.Context, userID string) (*models.OwnerPortfolio, error)

	// Disconnect removes the stored snapshot and marks the connection gone.
	Disconnect(ctx context.Context, userID string) error

	// SetPublic toggles whether the portfolio participates in the
	// community leaderboard.
	SetPublic(ctx context.Context, userID string, public bool) error
}

// CommunityService owns the privacy-applied public views and the leaderboard.
type CommunityService interface {
	// GetPublicPortfolio returns the redacted projection, or
	// common.ErrNotFound for both missing and private portfolios.
	GetPublicPortfolio(ctx context.Context, userID string) (*models.PublicPortfolio, error)

	// ListPublicUsers returns one sorted, privacy-applied leaderboard page.
	ListPublicUsers(ctx context.Context, query models.LeaderboardQuery) (*models.LeaderboardPage, error)

	// GetPrivacySettings returns the owner's policy, creating all-visible
	// defaults on first read.
	GetPrivacySettings(ctx context.Context, userID string) (*models.PrivacySettings, error)

	// UpdatePrivacySettings replaces the owner's policy.
	UpdatePrivacySettings(ctx context.Context, userID string, settings *models.PrivacySettings) error

	// Follow and Unfollow maintain the viewer's following set.
	Follow(ctx context.Context, userID, targetID string) error
	Unfollow(ctx context.Context, userID, targetID string) error

	// GetFollowing returns the viewer's following set, empty when the
	// profile does not exist yet.
	GetFollowing(ctx context.Context, userID string) ([]string, error)
}

// SentimentService serves sentiment-filtered pages of the trending ranking.
type SentimentService interface {
	ListSentimentStocks(ctx context.Context, query models.SentimentQuery) (*models.SentimentPage, error)
}
