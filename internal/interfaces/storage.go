package interfaces

import (
	"context"

	"github.com/folioworks/folioboard/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	UserStore() UserStore
	PortfolioStore() PortfolioStore
	PrivacyStore() PrivacyStore

	// Lifecycle
	Close() error
}

// UserStore manages community member profiles and following sets.
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID string) error
}

// PortfolioStore persists per-user portfolio snapshots.
type PortfolioStore interface {
	GetSnapshot(ctx context.Context, userID string) (*models.PortfolioSnapshot, error)
	SaveSnapshot(ctx context.Context, snapshot *models.PortfolioSnapshot) error
	DeleteSnapshot(ctx context.Context, userID string) error

	// ListPublicSnapshots returns all snapshots that are connected and
	// shared publicly, in no particular order.
	ListPublicSnapshots(ctx context.Context) ([]*models.PortfolioSnapshot, error)
}

// PrivacyStore persists per-user disclosure policies.
type PrivacyStore interface {
	GetSettings(ctx context.Context, userID string) (*models.PrivacySettings, error)
	SaveSettings(ctx context.Context, settings *models.PrivacySettings) error
}
