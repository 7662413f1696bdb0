package portfolio

import (
	"context"
	"errors"
	"fmt"

	"github.com/folioworks/folioboard/internal/common"
	"github.com/folioworks/folioboard/internal/interfaces"
	"github.com/folioworks/folioboard/internal/models"
)

// Service implements interfaces.PortfolioService.
type Service struct {
	brokerage interfaces.BrokerageClient
	storage   interfaces.StorageManager
	logger    *common.Logger
}

// NewService creates a new portfolio service.
func NewService(brokerage interfaces.BrokerageClient, storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		brokerage: brokerage,
		storage:   storage,
		logger:    logger,
	}
}

// Sync pulls the full account/position set from the brokerage provider and
// replaces the stored snapshot wholesale. Per-position valuation never
// aborts the sync; a position with a missing quote degrades to zero.
func (s *Service) Sync(ctx context.Context, userID string) (*models.OwnerPortfolio, error) {
	provider, err := s.brokerage.GetSnapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("brokerage sync for user %s: %w", userID, err)
	}

	ValuateAccounts(provider.Accounts)

	// Preserve the owner's existing sharing choice across syncs.
	isPublic := false
	if prev, err := s.storage.PortfolioStore().GetSnapshot(ctx, userID); err == nil {
		isPublic = prev.IsPublic
	}

	snapshot := &models.PortfolioSnapshot{
		UserID:       userID,
		Accounts:     provider.Accounts,
		LastSyncedAt: provider.LastSyncedAt,
		IsConnected:  true,
		IsPublic:     isPublic,
	}

	if err := s.storage.PortfolioStore().SaveSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("save snapshot for user %s: %w", userID, err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Int("accounts", len(snapshot.Accounts)).
		Time("last_synced", snapshot.LastSyncedAt).
		Msg("Portfolio synced")

	return s.ownerView(snapshot)
}

// GetOwnerPortfolio returns the full unredacted view. Totals are derived
// on read from the stored positions.
func (s *Service) GetOwnerPortfolio(ctx context.Context, userID string) (*models.OwnerPortfolio, error) {
	snapshot, err := s.storage.PortfolioStore().GetSnapshot(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		// No connection yet: an explicit empty state, not an error.
		return &models.OwnerPortfolio{Accounts: []models.AccountView{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.ownerView(snapshot)
}

// Disconnect deletes the stored snapshot; subsequent public lookups yield
// the same not-found as a user who never connected.
func (s *Service) Disconnect(ctx context.Context, userID string) error {
	if err := s.storage.PortfolioStore().DeleteSnapshot(ctx, userID); err != nil {
		return fmt.Errorf("disconnect user %s: %w", userID, err)
	}
	s.logger.Info().Str("user_id", userID).Msg("Brokerage connection removed")
	return nil
}

// SetPublic toggles leaderboard participation for the user's snapshot.
func (s *Service) SetPublic(ctx context.Context, userID string, public bool) error {
	snapshot, err := s.storage.PortfolioStore().GetSnapshot(ctx, userID)
	if err != nil {
		return err
	}
	snapshot.IsPublic = public
	if err := s.storage.PortfolioStore().SaveSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("update sharing for user %s: %w", userID, err)
	}
	return nil
}

// ownerView assembles the full view: valuated positions, derived totals,
// per-position weights, and the equities/options partition.
func (s *Service) ownerView(snapshot *models.PortfolioSnapshot) (*models.OwnerPortfolio, error) {
	// Revaluate on read so stored derived fields can never go stale.
	ValuateAccounts(snapshot.Accounts)

	totals, err := ComputeTotals(snapshot.Accounts, nil)
	if err != nil {
		return nil, err
	}
	ApplyWeights(snapshot.Accounts, totals.TotalValue)

	views := make([]models.AccountView, 0, len(snapshot.Accounts))
	for _, acct := range snapshot.Accounts {
		views = append(views, PartitionAccount(acct))
	}

	return &models.OwnerPortfolio{
		Accounts:     views,
		Totals:       totals,
		LastSyncedAt: snapshot.LastSyncedAt,
		IsConnected:  snapshot.IsConnected,
		IsPublic:     snapshot.IsPublic,
	}, nil
}
