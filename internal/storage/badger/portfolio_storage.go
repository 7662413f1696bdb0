package badger

import (
	"context"
	"fmt"

	"github.com/folioworks/folioboard/internal/common"
	"github.com/folioworks/folioboard/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

type portfolioStorage struct {
	store  *Store
	logger *common.Logger
}

// NewPortfolioStorage creates a new PortfolioStore backed by BadgerHold.
func NewPortfolioStorage(store *Store, logger *common.Logger) *portfolioStorage {
	return &portfolioStorage{store: store, logger: logger}
}

func (s *portfolioStorage) GetSnapshot(_ context.Context, userID string) (*models.PortfolioSnapshot, error) {
	var snapshot models.PortfolioSnapshot
	err := s.store.db.Get(userID, &snapshot)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("snapshot for user '%s': %w", userID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get snapshot for user '%s': %w", userID, err)
	}
	return &snapshot, nil
}

func (s *portfolioStorage) SaveSnapshot(_ context.Context, snapshot *models.PortfolioSnapshot) error {
	if snapshot.UserID == "" {
		return fmt.Errorf("snapshot user id is required")
	}
	if err := s.store.db.Upsert(snapshot.UserID, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.logger.Debug().
		Str("user_id", snapshot.UserID).
		Int("accounts", len(snapshot.Accounts)).
		Msg("Snapshot saved")
	return nil
}

func (s *portfolioStorage) DeleteSnapshot(_ context.Context, userID string) error {
	err := s.store.db.Delete(userID, models.PortfolioSnapshot{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete snapshot for user '%s': %w", userID, err)
	}
	s.logger.Debug().Str("user_id", userID).Msg("Snapshot deleted")
	return nil
}

func (s *portfolioStorage) ListPublicSnapshots(_ context.Context) ([]*models.PortfolioSnapshot, error) {
	var snapshots []models.PortfolioSnapshot
	query := badgerhold.Where("IsPublic").Eq(true).And("IsConnected").Eq(true)
	if err := s.store.db.Find(&snapshots, query); err != nil {
		return nil, fmt.Errorf("failed to list public snapshots: %w", err)
	}
	result := make([]*models.PortfolioSnapshot, len(snapshots))
	for i := range snapshots {
		result[i] = &snapshots[i]
	}
	return result, nil
}
