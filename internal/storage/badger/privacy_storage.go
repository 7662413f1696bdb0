package badger

import (
	"context"
	"fmt"

	"github.com/folioworks/folioboard/internal/common"
	"github.com/folioworks/folioboard/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

type privacyStorage struct {
	store  *Store
	logger *common.Logger
}

// NewPrivacyStorage creates a new PrivacyStore backed by BadgerHold.
func NewPrivacyStorage(store *Store, logger *common.Logger) *privacyStorage {
	return &privacyStorage{store: store, logger: logger}
}

func (s *privacyStorage) GetSettings(_ context.Context, userID string) (*models.PrivacySettings, error) {
	var settings models.PrivacySettings
	err := s.store.db.Get(userID, &settings)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("privacy settings for user '%s': %w", userID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get privacy settings for user '%s': %w", userID, err)
	}
	return &settings, nil
}

func (s *privacyStorage) SaveSettings(_ context.Context, settings *models.PrivacySettings) error {
	if settings.UserID == "" {
		return fmt.Errorf("privacy settings user id is required")
	}
	if err := s.store.db.Upsert(settings.UserID, settings); err != nil {
		return fmt.Errorf("failed to save privacy settings: %w", err)
	}
	s.logger.Debug().Str("user_id", settings.UserID).Msg("Privacy settings saved")
	return nil
}
