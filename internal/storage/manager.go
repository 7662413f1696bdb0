// Package storage wires concrete storage backends behind the
// interfaces.StorageManager contract.
package storage

import (
	"fmt"

	"github.com/folioworks/folioboard/internal/common"
	"github.com/folioworks/folioboard/internal/interfaces"
	"github.com/folioworks/folioboard/internal/storage/badger"
)

// Manager implements interfaces.StorageManager over a single BadgerHold store.
type Manager struct {
	store     *badger.Store
	users     interfaces.UserStore
	portfolio interfaces.PortfolioStore
	privacy   interfaces.PrivacyStore
}

// NewStorageManager opens the embedded store and constructs all repositories.
func NewStorageManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	store, err := badger.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage at %s: %w", config.Storage.Path, err)
	}

	return &Manager{
		store:     store,
		users:     badger.NewUserStorage(store, logger),
		portfolio: badger.NewPortfolioStorage(store, logger),
		privacy:   badger.NewPrivacyStorage(store, logger),
	}, nil
}

// UserStore returns the user repository.
func (m *Manager) UserStore() interfaces.UserStore { return m.users }

// PortfolioStore returns the snapshot repository.
func (m *Manager) PortfolioStore() interfaces.PortfolioStore { return m.portfolio }

// PrivacyStore returns the privacy settings repository.
func (m *Manager) PrivacyStore() interfaces.PrivacyStore { return m.privacy }

// Close releases the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}
