package models

import (
	"slices"
	"time"
)

// PrivacySettings is a user-owned disclosure policy. Each toggle is
// independent: hiding one field never force-hides another. Accounts listed
// in HiddenAccountIDs are removed from the public view entirely and
// excluded from totals, but still count toward hidden_accounts_count.
type PrivacySettings struct {
	UserID string `json:"user_id"`

	ShowTotalValue     bool `json:"show_total_value"`
	ShowTotalPnL       bool `json:"show_total_pnl"`
	ShowPnLPercent     bool `json:"show_pnl_percent"`
	ShowPositionCount  bool `json:"show_position_count"`
	ShowPositionShares bool `json:"show_position_shares"`
	ShowPositionValue  bool `json:"show_position_value"`
	ShowPositionPnL    bool `json:"show_position_pnl"`
	ShowPositionWeight bool `json:"show_position_weight"`
	ShowCostBasis      bool `json:"show_cost_basis"`

	HiddenAccountIDs []string `json:"hidden_account_ids"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultPrivacySettings returns the all-visible policy created when a user
// first enables public sharing.
func DefaultPrivacySettings(userID string) *PrivacySettings {
	return &PrivacySettings{
		UserID:             userID,
		ShowTotalValue:     true,
		ShowTotalPnL:       true,
		ShowPnLPercent:     true,
		ShowPositionCount:  true,
		ShowPositionShares: true,
		ShowPositionValue:  true,
		ShowPositionPnL:    true,
		ShowPositionWeight: true,
		ShowCostBasis:      true,
	}
}

// AccountHidden reports whether the given account id is in the hidden set.
func (p *PrivacySettings) AccountHidden(accountID string) bool {
	return slices.Contains(p.HiddenAccountIDs, accountID)
}
