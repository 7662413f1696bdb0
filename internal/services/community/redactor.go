// Package community owns the privacy-applied public views and the
// leaderboard ranking.
package community

import (
	"sort"

	"github.com/folioworks/folioboard/internal/models"
	"github.com/folioworks/folioboard/internal/services/portfolio"
)

// redactPosition projects one valuated position through the owner's policy.
// Symbol and identity are always disclosed; only magnitudes are redactable.
func redactPosition(pos models.Position, settings *models.PrivacySettings) models.PublicPosition {
	return models.PublicPosition{
		ID:            pos.ID,
		Symbol:        pos.Symbol,
		Kind:          pos.Kind,
		Units:         models.RedactFloat(pos.Units, settings.ShowPositionShares),
		MarketValue:   models.RedactFloat(pos.MarketValue, settings.ShowPositionValue),
		ProfitAndLoss: models.RedactFloat(pos.ProfitAndLoss, settings.ShowPositionPnL),
		WeightPct:     models.RedactFloat(pos.WeightPct, settings.ShowPositionWeight),
		CostBasis:     models.RedactFloat(pos.CostBasis, settings.ShowCostBasis),
	}
}

// visibleAccounts removes hidden accounts before any other computation and
// reports how many accounts and positions were suppressed.
func visibleAccounts(snapshot *models.PortfolioSnapshot, settings *models.PrivacySettings) (accounts []models.Account, hiddenAccounts, hiddenPositions int) {
	accounts = make([]models.Account, 0, len(snapshot.Accounts))
	for _, acct := range snapshot.Accounts {
		if settings.AccountHidden(acct.ID) {
			hiddenAccounts++
			hiddenPositions += len(acct.Positions)
			continue
		}
		accounts = append(accounts, acct)
	}
	return accounts, hiddenAccounts, hiddenPositions
}

// RedactPortfolio builds the public projection of a snapshot under the
// owner's disclosure policy. Unlike per-position valuation, a redaction
// failure aborts: returning a wrong-but-successful answer would be a
// policy-correctness bug.
func RedactPortfolio(user *models.User, snapshot *models.PortfolioSnapshot, settings *models.PrivacySettings) (*models.PublicPortfolio, error) {
	portfolio.ValuateAccounts(snapshot.Accounts)

	accounts, hiddenAccounts, hiddenPositions := visibleAccounts(snapshot, settings)

	totals, err := portfolio.ComputeTotals(accounts, nil)
	if err != nil {
		return nil, err
	}
	portfolio.ApplyWeights(accounts, totals.TotalValue)

	publicAccounts := make([]models.PublicAccount, 0, len(accounts))
	for _, acct := range accounts {
		view := portfolio.PartitionAccount(acct)
		pub := models.PublicAccount{
			ID:           view.ID,
			Name:         view.Name,
			NumberMasked: view.NumberMasked,
			Equities:     make([]models.PublicPosition, 0, len(view.Equities)),
			Options:      make([]models.PublicPosition, 0, len(view.Options)),
		}
		for _, pos := range view.Equities {
			pub.Equities = append(pub.Equities, redactPosition(pos, settings))
		}
		for _, pos := range view.Options {
			pub.Options = append(pub.Options, redactPosition(pos, settings))
		}
		publicAccounts = append(publicAccounts, pub)
	}

	return &models.PublicPortfolio{
		UserID:               snapshot.UserID,
		DisplayName:          user.DisplayName,
		AvatarURL:            user.AvatarURL,
		Accounts:             publicAccounts,
		TotalValue:           models.RedactFloat(totals.TotalValue, settings.ShowTotalValue),
		TotalPnL:             models.RedactFloat(totals.TotalPnL, settings.ShowTotalPnL),
		PnLPercent:           models.RedactFloat(totals.PnLPercent, settings.ShowPnLPercent),
		PositionCount:        models.RedactInt(totals.PositionCount, settings.ShowPositionCount),
		HiddenAccountsCount:  hiddenAccounts,
		HiddenPositionsCount: hiddenPositions,
		LastSyncedAt:         snapshot.LastSyncedAt,
	}, nil
}

// SummarizePortfolio builds one leaderboard row: redacted totals plus up to
// topN positions by market value.
func SummarizePortfolio(user *models.User, snapshot *models.PortfolioSnapshot, settings *models.PrivacySettings, topN int) (*models.PublicUserSummary, error) {
	portfolio.ValuateAccounts(snapshot.Accounts)

	accounts, hiddenAccounts, hiddenPositions := visibleAccounts(snapshot, settings)

	totals, err := portfolio.ComputeTotals(accounts, nil)
	if err != nil {
		return nil, err
	}
	portfolio.ApplyWeights(accounts, totals.TotalValue)

	var positions []models.Position
	for _, acct := range accounts {
		positions = append(positions, acct.Positions...)
	}
	sort.SliceStable(positions, func(i, j int) bool {
		return positions[i].MarketValue > positions[j].MarketValue
	})
	if topN >= 0 && len(positions) > topN {
		positions = positions[:topN]
	}

	top := make([]models.PublicPosition, 0, len(positions))
	for _, pos := range positions {
		top = append(top, redactPosition(pos, settings))
	}

	return &models.PublicUserSummary{
		UserID:               snapshot.UserID,
		DisplayName:          user.DisplayName,
		AvatarURL:            user.AvatarURL,
		TotalValue:           models.RedactFloat(totals.TotalValue, settings.ShowTotalValue),
		TotalPnL:             models.RedactFloat(totals.TotalPnL, settings.ShowTotalPnL),
		PnLPercent:           models.RedactFloat(totals.PnLPercent, settings.ShowPnLPercent),
		PositionCount:        models.RedactInt(totals.PositionCount, settings.ShowPositionCount),
		TopPositions:         top,
		HiddenAccountsCount:  hiddenAccounts,
		HiddenPositionsCount: hiddenPositions,
		LastSyncedAt:         snapshot.LastSyncedAt,
	}, nil
}
