package portfolio

import (
	"fmt"
	"math"

	"github.com/folioworks/folioboard/internal/common"
	"github.com/folioworks/folioboard/internal/models"
)

// ComputeTotals aggregates valuated positions across the given accounts.
// hidden is the set of account ids to exclude; pass nil for the owner view.
// Totals are always recomputed from current positions so valuation and
// redaction changes cannot desynchronize them.
func ComputeTotals(accounts []models.Account, hidden func(accountID string) bool) (models.PortfolioTotals, error) {
	var totals models.PortfolioTotals

	for _, acct := range accounts {
		if hidden != nil && hidden(acct.ID) {
			continue
		}
		totals.AccountCount++
		totals.PositionCount += len(acct.Positions)
		for _, pos := range acct.Positions {
			totals.TotalValue += pos.MarketValue
			totals.TotalPnL += pos.ProfitAndLoss
		}
	}

	// Percent return approximates return on cost: value - pnl is the cost
	// basis. A zero denominator yields 0.
	if cost := totals.TotalValue - totals.TotalPnL; cost != 0 {
		totals.PnLPercent = totals.TotalPnL / cost * 100
	}

	if math.IsNaN(totals.TotalValue) || math.IsInf(totals.TotalValue, 0) ||
		math.IsNaN(totals.TotalPnL) || math.IsInf(totals.TotalPnL, 0) ||
		math.IsNaN(totals.PnLPercent) || math.IsInf(totals.PnLPercent, 0) {
		return models.PortfolioTotals{}, fmt.Errorf("%w: non-finite totals from %d accounts", common.ErrAggregation, len(accounts))
	}

	return totals, nil
}

// ApplyWeights sets each position's portfolio weight against the given
// total value. A zero total yields zero weights.
func ApplyWeights(accounts []models.Account, totalValue float64) {
	for i := range accounts {
		for j := range accounts[i].Positions {
			p := &accounts[i].Positions[j]
			if totalValue == 0 {
				p.WeightPct = 0
				continue
			}
			p.WeightPct = p.MarketValue / totalValue * 100
		}
	}
}

// PartitionAccount splits an account's positions into equities and options
// for display. Provider order is preserved within each partition as the
// stable base for any later sort.
func PartitionAccount(acct models.Account) models.AccountView {
	view := models.AccountView{
		ID:           acct.ID,
		Name:         acct.Name,
		NumberMasked: acct.NumberMasked,
		Equities:     []models.Position{},
		Options:      []models.Position{},
	}
	for _, pos := range acct.Positions {
		if pos.Kind == models.InstrumentOption {
			view.Options = append(view.Options, pos)
			continue
		}
		view.Equities = append(view.Equities, pos)
	}
	return view
}
