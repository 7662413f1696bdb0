// Package portfolio owns brokerage sync, position valuation, and the
// owner-facing aggregated view.
package portfolio

import (
	"github.com/folioworks/folioboard/internal/models"
)

// Valuate computes market value, profit and loss, and cost basis for one
// position. A missing price degrades that position to zero rather than
// failing the snapshot. Signed units (short positions) pass through the
// arithmetic unchanged.
func Valuate(p *models.Position) {
	// One option contract covers 100 underlying units, for the premium paid
	// as well as the current value.
	multiplier := 1.0
	if p.Kind == models.InstrumentOption {
		multiplier = models.OptionContractMultiplier
	}

	p.CostBasis = p.AvgCost * p.Units * multiplier

	if p.LastPrice == nil {
		p.MarketValue = 0
		p.ProfitAndLoss = 0
		return
	}

	p.MarketValue = *p.LastPrice * p.Units * multiplier

	if p.OpenPnL != nil {
		p.ProfitAndLoss = *p.OpenPnL
		return
	}
	p.ProfitAndLoss = p.MarketValue - p.CostBasis
}

// ValuateAccounts valuates every position in every account in place.
func ValuateAccounts(accounts []models.Account) {
	for i := range accounts {
		for j := range accounts[i].Positions {
			Valuate(&accounts[i].Positions[j])
		}
	}
}
