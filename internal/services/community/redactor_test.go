package community

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/folioworks/folioboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func testUser() *models.User {
	return &models.User{ID: "u1", DisplayName: "Alice"}
}

func testSnapshot() *models.PortfolioSnapshot {
	return &models.PortfolioSnapshot{
		UserID: "u1",
		Accounts: []models.Account{
			{
				ID:   "acct-1",
				Name: "Brokerage",
				Positions: []models.Position{
					{ID: "p1", Symbol: "AAPL", Kind: models.InstrumentEquity, Units: 10, AvgCost: 100, LastPrice: fptr(150)},
					{ID: "p2", Symbol: "AAPL240119C150", Kind: models.InstrumentOption, Units: 2, AvgCost: 3, LastPrice: fptr(5)},
				},
			},
			{
				ID:   "acct-2",
				Name: "Retirement",
				Positions: []models.Position{
					{ID: "p3", Symbol: "VTI", Kind: models.InstrumentEquity, Units: 4, AvgCost: 200, LastPrice: fptr(250)},
				},
			},
		},
		LastSyncedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		IsConnected:  true,
		IsPublic:     true,
	}
}

func TestRedactPortfolio_AllVisible(t *testing.T) {
	view, err := RedactPortfolio(testUser(), testSnapshot(), models.DefaultPrivacySettings("u1"))
	require.NoError(t, err)

	total, ok := view.TotalValue.Value()
	require.True(t, ok)
	// 1500 + 1000 + 1000
	assert.Equal(t, 3500.0, total)

	count, ok := view.PositionCount.Value()
	require.True(t, ok)
	assert.Equal(t, 3, count)

	assert.Equal(t, 0, view.HiddenAccountsCount)
	assert.Equal(t, 0, view.HiddenPositionsCount)
	require.Len(t, view.Accounts, 2)
	assert.Len(t, view.Accounts[0].Equities, 1)
	assert.Len(t, view.Accounts[0].Options, 1)
}

func TestRedactPortfolio_HiddenTotalIsNotZero(t *testing.T) {
	settings := models.DefaultPrivacySettings("u1")
	settings.ShowTotalValue = false

	view, err := RedactPortfolio(testUser(), testSnapshot(), settings)
	require.NoError(t, err)

	assert.False(t, view.TotalValue.Visible())

	// Other totals stay visible with their real values.
	pnl, ok := view.TotalPnL.Value()
	require.True(t, ok)
	assert.Equal(t, 1100.0, pnl) // 500 + 400 + 200
}

// Toggling one field changes only that field's visibility.
func TestRedactPortfolio_ToggleIndependence(t *testing.T) {
	toggles := []func(*models.PrivacySettings){
		func(s *models.PrivacySettings) { s.ShowTotalValue = false },
		func(s *models.PrivacySettings) { s.ShowTotalPnL = false },
		func(s *models.PrivacySettings) { s.ShowPnLPercent = false },
		func(s *models.PrivacySettings) { s.ShowPositionCount = false },
		func(s *models.PrivacySettings) { s.ShowPositionShares = false },
		func(s *models.PrivacySettings) { s.ShowPositionValue = false },
		func(s *models.PrivacySettings) { s.ShowPositionPnL = false },
		func(s *models.PrivacySettings) { s.ShowPositionWeight = false },
		func(s *models.PrivacySettings) { s.ShowCostBasis = false },
	}

	visibility := func(view *models.PublicPortfolio) []bool {
		pos := view.Accounts[0].Equities[0]
		return []bool{
			view.TotalValue.Visible(),
			view.TotalPnL.Visible(),
			view.PnLPercent.Visible(),
			view.PositionCount.Visible(),
			pos.Units.Visible(),
			pos.MarketValue.Visible(),
			pos.ProfitAndLoss.Visible(),
			pos.WeightPct.Visible(),
			pos.CostBasis.Visible(),
		}
	}

	for i, toggle := range toggles {
		settings := models.DefaultPrivacySettings("u1")
		toggle(settings)

		view, err := RedactPortfolio(testUser(), testSnapshot(), settings)
		require.NoError(t, err)

		vis := visibility(view)
		for j, v := range vis {
			if j == i {
				assert.False(t, v, "toggle %d should hide field %d", i, j)
			} else {
				assert.True(t, v, "toggle %d should not affect field %d", i, j)
			}
		}
	}
}

// Hiding an account produces the same public totals as deleting it, plus
// the hidden-accounts counter.
func TestRedactPortfolio_HiddenAccountEqualsDeletion(t *testing.T) {
	settings := models.DefaultPrivacySettings("u1")
	settings.HiddenAccountIDs = []string{"acct-2"}

	hiddenView, err := RedactPortfolio(testUser(), testSnapshot(), settings)
	require.NoError(t, err)

	truncated := testSnapshot()
	truncated.Accounts = truncated.Accounts[:1]
	deletedView, err := RedactPortfolio(testUser(), truncated, models.DefaultPrivacySettings("u1"))
	require.NoError(t, err)

	assert.Equal(t, deletedView.TotalValue, hiddenView.TotalValue)
	assert.Equal(t, deletedView.TotalPnL, hiddenView.TotalPnL)
	assert.Equal(t, deletedView.PnLPercent, hiddenView.PnLPercent)
	assert.Equal(t, deletedView.PositionCount, hiddenView.PositionCount)
	assert.Equal(t, deletedView.HiddenAccountsCount+1, hiddenView.HiddenAccountsCount)
	assert.Equal(t, 1, hiddenView.HiddenPositionsCount)
	assert.Len(t, hiddenView.Accounts, 1)
}

// Symbols stay visible even when every magnitude is hidden: redaction
// hides magnitudes, not existence.
func TestRedactPortfolio_SymbolNeverRedacted(t *testing.T) {
	settings := models.DefaultPrivacySettings("u1")
	settings.ShowPositionShares = false
	settings.ShowPositionValue = false
	settings.ShowPositionPnL = false
	settings.ShowPositionWeight = false
	settings.ShowCostBasis = false

	view, err := RedactPortfolio(testUser(), testSnapshot(), settings)
	require.NoError(t, err)

	pos := view.Accounts[0].Equities[0]
	assert.Equal(t, "AAPL", pos.Symbol)
	assert.Equal(t, "p1", pos.ID)
	assert.False(t, pos.Units.Visible())
	assert.False(t, pos.MarketValue.Visible())
}

// The same snapshot and settings always produce byte-identical output.
func TestSummarizePortfolio_Idempotent(t *testing.T) {
	settings := models.DefaultPrivacySettings("u1")
	settings.ShowTotalValue = false

	first, err := SummarizePortfolio(testUser(), testSnapshot(), settings, 5)
	require.NoError(t, err)
	second, err := SummarizePortfolio(testUser(), testSnapshot(), settings, 5)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)

	assert.False(t, first.TotalValue.Visible())
	pnl, ok := first.TotalPnL.Value()
	require.True(t, ok)
	assert.Equal(t, 1100.0, pnl)
}

func TestSummarizePortfolio_TopPositionsByValue(t *testing.T) {
	summary, err := SummarizePortfolio(testUser(), testSnapshot(), models.DefaultPrivacySettings("u1"), 2)
	require.NoError(t, err)

	require.Len(t, summary.TopPositions, 2)
	// AAPL (1500) ahead of the option and VTI (1000 each).
	assert.Equal(t, "AAPL", summary.TopPositions[0].Symbol)
	mv, ok := summary.TopPositions[0].MarketValue.Value()
	require.True(t, ok)
	assert.Equal(t, 1500.0, mv)
}

// Spec scenario: one equity (10 AAPL @150, cost 100) and one option
// (2 contracts @5, cost 3) with total value shown and total P&L hidden.
func TestRedactPortfolio_EndToEndScenario(t *testing.T) {
	snapshot := &models.PortfolioSnapshot{
		UserID: "u1",
		Accounts: []models.Account{{
			ID: "acct-1",
			Positions: []models.Position{
				{ID: "p1", Symbol: "AAPL", Kind: models.InstrumentEquity, Units: 10, AvgCost: 100, LastPrice: fptr(150)},
				{ID: "p2", Symbol: "AAPL240119C150", Kind: models.InstrumentOption, Units: 2, AvgCost: 3, LastPrice: fptr(5), Strike: 150},
			},
		}},
		IsConnected: true,
		IsPublic:    true,
	}
	settings := models.DefaultPrivacySettings("u1")
	settings.ShowTotalPnL = false

	view, err := RedactPortfolio(testUser(), snapshot, settings)
	require.NoError(t, err)

	total, ok := view.TotalValue.Value()
	require.True(t, ok)
	assert.Equal(t, 2500.0, total) // 10×150 + 2×5×100

	assert.False(t, view.TotalPnL.Visible())

	// An all-visible view still carries the real P&L:
	// (1500-1000) + (1000-600) = 900.
	totals := snapshotTotals(t, snapshot)
	assert.Equal(t, 900.0, totals.TotalPnL)
}

func snapshotTotals(t *testing.T, snapshot *models.PortfolioSnapshot) models.PortfolioTotals {
	t.Helper()
	view, err := RedactPortfolio(testUser(), snapshot, models.DefaultPrivacySettings("u1"))
	require.NoError(t, err)
	total, _ := view.TotalValue.Value()
	pnl, _ := view.TotalPnL.Value()
	count, _ := view.PositionCount.Value()
	return models.PortfolioTotals{TotalValue: total, TotalPnL: pnl, PositionCount: count}
}
