// Package models defines data structures for Folioboard
package models

import (
	"time"
)

// InstrumentKind distinguishes equities from option contracts.
type InstrumentKind string

const (
	InstrumentEquity InstrumentKind = "equity"
	InstrumentOption InstrumentKind = "option"
)

// OptionKind is the contract type for option positions.
type OptionKind string

const (
	OptionCall OptionKind = "call"
	OptionPut  OptionKind = "put"
)

// OptionContractMultiplier is the number of underlying units one option
// contract represents.
const OptionContractMultiplier = 100

// Position is one holding inside one brokerage account. Positions are
// replaced wholesale on every provider sync, never partially mutated.
type Position struct {
	ID        string         `json:"id"`
	Symbol    string         `json:"symbol"`
	Kind      InstrumentKind `json:"kind"`
	Units     float64        `json:"units"`    // signed; fractional shares allowed
	AvgCost   float64        `json:"avg_cost"` // average purchase price per unit
	LastPrice *float64       `json:"last_price"` // nil when the quote is missing/stale
	OpenPnL   *float64       `json:"open_pnl,omitempty"` // provider-supplied, preferred when present

	// Option-only fields
	Strike     float64    `json:"strike,omitempty"`
	Expiration time.Time  `json:"expiration,omitzero"`
	Underlying string     `json:"underlying,omitempty"`
	OptionKind OptionKind `json:"option_kind,omitempty"`

	// Derived at valuation time — recomputed on every read, never stored stale
	MarketValue   float64 `json:"market_value"`
	ProfitAndLoss float64 `json:"profit_and_loss"`
	CostBasis     float64 `json:"cost_basis"`
	WeightPct     float64 `json:"weight_pct"`
}

// Account is a brokerage account belonging to one connection. An account
// with zero positions is valid and renders as an explicit empty state.
type Account struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	NumberMasked string     `json:"number_masked"`
	Positions    []Position `json:"positions"`
}

// PortfolioSnapshot is the aggregated state of one user's connection at a
// point in time. Totals are derived on read, not persisted.
type PortfolioSnapshot struct {
	UserID       string    `json:"user_id"`
	Accounts     []Account `json:"accounts"`
	LastSyncedAt time.Time `json:"last_synced_at"`
	IsConnected  bool      `json:"is_connected"`
	IsPublic     bool      `json:"is_public"`
}

// PortfolioTotals holds derived portfolio-wide aggregates.
type PortfolioTotals struct {
	TotalValue    float64 `json:"total_value"`
	TotalPnL      float64 `json:"total_pnl"`
	PnLPercent    float64 `json:"pnl_percent"`
	PositionCount int     `json:"position_count"`
	AccountCount  int     `json:"account_count"`
}

// AccountView is an account prepared for display: positions partitioned
// into equities and options, provider order preserved within each.
type AccountView struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	NumberMasked string     `json:"number_masked"`
	Equities     []Position `json:"equities"`
	Options      []Position `json:"options"`
}

// OwnerPortfolio is the full, unredacted view returned to the owner.
type OwnerPortfolio struct {
	Accounts     []AccountView   `json:"accounts"`
	Totals       PortfolioTotals `json:"totals"`
	LastSyncedAt time.Time       `json:"last_synced_at"`
	IsConnected  bool            `json:"is_connected"`
	IsPublic     bool            `json:"is_public"`
}

// ProviderSnapshot is the raw result of one brokerage provider sync.
type ProviderSnapshot struct {
	Accounts     []Account `json:"accounts"`
	LastSyncedAt time.Time `json:"last_synced_at"`
}
