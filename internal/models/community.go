package models

import "time"

// PublicPosition is one holding as disclosed to the public. Symbol and
// identity are never redacted — redaction hides magnitudes, not existence.
type PublicPosition struct {
	ID            string         `json:"id"`
	Symbol        string         `json:"symbol"`
	Kind          InstrumentKind `json:"kind"`
	Units         RedactedFloat  `json:"units"`
	MarketValue   RedactedFloat  `json:"market_value"`
	ProfitAndLoss RedactedFloat  `json:"profit_and_loss"`
	WeightPct     RedactedFloat  `json:"weight_pct"`
	CostBasis     RedactedFloat  `json:"cost_basis"`
}

// PublicAccount is an account as disclosed to the public.
type PublicAccount struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	NumberMasked string           `json:"number_masked"`
	Equities     []PublicPosition `json:"equities"`
	Options      []PublicPosition `json:"options"`
}

// PublicPortfolio is the privacy-applied projection of one user's snapshot.
type PublicPortfolio struct {
	UserID               string          `json:"user_id"`
	DisplayName          string          `json:"display_name"`
	AvatarURL            string          `json:"avatar_url,omitempty"`
	Accounts             []PublicAccount `json:"accounts"`
	TotalValue           RedactedFloat   `json:"total_value"`
	TotalPnL             RedactedFloat   `json:"total_pnl"`
	PnLPercent           RedactedFloat   `json:"pnl_percent"`
	PositionCount        RedactedInt     `json:"position_count"`
	HiddenAccountsCount  int             `json:"hidden_accounts_count"`
	HiddenPositionsCount int             `json:"hidden_positions_count"`
	LastSyncedAt         time.Time       `json:"last_synced_at"`
}

// PublicUserSummary is one row in the community leaderboard.
type PublicUserSummary struct {
	UserID               string           `json:"user_id"`
	DisplayName          string           `json:"display_name"`
	AvatarURL            string           `json:"avatar_url,omitempty"`
	TotalValue           RedactedFloat    `json:"total_value"`
	TotalPnL             RedactedFloat    `json:"total_pnl"`
	PnLPercent           RedactedFloat    `json:"pnl_percent"`
	PositionCount        RedactedInt      `json:"position_count"`
	TopPositions         []PublicPosition `json:"top_positions"`
	HiddenAccountsCount  int              `json:"hidden_accounts_count"`
	HiddenPositionsCount int              `json:"hidden_positions_count"`
	LastSyncedAt         time.Time        `json:"last_synced_at"`
}

// LeaderboardSortKey selects the leaderboard ordering.
type LeaderboardSortKey string

const (
	SortByUpdated    LeaderboardSortKey = "updated"
	SortByPnLPercent LeaderboardSortKey = "pnl_percent"
)

// LeaderboardQuery is a leaderboard page request.
type LeaderboardQuery struct {
	Limit     int
	Offset    int
	SortBy    LeaderboardSortKey
	SortOrder SortDirection

	// Following, when non-nil, narrows the returned rows to the viewer's
	// following set. The narrowing is display-time only: Total and HasMore
	// still describe the unfiltered ranking.
	Following []string
}

// LeaderboardPage is one page of the community listing.
type LeaderboardPage struct {
	Users   []PublicUserSummary `json:"users"`
	Total   int                 `json:"total"`
	HasMore bool                `json:"has_more"`
}
