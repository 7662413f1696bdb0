package models

// SortDirection is an explicit ordering direction.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SentimentBucket partitions the trending feed by sentiment score sign.
// A score of exactly zero belongs to neither bucket.
type SentimentBucket string

const (
	SentimentBullish SentimentBucket = "bullish"
	SentimentBearish SentimentBucket = "bearish"
)

// Matches reports whether a sentiment score falls in this bucket.
func (b SentimentBucket) Matches(score float64) bool {
	switch b {
	case SentimentBullish:
		return score > 0
	case SentimentBearish:
		return score < 0
	default:
		return false
	}
}

// TrendingAuthor is a social author driving mentions of a ticker.
type TrendingAuthor struct {
	Handle    string `json:"handle"`
	Followers int    `json:"followers"`
}

// TrendingStock is one row of the upstream trending feed, optionally
// enriched with a sparkline and a recomputed trending score.
type TrendingStock struct {
	Ticker         string           `json:"ticker"`
	MentionCount   int              `json:"mention_count"`
	SentimentScore float64          `json:"sentiment_score"`
	TrendingScore  float64          `json:"trending_score"`
	TopAuthors     []TrendingAuthor `json:"top_authors,omitempty"`

	// Sparkline holds recent closes, absent when chart enrichment failed.
	Sparkline []float64 `json:"sparkline,omitempty"`
}

// TrendingQuery is an upstream feed page request. The upstream sorts by the
// requested key but has no filter support.
type TrendingQuery struct {
	Page      int
	PageSize  int
	SortBy    string // "mentions" (default), "sentiment", "trending"
	SortOrder SortDirection
	Query     string // optional ticker/name substring match
}

// SentimentQuery is a logical page request against a sentiment bucket.
type SentimentQuery struct {
	Sentiment SentimentBucket
	Page      int
	PageSize  int
	SortBy    string
	SortOrder SortDirection
	Query     string
}

// SentimentPage is one logical page of the sentiment-filtered ranking.
type SentimentPage struct {
	Stocks   []TrendingStock `json:"stocks"`
	Total    int             `json:"total"` // filtered rows seen in the fetched window
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	HasMore  bool            `json:"has_more"`
}

// TrendingSortDefault is the feed ordering when no explicit sort is set.
const TrendingSortDefault = "mentions"

// SortState is the client-visible sort selection for a ranked column view.
// The zero-ish default state is {TrendingSortDefault, desc, explicit=false}.
type SortState struct {
	Key      string        `json:"key"`
	Order    SortDirection `json:"order"`
	Explicit bool          `json:"explicit"` // false once the cycle returns to the default
}

// DefaultSortState returns the implicit default ordering.
func DefaultSortState() SortState {
	return SortState{Key: TrendingSortDefault, Order: SortDesc}
}

// NextSortState advances the sort cycle for a column click. Clicking the
// current column cycles desc → asc → default; clicking a different column
// selects it descending. Every transition restarts paging from page 1.
func NextSortState(cur SortState, column string) SortState {
	if !cur.Explicit || cur.Key != column {
		return SortState{Key: column, Order: SortDesc, Explicit: true}
	}
	if cur.Order == SortDesc {
		return SortState{Key: column, Order: SortAsc, Explicit: true}
	}
	return DefaultSortState()
}
