package sentiment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/folioworks/folioboard/internal/common"
	"github.com/folioworks/folioboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFeed is a canned trending feed. It records requests and serves charts
// from a map; tickers listed in failCharts error out.
type stubFeed struct {
	mu         sync.Mutex
	stocks     []models.TrendingStock
	requests   []models.TrendingQuery
	charts     map[string][]float64
	failCharts map[string]bool
	feedErr    error
}

func (f *stubFeed) GetTrending(_ context.Context, query models.TrendingQuery) ([]models.TrendingStock, error) {
	f.mu.Lock()
	f.requests = append(f.requests, query)
	f.mu.Unlock()

	if f.feedErr != nil {
		return nil, f.feedErr
	}
	n := query.PageSize
	if n > len(f.stocks) {
		n = len(f.stocks)
	}
	out := make([]models.TrendingStock, n)
	copy(out, f.stocks[:n])
	return out, nil
}

func (f *stubFeed) GetChart(_ context.Context, ticker string) ([]float64, error) {
	if f.failCharts[ticker] {
		return nil, fmt.Errorf("chart fetch failed for %s", ticker)
	}
	return f.charts[ticker], nil
}

func stock(ticker string, mentions int, score float64) models.TrendingStock {
	return models.TrendingStock{Ticker: ticker, MentionCount: mentions, SentimentScore: score}
}

func newTestFeed() *stubFeed {
	return &stubFeed{
		stocks: []models.TrendingStock{
			stock("AAPL", 900, 0.8),
			stock("TSLA", 800, -0.6),
			stock("NVDA", 700, 0.5),
			stock("GME", 600, 0),
			stock("AMC", 500, -0.4),
			stock("MSFT", 400, 0.3),
			stock("PLTR", 300, 0.2),
			stock("META", 200, -0.1),
			stock("AMZN", 100, 0.1),
		},
		charts: map[string][]float64{},
	}
}

func newService(feed *stubFeed) *Service {
	return NewService(feed, common.NewSilentLogger(), DefaultOverfetchMultiplier, time.Second)
}

func TestListSentimentStocks_BucketFilterPreservesOrder(t *testing.T) {
	svc := newService(newTestFeed())

	page, err := svc.ListSentimentStocks(context.Background(), models.SentimentQuery{
		Sentiment: models.SentimentBullish,
		Page:      1,
		PageSize:  3,
	})
	require.NoError(t, err)

	require.Len(t, page.Stocks, 3)
	assert.Equal(t, "AAPL", page.Stocks[0].Ticker)
	assert.Equal(t, "NVDA", page.Stocks[1].Ticker)
	assert.Equal(t, "MSFT", page.Stocks[2].Ticker)
}

func TestListSentimentStocks_ZeroScoreInNeitherBucket(t *testing.T) {
	feed := newTestFeed()
	svc := newService(feed)

	for _, bucket := range []models.SentimentBucket{models.SentimentBullish, models.SentimentBearish} {
		page, err := svc.ListSentimentStocks(context.Background(), models.SentimentQuery{
			Sentiment: bucket,
			Page:      1,
			PageSize:  9,
		})
		require.NoError(t, err)
		for _, s := range page.Stocks {
			assert.NotEqual(t, "GME", s.Ticker)
		}
	}
}

func TestListSentimentStocks_OverfetchWindow(t *testing.T) {
	feed := newTestFeed()
	svc := newService(feed)

	_, err := svc.ListSentimentStocks(context.Background(), models.SentimentQuery{
		Sentiment: models.SentimentBullish,
		Page:      2,
		PageSize:  4,
		SortBy:    "sentiment",
		SortOrder: models.SortAsc,
	})
	require.NoError(t, err)

	require.Len(t, feed.requests, 1)
	got := feed.requests[0]
	// Always page 1 with window S×M×p.
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 4*DefaultOverfetchMultiplier*2, got.PageSize)
	assert.Equal(t, "sentiment", got.SortBy)
	assert.Equal(t, models.SortAsc, got.SortOrder)
}

func TestListSentimentStocks_PageTwoSlice(t *testing.T) {
	svc := newService(newTestFeed())

	page, err := svc.ListSentimentStocks(context.Background(), models.SentimentQuery{
		Sentiment: models.SentimentBullish,
		Page:      2,
		PageSize:  2,
	})
	require.NoError(t, err)

	// Bullish in upstream order: AAPL, NVDA, MSFT, PLTR, AMZN. Page 2 of
	// size 2 is rows 3 and 4.
	require.Len(t, page.Stocks, 2)
	assert.Equal(t, "MSFT", page.Stocks[0].Ticker)
	assert.Equal(t, "PLTR", page.Stocks[1].Ticker)
	assert.Equal(t, 2, page.Page)
	assert.True(t, page.HasMore)
}

func TestListSentimentStocks_HasMoreFalseOnShortPage(t *testing.T) {
	svc := newService(newTestFeed())

	// Bearish rows: TSLA, AMC, META. Page 2 of size 2 holds only META.
	page, err := svc.ListSentimentStocks(context.Background(), models.SentimentQuery{
		Sentiment: models.SentimentBearish,
		Page:      2,
		PageSize:  2,
	})
	require.NoError(t, err)

	require.Len(t, page.Stocks, 1)
	assert.Equal(t, "META", page.Stocks[0].Ticker)
	assert.False(t, page.HasMore)
	assert.Equal(t, 3, page.Total)
}

func TestListSentimentStocks_PageBeyondEndIsEmpty(t *testing.T) {
	svc := newService(newTestFeed())

	page, err := svc.ListSentimentStocks(context.Background(), models.SentimentQuery{
		Sentiment: models.SentimentBearish,
		Page:      5,
		PageSize:  3,
	})
	require.NoError(t, err)

	assert.NotNil(t, page.Stocks)
	assert.Empty(t, page.Stocks)
	assert.False(t, page.HasMore)
}

func TestListSentimentStocks_ChartEnrichment(t *testing.T) {
	feed := newTestFeed()
	feed.charts["AAPL"] = []float64{150, 151, 152}
	feed.failCharts = map[string]bool{"NVDA": true}
	svc := newService(feed)

	page, err := svc.ListSentimentStocks(context.Background(), models.SentimentQuery{
		Sentiment: models.SentimentBullish,
		Page:      1,
		PageSize:  2,
	})
	require.NoError(t, err)

	require.Len(t, page.Stocks, 2)
	assert.Equal(t, []float64{150, 151, 152}, page.Stocks[0].Sparkline)
	// A failed chart fetch degrades to an absent sparkline, not an error.
	assert.Nil(t, page.Stocks[1].Sparkline)
}

func TestListSentimentStocks_FeedErrorPropagates(t *testing.T) {
	feed := newTestFeed()
	feed.feedErr = errors.New("upstream unavailable")
	svc := newService(feed)

	_, err := svc.ListSentimentStocks(context.Background(), models.SentimentQuery{
		Sentiment: models.SentimentBullish,
		Page:      1,
		PageSize:  3,
	})
	assert.ErrorContains(t, err, "upstream unavailable")
}

func TestListSentimentStocks_Validation(t *testing.T) {
	svc := newService(newTestFeed())
	ctx := context.Background()

	_, err := svc.ListSentimentStocks(ctx, models.SentimentQuery{Sentiment: "neutral", Page: 1, PageSize: 10})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.ListSentimentStocks(ctx, models.SentimentQuery{Sentiment: models.SentimentBullish, Page: 0, PageSize: 10})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.ListSentimentStocks(ctx, models.SentimentQuery{Sentiment: models.SentimentBullish, Page: 1, PageSize: 0})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestTrendingScore_Deterministic(t *testing.T) {
	s := models.TrendingStock{
		Ticker:         "AAPL",
		MentionCount:   900,
		SentimentScore: 0.8,
		TopAuthors: []models.TrendingAuthor{
			{Handle: "a", Followers: 10000},
			{Handle: "b", Followers: 5000},
		},
	}

	first := trendingScore(s)
	second := trendingScore(s)
	assert.Equal(t, first, second)
	assert.Greater(t, first, 0.0)

	// More reach strictly increases the score.
	s.TopAuthors[0].Followers *= 10
	assert.Greater(t, trendingScore(s), first)
}
