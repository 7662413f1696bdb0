// Package sentiment serves paginated sentiment buckets of the trending
// ranking. The upstream feed paginates on an unrelated sort key with no
// filter support, so each logical page is carved out of a deliberately
// over-fetched unfiltered window.
package sentiment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/folioworks/folioboard/internal/common"
	"github.com/folioworks/folioboard/internal/interfaces"
	"github.com/folioworks/folioboard/internal/models"
)

// DefaultOverfetchMultiplier is the upstream window multiplier (M). Chosen
// empirically so at least one full logical page usually survives filtering.
const DefaultOverfetchMultiplier = 3

// chartConcurrency caps concurrent sparkline fetches per request.
const chartConcurrency = 5

// Service implements interfaces.SentimentService.
type Service struct {
	feed         interfaces.TrendFeedClient
	logger       *common.Logger
	multiplier   int
	chartTimeout time.Duration
}

// NewService creates a new sentiment service.
func NewService(feed interfaces.TrendFeedClient, logger *common.Logger, multiplier int, chartTimeout time.Duration) *Service {
	if multiplier < 1 {
		multiplier = DefaultOverfetchMultiplier
	}
	if chartTimeout <= 0 {
		chartTimeout = 2 * time.Second
	}
	return &Service{
		feed:         feed,
		logger:       logger,
		multiplier:   multiplier,
		chartTimeout: chartTimeout,
	}
}

// ListSentimentStocks serves logical page p of size S under the bucket
// filter by requesting an unfiltered upstream window of S×M×p rows from
// page 1, filtering in upstream order, and slicing [(p-1)×S, p×S). When
// the filtered population is sparse relative to M a page may come back
// short even though deeper upstream rows would match; that trade-off is
// accepted in exchange for not needing upstream filter support.
func (s *Service) ListSentimentStocks(ctx context.Context, query models.SentimentQuery) (*models.SentimentPage, error) {
	if query.Sentiment != models.SentimentBullish && query.Sentiment != models.SentimentBearish {
		return nil, common.ValidationError("sentiment", "must be bullish or bearish")
	}
	if query.Page < 1 {
		return nil, common.ValidationError("page", "must be 1 or greater")
	}
	if query.PageSize < 1 {
		return nil, common.ValidationError("page_size", "must be positive")
	}

	upstream, err := s.feed.GetTrending(ctx, models.TrendingQuery{
		Page:      1, // always refetch from the start with a growing window
		PageSize:  query.PageSize * s.multiplier * query.Page,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
		Query:     query.Query,
	})
	if err != nil {
		return nil, fmt.Errorf("trending feed fetch: %w", err)
	}

	// Filter preserving the upstream's relative order. Score zero belongs
	// to neither bucket.
	filtered := make([]models.TrendingStock, 0, len(upstream))
	for _, stock := range upstream {
		if query.Sentiment.Matches(stock.SentimentScore) {
			stock.TrendingScore = trendingScore(stock)
			filtered = append(filtered, stock)
		}
	}

	start := (query.Page - 1) * query.PageSize
	end := query.Page * query.PageSize
	var page []models.TrendingStock
	switch {
	case start >= len(filtered):
		page = []models.TrendingStock{}
	case end > len(filtered):
		page = filtered[start:]
	default:
		page = filtered[start:end]
	}

	s.enrichCharts(ctx, page)

	return &models.SentimentPage{
		Stocks:   page,
		Total:    len(filtered),
		Page:     query.Page,
		PageSize: query.PageSize,
		HasMore:  end < len(filtered),
	}, nil
}

// trendingScore recomputes the trending score as a deterministic function
// of available signals: mention volume, sentiment strength, and the reach
// of the authors driving the mentions. Coarse, but reproducible.
func trendingScore(stock models.TrendingStock) float64 {
	followers := 0
	for _, author := range stock.TopAuthors {
		followers += author.Followers
	}
	mentionWeight := math.Log10(1 + float64(stock.MentionCount))
	reachWeight := math.Log10(1 + float64(followers))
	sentimentWeight := math.Abs(stock.SentimentScore)
	return mentionWeight*50 + sentimentWeight*30 + reachWeight*20
}

// enrichCharts fetches sparklines for the page's tickers with a bounded
// fan-out and an individually scoped timeout per symbol. A failed or
// cancelled fetch leaves that symbol's sparkline absent; the page itself
// always comes back.
func (s *Service) enrichCharts(ctx context.Context, page []models.TrendingStock) {
	if len(page) == 0 {
		return
	}

	type chartResult struct {
		index  int
		closes []float64
		err    error
	}

	semaphore := make(chan struct{}, chartConcurrency)
	results := make(chan chartResult, len(page))

	for i := range page {
		go func(idx int, ticker string) {
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			chartCtx, cancel := context.WithTimeout(ctx, s.chartTimeout)
			defer cancel()

			closes, err := s.feed.GetChart(chartCtx, ticker)
			results <- chartResult{index: idx, closes: closes, err: err}
		}(i, page[i].Ticker)
	}

	for range page {
		result := <-results
		if result.err != nil {
			s.logger.Warn().
				Str("ticker", page[result.index].Ticker).
				Err(result.err).
				Msg("Sparkline enrichment failed")
			continue
		}
		page[result.index].Sparkline = result.closes
	}
	close(results)
}
