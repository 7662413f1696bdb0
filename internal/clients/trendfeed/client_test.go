package trendfeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/folioworks/folioboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTrending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/trending", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "60", q.Get("page_size"))
		assert.Equal(t, "sentiment", q.Get("sort_by"))
		assert.Equal(t, "asc", q.Get("sort_order"))
		assert.Equal(t, "Bearer feed-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"stocks": [
				{
					"ticker": "AAPL",
					"mention_count": 900,
					"sentiment_score": 0.8,
					"top_authors": [{"handle": "trader1", "followers": 12000}]
				},
				{"ticker": "TSLA", "mention_count": 800, "sentiment_score": -0.6}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient("feed-key", WithBaseURL(srv.URL))

	stocks, err := client.GetTrending(context.Background(), models.TrendingQuery{
		Page:      1,
		PageSize:  60,
		SortBy:    "sentiment",
		SortOrder: models.SortAsc,
	})
	require.NoError(t, err)

	require.Len(t, stocks, 2)
	assert.Equal(t, "AAPL", stocks[0].Ticker)
	assert.Equal(t, 900, stocks[0].MentionCount)
	require.Len(t, stocks[0].TopAuthors, 1)
	assert.Equal(t, 12000, stocks[0].TopAuthors[0].Followers)
	assert.Equal(t, -0.6, stocks[1].SentimentScore)
}

func TestGetChart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/charts/AAPL", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"closes": [150.1, 151.2, 149.8]}`))
	}))
	defer srv.Close()

	client := NewClient("feed-key", WithBaseURL(srv.URL))

	closes, err := client.GetChart(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, []float64{150.1, 151.2, 149.8}, closes)
}

func TestGetChart_EmptyTicker(t *testing.T) {
	client := NewClient("feed-key")

	_, err := client.GetChart(context.Background(), "")
	assert.Error(t, err)
}

func TestGetTrending_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("feed-key", WithBaseURL(srv.URL))

	_, err := client.GetTrending(context.Background(), models.TrendingQuery{Page: 1, PageSize: 10})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}
