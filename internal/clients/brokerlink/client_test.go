package brokerlink

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/folioworks/folioboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const holdingsFixture = `{
	"accounts": [
		{
			"id": "acct-1",
			"name": "Brokerage",
			"number_masked": "****1234",
			"positions": [
				{
					"id": "p1",
					"symbol": "AAPL",
					"kind": "equity",
					"units": 10,
					"average_purchase_price": 100,
					"last_price": 150
				},
				{
					"id": "p2",
					"symbol": "AAPL240119C150",
					"kind": "option",
					"units": 2,
					"average_purchase_price": 3,
					"last_price": 5,
					"strike_price": 150,
					"expiration_date": "2024-01-19",
					"underlying_symbol": "AAPL",
					"option_type": "call"
				},
				{
					"id": "p3",
					"symbol": "XYZ",
					"units": 4,
					"average_purchase_price": 20,
					"last_price": null
				}
			]
		}
	],
	"last_synced_at": "2026-08-20T09:30:00Z"
}`

func TestGetSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/alice/holdings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(holdingsFixture))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	snap, err := client.GetSnapshot(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC), snap.LastSyncedAt)
	require.Len(t, snap.Accounts, 1)
	acct := snap.Accounts[0]
	assert.Equal(t, "****1234", acct.NumberMasked)
	require.Len(t, acct.Positions, 3)

	equity := acct.Positions[0]
	assert.Equal(t, models.InstrumentEquity, equity.Kind)
	assert.Equal(t, 100.0, equity.AvgCost)
	require.NotNil(t, equity.LastPrice)
	assert.Equal(t, 150.0, *equity.LastPrice)

	option := acct.Positions[1]
	assert.Equal(t, models.InstrumentOption, option.Kind)
	assert.Equal(t, 150.0, option.Strike)
	assert.Equal(t, "AAPL", option.Underlying)
	assert.Equal(t, models.OptionCall, option.OptionKind)
	assert.Equal(t, time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC), option.Expiration)

	// Unspecified kind defaults to equity; a null quote stays nil.
	fallback := acct.Positions[2]
	assert.Equal(t, models.InstrumentEquity, fallback.Kind)
	assert.Nil(t, fallback.LastPrice)
}

func TestGetSnapshot_EmptyUserID(t *testing.T) {
	client := NewClient("test-key")

	_, err := client.GetSnapshot(context.Background(), "")
	assert.Error(t, err)
}

func TestGetSnapshot_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "connection expired", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	_, err := client.GetSnapshot(context.Background(), "alice")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "/v1/users/alice/holdings")
}

func TestGetSnapshot_MissingTimestampDefaultsToNow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accounts": []}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	snap, err := client.GetSnapshot(context.Background(), "alice")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), snap.LastSyncedAt, 5*time.Second)
}
