package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMarketsSuccess(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"bitcoin","symbol":"btc","current_price":50000.5,"market_cap":1000000}]`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	records, err := client.Markets(context.Background(), MarketsParams{VsCurrency: "eur", Page: 2, PerPage: 50})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "bitcoin", records[0]["id"])
	require.Equal(t, "btc", records[0]["symbol"])

	require.Equal(t, "/coins/markets", gotPath)
	require.Equal(t, "eur", gotQuery["vs_currency"])
	require.Equal(t, "2", gotQuery["page"])
	require.Equal(t, "50", gotQuery["per_page"])
	require.Equal(t, "false", gotQuery["sparkline"])
	require.Equal(t, "market_cap_desc", gotQuery["order"])
}

func TestMarketsDefaultParams(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	records, err := client.Markets(context.Background(), MarketsParams{})
	require.NoError(t, err)
	require.Empty(t, records)
	require.Equal(t, "usd", gotQuery["vs_currency"])
	require.Equal(t, "1", gotQuery["page"])
	require.Equal(t, "100", gotQuery["per_page"])
}

func TestMarketsParamValidation(t *testing.T) {
	client := NewClient()

	_, err := client.Markets(context.Background(), MarketsParams{Page: -1})
	var paramErr *ParamError
	require.ErrorAs(t, err, &paramErr)
	require.Equal(t, "page", paramErr.Field)

	_, err = client.Markets(context.Background(), MarketsParams{PerPage: 251})
	require.ErrorAs(t, err, &paramErr)
	require.Equal(t, "per_page", paramErr.Field)
}

func TestMarketsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Markets(context.Background(), MarketsParams{})
	require.Error(t, err)
	require.True(t, IsTransport(err))

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, http.StatusTooManyRequests, transportErr.Status)
	require.Equal(t, "coins/markets", transportErr.Op)
}

func TestMarketsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Markets(context.Background(), MarketsParams{})
	require.True(t, IsTransport(err))
}

func TestMarketsConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Markets(context.Background(), MarketsParams{})
	require.True(t, IsTransport(err))
}

func TestMarketsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithTimeout(20*time.Millisecond))
	_, err := client.Markets(context.Background(), MarketsParams{})
	require.True(t, IsTransport(err))
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ping", r.URL.Path)
		w.Write([]byte(`{"gecko_says":"(V3) To the Moon!"}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	require.NoError(t, client.Ping(context.Background()))
}

func TestPingUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	err := client.Ping(context.Background())
	require.True(t, IsTransport(err))
}

func TestWithBaseURLTrimsTrailingSlash(t *testing.T) {
	client := NewClient(WithBaseURL("https://example.com/api/v3/"))
	require.Equal(t, "https://example.com/api/v3", client.baseURL)
}
