package coingecko

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coingecko-api/internal/config"
	"coingecko-api/internal/errs"
	"coingecko-api/internal/model"
	"coingecko-api/internal/reporting"
	"coingecko-api/internal/svc"
	"coingecko-api/internal/types"
	cg "coingecko-api/pkg/coingecko"
	"coingecko-api/pkg/transform"
)

// stubStore is an in-memory CoinPricesModel for logic tests.
type stubStore struct {
	batches   [][]transform.EnrichedRecord
	rows      []*model.CoinPrices
	insertErr error
	latestErr error
}

func (s *stubStore) InsertBatch(_ context.Context, batch []transform.EnrichedRecord) ([]*model.CoinPrices, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	s.batches = append(s.batches, batch)
	return nil, nil
}

func (s *stubStore) Latest(context.Context, int) ([]*model.CoinPrices, error) {
	if s.latestErr != nil {
		return nil, s.latestErr
	}
	return s.rows, nil
}

func (s *stubStore) Insert(_ context.Context, row *model.CoinPrices) (*model.CoinPrices, error) {
	return row, nil
}

func (s *stubStore) FindOneByCoinId(context.Context, string) (*model.CoinPrices, error) {
	return nil, model.ErrNotFound
}

func (s *stubStore) Update(context.Context, string, *model.CoinPriceUpdate) (*model.CoinPrices, error) {
	return nil, model.ErrNotFound
}

func (s *stubStore) Delete(context.Context, string) error { return model.ErrNotFound }

func newTestServiceContext(providerURL string, store model.CoinPricesModel) (*svc.ServiceContext, *reporting.Capture) {
	capture := &reporting.Capture{}
	return &svc.ServiceContext{
		Config:          config.Config{StoredDataLimit: 100},
		Provider:        cg.NewClient(cg.WithBaseURL(providerURL)),
		Reporter:        capture,
		CoinPricesModel: store,
	}, capture
}

const marketsPayload = `[
  {"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":50000,"market_cap":1000,"market_cap_rank":1,"total_volume":500,"price_change_24h":100,"price_change_percentage_24h":2,"last_updated":"2024-02-20T10:00:00Z"},
  {"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":3000,"market_cap":3000,"market_cap_rank":2,"total_volume":300,"price_change_24h":-50,"price_change_percentage_24h":-1.5,"last_updated":"2024-02-20T10:00:00Z"}
]`

func TestMarketsFetchTransformPersist(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(marketsPayload))
	}))
	defer server.Close()

	store := &stubStore{}
	svcCtx, capture := newTestServiceContext(server.URL, store)

	resp, err := NewMarketsLogic(context.Background(), svcCtx).Markets(&types.MarketsRequest{VsCurrency: "usd", Page: 1, PerPage: 100})
	require.NoError(t, err)
	require.Equal(t, 2, resp.TotalCount)
	require.Len(t, resp.Data, 2)

	require.NotNil(t, resp.Data[0].MarketDominance)
	require.InDelta(t, 25.0, *resp.Data[0].MarketDominance, 1e-9)
	require.NotNil(t, resp.Data[1].MarketDominance)
	require.InDelta(t, 75.0, *resp.Data[1].MarketDominance, 1e-9)
	require.NotNil(t, resp.Data[0].VolumeToMarketCapRatio)
	require.InDelta(t, 0.5, *resp.Data[0].VolumeToMarketCapRatio, 1e-9)

	require.Len(t, store.batches, 1)
	require.Len(t, store.batches[0], 2)

	require.Len(t, capture.Requests(), 1)
	require.Equal(t, "coins/markets", capture.Requests()[0].Endpoint)
	require.Len(t, capture.Responses(), 1)
	require.Empty(t, capture.Errors())
}

func TestMarketsPersistFailureStillReturnsData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(marketsPayload))
	}))
	defer server.Close()

	store := &stubStore{insertErr: errors.New("database is down")}
	svcCtx, capture := newTestServiceContext(server.URL, store)

	resp, err := NewMarketsLogic(context.Background(), svcCtx).Markets(&types.MarketsRequest{VsCurrency: "usd", Page: 1, PerPage: 100})
	require.NoError(t, err)
	require.Equal(t, 2, resp.TotalCount)

	events := capture.Errors()
	require.Len(t, events, 1)
	require.Equal(t, "Failed to persist market data batch", events[0].Message)
}

func TestMarketsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	store := &stubStore{}
	svcCtx, capture := newTestServiceContext(server.URL, store)

	_, err := NewMarketsLogic(context.Background(), svcCtx).Markets(&types.MarketsRequest{VsCurrency: "usd", Page: 1, PerPage: 100})
	require.Error(t, err)

	var httpErr *errs.Error
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
	require.Equal(t, "CoinGecko API service unavailable", httpErr.Message)

	require.Empty(t, store.batches, "nothing should be persisted on fetch failure")
	require.Len(t, capture.Errors(), 1)
	require.Equal(t, "Error fetching market data from CoinGecko", capture.Errors()[0].Message)
}

func TestMarketsInvalidParams(t *testing.T) {
	store := &stubStore{}
	svcCtx, _ := newTestServiceContext("http://127.0.0.1:0", store)

	_, err := NewMarketsLogic(context.Background(), svcCtx).Markets(&types.MarketsRequest{VsCurrency: "usd", Page: 1, PerPage: 1000})
	var httpErr *errs.Error
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestMarketsEmptyBatchSkipsPersistence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	store := &stubStore{insertErr: errors.New("must not be called")}
	svcCtx, capture := newTestServiceContext(server.URL, store)

	resp, err := NewMarketsLogic(context.Background(), svcCtx).Markets(&types.MarketsRequest{VsCurrency: "usd", Page: 1, PerPage: 100})
	require.NoError(t, err)
	require.Zero(t, resp.TotalCount)
	require.NotNil(t, resp.Data)
	require.Empty(t, capture.Errors())
}

func TestPingOperational(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"gecko_says":"(V3) To the Moon!"}`))
	}))
	defer server.Close()

	svcCtx, _ := newTestServiceContext(server.URL, &stubStore{})
	resp, err := NewPingLogic(context.Background(), svcCtx).Ping()
	require.NoError(t, err)
	require.Equal(t, "CoinGecko API is operational", resp.Status)
}

func TestPingUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svcCtx, capture := newTestServiceContext(server.URL, &stubStore{})
	_, err := NewPingLogic(context.Background(), svcCtx).Ping()

	var httpErr *errs.Error
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
	require.Equal(t, "CoinGecko API is not available", httpErr.Message)
	require.Len(t, capture.Errors(), 1)
}

func TestStoredData(t *testing.T) {
	newest := time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC)
	store := &stubStore{rows: []*model.CoinPrices{
		{Id: 2, CoinId: "bitcoin", Symbol: "btc", Name: "Bitcoin", LastUpdated: newest, CreatedAt: newest},
		{Id: 1, CoinId: "ethereum", Symbol: "eth", Name: "Ethereum", LastUpdated: newest, CreatedAt: newest.Add(-time.Hour)},
	}}
	svcCtx, _ := newTestServiceContext("http://127.0.0.1:0", store)

	resp, err := NewStoredDataLogic(context.Background(), svcCtx).StoredData()
	require.NoError(t, err)
	require.Equal(t, 2, resp.Count)
	require.NotNil(t, resp.LatestUpdate)
	require.Equal(t, "2024-02-20T12:00:00Z", *resp.LatestUpdate)
	require.Equal(t, "bitcoin", resp.Data[0].CoinId)
}

func TestStoredDataEmpty(t *testing.T) {
	svcCtx, _ := newTestServiceContext("http://127.0.0.1:0", &stubStore{})

	resp, err := NewStoredDataLogic(context.Background(), svcCtx).StoredData()
	require.NoError(t, err)
	require.Zero(t, resp.Count)
	require.Nil(t, resp.LatestUpdate)
	require.NotNil(t, resp.Data)
}

func TestStoredDataQueryFailure(t *testing.T) {
	store := &stubStore{latestErr: errors.New("connection refused")}
	svcCtx, _ := newTestServiceContext("http://127.0.0.1:0", store)

	_, err := NewStoredDataLogic(context.Background(), svcCtx).StoredData()
	var httpErr *errs.Error
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(marketsPayload))
	}))
	defer server.Close()

	store := &stubStore{insertErr: errors.New("must not be called")}
	svcCtx, capture := newTestServiceContext(server.URL, store)

	summary, err := NewSummaryLogic(context.Background(), svcCtx).Summary(&types.MarketsRequest{VsCurrency: "usd", Page: 1, PerPage: 100})
	require.NoError(t, err)
	require.Equal(t, 2, summary.NumCryptocurrencies)
	require.InDelta(t, 4000.0, summary.TotalMarketCap, 1e-9)
	require.Len(t, summary.TopGainers, 1)
	require.Equal(t, "btc", summary.TopGainers[0].Symbol)
	require.Len(t, summary.TopLosers, 1)
	require.Equal(t, "eth", summary.TopLosers[0].Symbol)

	require.Empty(t, store.batches, "summary endpoint must not persist")
	require.Empty(t, capture.Errors())
}
