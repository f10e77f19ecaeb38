package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/rest/httpx"
	"github.com/zeromicro/go-zero/rest/pathvar"

	"coingecko-api/internal/config"
	"coingecko-api/internal/errs"
	"coingecko-api/internal/model"
	"coingecko-api/internal/reporting"
	"coingecko-api/internal/svc"
	cg "coingecko-api/pkg/coingecko"
	"coingecko-api/pkg/transform"
)

func TestMain(m *testing.M) {
	httpx.SetErrorHandlerCtx(errs.HTTPHandler)
	os.Exit(m.Run())
}

// emptyStore satisfies CoinPricesModel with not-found everywhere.
type emptyStore struct{}

func (emptyStore) InsertBatch(context.Context, []transform.EnrichedRecord) ([]*model.CoinPrices, error) {
	return nil, nil
}
func (emptyStore) Latest(context.Context, int) ([]*model.CoinPrices, error) { return nil, nil }
func (emptyStore) Insert(_ context.Context, row *model.CoinPrices) (*model.CoinPrices, error) {
	return row, nil
}
func (emptyStore) FindOneByCoinId(context.Context, string) (*model.CoinPrices, error) {
	return nil, model.ErrNotFound
}
func (emptyStore) Update(context.Context, string, *model.CoinPriceUpdate) (*model.CoinPrices, error) {
	return nil, model.ErrNotFound
}
func (emptyStore) Delete(context.Context, string) error { return model.ErrNotFound }

func handlerServiceContext(providerURL string) *svc.ServiceContext {
	return &svc.ServiceContext{
		Config:          config.Config{StoredDataLimit: 100},
		Provider:        cg.NewClient(cg.WithBaseURL(providerURL)),
		Reporter:        &reporting.Capture{},
		CoinPricesModel: emptyStore{},
	}
}

func decodeErrorBody(t *testing.T, recorder *httptest.ResponseRecorder) errs.Body {
	t.Helper()
	var body errs.Body
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestMarketsHandlerProviderDown(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer provider.Close()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/coingecko/markets?vs_currency=usd", nil)
	MarketsHandler(handlerServiceContext(provider.URL))(recorder, req)

	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	body := decodeErrorBody(t, recorder)
	require.Equal(t, "error", body.Status)
	require.Equal(t, "CoinGecko API service unavailable", body.Message)
}

func TestMarketsHandlerSuccess(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"bitcoin","symbol":"btc","name":"Bitcoin","market_cap":1000,"total_volume":500,"last_updated":"2024-02-20T10:00:00Z"}]`))
	}))
	defer provider.Close()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/coingecko/markets?vs_currency=usd&page=1&per_page=100", nil)
	MarketsHandler(handlerServiceContext(provider.URL))(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp struct {
		Data       []json.RawMessage `json:"data"`
		TotalCount int               `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.TotalCount)
	require.Len(t, resp.Data, 1)
}

func TestPingHandlerUnavailable(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer provider.Close()

	recorder := httptest.NewRecorder()
	PingHandler(handlerServiceContext(provider.URL))(recorder, httptest.NewRequest(http.MethodGet, "/coingecko/ping", nil))

	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	require.Equal(t, "CoinGecko API is not available", decodeErrorBody(t, recorder).Message)
}

func TestGetCoinHandlerNotFound(t *testing.T) {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/db/coins/nope", nil)
	req = pathvar.WithVars(req, map[string]string{"coin_id": "nope"})
	GetCoinHandler(handlerServiceContext("http://127.0.0.1:0"))(recorder, req)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Equal(t, "Coin not found", decodeErrorBody(t, recorder).Message)
}

func TestCreateCoinHandlerBadPayload(t *testing.T) {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/db/coins", nil)
	req.Header.Set("Content-Type", "application/json")
	CreateCoinHandler(handlerServiceContext("http://127.0.0.1:0"))(recorder, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "Invalid request payload", decodeErrorBody(t, recorder).Message)
}

func TestHealthHandler(t *testing.T) {
	recorder := httptest.NewRecorder()
	HealthHandler(nil)(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
}
