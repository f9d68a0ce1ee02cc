package freecurrencyapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amirasaad/fxconv/pkg/config"
	"github.com/amirasaad/fxconv/pkg/money"
	"github.com/amirasaad/fxconv/pkg/provider/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "fca_test_0123456789"

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()
	calls := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.FreeCurrencyAPI{ApiKey: testAPIKey, ApiUrl: srv.URL + "/v1/"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, logger), calls
}

func TestClient_LatestRates_Success(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/latest", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, testAPIKey, q.Get("apikey"))
		assert.Equal(t, "PLN", q.Get("base_currency"))
		assert.Equal(t, "EUR,USD", q.Get("currencies"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":{"EUR":0.2301,"USD":0.2512}}`)
	})

	res := client.LatestRates(context.Background(), "PLN", []money.Code{"EUR", "USD"})
	require.Equal(t, exchange.KindSuccess, res.Kind, "err: %v", res.Err)
	assert.Equal(t, money.RateMap{"EUR": 0.2301, "USD": 0.2512}, res.Value)
	assert.EqualValues(t, 1, calls.Load())
}

func TestClient_LatestRates_Rejected(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{
			"message": "Validation error",
			"errors": {"base_currency": ["The selected base currency is invalid.", "not supported"]},
			"info": "docs"
		}`)
	})

	res := client.LatestRates(context.Background(), "ZZZ", []money.Code{"EUR"})
	require.Equal(t, exchange.KindRejected, res.Kind)
	require.NotNil(t, res.Rejection)
	assert.Equal(t, "Validation error", res.Rejection.Message)
	assert.Contains(t, res.Rejection.Error(), "not supported")

	err := res.AsError()
	assert.ErrorIs(t, err, exchange.ErrRemoteRejected)
	assert.EqualValues(t, 1, calls.Load(), "rejections are not retried")
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"malformed rejection", http.StatusUnprocessableEntity, `<html>oops</html>`, "unexpected body"},
		{"empty rejection", http.StatusUnprocessableEntity, `{}`, "unexpected body"},
		{"server error", http.StatusInternalServerError, `upstream down`, "status 500: upstream down"},
		{"unauthorized", http.StatusUnauthorized, `{"message":"Invalid authentication credentials"}`, "status 401"},
		{"malformed success", http.StatusOK, `{"data":`, "failed to decode response"},
		{"missing data", http.StatusOK, `{"meta":{}}`, "no data field"},
		{"zero rate", http.StatusOK, `{"data":{"EUR":0}}`, "invalid exchange rate"},
		{"negative rate", http.StatusOK, `{"data":{"EUR":-1.5}}`, "invalid exchange rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			res := client.LatestRates(context.Background(), "USD", []money.Code{"EUR"})
			require.Equal(t, exchange.KindFailure, res.Kind)
			require.Error(t, res.Err)
			assert.Contains(t, res.Err.Error(), tt.wantErr)
			assert.ErrorIs(t, res.AsError(), exchange.ErrNoData)
			assert.NotErrorIs(t, res.AsError(), exchange.ErrRemoteRejected)
			assert.EqualValues(t, 1, calls.Load())
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	cfg := &config.FreeCurrencyAPI{ApiKey: testAPIKey, ApiUrl: srv.URL}
	client := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	res := client.LatestRates(context.Background(), "USD", []money.Code{"EUR"})
	require.Equal(t, exchange.KindFailure, res.Kind)
	assert.NotContains(t, res.Err.Error(), testAPIKey)
}

func TestClient_ContextCancelled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"EUR":0.92}}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := client.LatestRates(ctx, "USD", []money.Code{"EUR"})
	require.Equal(t, exchange.KindFailure, res.Kind)
	assert.True(t, errors.Is(res.Err, context.Canceled))
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	cfg := &config.FreeCurrencyAPI{ApiKey: testAPIKey, ApiUrl: srv.URL, HTTPTimeout: 50 * time.Millisecond}
	client := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	res := client.LatestRates(context.Background(), "USD", []money.Code{"EUR"})
	assert.Equal(t, exchange.KindFailure, res.Kind)
}

func TestClient_Currencies(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/currencies", r.URL.Path)
		assert.Equal(t, testAPIKey, r.URL.Query().Get("apikey"))
		assert.False(t, r.URL.Query().Has("base_currency"))
		_, _ = io.WriteString(w, `{"data":{
			"EUR":{"symbol":"€","name":"Euro","symbol_native":"€","decimal_digits":2,"rounding":0,"code":"EUR","name_plural":"Euros"},
			"JPY":{"symbol":"¥","name":"Japanese Yen","symbol_native":"￥","decimal_digits":0,"rounding":0,"code":"JPY","name_plural":"Japanese yen"}
		}}`)
	})

	res := client.Currencies(context.Background(), "")
	require.Equal(t, exchange.KindSuccess, res.Kind, "err: %v", res.Err)
	require.Len(t, res.Value, 2)
	assert.Equal(t, "Euro", res.Value["EUR"].Name)
	assert.Equal(t, 0, res.Value["JPY"].DecimalDigits)
}

func TestClient_Currencies_CodeMismatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"EUR":{"code":"USD","decimal_digits":2}}}`)
	})

	res := client.Currencies(context.Background(), "USD")
	require.Equal(t, exchange.KindFailure, res.Kind)
	assert.ErrorIs(t, res.Err, money.ErrCodeMismatch)
}

func TestClient_Name(t *testing.T) {
	client := New(&config.FreeCurrencyAPI{}, nil)
	assert.Equal(t, "freecurrencyapi", client.Name())
}
