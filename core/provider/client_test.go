package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"megasena-monitor/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const draw2650 = `{
	"numero": 2650,
	"dataApuracao": "28/09/2023",
	"dezenas": ["23", "05", "12", "09", "10", "11"],
	"acumulado": false,
	"listaRateioPremio": [
		{"faixa": 1, "numeroDeGanhadores": 2, "valorPremio": 30123456.78},
		{"faixa": 2, "numeroDeGanhadores": 90, "valorPremio": 41234.5}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(&Config{BaseURL: srv.URL + "/megasena/", TimeoutSeconds: 2}, zap.NewNop())
}

func TestClient_FetchDraw(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/megasena/2650", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(draw2650))
	})

	d, err := client.FetchDraw(context.Background(), 2650)
	require.NoError(t, err)

	assert.Equal(t, 2650, d.Number)
	assert.Equal(t, []int{5, 9, 10, 11, 12, 23}, d.Numbers)
	assert.Equal(t, time.Date(2023, 9, 28, 0, 0, 0, 0, time.UTC), d.DrawDate)
	assert.False(t, d.Accumulated)
	require.NotNil(t, d.Winners)
	assert.Equal(t, 2, *d.Winners)
	require.NotNil(t, d.PrizeAmount)
	assert.Equal(t, "30123456.78", d.PrizeAmount.String())
}

func TestClient_FetchDraw_NotYetAvailable(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{"404", http.StatusNotFound, ""},
		{"empty document", http.StatusOK, `{}`},
		{"no dezenas yet", http.StatusOK, `{"numero": 2651, "dezenas": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.payload))
			})

			_, err := client.FetchDraw(context.Background(), 2651)
			assert.ErrorIs(t, err, reconcile.ErrNotYetAvailable)
		})
	}
}

func TestClient_FetchDraw_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{"server error", http.StatusServiceUnavailable, ""},
		{"malformed json", http.StatusOK, `{"numero": 26`},
		{"five dezenas", http.StatusOK, `{"numero": 2652, "dezenas": ["01","02","03","04","05"]}`},
		{"bad dezena", http.StatusOK, `{"numero": 2652, "dezenas": ["01","02","03","04","05","xx"]}`},
		{"wrong draw", http.StatusOK, `{"numero": 2600, "dezenas": ["01","02","03","04","05","06"]}`},
		{"bad date", http.StatusOK, `{"numero": 2652, "dataApuracao": "2023-09-28", "dezenas": ["01","02","03","04","05","06"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.payload))
			})

			_, err := client.FetchDraw(context.Background(), 2652)
			require.Error(t, err)
			var fe *reconcile.FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, 2652, fe.Draw)
			assert.NotErrorIs(t, err, reconcile.ErrNotYetAvailable)
		})
	}
}

func TestClient_FetchDraw_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(3 * time.Second):
		}
	}))
	defer srv.Close()
	client := New(&Config{BaseURL: srv.URL, TimeoutSeconds: 1}, zap.NewNop())

	start := time.Now()
	_, err := client.FetchDraw(context.Background(), 1)
	var fe *reconcile.FetchError
	assert.ErrorAs(t, err, &fe)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestClient_FetchLatestDrawNumber(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/megasena/", r.URL.Path)
		_, _ = w.Write([]byte(draw2650))
	})

	n, err := client.FetchLatestDrawNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2650, n)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_FetchLatest_Error(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchLatestDrawNumber(context.Background())
	assert.Error(t, err)
}
