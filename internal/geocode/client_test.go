package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mfreitas/clima-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.GeocodeConfig{
		BaseURL:     srv.URL,
		CountryCode: "br",
		Limit:       5,
	})
}

func TestClient_Search(t *testing.T) {
	t.Run("builds provider query and parses results", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "Curitiba", q.Get("q"))
			assert.Equal(t, "br", q.Get("countrycodes"))
			assert.Equal(t, "1", q.Get("addressdetails"))
			assert.Equal(t, "5", q.Get("limit"))
			assert.Equal(t, "json", q.Get("format"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{"place_id": 1, "display_name": "Curitiba, Paraná, Brasil",
				 "address": {"city": "Curitiba", "state": "Paraná", "country": "Brasil"}},
				{"place_id": 2, "display_name": "Rua Curitiba, Belo Horizonte",
				 "address": {"state": "Minas Gerais", "country": "Brasil"}}
			]`))
		})

		results, err := client.Search(context.Background(), "Curitiba")
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, int64(1), results[0].PlaceID)
		assert.Equal(t, "Curitiba", results[0].Address.City)
		assert.Equal(t, "Paraná", results[0].Address.State)
	})

	t.Run("non-OK status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.Search(context.Background(), "Curitiba")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("malformed body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		})

		_, err := client.Search(context.Background(), "Curitiba")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid geocoding response")
	})
}

func TestClient_Reverse(t *testing.T) {
	t.Run("parses address", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/reverse", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "-25.4284", q.Get("lat"))
			assert.Equal(t, "-49.2733", q.Get("lon"))

			w.Write([]byte(`{"address": {"town": "Pinhais", "state": "Paraná", "country": "Brasil"}}`))
		})

		addr, err := client.Reverse(context.Background(), -25.4284, -49.2733)
		require.NoError(t, err)
		assert.Equal(t, "Pinhais", addr.Town)
		assert.Equal(t, "Paraná", addr.State)
	})

	t.Run("request error surfaces", func(t *testing.T) {
		client := NewClient(config.GeocodeConfig{BaseURL: "http://127.0.0.1:0"})

		_, err := client.Reverse(context.Background(), 0, 0)
		require.Error(t, err)
	})
}
