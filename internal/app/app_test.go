package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/snowtrip/hokkaido/internal/config"
	"github.com/snowtrip/hokkaido/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApplication(t *testing.T, adjust func(cfg *config.Application)) http.Handler {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(upstream.Close)

	cfg := config.Defaults()
	cfg.Weather.BaseUrl = upstream.URL
	cfg.Exchange.BaseUrl = upstream.URL
	if adjust != nil {
		adjust(&cfg)
	}
	application, err := New(context.Background(), cfg)
	require.NoError(t, err)
	return application.Handler()
}

func TestApplication_Routes(t *testing.T) {
	t.Run("should answer health check", func(t *testing.T) {
		// given
		h := setupApplication(t, nil)

		// when
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/health", nil))

		// then
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("should issue session id when missing", func(t *testing.T) {
		// given
		h := setupApplication(t, nil)

		// when
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/navigation", nil))

		// then
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(session.Header))
	})

	t.Run("should serve fallback values when upstreams fail", func(t *testing.T) {
		// given
		h := setupApplication(t, nil)

		// when
		weatherRR := httptest.NewRecorder()
		h.ServeHTTP(weatherRR, httptest.NewRequest("GET", "/api/days/1/weather", nil))
		exchangeRR := httptest.NewRecorder()
		h.ServeHTTP(exchangeRR, httptest.NewRequest("GET", "/api/exchange/jpy-twd", nil))

		// then
		require.Equal(t, http.StatusOK, weatherRR.Code)
		var weather struct {
			Value struct {
				Temperature float64 `json:"temperature"`
				Label       string  `json:"label"`
			} `json:"value"`
			Degraded bool `json:"degraded"`
		}
		require.NoError(t, json.NewDecoder(weatherRR.Body).Decode(&weather))
		assert.True(t, weather.Degraded)
		assert.Equal(t, -3.0, weather.Value.Temperature)
		assert.Equal(t, "snow", weather.Value.Label)

		require.Equal(t, http.StatusOK, exchangeRR.Code)
		var exchange struct {
			Value struct {
				Rate float64 `json:"rate"`
			} `json:"value"`
			Degraded bool `json:"degraded"`
		}
		require.NoError(t, json.NewDecoder(exchangeRR.Body).Decode(&exchange))
		assert.True(t, exchange.Degraded)
		assert.Equal(t, 0.215, exchange.Value.Rate)
	})

	t.Run("should keep packing state per session", func(t *testing.T) {
		// given
		h := setupApplication(t, nil)
		toggle := httptest.NewRequest("PUT", "/api/packing/items/Passport/checked", strings.NewReader(`{"checked":true}`))
		toggle.Header.Set(session.Header, "trip-a")
		h.ServeHTTP(httptest.NewRecorder(), toggle)

		// when
		same := httptest.NewRequest("GET", "/api/packing", nil)
		same.Header.Set(session.Header, "trip-a")
		sameRR := httptest.NewRecorder()
		h.ServeHTTP(sameRR, same)
		other := httptest.NewRequest("GET", "/api/packing", nil)
		other.Header.Set(session.Header, "trip-b")
		otherRR := httptest.NewRecorder()
		h.ServeHTTP(otherRR, other)

		// then
		var sameList, otherList struct {
			Checked int `json:"checked"`
		}
		require.NoError(t, json.NewDecoder(sameRR.Body).Decode(&sameList))
		require.NoError(t, json.NewDecoder(otherRR.Body).Decode(&otherList))
		assert.Equal(t, 1, sameList.Checked)
		assert.Equal(t, 0, otherList.Checked)
	})

	t.Run("should answer cors preflight", func(t *testing.T) {
		// given
		h := setupApplication(t, func(cfg *config.Application) {
			cfg.Cors.AllowedOrigins = []string{"http://trip.test"}
		})
		req := httptest.NewRequest("OPTIONS", "/api/packing", nil)
		req.Header.Set("Origin", "http://trip.test")
		req.Header.Set("Access-Control-Request-Method", "PUT")

		// when
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		// then
		assert.Equal(t, "http://trip.test", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("should limit request rate per client", func(t *testing.T) {
		// given
		h := setupApplication(t, func(cfg *config.Application) {
			cfg.RateLimit = config.RateLimit{Enabled: true, Rps: 0.001, Burst: 1}
		})

		// when
		first := httptest.NewRecorder()
		h.ServeHTTP(first, httptest.NewRequest("GET", "/api/health", nil))
		second := httptest.NewRecorder()
		h.ServeHTTP(second, httptest.NewRequest("GET", "/api/health", nil))

		// then
		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
	})
}
