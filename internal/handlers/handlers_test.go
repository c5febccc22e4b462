package handlers_test

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"musicmarket/internal/handlers"
	"musicmarket/internal/market"
	"musicmarket/internal/routes"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestRouter wires a fresh seeded registry into the handler package and
// returns a router with all routes registered.
func newTestRouter(seed int64) *gin.Engine {
	registry := market.NewRegistry(market.DefaultCurveConfig(), market.DefaultSimulationConfig(), market.RegistryOptions{
		Rand: rand.New(rand.NewSource(seed)),
	})
	registry.SeedDemoTokens()
	handlers.Init(registry)
	return routes.SetupRouter()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeTokens(t *testing.T, w *httptest.ResponseRecorder) []market.Token {
	t.Helper()
	var tokens []market.Token
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokens))
	return tokens
}

func TestListMusicTokens(t *testing.T) {
	r := newTestRouter(1)

	w := doRequest(r, http.MethodGet, "/tokens", "")
	require.Equal(t, http.StatusOK, w.Code)

	tokens := decodeTokens(t, w)
	require.Len(t, tokens, 3)

	// Ordered by launch date, oldest first
	assert.Equal(t, "2", tokens[0].ID)
	assert.Equal(t, "1", tokens[1].ID)
	assert.Equal(t, "3", tokens[2].ID)
}

func TestGetMusicToken(t *testing.T) {
	r := newTestRouter(1)

	t.Run("Existing token", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/tokens/1", "")
		require.Equal(t, http.StatusOK, w.Code)

		var token market.Token
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
		assert.Equal(t, "DREAM", token.Symbol)
		assert.Equal(t, "Luna Echo", token.Artist)
	})

	t.Run("Unknown token", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/tokens/999", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListMusicTokensByStatus(t *testing.T) {
	r := newTestRouter(1)

	t.Run("Trading tokens", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/tokens/by-status/trading", "")
		require.Equal(t, http.StatusOK, w.Code)
		tokens := decodeTokens(t, w)
		assert.Len(t, tokens, 2)
	})

	t.Run("Launching tokens", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/tokens/by-status/launching", "")
		require.Equal(t, http.StatusOK, w.Code)
		tokens := decodeTokens(t, w)
		require.Len(t, tokens, 1)
		assert.Equal(t, "3", tokens[0].ID)
	})

	t.Run("Invalid status", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/tokens/by-status/liquidated", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetTrendingTokens(t *testing.T) {
	r := newTestRouter(1)

	// Launching tokens are excluded from trending
	w := doRequest(r, http.MethodGet, "/tokens/trending?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	tokens := decodeTokens(t, w)
	require.Len(t, tokens, 2)
	assert.Equal(t, "1", tokens[0].ID)
	assert.Equal(t, "2", tokens[1].ID)
	assert.GreaterOrEqual(t, tokens[0].Volume24h, tokens[1].Volume24h)
}

func TestCreateMusicToken(t *testing.T) {
	r := newTestRouter(1)

	t.Run("Valid request", func(t *testing.T) {
		body := `{
			"name": "Neon Skyline",
			"symbol": "NEON",
			"artist": "City Lights",
			"publishing_rights": 75,
			"initial_price": 0.5,
			"initial_supply": 100000
		}`
		w := doRequest(r, http.MethodPost, "/tokens", body)
		require.Equal(t, http.StatusCreated, w.Code)

		var response struct {
			Result market.TokenCreationResult `json:"result"`
			Token  market.Token               `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Result.Success)
		assert.NotEmpty(t, response.Result.TokenID)
		assert.NotEmpty(t, response.Result.TransactionHash)
		assert.Equal(t, "NEON", response.Token.Symbol)
		assert.Equal(t, market.StatusLaunching, response.Token.Status)
		assert.InDelta(t, response.Token.CurrentPrice*response.Token.CirculatingSupply, response.Token.MarketCap, 1e-9)
	})

	t.Run("Missing required fields", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/tokens", `{"symbol": "X"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid economics", func(t *testing.T) {
		body := `{
			"name": "Bad Token",
			"symbol": "BAD",
			"artist": "Nobody",
			"publishing_rights": 150,
			"initial_price": 0.5,
			"initial_supply": 100000
		}`
		w := doRequest(r, http.MethodPost, "/tokens", body)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var result market.TokenCreationResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Error)
	})
}

func TestExecuteTrade(t *testing.T) {
	r := newTestRouter(1)

	t.Run("Buy trade", func(t *testing.T) {
		before := doRequest(r, http.MethodGet, "/tokens/1", "")
		var prev market.Token
		require.NoError(t, json.Unmarshal(before.Body.Bytes(), &prev))

		w := doRequest(r, http.MethodPost, "/tokens/1/trade", `{"amount": 5000, "side": "buy"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var token market.Token
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
		assert.Equal(t, prev.Volume24h+5000, token.Volume24h)
		assert.Greater(t, token.CurrentPrice, prev.CurrentPrice)
		assert.InDelta(t, token.CurrentPrice*token.CirculatingSupply, token.MarketCap, 1e-6)
	})

	t.Run("Unknown token", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/tokens/999/trade", `{"amount": 5000, "side": "buy"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid side", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/tokens/1/trade", `{"amount": 5000, "side": "short"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Non-positive amount", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/tokens/1/trade", `{"amount": -10, "side": "sell"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetROIProjection(t *testing.T) {
	r := newTestRouter(1)

	t.Run("Default amount", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/tokens/1/roi-projection", "")
		require.Equal(t, http.StatusOK, w.Code)

		var projection market.ROIProjection
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projection))
		assert.InDelta(t, 0.32, projection.CurrentPrice, 1e-9)
		assert.Greater(t, projection.ProjectedPrice, projection.CurrentPrice)
		assert.NotEmpty(t, projection.RiskLevel)
	})

	t.Run("Invalid amount", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/tokens/1/roi-projection?amount=abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown token", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/tokens/999/roi-projection", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetLifetimeVolume(t *testing.T) {
	r := newTestRouter(1)

	w := doRequest(r, http.MethodGet, "/tokens/1/lifetime-volume", "")
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		TokenID        string  `json:"token_id"`
		LifetimeVolume float64 `json:"lifetime_volume"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "1", response.TokenID)
	assert.InDelta(t, 8000, response.LifetimeVolume, 1e-9)
}

func TestGetMarketStats(t *testing.T) {
	r := newTestRouter(1)

	w := doRequest(r, http.MethodGet, "/market/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats market.MarketStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalTokens)
	assert.Equal(t, 2, stats.ActiveTokens)
	assert.Equal(t, 0, stats.GraduatedTokens)
	assert.InDelta(t, 12500+8900+15600, stats.TotalVolume24h, 1e-9)
}

func TestResetMarketData(t *testing.T) {
	r := newTestRouter(1)

	w := doRequest(r, http.MethodPost, "/market/reset", "")
	require.Equal(t, http.StatusOK, w.Code)

	after := doRequest(r, http.MethodGet, "/tokens/1", "")
	var token market.Token
	require.NoError(t, json.Unmarshal(after.Body.Bytes(), &token))
	assert.InDelta(t, 0.42, token.CurrentPrice, 1e-9)
	assert.InDelta(t, 28500, token.Volume24h, 1e-9)
}

func TestMarketEventEndpoints(t *testing.T) {
	t.Run("Tour announcement raises price and revenue", func(t *testing.T) {
		r := newTestRouter(7)

		before := doRequest(r, http.MethodGet, "/tokens/1", "")
		var prev market.Token
		require.NoError(t, json.Unmarshal(before.Body.Bytes(), &prev))

		w := doRequest(r, http.MethodPost, "/events/1/tour-announcement", "")
		require.Equal(t, http.StatusOK, w.Code)

		var token market.Token
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
		assert.Greater(t, token.CurrentPrice, prev.CurrentPrice)
		assert.Greater(t, token.ProjectedRevenue, prev.ProjectedRevenue)
	})

	t.Run("Graduation rejected below volume threshold", func(t *testing.T) {
		r := newTestRouter(7)
		w := doRequest(r, http.MethodPost, "/events/1/graduate", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Instant graduation bypasses threshold", func(t *testing.T) {
		r := newTestRouter(7)
		w := doRequest(r, http.MethodPost, "/admin/1/instant-graduate", "")
		require.Equal(t, http.StatusOK, w.Code)

		var token market.Token
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
		assert.Equal(t, market.StatusGraduated, token.Status)
		require.NotNil(t, token.GraduationDate)
	})

	t.Run("Demand surge requires graduated status", func(t *testing.T) {
		r := newTestRouter(7)
		w := doRequest(r, http.MethodPost, "/events/1/exchange-demand", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		doRequest(r, http.MethodPost, "/admin/1/instant-graduate", "")
		w = doRequest(r, http.MethodPost, "/events/1/exchange-demand", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown token", func(t *testing.T) {
		r := newTestRouter(7)
		w := doRequest(r, http.MethodPost, "/events/999/tour-announcement", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStreamMarketFollowsTickInterval(t *testing.T) {
	sim := market.DefaultSimulationConfig()
	sim.TickInterval = 30 * time.Millisecond
	registry := market.NewRegistry(market.DefaultCurveConfig(), sim, market.RegistryOptions{
		Rand: rand.New(rand.NewSource(1)),
	})
	registry.SeedDemoTokens()
	handlers.Init(registry)

	srv := httptest.NewServer(routes.SetupRouter())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/market/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	var frame struct {
		Stats    market.MarketStats `json:"stats"`
		Trending []market.Token     `json:"trending"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	// One frame on connect, then one per simulation tick.
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, 3, frame.Stats.TotalTokens)
	assert.Len(t, frame.Trending, 2)

	start := time.Now()
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 3, frame.Stats.TotalTokens)
}

func TestArchiveEndpointsWithoutDatabase(t *testing.T) {
	r := newTestRouter(1)

	w := doRequest(r, http.MethodGet, "/snapshots", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doRequest(r, http.MethodGet, "/market-events", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(1)

	w := doRequest(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
