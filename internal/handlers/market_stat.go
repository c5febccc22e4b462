package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"

	"musicmarket/internal/market"
	dbconfig "musicmarket/pkg/config"
)

// GetMarketStats returns aggregate figures across all tokens.
func GetMarketStats(c *gin.Context) {
	c.JSON(http.StatusOK, Market.Stats())
}

// ResetMarketData replaces the registry contents with the refreshed demo
// dataset. Any queued market events from the previous run are purged.
func ResetMarketData(c *gin.Context) {
	Market.ResetMarketData()
	if dbconfig.RabbitMQ != nil {
		if err := dbconfig.PurgeQueue(market.EventQueue); err != nil {
			logger.Warnf("Failed to purge event queue: %v", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Market data reset successfully"})
}

var streamUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamFrame is one websocket push to a market stream subscriber.
type streamFrame struct {
	Stats    interface{} `json:"stats"`
	Trending interface{} `json:"trending"`
	SentAt   time.Time   `json:"sent_at"`
}

// StreamMarket upgrades the connection and pushes market stats once per
// simulation tick until the client disconnects.
func StreamMarket(c *gin.Context) {
	conn, err := streamUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Drain client frames so close messages are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(Market.TickInterval())
	defer ticker.Stop()

	push := func() error {
		return conn.WriteJSON(streamFrame{
			Stats:    Market.Stats(),
			Trending: Market.TrendingTokens(10),
			SentAt:   time.Now().UTC(),
		})
	}

	if err := push(); err != nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := push(); err != nil {
				return
			}
		}
	}
}
