package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"musicmarket/internal/market"
)

// ListMusicTokens returns all tokens ordered by launch date.
func ListMusicTokens(c *gin.Context) {
	c.JSON(http.StatusOK, Market.AllTokens())
}

// GetMusicToken returns a single token by ID.
func GetMusicToken(c *gin.Context) {
	token, ok := Market.Token(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Token not found"})
		return
	}
	c.JSON(http.StatusOK, token)
}

// ListMusicTokensByStatus returns tokens in the given lifecycle stage.
func ListMusicTokensByStatus(c *gin.Context) {
	status := market.TokenStatus(c.Param("status"))
	switch status {
	case market.StatusLaunching, market.StatusTrading, market.StatusIPO, market.StatusGraduated:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	c.JSON(http.StatusOK, Market.TokensByStatus(status))
}

// GetTrendingTokens returns active tokens ranked by 24h volume.
func GetTrendingTokens(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	c.JSON(http.StatusOK, Market.TrendingTokens(limit))
}

// CreateMusicToken creates a new music token from the request body.
func CreateMusicToken(c *gin.Context) {
	var request market.CreateTokenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := Market.CreateToken(request)
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}

	token, _ := Market.Token(result.TokenID)
	c.JSON(http.StatusCreated, gin.H{
		"result": result,
		"token":  token,
	})
}

// TradeRequest is the request body for executing a trade.
type TradeRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Side   string  `json:"side" binding:"required"`
}

// ExecuteTrade applies a buy or sell against a token's bonding curve.
func ExecuteTrade(c *gin.Context) {
	id := c.Param("id")
	if _, ok := Market.Token(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Token not found"})
		return
	}

	var request TradeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !Market.ExecuteTrade(id, request.Amount, market.TradeSide(request.Side)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Trade rejected"})
		return
	}

	token, _ := Market.Token(id)
	c.JSON(http.StatusOK, token)
}

// GetROIProjection returns a 30-day projection for a prospective investment.
func GetROIProjection(c *gin.Context) {
	amountStr := c.DefaultQuery("amount", "1000")
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	projection, ok := Market.ROIProjection(c.Param("id"), amount)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Token not found"})
		return
	}
	c.JSON(http.StatusOK, projection)
}

// GetLifetimeVolume returns a token's total recorded trading volume.
func GetLifetimeVolume(c *gin.Context) {
	id := c.Param("id")
	if _, ok := Market.Token(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Token not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token_id":        id,
		"lifetime_volume": Market.LifetimeVolume(id),
	})
}
