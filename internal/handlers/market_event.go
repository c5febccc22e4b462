package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"musicmarket/internal/models"
	dbconfig "musicmarket/pkg/config"
)

func triggerEvent(c *gin.Context, apply func(string) bool, rejected string) {
	id := c.Param("id")
	if _, ok := Market.Token(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Token not found"})
		return
	}

	if !apply(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": rejected})
		return
	}

	token, _ := Market.Token(id)
	c.JSON(http.StatusOK, token)
}

// TriggerTourAnnouncement applies a tour-announcement shock to a token.
func TriggerTourAnnouncement(c *gin.Context) {
	triggerEvent(c, Market.TourAnnouncement, "Event not applicable to this token")
}

// TriggerExchangeGraduation graduates a token to exchange listing when it
// has enough lifetime volume.
func TriggerExchangeGraduation(c *gin.Context) {
	triggerEvent(c, Market.GraduateToExchange, "Token has not met the graduation volume threshold")
}

// TriggerExchangeDemand applies a post-graduation demand surge.
func TriggerExchangeDemand(c *gin.Context) {
	triggerEvent(c, Market.ExchangeDemandSurge, "Token is not graduated")
}

// InstantGraduate force-graduates a token, bypassing the volume gate.
func InstantGraduate(c *gin.Context) {
	triggerEvent(c, Market.InstantGraduate, "Token is already graduated")
}

// paginate reads page/page_size query params with the shared bounds.
func paginate(c *gin.Context) (page, pageSize, offset int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize, (page - 1) * pageSize
}

// ListMarketSnapshots returns archived market snapshots, newest first.
func ListMarketSnapshots(c *gin.Context) {
	if dbconfig.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Archive database not configured"})
		return
	}

	page, pageSize, offset := paginate(c)

	var totalCount int64
	if err := dbconfig.DB.Model(&models.MarketSnapshot{}).Count(&totalCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var snapshots []models.MarketSnapshot
	if err := dbconfig.DB.Order("recorded_at DESC").Offset(offset).Limit(pageSize).Find(&snapshots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(pageSize)))
	c.JSON(http.StatusOK, gin.H{
		"data": snapshots,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total_count": totalCount,
			"total_pages": totalPages,
			"has_next":    page < totalPages,
			"has_prev":    page > 1,
		},
	})
}

// ListMarketEvents returns archived market events, newest first, optionally
// filtered by token_id or type.
func ListMarketEvents(c *gin.Context) {
	if dbconfig.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Archive database not configured"})
		return
	}

	page, pageSize, offset := paginate(c)

	query := dbconfig.DB.Model(&models.MarketEvent{})
	if tokenID := c.Query("token_id"); tokenID != "" {
		query = query.Where("token_id = ?", tokenID)
	}
	if eventType := c.Query("type"); eventType != "" {
		query = query.Where("type = ?", eventType)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var events []models.MarketEvent
	if err := query.Order("occurred_at DESC").Offset(offset).Limit(pageSize).Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(pageSize)))
	c.JSON(http.StatusOK, gin.H{
		"data": events,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total_count": totalCount,
			"total_pages": totalPages,
			"has_next":    page < totalPages,
			"has_prev":    page > 1,
		},
	})
}
