package market

import (
	"time"

	logger "github.com/sirupsen/logrus"
)

// EventQueue is the broker queue market events are published to.
const EventQueue = "market_events"

// Market event types published on the event queue.
const (
	EventStatusChange        = "status_change"
	EventTourAnnouncement    = "tour_announcement"
	EventExchangeGraduation  = "exchange_graduation"
	EventInstantGraduation   = "instant_graduation"
	EventExchangeDemandSurge = "exchange_demand_surge"
)

// EventPublisher fans market events out to interested consumers. Satisfied
// by pkg/config.Publisher; optional.
type EventPublisher interface {
	Publish(queueName string, message interface{}) error
}

// MarketEventMessage is the wire payload for a market event.
type MarketEventMessage struct {
	Type      string      `json:"type"`
	TokenID   string      `json:"token_id"`
	Symbol    string      `json:"symbol"`
	Status    TokenStatus `json:"status"`
	Price     float64     `json:"price"`
	MarketCap float64     `json:"market_cap"`
	Volume24h float64     `json:"volume_24h"`
	Detail    string      `json:"detail,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// publishEvent sends a market event if a publisher is configured. Broker
// trouble never fails the market operation that triggered it.
func (r *Registry) publishEvent(eventType string, t *Token, detail string) {
	if r.pub == nil {
		return
	}
	msg := MarketEventMessage{
		Type:      eventType,
		TokenID:   t.ID,
		Symbol:    t.Symbol,
		Status:    t.Status,
		Price:     t.CurrentPrice,
		MarketCap: t.MarketCap,
		Volume24h: t.Volume24h,
		Detail:    detail,
		Timestamp: r.now(),
	}
	if err := r.pub.Publish(EventQueue, msg); err != nil {
		logger.Warnf("Failed to publish market event %s for %s: %v", eventType, t.ID, err)
	}
}
