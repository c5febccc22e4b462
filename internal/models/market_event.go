package models

import "time"

// MarketEvent is the persisted form of a market event message consumed from
// the broker: status transitions and simulated market shocks.
type MarketEvent struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Type       string    `gorm:"size:64;index;not null" json:"type"`
	TokenID    string    `gorm:"size:100;index;not null" json:"token_id"`
	Symbol     string    `gorm:"size:16" json:"symbol"`
	Status     string    `gorm:"size:16" json:"status"`
	Price      float64   `json:"price"`
	MarketCap  float64   `json:"market_cap"`
	Volume24h  float64   `json:"volume_24h"`
	Detail     string    `gorm:"type:text" json:"detail"`
	OccurredAt time.Time `gorm:"index" json:"occurred_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MarketEvent) TableName() string {
	return "market_events"
}
