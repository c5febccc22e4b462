package models

import "time"

// MarketSnapshot is one periodic record of aggregate market state, written
// by the snapshot schedule. Write-behind observability only; never read
// back into the live registry.
type MarketSnapshot struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	TotalTokens     int       `gorm:"not null" json:"total_tokens"`
	TotalMarketCap  float64   `gorm:"not null" json:"total_market_cap"`
	TotalVolume24h  float64   `gorm:"not null" json:"total_volume_24h"`
	ActiveTokens    int       `gorm:"not null" json:"active_tokens"`
	GraduatedTokens int       `gorm:"not null" json:"graduated_tokens"`
	AverageROI      float64   `gorm:"not null" json:"average_roi"`
	RecordedAt      time.Time `gorm:"index;not null" json:"recorded_at"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MarketSnapshot) TableName() string {
	return "market_snapshots"
}
