package market

import "time"

// TokenStatus is the lifecycle stage of a music token. Transitions are
// one-directional: launching -> trading -> ipo -> graduated. Graduation may
// also be reached directly from trading through the exchange-graduation
// event, which bypasses the ipo stage.
type TokenStatus string

const (
	StatusLaunching TokenStatus = "launching"
	StatusTrading   TokenStatus = "trading"
	StatusIPO       TokenStatus = "ipo"
	StatusGraduated TokenStatus = "graduated"
)

// maxTradingHistory bounds the per-token trade log; oldest entries are
// evicted first.
const maxTradingHistory = 100

// TradeSide is the direction of a trade.
type TradeSide string

const (
	SideBuy  TradeSide = "buy"
	SideSell TradeSide = "sell"
)

// TradeRecord is one entry in a token's trading history. Volume figures are
// never modified after the record is appended.
type TradeRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
	Side      TradeSide `json:"side"`
}

// SongMetadata describes the underlying composition.
type SongMetadata struct {
	Title             string  `json:"title"`
	Artist            string  `json:"artist"`
	ISRC              string  `json:"isrc"`
	Genre             string  `json:"genre"`
	Duration          string  `json:"duration"`
	BPM               int     `json:"bpm"`
	Key               string  `json:"key"`
	ReleaseDate       string  `json:"release_date"`
	CompositionDate   string  `json:"composition_date"`
	PublishingRevenue float64 `json:"publishing_revenue,omitempty"`
	ArtistAllocation  float64 `json:"artist_allocation,omitempty"`
}

// SocialLinks holds streaming/social references for a token.
type SocialLinks struct {
	Spotify    string `json:"spotify,omitempty"`
	AppleMusic string `json:"apple_music,omitempty"`
	YouTube    string `json:"youtube,omitempty"`
}

// Token is the aggregate root for one tokenized song. All mutation happens
// through the Registry so that MarketCap stays consistent with
// CurrentPrice * CirculatingSupply.
type Token struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Artist      string `json:"artist"`
	Description string `json:"description"`
	ISRC        string `json:"isrc"`

	// Financial state
	InitialPrice      float64 `json:"initial_price"`
	CurrentPrice      float64 `json:"current_price"`
	TotalSupply       float64 `json:"total_supply"`
	CirculatingSupply float64 `json:"circulating_supply"`
	MarketCap         float64 `json:"market_cap"`
	Volume24h         float64 `json:"volume_24h"`
	PriceChange24h    float64 `json:"price_change_24h"`
	PriceChange7d     float64 `json:"price_change_7d"`

	// Rights & revenue
	PublishingRights   float64 `json:"publishing_rights"`
	ProjectedRevenue   float64 `json:"projected_revenue"`
	ProjectedDividends float64 `json:"projected_dividends"`
	ROI                float64 `json:"roi"`

	// Lifecycle
	Status         TokenStatus `json:"status"`
	LaunchDate     time.Time   `json:"launch_date"`
	GraduationDate *time.Time  `json:"graduation_date,omitempty"`
	IPODate        *time.Time  `json:"ipo_date,omitempty"`

	SongMetadata SongMetadata `json:"song_metadata"`
	SocialLinks  SocialLinks  `json:"social_links"`

	TradingHistory []TradeRecord `json:"trading_history"`

	// Demo chain references (synthetic; no on-chain state behind them)
	Creator         string `json:"creator"`
	TransactionHash string `json:"transaction_hash"`
	MintAddress     string `json:"mint_address"`
}

// recomputeMarketCap restores the market-cap invariant after a price or
// supply mutation. Callers hold the registry lock.
func (t *Token) recomputeMarketCap() {
	t.MarketCap = t.CurrentPrice * t.CirculatingSupply
}

// appendTrade records a trade and evicts the oldest entry past the history
// bound.
func (t *Token) appendTrade(rec TradeRecord) {
	t.TradingHistory = append(t.TradingHistory, rec)
	if len(t.TradingHistory) > maxTradingHistory {
		t.TradingHistory = t.TradingHistory[len(t.TradingHistory)-maxTradingHistory:]
	}
}

// lifetimeVolume sums all recorded trade volumes.
func (t *Token) lifetimeVolume() float64 {
	var sum float64
	for _, rec := range t.TradingHistory {
		sum += rec.Volume
	}
	return sum
}

// clone returns a deep copy so read APIs never hand out registry-internal
// state.
func (t *Token) clone() *Token {
	cp := *t
	cp.TradingHistory = make([]TradeRecord, len(t.TradingHistory))
	copy(cp.TradingHistory, t.TradingHistory)
	if t.GraduationDate != nil {
		d := *t.GraduationDate
		cp.GraduationDate = &d
	}
	if t.IPODate != nil {
		d := *t.IPODate
		cp.IPODate = &d
	}
	return &cp
}

// CreateTokenRequest is the structured input for token creation.
type CreateTokenRequest struct {
	Name             string       `json:"name" binding:"required"`
	Symbol           string       `json:"symbol" binding:"required"`
	Artist           string       `json:"artist" binding:"required"`
	Description      string       `json:"description"`
	ISRC             string       `json:"isrc"`
	PublishingRights float64      `json:"publishing_rights"`
	InitialPrice     float64      `json:"initial_price"`
	InitialSupply    float64      `json:"initial_supply"`
	SongMetadata     SongMetadata `json:"song_metadata"`
	SocialLinks      SocialLinks  `json:"social_links"`
}

// TokenCreationResult is the discriminated outcome of CreateToken. Creation
// is the only operation that reports failure through a message rather than
// a bare boolean.
type TokenCreationResult struct {
	Success         bool   `json:"success"`
	TokenID         string `json:"token_id,omitempty"`
	TransactionHash string `json:"transaction_hash,omitempty"`
	Error           string `json:"error,omitempty"`
}

// MarketStats aggregates registry-wide figures.
type MarketStats struct {
	TotalTokens     int     `json:"total_tokens"`
	TotalMarketCap  float64 `json:"total_market_cap"`
	TotalVolume24h  float64 `json:"total_volume_24h"`
	ActiveTokens    int     `json:"active_tokens"`
	GraduatedTokens int     `json:"graduated_tokens"`
	AverageROI      float64 `json:"average_roi"`
}

// ROIProjection is a read-only 30-day forward projection for a prospective
// investment.
type ROIProjection struct {
	CurrentPrice    float64 `json:"current_price"`
	ProjectedPrice  float64 `json:"projected_price"`
	PotentialReturn float64 `json:"potential_return"`
	BreakEvenPrice  float64 `json:"break_even_price"`
	TimeToBreakEven float64 `json:"time_to_break_even"` // days
	RiskLevel       string  `json:"risk_level"`
}

// Risk classification buckets for ROIProjection.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)
