package market

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectROI(t *testing.T) {
	curve := DefaultCurveConfig()
	token := &Token{
		CurrentPrice:      0.32,
		CirculatingSupply: 450000,
		MarketCap:         144000,
		ROI:               0.28,
	}

	investment := 1.0
	proj := projectROI(curve, token, investment)

	dailyGrowth := 0.28 / 365
	wantPrice := 0.32 * math.Pow(1+dailyGrowth, 30)
	assert.InDelta(t, wantPrice, proj.ProjectedPrice, 1e-12)
	assert.Equal(t, 0.32, proj.CurrentPrice)

	tokensToBuy := curve.TokensForReserve(450000, investment)
	assert.InDelta(t, tokensToBuy*wantPrice-investment, proj.PotentialReturn, 1e-9)
	assert.InDelta(t, investment/tokensToBuy, proj.BreakEvenPrice, 1e-12)

	// Break-even price sits far below the current price here, so the token
	// is already past break-even and the time clamps to zero.
	assert.Zero(t, proj.TimeToBreakEven)
	assert.Equal(t, RiskMedium, proj.RiskLevel)
}

func TestProjectROIZeroTokensGuard(t *testing.T) {
	curve := DefaultCurveConfig()
	token := &Token{
		CurrentPrice:      0.32,
		CirculatingSupply: 450000,
		MarketCap:         144000,
		ROI:               0.28,
	}

	proj := projectROI(curve, token, 0)

	assert.Zero(t, proj.BreakEvenPrice)
	assert.Zero(t, proj.TimeToBreakEven)
	assert.False(t, math.IsNaN(proj.PotentialReturn))
	assert.InDelta(t, 0.0, proj.PotentialReturn, 1e-12)
}

func TestProjectROIZeroGrowthStillReportsBreakEven(t *testing.T) {
	curve := DefaultCurveConfig()
	token := &Token{
		CurrentPrice:      0.32,
		CirculatingSupply: 450000,
		MarketCap:         144000,
		ROI:               0,
	}

	investment := 1.0
	proj := projectROI(curve, token, investment)

	// With no growth the price never moves, so there is no break-even
	// horizon. The break-even price itself is still well defined.
	tokensToBuy := curve.TokensForReserve(450000, investment)
	assert.InDelta(t, investment/tokensToBuy, proj.BreakEvenPrice, 1e-12)
	assert.Zero(t, proj.TimeToBreakEven)
	assert.InDelta(t, 0.32, proj.ProjectedPrice, 1e-12)
}

func TestRiskLevelThresholds(t *testing.T) {
	assert.Equal(t, RiskHigh, riskLevelFor(50_000))
	assert.Equal(t, RiskHigh, riskLevelFor(99_999))
	assert.Equal(t, RiskMedium, riskLevelFor(100_000))
	assert.Equal(t, RiskMedium, riskLevelFor(999_999))
	assert.Equal(t, RiskLow, riskLevelFor(1_000_000))
	assert.Equal(t, RiskLow, riskLevelFor(25_000_000))
}
