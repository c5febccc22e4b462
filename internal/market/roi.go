package market

import "math"

// roiProjectionDays is the forward horizon of the projection.
const roiProjectionDays = 30

// projectROI computes a 30-day projection for investing reserveAmount into
// the token at its current state. Pure; never mutates the token.
func projectROI(curve CurveConfig, t *Token, investmentAmount float64) ROIProjection {
	tokensToBuy := curve.TokensForReserve(t.CirculatingSupply, investmentAmount)

	dailyGrowth := t.ROI / 365
	projectedPrice := t.CurrentPrice * math.Pow(1+dailyGrowth, roiProjectionDays)
	potentialReturn := tokensToBuy*projectedPrice - investmentAmount

	// The break-even price is undefined only when no tokens can be bought.
	// The time to reach it additionally needs positive growth; without that
	// it is reported as zero rather than propagating Inf.
	var breakEvenPrice, timeToBreakEven float64
	if tokensToBuy > 0 {
		breakEvenPrice = investmentAmount / tokensToBuy
		if t.CurrentPrice > 0 && dailyGrowth > 0 {
			timeToBreakEven = math.Log(breakEvenPrice/t.CurrentPrice) / math.Log(1+dailyGrowth)
			timeToBreakEven = math.Max(0, timeToBreakEven)
			if math.IsNaN(timeToBreakEven) || math.IsInf(timeToBreakEven, 0) {
				timeToBreakEven = 0
			}
		}
	}

	return ROIProjection{
		CurrentPrice:    t.CurrentPrice,
		ProjectedPrice:  projectedPrice,
		PotentialReturn: potentialReturn,
		BreakEvenPrice:  breakEvenPrice,
		TimeToBreakEven: timeToBreakEven,
		RiskLevel:       riskLevelFor(t.MarketCap),
	}
}

// riskLevelFor classifies risk purely by market cap, in reserve-currency
// terms.
func riskLevelFor(marketCap float64) string {
	switch {
	case marketCap < 100_000:
		return RiskHigh
	case marketCap < 1_000_000:
		return RiskMedium
	default:
		return RiskLow
	}
}
