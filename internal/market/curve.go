package market

import "math"

// Bonding-curve math. The marginal price follows
//
//	price = K * supply^(ReserveRatio-1)
//
// and the reserve<->token conversions invert the area under that curve.
// All functions are pure and clamp degenerate inputs to zero instead of
// letting NaN/Inf escape into token state.

// nearZero guards divisions against zero or denormal denominators.
const nearZero = 1e-12

// PriceAt evaluates the instantaneous marginal price at supply+delta.
// delta may be negative for sell-side estimation. When supply+delta <= 0
// the result is non-finite and callers must reject it before use.
func (c CurveConfig) PriceAt(supply, delta float64) float64 {
	return c.K * math.Pow(supply+delta, c.ReserveRatio-1)
}

// TokensForReserve returns the token quantity obtainable for a reserve
// amount at the given circulating supply: the delta such that the curve
// integral from supply to supply+delta equals reserveAmount. Never negative.
func (c CurveConfig) TokensForReserve(supply, reserveAmount float64) float64 {
	if reserveAmount <= 0 || supply <= 0 || c.K < nearZero || c.ReserveRatio < nearZero {
		return 0
	}
	tokens := math.Pow(reserveAmount/c.K+math.Pow(supply, c.ReserveRatio), 1/c.ReserveRatio) - supply
	if math.IsNaN(tokens) || math.IsInf(tokens, 0) {
		return 0
	}
	return math.Max(0, tokens)
}

// ReserveForTokens returns the reserve amount obtained by selling
// tokenAmount out of circulation at the given supply. Never negative.
func (c CurveConfig) ReserveForTokens(supply, tokenAmount float64) float64 {
	if tokenAmount <= 0 || supply <= 0 {
		return 0
	}
	// Selling more than circulates empties the curve.
	if tokenAmount > supply {
		tokenAmount = supply
	}
	reserve := c.K * (math.Pow(supply, c.ReserveRatio) - math.Pow(supply-tokenAmount, c.ReserveRatio))
	if math.IsNaN(reserve) || math.IsInf(reserve, 0) {
		return 0
	}
	return math.Max(0, reserve)
}

// PriceImpact returns the signed fractional price impact of a trade of the
// given reserve amount against a token with the given market cap. This is a
// deliberate linear approximation, not the exact curve integral.
func (c CurveConfig) PriceImpact(marketCap, amount float64, isBuy bool) float64 {
	if marketCap < nearZero {
		return 0
	}
	impact := (amount / marketCap) * c.PriceImpactMultiplier
	if math.IsNaN(impact) || math.IsInf(impact, 0) {
		return 0
	}
	if !isBuy {
		return -impact
	}
	return impact
}
