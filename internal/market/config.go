package market

import "time"

// CurveConfig holds the bonding-curve parameters shared by every token.
// Fixed at registry construction; not runtime-reloadable.
type CurveConfig struct {
	// K is the curve constant in price = K * supply^(ReserveRatio-1).
	K float64
	// ReserveRatio controls curve steepness, in (0, 1].
	ReserveRatio float64
	// PriceImpactMultiplier scales the linear trade-impact approximation.
	PriceImpactMultiplier float64
}

// SimulationConfig holds the market-simulation parameters.
type SimulationConfig struct {
	// BaseROI is the baseline annual yield assumption, as a fraction.
	BaseROI float64
	// GraduationThreshold is the market cap required to leave "launching".
	GraduationThreshold float64
	// IPOThreshold is the market cap required for the ipo stage; graduation
	// from ipo requires twice this value.
	IPOThreshold float64
	// GraduationVolumeThreshold is the lifetime trade volume required by the
	// exchange-graduation event.
	GraduationVolumeThreshold float64
	// PriceVolatility bounds the per-tick uniform drift, as a fraction.
	PriceVolatility float64
	// PriceFloor is the minimum price a token can reach under any mutation.
	PriceFloor float64
	// TickInterval is the simulation sweep period.
	TickInterval time.Duration
}

// DefaultCurveConfig returns the demo curve parameters.
func DefaultCurveConfig() CurveConfig {
	return CurveConfig{
		K:                     0.1,
		ReserveRatio:          0.5,
		PriceImpactMultiplier: 0.05,
	}
}

// DefaultSimulationConfig returns the demo simulation parameters.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		BaseROI:                   0.15,
		GraduationThreshold:       1_000_000,
		IPOThreshold:              5_000_000,
		GraduationVolumeThreshold: 20_000,
		PriceVolatility:           0.03,
		PriceFloor:                0.001,
		TickInterval:              5 * time.Second,
	}
}
