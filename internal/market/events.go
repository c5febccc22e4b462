package market

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
)

// Discrete market-shock operations. Each is an atomic read-modify-write on
// a single token: it either fully applies or fully no-ops, reporting the
// outcome as a boolean. A false return means the token is unknown or a
// business rule was not met, never a system error.

// TourAnnouncement models the label securing a tour for the artist:
// projected revenue jumps 50-70%, price jumps 20-40%, dividends and ROI are
// re-derived.
func (r *Registry) TourAnnouncement(tokenID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenID]
	if !ok {
		return false
	}

	revenueIncrease := 0.5 + r.rng.Float64()*0.2
	token.ProjectedRevenue *= 1 + revenueIncrease
	token.ProjectedDividends = token.ProjectedRevenue * (r.sim.BaseROI / 100)

	priceIncrease := 0.2 + r.rng.Float64()*0.2
	token.CurrentPrice *= 1 + priceIncrease
	token.recomputeMarketCap()

	token.ROI = token.ProjectedDividends / token.MarketCap * 100

	logger.WithFields(logger.Fields{
		"token_id":       token.ID,
		"symbol":         token.Symbol,
		"price_increase": fmt.Sprintf("%.1f%%", priceIncrease*100),
	}).Info("Tour announced")

	r.publishEvent(EventTourAnnouncement, token,
		fmt.Sprintf("price +%.1f%%, revenue +%.1f%%", priceIncrease*100, revenueIncrease*100))
	return true
}

// GraduateToExchange moves a token to major exchanges once its lifetime
// trade volume clears the configured threshold: 20x price, 10x 24h volume.
func (r *Registry) GraduateToExchange(tokenID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenID]
	if !ok {
		return false
	}

	lifetime := token.lifetimeVolume()
	if lifetime < r.sim.GraduationVolumeThreshold {
		logger.WithFields(logger.Fields{
			"token_id":        token.ID,
			"lifetime_volume": lifetime,
			"threshold":       r.sim.GraduationVolumeThreshold,
		}).Info("Insufficient volume for graduation")
		return false
	}

	r.applyGraduation(token)

	r.publishEvent(EventExchangeGraduation, token,
		fmt.Sprintf("lifetime volume %.2f", lifetime))
	return true
}

// InstantGraduate is the privileged demo override: identical mutation to
// GraduateToExchange with no volume gate.
func (r *Registry) InstantGraduate(tokenID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenID]
	if !ok {
		return false
	}

	r.applyGraduation(token)
	logger.Warnf("Token %s graduated via admin override", token.ID)

	r.publishEvent(EventInstantGraduation, token, "admin override")
	return true
}

// applyGraduation performs the shared graduation mutation. Callers hold the
// registry lock.
func (r *Registry) applyGraduation(token *Token) {
	now := r.now()
	token.Status = StatusGraduated
	token.GraduationDate = &now

	token.CurrentPrice *= 20
	token.recomputeMarketCap()
	token.Volume24h *= 10

	logger.WithFields(logger.Fields{
		"token_id": token.ID,
		"symbol":   token.Symbol,
		"price":    token.CurrentPrice,
	}).Info("Token graduated to major exchanges")
}

// ExchangeDemandSurge models listing-driven demand on an already graduated
// token: price +30-60%, 24h volume doubled. Fails on any other status.
func (r *Registry) ExchangeDemandSurge(tokenID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenID]
	if !ok || token.Status != StatusGraduated {
		return false
	}

	priceIncrease := 0.3 + r.rng.Float64()*0.3
	token.CurrentPrice *= 1 + priceIncrease
	token.recomputeMarketCap()
	token.Volume24h *= 2

	logger.WithFields(logger.Fields{
		"token_id":       token.ID,
		"symbol":         token.Symbol,
		"price_increase": fmt.Sprintf("%.1f%%", priceIncrease*100),
	}).Info("Exchange demand surge")

	r.publishEvent(EventExchangeDemandSurge, token,
		fmt.Sprintf("price +%.1f%%", priceIncrease*100))
	return true
}

// LifetimeVolume sums the token's recorded trade volumes; 0 for unknown ids.
func (r *Registry) LifetimeVolume(tokenID string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenID]
	if !ok {
		return 0
	}
	return token.lifetimeVolume()
}
