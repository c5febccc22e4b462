package market

import (
	"fmt"
	"math"
	"sync"

	"github.com/robfig/cron/v3"
	logger "github.com/sirupsen/logrus"
)

// Clock drives the periodic market simulation: on every tick it sweeps the
// registry, applying randomized price drift and lifecycle evaluation to each
// token. Construction does not start anything; Start and Stop control the
// schedule explicitly and Stop is idempotent.
type Clock struct {
	mu       sync.Mutex
	registry *Registry
	cron     *cron.Cron
}

// NewClock builds a stopped simulation clock over the registry.
func NewClock(registry *Registry) *Clock {
	return &Clock{registry: registry}
}

// Start schedules the sweep at the registry's configured tick interval.
// Starting an already running clock is a no-op.
func (c *Clock) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cron != nil {
		return nil
	}

	runner := cron.New(cron.WithSeconds())
	spec := fmt.Sprintf("@every %s", c.registry.sim.TickInterval)
	if _, err := runner.AddFunc(spec, c.registry.Sweep); err != nil {
		return fmt.Errorf("failed to schedule market simulation: %w", err)
	}
	runner.Start()
	c.cron = runner

	logger.Infof("Market simulation started, tick interval %s", c.registry.sim.TickInterval)
	return nil
}

// Stop halts the schedule. Safe to call repeatedly or before Start.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cron == nil {
		return
	}
	c.cron.Stop()
	c.cron = nil
	logger.Info("Market simulation stopped")
}

// Sweep applies one simulation tick to every token. Exposed so tests can
// drive the simulation deterministically without the schedule.
func (r *Registry) Sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, token := range r.tokens {
		r.simulateTick(token)
	}
}

// simulateTick applies drift and lifecycle evaluation to one token. A tick
// that would produce a non-finite price leaves the token's last valid state
// untouched. Callers hold the registry lock.
func (r *Registry) simulateTick(token *Token) {
	perturbation := (r.rng.Float64() - 0.5) * 2 * r.sim.PriceVolatility
	newPrice := token.CurrentPrice * (1 + perturbation)
	if math.IsNaN(newPrice) || math.IsInf(newPrice, 0) {
		logger.Warnf("Skipping drift for %s: non-finite price", token.ID)
		return
	}

	token.CurrentPrice = math.Max(r.sim.PriceFloor, newPrice)
	token.recomputeMarketCap()
	token.PriceChange24h = perturbation * 100

	r.evaluateTransitions(token)
}

// evaluateTransitions fires at most one lifecycle transition per token per
// tick, guarded by the current state so stages are never re-entered.
func (r *Registry) evaluateTransitions(token *Token) {
	now := r.now()
	daysSinceLaunch := now.Sub(token.LaunchDate).Hours() / 24

	switch token.Status {
	case StatusLaunching:
		if daysSinceLaunch >= 7 && token.MarketCap >= r.sim.GraduationThreshold {
			token.Status = StatusTrading
			logger.WithFields(logger.Fields{
				"token_id": token.ID,
				"symbol":   token.Symbol,
			}).Info("Token graduated to trading")
			r.publishEvent(EventStatusChange, token, "launching -> trading")
		}
	case StatusTrading:
		if daysSinceLaunch >= 30 && token.MarketCap >= r.sim.IPOThreshold {
			token.Status = StatusIPO
			token.IPODate = &now
			logger.WithFields(logger.Fields{
				"token_id": token.ID,
				"symbol":   token.Symbol,
			}).Info("Token eligible for IPO")
			r.publishEvent(EventStatusChange, token, "trading -> ipo")
		}
	case StatusIPO:
		if daysSinceLaunch >= 90 && token.MarketCap >= r.sim.IPOThreshold*2 {
			token.Status = StatusGraduated
			token.GraduationDate = &now
			logger.WithFields(logger.Fields{
				"token_id": token.ID,
				"symbol":   token.Symbol,
			}).Info("Token graduated to main exchange")
			r.publishEvent(EventStatusChange, token, "ipo -> graduated")
		}
	}
}
