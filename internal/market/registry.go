package market

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"
)

// ReferenceSource mints synthetic chain references for created tokens.
// Implemented by pkg/wallet; the registry falls back to opaque local
// identifiers when none is configured.
type ReferenceSource interface {
	CreatorAddress() string
	NewMintAddress() string
	NewTransactionRef() string
}

// RegistryOptions carries the injectable collaborators. Zero values are
// replaced with sane defaults so tests can override only what they need.
type RegistryOptions struct {
	// Rand drives simulation drift and event-shock magnitudes. Inject a
	// seeded source for deterministic tests.
	Rand *rand.Rand
	// Now supplies the registry clock.
	Now func() time.Time
	// OnStatusUpdate receives human-readable progress strings during token
	// creation.
	OnStatusUpdate func(status string)
	// Publisher, when set, receives a MarketEventMessage for every status
	// transition and market shock.
	Publisher EventPublisher
	// References supplies creator/mint/transaction identifiers.
	References ReferenceSource
}

// Registry is the authoritative in-memory store of music tokens. Every
// read-modify-write sequence runs under one mutex so the market-cap
// invariant holds between the trade path, the event simulator and the
// simulation clock.
type Registry struct {
	mu     sync.Mutex
	tokens map[string]*Token

	curve CurveConfig
	sim   SimulationConfig

	rng      *rand.Rand
	now      func() time.Time
	onStatus func(string)
	pub      EventPublisher
	refs     ReferenceSource
}

// NewRegistry builds an empty registry. Nothing starts running here; the
// simulation clock is a separate object with its own lifecycle.
func NewRegistry(curve CurveConfig, sim SimulationConfig, opts RegistryOptions) *Registry {
	r := &Registry{
		tokens:   make(map[string]*Token),
		curve:    curve,
		sim:      sim,
		rng:      opts.Rand,
		now:      opts.Now,
		onStatus: opts.OnStatusUpdate,
		pub:      opts.Publisher,
		refs:     opts.References,
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

func (r *Registry) statusUpdate(msg string) {
	if r.onStatus != nil {
		r.onStatus(msg)
	}
}

// randSuffix returns a short base36 identifier chunk, matching the demo
// reference format token_<millis>_<suffix>.
func randSuffix(rng *rand.Rand, n int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[rng.Intn(len(alphabet))])
	}
	return b.String()
}

func (r *Registry) newTokenID() string {
	return fmt.Sprintf("token_%d_%s", r.now().UnixMilli(), randSuffix(r.rng, 9))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ipoValuation computes the IPO value from a simulated annual-revenue
// estimate: 20x the projected dividends on the publishing share.
func (r *Registry) ipoValuation(req CreateTokenRequest) float64 {
	baseRevenue := req.InitialPrice * req.InitialSupply * 100
	publishingRevenue := baseRevenue * (req.PublishingRights / 100)
	projectedDividends := publishingRevenue * (r.sim.BaseROI / 100)
	return round2(projectedDividends * 20)
}

func validateCreateRequest(req CreateTokenRequest) error {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return fmt.Errorf("token name is required")
	case strings.TrimSpace(req.Symbol) == "":
		return fmt.Errorf("token symbol is required")
	case strings.TrimSpace(req.Artist) == "":
		return fmt.Errorf("artist is required")
	case math.IsNaN(req.InitialPrice) || req.InitialPrice <= 0:
		return fmt.Errorf("initial price must be positive")
	case math.IsNaN(req.InitialSupply) || req.InitialSupply <= 0:
		return fmt.Errorf("initial supply must be positive")
	case math.IsNaN(req.PublishingRights) || req.PublishingRights < 0 || req.PublishingRights > 100:
		return fmt.Errorf("publishing rights must be between 0 and 100")
	}
	return nil
}

// CreateToken computes the IPO valuation for the request and registers a new
// token in the launching stage. Failure never leaves a partial token behind.
func (r *Registry) CreateToken(req CreateTokenRequest) TokenCreationResult {
	r.statusUpdate("Creating token...")

	if err := validateCreateRequest(req); err != nil {
		r.statusUpdate("Token creation failed")
		return TokenCreationResult{Success: false, Error: err.Error()}
	}

	ipoValue := r.ipoValuation(req)
	if ipoValue <= 0 {
		r.statusUpdate("Token creation failed")
		return TokenCreationResult{Success: false, Error: "computed IPO valuation is not positive"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	txRef := r.newTransactionRef()
	price := ipoValue / req.InitialSupply
	projectedRevenue := ipoValue / 20
	projectedDividends := projectedRevenue * (r.sim.BaseROI / 100)

	token := &Token{
		ID:          r.newTokenID(),
		Name:        req.Name,
		Symbol:      req.Symbol,
		Artist:      req.Artist,
		Description: req.Description,
		ISRC:        req.ISRC,

		InitialPrice:      price,
		CurrentPrice:      price,
		TotalSupply:       req.InitialSupply,
		CirculatingSupply: req.InitialSupply * 0.8,

		PublishingRights:   req.PublishingRights,
		ProjectedRevenue:   projectedRevenue,
		ProjectedDividends: projectedDividends,
		ROI:                r.sim.BaseROI,

		Status:     StatusLaunching,
		LaunchDate: now,

		SongMetadata: req.SongMetadata,
		SocialLinks:  req.SocialLinks,

		Creator:         r.creatorAddress(),
		TransactionHash: txRef,
		MintAddress:     r.newMintAddress(),
	}
	token.recomputeMarketCap()

	r.tokens[token.ID] = token

	logger.WithFields(logger.Fields{
		"token_id":  token.ID,
		"symbol":    token.Symbol,
		"ipo_value": ipoValue,
	}).Info("Created music token")

	r.statusUpdate("Token created successfully!")
	return TokenCreationResult{
		Success:         true,
		TokenID:         token.ID,
		TransactionHash: txRef,
	}
}

func (r *Registry) creatorAddress() string {
	if r.refs != nil {
		return r.refs.CreatorAddress()
	}
	return "demo-creator"
}

func (r *Registry) newMintAddress() string {
	if r.refs != nil {
		return r.refs.NewMintAddress()
	}
	return fmt.Sprintf("mint_%d_%s", r.now().UnixMilli(), randSuffix(r.rng, 9))
}

func (r *Registry) newTransactionRef() string {
	if r.refs != nil {
		return r.refs.NewTransactionRef()
	}
	return fmt.Sprintf("tx_%d_%s", r.now().UnixMilli(), randSuffix(r.rng, 9))
}

// ExecuteTrade applies a buy or sell of the given reserve amount to the
// token's price via the linear impact approximation, accumulates 24h volume
// and appends a history entry. Returns false for unknown tokens or invalid
// amounts, with no mutation.
func (r *Registry) ExecuteTrade(tokenID string, amount float64, side TradeSide) bool {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return false
	}
	if side != SideBuy && side != SideSell {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenID]
	if !ok {
		return false
	}

	impact := r.curve.PriceImpact(token.MarketCap, amount, side == SideBuy)
	token.CurrentPrice = math.Max(r.sim.PriceFloor, token.CurrentPrice*(1+impact))
	token.recomputeMarketCap()
	token.Volume24h += amount

	token.appendTrade(TradeRecord{
		Timestamp: r.now(),
		Price:     token.CurrentPrice,
		Volume:    amount,
		Side:      side,
	})

	return true
}

// Token returns a copy of the token, or false when the id is unknown.
func (r *Registry) Token(id string) (*Token, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[id]
	if !ok {
		return nil, false
	}
	return token.clone(), true
}

// AllTokens returns copies of every token, ordered by launch date then id
// for stable listings.
func (r *Registry) AllTokens() []*Token {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Token, 0, len(r.tokens))
	for _, t := range r.tokens {
		out = append(out, t.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LaunchDate.Equal(out[j].LaunchDate) {
			return out[i].LaunchDate.Before(out[j].LaunchDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// TokensByStatus filters tokens by lifecycle stage.
func (r *Registry) TokensByStatus(status TokenStatus) []*Token {
	all := r.AllTokens()
	out := make([]*Token, 0, len(all))
	for _, t := range all {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func isActive(status TokenStatus) bool {
	return status == StatusTrading || status == StatusIPO || status == StatusGraduated
}

// TrendingTokens returns active tokens sorted by 24h volume, highest first,
// truncated to limit.
func (r *Registry) TrendingTokens(limit int) []*Token {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Token, 0, len(r.tokens))
	for _, t := range r.tokens {
		if isActive(t.Status) {
			out = append(out, t.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Volume24h != out[j].Volume24h {
			return out[i].Volume24h > out[j].Volume24h
		}
		return out[i].ID < out[j].ID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TickInterval reports the configured simulation tick interval. Streaming
// consumers pace their pushes to it.
func (r *Registry) TickInterval() time.Duration {
	return r.sim.TickInterval
}

// Stats aggregates registry-wide market figures.
func (r *Registry) Stats() MarketStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := MarketStats{TotalTokens: len(r.tokens)}
	var roiSum float64
	for _, t := range r.tokens {
		stats.TotalMarketCap += t.MarketCap
		stats.TotalVolume24h += t.Volume24h
		roiSum += t.ROI
		if isActive(t.Status) {
			stats.ActiveTokens++
		}
		if t.Status == StatusGraduated {
			stats.GraduatedTokens++
		}
	}
	if stats.TotalTokens > 0 {
		stats.AverageROI = roiSum / float64(stats.TotalTokens)
	}
	return stats
}

// ROIProjection projects a 30-day return for investing the given reserve
// amount. Returns false for unknown tokens.
func (r *Registry) ROIProjection(tokenID string, investmentAmount float64) (ROIProjection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenID]
	if !ok {
		return ROIProjection{}, false
	}
	return projectROI(r.curve, token, investmentAmount), true
}

// replaceAll swaps the full registry contents; used by the maintenance
// reset operation.
func (r *Registry) replaceAll(tokens []*Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaceAllLocked(tokens)
}

// replaceAllLocked is replaceAll for callers that already hold the lock,
// so catalogue construction and the swap form one critical section.
func (r *Registry) replaceAllLocked(tokens []*Token) {
	r.tokens = make(map[string]*Token, len(tokens))
	for _, t := range tokens {
		t.recomputeMarketCap()
		r.tokens[t.ID] = t
	}
}
