package market

import (
	"time"

	logger "github.com/sirupsen/logrus"
)

// Demo catalogue. Three tokenized songs across the artist tiers the demo
// models: established ($85K annual publishing revenue), mid-level ($45K)
// and emerging ($12K).

func daysAgo(now time.Time, d int) time.Time {
	return now.Add(-time.Duration(d) * 24 * time.Hour)
}

func (r *Registry) demoTokens() []*Token {
	now := r.now()
	return []*Token{
		{
			ID:                "1",
			Name:              "Midnight Dreams",
			Symbol:            "DREAM",
			Artist:            "Luna Echo",
			Description:       "A haunting electronic ballad about lost love and redemption.",
			ISRC:              "USRC12345678",
			InitialPrice:      0.25,
			CurrentPrice:      0.32,
			TotalSupply:       500000,
			CirculatingSupply: 450000,
			Volume24h:         12500,
			PriceChange24h:    8.5,
			PriceChange7d:     28.0,
			PublishingRights:  80,
			ProjectedRevenue:  85000,
			ProjectedDividends: 12750,
			ROI:               0.28,
			Status:            StatusTrading,
			LaunchDate:        daysAgo(now, 14),
			SongMetadata: SongMetadata{
				Title: "Midnight Dreams", Artist: "Luna Echo", ISRC: "USRC12345678",
				Genre: "Electronic", Duration: "3:45", BPM: 128, Key: "Am",
				ReleaseDate: "2024-01-15", CompositionDate: "2023-11-20",
				PublishingRevenue: 85000, ArtistAllocation: 80,
			},
			SocialLinks: SocialLinks{
				Spotify:    "https://open.spotify.com/track/example1",
				AppleMusic: "https://music.apple.com/track/example1",
			},
			TradingHistory: []TradeRecord{
				{Timestamp: daysAgo(now, 5), Price: 0.25, Volume: 3000, Side: SideBuy},
				{Timestamp: daysAgo(now, 2), Price: 0.30, Volume: 5000, Side: SideBuy},
			},
			Creator:         r.creatorAddress(),
			TransactionHash: r.newTransactionRef(),
			MintAddress:     r.newMintAddress(),
		},
		{
			ID:                "2",
			Name:              "Ocean Waves",
			Symbol:            "WAVES",
			Artist:            "Marina Blue",
			Description:       "A soothing ambient track inspired by the ocean.",
			ISRC:              "USRC87654321",
			InitialPrice:      0.15,
			CurrentPrice:      0.18,
			TotalSupply:       750000,
			CirculatingSupply: 700000,
			Volume24h:         8900,
			PriceChange24h:    5.2,
			PriceChange7d:     20.0,
			PublishingRights:  75,
			ProjectedRevenue:  45000,
			ProjectedDividends: 6750,
			ROI:               0.20,
			Status:            StatusTrading,
			LaunchDate:        daysAgo(now, 21),
			SongMetadata: SongMetadata{
				Title: "Ocean Waves", Artist: "Marina Blue", ISRC: "USRC87654321",
				Genre: "Ambient", Duration: "4:20", BPM: 85, Key: "C",
				ReleaseDate: "2024-01-10", CompositionDate: "2023-12-05",
				PublishingRevenue: 45000, ArtistAllocation: 75,
			},
			SocialLinks: SocialLinks{
				Spotify: "https://open.spotify.com/track/example2",
				YouTube: "https://youtube.com/watch?v=example2",
			},
			TradingHistory: []TradeRecord{
				{Timestamp: daysAgo(now, 10), Price: 0.15, Volume: 2000, Side: SideBuy},
				{Timestamp: daysAgo(now, 3), Price: 0.17, Volume: 4000, Side: SideBuy},
			},
			Creator:         r.creatorAddress(),
			TransactionHash: r.newTransactionRef(),
			MintAddress:     r.newMintAddress(),
		},
		{
			ID:                "3",
			Name:              "Urban Rhythm",
			Symbol:            "RHYTHM",
			Artist:            "Beat Master",
			Description:       "High-energy hip-hop track with infectious beats.",
			ISRC:              "USRC11223344",
			InitialPrice:      0.10,
			CurrentPrice:      0.12,
			TotalSupply:       1000000,
			CirculatingSupply: 950000,
			Volume24h:         15600,
			PriceChange24h:    12.0,
			PriceChange7d:     35.0,
			PublishingRights:  70,
			ProjectedRevenue:  12000,
			ProjectedDividends: 1800,
			ROI:               0.35,
			Status:            StatusLaunching,
			LaunchDate:        daysAgo(now, 3),
			SongMetadata: SongMetadata{
				Title: "Urban Rhythm", Artist: "Beat Master", ISRC: "USRC11223344",
				Genre: "Hip-Hop", Duration: "3:15", BPM: 95, Key: "F",
				ReleaseDate: "2024-01-20", CompositionDate: "2024-01-05",
				PublishingRevenue: 12000, ArtistAllocation: 70,
			},
			SocialLinks: SocialLinks{
				Spotify:    "https://open.spotify.com/track/example3",
				AppleMusic: "https://music.apple.com/track/example3",
			},
			TradingHistory: []TradeRecord{
				{Timestamp: daysAgo(now, 2), Price: 0.10, Volume: 6000, Side: SideBuy},
				{Timestamp: daysAgo(now, 1), Price: 0.11, Volume: 8000, Side: SideBuy},
			},
			Creator:         r.creatorAddress(),
			TransactionHash: r.newTransactionRef(),
			MintAddress:     r.newMintAddress(),
		},
	}
}

// refreshedDemoTokens is the "touring artist" variant of the catalogue used
// by the maintenance reset: higher prices, volumes and yields reflecting
// live-performance revenue.
func (r *Registry) refreshedDemoTokens() []*Token {
	now := r.now()
	tokens := r.demoTokens()

	tokens[0].CurrentPrice = 0.42
	tokens[0].Volume24h = 28500
	tokens[0].PriceChange24h = 12.5
	tokens[0].PriceChange7d = 68.0
	tokens[0].ProjectedRevenue = 45000
	tokens[0].ProjectedDividends = 6750
	tokens[0].ROI = 0.48
	tokens[0].SongMetadata.PublishingRevenue = 45000
	tokens[0].TradingHistory = []TradeRecord{
		{Timestamp: daysAgo(now, 5), Price: 0.25, Volume: 3000, Side: SideBuy},
		{Timestamp: daysAgo(now, 2), Price: 0.35, Volume: 5000, Side: SideBuy},
	}

	tokens[1].CurrentPrice = 0.28
	tokens[1].Volume24h = 22400
	tokens[1].PriceChange24h = 8.2
	tokens[1].PriceChange7d = 86.7
	tokens[1].ProjectedRevenue = 32000
	tokens[1].ProjectedDividends = 4800
	tokens[1].ROI = 0.41
	tokens[1].SongMetadata.PublishingRevenue = 32000
	tokens[1].TradingHistory = []TradeRecord{
		{Timestamp: daysAgo(now, 10), Price: 0.15, Volume: 2000, Side: SideBuy},
		{Timestamp: daysAgo(now, 3), Price: 0.22, Volume: 4000, Side: SideBuy},
	}

	tokens[2].CurrentPrice = 0.18
	tokens[2].Volume24h = 34200
	tokens[2].PriceChange24h = 15.0
	tokens[2].PriceChange7d = 80.0
	tokens[2].ProjectedRevenue = 28000
	tokens[2].ProjectedDividends = 4200
	tokens[2].ROI = 0.49
	tokens[2].Status = StatusTrading
	tokens[2].SongMetadata.PublishingRevenue = 28000
	tokens[2].TradingHistory = []TradeRecord{
		{Timestamp: daysAgo(now, 2), Price: 0.10, Volume: 6000, Side: SideBuy},
		{Timestamp: daysAgo(now, 1), Price: 0.15, Volume: 8000, Side: SideBuy},
	}

	return tokens
}

// SeedDemoTokens loads the demo catalogue into an empty registry. The lock
// is taken before the catalogue is built: token construction draws synthetic
// references from the shared randomness source.
func (r *Registry) SeedDemoTokens() {
	r.mu.Lock()
	tokens := r.demoTokens()
	r.replaceAllLocked(tokens)
	r.mu.Unlock()
	logger.Infof("Seeded %d demo tokens", len(tokens))
}

// ResetMarketData bulk-replaces the registry with the refreshed touring
// catalogue. This is a maintenance operation, not a per-token lifecycle
// event; it serializes against the simulation clock like every other
// mutation.
func (r *Registry) ResetMarketData() {
	r.mu.Lock()
	r.replaceAllLocked(r.refreshedDemoTokens())
	r.mu.Unlock()
	logger.Info("Market data reset to refreshed demo catalogue")
}
