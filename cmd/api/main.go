package main

import (
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	logger "github.com/sirupsen/logrus"

	"musicmarket/internal/handlers"
	"musicmarket/internal/market"
	"musicmarket/internal/models"
	"musicmarket/internal/routes"
	"musicmarket/pkg/config"
	"musicmarket/pkg/wallet"
)

func main() {
	// Initialize archive database (optional, gated on DB_HOST)
	if os.Getenv("DB_HOST") != "" {
		config.InitDB()
		if os.Getenv("RUN_MIGRATIONS") == "true" {
			config.ExecuteMigrations()
		}
		log.Println("Archive database initialized successfully")
	} else {
		log.Println("Archive database not configured, skipping initialization")
	}

	// Initialize RabbitMQ (optional, will log warning if not configured)
	var publisher market.EventPublisher
	if os.Getenv("RABBITMQ_HOST") != "" {
		config.InitRabbitMQ()
		defer func() {
			if config.RabbitMQ != nil {
				config.RabbitMQ.Close()
			}
		}()

		p, err := config.NewPublisher()
		if err != nil {
			log.Fatal("Failed to create event publisher:", err)
		}
		defer p.Close()
		publisher = p
		log.Println("RabbitMQ initialized successfully")
	} else {
		log.Println("RabbitMQ not configured, skipping initialization")
	}

	// Keystore backing the synthetic chain references on created tokens
	keystoreDir := os.Getenv("KEYSTORE_DIR")
	if keystoreDir == "" {
		keystoreDir = ".keys"
	}
	keystore := wallet.New(keystoreDir)
	if password := os.Getenv("KEYSTORE_PASSWORD"); password != "" {
		if err := keystore.Save(password); err != nil {
			logger.Warnf("Failed to persist keystore: %v", err)
		}
	}

	sim := market.DefaultSimulationConfig()
	if raw := os.Getenv("MARKET_TICK_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil || interval <= 0 {
			log.Fatalf("Invalid MARKET_TICK_INTERVAL %q", raw)
		}
		sim.TickInterval = interval
	}

	registry := market.NewRegistry(market.DefaultCurveConfig(), sim, market.RegistryOptions{
		Publisher:  publisher,
		References: keystore,
		OnStatusUpdate: func(status string) {
			logger.Info(status)
		},
	})
	registry.SeedDemoTokens()
	handlers.Init(registry)

	// Start the market simulation clock
	clock := market.NewClock(registry)
	if err := clock.Start(); err != nil {
		log.Fatal("Failed to start market simulation:", err)
	}
	defer clock.Stop()

	// Periodic market snapshots into the archive
	if config.DB != nil {
		schedule := cron.New()
		_, err := schedule.AddFunc("@every 5m", func() {
			stats := registry.Stats()
			snapshot := models.MarketSnapshot{
				TotalTokens:     stats.TotalTokens,
				TotalMarketCap:  stats.TotalMarketCap,
				TotalVolume24h:  stats.TotalVolume24h,
				ActiveTokens:    stats.ActiveTokens,
				GraduatedTokens: stats.GraduatedTokens,
				AverageROI:      stats.AverageROI,
				RecordedAt:      time.Now().UTC(),
			}
			if err := config.DB.Create(&snapshot).Error; err != nil {
				logger.Errorf("Failed to record market snapshot: %v", err)
			}
		})
		if err != nil {
			log.Fatal("Failed to schedule market snapshots:", err)
		}
		schedule.Start()
		defer schedule.Stop()
	}

	// Set up router
	r := routes.SetupRouter()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
