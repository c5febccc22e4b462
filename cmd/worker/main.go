package main

import (
	"encoding/json"
	"log"

	logrus "github.com/sirupsen/logrus"

	"musicmarket/internal/market"
	"musicmarket/internal/models"
	"musicmarket/pkg/config"
)

func main() {
	// Initialize logger
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	config.InitDB()

	// Initialize RabbitMQ
	config.InitRabbitMQ()
	defer config.RabbitMQ.Close()

	// Create consumer for the market events queue
	msgConsumer, err := config.NewConsumer(market.EventQueue)
	if err != nil {
		logrus.Fatal("Failed to create consumer: ", err)
	}
	defer msgConsumer.Close()

	logrus.Info("Market event archiver started, waiting for messages...")

	// Start consuming messages
	err = msgConsumer.Consume(func(msg []byte) error {
		var event market.MarketEventMessage
		if err := json.Unmarshal(msg, &event); err != nil {
			logrus.Errorf("Failed to unmarshal message: %v", err)
			return err
		}

		record := models.MarketEvent{
			Type:       event.Type,
			TokenID:    event.TokenID,
			Symbol:     event.Symbol,
			Status:     string(event.Status),
			Price:      event.Price,
			MarketCap:  event.MarketCap,
			Volume24h:  event.Volume24h,
			Detail:     event.Detail,
			OccurredAt: event.Timestamp,
		}

		if err := config.DB.Create(&record).Error; err != nil {
			logrus.Errorf("Failed to persist market event: %v", err)
			return err
		}

		logrus.WithFields(logrus.Fields{
			"type":     event.Type,
			"token_id": event.TokenID,
			"symbol":   event.Symbol,
			"status":   event.Status,
		}).Info("Market event archived")

		return nil
	})

	if err != nil {
		log.Fatal("Failed to start consumer: ", err)
	}
}
