package config

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	logger "github.com/sirupsen/logrus"
)

// Consumer reads messages from a durable queue and hands them to a
// handler. Messages are acked on success and requeued on failure.
type Consumer struct {
	channel *amqp.Channel
	queue   string
}

// NewConsumer opens a channel on the shared broker connection and
// declares the queue.
func NewConsumer(queueName string) (*Consumer, error) {
	if RabbitMQ == nil {
		return nil, fmt.Errorf("RabbitMQ connection not initialized")
	}

	ch, err := RabbitMQ.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &Consumer{channel: ch, queue: queueName}, nil
}

// Consume blocks, delivering queue messages to handler one at a time.
func (c *Consumer) Consume(handler func(body []byte) error) error {
	deliveries, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for d := range deliveries {
		if err := handler(d.Body); err != nil {
			logger.Errorf("failed to handle message from %s: %v", c.queue, err)
			if nackErr := d.Nack(false, true); nackErr != nil {
				logger.Errorf("failed to nack message: %v", nackErr)
			}
			continue
		}
		if ackErr := d.Ack(false); ackErr != nil {
			logger.Errorf("failed to ack message: %v", ackErr)
		}
	}

	return nil
}

// Close closes the consumer channel.
func (c *Consumer) Close() error {
	if c.channel != nil {
		return c.channel.Close()
	}
	return nil
}
