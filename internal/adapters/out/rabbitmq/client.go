// Package rabbitmq provides the AMQP adapter that publishes dispatch
// lifecycle events. Consumers downstream (notifications, analytics,
// billing) bind to the topic exchange declared here.
package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange is the topic exchange all dispatch events go through.
const Exchange = "dispatch_events"

const publishTimeout = 5 * time.Second

// Client wraps an AMQP connection and channel for publishing.
type Client struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *slog.Logger

	mu sync.RWMutex
}

// Connect dials the broker and declares the dispatch topic exchange.
// Connection failures at startup retry with a growing delay until the
// context is cancelled or the attempts run out.
func Connect(ctx context.Context, url string, logger *slog.Logger) (*Client, error) {
	const maxRetries = 10
	retryDelay := time.Second

	c := &Client{logger: logger}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := c.connect(url)
		if err == nil {
			logger.InfoContext(ctx, "connected to rabbitmq", "attempt", attempt)
			return c, nil
		}

		logger.WarnContext(ctx, "rabbitmq connection attempt failed",
			"attempt", attempt,
			"error", err)

		if attempt == maxRetries {
			return nil, fmt.Errorf("connect to rabbitmq after %d attempts: %w", maxRetries, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
			retryDelay = min(retryDelay*2, 30*time.Second)
		}
	}

	return nil, fmt.Errorf("connect to rabbitmq: retries exhausted")
}

func (c *Client) connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.ch = ch
	c.mu.Unlock()

	return nil
}

// Publish sends a persistent JSON message to the dispatch exchange.
func (c *Client) Publish(ctx context.Context, routingKey string, body []byte) error {
	c.mu.RLock()
	ch := c.ch
	c.mu.RUnlock()

	if ch == nil {
		return fmt.Errorf("rabbitmq channel not available")
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return ch.PublishWithContext(
		publishCtx,
		Exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
}

// Close shuts down the channel and connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ch != nil {
		_ = c.ch.Close()
		c.ch = nil
	}
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
