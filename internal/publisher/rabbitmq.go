package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"content_auditor/internal/domain"
)

const (
	ActionSync               = "sync"
	ActionSuggestionApproved = "suggestion_approved"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQ publishes sync diffs and approved suggestions to one direct
// exchange under separate routing keys.
type RabbitMQ struct {
	conn                 *amqp.Connection
	channel              channel
	exchange             string
	syncRoutingKey       string
	suggestionRoutingKey string
	logger               *slog.Logger
	now                  func() time.Time
}

type Config struct {
	URL                  string `yaml:"url"`
	Exchange             string `yaml:"exchange"`
	SyncRoutingKey       string `yaml:"sync_routing_key"`
	SyncQueue            string `yaml:"sync_queue"`
	SuggestionRoutingKey string `yaml:"suggestion_routing_key"`
	SuggestionQueue      string `yaml:"suggestion_queue"`
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	bindings := []struct{ queue, key string }{
		{cfg.SyncQueue, cfg.SyncRoutingKey},
		{cfg.SuggestionQueue, cfg.SuggestionRoutingKey},
	}
	for _, b := range bindings {
		if err := declareAndBind(ch, cfg.Exchange, b.queue, b.key); err != nil {
			ch.Close()
			conn.Close()
			return nil, err
		}
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"sync_queue", cfg.SyncQueue,
		"suggestion_queue", cfg.SuggestionQueue,
	)

	return newRabbitMQ(conn, ch, cfg, logger), nil
}

func newRabbitMQ(conn *amqp.Connection, ch channel, cfg Config, logger *slog.Logger) *RabbitMQ {
	return &RabbitMQ{
		conn:                 conn,
		channel:              ch,
		exchange:             cfg.Exchange,
		syncRoutingKey:       cfg.SyncRoutingKey,
		suggestionRoutingKey: cfg.SuggestionRoutingKey,
		logger:               logger,
		now:                  time.Now,
	}
}

func declareAndBind(ch *amqp.Channel, exchange, queue, key string) error {
	q, err := ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}

	err = ch.QueueBind(
		q.Name,
		key,
		exchange,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue %s: %w", queue, err)
	}
	return nil
}

type SyncMessage struct {
	Action    string          `json:"action"`
	Diff      domain.SyncDiff `json:"diff"`
	Timestamp time.Time       `json:"timestamp"`
}

type SuggestionMessage struct {
	Action     string                    `json:"action"`
	Suggestion domain.ApprovedSuggestion `json:"suggestion"`
	Timestamp  time.Time                 `json:"timestamp"`
}

func (r *RabbitMQ) PublishSync(ctx context.Context, diff *domain.SyncDiff) error {
	msg := SyncMessage{
		Action:    ActionSync,
		Diff:      *diff,
		Timestamp: r.now().UTC(),
	}
	if err := r.publish(ctx, r.syncRoutingKey, msg); err != nil {
		return err
	}

	r.logger.Debug("published sync diff",
		"site", diff.SiteID,
		"new", len(diff.NewIDs),
		"updated", len(diff.UpdatedIDs),
		"deleted", len(diff.DeletedIDs),
	)
	return nil
}

func (r *RabbitMQ) PublishSuggestion(ctx context.Context, approved *domain.ApprovedSuggestion) error {
	msg := SuggestionMessage{
		Action:     ActionSuggestionApproved,
		Suggestion: *approved,
		Timestamp:  r.now().UTC(),
	}
	if err := r.publish(ctx, r.suggestionRoutingKey, msg); err != nil {
		return err
	}

	r.logger.Debug("published approved suggestion",
		"suggestion_id", approved.SuggestionID,
		"item_id", approved.TargetItemID,
	)
	return nil
}

func (r *RabbitMQ) publish(ctx context.Context, routingKey string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    r.now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
