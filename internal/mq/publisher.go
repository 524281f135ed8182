package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/dpctl/internal/domain"
)

// MessageType — тип сообщения.
type MessageType string

// Типы сообщений.
const (
	MessageTypeActivationSucceeded MessageType = "activation.succeeded"
	MessageTypeActivationFailed    MessageType = "activation.failed"
)

// Message — сообщение для публикации.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — тип сообщения.
	Type MessageType `json:"type"`

	// Payload — полезная нагрузка.
	Payload any `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// Channel — операции AMQP канала, нужные Publisher.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// ChannelProvider выдаёт канал для публикации. Реализуется *Connection.
type ChannelProvider interface {
	WithChannel(ctx context.Context, fn func(ch *amqp.Channel) error) error
}

// Publisher публикует события активации.
type Publisher struct {
	publish func(ctx context.Context, fn func(ch Channel) error) error
	logger  *slog.Logger
}

// NewPublisher создаёт Publisher поверх соединения.
func NewPublisher(conn ChannelProvider, logger *slog.Logger) *Publisher {
	return &Publisher{
		publish: func(ctx context.Context, fn func(ch Channel) error) error {
			return conn.WithChannel(ctx, func(ch *amqp.Channel) error { return fn(ch) })
		},
		logger: logger,
	}
}

// NewChannelPublisher создаёт Publisher поверх готового канала.
func NewChannelPublisher(ch Channel, logger *slog.Logger) *Publisher {
	return &Publisher{
		publish: func(_ context.Context, fn func(ch Channel) error) error { return fn(ch) },
		logger:  logger,
	}
}

// Publish публикует сообщение в exchange с routing key.
func (p *Publisher) Publish(ctx context.Context, exchange Exchange, routingKey RoutingKey, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.publish(ctx, func(ch Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(exchange),   // exchange
			string(routingKey), // routing key
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", exchange, routingKey, err)
		}

		p.logger.Debug("published message",
			"exchange", exchange,
			"routing_key", routingKey,
			"message_id", msg.ID,
			"type", msg.Type,
		)

		return nil
	})
}

// PublishActivation публикует событие об итоге активации.
func (p *Publisher) PublishActivation(ctx context.Context, activation *domain.Activation) error {
	msgType, routingKey := MessageTypeActivationSucceeded, RoutingKeySucceeded
	if !activation.Succeeded() {
		msgType, routingKey = MessageTypeActivationFailed, RoutingKeyFailed
	}

	msg := &Message{
		ID:        uuid.New().String(),
		Type:      msgType,
		Payload:   activation,
		Timestamp: time.Now(),
	}

	return p.Publish(ctx, ExchangeActivations, routingKey, msg)
}
