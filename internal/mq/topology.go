package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// ExchangeActivations — обменник событий активации.
const ExchangeActivations Exchange = "dpctl.activations"

// QueueActivationsAudit — очередь аудита активаций.
const QueueActivationsAudit Queue = "activations.audit"

// Routing keys.
const (
	RoutingKeySucceeded RoutingKey = "activation.succeeded"
	RoutingKeyFailed    RoutingKey = "activation.failed"
	RoutingKeyAll       RoutingKey = "activation.*"
)

// SetupTopology объявляет exchange, очередь аудита и привязку.
// Операции идемпотентны.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeActivations), // name
			"topic",                     // type
			true,                        // durable
			false,                       // auto-deleted
			false,                       // internal
			false,                       // no-wait
			nil,                         // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeActivations, err)
		}

		_, err = ch.QueueDeclare(
			string(QueueActivationsAudit), // name
			true,                          // durable
			false,                         // delete when unused
			false,                         // exclusive
			false,                         // no-wait
			nil,                           // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", QueueActivationsAudit, err)
		}

		err = ch.QueueBind(
			string(QueueActivationsAudit), // queue name
			string(RoutingKeyAll),         // routing key
			string(ExchangeActivations),   // exchange
			false,                         // no-wait
			nil,                           // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", QueueActivationsAudit, ExchangeActivations, err)
		}

		return nil
	})
}
