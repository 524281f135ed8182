package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/dpctl/internal/domain"
	"github.com/shaiso/dpctl/internal/telemetry"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent []published
	err  error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func TestPublishActivation_Succeeded(t *testing.T) {
	ch := &fakeChannel{}
	p := NewChannelPublisher(ch, telemetry.Discard())

	activation := domain.NewActivation("df-1")
	activation.MarkSucceeded()

	if err := p.PublishActivation(context.Background(), activation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ch.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(ch.sent))
	}
	sent := ch.sent[0]
	if sent.exchange != string(ExchangeActivations) {
		t.Errorf("expected exchange %s, got %s", ExchangeActivations, sent.exchange)
	}
	if sent.key != string(RoutingKeySucceeded) {
		t.Errorf("expected routing key %s, got %s", RoutingKeySucceeded, sent.key)
	}
	if sent.msg.DeliveryMode != amqp.Persistent {
		t.Error("expected persistent delivery")
	}

	var msg struct {
		ID      string            `json:"id"`
		Type    MessageType       `json:"type"`
		Payload domain.Activation `json:"payload"`
	}
	if err := json.Unmarshal(sent.msg.Body, &msg); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if msg.Type != MessageTypeActivationSucceeded {
		t.Errorf("expected type %s, got %s", MessageTypeActivationSucceeded, msg.Type)
	}
	if msg.Payload.ID != activation.ID || msg.Payload.PipelineID != "df-1" {
		t.Errorf("unexpected payload: %+v", msg.Payload)
	}
	if msg.ID != sent.msg.MessageId {
		t.Error("message id should match AMQP MessageId")
	}
}

func TestPublishActivation_Failed(t *testing.T) {
	ch := &fakeChannel{}
	p := NewChannelPublisher(ch, telemetry.Discard())

	activation := domain.NewActivation("df-1")
	activation.MarkFailed("boom")

	if err := p.PublishActivation(context.Background(), activation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.sent[0].key != string(RoutingKeyFailed) {
		t.Errorf("expected routing key %s, got %s", RoutingKeyFailed, ch.sent[0].key)
	}
}

func TestPublish_ChannelError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := NewChannelPublisher(ch, telemetry.Discard())

	activation := domain.NewActivation("df-1")
	activation.MarkSucceeded()

	if err := p.PublishActivation(context.Background(), activation); err == nil {
		t.Fatal("expected error")
	}
}
