package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
}

func NewPublisher(url string, logger *zap.Logger) (*Publisher, error) {
	conn, ch, err := dial(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, logger: logger}, nil
}

// Publish sends payload as JSON to the marketplace exchange.
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := p.channel.PublishWithContext(ctx, ExchangeName, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	p.logger.Debug("published message",
		zap.String("exchange", ExchangeName),
		zap.String("routing_key", routingKey),
		zap.String("message_id", msg.MessageId))
	return nil
}

func (p *Publisher) Close() {
	closeAll(p.channel, p.conn)
}
