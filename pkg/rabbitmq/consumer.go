package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const QueueName = "booking-service.directory"

// DirectoryKeys are the routing keys the booking service mirrors locally.
var DirectoryKeys = []string{"catalog.*", "worker.*"}

type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
}

func NewConsumer(url string, logger *zap.Logger) (*Consumer, error) {
	conn, ch, err := dial(url)
	if err != nil {
		return nil, err
	}

	q, err := ch.QueueDeclare(QueueName, true, false, false, false, nil)
	if err != nil {
		closeAll(ch, conn)
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	for _, key := range DirectoryKeys {
		if err := ch.QueueBind(q.Name, key, ExchangeName, false, nil); err != nil {
			closeAll(ch, conn)
			return nil, fmt.Errorf("rabbitmq queue bind %s: %w", key, err)
		}
	}

	return &Consumer{conn: conn, channel: ch, logger: logger}, nil
}

func (c *Consumer) Consume() (<-chan amqp.Delivery, error) {
	msgs, err := c.channel.Consume(
		QueueName,
		"",    // consumer tag
		false, // manual ack after processing
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq consume: %w", err)
	}

	c.logger.Info("consuming from queue", zap.String("queue", QueueName))
	return msgs, nil
}

func (c *Consumer) Close() {
	closeAll(c.channel, c.conn)
}
