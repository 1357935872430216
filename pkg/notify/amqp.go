package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/df07/go-nerf-dataset/pkg/log"
)

// Channel is the subset of *amqp.Channel used for publishing
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes dataset-ready messages to a durable queue on the default exchange
type AMQPPublisher struct {
	connection *amqp.Connection
	channel    Channel
	queue      string
	logger     *log.Logger
}

// DialAMQP connects to the broker at url, retrying until timeout, and declares the queue
func DialAMQP(url, queue string, timeout time.Duration, logger *log.Logger) (*AMQPPublisher, error) {
	if logger == nil {
		logger = log.NewNop()
	}

	deadline := time.Now().Add(timeout)
	var connection *amqp.Connection
	var err error
	for {
		connection, err = amqp.Dial(url)
		if err == nil || !time.Now().Before(deadline) {
			break
		}
		logger.Warnw("broker not reachable, retrying", "error", err)
		time.Sleep(time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	channel, err := connection.Channel()
	if err != nil {
		connection.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	publisher, err := NewAMQPPublisher(channel, queue, logger)
	if err != nil {
		connection.Close()
		return nil, err
	}
	publisher.connection = connection
	return publisher, nil
}

// NewAMQPPublisher declares the queue on an open channel
func NewAMQPPublisher(channel Channel, queue string, logger *log.Logger) (*AMQPPublisher, error) {
	if logger == nil {
		logger = log.NewNop()
	}
	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &AMQPPublisher{
		channel: channel,
		queue:   queue,
		logger:  logger.Named("notify"),
	}, nil
}

// PublishDatasetReady sends msg as persistent JSON
func (p *AMQPPublisher) PublishDatasetReady(ctx context.Context, msg DatasetReady) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode dataset-ready message: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.RunID,
		Timestamp:    msg.CompletedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}

	p.logger.Infow("dataset-ready published", "queue", p.queue, "run_id", msg.RunID)
	return nil
}

// Close closes the channel and, when dialed by this package, the connection
func (p *AMQPPublisher) Close() error {
	err := p.channel.Close()
	if p.connection != nil {
		if cerr := p.connection.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
