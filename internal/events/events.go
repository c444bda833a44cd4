package events

import (
	"encoding/json"
	"time"

	"blaemart-be/internal/config"
	"blaemart-be/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// OrderEvent is the message published after an order is created or its
// status changes. Consumers (fulfilment, notifications) are external.
type OrderEvent struct {
	OrderID  uint      `json:"order_id"`
	UserID   uint      `json:"user_id"`
	Type     string    `json:"type"` // created, status_updated
	Status   string    `json:"status"`
	Total    float64   `json:"total"`
	Occurred time.Time `json:"occurred"`
}

type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	cfg     *config.Config
}

func NewPublisher(cfg *config.Config) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.AMQPUrl)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{
		conn:    conn,
		channel: ch,
		cfg:     cfg,
	}, nil
}

// SetupQueues declares the durable order exchange and queue and binds them.
func (p *Publisher) SetupQueues() error {
	if err := p.channel.ExchangeDeclare(
		p.cfg.OrderExchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if _, err := p.channel.QueueDeclare(
		p.cfg.OrderQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	return p.channel.QueueBind(
		p.cfg.OrderQueue,
		"",
		p.cfg.OrderExchange,
		false,
		nil,
	)
}

// PublishOrderEvent sends the event after the DB transaction has committed.
// A nil Publisher is a no-op so the service can run without a broker.
func (p *Publisher) PublishOrderEvent(ev OrderEvent) error {
	if p == nil {
		return nil
	}

	if ev.Occurred.IsZero() {
		ev.Occurred = time.Now()
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.Occurred,
		ContentType:  "application/json",
		Body:         body,
	}

	err = p.channel.Publish(
		p.cfg.OrderExchange,
		"",
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		logger.L().Error("failed to publish order event",
			zap.Uint("order_id", ev.OrderID),
			zap.String("type", ev.Type),
			zap.Error(err),
		)
	}
	return err
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
