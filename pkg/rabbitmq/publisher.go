package rabbitmq

import (
	"clipvault/config"
	"context"
	"encoding/json"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher struct {
	ch         *amqp.Channel
	cfg        *config.RabbitMQ
	routingKey string
}

func NewPublisher(conn *amqp.Connection, cfg *config.RabbitMQ, routingKey string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	err = ch.ExchangeDeclare(cfg.ExchangeName, cfg.Kind, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		ch:         ch,
		cfg:        cfg,
		routingKey: routingKey,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(ctx, p.cfg.ExchangeName, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         payload,
	})
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}
