package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/easyconsult/consult-service/internal/config"
	"github.com/easyconsult/consult-service/internal/core/ports/out"
)

// RabbitMqPublisher publishes consult change events to a topic exchange.
// Publish returns as soon as the message is enqueued on the channel; broker
// confirms are consumed by a background goroutine and only logged.
type RabbitMqPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   out.LoggerPort
}

func NewRabbitMqPublisher(cfg *config.Config, logger out.LoggerPort) (*RabbitMqPublisher, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, consult events will not be published",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	err = channel.ExchangeDeclare(
		cfg.RabbitMQ.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		logger.Error("rabbitmq.exchange.declare_failed", out.LogFields{
			"exchange": cfg.RabbitMQ.Exchange,
			"error":    err.Error(),
		})
		return nil, err
	}

	publisher := &RabbitMqPublisher{
		conn:     conn,
		channel:  channel,
		exchange: cfg.RabbitMQ.Exchange,
		logger:   logger.WithModule("RabbitMqPublisher"),
	}

	if err := channel.Confirm(false); err != nil {
		publisher.logger.Warn("rabbitmq.confirm_mode.unavailable", out.LogFields{
			"error": err.Error(),
		})
	} else {
		confirms := channel.NotifyPublish(make(chan amqp.Confirmation, 64))
		go publisher.watchConfirms(confirms)
	}

	return publisher, nil
}

func (p *RabbitMqPublisher) Publish(ctx context.Context, topic string, key string, payload []byte) {
	err := p.channel.PublishWithContext(ctx,
		p.exchange,
		topic,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     uuid.NewString(),
			CorrelationId: key,
			Timestamp:     time.Now(),
			Body:          payload,
		})
	if err != nil {
		p.logger.Error("rabbitmq.publish.failed", out.LogFields{
			"topic": topic,
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	p.logger.Debug("rabbitmq.publish.enqueued", out.LogFields{
		"topic": topic,
		"key":   key,
	})
}

func (p *RabbitMqPublisher) watchConfirms(confirms <-chan amqp.Confirmation) {
	for confirm := range confirms {
		if confirm.Ack {
			p.logger.Debug("rabbitmq.publish.confirmed", out.LogFields{
				"deliveryTag": confirm.DeliveryTag,
			})
		} else {
			p.logger.Error("rabbitmq.publish.nacked", out.LogFields{
				"deliveryTag": confirm.DeliveryTag,
			})
		}
	}
}

func (p *RabbitMqPublisher) Close() error {
	if p == nil || p.channel == nil {
		return nil
	}

	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
