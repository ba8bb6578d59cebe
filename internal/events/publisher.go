package events

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// RabbitPublisher, sepet olaylarını varsayılan exchange üzerinden kuyruğa yazar
type RabbitPublisher struct {
	pool      *ChannelPool
	queueName string
}

// NewRabbitPublisher, yeni bir RabbitPublisher örneği oluşturur
func NewRabbitPublisher(pool *ChannelPool, queueName string) *RabbitPublisher {
	return &RabbitPublisher{
		pool:      pool,
		queueName: queueName,
	}
}

// PublishCartEvent, olayı kalıcı mesaj olarak yayınlar
func (p *RabbitPublisher) PublishCartEvent(ctx context.Context, event CartEvent) error {
	ch, err := p.pool.GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel from pool: %w", err)
	}
	defer p.pool.ReturnChannel(ch)

	body, err := event.Encode()
	if err != nil {
		return fmt.Errorf("failed to marshal cart event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = ch.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    event.OccurredAt,
			Type:         event.Type,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish cart event: %w", err)
	}

	log.Printf("RabbitPublisher - %s yayınlandı (session=%s)", event.Type, event.SessionID)
	return nil
}
