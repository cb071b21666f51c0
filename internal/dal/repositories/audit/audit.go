package audit

import (
	"context"
	"encoding/json"

	"github.com/alliedscientific/delivery-svc/internal/dal/rabbitmq"
	"github.com/alliedscientific/delivery-svc/internal/service/models/completeddelivery"
	"github.com/streadway/amqp"
)

// AuditRabbitMQRepository publishes completed-delivery events to the audit
// queue. Publishing is best-effort: the archive row in Postgres is the
// source of truth.
type AuditRabbitMQRepository struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

func NewAuditRabbitMQRepository(client *rabbitmq.Client) *AuditRabbitMQRepository {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       "delivery.completed",
		Durable:    false,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &AuditRabbitMQRepository{
		client: client,
		queue:  queue,
	}
}

func (r *AuditRabbitMQRepository) LogDeliveryCompleted(
	ctx context.Context,
	event completeddelivery.Event,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return r.client.Channel().Publish(
		"",
		r.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
}
