package handler

import (
	"context"
	"encoding/json"

	"github.com/classtrack-dev/classtrack/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Mailer queues outbound mail for the mail worker. Tests substitute a
// recording fake.
type Mailer interface {
	Publish(ctx context.Context, msg domain.MailMessage) error
}

type AMQPMailer struct {
	channel *amqp.Channel
	queue   string
}

func NewAMQPMailer(channel *amqp.Channel, queue string) *AMQPMailer {
	return &AMQPMailer{
		channel: channel,
		queue:   queue,
	}
}

func (m *AMQPMailer) Publish(ctx context.Context, msg domain.MailMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return m.channel.PublishWithContext(
		ctx,
		"",
		m.queue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        data,
		},
	)
}
