package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// ExchangeReminders is the durable direct exchange for reminder messages.
const ExchangeReminders = "reminders"

// QueueConfig binds one queue to a routing key on the reminders exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetReminderQueues lists the queues consumed by the reminder workers.
func GetReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "reminders.upcoming", RoutingKey: "upcoming"},
	}
}

// SetupChannel opens a channel, declares the reminders exchange and
// binds every configured queue to it.
func SetupChannel(conn *amqp.Connection, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeReminders,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			q.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}

		err = ch.QueueBind(
			q.QueueName,
			q.RoutingKey,
			ExchangeReminders,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
