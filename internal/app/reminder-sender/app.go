// Package remindersender wires the reminder mail worker.
package remindersender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/daii-team/school-scheduler/internal/config"
	"github.com/daii-team/school-scheduler/internal/lib/rabbitmq"
	"github.com/daii-team/school-scheduler/internal/lib/smtp"
	reminderservice "github.com/daii-team/school-scheduler/internal/services/reminder"
)

// App is the assembled sender worker.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *reminderservice.SenderService
	logger        *slog.Logger
}

// New connects the broker and builds the worker.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetReminderQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error("failed to close connection", "error", closeErr)
		}
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := reminderservice.NewSenderService(transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run consumes the reminder queue until the context ends.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumeMessages(ctx, a.ch, "reminders.upcoming", a.senderService.SendReminder)
	if err != nil {
		a.logger.Error("failed to start reminders.upcoming consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("reminder sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
