// Package reminder implements the reminder pipeline: a scheduler that
// finds appointments and events due on the next day and publishes them
// to the broker, and a sender that mails them out.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/daii-team/school-scheduler/internal/lib/rabbitmq"
	"github.com/daii-team/school-scheduler/internal/lib/sl"
	"github.com/daii-team/school-scheduler/internal/models"
)

// ScheduleRepository is the storage contract for the scheduler worker.
type ScheduleRepository interface {
	FindAppointmentsDueTomorrow(ctx context.Context) ([]*models.Appointment, error)
	FindEventsDueTomorrow(ctx context.Context) ([]*models.Event, error)
}

// SchedulerService periodically scans for entries due tomorrow and
// publishes a reminder message per entry.
type SchedulerService struct {
	repo      ScheduleRepository
	recipient string
	log       *slog.Logger
}

// NewSchedulerService creates a new SchedulerService. Reminders are
// addressed to the given mailbox.
func NewSchedulerService(repo ScheduleRepository, recipient string, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:      repo,
		recipient: recipient,
		log:       log,
	}
}

// FindAppointmentsDueTomorrow runs the appointment scan immediately and
// then every 12 hours.
func (s *SchedulerService) FindAppointmentsDueTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.runFindAppointmentsDueTomorrow(ctx, channel)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		s.runFindAppointmentsDueTomorrow(ctx, channel)
	}
}

func (s *SchedulerService) runFindAppointmentsDueTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting scan for appointments due tomorrow")
	appointments, err := s.repo.FindAppointmentsDueTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find appointments", sl.Err(err))
		return
	}
	if len(appointments) == 0 {
		s.log.Info("no appointments due tomorrow")
		return
	}
	s.log.Info("found appointments due tomorrow", "count", len(appointments))
	for _, a := range appointments {
		reminder := models.Reminder{
			Kind:        "appointment",
			Subject:     fmt.Sprintf("Consulta de %s com %s", a.Student, a.Professional),
			Description: a.Comments,
			Date:        a.Date,
			Recipient:   s.recipient,
		}
		err = rabbitmq.PublishMessage(channel, rabbitmq.ExchangeReminders, "upcoming", reminder)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}

// FindEventsDueTomorrow runs the event scan immediately and then every
// 24 hours.
func (s *SchedulerService) FindEventsDueTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.runFindEventsDueTomorrow(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		s.runFindEventsDueTomorrow(ctx, channel)
	}
}

func (s *SchedulerService) runFindEventsDueTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting scan for events due tomorrow")
	events, err := s.repo.FindEventsDueTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find events", sl.Err(err))
		return
	}
	if len(events) == 0 {
		s.log.Info("no events due tomorrow")
		return
	}
	s.log.Info("found events due tomorrow", "count", len(events))
	for _, e := range events {
		reminder := models.Reminder{
			Kind:        "event",
			Subject:     e.Description,
			Description: e.Comments,
			Date:        e.Date,
			Recipient:   s.recipient,
		}
		err = rabbitmq.PublishMessage(channel, rabbitmq.ExchangeReminders, "upcoming", reminder)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
