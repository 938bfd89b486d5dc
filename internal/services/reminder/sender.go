package reminder

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/daii-team/school-scheduler/internal/lib/sl"
	smtptransport "github.com/daii-team/school-scheduler/internal/lib/smtp"
	"github.com/daii-team/school-scheduler/internal/models"
)

// Transport is the mail connection the sender uses.
type Transport interface {
	Connect() (smtptransport.Client, error)
	GetSMTPUser() string
}

// SenderService consumes reminder messages and mails them out.
type SenderService struct {
	transport Transport
	log       *slog.Logger
}

// NewSenderService creates a new SenderService.
func NewSenderService(transport Transport, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendReminder unmarshals a reminder message and delivers it to the
// configured mailbox.
func (s *SenderService) SendReminder(body []byte) error {
	var reminder models.Reminder
	if err := json.Unmarshal(body, &reminder); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{reminder.Recipient}
	var subject string
	switch reminder.Kind {
	case "event":
		subject = "Lembrete de evento: " + reminder.Subject
	default:
		subject = "Lembrete de consulta: " + reminder.Subject
	}
	bodyText := fmt.Sprintf("Olá!\n\n%s está marcado para amanhã, %s.\n\n%s",
		reminder.Subject, reminder.Date.Format("02/01/2006"), reminder.Description)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("reminder email sent", "to", to)
	return nil
}
