package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/kappsme/appo/internal/config"
	"github.com/kappsme/appo/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Mailer отправляет уведомления владельцу о создании и отмене записей.
// При выключенной почте уведомления только логируются - доставка и так
// не должна влиять на судьбу записи.
type Mailer struct {
	cfg    config.MailConfig
	logger Logger
}

// New создает новый экземпляр мейлера
func New(cfg config.MailConfig, logger Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		logger: logger,
	}
}

// SendConfirmation уведомляет о созданной записи
func (m *Mailer) SendConfirmation(ctx context.Context, appt *domain.Appointment) error {
	subject := fmt.Sprintf("New appointment on %s at %s", appt.Date.Format(domain.DateFormat), appt.Time)
	return m.send(ctx, subject, appointmentBody(appt))
}

// SendCancellation уведомляет об отмененной записи
func (m *Mailer) SendCancellation(ctx context.Context, appt *domain.Appointment) error {
	subject := fmt.Sprintf("Appointment cancelled: %s at %s", appt.Date.Format(domain.DateFormat), appt.Time)
	return m.send(ctx, subject, appointmentBody(appt))
}

func (m *Mailer) send(_ context.Context, subject, body string) error {
	if !m.cfg.Enabled {
		m.logger.Info("mail (log-only): to=%s subject=%q body=%q", m.cfg.To, subject, body)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + m.cfg.To,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{m.cfg.To}, []byte(msg)); err != nil {
		return fmt.Errorf("notify: send mail via %s: %w", addr, err)
	}

	m.logger.Info("mail sent: to=%s subject=%q", m.cfg.To, subject)
	return nil
}

func appointmentBody(appt *domain.Appointment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Client: %s (%s)\n", appt.Client, appt.Phone)
	fmt.Fprintf(&b, "Date: %s at %s\n", appt.Date.Format(domain.DateFormat), appt.Time)
	if appt.ServiceName != nil {
		fmt.Fprintf(&b, "Service: %s\n", *appt.ServiceName)
	}
	if !appt.Recurrence.IsNone() && appt.RecurrenceEnd != nil {
		fmt.Fprintf(&b, "Repeats %s until %s\n", appt.Recurrence, appt.RecurrenceEnd.Format(domain.DateFormat))
	}
	if appt.Notes != nil && *appt.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", *appt.Notes)
	}

	return b.String()
}
