package service

import (
	"fmt"

	"github.com/kodamai/recruitr/internal/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer is the delivery collaborator. Implementations wrap the body
// with the fixed greeting and signature before transmission.
type Mailer interface {
	Send(toEmail, toName, subject, body string) error
}

type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	logger   *zap.Logger
}

func NewSMTPMailer(logger *zap.Logger) *SMTPMailer {
	cfg := config.LoadSMTPConfig()
	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:     cfg.User,
		fromName: cfg.FromName,
		logger:   logger,
	}
}

func (m *SMTPMailer) Send(toEmail, toName, subject, body string) error {
	m.logger.Info("sending email",
		zap.String("to", toEmail),
		zap.String("subject", subject))

	formattedBody := fmt.Sprintf("Hi %s,\n\n%s\n\nBest regards,\n%s", toName, body, m.fromName)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", formattedBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("email delivery failed", zap.String("to", toEmail), zap.Error(err))
		return err
	}

	m.logger.Info("email sent", zap.String("to", toEmail))
	return nil
}
