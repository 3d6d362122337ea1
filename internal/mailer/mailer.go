package mailer

import (
	"fmt"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Sender interface {
	SendWelcomeEmail(toEmail, username string) error
}

type gomailSender struct {
	cfg    *config.SMTPConfig
	logger *zap.Logger
}

func NewSender(cfg *config.SMTPConfig, logger *zap.Logger) Sender {
	return &gomailSender{cfg: cfg, logger: logger}
}

func (s *gomailSender) SendWelcomeEmail(toEmail, username string) error {
	if s.cfg.Host == "" || s.cfg.SenderEmail == "" {
		return fmt.Errorf("SMTP configuration is incomplete")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SenderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Welcome to Visit Sri Lanka")
	m.SetBody("text/plain", "Hi "+username+",\n\nYour account has been created successfully.")

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		s.logger.Error("Failed to send welcome email", zap.String("to", toEmail), zap.Error(err))
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
